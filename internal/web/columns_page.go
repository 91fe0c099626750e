package web

import (
	"numune-katalog/internal/database"

	"github.com/gofiber/fiber/v2"
)

func (p *Pages) renderColumns(c *fiber.Ctx, msg *Message) error {
	cols, err := p.ui.Columns(c.UserContext(), database.SamplesEntity)
	if err != nil {
		return err
	}
	return render(c, "columns", fiber.Map{
		"Title":   "Liste Kolonları",
		"Active":  "columns",
		"Columns": cols,
		"Message": msg,
	})
}

// GET /columns
func (p *Pages) ColumnsPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return p.renderColumns(c, nil)
	}
}

// POST /columns  visible=model_kodu&visible=line...
func (p *Pages) ColumnsSubmit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		visible := make([]string, 0)
		for _, v := range c.Request().PostArgs().PeekMulti("visible") {
			visible = append(visible, string(v))
		}

		if err := p.ui.SetVisibleColumns(c.UserContext(), database.SamplesEntity, visible); err != nil {
			return p.renderColumns(c, errMessage("Hata: "+err.Error()))
		}
		return p.renderColumns(c, okMessage("Kolon ayarları kaydedildi."))
	}
}
