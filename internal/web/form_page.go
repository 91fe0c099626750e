package web

import (
	"fmt"
	"strconv"

	"numune-katalog/internal/audit"
	"numune-katalog/internal/database"
	"numune-katalog/internal/httperr"
	"numune-katalog/internal/models"
	"numune-katalog/internal/samples"
	"numune-katalog/internal/web/form"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// loadState formu alan ayarı, seçenekler ve renklerle kurar.
func (p *Pages) loadState(c *fiber.Ctx, id uint) (*form.State, error) {
	ctx := c.UserContext()

	fields, err := p.ui.Fields(ctx, database.SamplesEntity)
	if err != nil {
		return nil, err
	}
	opts, err := p.options.Load(ctx)
	if err != nil {
		return nil, err
	}
	colorCat, _ := models.FindLookupCategory(models.ColorsTable)
	colors, err := p.lookups.ListByName(ctx, colorCat)
	if err != nil {
		return nil, err
	}

	return form.NewState(id, form.Build(fields, opts), colors), nil
}

func renderForm(c *fiber.Ctx, s *form.State, msg *Message) error {
	title := "Yeni Numune"
	if s.IsEdit() {
		title = "Numune Düzenle"
	}
	return render(c, "form", fiber.Map{
		"Title":   title,
		"Active":  "form",
		"State":   s,
		"Message": msg,
	})
}

// GET /form?id=12
func (p *Pages) FormPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := queryID(c)
		s, err := p.loadState(c, id)
		if err != nil {
			return err
		}

		if s.IsEdit() {
			detail, err := p.samples.Get(c.UserContext(), id)
			if err != nil {
				return httperr.FromStore(err, "Numune bulunamadı")
			}
			if err := s.Prefill(detail.Sample); err != nil {
				return err
			}
		} else if len(s.Colors()) > 0 {
			_ = s.AddColorRow()
		}

		var msg *Message
		if c.Query("saved") == "1" {
			msg = okMessage("Numune kaydedildi.")
		}
		return renderForm(c, s, msg)
	}
}

// restoreState gönderilen formdan durumu yeniden kurar. Renk satırları gönderim sırasıyla
// eklenir, çakışan seçim boş bırakılır.
func restoreState(c *fiber.Ctx, s *form.State) {
	for _, f := range s.Fields() {
		s.Set(f.Column, c.FormValue(f.Column))
	}
	for _, raw := range c.Request().PostArgs().PeekMulti("color") {
		if err := s.AddColorRow(); err != nil {
			break
		}
		id, err := cast.ToUintE(string(raw))
		if err != nil || id == 0 {
			continue
		}
		_ = s.SetColor(len(s.Rows())-1, id)
	}
}

// POST /form?id=12  action: add_color | remove_color | save
func (p *Pages) FormSubmit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := queryID(c)
		s, err := p.loadState(c, id)
		if err != nil {
			return err
		}
		restoreState(c, s)

		switch c.FormValue("action") {
		case "add_color":
			if err := s.AddColorRow(); err != nil {
				return renderForm(c, s, errMessage(err.Error()))
			}
			return renderForm(c, s, nil)
		case "remove_color":
			row, _ := strconv.Atoi(c.FormValue("row"))
			if err := s.RemoveColorRow(row); err != nil {
				return renderForm(c, s, errMessage(err.Error()))
			}
			return renderForm(c, s, nil)
		case "save":
			return p.saveForm(c, s)
		}
		// select değişiminde sadece yeniden çiz
		return renderForm(c, s, nil)
	}
}

func (p *Pages) saveForm(c *fiber.Ctx, s *form.State) error {
	ctx := c.UserContext()

	if err := s.Validate(); err != nil {
		return renderForm(c, s, errMessage(err.Error()))
	}

	model := s.Value("model_kodu")
	exists, err := p.samples.ModelExists(ctx, model, s.ID())
	if err != nil {
		return renderForm(c, s, errMessage("Hata: "+err.Error()))
	}
	if exists {
		return renderForm(c, s, errMessage(fmt.Sprintf("Bu model kodu zaten kayıtlı: %s", model)))
	}

	payload := samples.Payload(s.Payload())
	if s.IsEdit() {
		// formda görünmeyen alanlar kayıttaki değerini korur
		detail, err := p.samples.Get(ctx, s.ID())
		if err != nil {
			return httperr.FromStore(err, "Numune bulunamadı")
		}
		if payload, err = samples.Overlay(detail.Sample, payload); err != nil {
			return err
		}
	}

	sample, err := payload.Decode()
	if err != nil {
		var apiErr *httperr.Error
		if errors.As(err, &apiErr) && len(apiErr.Fields) > 0 {
			return renderForm(c, s, errMessage(fmt.Sprintf("%s %v", apiErr.Message, apiErr.Fields)))
		}
		return renderForm(c, s, errMessage(err.Error()))
	}

	if !s.IsEdit() {
		if err := p.samples.Create(ctx, &sample); err != nil {
			return renderForm(c, s, errMessage("Hata: "+err.Error()))
		}
		audit.Record(c, p.audit, audit.LogOptions{
			EntityType:  samples.EntityType,
			EntityID:    sample.ID,
			Action:      models.AuditActionCreate,
			Description: "Numune oluşturuldu: " + sample.ModelKodu,
			After:       sample,
		})
		return c.Redirect(fmt.Sprintf("/form?id=%d&saved=1", sample.ID), fiber.StatusSeeOther)
	}

	if err := p.samples.Update(ctx, s.ID(), &sample); err != nil {
		return renderForm(c, s, errMessage("Hata: "+err.Error()))
	}
	audit.Record(c, p.audit, audit.LogOptions{
		EntityType:  samples.EntityType,
		EntityID:    s.ID(),
		Action:      models.AuditActionUpdate,
		Description: "Numune güncellendi: " + sample.ModelKodu,
		After:       sample,
	})
	return renderForm(c, s, okMessage("Numune güncellendi."))
}
