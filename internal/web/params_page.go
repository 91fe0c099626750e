package web

import (
	"fmt"
	"sort"
	"strings"

	"numune-katalog/internal/audit"
	"numune-katalog/internal/database"
	"numune-katalog/internal/httperr"
	"numune-katalog/internal/models"
	"numune-katalog/internal/params"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

func tableFromQuery(c *fiber.Ctx) (models.LookupCategory, error) {
	name := c.Query("table")
	if name == "" {
		return models.LookupCategories[0], nil
	}
	return params.ResolveTable(name)
}

func (p *Pages) renderParams(c *fiber.Ctx, cat models.LookupCategory, msg *Message) error {
	rows, err := p.lookups.List(c.UserContext(), cat)
	if err != nil {
		return err
	}
	return render(c, "params", fiber.Map{
		"Title":      "Parametreler",
		"Active":     "params",
		"Categories": models.LookupCategories,
		"Current":    cat,
		"Rows":       rows,
		"Message":    msg,
	})
}

// GET /params?table=colors
func (p *Pages) ParamsPage() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cat, err := tableFromQuery(c)
		if err != nil {
			return err
		}
		return p.renderParams(c, cat, nil)
	}
}

// actionMessage store hatasını kullanıcı mesajına çevirir.
func actionMessage(err error) *Message {
	if errors.Is(err, database.ErrReferenced) {
		return errMessage(httperr.Referenced("").Message)
	}
	if errors.Is(err, database.ErrNotFound) {
		return errMessage("Parametre bulunamadı")
	}
	return errMessage("Hata: " + err.Error())
}

// POST /params?table=colors  action: add | rename | toggle | delete | move | reorder
func (p *Pages) ParamsSubmit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cat, err := tableFromQuery(c)
		if err != nil {
			return err
		}
		ctx := c.UserContext()
		entity := "lookup:" + cat.Table
		id := cast.ToUint(c.FormValue("id"))

		switch c.FormValue("action") {
		case "add":
			name := strings.TrimSpace(c.FormValue("name"))
			if name == "" {
				return p.renderParams(c, cat, errMessage("Ad zorunlu"))
			}
			row, err := p.lookups.Add(ctx, cat, name)
			if err != nil {
				return p.renderParams(c, cat, actionMessage(err))
			}
			audit.Record(c, p.audit, audit.LogOptions{
				EntityType: entity, EntityID: row.ID, Action: models.AuditActionCreate,
				Description: fmt.Sprintf("%s eklendi: %s", cat.Label, row.Name), After: row,
			})
			return p.renderParams(c, cat, okMessage("Eklendi: "+row.Name))

		case "rename":
			name := strings.TrimSpace(c.FormValue("name"))
			if name == "" {
				return p.renderParams(c, cat, errMessage("Ad boş olamaz"))
			}
			row, err := p.lookups.Update(ctx, cat, id, params.Patch{Name: &name})
			if err != nil {
				return p.renderParams(c, cat, actionMessage(err))
			}
			audit.Record(c, p.audit, audit.LogOptions{
				EntityType: entity, EntityID: row.ID, Action: models.AuditActionUpdate,
				Description: fmt.Sprintf("%s güncellendi: %s", cat.Label, row.Name), After: row,
			})
			return p.renderParams(c, cat, okMessage("Güncellendi: "+row.Name))

		case "toggle":
			active := c.FormValue("is_active") == "true"
			row, err := p.lookups.Update(ctx, cat, id, params.Patch{IsActive: &active})
			if err != nil {
				return p.renderParams(c, cat, actionMessage(err))
			}
			audit.Record(c, p.audit, audit.LogOptions{
				EntityType: entity, EntityID: row.ID, Action: models.AuditActionUpdate,
				Description: fmt.Sprintf("%s durum değişti: %s", cat.Label, row.Name), After: row,
			})
			return p.renderParams(c, cat, okMessage("Güncellendi: "+row.Name))

		case "delete":
			row, err := p.lookups.Delete(ctx, cat, id)
			if err != nil {
				return p.renderParams(c, cat, actionMessage(err))
			}
			audit.Record(c, p.audit, audit.LogOptions{
				EntityType: entity, EntityID: row.ID, Action: models.AuditActionDelete,
				Description: fmt.Sprintf("%s silindi: %s", cat.Label, row.Name), Before: row,
			})
			return p.renderParams(c, cat, okMessage("Silindi: "+row.Name))

		case "move", "reorder":
			rows, err := p.lookups.List(ctx, cat)
			if err != nil {
				return err
			}
			var ids []uint
			if c.FormValue("action") == "move" {
				ids = MoveID(rows, id, c.FormValue("dir") == "up")
			} else {
				ids = IDsByPosition(rows, func(id uint) string {
					return c.FormValue(fmt.Sprintf("pos_%d", id))
				})
			}
			if len(ids) == 0 {
				return p.renderParams(c, cat, errMessage("Sıralanacak satır yok"))
			}

			orders := params.OrdersFromIDs(ids)
			err = p.lookups.Reorder(ctx, cat, orders)
			p.metrics.ObserveReorder(cat.Table, err)
			if err != nil {
				return p.renderParams(c, cat, actionMessage(err))
			}
			audit.Record(c, p.audit, audit.LogOptions{
				EntityType: entity, Action: models.AuditActionReorder,
				Description: fmt.Sprintf("%s sıralaması güncellendi (%d satır)", cat.Label, len(orders)), After: orders,
			})
			return p.renderParams(c, cat, okMessage("Sıralama kaydedildi."))
		}

		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz işlem")
	}
}

// MoveID satırı bir yukarı ya da aşağı taşıyıp yeni id sırasını döner. Uçtaki satır yerinde kalır.
func MoveID(rows []models.LookupRow, id uint, up bool) []uint {
	ids := make([]uint, len(rows))
	idx := -1
	for i, r := range rows {
		ids[i] = r.ID
		if r.ID == id {
			idx = i
		}
	}
	if idx < 0 {
		return ids
	}

	target := idx + 1
	if up {
		target = idx - 1
	}
	if target >= 0 && target < len(ids) {
		ids[idx], ids[target] = ids[target], ids[idx]
	}
	return ids
}

// IDsByPosition formdaki pozisyon değerlerine göre sıralar. Geçersiz ya da boş pozisyon
// mevcut sırayı korur, eşit pozisyonlarda mevcut sıra geçerlidir.
func IDsByPosition(rows []models.LookupRow, position func(id uint) string) []uint {
	type item struct {
		id  uint
		pos int
	}
	items := make([]item, len(rows))
	for i, r := range rows {
		pos, err := cast.ToIntE(strings.TrimSpace(position(r.ID)))
		if err != nil || pos <= 0 {
			pos = i + 1
		}
		items[i] = item{id: r.ID, pos: pos}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].pos < items[j].pos })

	ids := make([]uint, len(items))
	for i, it := range items {
		ids[i] = it.id
	}
	return ids
}
