package params

import (
	"fmt"
	"strings"

	"numune-katalog/internal/audit"
	"numune-katalog/internal/httperr"
	"numune-katalog/internal/metrics"
	"numune-katalog/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type Handler struct {
	store   Store
	audit   audit.Writer
	metrics *metrics.Metrics
}

func NewHandler(store Store, w audit.Writer, m *metrics.Metrics) *Handler {
	if w == nil {
		w = audit.Nop{}
	}
	return &Handler{store: store, audit: w, metrics: m}
}

type CreateLookupRequest struct {
	Name string `json:"name"`
}

type ReorderRequest struct {
	Orders []models.LookupOrder `json:"orders"`
}

const notFoundMessage = "Parametre bulunamadı"

func entityType(cat models.LookupCategory) string {
	return "lookup:" + cat.Table
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
	}
	return uint(id), nil
}

// GET /api/params/:table
func (h *Handler) List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cat, err := ResolveTable(c.Params("table"))
		if err != nil {
			return err
		}

		rows, err := h.store.List(c.UserContext(), cat)
		if err != nil {
			return err
		}
		return c.JSON(rows)
	}
}

// POST /api/params/:table
func (h *Handler) Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cat, err := ResolveTable(c.Params("table"))
		if err != nil {
			return err
		}

		var body CreateLookupRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ad zorunlu")
		}

		row, err := h.store.Add(c.UserContext(), cat, body.Name)
		if err != nil {
			return httperr.FromStore(err, notFoundMessage)
		}

		audit.Record(c, h.audit, audit.LogOptions{
			EntityType:  entityType(cat),
			EntityID:    row.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("%s eklendi: %s", cat.Label, row.Name),
			After:       row,
		})

		return c.Status(fiber.StatusCreated).JSON(row)
	}
}

// PUT /api/params/:table/:id
func (h *Handler) Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cat, err := ResolveTable(c.Params("table"))
		if err != nil {
			return err
		}
		id, err := parseID(c)
		if err != nil {
			return err
		}

		var body Patch
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}
		if body.Empty() {
			return fiber.NewError(fiber.StatusBadRequest, "Güncellenecek alan yok")
		}
		if body.Name != nil && strings.TrimSpace(*body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Ad boş olamaz")
		}

		row, err := h.store.Update(c.UserContext(), cat, id, body)
		if err != nil {
			return httperr.FromStore(err, notFoundMessage)
		}

		audit.Record(c, h.audit, audit.LogOptions{
			EntityType:  entityType(cat),
			EntityID:    row.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("%s güncellendi: %s", cat.Label, row.Name),
			After:       row,
		})

		return c.JSON(fiber.Map{"ok": true})
	}
}

// DELETE /api/params/:table/:id
func (h *Handler) Delete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cat, err := ResolveTable(c.Params("table"))
		if err != nil {
			return err
		}
		id, err := parseID(c)
		if err != nil {
			return err
		}

		row, err := h.store.Delete(c.UserContext(), cat, id)
		if err != nil {
			return httperr.FromStore(err, notFoundMessage)
		}

		audit.Record(c, h.audit, audit.LogOptions{
			EntityType:  entityType(cat),
			EntityID:    row.ID,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("%s silindi: %s", cat.Label, row.Name),
			Before:      row,
		})

		return c.JSON(fiber.Map{"ok": true})
	}
}

// PUT /api/params/:table/reorder
func (h *Handler) Reorder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		cat, err := ResolveTable(c.Params("table"))
		if err != nil {
			return err
		}

		var body ReorderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if err := h.reorder(c, cat, body.Orders); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}

func (h *Handler) reorder(c *fiber.Ctx, cat models.LookupCategory, orders []models.LookupOrder) error {
	if err := ValidateOrders(orders); err != nil {
		h.metrics.ObserveReorder(cat.Table, err)
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	err := h.store.Reorder(c.UserContext(), cat, orders)
	h.metrics.ObserveReorder(cat.Table, err)
	if err != nil {
		if errors.Is(err, ErrInvalidOrder) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		// Depolama hatası olduğu gibi döner
		return err
	}

	audit.Record(c, h.audit, audit.LogOptions{
		EntityType:  entityType(cat),
		Action:      models.AuditActionReorder,
		Description: fmt.Sprintf("%s sıralaması güncellendi (%d satır)", cat.Label, len(orders)),
		After:       orders,
	})
	return nil
}
