package samples

import (
	"fmt"
	"net/url"
	"strings"

	"numune-katalog/internal/audit"
	"numune-katalog/internal/database"
	"numune-katalog/internal/httperr"
	"numune-katalog/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

const (
	EntityType      = "sample"
	notFoundMessage = "Numune bulunamadı"
)

type Handler struct {
	store   Store
	columns ColumnSource
	audit   audit.Writer
}

func NewHandler(store Store, columns ColumnSource, w audit.Writer) *Handler {
	if w == nil {
		w = audit.Nop{}
	}
	return &Handler{store: store, columns: columns, audit: w}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz id")
	}
	return uint(id), nil
}

func conflict(model string) error {
	return fiber.NewError(fiber.StatusConflict, fmt.Sprintf("Bu model kodu zaten kayıtlı: %s", model))
}

func storeError(err error, model string) error {
	if errors.Is(err, database.ErrConflict) {
		return conflict(model)
	}
	return httperr.FromStore(err, notFoundMessage)
}

func decodeBody(c *fiber.Ctx) (models.Sample, error) {
	var body Payload
	if err := c.BodyParser(&body); err != nil {
		return models.Sample{}, fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
	}
	return body.Decode()
}

// GET /api/samples?product_group=Gömlek
func (h *Handler) List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := h.store.List(c.UserContext(), Filter{
			ProductGroup: strings.TrimSpace(c.Query("product_group")),
		})
		if err != nil {
			return err
		}
		return c.JSON(items)
	}
}

// GET /api/samples/:id
func (h *Handler) Get() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		detail, err := h.store.Get(c.UserContext(), id)
		if err != nil {
			return httperr.FromStore(err, notFoundMessage)
		}
		return c.JSON(detail)
	}
}

// GET /api/samples/check-model/:model?exclude=12
func (h *Handler) CheckModel() fiber.Handler {
	return func(c *fiber.Ctx) error {
		model, err := url.PathUnescape(c.Params("model"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz model kodu")
		}
		model = strings.TrimSpace(model)
		if model == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Model kodu zorunlu")
		}

		exclude := c.QueryInt("exclude", 0)
		if exclude < 0 {
			exclude = 0
		}

		exists, err := h.store.ModelExists(c.UserContext(), model, uint(exclude))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"exists": exists})
	}
}

// POST /api/samples
func (h *Handler) Create() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sample, err := decodeBody(c)
		if err != nil {
			return err
		}

		if err := h.store.Create(c.UserContext(), &sample); err != nil {
			return storeError(err, sample.ModelKodu)
		}

		audit.Record(c, h.audit, audit.LogOptions{
			EntityType:  EntityType,
			EntityID:    sample.ID,
			Action:      models.AuditActionCreate,
			Description: "Numune oluşturuldu: " + sample.ModelKodu,
			After:       sample,
		})

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "id": sample.ID})
	}
}

// PUT /api/samples/:id
func (h *Handler) Update() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return err
		}

		sample, err := decodeBody(c)
		if err != nil {
			return err
		}

		before, err := h.store.Get(c.UserContext(), id)
		if err != nil {
			return httperr.FromStore(err, notFoundMessage)
		}

		if err := h.store.Update(c.UserContext(), id, &sample); err != nil {
			return storeError(err, sample.ModelKodu)
		}

		audit.Record(c, h.audit, audit.LogOptions{
			EntityType:  EntityType,
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: "Numune güncellendi: " + sample.ModelKodu,
			Before:      before.Sample,
			After:       sample,
		})

		return c.JSON(fiber.Map{"success": true})
	}
}
