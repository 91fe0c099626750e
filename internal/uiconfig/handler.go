package uiconfig

import (
	"strings"

	"numune-katalog/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type VisibleColumnsRequest struct {
	VisibleColumns []string `json:"visible_columns"`
}

type FieldsRequest struct {
	Fields []models.FieldConfig `json:"fields"`
}

func entityParam(c *fiber.Ctx) (string, error) {
	entity := strings.TrimSpace(c.Params("entity"))
	if entity == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "Entity zorunlu")
	}
	return entity, nil
}

// GET /api/ui/form/:entity
func GetFieldsHandler(s Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entity, err := entityParam(c)
		if err != nil {
			return err
		}
		fields, err := s.Fields(c.UserContext(), entity)
		if err != nil {
			return err
		}
		return c.JSON(fields)
	}
}

// PUT /api/ui/form/:entity
func PutFieldsHandler(s Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entity, err := entityParam(c)
		if err != nil {
			return err
		}

		var body FieldsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		seen := map[string]bool{}
		for i, f := range body.Fields {
			f.ColumnName = strings.TrimSpace(f.ColumnName)
			f.DisplayName = strings.TrimSpace(f.DisplayName)
			if f.ColumnName == "" || f.DisplayName == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Alan adı ve görünen ad zorunlu")
			}
			if seen[f.ColumnName] {
				return fiber.NewError(fiber.StatusBadRequest, "Alan birden fazla kez gönderildi: "+f.ColumnName)
			}
			seen[f.ColumnName] = true
			body.Fields[i] = f
		}

		if err := s.ReplaceFields(c.UserContext(), entity, body.Fields); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}

// GET /api/ui/columns/:entity
func GetColumnsHandler(s Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entity, err := entityParam(c)
		if err != nil {
			return err
		}
		cols, err := s.Columns(c.UserContext(), entity)
		if err != nil {
			return err
		}
		return c.JSON(cols)
	}
}

// PUT /api/ui/columns/:entity
func PutColumnsHandler(s Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entity, err := entityParam(c)
		if err != nil {
			return err
		}

		var body VisibleColumnsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}
		if body.VisibleColumns == nil {
			return fiber.NewError(fiber.StatusBadRequest, "visible_columns zorunlu")
		}

		if err := s.SetVisibleColumns(c.UserContext(), entity, body.VisibleColumns); err != nil {
			if errors.Is(err, ErrUnknownColumn) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return err
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}
