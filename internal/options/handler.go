package options

import (
	"context"

	"numune-katalog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ColorLister renkleri ada göre sıralı döner.
type ColorLister interface {
	ListByName(ctx context.Context, cat models.LookupCategory) ([]models.LookupRow, error)
}

// GET /api/options
func OptionsHandler(a *Aggregator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts, err := a.Load(c.UserContext())
		if err != nil {
			return err
		}
		return c.JSON(opts)
	}
}

// GET /api/colors
func ColorsHandler(l ColorLister) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cat, _ := models.FindLookupCategory(models.ColorsTable)
		rows, err := l.ListByName(c.UserContext(), cat)
		if err != nil {
			return err
		}
		return c.JSON(rows)
	}
}
