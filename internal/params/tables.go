package params

import (
	"numune-katalog/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ResolveTable URL'deki tablo adını izinli listeden çözer. Tablo adı SQL'e sadece buradan geçer.
func ResolveTable(name string) (models.LookupCategory, error) {
	cat, ok := models.FindLookupCategory(name)
	if !ok {
		return models.LookupCategory{}, fiber.NewError(fiber.StatusNotFound, "Geçersiz parametre tablosu")
	}
	return cat, nil
}
