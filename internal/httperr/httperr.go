package httperr

import (
	"errors"

	"numune-katalog/internal/database"
	"numune-katalog/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	CodeReferenced    = "referenced"
	CodeMissingFields = "missing_fields"
)

// Error kod taşıyan API hatası. İstemci genel hatayı sınıflı hatadan Code ile ayırır.
type Error struct {
	Status  int
	Code    string
	Message string
	Detail  string
	Fields  []string
}

func (e *Error) Error() string {
	return e.Message
}

// Referenced: başka kayıtlarda kullanıldığı için silinemeyen satır
func Referenced(detail string) *Error {
	return &Error{
		Status:  fiber.StatusConflict,
		Code:    CodeReferenced,
		Message: "Bu parametre bazı ürünlerde kullanıldığı için silinemez.",
		Detail:  detail,
	}
}

// FromStore store hatasını HTTP hatasına çevirir. Sınıflanamayan hata aynen döner ve 500 olur.
func FromStore(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, database.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, notFound)
	case errors.Is(err, database.ErrReferenced):
		return Referenced(err.Error())
	case errors.Is(err, database.ErrConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	return err
}

// MissingFields zorunlu alanı eksik istek
func MissingFields(fields []string) *Error {
	return &Error{
		Status:  fiber.StatusBadRequest,
		Code:    CodeMissingFields,
		Message: "Missing required fields.",
		Fields:  fields,
	}
}

// Handler tüm hataları {"error": ...} gövdesine çevirir.
func Handler(c *fiber.Ctx, err error) error {
	switch e := err.(type) {
	case *Error:
		body := fiber.Map{"error": e.Message, "code": e.Code}
		if e.Detail != "" {
			body["detail"] = e.Detail
		}
		if len(e.Fields) > 0 {
			body["fields"] = e.Fields
		}
		return c.Status(e.Status).JSON(body)
	case *fiber.Error:
		return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
	}

	logger.FromCtx(c).Error("Beklenmeyen hata", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
