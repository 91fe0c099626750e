package audit

import (
	"numune-katalog/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Record isteğin context'iyle log yazar. Hata isteği bozmaz, sadece loglanır.
func Record(c *fiber.Ctx, w Writer, opts LogOptions) {
	if w == nil {
		return
	}
	if err := w.WriteLog(c.UserContext(), opts); err != nil {
		logger.FromCtx(c).Warn("Audit log yazılamadı",
			zap.String("entity_type", opts.EntityType),
			zap.Uint("entity_id", opts.EntityID),
			zap.Error(err),
		)
	}
}

// GET /api/audit-logs?entity_type=lookup:colors&entity_id=1&limit=50
func ListAuditLogsHandler(s *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := Filter{
			EntityType: c.Query("entity_type"),
			EntityID:   uint(c.QueryInt("entity_id", 0)),
			Limit:      c.QueryInt("limit", 100),
		}

		logs, err := s.List(c.UserContext(), f)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(logs)
	}
}
