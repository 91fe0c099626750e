// Package system sağlık ve sürüm uçları.
package system

import (
	"context"
	"time"

	"numune-katalog/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Version derleme sırasında -ldflags "-X numune-katalog/internal/system.Version=..." ile verilir.
var Version = "dev"

// startedLayout tr-TR yerel tarih biçimi: 01.05.2024 12:00:00
const startedLayout = "02.01.2006 15:04:05"

// Pinger veritabanı bağlantısını yoklar. *sql.DB bunu karşılar.
type Pinger interface {
	PingContext(ctx context.Context) error
}

func istanbul() *time.Location {
	loc, err := time.LoadLocation("Europe/Istanbul")
	if err != nil {
		return time.FixedZone("TRT", 3*60*60)
	}
	return loc
}

// GET /api/health
func HealthHandler(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := db.PingContext(c.UserContext()); err != nil {
			logger.FromCtx(c).Error("Veritabanı erişilemiyor", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"ok":    false,
				"error": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}

// GET /api/version
func VersionHandler(startedAt time.Time) fiber.Handler {
	started := startedAt.In(istanbul()).Format(startedLayout)
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"version":    Version,
			"started_at": started,
		})
	}
}
