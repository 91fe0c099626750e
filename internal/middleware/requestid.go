package middleware

import (
	"context"
	"time"

	"numune-katalog/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestID gelen X-Request-ID'yi kullanır, yoksa üretir.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(logger.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(logger.RequestIDHeader, requestID)

		logger.SetCtx(c, logger.L().With(zap.String("request_id", requestID)))
		return c.Next()
	}
}

// Timeout istek boyunca kullanılacak context'e üst süre koyar.
// Store katmanı bu context'i GORM'a WithContext ile geçirir.
func Timeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
