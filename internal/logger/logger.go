package logger

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	ctxLoggerKey    = "logger"
	RequestIDHeader = "X-Request-ID"
)

var log = zap.NewNop()

// Init global logger'ı seviye ve ortama göre kurar.
func Init(level, environment string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	var (
		l   *zap.Logger
		err error
	)
	if environment == "production" {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		l, err = cfg.Build(zap.Fields(
			zap.String("service", "numune-katalog"),
			zap.String("environment", environment),
		))
	} else {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(lvl)
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		l, err = cfg.Build()
	}
	if err != nil {
		return err
	}

	log = l
	zap.ReplaceGlobals(l)
	return nil
}

func L() *zap.Logger {
	return log
}

func Sync() {
	_ = log.Sync()
}

// FromCtx istek logger'ını döner, yoksa global logger.
func FromCtx(c *fiber.Ctx) *zap.Logger {
	if l, ok := c.Locals(ctxLoggerKey).(*zap.Logger); ok {
		return l
	}
	return log
}

func SetCtx(c *fiber.Ctx, l *zap.Logger) {
	c.Locals(ctxLoggerKey, l)
}

// Middleware her isteği request_id ile loglar.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		reqLogger, ok := c.Locals(ctxLoggerKey).(*zap.Logger)
		if !ok {
			reqLogger = log.With(zap.String("request_id", c.GetRespHeader(RequestIDHeader)))
			SetCtx(c, reqLogger)
		}

		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.IP()),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}

		switch {
		case status >= 500:
			reqLogger.Error("HTTP Request", fields...)
		case status >= 400:
			reqLogger.Warn("HTTP Request", fields...)
		default:
			reqLogger.Info("HTTP Request", fields...)
		}

		return err
	}
}
