package main

import (
	"log"
	"strings"
	"time"

	"numune-katalog/internal/audit"
	"numune-katalog/internal/config"
	"numune-katalog/internal/database"
	"numune-katalog/internal/httperr"
	"numune-katalog/internal/logger"
	"numune-katalog/internal/metrics"
	"numune-katalog/internal/middleware"
	"numune-katalog/internal/options"
	"numune-katalog/internal/params"
	"numune-katalog/internal/samples"
	"numune-katalog/internal/system"
	"numune-katalog/internal/uiconfig"
	"numune-katalog/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	startedAt := time.Now()

	cfg := config.Load()
	if err := logger.Init(cfg.LogLevel, cfg.AppEnv); err != nil {
		log.Fatalf("[FATAL] Logger kurulamadı: %v", err)
	}
	defer logger.Sync()

	database.Init(cfg)
	sqlDB, err := database.DB.DB()
	if err != nil {
		logger.L().Fatal("Veritabanı havuzu alınamadı", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
		Views:        web.NewEngine(),
		ReadTimeout:  cfg.RequestTimeout + 5*time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
	})

	// CORS origins virgülle ayrılmış string
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}

	m := metrics.New()

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, " + logger.RequestIDHeader,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(middleware.RequestID())
	app.Use(logger.Middleware())
	app.Use(m.Middleware())
	app.Use(middleware.Timeout(cfg.RequestTimeout))

	auditService := audit.NewService(database.DB)
	lookupStore := params.NewGormStore(database.DB, cfg.DBRetryAttempts)
	sampleStore := samples.NewGormStore(database.DB)
	uiStore := uiconfig.NewGormStore(database.DB)

	paramsHandler := params.NewHandler(lookupStore, auditService, m)
	samplesHandler := samples.NewHandler(sampleStore, uiStore, auditService)

	api := app.Group("/api")

	// Form seçenekleri
	api.Get("/options", options.OptionsHandler(options.NewAggregator(lookupStore)))
	api.Get("/colors", options.ColorsHandler(lookupStore))

	// Numuneler
	sampleRoutes := api.Group("/samples")
	sampleRoutes.Get("/", samplesHandler.List())
	sampleRoutes.Get("/export.xlsx", samplesHandler.Export())
	sampleRoutes.Get("/check-model/:model", samplesHandler.CheckModel())
	sampleRoutes.Get("/:id", samplesHandler.Get())
	sampleRoutes.Post("/", samplesHandler.Create())
	sampleRoutes.Put("/:id", samplesHandler.Update())

	// Form ve liste ayarları
	api.Get("/ui/form/:entity", uiconfig.GetFieldsHandler(uiStore))
	api.Put("/ui/form/:entity", uiconfig.PutFieldsHandler(uiStore))
	api.Get("/ui/columns/:entity", uiconfig.GetColumnsHandler(uiStore))
	api.Put("/ui/columns/:entity", uiconfig.PutColumnsHandler(uiStore))

	// Parametre tabloları
	paramRoutes := api.Group("/params")
	paramRoutes.Get("/:table", paramsHandler.List())
	paramRoutes.Post("/:table", paramsHandler.Create())
	paramRoutes.Put("/:table/reorder", paramsHandler.Reorder())
	paramRoutes.Post("/:table/import-order", paramsHandler.ImportOrder())
	paramRoutes.Put("/:table/:id", paramsHandler.Update())
	paramRoutes.Delete("/:table/:id", paramsHandler.Delete())

	// Audit logs
	api.Get("/audit-logs", audit.ListAuditLogsHandler(auditService))

	api.Get("/health", system.HealthHandler(sqlDB))
	api.Get("/version", system.VersionHandler(startedAt))

	app.Get("/metrics", m.Handler())

	// Sunucu tarafında çizilen sayfalar
	web.NewPages(lookupStore, sampleStore, uiStore, auditService, m).Register(app)

	logger.L().Info("Server çalışıyor", zap.String("port", cfg.HTTPPort), zap.String("version", system.Version))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logger.L().Fatal("Server durdu", zap.Error(err))
	}
}
