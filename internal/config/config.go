package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=numune port=5432 sslmode=disable"

type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"3000"`
	DatabaseDSN string `env:"DATABASE_DSN"`
	CORSOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
	AppEnv      string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`
	DBRetryAttempts   int           `env:"DB_RETRY_ATTEMPTS" envDefault:"3"`

	// Her istek için veritabanı bağlamına uygulanan üst süre
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	SlowQueryThreshold time.Duration `env:"SLOW_QUERY_THRESHOLD" envDefault:"500ms"`
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func Load() *Config {
	// .env opsiyonel
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env dosyası bulunamadı, ortam değişkenleri kullanılıyor")
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("[FATAL] Konfigürasyon okunamadı: %v", err)
	}

	if cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN varsayılan değer kullanılıyor, production için kendi Postgres bağlantı bilgisini tanımla.")
	}
	if cfg.CORSOrigins == "*" && cfg.IsProduction() {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS tüm originlere açık, production için kendi domain'ini tanımla.")
	}

	return cfg
}

// Parse ortam değişkenlerini okur, .env yüklemez.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = defaultDSN
	}
	if cfg.DBRetryAttempts < 1 {
		cfg.DBRetryAttempts = 1
	}
	return cfg, nil
}
