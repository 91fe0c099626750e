package database

import (
	"fmt"

	"numune-katalog/internal/config"
	"numune-katalog/internal/logger"
	"numune-katalog/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	log := logger.L()

	db, err := Open(cfg)
	if err != nil {
		log.Fatal("Veritabanına bağlanılamadı", zap.Error(err))
	}

	if err := Migrate(db); err != nil {
		log.Fatal("Migration hatası", zap.Error(err))
	}

	if err := SeedUIConfig(db); err != nil {
		log.Fatal("Varsayılan UI konfigürasyonu yazılamadı", zap.Error(err))
	}

	DB = db
	log.Info("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Open bağlantıyı açar ve havuz ayarlarını uygular.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: NewGormLogger(logger.L(), cfg.SlowQueryThreshold),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	log := logger.L()

	// Her parametre kategorisi kendi tablosunda, aynı şema
	for _, c := range models.LookupCategories {
		if err := db.Table(c.Table).AutoMigrate(&models.LookupRow{}); err != nil {
			return fmt.Errorf("%s tablosu migrate edilemedi: %w", c.Table, err)
		}
	}

	if err := db.AutoMigrate(
		&models.Sample{},
		&models.FieldConfig{},
		&models.ColumnConfig{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	// samples -> parametre tabloları FK'leri. AutoMigrate ilişki struct'ı olmadan ekleyemediği
	// için elle ekleniyor; RESTRICT sayesinde kullanılan parametre silinemez.
	for _, c := range models.LookupCategories {
		if c.SampleColumn == "" {
			continue
		}
		name := "fk_samples_" + c.SampleColumn

		var exists bool
		if err := db.Raw(`
			SELECT EXISTS (
				SELECT 1
				FROM information_schema.table_constraints
				WHERE table_name = 'samples'
				AND constraint_name = ?
			)
		`, name).Scan(&exists).Error; err != nil {
			return err
		}
		if exists {
			continue
		}

		log.Info("Foreign key constraint ekleniyor", zap.String("constraint", name))
		stmt := fmt.Sprintf(
			`ALTER TABLE samples ADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(id) ON DELETE RESTRICT`,
			name, c.SampleColumn, c.Table,
		)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("%s eklenemedi: %w", name, err)
		}
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_samples_color_list ON samples USING GIN (color_list)").Error; err != nil {
		log.Warn("color_list GIN index oluşturulamadı", zap.Error(err))
	}

	return nil
}
