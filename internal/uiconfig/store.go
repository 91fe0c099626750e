package uiconfig

import (
	"context"
	"strings"

	"numune-katalog/internal/models"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrUnknownColumn = errors.New("tanımsız kolon")

type Store interface {
	Fields(ctx context.Context, entity string) ([]models.FieldConfig, error)
	ReplaceFields(ctx context.Context, entity string, fields []models.FieldConfig) error
	Columns(ctx context.Context, entity string) ([]models.ColumnConfig, error)
	SetVisibleColumns(ctx context.Context, entity string, visible []string) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Fields(ctx context.Context, entity string) ([]models.FieldConfig, error) {
	fields := make([]models.FieldConfig, 0)
	err := s.db.WithContext(ctx).
		Where("entity = ?", entity).
		Order("sort_order asc, id asc").
		Find(&fields).Error
	return fields, err
}

// ReplaceFields entity'nin alan listesini tek transaction'da değiştirir, sıra gönderim sırasıdır.
func (s *GormStore) ReplaceFields(ctx context.Context, entity string, fields []models.FieldConfig) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entity = ?", entity).Delete(&models.FieldConfig{}).Error; err != nil {
			return err
		}
		if len(fields) == 0 {
			return nil
		}

		rows := make([]models.FieldConfig, len(fields))
		for i, f := range fields {
			f.ID = 0
			f.Entity = entity
			f.SortOrder = i + 1
			rows[i] = f
		}
		return tx.Create(&rows).Error
	})
}

func (s *GormStore) Columns(ctx context.Context, entity string) ([]models.ColumnConfig, error) {
	cols := make([]models.ColumnConfig, 0)
	err := s.db.WithContext(ctx).
		Where("entity = ?", entity).
		Order("sort_order asc, id asc").
		Find(&cols).Error
	return cols, err
}

// SetVisibleColumns listede olan kolonları görünür, diğerlerini gizli yapar.
// Tanımsız kolon adı gelirse hiçbir şey değişmez.
func (s *GormStore) SetVisibleColumns(ctx context.Context, entity string, visible []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var known []string
		if err := tx.Model(&models.ColumnConfig{}).Where("entity = ?", entity).Pluck("column_name", &known).Error; err != nil {
			return err
		}
		if err := CheckColumns(known, visible); err != nil {
			return err
		}

		if err := tx.Model(&models.ColumnConfig{}).
			Where("entity = ?", entity).
			Update("is_visible", false).Error; err != nil {
			return err
		}
		if len(visible) == 0 {
			return nil
		}
		return tx.Model(&models.ColumnConfig{}).
			Where("entity = ? AND column_name IN ?", entity, visible).
			Update("is_visible", true).Error
	})
}

// CheckColumns istenen kolonların hepsi tanımlı mı kontrol eder.
func CheckColumns(known, requested []string) error {
	set := make(map[string]struct{}, len(known))
	for _, k := range known {
		set[k] = struct{}{}
	}

	var unknown []string
	for _, r := range requested {
		if _, ok := set[r]; !ok {
			unknown = append(unknown, r)
		}
	}
	if len(unknown) > 0 {
		return errors.WithMessage(ErrUnknownColumn, strings.Join(unknown, ", "))
	}
	return nil
}
