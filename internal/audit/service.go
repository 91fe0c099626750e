package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"numune-katalog/internal/models"

	"gorm.io/gorm"
)

type LogOptions struct {
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

type Filter struct {
	EntityType string
	EntityID   uint
	Limit      int
}

// Writer denetim kaydı yazar. Handler'lar hata durumunda isteği düşürmez, sadece loglar.
type Writer interface {
	WriteLog(ctx context.Context, opts LogOptions) error
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) WriteLog(ctx context.Context, opts LogOptions) error {
	entry := BuildLog(opts)
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]models.AuditLog, error) {
	q := s.db.WithContext(ctx).Model(&models.AuditLog{})
	if f.EntityType != "" {
		q = q.Where("entity_type = ?", f.EntityType)
	}
	if f.EntityID > 0 {
		q = q.Where("entity_id = ?", f.EntityID)
	}

	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var logs []models.AuditLog
	if err := q.Order("created_at desc, id desc").Limit(limit).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// BuildLog before/after verisini jsonb'ye uygun metne çevirir.
func BuildLog(opts LogOptions) models.AuditLog {
	// PostgreSQL jsonb için boş string yerine "null" JSON string'i kullanmalıyız
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	return models.AuditLog{
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}
}

// Nop hiçbir şey yazmaz.
type Nop struct{}

func (Nop) WriteLog(context.Context, LogOptions) error { return nil }
