package params

import (
	"context"
	"strings"

	"numune-katalog/internal/database"
	"numune-katalog/internal/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Patch: kısmi güncelleme, nil alanlara dokunulmaz
type Patch struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.IsActive == nil
}

type Store interface {
	List(ctx context.Context, cat models.LookupCategory) ([]models.LookupRow, error)
	ListActive(ctx context.Context, cat models.LookupCategory) ([]models.LookupRow, error)
	Add(ctx context.Context, cat models.LookupCategory, name string) (models.LookupRow, error)
	Update(ctx context.Context, cat models.LookupCategory, id uint, p Patch) (models.LookupRow, error)
	Delete(ctx context.Context, cat models.LookupCategory, id uint) (models.LookupRow, error)
	Reorder(ctx context.Context, cat models.LookupCategory, orders []models.LookupOrder) error
}

type GormStore struct {
	db       *gorm.DB
	attempts int
}

func NewGormStore(db *gorm.DB, retryAttempts int) *GormStore {
	return &GormStore{db: db, attempts: retryAttempts}
}

var lookupColumns = []string{"id", "name", "is_active", "sort_order"}

// ListQuery parametre tablosu için sıralı select. Sıralama: sort_order (null en sonda), sonra ad.
func ListQuery(cat models.LookupCategory, activeOnly bool) sq.SelectBuilder {
	q := sq.Select(lookupColumns...).
		From(cat.Table).
		OrderBy("sort_order ASC NULLS LAST", "name ASC")
	if activeOnly {
		q = q.Where(sq.Eq{"is_active": true})
	}
	return q
}

func (s *GormStore) List(ctx context.Context, cat models.LookupCategory) ([]models.LookupRow, error) {
	return s.list(ctx, ListQuery(cat, false))
}

func (s *GormStore) ListActive(ctx context.Context, cat models.LookupCategory) ([]models.LookupRow, error) {
	return s.list(ctx, ListQuery(cat, true))
}

// ListByName tüm satırları ada göre döner (renk seçici için).
func (s *GormStore) ListByName(ctx context.Context, cat models.LookupCategory) ([]models.LookupRow, error) {
	return s.list(ctx, sq.Select(lookupColumns...).From(cat.Table).OrderBy("name ASC", "id ASC"))
}

func (s *GormStore) list(ctx context.Context, q sq.SelectBuilder) ([]models.LookupRow, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}

	rows := make([]models.LookupRow, 0)
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Add yeni satırı aktif olarak ve sort_order = max+1 ile ekler. max aynı INSERT içinde hesaplanır.
func (s *GormStore) Add(ctx context.Context, cat models.LookupCategory, name string) (models.LookupRow, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.LookupRow{}, errors.New("ad boş olamaz")
	}

	query, args, err := sq.Insert(cat.Table).
		Columns("name", "is_active", "sort_order").
		Select(sq.Select().
			Column("CAST(? AS TEXT)", name).
			Column("TRUE").
			Column("COALESCE(MAX(sort_order), 0) + 1").
			From(cat.Table)).
		Suffix("RETURNING " + strings.Join(lookupColumns, ", ")).
		ToSql()
	if err != nil {
		return models.LookupRow{}, err
	}

	var row models.LookupRow
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&row).Error; err != nil {
		return models.LookupRow{}, database.Classify(err)
	}
	return row, nil
}

func (s *GormStore) Update(ctx context.Context, cat models.LookupCategory, id uint, p Patch) (models.LookupRow, error) {
	updates := map[string]interface{}{}
	if p.Name != nil {
		updates["name"] = strings.TrimSpace(*p.Name)
	}
	if p.IsActive != nil {
		updates["is_active"] = *p.IsActive
	}

	db := s.db.WithContext(ctx)
	res := db.Table(cat.Table).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return models.LookupRow{}, database.Classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.LookupRow{}, database.ErrNotFound
	}

	var row models.LookupRow
	if err := db.Table(cat.Table).Where("id = ?", id).Take(&row).Error; err != nil {
		return models.LookupRow{}, database.Classify(err)
	}
	return row, nil
}

// Delete satırı siler ve silinen satırı döner. samples FK'leri RESTRICT olduğu için
// kullanılan satırda postgres 23503 döner. color_list'te FK yok, renkler elle kontrol edilir.
func (s *GormStore) Delete(ctx context.Context, cat models.LookupCategory, id uint) (models.LookupRow, error) {
	var row models.LookupRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(cat.Table).Where("id = ?", id).Take(&row).Error; err != nil {
			return err
		}

		if cat.Table == models.ColorsTable {
			var count int64
			if err := tx.Model(&models.Sample{}).Where("? = ANY(color_list)", id).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return errors.WithMessagef(database.ErrReferenced, "renk %d adet numunede kullanılıyor", count)
			}
		}

		return tx.Table(cat.Table).Where("id = ?", id).Delete(&models.LookupRow{}).Error
	})
	if err != nil {
		return models.LookupRow{}, database.Classify(err)
	}
	return row, nil
}

// Reorder tüm sıralamayı tek transaction'da yazar. Bir satır bile güncellenemezse
// hiçbir değişiklik kalmaz. Geçici hatalarda tüm batch tekrar denenir.
func (s *GormStore) Reorder(ctx context.Context, cat models.LookupCategory, orders []models.LookupOrder) error {
	if err := ValidateOrders(orders); err != nil {
		return err
	}

	return database.WithRetry(ctx, s.attempts, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, o := range orders {
				res := tx.Table(cat.Table).Where("id = ?", o.ID).Update("sort_order", o.SortOrder)
				if res.Error != nil {
					return res.Error
				}
				if res.RowsAffected != 1 {
					return errors.WithMessagef(ErrInvalidOrder, "id %d bulunamadı", o.ID)
				}
			}
			return nil
		})
	})
}
