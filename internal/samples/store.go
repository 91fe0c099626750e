package samples

import (
	"context"
	"fmt"
	"strings"
	"time"

	"numune-katalog/internal/database"
	"numune-katalog/internal/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Filter struct {
	// ProductGroup ürün grubu adına göre eşitlik filtresi, boşsa filtre yok
	ProductGroup string
}

type Store interface {
	List(ctx context.Context, f Filter) ([]models.SampleListItem, error)
	Get(ctx context.Context, id uint) (models.SampleDetail, error)
	ModelExists(ctx context.Context, model string, exclude uint) (bool, error)
	Create(ctx context.Context, s *models.Sample) error
	Update(ctx context.Context, id uint, s *models.Sample) error
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

const colorNamesQuery = "SELECT %s(c.name%s ORDER BY c.name) FROM colors c WHERE c.id = ANY(s.color_list)"

// ListQuery liste sorgusu: her lookup için LEFT JOIN, renkler ada göre virgülle birleşik.
func ListQuery(f Filter) sq.SelectBuilder {
	q := sq.Select("s.id", "s.model_kodu").From("samples s")

	for i, c := range models.LookupCategories {
		if c.SampleColumn == "" {
			continue
		}
		alias := fmt.Sprintf("l%d", i)
		q = q.
			Column(fmt.Sprintf("%s.name AS %s", alias, strings.TrimSuffix(c.SampleColumn, "_id"))).
			LeftJoin(fmt.Sprintf("%s %s ON %s.id = s.%s", c.Table, alias, alias, c.SampleColumn))

		if c.SampleColumn == "product_group_id" && f.ProductGroup != "" {
			q = q.Where(sq.Eq{alias + ".name": f.ProductGroup})
		}
	}

	return q.
		Column("(" + fmt.Sprintf(colorNamesQuery, "string_agg", ", ', '") + ") AS colors").
		Column("s.created_at").
		Column("s.updated_at").
		OrderBy("s.created_at DESC", "s.id DESC")
}

func (s *GormStore) List(ctx context.Context, f Filter) ([]models.SampleListItem, error) {
	query, args, err := ListQuery(f).ToSql()
	if err != nil {
		return nil, err
	}

	items := make([]models.SampleListItem, 0)
	if err := s.db.WithContext(ctx).Raw(query, args...).Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *GormStore) Get(ctx context.Context, id uint) (models.SampleDetail, error) {
	query, args, err := sq.Select("s.*").
		Column("COALESCE((" + fmt.Sprintf(colorNamesQuery, "array_agg", "") + "), '{}') AS color_names").
		From("samples s").
		Where(sq.Eq{"s.id": id}).
		ToSql()
	if err != nil {
		return models.SampleDetail{}, err
	}

	var detail models.SampleDetail
	res := s.db.WithContext(ctx).Raw(query, args...).Scan(&detail)
	if res.Error != nil {
		return models.SampleDetail{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.SampleDetail{}, database.ErrNotFound
	}
	return detail, nil
}

func modelExists(tx *gorm.DB, model string, exclude uint) (bool, error) {
	q := tx.Model(&models.Sample{}).Where("model_kodu = ?", model)
	if exclude > 0 {
		q = q.Where("id <> ?", exclude)
	}
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *GormStore) ModelExists(ctx context.Context, model string, exclude uint) (bool, error) {
	return modelExists(s.db.WithContext(ctx), strings.TrimSpace(model), exclude)
}

// Create model_kodu kontrolünü ve kaydı aynı transaction'da yapar.
// Tabloda unique constraint yok, eş zamanlı iki kayıt yine de geçebilir.
func (s *GormStore) Create(ctx context.Context, sample *models.Sample) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := modelExists(tx, sample.ModelKodu, 0)
		if err != nil {
			return err
		}
		if exists {
			return errors.WithMessage(database.ErrConflict, sample.ModelKodu)
		}
		return database.Classify(tx.Create(sample).Error)
	})
}

// Update tüm alanları gönderilen değerlerle değiştirir, null gelen alanlar temizlenir.
func (s *GormStore) Update(ctx context.Context, id uint, sample *models.Sample) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Sample
		if err := tx.Select("id", "created_at").Take(&current, "id = ?", id).Error; err != nil {
			return database.Classify(err)
		}

		exists, err := modelExists(tx, sample.ModelKodu, id)
		if err != nil {
			return err
		}
		if exists {
			return errors.WithMessage(database.ErrConflict, sample.ModelKodu)
		}

		sample.ID = id
		sample.CreatedAt = current.CreatedAt
		sample.UpdatedAt = time.Now()

		res := tx.Model(&models.Sample{}).
			Where("id = ?", id).
			Select("*").
			Omit("id", "created_at").
			Updates(sample)
		if res.Error != nil {
			return database.Classify(res.Error)
		}
		if res.RowsAffected == 0 {
			return database.ErrNotFound
		}
		return nil
	})
}
