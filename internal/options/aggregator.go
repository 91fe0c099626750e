package options

import (
	"context"
	"sync"

	"numune-katalog/internal/models"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Fetcher tek kategori için aktif satırları sıralı döner.
type Fetcher interface {
	ListActive(ctx context.Context, cat models.LookupCategory) ([]models.LookupRow, error)
}

// Options: kategori adı -> aktif satırlar
type Options map[string][]models.LookupRow

type Aggregator struct {
	fetcher    Fetcher
	categories []models.LookupCategory
}

func NewAggregator(f Fetcher) *Aggregator {
	return &Aggregator{fetcher: f, categories: models.LookupCategories}
}

// Load tüm kategorileri paralel okur. Biri bile hata verirse sonuç dönmez.
func (a *Aggregator) Load(ctx context.Context) (Options, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	out := make(Options, len(a.categories))

	for _, cat := range a.categories {
		g.Go(func() error {
			rows, err := a.fetcher.ListActive(ctx, cat)
			if err != nil {
				return errors.Wrapf(err, "%s okunamadı", cat.Table)
			}
			if rows == nil {
				rows = []models.LookupRow{}
			}

			mu.Lock()
			out[cat.Table] = rows
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
