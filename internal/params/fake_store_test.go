package params

import (
	"context"
	"sort"
	"strings"
	"sync"

	"numune-katalog/internal/database"
	"numune-katalog/internal/models"

	"github.com/pkg/errors"
)

// memStore: testler için bellek içi Store
type memStore struct {
	mu         sync.Mutex
	tables     map[string][]models.LookupRow
	referenced map[string]map[uint]bool
	nextID     uint
	reorderErr error
}

func newMemStore() *memStore {
	return &memStore{
		tables:     map[string][]models.LookupRow{},
		referenced: map[string]map[uint]bool{},
		nextID:     100,
	}
}

func intPtr(v int) *int { return &v }

func (s *memStore) seed(table string, names ...string) []models.LookupRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range names {
		s.nextID++
		s.tables[table] = append(s.tables[table], models.LookupRow{
			ID: s.nextID, Name: n, IsActive: true, SortOrder: intPtr(i + 1),
		})
	}
	return append([]models.LookupRow(nil), s.tables[table]...)
}

func (s *memStore) markReferenced(table string, id uint) {
	if s.referenced[table] == nil {
		s.referenced[table] = map[uint]bool{}
	}
	s.referenced[table][id] = true
}

func sortRows(rows []models.LookupRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].SortOrder, rows[j].SortOrder
		switch {
		case a == nil && b == nil:
			return rows[i].Name < rows[j].Name
		case a == nil:
			return false
		case b == nil:
			return true
		case *a != *b:
			return *a < *b
		}
		return rows[i].Name < rows[j].Name
	})
}

func (s *memStore) List(_ context.Context, cat models.LookupCategory) ([]models.LookupRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := append([]models.LookupRow{}, s.tables[cat.Table]...)
	sortRows(rows)
	return rows, nil
}

func (s *memStore) ListActive(ctx context.Context, cat models.LookupCategory) ([]models.LookupRow, error) {
	rows, _ := s.List(ctx, cat)
	out := rows[:0]
	for _, r := range rows {
		if r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) Add(_ context.Context, cat models.LookupCategory, name string) (models.LookupRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	max := 0
	for _, r := range s.tables[cat.Table] {
		if r.SortOrder != nil && *r.SortOrder > max {
			max = *r.SortOrder
		}
	}
	s.nextID++
	row := models.LookupRow{ID: s.nextID, Name: strings.TrimSpace(name), IsActive: true, SortOrder: intPtr(max + 1)}
	s.tables[cat.Table] = append(s.tables[cat.Table], row)
	return row, nil
}

func (s *memStore) Update(_ context.Context, cat models.LookupCategory, id uint, p Patch) (models.LookupRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.tables[cat.Table] {
		if r.ID != id {
			continue
		}
		if p.Name != nil {
			r.Name = strings.TrimSpace(*p.Name)
		}
		if p.IsActive != nil {
			r.IsActive = *p.IsActive
		}
		s.tables[cat.Table][i] = r
		return r, nil
	}
	return models.LookupRow{}, database.ErrNotFound
}

func (s *memStore) Delete(_ context.Context, cat models.LookupCategory, id uint) (models.LookupRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.tables[cat.Table]
	for i, r := range rows {
		if r.ID != id {
			continue
		}
		if s.referenced[cat.Table][id] {
			return models.LookupRow{}, errors.WithMessage(database.ErrReferenced, "fk_samples_"+cat.SampleColumn)
		}
		s.tables[cat.Table] = append(rows[:i:i], rows[i+1:]...)
		return r, nil
	}
	return models.LookupRow{}, database.ErrNotFound
}

// Reorder gerçek store gibi ya hepsini ya hiçbirini uygular.
func (s *memStore) Reorder(_ context.Context, cat models.LookupCategory, orders []models.LookupOrder) error {
	if s.reorderErr != nil {
		return s.reorderErr
	}
	if err := ValidateOrders(orders); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rows := append([]models.LookupRow{}, s.tables[cat.Table]...)
	for _, o := range orders {
		found := false
		for i := range rows {
			if rows[i].ID == o.ID {
				rows[i].SortOrder = intPtr(o.SortOrder)
				found = true
			}
		}
		if !found {
			return errors.WithMessagef(ErrInvalidOrder, "id %d bulunamadı", o.ID)
		}
	}
	s.tables[cat.Table] = rows
	return nil
}
