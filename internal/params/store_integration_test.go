package params

import (
	"context"
	"os"
	"testing"

	"numune-katalog/internal/database"
	"numune-katalog/internal/models"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TEST_DATABASE_DSN tanımlı değilse atlanır. Tablolar her testte boşaltılır.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN tanımlı değil")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	tables := "samples"
	for _, c := range models.LookupCategories {
		tables += ", " + c.Table
	}
	require.NoError(t, db.Exec("TRUNCATE "+tables+" RESTART IDENTITY CASCADE").Error)
	return db
}

func mustCat(t *testing.T, table string) models.LookupCategory {
	cat, err := ResolveTable(table)
	require.NoError(t, err)
	return cat
}

func TestGormStoreAddAndList(t *testing.T) {
	db := testDB(t)
	s := NewGormStore(db, 1)
	ctx := context.Background()
	cat := mustCat(t, "lines")

	first, err := s.Add(ctx, cat, "Basic")
	require.NoError(t, err)
	require.NotNil(t, first.SortOrder)
	assert.Equal(t, 1, *first.SortOrder)

	second, err := s.Add(ctx, cat, "Premium")
	require.NoError(t, err)
	assert.Equal(t, 2, *second.SortOrder)

	// sort_order null olan satır en sonda
	require.NoError(t, db.Exec("INSERT INTO lines (name, is_active) VALUES ('Aaa', false)").Error)

	rows, err := s.List(ctx, cat)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Basic", "Premium", "Aaa"}, []string{rows[0].Name, rows[1].Name, rows[2].Name})

	active, err := s.ListActive(ctx, cat)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestGormStoreReorderIsAtomic(t *testing.T) {
	db := testDB(t)
	s := NewGormStore(db, 1)
	ctx := context.Background()
	cat := mustCat(t, "fit_types")

	a, _ := s.Add(ctx, cat, "Slim")
	b, _ := s.Add(ctx, cat, "Regular")
	c, _ := s.Add(ctx, cat, "Oversize")

	require.NoError(t, s.Reorder(ctx, cat, OrdersFromIDs([]uint{c.ID, a.ID, b.ID})))
	rows, _ := s.List(ctx, cat)
	assert.Equal(t, []uint{c.ID, a.ID, b.ID}, []uint{rows[0].ID, rows[1].ID, rows[2].ID})
	for i, r := range rows {
		assert.Equal(t, i+1, *r.SortOrder)
	}

	err := s.Reorder(ctx, cat, OrdersFromIDs([]uint{a.ID, b.ID, 99999}))
	assert.ErrorIs(t, err, ErrInvalidOrder)

	after, _ := s.List(ctx, cat)
	assert.Equal(t, rows, after)
}

func TestGormStoreDeleteReferenced(t *testing.T) {
	db := testDB(t)
	s := NewGormStore(db, 1)
	ctx := context.Background()

	ids := map[string]uint{}
	for _, c := range models.LookupCategories {
		row, err := s.Add(ctx, c, "Test "+c.Table)
		require.NoError(t, err)
		ids[c.Table] = row.ID
	}
	unused, _ := s.Add(ctx, mustCat(t, "colors"), "Kullanılmayan")

	sample := models.Sample{
		ModelKodu:        "M-1",
		ProductGroupID:   ids["product_groups"],
		LineID:           ids["lines"],
		FabricTypeID:     ids["fabric_types"],
		FabricSupplierID: ids["fabric_suppliers"],
		FitTypeID:        ids["fit_types"],
		SampleStatusID:   ids["sample_statuses"],
		ColorList:        pq.Int64Array{int64(ids["colors"])},
	}
	require.NoError(t, db.Create(&sample).Error)

	_, err := s.Delete(ctx, mustCat(t, "lines"), ids["lines"])
	assert.ErrorIs(t, err, database.ErrReferenced)

	_, err = s.Delete(ctx, mustCat(t, "colors"), ids["colors"])
	assert.ErrorIs(t, err, database.ErrReferenced)

	_, err = s.Delete(ctx, mustCat(t, "colors"), unused.ID)
	assert.NoError(t, err)

	_, err = s.Delete(ctx, mustCat(t, "colors"), unused.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	rows, _ := s.List(ctx, mustCat(t, "colors"))
	require.Len(t, rows, 1)
	assert.Equal(t, ids["colors"], rows[0].ID)
}
