package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"

	"numune-katalog/internal/database"
	"numune-katalog/internal/httperr"
	"numune-katalog/internal/models"
	"numune-katalog/internal/params"
	"numune-katalog/internal/samples"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLookups struct {
	rows   map[string][]models.LookupRow
	nextID uint
}

func newFakeLookups() *fakeLookups {
	f := &fakeLookups{rows: map[string][]models.LookupRow{}, nextID: 10}
	for _, c := range models.LookupCategories {
		f.rows[c.Table] = []models.LookupRow{}
	}
	f.put("product_groups", "Gömlek", "Pantolon")
	f.put("sample_statuses", "Taslak")
	f.put("lines", "Basic", "Premium", "Outlet")
	f.put("colors", "Siyah", "Beyaz")
	return f
}

func (f *fakeLookups) put(table string, names ...string) {
	for _, n := range names {
		f.nextID++
		order := len(f.rows[table]) + 1
		f.rows[table] = append(f.rows[table], models.LookupRow{ID: f.nextID, Name: n, IsActive: true, SortOrder: &order})
	}
}

func (f *fakeLookups) List(_ context.Context, cat models.LookupCategory) ([]models.LookupRow, error) {
	rows := append([]models.LookupRow{}, f.rows[cat.Table]...)
	sort.SliceStable(rows, func(i, j int) bool { return *rows[i].SortOrder < *rows[j].SortOrder })
	return rows, nil
}

func (f *fakeLookups) ListActive(ctx context.Context, cat models.LookupCategory) ([]models.LookupRow, error) {
	return f.List(ctx, cat)
}

func (f *fakeLookups) ListByName(_ context.Context, cat models.LookupCategory) ([]models.LookupRow, error) {
	rows := append([]models.LookupRow{}, f.rows[cat.Table]...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

func (f *fakeLookups) Add(_ context.Context, cat models.LookupCategory, name string) (models.LookupRow, error) {
	f.put(cat.Table, name)
	return f.rows[cat.Table][len(f.rows[cat.Table])-1], nil
}

func (f *fakeLookups) Update(_ context.Context, cat models.LookupCategory, id uint, p params.Patch) (models.LookupRow, error) {
	for i, r := range f.rows[cat.Table] {
		if r.ID == id {
			if p.Name != nil {
				r.Name = *p.Name
			}
			if p.IsActive != nil {
				r.IsActive = *p.IsActive
			}
			f.rows[cat.Table][i] = r
			return r, nil
		}
	}
	return models.LookupRow{}, database.ErrNotFound
}

func (f *fakeLookups) Delete(_ context.Context, cat models.LookupCategory, id uint) (models.LookupRow, error) {
	if cat.Table == "product_groups" {
		return models.LookupRow{}, database.ErrReferenced
	}
	return models.LookupRow{}, database.ErrNotFound
}

func (f *fakeLookups) Reorder(_ context.Context, cat models.LookupCategory, orders []models.LookupOrder) error {
	if err := params.ValidateOrders(orders); err != nil {
		return err
	}
	for _, o := range orders {
		for i := range f.rows[cat.Table] {
			if f.rows[cat.Table][i].ID == o.ID {
				pos := o.SortOrder
				f.rows[cat.Table][i].SortOrder = &pos
			}
		}
	}
	return nil
}

type fakeSamples struct {
	rows map[uint]models.Sample
}

func (f *fakeSamples) List(context.Context, samples.Filter) ([]models.SampleListItem, error) {
	group := "Gömlek"
	status := "Taslak"
	items := []models.SampleListItem{}
	for _, s := range f.rows {
		items = append(items, models.SampleListItem{ID: s.ID, ModelKodu: s.ModelKodu, ProductGroup: &group, SampleStatus: &status})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

func (f *fakeSamples) Get(_ context.Context, id uint) (models.SampleDetail, error) {
	s, ok := f.rows[id]
	if !ok {
		return models.SampleDetail{}, database.ErrNotFound
	}
	return models.SampleDetail{Sample: s}, nil
}

func (f *fakeSamples) ModelExists(_ context.Context, model string, exclude uint) (bool, error) {
	for _, s := range f.rows {
		if s.ModelKodu == model && s.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSamples) Create(_ context.Context, s *models.Sample) error {
	s.ID = uint(len(f.rows) + 1)
	f.rows[s.ID] = *s
	return nil
}

func (f *fakeSamples) Update(_ context.Context, id uint, s *models.Sample) error {
	s.ID = id
	f.rows[id] = *s
	return nil
}

type fakeUI struct {
	fields  []models.FieldConfig
	columns []models.ColumnConfig
}

func (f *fakeUI) Fields(context.Context, string) ([]models.FieldConfig, error) {
	return f.fields, nil
}
func (f *fakeUI) ReplaceFields(_ context.Context, _ string, fields []models.FieldConfig) error {
	f.fields = fields
	return nil
}
func (f *fakeUI) Columns(context.Context, string) ([]models.ColumnConfig, error) {
	return f.columns, nil
}
func (f *fakeUI) SetVisibleColumns(_ context.Context, _ string, visible []string) error {
	want := map[string]bool{}
	for _, v := range visible {
		want[v] = true
	}
	for i := range f.columns {
		f.columns[i].IsVisible = want[f.columns[i].ColumnName]
	}
	return nil
}

type env struct {
	app     *fiber.App
	lookups *fakeLookups
	samples *fakeSamples
	ui      *fakeUI
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		lookups: newFakeLookups(),
		samples: &fakeSamples{rows: map[uint]models.Sample{}},
		ui: &fakeUI{
			fields: []models.FieldConfig{
				{ColumnName: "model_kodu", DisplayName: "Model Kodu", IsVisibleForm: true, IsRequired: true},
				{ColumnName: "product_group_id", DisplayName: "Ürün Grubu", IsVisibleForm: true, IsRequired: true},
				{ColumnName: "line_id", DisplayName: "Line", IsVisibleForm: true, IsRequired: true},
				{ColumnName: "fabric_type_id", DisplayName: "Kumaş Tipi", IsVisibleForm: true, IsRequired: true},
				{ColumnName: "fabric_supplier_id", DisplayName: "Kumaş Tedarikçisi", IsVisibleForm: true, IsRequired: true},
				{ColumnName: "fit_type_id", DisplayName: "Fit Tipi", IsVisibleForm: true, IsRequired: true},
				{ColumnName: "sample_status_id", DisplayName: "Numune Durumu", IsVisibleForm: true, IsRequired: true},
				{ColumnName: "fabric_name", DisplayName: "Kumaş Adı", IsVisibleForm: true},
			},
			columns: []models.ColumnConfig{
				{ColumnName: "sample_status", DisplayName: "Numune Durumu", IsVisible: true, SortOrder: 1},
				{ColumnName: "model_kodu", DisplayName: "Model Kodu", IsVisible: true, SortOrder: 2},
				{ColumnName: "line", DisplayName: "Line", IsVisible: false, SortOrder: 3},
			},
		},
	}

	e.app = fiber.New(fiber.Config{Views: NewEngine(), ErrorHandler: httperr.Handler})
	NewPages(e.lookups, e.samples, e.ui, nil, nil).Register(e.app)
	return e
}

func (e *env) get(t *testing.T, path string) (int, string) {
	t.Helper()
	resp, err := e.app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(b)
}

func (e *env) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	return resp, string(b)
}

func TestListPage(t *testing.T) {
	e := newEnv(t)
	e.samples.rows[1] = models.Sample{ID: 1, ModelKodu: "GM-001"}

	status, body := e.get(t, "/")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "GM-001")
	assert.Contains(t, body, "Numune Durumu ▲")
	assert.NotContains(t, body, "<th><a href=\"/?dir=asc&amp;sort=line\">Line")
	// aktif kolona tekrar tıklamak yönü çevirir
	assert.Contains(t, body, `href="/?dir=desc&amp;sort=sample_status"`)
	assert.Contains(t, body, `href="/?dir=asc&amp;sort=model_kodu"`)
	assert.Contains(t, body, "Pantolon")
}

func baseForm() url.Values {
	return url.Values{
		"model_kodu":         {"GM-7"},
		"product_group_id":   {"11"},
		"line_id":            {"14"},
		"fabric_type_id":     {"1"},
		"fabric_supplier_id": {"1"},
		"fit_type_id":        {"1"},
		"sample_status_id":   {"13"},
		"color":              {"18"},
	}
}

func TestFormCreateFlow(t *testing.T) {
	e := newEnv(t)

	status, body := e.get(t, "/form")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "Yeni Numune")
	assert.Contains(t, body, `placeholder="Model Kodu giriniz"`)
	assert.Contains(t, body, "-- Seçiniz --")
	assert.Contains(t, body, `name="color"`)

	form := baseForm()
	form.Set("action", "add_color")
	_, body = e.post(t, "/form", form)
	assert.Equal(t, 2, strings.Count(body, `class="color-row"`))

	form.Set("color", "18")
	form.Add("color", "17")
	_, body = e.post(t, "/form", form)
	assert.Contains(t, body, "Tüm renkler zaten eklendi.")

	form = baseForm()
	form.Set("action", "save")
	form.Del("model_kodu")
	_, body = e.post(t, "/form", form)
	assert.Contains(t, body, "Zorunlu alanlar boş: Model Kodu")
	assert.Empty(t, e.samples.rows)

	form.Set("model_kodu", "GM-7")
	resp, _ := e.post(t, "/form", form)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/form?id=1&saved=1", resp.Header.Get("Location"))
	require.Len(t, e.samples.rows, 1)
	assert.Equal(t, []int64{18}, []int64(e.samples.rows[1].ColorList))

	status, body = e.get(t, "/form?id=1&saved=1")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "Numune Düzenle")
	assert.Contains(t, body, "Numune kaydedildi.")
	assert.Contains(t, body, `value="GM-7"`)
}

func TestFormEditDuplicateModel(t *testing.T) {
	e := newEnv(t)
	e.samples.rows[1] = models.Sample{ID: 1, ModelKodu: "A"}
	e.samples.rows[2] = models.Sample{ID: 2, ModelKodu: "B"}

	form := baseForm()
	form.Set("model_kodu", "A")
	form.Set("action", "save")
	_, body := e.post(t, "/form?id=2", form)
	assert.Contains(t, body, "Bu model kodu zaten kayıtlı: A")

	form.Set("model_kodu", "B")
	_, body = e.post(t, "/form?id=2", form)
	assert.Contains(t, body, "Numune güncellendi.")

	status, _ := e.get(t, "/form?id=99")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestFormEditKeepsHiddenFields(t *testing.T) {
	e := newEnv(t)
	supplier := "Baskıcı A"
	width := 150.0
	e.samples.rows[1] = models.Sample{
		ID: 1, ModelKodu: "GM-7", ProductGroupID: 11, LineID: 14, FabricTypeID: 1,
		FabricSupplierID: 1, FitTypeID: 1, SampleStatusID: 13,
		PrintSupplier: &supplier, FabricWidth: &width,
	}

	form := baseForm()
	form.Set("action", "save")
	form.Set("fabric_name", "Poplin")
	_, body := e.post(t, "/form?id=1", form)
	require.Contains(t, body, "Numune güncellendi.")

	got := e.samples.rows[1]
	require.NotNil(t, got.FabricName)
	assert.Equal(t, "Poplin", *got.FabricName)
	require.NotNil(t, got.PrintSupplier)
	assert.Equal(t, "Baskıcı A", *got.PrintSupplier)
	require.NotNil(t, got.FabricWidth)
	assert.Equal(t, 150.0, *got.FabricWidth)
	assert.Equal(t, []int64{18}, []int64(got.ColorList))
}

func TestParamsPage(t *testing.T) {
	e := newEnv(t)

	status, body := e.get(t, "/params?table=lines")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "Premium")

	status, _ = e.get(t, "/params?table=users")
	assert.Equal(t, fiber.StatusNotFound, status)

	lines := e.lookups.rows["lines"]
	_, body = e.post(t, "/params?table=lines", url.Values{
		"action": {"move"}, "dir": {"up"}, "id": {idstr(lines[2].ID)},
	})
	assert.Contains(t, body, "Sıralama kaydedildi.")
	got, _ := e.lookups.List(context.Background(), models.LookupCategory{Table: "lines"})
	assert.Equal(t, []string{"Basic", "Outlet", "Premium"}, []string{got[0].Name, got[1].Name, got[2].Name})

	_, body = e.post(t, "/params?table=product_groups", url.Values{
		"action": {"delete"}, "id": {idstr(e.lookups.rows["product_groups"][0].ID)},
	})
	assert.Contains(t, body, "Bu parametre bazı ürünlerde kullanıldığı için silinemez.")

	_, body = e.post(t, "/params?table=lines", url.Values{"action": {"add"}, "name": {"Kids"}})
	assert.Contains(t, body, "Eklendi: Kids")
}

func TestColumnsPage(t *testing.T) {
	e := newEnv(t)

	_, body := e.post(t, "/columns", url.Values{"visible": {"line", "model_kodu"}})
	assert.Contains(t, body, "Kolon ayarları kaydedildi.")
	assert.False(t, e.ui.columns[0].IsVisible)
	assert.True(t, e.ui.columns[1].IsVisible)
	assert.True(t, e.ui.columns[2].IsVisible)
}

func TestIDsByPosition(t *testing.T) {
	rows := []models.LookupRow{{ID: 1}, {ID: 2}, {ID: 3}}
	pos := map[uint]string{1: "3", 2: "", 3: "1"}
	ids := IDsByPosition(rows, func(id uint) string { return pos[id] })
	assert.Equal(t, []uint{3, 2, 1}, ids)

	assert.Equal(t, []uint{1, 2, 3}, MoveID(rows, 1, true))
	assert.Equal(t, []uint{2, 1, 3}, MoveID(rows, 1, false))
}

func idstr(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
