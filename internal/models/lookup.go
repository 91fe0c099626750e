package models

// LookupRow: tüm parametre tablolarının (ürün grubu, line, kumaş tipi, renk ...) ortak satırı.
// Her kategori kendi tablosunda tutulur, tablo adı sorguda Table(...) ile verilir.
type LookupRow struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:150;not null" json:"name"`
	IsActive  bool   `gorm:"not null;default:true" json:"is_active"`
	SortOrder *int   `gorm:"index" json:"sort_order"`
}

// LookupOrder: sıralama isteğindeki tek eleman
type LookupOrder struct {
	ID        uint `json:"id"`
	SortOrder int  `json:"sort_order"`
}

// LookupCategory: izin verilen parametre tabloları. Tablo adları SQL'e yalnızca bu listeden girer.
type LookupCategory struct {
	Table string // tablo adı, /api/params/:table ve /api/options anahtarı
	Label string // ekranda görünen ad
	// SampleColumn: samples tablosunda bu tabloya FK olan kolon; colors için boş
	SampleColumn string
}

const ColorsTable = "colors"

var LookupCategories = []LookupCategory{
	{Table: "product_groups", Label: "Ürün Grupları", SampleColumn: "product_group_id"},
	{Table: "lines", Label: "Line", SampleColumn: "line_id"},
	{Table: "fabric_types", Label: "Kumaş Tipleri", SampleColumn: "fabric_type_id"},
	{Table: "fabric_suppliers", Label: "Kumaş Tedarikçileri", SampleColumn: "fabric_supplier_id"},
	{Table: "fit_types", Label: "Fit Tipleri", SampleColumn: "fit_type_id"},
	{Table: "collar_types", Label: "Yaka Tipleri", SampleColumn: "collar_type_id"},
	{Table: "sample_statuses", Label: "Numune Durumları", SampleColumn: "sample_status_id"},
	{Table: "design_responsibles", Label: "Tasarım Sorumluları", SampleColumn: "design_responsible_id"},
	{Table: "production_responsibles", Label: "Üretim Sorumluları", SampleColumn: "production_responsible_id"},
	{Table: ColorsTable, Label: "Renkler"},
}

// FindLookupCategory tablo adına göre kategori döner.
func FindLookupCategory(table string) (LookupCategory, bool) {
	for _, c := range LookupCategories {
		if c.Table == table {
			return c, true
		}
	}
	return LookupCategory{}, false
}

// LookupCategoryForColumn samples kolonundan kategori bulur (ör: fit_type_id -> fit_types).
func LookupCategoryForColumn(column string) (LookupCategory, bool) {
	for _, c := range LookupCategories {
		if c.SampleColumn != "" && c.SampleColumn == column {
			return c, true
		}
	}
	return LookupCategory{}, false
}
