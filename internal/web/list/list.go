// Package list numune listesinin sıralama, filtre ve kolon seçimini yapar.
package list

import (
	"sort"
	"time"

	"numune-katalog/internal/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const DefaultSortColumn = "sample_status"

// ViewState listenin görünüm durumu. Sayfa her istekte query'den yeniden kurar.
type ViewState struct {
	SortColumn  string
	SortAsc     bool
	GroupFilter string
}

func NewViewState() ViewState {
	return ViewState{SortColumn: DefaultSortColumn, SortAsc: true}
}

// Toggle aynı kolonda yönü çevirir, farklı kolonda artan sıradan başlar.
func (v *ViewState) Toggle(column string) {
	if v.SortColumn == column {
		v.SortAsc = !v.SortAsc
		return
	}
	v.SortColumn = column
	v.SortAsc = true
}

type Header struct {
	Column string
	Label  string
	Active bool
	Asc    bool
}

type Row struct {
	ID    uint
	Cells []string
}

type Table struct {
	Headers []Header
	Rows    []Row
}

// compare: -1, 0, 1. Metinler Türkçe sıralamayla, tarihler zamana göre karşılaştırılır.
func compare(col *collate.Collator, a, b interface{}) int {
	switch av := a.(type) {
	case time.Time:
		bv, _ := b.(time.Time)
		switch {
		case av.Before(bv):
			return -1
		case av.After(bv):
			return 1
		}
		return 0
	case string:
		bv, _ := b.(string)
		return col.CompareString(av, bv)
	}
	return 0
}

// Sort satırları seçili kolona göre sıralar. Stabil sıralama kullanılır, eşit değerler
// store'dan gelen sırayı (en yeni önce) korur. Bilinmeyen kolon sırayı değiştirmez.
func Sort(items []models.SampleListItem, v ViewState) {
	if _, ok := (models.SampleListItem{}).Value(v.SortColumn); !ok {
		return
	}

	col := collate.New(language.Turkish)
	sort.SliceStable(items, func(i, j int) bool {
		a, _ := items[i].Value(v.SortColumn)
		b, _ := items[j].Value(v.SortColumn)
		c := compare(col, a, b)
		if v.SortAsc {
			return c < 0
		}
		return c > 0
	})
}

// Filter ürün grubu adına göre eşitlik filtresi. Boş filtre hepsini döner.
func Filter(items []models.SampleListItem, group string) []models.SampleListItem {
	if group == "" {
		return items
	}
	out := make([]models.SampleListItem, 0, len(items))
	for _, it := range items {
		if it.ProductGroup != nil && *it.ProductGroup == group {
			out = append(out, it)
		}
	}
	return out
}

// Render filtreler, sıralar ve hücreleri görünür kolonlarla (ayar sırasıyla) sınırlar.
func Render(columns []models.ColumnConfig, items []models.SampleListItem, v ViewState) Table {
	rows := append([]models.SampleListItem(nil), Filter(items, v.GroupFilter)...)
	Sort(rows, v)

	visible := make([]models.ColumnConfig, 0, len(columns))
	for _, c := range columns {
		if c.IsVisible {
			visible = append(visible, c)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool { return visible[i].SortOrder < visible[j].SortOrder })

	t := Table{
		Headers: make([]Header, len(visible)),
		Rows:    make([]Row, len(rows)),
	}
	for i, c := range visible {
		t.Headers[i] = Header{
			Column: c.ColumnName,
			Label:  c.DisplayName,
			Active: c.ColumnName == v.SortColumn,
			Asc:    v.SortAsc,
		}
	}
	for i, it := range rows {
		cells := make([]string, len(visible))
		for j, c := range visible {
			cells[j] = it.Text(c.ColumnName)
		}
		t.Rows[i] = Row{ID: it.ID, Cells: cells}
	}
	return t
}
