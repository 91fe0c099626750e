// Package form numune formunu alan konfigürasyonundan kurar ve form durumunu tutar.
// I/O yapmaz, sayfa handler'ı veriyi yükleyip buraya verir.
package form

import (
	"strings"

	"numune-katalog/internal/models"
)

type Kind string

const (
	KindText   Kind = "text"
	KindSelect Kind = "select"
)

type Option struct {
	ID   uint
	Name string
}

// Field: ekranda çizilecek tek alan
type Field struct {
	Column      string
	Label       string
	Kind        Kind
	Required    bool
	Placeholder string
	// Category select alanlarının seçenek tablosu, bulunamazsa boş
	Category string
	Options  []Option
}

func toOptions(rows []models.LookupRow) []Option {
	out := make([]Option, len(rows))
	for i, r := range rows {
		out[i] = Option{ID: r.ID, Name: r.Name}
	}
	return out
}

// categoryFor: önce bilinen kolon eşlemesi, sonra "<önek>s" tablosu
func categoryFor(column string) (models.LookupCategory, bool) {
	if cat, ok := models.LookupCategoryForColumn(column); ok {
		return cat, true
	}
	return models.FindLookupCategory(strings.TrimSuffix(column, "_id") + "s")
}

// Build alan listesinden formu kurar. Görünmeyen ya da adı eksik alanlar hiç çıkmaz.
// "_id" ile biten alanlar select olur, seçenekleri options'tan gelir.
func Build(fields []models.FieldConfig, options map[string][]models.LookupRow) []Field {
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		column := strings.TrimSpace(f.ColumnName)
		label := strings.TrimSpace(f.DisplayName)
		if !f.IsVisibleForm || column == "" || label == "" {
			continue
		}

		field := Field{
			Column:   column,
			Label:    label,
			Kind:     KindText,
			Required: f.IsRequired,
		}

		if strings.HasSuffix(column, "_id") {
			field.Kind = KindSelect
			field.Options = []Option{}
			if cat, ok := categoryFor(column); ok {
				field.Category = cat.Table
				field.Options = toOptions(options[cat.Table])
			}
		} else {
			field.Placeholder = label + " giriniz"
		}

		out = append(out, field)
	}
	return out
}
