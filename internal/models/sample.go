package models

import (
	"time"

	"github.com/lib/pq"
)

// Sample: numune kaydı. Lookup alanları ilgili parametre tablolarına FK ile bağlıdır,
// color_list ise colors tablosundaki id'leri tutan integer[] (FK yok).
type Sample struct {
	ID                      uint          `gorm:"primaryKey" json:"id"`
	ModelKodu               string        `gorm:"size:100;not null;index" json:"model_kodu"`
	ProductGroupID          uint          `gorm:"not null;index" json:"product_group_id"`
	LineID                  uint          `gorm:"not null;index" json:"line_id"`
	FabricTypeID            uint          `gorm:"not null;index" json:"fabric_type_id"`
	FabricSupplierID        uint          `gorm:"not null;index" json:"fabric_supplier_id"`
	FitTypeID               uint          `gorm:"not null;index" json:"fit_type_id"`
	CollarTypeID            *uint         `gorm:"index" json:"collar_type_id"`
	SampleStatusID          uint          `gorm:"not null;index" json:"sample_status_id"`
	DesignResponsibleID     *uint         `gorm:"index" json:"design_responsible_id"`
	ProductionResponsibleID *uint         `gorm:"index" json:"production_responsible_id"`
	FabricContent           *string       `gorm:"size:255" json:"fabric_content"`
	FabricName              *string       `gorm:"size:255" json:"fabric_name"`
	FabricWidth             *float64      `json:"fabric_width"`
	FabricWeight            *float64      `json:"fabric_weight"`
	ProductDescription      *string       `gorm:"type:text" json:"product_description"`
	FabricUnitPrice         *float64      `json:"fabric_unit_price"`
	PrintSupplier           *string       `gorm:"size:255" json:"print_supplier"`
	EmbroiderySupplier      *string       `gorm:"size:255" json:"embroidery_supplier"`
	DyeingSupplier          *string       `gorm:"size:255" json:"dyeing_supplier"`
	ColorList               pq.Int64Array `gorm:"type:integer[]" json:"color_list"`
	CreatedAt               time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt               time.Time     `json:"updated_at"`
}

// SampleDetail: tekil getirme, renk isimleri ada göre sıralı
type SampleDetail struct {
	Sample
	ColorNames pq.StringArray `gorm:"type:text[]" json:"color_names"`
}

// SampleListItem: liste görünümü, lookup adları join ile gelir
type SampleListItem struct {
	ID                    uint      `json:"id"`
	ModelKodu             string    `json:"model_kodu"`
	ProductGroup          *string   `json:"product_group"`
	Line                  *string   `json:"line"`
	FabricType            *string   `json:"fabric_type"`
	FabricSupplier        *string   `json:"fabric_supplier"`
	FitType               *string   `json:"fit_type"`
	CollarType            *string   `json:"collar_type"`
	SampleStatus          *string   `json:"sample_status"`
	DesignResponsible     *string   `json:"design_responsible"`
	ProductionResponsible *string   `json:"production_responsible"`
	Colors                *string   `json:"colors"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Value liste kolonunun değerini string ya da time.Time olarak döner.
// Bilinmeyen kolon için ok=false.
func (s SampleListItem) Value(column string) (v interface{}, ok bool) {
	switch column {
	case "model_kodu":
		return s.ModelKodu, true
	case "product_group":
		return deref(s.ProductGroup), true
	case "line":
		return deref(s.Line), true
	case "fabric_type":
		return deref(s.FabricType), true
	case "fabric_supplier":
		return deref(s.FabricSupplier), true
	case "fit_type":
		return deref(s.FitType), true
	case "collar_type":
		return deref(s.CollarType), true
	case "sample_status":
		return deref(s.SampleStatus), true
	case "design_responsible":
		return deref(s.DesignResponsible), true
	case "production_responsible":
		return deref(s.ProductionResponsible), true
	case "colors":
		return deref(s.Colors), true
	case "created_at":
		return s.CreatedAt, true
	case "updated_at":
		return s.UpdatedAt, true
	}
	return nil, false
}

// Text hücre metni. Tarihler "2006-01-02 15:04" biçiminde.
func (s SampleListItem) Text(column string) string {
	v, ok := s.Value(column)
	if !ok {
		return ""
	}
	if t, isTime := v.(time.Time); isTime {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	}
	return v.(string)
}
