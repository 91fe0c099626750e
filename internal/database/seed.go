package database

import (
	"numune-katalog/internal/models"

	"gorm.io/gorm"
)

const SamplesEntity = "samples"

// DefaultSampleFields numune formunun ilk kurulumdaki alan listesi.
var DefaultSampleFields = []models.FieldConfig{
	{ColumnName: "model_kodu", DisplayName: "Model Kodu", IsVisibleForm: true, IsRequired: true},
	{ColumnName: "product_group_id", DisplayName: "Ürün Grubu", IsVisibleForm: true, IsRequired: true},
	{ColumnName: "line_id", DisplayName: "Line", IsVisibleForm: true, IsRequired: true},
	{ColumnName: "fabric_type_id", DisplayName: "Kumaş Tipi", IsVisibleForm: true, IsRequired: true},
	{ColumnName: "fabric_supplier_id", DisplayName: "Kumaş Tedarikçisi", IsVisibleForm: true, IsRequired: true},
	{ColumnName: "fit_type_id", DisplayName: "Fit Tipi", IsVisibleForm: true, IsRequired: true},
	{ColumnName: "collar_type_id", DisplayName: "Yaka Tipi", IsVisibleForm: true},
	{ColumnName: "sample_status_id", DisplayName: "Numune Durumu", IsVisibleForm: true, IsRequired: true},
	{ColumnName: "design_responsible_id", DisplayName: "Tasarım Sorumlusu", IsVisibleForm: true},
	{ColumnName: "production_responsible_id", DisplayName: "Üretim Sorumlusu", IsVisibleForm: true},
	{ColumnName: "fabric_content", DisplayName: "Kumaş İçeriği", IsVisibleForm: true},
	{ColumnName: "fabric_name", DisplayName: "Kumaş Adı", IsVisibleForm: true},
	{ColumnName: "fabric_width", DisplayName: "Kumaş Eni", IsVisibleForm: true},
	{ColumnName: "fabric_weight", DisplayName: "Kumaş Gramajı", IsVisibleForm: true},
	{ColumnName: "fabric_unit_price", DisplayName: "Kumaş Birim Fiyatı", IsVisibleForm: true},
	{ColumnName: "product_description", DisplayName: "Ürün Açıklaması", IsVisibleForm: true},
	{ColumnName: "print_supplier", DisplayName: "Baskı Tedarikçisi"},
	{ColumnName: "embroidery_supplier", DisplayName: "Nakış Tedarikçisi"},
	{ColumnName: "dyeing_supplier", DisplayName: "Boya Tedarikçisi"},
}

// DefaultSampleColumns liste görünümünün ilk kurulumdaki kolonları.
var DefaultSampleColumns = []models.ColumnConfig{
	{ColumnName: "sample_status", DisplayName: "Numune Durumu", IsVisible: true},
	{ColumnName: "model_kodu", DisplayName: "Model Kodu", IsVisible: true},
	{ColumnName: "product_group", DisplayName: "Ürün Grubu", IsVisible: true},
	{ColumnName: "line", DisplayName: "Line", IsVisible: true},
	{ColumnName: "fabric_type", DisplayName: "Kumaş Tipi", IsVisible: true},
	{ColumnName: "fabric_supplier", DisplayName: "Kumaş Tedarikçisi"},
	{ColumnName: "fit_type", DisplayName: "Fit Tipi", IsVisible: true},
	{ColumnName: "collar_type", DisplayName: "Yaka Tipi"},
	{ColumnName: "design_responsible", DisplayName: "Tasarım Sorumlusu"},
	{ColumnName: "production_responsible", DisplayName: "Üretim Sorumlusu"},
	{ColumnName: "colors", DisplayName: "Renkler", IsVisible: true},
	{ColumnName: "created_at", DisplayName: "Oluşturulma Tarihi"},
	{ColumnName: "updated_at", DisplayName: "Güncellenme Tarihi", IsVisible: true},
}

// SeedUIConfig entity için hiç kayıt yoksa varsayılanları yazar; mevcut ayarlara dokunmaz.
func SeedUIConfig(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.FieldConfig{}).Where("entity = ?", SamplesEntity).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			fields := make([]models.FieldConfig, len(DefaultSampleFields))
			for i, f := range DefaultSampleFields {
				f.Entity = SamplesEntity
				f.SortOrder = i + 1
				fields[i] = f
			}
			if err := tx.Create(&fields).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.ColumnConfig{}).Where("entity = ?", SamplesEntity).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			cols := make([]models.ColumnConfig, len(DefaultSampleColumns))
			for i, c := range DefaultSampleColumns {
				c.Entity = SamplesEntity
				c.SortOrder = i + 1
				cols[i] = c
			}
			if err := tx.Create(&cols).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
