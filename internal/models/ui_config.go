package models

// FieldConfig: form görünümünde hangi alanların çıkacağı ve zorunluluğu
type FieldConfig struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	Entity        string `gorm:"size:50;not null;uniqueIndex:idx_ui_form_entity_column" json:"-"`
	ColumnName    string `gorm:"size:100;not null;uniqueIndex:idx_ui_form_entity_column" json:"column_name"`
	DisplayName   string `gorm:"size:150;not null" json:"display_name"`
	IsVisibleForm bool   `gorm:"not null" json:"is_visible_form"`
	IsRequired    bool   `gorm:"not null;default:false" json:"is_required"`
	SortOrder     int    `gorm:"not null;default:0" json:"sort_order"`
}

func (FieldConfig) TableName() string {
	return "ui_form_fields"
}

// ColumnConfig: liste görünümündeki kolonlar
type ColumnConfig struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	Entity      string `gorm:"size:50;not null;uniqueIndex:idx_ui_column_entity_column" json:"-"`
	ColumnName  string `gorm:"size:100;not null;uniqueIndex:idx_ui_column_entity_column" json:"column_name"`
	DisplayName string `gorm:"size:150;not null" json:"display_name"`
	IsVisible   bool   `gorm:"not null" json:"is_visible"`
	SortOrder   int    `gorm:"not null;default:0" json:"sort_order"`
}

func (ColumnConfig) TableName() string {
	return "ui_columns"
}
