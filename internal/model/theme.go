package model

import (
	"gorm.io/datatypes"
)

// Theme 店铺主题
// 每个店铺同一时刻只允许一个 is_active = true 的主题，
// 激活操作必须在事务内先停用其它主题
type Theme struct {
	BaseModel
	AuditMixin

	StoreID int64  `gorm:"index;not null"`
	Store   *Store `gorm:"foreignKey:StoreID"`

	Name     string `gorm:"size:100;not null"`
	IsActive bool   `gorm:"default:false;index"`

	// 样式配置
	Colors     datatypes.JSON `gorm:"type:jsonb"` // {"primary": "#111827", ...}
	Typography datatypes.JSON `gorm:"type:jsonb"` // {"heading_font": "...", ...}
	Layout     datatypes.JSON `gorm:"type:jsonb"` // {"container_width": "...", ...}
	CustomCSS  string         `gorm:"type:text"`
}

func (Theme) TableName() string {
	return "themes"
}
