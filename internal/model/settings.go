package model

import (
	"gorm.io/datatypes"
)

// HeaderFooterSettings 店铺页头/页脚设置 (每店铺一条)
type HeaderFooterSettings struct {
	BaseModel
	AuditMixin

	// 加上 uniqueIndex 确保 1:1 关系 (一个 Store 只能有一条记录)
	StoreID int64  `gorm:"uniqueIndex;not null"`
	Store   *Store `gorm:"foreignKey:StoreID"`

	HeaderConfig datatypes.JSON `gorm:"type:jsonb"` // {"layout": "centered", "sticky": true, ...}
	FooterConfig datatypes.JSON `gorm:"type:jsonb"` // {"columns": 4, "show_payment_icons": true, ...}
	SocialLinks  datatypes.JSON `gorm:"type:jsonb"` // {"instagram": "https://...", ...}
}

func (HeaderFooterSettings) TableName() string {
	return "header_footer_settings"
}
