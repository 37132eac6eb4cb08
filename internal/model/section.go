package model

import (
	"gorm.io/datatypes"
)

// SectionType 区块类型
// 闭合枚举 + 随版本扩展；未注册的类型读取时走通用兜底定义
type SectionType string

const (
	SectionTypeHeroBanner       SectionType = "hero_banner"
	SectionTypeFeaturedProducts SectionType = "featured_products"
	SectionTypeCategoryGrid     SectionType = "category_grid"
	SectionTypeProductGrid      SectionType = "product_grid"
	SectionTypeTestimonials     SectionType = "testimonials"
	SectionTypeImageWithText    SectionType = "image_with_text"
	SectionTypeRichText         SectionType = "rich_text"
	SectionTypeNewsletterSignup SectionType = "newsletter_signup"
	SectionTypeFAQ              SectionType = "faq"
	SectionTypeContactForm      SectionType = "contact_form"
	SectionTypeImageGallery     SectionType = "image_gallery"
	SectionTypeVideoEmbed       SectionType = "video_embed"
)

// Section 页面区块
// 渲染顺序由 sort_order 升序决定，值只要求严格递增，允许留空洞；
// 历史脏数据可能出现相同 sort_order，读取时按 created_at、id 兜底排序
type Section struct {
	BaseModel
	AuditMixin

	// 归属页面
	PageID int64 `gorm:"index;not null"`
	Page   *Page `gorm:"foreignKey:PageID"`

	// 冗余存储 StoreID，权限校验时避免多一次 JOIN
	StoreID int64  `gorm:"index;not null"`
	Store   *Store `gorm:"foreignKey:StoreID"`

	// 区块信息
	SectionType SectionType `gorm:"size:50;index;not null"`
	Name        string      `gorm:"size:100"` // 编辑器里展示的人类可读标签

	// 配置（形状由 SectionType 决定）
	Config datatypes.JSON `gorm:"type:jsonb"`
	// 移动端覆盖配置，null 表示完全继承 Config；
	// 写入后仅覆盖其中出现的字段，其余字段仍回落到 Config
	MobileConfig datatypes.JSON `gorm:"type:jsonb"`

	// 排序与可见性
	IsVisible bool `gorm:"default:true"`
	SortOrder int  `gorm:"not null;default:0;index"`
}

func (Section) TableName() string {
	return "sections"
}
