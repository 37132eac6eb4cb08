package model

import (
	"time"
)

// PageType 页面类型
// 底层枚举会随迁移扩展，应用层按开放枚举处理：
// 未知值不报错，按 custom 的规则编辑/渲染
type PageType string

const (
	PageTypeHomepage      PageType = "homepage"
	PageTypeAbout         PageType = "about"
	PageTypeContact       PageType = "contact"
	PageTypePolicy        PageType = "policy"
	PageTypeCustom        PageType = "custom"
	PageTypeProduct       PageType = "product"
	PageTypeCategory      PageType = "category"
	PageTypeCart          PageType = "cart"
	PageTypeCheckout      PageType = "checkout"
	PageTypeProfile       PageType = "profile"
	PageTypeOrderTracking PageType = "order_tracking"
	PageTypeSearch        PageType = "search"
)

// systemPageSlugs 系统页面的固定 slug
// 系统页面 slug 不可编辑，页面本身不可删除
var systemPageSlugs = map[PageType]string{
	PageTypeHomepage:      "home",
	PageTypeCart:          "cart",
	PageTypeCheckout:      "checkout",
	PageTypeProfile:       "profile",
	PageTypeOrderTracking: "order-tracking",
	PageTypeSearch:        "search",
}

// IsSystemPageType 判断是否系统管理页面类型
func IsSystemPageType(t PageType) bool {
	_, ok := systemPageSlugs[t]
	return ok
}

// SystemPageSlug 返回系统页面类型的固定 slug，非系统类型返回空串
func SystemPageSlug(t PageType) string {
	return systemPageSlugs[t]
}

// Page 店铺页面
type Page struct {
	BaseModel
	AuditMixin

	// 归属店铺
	StoreID int64  `gorm:"index;not null;uniqueIndex:idx_store_slug"`
	Store   *Store `gorm:"foreignKey:StoreID"`

	// 基础信息
	Title    string   `gorm:"size:255;not null"`
	Slug     string   `gorm:"size:100;not null;uniqueIndex:idx_store_slug"` // (store_id, slug) 联合唯一
	PageType PageType `gorm:"size:30;index;not null;default:'custom'"`

	// 发布状态
	IsPublished bool       `gorm:"default:false;index"`
	PublishedAt *time.Time `gorm:"comment:发布时间，未来时间表示定时发布"`

	// 布局开关
	ShowHeader bool `gorm:"default:true"`
	ShowFooter bool `gorm:"default:true"`

	// SEO
	SeoTitle       string `gorm:"size:255"`
	SeoDescription string `gorm:"size:500"`
	OgImageUrl     string `gorm:"size:512"`

	// 关联区块
	Sections []Section `gorm:"foreignKey:PageID;constraint:OnDelete:CASCADE"`
}

func (Page) TableName() string {
	return "pages"
}
