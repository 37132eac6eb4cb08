package model

// NavLocation 导航位置
type NavLocation string

const (
	NavLocationHeader NavLocation = "header"
	NavLocationFooter NavLocation = "footer"
	NavLocationMobile NavLocation = "mobile"
)

// NavigationItem 导航项
// parent_id 支持一级嵌套（下拉菜单），父项必须属于同店铺同位置且自身无父项
type NavigationItem struct {
	BaseModel
	AuditMixin

	StoreID int64  `gorm:"index;not null"`
	Store   *Store `gorm:"foreignKey:StoreID"`

	Label string `gorm:"size:100;not null"`
	Url   string `gorm:"size:512"`

	// 指向站内页面时填 PageID，外链时只填 Url
	PageID *int64 `gorm:"index"`
	Page   *Page  `gorm:"foreignKey:PageID"`

	Location NavLocation `gorm:"size:20;index;not null;default:'header'"`

	// 自引用，一级嵌套
	ParentID *int64           `gorm:"index"`
	Parent   *NavigationItem  `gorm:"foreignKey:ParentID"`
	Children []NavigationItem `gorm:"foreignKey:ParentID"`

	SortOrder int `gorm:"not null;default:0;index"`
}

func (NavigationItem) TableName() string {
	return "navigation_items"
}
