package model

// Store 状态常量
const (
	StoreStatusPending  = 0 // 待初始化
	StoreStatusActive   = 1 // 正常（公开可读）
	StoreStatusInactive = 2 // 已停用
)

// 业务类型常量
// 用于匹配 PageTemplate 模板目录
const (
	BusinessTypeEcommerce  = "ecommerce"
	BusinessTypeService    = "service"
	BusinessTypeRestaurant = "restaurant"
	BusinessTypePortfolio  = "portfolio"
)

// Store 租户根实体
// 所有租户数据（页面/区块/主题/导航/设置）都归属于一个 Store，
// Store 删除时级联删除全部下属记录
type Store struct {
	BaseModel
	AuditMixin

	// 1. 核心身份
	Name      string `gorm:"size:100;not null"`
	Subdomain string `gorm:"size:63;uniqueIndex;not null"` // 二级域名，全局唯一
	LogoUrl   string `gorm:"size:512"`

	// 2. 业务分类（模板匹配核心字段）
	BusinessType     string `gorm:"size:50;index;not null;default:'ecommerce'"`
	BusinessCategory string `gorm:"size:50;index"` // 可为空，空表示通用分类

	// 3. 状态
	Status int `gorm:"default:0;comment:状态 0-待初始化 1-正常 2-已停用"`

	// 4. 关联关系
	Pages           []Page                `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	Themes          []Theme               `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	NavigationItems []NavigationItem      `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	Settings        *HeaderFooterSettings `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`

	// 5. 权限关联
	Memberships []StoreMember `gorm:"foreignKey:StoreID"`
	Members     []SysUser     `gorm:"many2many:store_members;"`
}

// StoreMember 定义用户和店铺的关联关系及权限
// GORM 自定义连接表 (Join Table)
type StoreMember struct {
	BaseModel
	AuditMixin

	// 联合唯一索引，确保一个用户在一个店铺里只有一条记录
	SysUserID int64 `gorm:"index;uniqueIndex:idx_user_store;not null"`
	StoreID   int64 `gorm:"index;uniqueIndex:idx_user_store;not null"`

	// 角色: owner, manager, editor, viewer
	Role string `gorm:"size:20;default:'viewer'"`

	SysUser *SysUser `gorm:"foreignKey:SysUserID"`
	Store   *Store   `gorm:"foreignKey:StoreID"`
}

// 成员角色常量
const (
	MemberRoleOwner   = "owner"
	MemberRoleManager = "manager"
	MemberRoleEditor  = "editor"
	MemberRoleViewer  = "viewer"
)

func (Store) TableName() string {
	return "stores"
}

func (StoreMember) TableName() string {
	return "store_members"
}
