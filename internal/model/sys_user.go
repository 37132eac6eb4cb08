package model

// 系统级角色
const (
	RoleSuperAdmin = "super_admin" // 超管，可见全部店铺
	RoleUser       = "user"        // 普通店主
)

// SysUser 系统用户/店主账号
type SysUser struct {
	BaseModel
	AuditMixin
	// 基础信息
	Username string `gorm:"size:100;uniqueIndex;not null"`
	Password string `gorm:"size:255;not null"` // 哈希密码
	Email    string `gorm:"size:100"`

	// 系统级角色，取值见 RoleSuperAdmin / RoleUser
	// 注意区分：这是系统的角色，StoreMember 里的是店铺内的角色
	Role string `gorm:"size:20;default:'user'"`

	IsActive bool `gorm:"default:true"`

	// 方式 A: 快速查询用户拥有的店铺 (忽略角色)
	Stores []Store `gorm:"many2many:store_members;"`

	// 方式 B: 查询用户在店铺的权限详情 (包含 Role)
	Memberships []StoreMember `gorm:"foreignKey:SysUserID"`
}

func (SysUser) TableName() string {
	return "sys_users"
}
