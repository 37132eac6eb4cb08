package dto

import "time"

// ==================== 店铺管理 ====================

// CreateStoreRequest 创建店铺请求
type CreateStoreRequest struct {
	Name             string `json:"name" binding:"required,min=1,max=100"`
	Subdomain        string `json:"subdomain" binding:"required,min=3,max=63"`
	BusinessType     string `json:"business_type" binding:"required,max=50"`
	BusinessCategory string `json:"business_category" binding:"omitempty,max=50"`
}

// CreateStoreResponse 创建店铺响应
type CreateStoreResponse struct {
	Store       *StoreInfo `json:"store"`
	SeededPages int        `json:"seeded_pages"` // 模板初始化生成的页面数
}

// StoreInfo 店铺信息
type StoreInfo struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Subdomain        string    `json:"subdomain"`
	BusinessType     string    `json:"business_type"`
	BusinessCategory string    `json:"business_category"`
	Status           int       `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// StoreListRequest 店铺列表请求
type StoreListRequest struct {
	Keyword  string `form:"keyword"`
	Status   *int   `form:"status"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
}

// StoreListResponse 店铺列表响应
type StoreListResponse struct {
	List  []*StoreInfo `json:"list"`
	Total int64        `json:"total"`
}

// ==================== 店铺成员 ====================

// AddMemberRequest 添加成员请求
type AddMemberRequest struct {
	UserID int64  `json:"user_id" binding:"required,gt=0"`
	Role   string `json:"role" binding:"required,oneof=owner manager editor viewer"`
}

// MemberInfo 成员信息
type MemberInfo struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
