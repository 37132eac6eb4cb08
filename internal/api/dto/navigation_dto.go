package dto

// ==================== 导航管理 ====================

// CreateNavigationRequest 创建导航项请求
type CreateNavigationRequest struct {
	Label    string `json:"label" binding:"required,min=1,max=100"`
	Url      string `json:"url" binding:"omitempty,max=500"`
	PageID   *int64 `json:"page_id" binding:"omitempty,gt=0"`
	Location string `json:"location" binding:"required,oneof=header footer mobile"`
	ParentID *int64 `json:"parent_id" binding:"omitempty,gt=0"`
}

// UpdateNavigationRequest 更新导航项请求
type UpdateNavigationRequest struct {
	Label string `json:"label" binding:"required,min=1,max=100"`
	Url   string `json:"url" binding:"required,max=500"`
}

// ReorderNavigationRequest 导航重排请求（仅顶层项）
type ReorderNavigationRequest struct {
	Location string  `json:"location" binding:"required,oneof=header footer mobile"`
	IDs      []int64 `json:"ids" binding:"required,min=1"`
}

// NavigationItemInfo 导航项信息
type NavigationItemInfo struct {
	ID        int64                 `json:"id"`
	Label     string                `json:"label"`
	Url       string                `json:"url"`
	PageID    *int64                `json:"page_id"`
	Location  string                `json:"location"`
	SortOrder int                   `json:"sort_order"`
	Children  []*NavigationItemInfo `json:"children,omitempty"`
}
