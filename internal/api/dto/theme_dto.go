package dto

// ==================== 主题管理 ====================

// CreateThemeRequest 创建主题请求
type CreateThemeRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateThemeRequest 更新主题请求
// colors/typography/layout 各自浅合并，未提交的键保留
type UpdateThemeRequest struct {
	Name       *string                `json:"name" binding:"omitempty,min=1,max=100"`
	Colors     map[string]interface{} `json:"colors"`
	Typography map[string]interface{} `json:"typography"`
	Layout     map[string]interface{} `json:"layout"`
	CustomCSS  *string                `json:"custom_css"`
}

// ThemeInfo 主题信息
type ThemeInfo struct {
	ID         int64                  `json:"id"`
	StoreID    int64                  `json:"store_id"`
	Name       string                 `json:"name"`
	IsActive   bool                   `json:"is_active"`
	Colors     map[string]interface{} `json:"colors"`
	Typography map[string]interface{} `json:"typography"`
	Layout     map[string]interface{} `json:"layout"`
	CustomCSS  string                 `json:"custom_css"`
}
