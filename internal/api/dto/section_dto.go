package dto

// ==================== Section 管理 ====================

// AddSectionRequest 添加 Section 请求
type AddSectionRequest struct {
	Type string `json:"type" binding:"required"`
	Name string `json:"name" binding:"omitempty,max=100"`
}

// ReorderSectionsRequest 整单重排请求
// ids 必须恰好覆盖页面内全部 Section，按新顺序排列
type ReorderSectionsRequest struct {
	IDs []int64 `json:"ids" binding:"required,min=1"`
}

// MoveSectionRequest 相邻移动请求
type MoveSectionRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

// UpdateSectionConfigRequest 配置增量更新请求
// 提交的键覆盖，未提交的键保留，值为 null 时删键
type UpdateSectionConfigRequest struct {
	Config map[string]interface{} `json:"config" binding:"required"`
}

// SectionInfo Section 信息
type SectionInfo struct {
	ID           int64                  `json:"id"`
	PageID       int64                  `json:"page_id"`
	Type         string                 `json:"type"`
	Name         string                 `json:"name"`
	IsVisible    bool                   `json:"is_visible"`
	SortOrder    int                    `json:"sort_order"`
	Config map[string]interface{} `json:"config"`
	// nil 表示完全继承桌面端，{} 表示已开启覆写但尚未填字段
	MobileConfig map[string]interface{} `json:"mobile_config"`
}

// SectionRenderResponse 渲染配置响应
type SectionRenderResponse struct {
	ID     int64                  `json:"id"`
	Type   string                 `json:"type"`
	Mobile bool                   `json:"mobile"`
	Config map[string]interface{} `json:"config"`
}

// ==================== Section 类型目录 ====================

// SectionTypeInfo Section 类型定义
type SectionTypeInfo struct {
	Type          string                 `json:"type"`
	Label         string                 `json:"label"`
	Category      string                 `json:"category"`
	Description   string                 `json:"description"`
	DefaultConfig map[string]interface{} `json:"default_config"`
}
