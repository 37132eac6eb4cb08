package dto

// ==================== 页头页脚设置 ====================

// UpdateSettingsRequest 更新页头页脚设置请求
// 三个映射各自浅合并：提交的键覆盖，未提交的键保留，null 删键
type UpdateSettingsRequest struct {
	HeaderConfig map[string]interface{} `json:"header_config"`
	FooterConfig map[string]interface{} `json:"footer_config"`
	SocialLinks  map[string]interface{} `json:"social_links"`
}

// SettingsInfo 页头页脚设置信息
type SettingsInfo struct {
	StoreID      int64                  `json:"store_id"`
	HeaderConfig map[string]interface{} `json:"header_config"`
	FooterConfig map[string]interface{} `json:"footer_config"`
	SocialLinks  map[string]interface{} `json:"social_links"`
}

// ==================== 媒体上传 ====================

// UploadBase64Request Base64 图片上传请求
type UploadBase64Request struct {
	Data string `json:"data" binding:"required"`
}

// UploadResponse 上传响应
type UploadResponse struct {
	Url string `json:"url"`
}
