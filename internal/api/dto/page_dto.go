package dto

import "time"

// ==================== 页面管理 ====================

// CreatePageRequest 创建页面请求
type CreatePageRequest struct {
	Title    string `json:"title" binding:"required,min=1,max=200"`
	Slug     string `json:"slug" binding:"omitempty,max=200"`
	PageType string `json:"page_type" binding:"required"`
}

// UpdatePageRequest 更新页面请求，仅提交的字段生效
type UpdatePageRequest struct {
	Title          *string `json:"title" binding:"omitempty,min=1,max=200"`
	Slug           *string `json:"slug" binding:"omitempty,max=200"`
	ShowHeader     *bool   `json:"show_header"`
	ShowFooter     *bool   `json:"show_footer"`
	SeoTitle       *string `json:"seo_title" binding:"omitempty,max=200"`
	SeoDescription *string `json:"seo_description" binding:"omitempty,max=500"`
	OgImageUrl     *string `json:"og_image_url" binding:"omitempty,max=500"`
}

// PublishPageRequest 发布页面请求
type PublishPageRequest struct {
	// 定时发布时间，为空则立即发布
	PublishAt *time.Time `json:"publish_at"`
}

// PageInfo 页面信息
type PageInfo struct {
	ID             int64          `json:"id"`
	StoreID        int64          `json:"store_id"`
	Title          string         `json:"title"`
	Slug           string         `json:"slug"`
	PageType       string         `json:"page_type"`
	IsPublished    bool           `json:"is_published"`
	PublishedAt    *time.Time     `json:"published_at"`
	ShowHeader     bool           `json:"show_header"`
	ShowFooter     bool           `json:"show_footer"`
	SeoTitle       string         `json:"seo_title"`
	SeoDescription string         `json:"seo_description"`
	OgImageUrl     string         `json:"og_image_url"`
	Sections       []*SectionInfo `json:"sections,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}
