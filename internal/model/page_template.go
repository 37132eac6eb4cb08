package model

import (
	"encoding/json"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// PageTemplate 建站模板目录 (非租户数据)
// 按 (business_type, business_category, page_type, template_name) 维度登记
// 新店铺初始化时按业务分类匹配出默认页面清单
type PageTemplate struct {
	BaseModel

	BusinessType     string `gorm:"size:50;index:idx_tpl_biz;not null"`
	BusinessCategory string `gorm:"size:50;index:idx_tpl_biz"` // 空表示该业务类型下通用

	PageType     PageType `gorm:"size:30;not null"`
	TemplateName string   `gorm:"size:100;not null;default:'default'"`

	// 页面初始值
	Title string `gorm:"size:255;not null"`
	Slug  string `gorm:"size:100;not null"`

	// 默认区块清单，JSON 数组 [{"type":"hero_banner","name":"首页横幅"}, ...]
	// 只登记类型和名称，config 留空由编辑器/注册表默认值兜底
	DefaultSections datatypes.JSON `gorm:"type:jsonb"`

	// 目录检索标签 (Postgres Array)
	Tags pq.StringArray `gorm:"type:text[]"`

	SortOrder int  `gorm:"not null;default:0"`
	IsActive  bool `gorm:"default:true;index"`
}

func (PageTemplate) TableName() string {
	return "page_templates"
}

// TemplateSectionEntry 模板默认区块条目
type TemplateSectionEntry struct {
	Type SectionType `json:"type"`
	Name string      `json:"name"`
}

// ParseDefaultSections 解析默认区块清单
// 单行模板数据坏掉不应阻塞整个初始化流程，由调用方决定跳过
func (t *PageTemplate) ParseDefaultSections() ([]TemplateSectionEntry, error) {
	if len(t.DefaultSections) == 0 {
		return nil, nil
	}
	var entries []TemplateSectionEntry
	if err := json.Unmarshal(t.DefaultSections, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
