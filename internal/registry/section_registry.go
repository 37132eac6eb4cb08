package registry

import (
	"fmt"

	"storebuilder_v1_202608/internal/model"
)

// ==================== 区块注册表 ====================
// 进程级只读目录：section_type -> 定义（标签/分类/描述/默认配置）。
// 启动时一次性构建，之后只读，天然并发安全。

// Category 编辑器里"添加区块"面板的分组
type Category string

const (
	CategoryBanner  Category = "banner"  // 横幅展示
	CategoryProduct Category = "product" // 商品陈列
	CategoryContent Category = "content" // 图文内容
	CategorySocial  Category = "social"  // 互动转化
)

// Definition 区块定义
type Definition struct {
	Type        model.SectionType      `json:"type"`
	Label       string                 `json:"label"`
	Category    Category               `json:"category"`
	Description string                 `json:"description"`
	// DefaultConfig 新建区块时的初始配置
	// 取值时必须走 CloneDefaultConfig，避免调用方改写注册表
	DefaultConfig map[string]interface{} `json:"default_config"`
}

// ErrUnknownSectionType 区块类型未注册
// 枚举域内的值出现这个错误说明迁移加了新类型但代码没跟上，属于配置错误，
// 创建路径必须直接失败，不允许落一条空定义的区块
var ErrUnknownSectionType = fmt.Errorf("未注册的区块类型")

// definitions 全量区块目录
var definitions = map[model.SectionType]Definition{
	model.SectionTypeHeroBanner: {
		Type:        model.SectionTypeHeroBanner,
		Label:       "首页横幅",
		Category:    CategoryBanner,
		Description: "大图横幅，支持标题、副标题和行动按钮",
		DefaultConfig: map[string]interface{}{
			"title":           "欢迎光临",
			"subtitle":        "发现我们的精选商品",
			"button_text":     "立即选购",
			"button_link":     "/products",
			"background_url":  "",
			"overlay_opacity": 0.4,
			"text_align":      "center",
			"height":          "large",
		},
	},
	model.SectionTypeFeaturedProducts: {
		Type:        model.SectionTypeFeaturedProducts,
		Label:       "精选商品",
		Category:    CategoryProduct,
		Description: "按人工挑选或销量规则展示商品",
		DefaultConfig: map[string]interface{}{
			"title":       "精选商品",
			"source":      "manual", // manual | best_selling | newest
			"product_ids": []interface{}{},
			"columns":     float64(4),
			"limit":       float64(8),
			"show_price":  true,
		},
	},
	model.SectionTypeCategoryGrid: {
		Type:        model.SectionTypeCategoryGrid,
		Label:       "分类宫格",
		Category:    CategoryProduct,
		Description: "以宫格形式展示商品分类入口",
		DefaultConfig: map[string]interface{}{
			"title":        "按分类选购",
			"category_ids": []interface{}{},
			"columns":      float64(3),
			"show_names":   true,
			"image_ratio":  "square",
		},
	},
	model.SectionTypeProductGrid: {
		Type:        model.SectionTypeProductGrid,
		Label:       "商品列表",
		Category:    CategoryProduct,
		Description: "分页展示某个分类下的全部商品",
		DefaultConfig: map[string]interface{}{
			"category_id": nil,
			"columns":     float64(4),
			"page_size":   float64(24),
			"sort_by":     "newest",
			"show_filter": true,
		},
	},
	model.SectionTypeTestimonials: {
		Type:        model.SectionTypeTestimonials,
		Label:       "用户评价",
		Category:    CategorySocial,
		Description: "轮播展示客户评价",
		DefaultConfig: map[string]interface{}{
			"title":    "客户怎么说",
			"items":    []interface{}{},
			"autoplay": true,
			"interval": float64(5000),
		},
	},
	model.SectionTypeImageWithText: {
		Type:        model.SectionTypeImageWithText,
		Label:       "图文组合",
		Category:    CategoryContent,
		Description: "左图右文或右图左文的内容区块",
		DefaultConfig: map[string]interface{}{
			"title":          "",
			"body":           "",
			"image_url":      "",
			"image_position": "left",
			"button_text":    "",
			"button_link":    "",
		},
	},
	model.SectionTypeRichText: {
		Type:        model.SectionTypeRichText,
		Label:       "富文本",
		Category:    CategoryContent,
		Description: "自由排版的富文本内容",
		DefaultConfig: map[string]interface{}{
			"content":    "",
			"text_align": "left",
			"max_width":  "normal",
		},
	},
	model.SectionTypeNewsletterSignup: {
		Type:        model.SectionTypeNewsletterSignup,
		Label:       "邮件订阅",
		Category:    CategorySocial,
		Description: "收集访客邮箱的订阅表单",
		DefaultConfig: map[string]interface{}{
			"title":        "订阅我们的最新动态",
			"subtitle":     "新品上架第一时间通知您",
			"button_text":  "订阅",
			"success_text": "订阅成功！",
		},
	},
	model.SectionTypeFAQ: {
		Type:        model.SectionTypeFAQ,
		Label:       "常见问题",
		Category:    CategoryContent,
		Description: "折叠面板形式的问答列表",
		DefaultConfig: map[string]interface{}{
			"title": "常见问题",
			"items": []interface{}{},
		},
	},
	model.SectionTypeContactForm: {
		Type:        model.SectionTypeContactForm,
		Label:       "联系表单",
		Category:    CategorySocial,
		Description: "姓名/邮箱/留言的联系表单",
		DefaultConfig: map[string]interface{}{
			"title":         "联系我们",
			"subtitle":      "",
			"show_phone":    false,
			"submit_text":   "发送",
			"notify_email":  "",
		},
	},
	model.SectionTypeImageGallery: {
		Type:        model.SectionTypeImageGallery,
		Label:       "图片画廊",
		Category:    CategoryContent,
		Description: "多图网格或轮播展示",
		DefaultConfig: map[string]interface{}{
			"title":   "",
			"images":  []interface{}{},
			"layout":  "grid",
			"columns": float64(3),
		},
	},
	model.SectionTypeVideoEmbed: {
		Type:        model.SectionTypeVideoEmbed,
		Label:       "视频嵌入",
		Category:    CategoryContent,
		Description: "嵌入 YouTube / 自托管视频",
		DefaultConfig: map[string]interface{}{
			"title":     "",
			"video_url": "",
			"autoplay":  false,
			"loop":      false,
		},
	},
}

// Lookup 按类型查找区块定义
func Lookup(t model.SectionType) (Definition, error) {
	def, ok := definitions[t]
	if !ok {
		return Definition{}, fmt.Errorf("%w: %s", ErrUnknownSectionType, t)
	}
	return def, nil
}

// LookupOrFallback 查找定义，未注册类型降级为通用兜底定义
// 用于读取/渲染路径：存量数据里的未知类型不能让编辑器崩掉
func LookupOrFallback(t model.SectionType) Definition {
	if def, ok := definitions[t]; ok {
		return def
	}
	return Definition{
		Type:          t,
		Label:         string(t),
		Category:      CategoryContent,
		Description:   "未知区块类型，使用通用编辑模式",
		DefaultConfig: map[string]interface{}{},
	}
}

// CloneDefaultConfig 返回默认配置的副本
func CloneDefaultConfig(t model.SectionType) (map[string]interface{}, error) {
	def, err := Lookup(t)
	if err != nil {
		return nil, err
	}
	clone := make(map[string]interface{}, len(def.DefaultConfig))
	for k, v := range def.DefaultConfig {
		clone[k] = v
	}
	return clone, nil
}

// All 返回全部定义（顺序不保证）
func All() []Definition {
	defs := make([]Definition, 0, len(definitions))
	for _, d := range definitions {
		defs = append(defs, d)
	}
	return defs
}

// GroupedByCategory 按分类分组，供"添加区块"面板使用
func GroupedByCategory() map[Category][]Definition {
	grouped := make(map[Category][]Definition)
	for _, d := range definitions {
		grouped[d.Category] = append(grouped[d.Category], d)
	}
	return grouped
}
