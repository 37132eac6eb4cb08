package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"storebuilder_v1_202608/internal/model"
	"storebuilder_v1_202608/internal/repository"
)

// TemplateService 建站模板服务
// 店铺创建时按业务分类初始化默认页面和区块，可重复执行（幂等补齐）
type TemplateService struct {
	templateRepo repository.TemplateRepository
	pageRepo     repository.PageRepository
	sectionRepo  repository.SectionRepository
	storeRepo    repository.StoreRepository
}

// NewTemplateService 创建模板服务
func NewTemplateService(
	templateRepo repository.TemplateRepository,
	pageRepo repository.PageRepository,
	sectionRepo repository.SectionRepository,
	storeRepo repository.StoreRepository,
) *TemplateService {
	return &TemplateService{
		templateRepo: templateRepo,
		pageRepo:     pageRepo,
		sectionRepo:  sectionRepo,
		storeRepo:    storeRepo,
	}
}

// ==================== 店铺初始化 ====================

// SeedStore 按模板初始化店铺页面
// 规则：
//   - 匹配 business_type 且 (business_category 为空或相等) 的生效模板，按 sort_order 取
//   - (store_id, slug) 已存在的页面静默跳过（幂等，冲突不是错误）
//   - 单行模板出错只跳过该行，不中断整体初始化
//   - 模板区块只落类型和名称，config 留空，由注册表默认值在渲染时兜底
//
// 返回本次新建的页面数，供调用方上报
func (s *TemplateService) SeedStore(ctx context.Context, storeID int64) (int, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: 店铺 %d", ErrNotFound, storeID)
		}
		return 0, err
	}

	tpls, err := s.templateRepo.Match(ctx, store.BusinessType, store.BusinessCategory)
	if err != nil {
		return 0, fmt.Errorf("查询模板目录失败: %v", err)
	}

	created := 0
	for i := range tpls {
		ok, err := s.seedOnePage(ctx, store, &tpls[i])
		if err != nil {
			// 坏掉的模板行不阻塞其余模板
			log.Printf("[Seed] 店铺 %d 模板 %s/%s 初始化失败，跳过: %v",
				storeID, tpls[i].PageType, tpls[i].Slug, err)
			continue
		}
		if ok {
			created++
		}
	}

	return created, nil
}

// seedOnePage 初始化单个模板页面，已存在时返回 (false, nil)
func (s *TemplateService) seedOnePage(ctx context.Context, store *model.Store, tpl *model.PageTemplate) (bool, error) {
	slug := tpl.Slug
	if model.IsSystemPageType(tpl.PageType) {
		slug = model.SystemPageSlug(tpl.PageType)
	}

	exists, err := s.pageRepo.ExistsBySlug(ctx, store.ID, slug)
	if err != nil {
		return false, err
	}
	if exists {
		// 幂等：重复执行不产生重复页面
		return false, nil
	}

	entries, err := tpl.ParseDefaultSections()
	if err != nil {
		return false, fmt.Errorf("default_sections 解析失败: %v", err)
	}

	page := &model.Page{
		StoreID:    store.ID,
		Title:      tpl.Title,
		Slug:       slug,
		PageType:   tpl.PageType,
		ShowHeader: true,
		ShowFooter: true,
	}
	if err := s.pageRepo.Create(ctx, page); err != nil {
		return false, err
	}

	for idx, entry := range entries {
		section := &model.Section{
			PageID:      page.ID,
			StoreID:     store.ID,
			SectionType: entry.Type,
			Name:        entry.Name,
			Config:      []byte("{}"), // 模板只定类型，配置由编辑器/注册表默认值兜底
			IsVisible:   true,
			SortOrder:   idx,
		}
		if err := s.sectionRepo.Create(ctx, section); err != nil {
			log.Printf("[Seed] 页面 %d 区块 %s 创建失败，跳过: %v", page.ID, entry.Type, err)
		}
	}

	return true, nil
}

// ==================== 默认模板目录 ====================

// templateSeed 内置目录条目
type templateSeed struct {
	pageType model.PageType
	title    string
	slug     string
	sections []model.TemplateSectionEntry
}

// defaultEcommerceTemplates 通用电商业务的标准 8 页
var defaultEcommerceTemplates = []templateSeed{
	{
		pageType: model.PageTypeHomepage,
		title:    "首页",
		slug:     "home",
		sections: []model.TemplateSectionEntry{
			{Type: model.SectionTypeHeroBanner, Name: "首页横幅"},
			{Type: model.SectionTypeFeaturedProducts, Name: "精选商品"},
			{Type: model.SectionTypeCategoryGrid, Name: "分类宫格"},
			{Type: model.SectionTypeTestimonials, Name: "用户评价"},
		},
	},
	{
		pageType: model.PageTypeProduct,
		title:    "全部商品",
		slug:     "products",
		sections: []model.TemplateSectionEntry{
			{Type: model.SectionTypeProductGrid, Name: "商品列表"},
		},
	},
	{
		pageType: model.PageTypeCategory,
		title:    "商品分类",
		slug:     "categories",
		sections: []model.TemplateSectionEntry{
			{Type: model.SectionTypeCategoryGrid, Name: "分类宫格"},
		},
	},
	{
		pageType: model.PageTypeCart,
		title:    "购物车",
		slug:     "cart",
	},
	{
		pageType: model.PageTypeCheckout,
		title:    "结算",
		slug:     "checkout",
	},
	{
		pageType: model.PageTypeProfile,
		title:    "个人中心",
		slug:     "profile",
	},
	{
		pageType: model.PageTypeAbout,
		title:    "关于我们",
		slug:     "about",
		sections: []model.TemplateSectionEntry{
			{Type: model.SectionTypeImageWithText, Name: "品牌故事"},
			{Type: model.SectionTypeRichText, Name: "关于内容"},
		},
	},
	{
		pageType: model.PageTypeContact,
		title:    "联系我们",
		slug:     "contact",
		sections: []model.TemplateSectionEntry{
			{Type: model.SectionTypeContactForm, Name: "联系表单"},
		},
	},
}

// EnsureCatalog 目录为空时写入内置默认模板
// 服务启动时调用一次，目录有数据则不动
func (s *TemplateService) EnsureCatalog(ctx context.Context) error {
	count, err := s.templateRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tpls := make([]model.PageTemplate, 0, len(defaultEcommerceTemplates))
	for i, seed := range defaultEcommerceTemplates {
		var sectionsJSON []byte
		if len(seed.sections) > 0 {
			sectionsJSON, err = json.Marshal(seed.sections)
			if err != nil {
				return fmt.Errorf("内置模板序列化失败: %v", err)
			}
		} else {
			sectionsJSON = []byte("[]")
		}

		tpls = append(tpls, model.PageTemplate{
			BusinessType:     model.BusinessTypeEcommerce,
			BusinessCategory: "", // 通用模板，任意分类都命中
			PageType:         seed.pageType,
			TemplateName:     "default",
			Title:            seed.title,
			Slug:             seed.slug,
			DefaultSections:  sectionsJSON,
			SortOrder:        i,
			IsActive:         true,
		})
	}

	if err := s.templateRepo.CreateBatch(ctx, tpls); err != nil {
		return fmt.Errorf("写入内置模板失败: %v", err)
	}
	log.Printf("[Seed] 已写入 %d 条内置模板", len(tpls))
	return nil
}
