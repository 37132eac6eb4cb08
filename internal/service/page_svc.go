package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"storebuilder_v1_202608/internal/model"
	"storebuilder_v1_202608/internal/repository"
)

// PageService 页面服务
type PageService struct {
	pageRepo  repository.PageRepository
	storeRepo repository.StoreRepository
}

// NewPageService 创建页面服务
func NewPageService(pageRepo repository.PageRepository, storeRepo repository.StoreRepository) *PageService {
	return &PageService{
		pageRepo:  pageRepo,
		storeRepo: storeRepo,
	}
}

// ==================== slug 处理 ====================

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
var slugDashRuns = regexp.MustCompile(`-{2,}`)

// NormalizeSlug 生成 URL slug：小写、空格转连字符、去非法字符
func NormalizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	s = slugInvalidChars.ReplaceAllString(s, "")
	s = slugDashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ==================== 查询 ====================

// ListPages 返回店铺全部页面
func (s *PageService) ListPages(ctx context.Context, storeID int64) ([]model.Page, error) {
	if _, err := s.storeRepo.GetByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 店铺 %d", ErrNotFound, storeID)
		}
		return nil, err
	}
	return s.pageRepo.ListByStore(ctx, storeID)
}

// GetPage 获取页面（含区块）
func (s *PageService) GetPage(ctx context.Context, pageID int64) (*model.Page, error) {
	page, err := s.pageRepo.GetByIDWithSections(ctx, pageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 页面 %d", ErrNotFound, pageID)
		}
		return nil, err
	}
	return page, nil
}

// ==================== 创建 ====================

// CreatePage 创建自定义页面
// 系统页面只能由模板初始化创建，且 slug 固定不可指定
func (s *PageService) CreatePage(ctx context.Context, storeID int64, title, slug string, pageType model.PageType) (*model.Page, error) {
	if _, err := s.storeRepo.GetByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 店铺 %d", ErrNotFound, storeID)
		}
		return nil, err
	}

	if title == "" {
		return nil, fmt.Errorf("%w: 页面标题不能为空", ErrValidation)
	}

	if pageType == "" {
		pageType = model.PageTypeCustom
	}

	// 系统页面类型 slug 固定，不接受自定义
	if model.IsSystemPageType(pageType) {
		slug = model.SystemPageSlug(pageType)
	} else {
		if slug == "" {
			slug = title
		}
		slug = NormalizeSlug(slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: slug 不能为空", ErrValidation)
		}
	}

	// 同店铺 slug 唯一，冲突时拒绝且不产生副作用
	exists, err := s.pageRepo.ExistsBySlug(ctx, storeID, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: slug '%s' 已存在", ErrConflict, slug)
	}

	page := &model.Page{
		StoreID:    storeID,
		Title:      title,
		Slug:       slug,
		PageType:   pageType,
		ShowHeader: true,
		ShowFooter: true,
	}

	if err := s.pageRepo.Create(ctx, page); err != nil {
		return nil, fmt.Errorf("创建页面失败: %v", err)
	}
	return page, nil
}

// ==================== 更新 ====================

// PageUpdateInput 页面可编辑字段（nil 表示不更新）
type PageUpdateInput struct {
	Title          *string
	Slug           *string
	ShowHeader     *bool
	ShowFooter     *bool
	SeoTitle       *string
	SeoDescription *string
	OgImageUrl     *string
}

// UpdatePage 更新页面元信息 / SEO
func (s *PageService) UpdatePage(ctx context.Context, pageID int64, input PageUpdateInput) (*model.Page, error) {
	page, err := s.pageRepo.GetByID(ctx, pageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 页面 %d", ErrNotFound, pageID)
		}
		return nil, err
	}

	fields := map[string]interface{}{}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, fmt.Errorf("%w: 页面标题不能为空", ErrValidation)
		}
		fields["title"] = *input.Title
	}

	if input.Slug != nil {
		// 系统页面 slug 固定不可改
		if model.IsSystemPageType(page.PageType) {
			return nil, fmt.Errorf("%w: 系统页面的 slug 不可修改", ErrValidation)
		}
		slug := NormalizeSlug(*input.Slug)
		if slug == "" {
			return nil, fmt.Errorf("%w: slug 不能为空", ErrValidation)
		}
		if slug != page.Slug {
			exists, err := s.pageRepo.ExistsBySlug(ctx, page.StoreID, slug)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, fmt.Errorf("%w: slug '%s' 已存在", ErrConflict, slug)
			}
			fields["slug"] = slug
		}
	}

	if input.ShowHeader != nil {
		fields["show_header"] = *input.ShowHeader
	}
	if input.ShowFooter != nil {
		fields["show_footer"] = *input.ShowFooter
	}
	if input.SeoTitle != nil {
		fields["seo_title"] = *input.SeoTitle
	}
	if input.SeoDescription != nil {
		fields["seo_description"] = *input.SeoDescription
	}
	if input.OgImageUrl != nil {
		fields["og_image_url"] = *input.OgImageUrl
	}

	if len(fields) == 0 {
		return page, nil
	}

	if err := s.pageRepo.UpdateFields(ctx, pageID, fields); err != nil {
		return nil, err
	}
	return s.pageRepo.GetByID(ctx, pageID)
}

// ==================== 发布 ====================

// Publish 发布页面
// publishAt 传未来时间表示定时发布，由后台任务到点置为已发布
func (s *PageService) Publish(ctx context.Context, pageID int64, publishAt *time.Time) (*model.Page, error) {
	page, err := s.pageRepo.GetByID(ctx, pageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 页面 %d", ErrNotFound, pageID)
		}
		return nil, err
	}

	now := time.Now()
	if publishAt == nil {
		publishAt = &now
	}

	fields := map[string]interface{}{
		"published_at": publishAt,
		"is_published": !publishAt.After(now),
	}
	if err := s.pageRepo.UpdateFields(ctx, pageID, fields); err != nil {
		return nil, err
	}

	page.PublishedAt = publishAt
	page.IsPublished = !publishAt.After(now)
	return page, nil
}

// Unpublish 撤回发布
func (s *PageService) Unpublish(ctx context.Context, pageID int64) error {
	if _, err := s.pageRepo.GetByID(ctx, pageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: 页面 %d", ErrNotFound, pageID)
		}
		return err
	}
	return s.pageRepo.UpdateFields(ctx, pageID, map[string]interface{}{
		"is_published": false,
		"published_at": nil,
	})
}

// ==================== 删除 ====================

// DeletePage 删除页面
// 系统页面（首页/购物车/结算/个人中心/订单查询/搜索）受保护，拒绝删除
func (s *PageService) DeletePage(ctx context.Context, pageID int64) error {
	page, err := s.pageRepo.GetByID(ctx, pageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: 页面 %d", ErrNotFound, pageID)
		}
		return err
	}

	if model.IsSystemPageType(page.PageType) {
		return fmt.Errorf("%w: 系统页面不可删除", ErrValidation)
	}

	return s.pageRepo.Delete(ctx, pageID)
}
