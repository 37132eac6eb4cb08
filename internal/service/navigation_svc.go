package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storebuilder_v1_202608/internal/model"
	"storebuilder_v1_202608/internal/repository"
)

// NavigationService 导航服务
type NavigationService struct {
	navRepo  repository.NavigationRepository
	pageRepo repository.PageRepository
}

// NewNavigationService 创建导航服务
func NewNavigationService(navRepo repository.NavigationRepository, pageRepo repository.PageRepository) *NavigationService {
	return &NavigationService{
		navRepo:  navRepo,
		pageRepo: pageRepo,
	}
}

// validLocations 合法导航位置
var validLocations = map[model.NavLocation]bool{
	model.NavLocationHeader: true,
	model.NavLocationFooter: true,
	model.NavLocationMobile: true,
}

// ListByLocation 返回指定位置的导航树（一层嵌套）
func (s *NavigationService) ListByLocation(ctx context.Context, storeID int64, location model.NavLocation) ([]model.NavigationItem, error) {
	if !validLocations[location] {
		return nil, fmt.Errorf("%w: 非法导航位置 %s", ErrValidation, location)
	}
	return s.navRepo.ListByLocation(ctx, storeID, location)
}

// NavigationItemInput 导航项输入
type NavigationItemInput struct {
	Label    string
	Url      string
	PageID   *int64
	Location model.NavLocation
	ParentID *int64
}

// CreateItem 创建导航项，追加到该位置末尾
func (s *NavigationService) CreateItem(ctx context.Context, storeID int64, input NavigationItemInput) (*model.NavigationItem, error) {
	if input.Label == "" {
		return nil, fmt.Errorf("%w: 导航标签不能为空", ErrValidation)
	}
	if !validLocations[input.Location] {
		return nil, fmt.Errorf("%w: 非法导航位置 %s", ErrValidation, input.Location)
	}

	// 站内链接必须指向本店铺页面
	if input.PageID != nil {
		page, err := s.pageRepo.GetByID(ctx, *input.PageID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: 页面 %d", ErrNotFound, *input.PageID)
			}
			return nil, err
		}
		if page.StoreID != storeID {
			return nil, fmt.Errorf("%w: 页面 %d 不属于该店铺", ErrValidation, *input.PageID)
		}
		if input.Url == "" {
			input.Url = "/" + page.Slug
		}
	}

	// 一级嵌套：父项必须同店铺同位置，且自身不能再有父项
	if input.ParentID != nil {
		parent, err := s.navRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: 父导航项 %d", ErrNotFound, *input.ParentID)
			}
			return nil, err
		}
		if parent.StoreID != storeID || parent.Location != input.Location {
			return nil, fmt.Errorf("%w: 父导航项不属于该店铺/位置", ErrValidation)
		}
		if parent.ParentID != nil {
			return nil, fmt.Errorf("%w: 导航最多支持一级嵌套", ErrValidation)
		}
	}

	maxOrder, err := s.navRepo.MaxSortOrder(ctx, storeID, input.Location)
	if err != nil {
		return nil, err
	}

	item := &model.NavigationItem{
		StoreID:   storeID,
		Label:     input.Label,
		Url:       input.Url,
		PageID:    input.PageID,
		Location:  input.Location,
		ParentID:  input.ParentID,
		SortOrder: maxOrder + 1,
	}

	if err := s.navRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("创建导航项失败: %v", err)
	}
	return item, nil
}

// UpdateItem 更新导航项标签/链接
func (s *NavigationService) UpdateItem(ctx context.Context, itemID int64, label, url string) (*model.NavigationItem, error) {
	item, err := s.navRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 导航项 %d", ErrNotFound, itemID)
		}
		return nil, err
	}

	fields := map[string]interface{}{}
	if label != "" {
		fields["label"] = label
	}
	if url != "" {
		fields["url"] = url
	}
	if len(fields) == 0 {
		return item, nil
	}

	if err := s.navRepo.UpdateFields(ctx, itemID, fields); err != nil {
		return nil, err
	}
	return s.navRepo.GetByID(ctx, itemID)
}

// Reorder 对某位置的顶层导航项整单重排，原子提交
func (s *NavigationService) Reorder(ctx context.Context, storeID int64, location model.NavLocation, orderedIDs []int64) error {
	if !validLocations[location] {
		return fmt.Errorf("%w: 非法导航位置 %s", ErrValidation, location)
	}
	if len(orderedIDs) == 0 {
		return fmt.Errorf("%w: 排序列表不能为空", ErrValidation)
	}

	seen := make(map[int64]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: 排序列表存在重复导航项 %d", ErrValidation, id)
		}
		seen[id] = struct{}{}
	}

	return s.navRepo.ReorderBatch(ctx, storeID, location, orderedIDs)
}

// DeleteItem 删除导航项（连带子项）
func (s *NavigationService) DeleteItem(ctx context.Context, itemID int64) error {
	if _, err := s.navRepo.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: 导航项 %d", ErrNotFound, itemID)
		}
		return err
	}
	return s.navRepo.Delete(ctx, itemID)
}
