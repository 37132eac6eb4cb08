package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"storebuilder_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// PageRepository 页面仓储接口
type PageRepository interface {
	Create(ctx context.Context, page *model.Page) error
	GetByID(ctx context.Context, id int64) (*model.Page, error)
	GetByIDWithSections(ctx context.Context, id int64) (*model.Page, error)
	GetBySlug(ctx context.Context, storeID int64, slug string) (*model.Page, error)
	ExistsBySlug(ctx context.Context, storeID int64, slug string) (bool, error)
	Update(ctx context.Context, page *model.Page) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	// 列表查询
	ListByStore(ctx context.Context, storeID int64) ([]model.Page, error)
	List(ctx context.Context, filter PageFilter) ([]model.Page, int64, error)

	// 定时发布
	FindDuePublish(ctx context.Context, before time.Time, limit int) ([]model.Page, error)
}

// ==================== 过滤条件 ====================

// PageFilter 页面过滤条件
type PageFilter struct {
	StoreID     int64
	PageType    string
	IsPublished *bool
	Keyword     string
	Page        int
	PageSize    int
}

// ==================== 仓储实现 ====================

type pageRepo struct {
	db *gorm.DB
}

// NewPageRepository 创建页面仓储
func NewPageRepository(db *gorm.DB) PageRepository {
	return &pageRepo{db: db}
}

func (r *pageRepo) Create(ctx context.Context, page *model.Page) error {
	return r.db.WithContext(ctx).Create(page).Error
}

func (r *pageRepo) GetByID(ctx context.Context, id int64) (*model.Page, error) {
	var page model.Page
	if err := r.db.WithContext(ctx).First(&page, id).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// GetByIDWithSections 获取页面及其全部区块
// 区块按 sort_order 升序，脏数据同值时按 created_at、id 兜底，保证全序确定
func (r *pageRepo) GetByIDWithSections(ctx context.Context, id int64) (*model.Page, error) {
	var page model.Page
	err := r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC, id ASC")
		}).
		First(&page, id).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *pageRepo) GetBySlug(ctx context.Context, storeID int64, slug string) (*model.Page, error) {
	var page model.Page
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND slug = ?", storeID, slug).
		First(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *pageRepo) ExistsBySlug(ctx context.Context, storeID int64, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Page{}).
		Where("store_id = ? AND slug = ?", storeID, slug).
		Count(&count).Error
	return count > 0, err
}

func (r *pageRepo) Update(ctx context.Context, page *model.Page) error {
	return r.db.WithContext(ctx).Save(page).Error
}

func (r *pageRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Page{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 删除页面及其区块
func (r *pageRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", id).Delete(&model.Section{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Page{}, id).Error
	})
}

func (r *pageRepo) ListByStore(ctx context.Context, storeID int64) ([]model.Page, error) {
	var pages []model.Page
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at ASC, id ASC").
		Find(&pages).Error
	return pages, err
}

func (r *pageRepo) List(ctx context.Context, filter PageFilter) ([]model.Page, int64, error) {
	var pages []model.Page
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Page{})

	if filter.StoreID > 0 {
		query = query.Where("store_id = ?", filter.StoreID)
	}
	if filter.PageType != "" {
		query = query.Where("page_type = ?", filter.PageType)
	}
	if filter.IsPublished != nil {
		query = query.Where("is_published = ?", *filter.IsPublished)
	}
	if filter.Keyword != "" {
		query = query.Where("title LIKE ?", "%"+filter.Keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	offset := (filter.Page - 1) * filter.PageSize
	if err := query.Order("created_at ASC").Limit(filter.PageSize).Offset(offset).Find(&pages).Error; err != nil {
		return nil, 0, err
	}

	return pages, total, nil
}

// FindDuePublish 查找到期待发布的页面（定时发布任务用）
func (r *pageRepo) FindDuePublish(ctx context.Context, before time.Time, limit int) ([]model.Page, error) {
	var pages []model.Page
	err := r.db.WithContext(ctx).
		Where("is_published = ? AND published_at IS NOT NULL AND published_at <= ?", false, before).
		Limit(limit).
		Find(&pages).Error
	return pages, err
}
