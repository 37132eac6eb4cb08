package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"storebuilder_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// NavigationRepository 导航仓储接口
type NavigationRepository interface {
	Create(ctx context.Context, item *model.NavigationItem) error
	GetByID(ctx context.Context, id int64) (*model.NavigationItem, error)
	Update(ctx context.Context, item *model.NavigationItem) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	ListByLocation(ctx context.Context, storeID int64, location model.NavLocation) ([]model.NavigationItem, error)
	MaxSortOrder(ctx context.Context, storeID int64, location model.NavLocation) (int, error)
	ReorderBatch(ctx context.Context, storeID int64, location model.NavLocation, orderedIDs []int64) error
}

// ==================== 仓储实现 ====================

type navigationRepo struct {
	db *gorm.DB
}

// NewNavigationRepository 创建导航仓储
func NewNavigationRepository(db *gorm.DB) NavigationRepository {
	return &navigationRepo{db: db}
}

func (r *navigationRepo) Create(ctx context.Context, item *model.NavigationItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *navigationRepo) GetByID(ctx context.Context, id int64) (*model.NavigationItem, error) {
	var item model.NavigationItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *navigationRepo) Update(ctx context.Context, item *model.NavigationItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *navigationRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.NavigationItem{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 删除导航项及其子项
func (r *navigationRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&model.NavigationItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.NavigationItem{}, id).Error
	})
}

// ListByLocation 按位置返回导航项（含子项），排序同区块规则
func (r *navigationRepo) ListByLocation(ctx context.Context, storeID int64, location model.NavLocation) ([]model.NavigationItem, error) {
	var items []model.NavigationItem
	err := r.db.WithContext(ctx).
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC, id ASC")
		}).
		Where("store_id = ? AND location = ? AND parent_id IS NULL", storeID, location).
		Order("sort_order ASC, created_at ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *navigationRepo) MaxSortOrder(ctx context.Context, storeID int64, location model.NavLocation) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&model.NavigationItem{}).
		Where("store_id = ? AND location = ?", storeID, location).
		Select("MAX(sort_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return -1, nil
	}
	return *max, nil
}

// ReorderBatch 按提交顺序整单重排，同区块重排一样单事务原子提交
func (r *navigationRepo) ReorderBatch(ctx context.Context, storeID int64, location model.NavLocation, orderedIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for idx, id := range orderedIDs {
			result := tx.Model(&model.NavigationItem{}).
				Where("id = ? AND store_id = ? AND location = ?", id, storeID, location).
				Update("sort_order", idx)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("导航项 %d 不存在或不属于该位置", id)
			}
		}
		return nil
	})
}
