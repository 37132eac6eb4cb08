package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"storebuilder_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// SectionRepository 区块仓储接口
type SectionRepository interface {
	Create(ctx context.Context, section *model.Section) error
	GetByID(ctx context.Context, id int64) (*model.Section, error)
	Update(ctx context.Context, section *model.Section) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	// 排序读取，带确定性兜底排序
	ListByPage(ctx context.Context, pageID int64) ([]model.Section, error)
	MaxSortOrder(ctx context.Context, pageID int64) (int, error)
	CountByPage(ctx context.Context, pageID int64) (int64, error)

	// 排序写入，必须整体原子提交
	ReorderBatch(ctx context.Context, pageID int64, orderedIDs []int64) error
	SwapSortOrder(ctx context.Context, a, b *model.Section) error
	InsertAfter(ctx context.Context, source *model.Section, dup *model.Section) error
}

// ==================== 仓储实现 ====================

type sectionRepo struct {
	db *gorm.DB
}

// NewSectionRepository 创建区块仓储
func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepo{db: db}
}

func (r *sectionRepo) Create(ctx context.Context, section *model.Section) error {
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *sectionRepo) GetByID(ctx context.Context, id int64) (*model.Section, error) {
	var section model.Section
	if err := r.db.WithContext(ctx).First(&section, id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepo) Update(ctx context.Context, section *model.Section) error {
	return r.db.WithContext(ctx).Save(section).Error
}

func (r *sectionRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Section{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 删除区块
// 不回填剩余区块的 sort_order，排序只看相对大小，允许留空洞
func (r *sectionRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Section{}, id).Error
}

// ListByPage 按渲染顺序返回页面的全部区块
// sort_order 相同（历史非原子写入的脏数据）时按创建时间、ID 升序兜底，
// 保证任何数据状态下都是严格全序
func (r *sectionRepo) ListByPage(ctx context.Context, pageID int64) ([]model.Section, error) {
	var sections []model.Section
	err := r.db.WithContext(ctx).
		Where("page_id = ?", pageID).
		Order("sort_order ASC, created_at ASC, id ASC").
		Find(&sections).Error
	return sections, err
}

func (r *sectionRepo) MaxSortOrder(ctx context.Context, pageID int64) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&model.Section{}).
		Where("page_id = ?", pageID).
		Select("MAX(sort_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		// 空页面，首个区块从 0 开始
		return -1, nil
	}
	return *max, nil
}

func (r *sectionRepo) CountByPage(ctx context.Context, pageID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Section{}).
		Where("page_id = ?", pageID).
		Count(&count).Error
	return count, err
}

// ReorderBatch 整单重排
// 调用方提交拖拽后的完整 ID 顺序，逐个按下标写 sort_order。
// 全程单事务：并发读取方要么看到旧排序、要么看到新排序，
// 不会观察到一半旧一半新的中间态
func (r *sectionRepo) ReorderBatch(ctx context.Context, pageID int64, orderedIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for idx, id := range orderedIDs {
			result := tx.Model(&model.Section{}).
				Where("id = ? AND page_id = ?", id, pageID).
				Update("sort_order", idx)
			if result.Error != nil {
				return result.Error
			}
			// ID 不属于该页面（或已被并发删除）时整单回滚，
			// 避免留下残缺的重排结果
			if result.RowsAffected == 0 {
				return fmt.Errorf("区块 %d 不存在或不属于页面 %d", id, pageID)
			}
		}
		return nil
	})
}

// SwapSortOrder 交换两个区块的排序值（上移/下移）
func (r *sectionRepo) SwapSortOrder(ctx context.Context, a, b *model.Section) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Section{}).Where("id = ?", a.ID).
			Update("sort_order", b.SortOrder).Error; err != nil {
			return err
		}
		return tx.Model(&model.Section{}).Where("id = ?", b.ID).
			Update("sort_order", a.SortOrder).Error
	})
}

// InsertAfter 把副本插到源区块的下一位
// 源之后的区块 sort_order 统一 +1 腾位，和副本落库同一事务提交
func (r *sectionRepo) InsertAfter(ctx context.Context, source *model.Section, dup *model.Section) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Section{}).
			Where("page_id = ? AND sort_order > ?", source.PageID, source.SortOrder).
			Update("sort_order", gorm.Expr("sort_order + 1")).Error; err != nil {
			return err
		}
		dup.SortOrder = source.SortOrder + 1
		return tx.Create(dup).Error
	})
}
