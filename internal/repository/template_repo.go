package repository

import (
	"context"

	"gorm.io/gorm"

	"storebuilder_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// TemplateRepository 建站模板目录仓储接口
type TemplateRepository interface {
	Create(ctx context.Context, tpl *model.PageTemplate) error
	CreateBatch(ctx context.Context, tpls []model.PageTemplate) error
	Count(ctx context.Context) (int64, error)

	// Match 匹配业务分类下的生效模板
	// business_category 为空的行是该业务类型下的通用模板，始终命中
	Match(ctx context.Context, businessType, businessCategory string) ([]model.PageTemplate, error)
}

// ==================== 仓储实现 ====================

type templateRepo struct {
	db *gorm.DB
}

// NewTemplateRepository 创建模板仓储
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepo{db: db}
}

func (r *templateRepo) Create(ctx context.Context, tpl *model.PageTemplate) error {
	return r.db.WithContext(ctx).Create(tpl).Error
}

func (r *templateRepo) CreateBatch(ctx context.Context, tpls []model.PageTemplate) error {
	if len(tpls) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&tpls).Error
}

func (r *templateRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PageTemplate{}).Count(&count).Error
	return count, err
}

func (r *templateRepo) Match(ctx context.Context, businessType, businessCategory string) ([]model.PageTemplate, error) {
	var tpls []model.PageTemplate
	query := r.db.WithContext(ctx).
		Where("business_type = ? AND is_active = ?", businessType, true)

	if businessCategory != "" {
		query = query.Where("business_category = '' OR business_category IS NULL OR business_category = ?", businessCategory)
	} else {
		query = query.Where("business_category = '' OR business_category IS NULL")
	}

	err := query.Order("sort_order ASC, id ASC").Find(&tpls).Error
	return tpls, err
}
