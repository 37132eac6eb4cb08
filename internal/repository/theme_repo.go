package repository

import (
	"context"

	"gorm.io/gorm"

	"storebuilder_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// ThemeRepository 主题仓储接口
type ThemeRepository interface {
	Create(ctx context.Context, theme *model.Theme) error
	GetByID(ctx context.Context, id int64) (*model.Theme, error)
	GetActiveByStore(ctx context.Context, storeID int64) (*model.Theme, error)
	Update(ctx context.Context, theme *model.Theme) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	ListByStore(ctx context.Context, storeID int64) ([]model.Theme, error)

	// Activate 激活主题，事务内先停用同店铺其它主题
	Activate(ctx context.Context, storeID, themeID int64) error
}

// ==================== 仓储实现 ====================

type themeRepo struct {
	db *gorm.DB
}

// NewThemeRepository 创建主题仓储
func NewThemeRepository(db *gorm.DB) ThemeRepository {
	return &themeRepo{db: db}
}

func (r *themeRepo) Create(ctx context.Context, theme *model.Theme) error {
	return r.db.WithContext(ctx).Create(theme).Error
}

func (r *themeRepo) GetByID(ctx context.Context, id int64) (*model.Theme, error) {
	var theme model.Theme
	if err := r.db.WithContext(ctx).First(&theme, id).Error; err != nil {
		return nil, err
	}
	return &theme, nil
}

func (r *themeRepo) GetActiveByStore(ctx context.Context, storeID int64) (*model.Theme, error) {
	var theme model.Theme
	err := r.db.WithContext(ctx).
		Where("store_id = ? AND is_active = ?", storeID, true).
		First(&theme).Error
	if err != nil {
		return nil, err
	}
	return &theme, nil
}

func (r *themeRepo) Update(ctx context.Context, theme *model.Theme) error {
	return r.db.WithContext(ctx).Save(theme).Error
}

func (r *themeRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Theme{}).Where("id = ?", id).Updates(fields).Error
}

func (r *themeRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Theme{}, id).Error
}

func (r *themeRepo) ListByStore(ctx context.Context, storeID int64) ([]model.Theme, error) {
	var themes []model.Theme
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at ASC").
		Find(&themes).Error
	return themes, err
}

// Activate 激活指定主题
// 单事务：停用该店铺所有主题后再激活目标，保证"一店一活跃主题"不变量
func (r *themeRepo) Activate(ctx context.Context, storeID, themeID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Theme{}).
			Where("store_id = ? AND is_active = ?", storeID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}

		result := tx.Model(&model.Theme{}).
			Where("id = ? AND store_id = ?", themeID, storeID).
			Update("is_active", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
