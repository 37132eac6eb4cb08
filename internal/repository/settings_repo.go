package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storebuilder_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// SettingsRepository 页头/页脚设置仓储接口
type SettingsRepository interface {
	GetByStore(ctx context.Context, storeID int64) (*model.HeaderFooterSettings, error)
	GetOrCreate(ctx context.Context, storeID int64) (*model.HeaderFooterSettings, error)
	Update(ctx context.Context, settings *model.HeaderFooterSettings) error
	UpdateFields(ctx context.Context, storeID int64, fields map[string]interface{}) error
}

// ==================== 仓储实现 ====================

type settingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepository 创建设置仓储
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) GetByStore(ctx context.Context, storeID int64) (*model.HeaderFooterSettings, error) {
	var settings model.HeaderFooterSettings
	err := r.db.WithContext(ctx).Where("store_id = ?", storeID).First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// GetOrCreate 获取设置，不存在则创建空记录
// store_id 上有唯一索引，并发首次访问时后写的一方落在冲突分支，重查即可
func (r *settingsRepo) GetOrCreate(ctx context.Context, storeID int64) (*model.HeaderFooterSettings, error) {
	settings, err := r.GetByStore(ctx, storeID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &model.HeaderFooterSettings{
		StoreID:      storeID,
		HeaderConfig: []byte("{}"),
		FooterConfig: []byte("{}"),
		SocialLinks:  []byte("{}"),
	}
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		// 唯一索引冲突说明并发方先建好了，直接复用
		if existing, getErr := r.GetByStore(ctx, storeID); getErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return created, nil
}

func (r *settingsRepo) Update(ctx context.Context, settings *model.HeaderFooterSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

func (r *settingsRepo) UpdateFields(ctx context.Context, storeID int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.HeaderFooterSettings{}).
		Where("store_id = ?", storeID).
		Updates(fields).Error
}
