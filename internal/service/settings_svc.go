package service

import (
	"context"
	"fmt"

	"storebuilder_v1_202608/internal/model"
	"storebuilder_v1_202608/internal/repository"
)

// SettingsService 页头/页脚设置服务
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService 创建设置服务
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetSettings 获取店铺设置，首次访问自动创建空记录
func (s *SettingsService) GetSettings(ctx context.Context, storeID int64) (*model.HeaderFooterSettings, error) {
	return s.settingsRepo.GetOrCreate(ctx, storeID)
}

// SettingsUpdateInput 设置增量更新（nil 表示不更新对应映射）
type SettingsUpdateInput struct {
	HeaderConfig map[string]interface{}
	FooterConfig map[string]interface{}
	SocialLinks  map[string]interface{}
}

// UpdateSettings 增量更新设置
// 三个映射各自浅合并：提交的键覆盖，未提交的键保留，null 删键
func (s *SettingsService) UpdateSettings(ctx context.Context, storeID int64, input SettingsUpdateInput) (*model.HeaderFooterSettings, error) {
	settings, err := s.settingsRepo.GetOrCreate(ctx, storeID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}

	if input.HeaderConfig != nil {
		merged, err := mergeJSONColumn(settings.HeaderConfig, input.HeaderConfig)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		fields["header_config"] = merged
	}
	if input.FooterConfig != nil {
		merged, err := mergeJSONColumn(settings.FooterConfig, input.FooterConfig)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		fields["footer_config"] = merged
	}
	if input.SocialLinks != nil {
		merged, err := mergeJSONColumn(settings.SocialLinks, input.SocialLinks)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
		fields["social_links"] = merged
	}

	if len(fields) == 0 {
		return settings, nil
	}

	if err := s.settingsRepo.UpdateFields(ctx, storeID, fields); err != nil {
		return nil, err
	}
	return s.settingsRepo.GetByStore(ctx, storeID)
}
