package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storebuilder_v1_202608/internal/model"
	"storebuilder_v1_202608/internal/repository"
)

// ThemeService 主题服务
type ThemeService struct {
	themeRepo repository.ThemeRepository
	storeRepo repository.StoreRepository
}

// NewThemeService 创建主题服务
func NewThemeService(themeRepo repository.ThemeRepository, storeRepo repository.StoreRepository) *ThemeService {
	return &ThemeService{
		themeRepo: themeRepo,
		storeRepo: storeRepo,
	}
}

// defaultThemeColors 新店铺默认主题配色
var defaultThemeColors = []byte(`{"primary":"#111827","secondary":"#6b7280","accent":"#2563eb","background":"#ffffff","text":"#111827"}`)

// defaultThemeTypography 新店铺默认字体
var defaultThemeTypography = []byte(`{"heading_font":"Inter","body_font":"Inter","base_size":"16px"}`)

// defaultThemeLayout 新店铺默认布局
var defaultThemeLayout = []byte(`{"container_width":"1200px","section_spacing":"64px","border_radius":"8px"}`)

// ListThemes 返回店铺全部主题
func (s *ThemeService) ListThemes(ctx context.Context, storeID int64) ([]model.Theme, error) {
	return s.themeRepo.ListByStore(ctx, storeID)
}

// GetTheme 获取主题
func (s *ThemeService) GetTheme(ctx context.Context, themeID int64) (*model.Theme, error) {
	theme, err := s.themeRepo.GetByID(ctx, themeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 主题 %d", ErrNotFound, themeID)
		}
		return nil, err
	}
	return theme, nil
}

// GetActiveTheme 获取店铺当前激活主题
func (s *ThemeService) GetActiveTheme(ctx context.Context, storeID int64) (*model.Theme, error) {
	theme, err := s.themeRepo.GetActiveByStore(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 店铺 %d 没有激活主题", ErrNotFound, storeID)
		}
		return nil, err
	}
	return theme, nil
}

// CreateDefaultTheme 为新店铺创建并激活默认主题
func (s *ThemeService) CreateDefaultTheme(ctx context.Context, storeID int64) (*model.Theme, error) {
	theme := &model.Theme{
		StoreID:    storeID,
		Name:       "默认主题",
		IsActive:   true,
		Colors:     defaultThemeColors,
		Typography: defaultThemeTypography,
		Layout:     defaultThemeLayout,
	}
	if err := s.themeRepo.Create(ctx, theme); err != nil {
		return nil, fmt.Errorf("创建默认主题失败: %v", err)
	}
	return theme, nil
}

// CreateTheme 创建主题（默认不激活）
func (s *ThemeService) CreateTheme(ctx context.Context, storeID int64, name string) (*model.Theme, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: 主题名称不能为空", ErrValidation)
	}
	if _, err := s.storeRepo.GetByID(ctx, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 店铺 %d", ErrNotFound, storeID)
		}
		return nil, err
	}

	theme := &model.Theme{
		StoreID:    storeID,
		Name:       name,
		Colors:     defaultThemeColors,
		Typography: defaultThemeTypography,
		Layout:     defaultThemeLayout,
	}
	if err := s.themeRepo.Create(ctx, theme); err != nil {
		return nil, fmt.Errorf("创建主题失败: %v", err)
	}
	return theme, nil
}

// ThemeUpdateInput 主题可编辑字段（nil 表示不更新）
type ThemeUpdateInput struct {
	Name       *string
	Colors     map[string]interface{}
	Typography map[string]interface{}
	Layout     map[string]interface{}
	CustomCSS  *string
}

// UpdateTheme 更新主题样式
// colors/typography/layout 三个映射各自浅合并，未提交的键保留
func (s *ThemeService) UpdateTheme(ctx context.Context, themeID int64, input ThemeUpdateInput) (*model.Theme, error) {
	theme, err := s.GetTheme(ctx, themeID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, fmt.Errorf("%w: 主题名称不能为空", ErrValidation)
		}
		fields["name"] = *input.Name
	}
	if input.CustomCSS != nil {
		fields["custom_css"] = *input.CustomCSS
	}

	if input.Colors != nil {
		merged, err := mergeJSONColumn(theme.Colors, input.Colors)
		if err != nil {
			return nil, err
		}
		fields["colors"] = merged
	}
	if input.Typography != nil {
		merged, err := mergeJSONColumn(theme.Typography, input.Typography)
		if err != nil {
			return nil, err
		}
		fields["typography"] = merged
	}
	if input.Layout != nil {
		merged, err := mergeJSONColumn(theme.Layout, input.Layout)
		if err != nil {
			return nil, err
		}
		fields["layout"] = merged
	}

	if len(fields) == 0 {
		return theme, nil
	}

	if err := s.themeRepo.UpdateFields(ctx, themeID, fields); err != nil {
		return nil, err
	}
	return s.themeRepo.GetByID(ctx, themeID)
}

// Activate 激活主题，同店铺其它主题同事务停用
func (s *ThemeService) Activate(ctx context.Context, themeID int64) error {
	theme, err := s.GetTheme(ctx, themeID)
	if err != nil {
		return err
	}
	if err := s.themeRepo.Activate(ctx, theme.StoreID, themeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: 主题 %d", ErrNotFound, themeID)
		}
		return err
	}
	return nil
}

// DeleteTheme 删除主题，激活中的主题不可删
func (s *ThemeService) DeleteTheme(ctx context.Context, themeID int64) error {
	theme, err := s.GetTheme(ctx, themeID)
	if err != nil {
		return err
	}
	if theme.IsActive {
		return fmt.Errorf("%w: 激活中的主题不可删除，请先切换到其它主题", ErrValidation)
	}
	return s.themeRepo.Delete(ctx, themeID)
}
