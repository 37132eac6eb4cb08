package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"storebuilder_v1_202608/internal/model"
	"storebuilder_v1_202608/internal/registry"
	"storebuilder_v1_202608/internal/repository"
)

// MoveDirection 相邻移动方向
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// SectionService 区块服务
// 维护页面内区块的有序序列：新增/重排/相邻移动/复制/删除/显隐，
// 以及配置的浅合并落库
type SectionService struct {
	sectionRepo repository.SectionRepository
	pageRepo    repository.PageRepository
}

// NewSectionService 创建区块服务
func NewSectionService(sectionRepo repository.SectionRepository, pageRepo repository.PageRepository) *SectionService {
	return &SectionService{
		sectionRepo: sectionRepo,
		pageRepo:    pageRepo,
	}
}

// ==================== 查询 ====================

// ListSections 按渲染顺序返回页面区块
func (s *SectionService) ListSections(ctx context.Context, pageID int64) ([]model.Section, error) {
	if _, err := s.pageRepo.GetByID(ctx, pageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 页面 %d", ErrNotFound, pageID)
		}
		return nil, err
	}
	return s.sectionRepo.ListByPage(ctx, pageID)
}

// GetSection 获取单个区块
func (s *SectionService) GetSection(ctx context.Context, sectionID int64) (*model.Section, error) {
	section, err := s.sectionRepo.GetByID(ctx, sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 区块 %d", ErrNotFound, sectionID)
		}
		return nil, err
	}
	return section, nil
}

// ==================== 新增 ====================

// AddSection 向页面追加区块
// sort_order = 当前最大值 + 1，config 取注册表默认值，默认可见。
// 未注册的 section_type 直接失败，不落空定义的区块
func (s *SectionService) AddSection(ctx context.Context, pageID int64, sectionType model.SectionType, name string) (*model.Section, error) {
	page, err := s.pageRepo.GetByID(ctx, pageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 页面 %d", ErrNotFound, pageID)
		}
		return nil, err
	}

	defaultConfig, err := registry.CloneDefaultConfig(sectionType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	config, err := EncodeConfig(defaultConfig)
	if err != nil {
		return nil, err
	}

	maxOrder, err := s.sectionRepo.MaxSortOrder(ctx, pageID)
	if err != nil {
		return nil, err
	}

	if name == "" {
		def := registry.LookupOrFallback(sectionType)
		name = def.Label
	}

	section := &model.Section{
		PageID:      pageID,
		StoreID:     page.StoreID,
		SectionType: sectionType,
		Name:        name,
		Config:      config,
		IsVisible:   true,
		SortOrder:   maxOrder + 1,
	}

	if err := s.sectionRepo.Create(ctx, section); err != nil {
		return nil, fmt.Errorf("创建区块失败: %v", err)
	}
	return section, nil
}

// ==================== 排序 ====================

// Reorder 整单重排
// 调用方提交拖拽后的完整 ID 列表，必须覆盖页面全部区块；
// 写入按位置下标赋 sort_order，单事务原子提交
func (s *SectionService) Reorder(ctx context.Context, pageID int64, orderedIDs []int64) error {
	if len(orderedIDs) == 0 {
		return fmt.Errorf("%w: 排序列表不能为空", ErrValidation)
	}

	// ID 不允许重复
	seen := make(map[int64]struct{}, len(orderedIDs))
	for _, id := range orderedIDs {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: 排序列表存在重复区块 %d", ErrValidation, id)
		}
		seen[id] = struct{}{}
	}

	// 必须是页面区块的全量排列，缺了说明编辑器视图已过期
	count, err := s.sectionRepo.CountByPage(ctx, pageID)
	if err != nil {
		return err
	}
	if count != int64(len(orderedIDs)) {
		return fmt.Errorf("%w: 排序列表与页面区块数不一致，请刷新后重试", ErrValidation)
	}

	return s.sectionRepo.ReorderBatch(ctx, pageID, orderedIDs)
}

// MoveAdjacent 与相邻区块交换位置
// 第一个上移、最后一个下移都是静默 no-op
func (s *SectionService) MoveAdjacent(ctx context.Context, sectionID int64, direction MoveDirection) error {
	if direction != MoveUp && direction != MoveDown {
		return fmt.Errorf("%w: 非法移动方向 %s", ErrValidation, direction)
	}

	section, err := s.GetSection(ctx, sectionID)
	if err != nil {
		return err
	}

	siblings, err := s.sectionRepo.ListByPage(ctx, section.PageID)
	if err != nil {
		return err
	}

	idx := -1
	for i := range siblings {
		if siblings[i].ID == sectionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: 区块 %d", ErrNotFound, sectionID)
	}

	var neighbor *model.Section
	switch direction {
	case MoveUp:
		if idx == 0 {
			return nil // 已在顶部
		}
		neighbor = &siblings[idx-1]
	case MoveDown:
		if idx == len(siblings)-1 {
			return nil // 已在底部
		}
		neighbor = &siblings[idx+1]
	}

	// 历史脏数据可能两个区块 sort_order 相同，直接交换会原地踏步，
	// 退回整单重排，按当前展示顺序重新编号
	if neighbor.SortOrder == section.SortOrder {
		return s.sectionRepo.ReorderBatch(ctx, section.PageID, reorderedIDs(siblings, idx, direction))
	}

	return s.sectionRepo.SwapSortOrder(ctx, &siblings[idx], neighbor)
}

// reorderedIDs 按相邻交换后的顺序生成全量 ID 列表
func reorderedIDs(siblings []model.Section, idx int, direction MoveDirection) []int64 {
	ids := make([]int64, len(siblings))
	for i := range siblings {
		ids[i] = siblings[i].ID
	}
	switch direction {
	case MoveUp:
		ids[idx-1], ids[idx] = ids[idx], ids[idx-1]
	case MoveDown:
		ids[idx], ids[idx+1] = ids[idx+1], ids[idx]
	}
	return ids
}

// ==================== 复制 ====================

// Duplicate 复制区块
// 新区块复制 config/mobile_config/name（加"(副本)"后缀），
// 插在源区块下一位，后续区块整体后移一位，单事务提交
func (s *SectionService) Duplicate(ctx context.Context, sectionID int64) (*model.Section, error) {
	source, err := s.GetSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	dup := &model.Section{
		PageID:      source.PageID,
		StoreID:     source.StoreID,
		SectionType: source.SectionType,
		Name:        source.Name + " (副本)",
		Config:      append([]byte(nil), source.Config...),
		IsVisible:   source.IsVisible,
	}
	if source.MobileConfig != nil {
		dup.MobileConfig = append([]byte(nil), source.MobileConfig...)
	}

	if err := s.sectionRepo.InsertAfter(ctx, source, dup); err != nil {
		return nil, fmt.Errorf("复制区块失败: %v", err)
	}
	return dup, nil
}

// ==================== 删除与显隐 ====================

// Remove 删除区块，不回填剩余 sort_order
func (s *SectionService) Remove(ctx context.Context, sectionID int64) error {
	if _, err := s.GetSection(ctx, sectionID); err != nil {
		return err
	}
	return s.sectionRepo.Delete(ctx, sectionID)
}

// ToggleVisibility 切换显隐，不影响 sort_order 和 config
func (s *SectionService) ToggleVisibility(ctx context.Context, sectionID int64) (*model.Section, error) {
	section, err := s.GetSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	if err := s.sectionRepo.UpdateFields(ctx, sectionID, map[string]interface{}{
		"is_visible": !section.IsVisible,
	}); err != nil {
		return nil, err
	}

	section.IsVisible = !section.IsVisible
	return section, nil
}

// ==================== 配置合并 ====================

// UpdateConfig 增量更新区块配置（浅合并，null 删键）
func (s *SectionService) UpdateConfig(ctx context.Context, sectionID int64, patch map[string]interface{}) (*model.Section, error) {
	section, err := s.GetSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	current, err := DecodeConfig(section.Config)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	merged, err := EncodeConfig(MergeConfig(current, patch))
	if err != nil {
		return nil, err
	}

	if err := s.sectionRepo.UpdateFields(ctx, sectionID, map[string]interface{}{
		"config": merged,
	}); err != nil {
		return nil, err
	}

	section.Config = merged
	return section, nil
}

// UpdateMobileConfig 增量更新移动端覆盖配置
// mobile_config 为 null 时首次写入从空 map 开始合并；
// 只有写进 mobile_config 的字段才会在移动端覆盖 config
func (s *SectionService) UpdateMobileConfig(ctx context.Context, sectionID int64, patch map[string]interface{}) (*model.Section, error) {
	section, err := s.GetSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	current := map[string]interface{}{}
	if section.MobileConfig != nil {
		current, err = DecodeConfig(section.MobileConfig)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}

	merged, err := EncodeConfig(MergeConfig(current, patch))
	if err != nil {
		return nil, err
	}

	if err := s.sectionRepo.UpdateFields(ctx, sectionID, map[string]interface{}{
		"mobile_config": merged,
	}); err != nil {
		return nil, err
	}

	section.MobileConfig = merged
	return section, nil
}

// ResetMobileConfig 清空移动端覆盖，恢复完全继承 config
func (s *SectionService) ResetMobileConfig(ctx context.Context, sectionID int64) error {
	if _, err := s.GetSection(ctx, sectionID); err != nil {
		return err
	}
	return s.sectionRepo.UpdateFields(ctx, sectionID, map[string]interface{}{
		"mobile_config": nil,
	})
}

// RenderConfig 计算指定视口下的生效配置
func (s *SectionService) RenderConfig(ctx context.Context, sectionID int64, mobile bool) (map[string]interface{}, error) {
	section, err := s.GetSection(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	config, err := DecodeConfig(section.Config)
	if err != nil {
		return nil, err
	}

	// 空配置（模板初始化只落类型不落配置）回落到注册表默认值
	if len(config) == 0 {
		def := registry.LookupOrFallback(section.SectionType)
		config = def.DefaultConfig
	}

	mobileConfig, err := DecodeOptionalConfig(section.MobileConfig)
	if err != nil {
		return nil, err
	}

	return EffectiveConfig(config, mobileConfig, mobile), nil
}
