package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"gorm.io/gorm"

	"storebuilder_v1_202608/internal/model"
	"storebuilder_v1_202608/internal/repository"
)

// StoreService 店铺服务
// 创建店铺 = 落店铺记录 + owner 成员 + 默认主题 + 页头页脚设置 + 模板初始化
type StoreService struct {
	storeRepo    repository.StoreRepository
	memberRepo   repository.StoreMemberRepository
	templateSvc  *TemplateService
	themeSvc     *ThemeService
	settingsRepo repository.SettingsRepository
}

// NewStoreService 创建店铺服务
func NewStoreService(
	storeRepo repository.StoreRepository,
	memberRepo repository.StoreMemberRepository,
	templateSvc *TemplateService,
	themeSvc *ThemeService,
	settingsRepo repository.SettingsRepository,
) *StoreService {
	return &StoreService{
		storeRepo:    storeRepo,
		memberRepo:   memberRepo,
		templateSvc:  templateSvc,
		themeSvc:     themeSvc,
		settingsRepo: settingsRepo,
	}
}

var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// StoreCreateInput 创建店铺输入
type StoreCreateInput struct {
	Name             string
	Subdomain        string
	BusinessType     string
	BusinessCategory string
	OwnerUserID      int64
}

// CreateStore 创建店铺并完成初始化
// 模板初始化失败不阻塞店铺创建（可稍后重新 seed），其余步骤失败即返回错误
func (s *StoreService) CreateStore(ctx context.Context, input StoreCreateInput) (*model.Store, int, error) {
	if input.Name == "" {
		return nil, 0, fmt.Errorf("%w: 店铺名称不能为空", ErrValidation)
	}
	if !subdomainPattern.MatchString(input.Subdomain) {
		return nil, 0, fmt.Errorf("%w: 非法二级域名 '%s'", ErrValidation, input.Subdomain)
	}
	if input.BusinessType == "" {
		input.BusinessType = model.BusinessTypeEcommerce
	}

	// 二级域名全局唯一
	if _, err := s.storeRepo.GetBySubdomain(ctx, input.Subdomain); err == nil {
		return nil, 0, fmt.Errorf("%w: 二级域名 '%s' 已被占用", ErrConflict, input.Subdomain)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, err
	}

	store := &model.Store{
		Name:             input.Name,
		Subdomain:        input.Subdomain,
		BusinessType:     input.BusinessType,
		BusinessCategory: input.BusinessCategory,
		Status:           model.StoreStatusPending,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		return nil, 0, fmt.Errorf("创建店铺失败: %v", err)
	}

	// owner 成员
	if input.OwnerUserID > 0 {
		member := &model.StoreMember{
			SysUserID: input.OwnerUserID,
			StoreID:   store.ID,
			Role:      model.MemberRoleOwner,
		}
		if err := s.memberRepo.Create(ctx, member); err != nil {
			return nil, 0, fmt.Errorf("创建店主成员失败: %v", err)
		}
	}

	// 默认主题 + 设置
	if _, err := s.themeSvc.CreateDefaultTheme(ctx, store.ID); err != nil {
		return nil, 0, err
	}
	if _, err := s.settingsRepo.GetOrCreate(ctx, store.ID); err != nil {
		return nil, 0, err
	}

	// 模板初始化，失败只记录不中断
	created, err := s.templateSvc.SeedStore(ctx, store.ID)
	if err != nil {
		log.Printf("[Store] 店铺 %d 模板初始化失败: %v", store.ID, err)
	}

	// 初始化完成，置为正常状态
	if err := s.storeRepo.UpdateStatus(ctx, store.ID, model.StoreStatusActive); err != nil {
		return nil, created, err
	}
	store.Status = model.StoreStatusActive

	return store, created, nil
}

// GetStore 获取店铺
func (s *StoreService) GetStore(ctx context.Context, storeID int64) (*model.Store, error) {
	store, err := s.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 店铺 %d", ErrNotFound, storeID)
		}
		return nil, err
	}
	return store, nil
}

// ListStores 分页查询店铺
func (s *StoreService) ListStores(ctx context.Context, filter repository.StoreFilter) ([]model.Store, int64, error) {
	return s.storeRepo.List(ctx, filter)
}

// ListUserStores 返回用户有权限的店铺
func (s *StoreService) ListUserStores(ctx context.Context, userID int64) ([]model.Store, error) {
	return s.storeRepo.ListByUserID(ctx, userID)
}

// ReseedStore 手动补齐标准页面（幂等）
func (s *StoreService) ReseedStore(ctx context.Context, storeID int64) (int, error) {
	return s.templateSvc.SeedStore(ctx, storeID)
}

// DeleteStore 删除店铺及全部租户数据
func (s *StoreService) DeleteStore(ctx context.Context, storeID int64) error {
	if _, err := s.GetStore(ctx, storeID); err != nil {
		return err
	}
	return s.storeRepo.Delete(ctx, storeID)
}

// ==================== 成员管理 ====================

// AddMember 添加店铺成员
func (s *StoreService) AddMember(ctx context.Context, storeID, userID int64, role string) error {
	switch role {
	case model.MemberRoleOwner, model.MemberRoleManager, model.MemberRoleEditor, model.MemberRoleViewer:
	default:
		return fmt.Errorf("%w: 非法角色 '%s'", ErrValidation, role)
	}

	if _, err := s.GetStore(ctx, storeID); err != nil {
		return err
	}

	if _, err := s.memberRepo.GetByUserAndStore(ctx, userID, storeID); err == nil {
		return fmt.Errorf("%w: 用户已是店铺成员", ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return s.memberRepo.Create(ctx, &model.StoreMember{
		SysUserID: userID,
		StoreID:   storeID,
		Role:      role,
	})
}

// ListMembers 返回店铺成员
func (s *StoreService) ListMembers(ctx context.Context, storeID int64) ([]model.StoreMember, error) {
	return s.memberRepo.ListByStore(ctx, storeID)
}

// RemoveMember 移除成员，owner 不可移除
func (s *StoreService) RemoveMember(ctx context.Context, storeID, userID int64) error {
	member, err := s.memberRepo.GetByUserAndStore(ctx, userID, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: 成员不存在", ErrNotFound)
		}
		return err
	}
	if member.Role == model.MemberRoleOwner {
		return fmt.Errorf("%w: 店主不可移除", ErrValidation)
	}
	return s.memberRepo.Delete(ctx, userID, storeID)
}
