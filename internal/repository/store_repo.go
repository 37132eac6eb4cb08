package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storebuilder_v1_202608/internal/model"
)

// ==================== 接口定义 ====================

// StoreRepository 店铺仓储接口
type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) error
	GetByID(ctx context.Context, id int64) (*model.Store, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*model.Store, error)
	Update(ctx context.Context, store *model.Store) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	UpdateStatus(ctx context.Context, id int64, status int) error
	Delete(ctx context.Context, id int64) error

	// 列表查询
	List(ctx context.Context, filter StoreFilter) ([]model.Store, int64, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Store, error)
}

// ==================== 过滤条件 ====================

// StoreFilter 店铺过滤条件
type StoreFilter struct {
	Name         string
	BusinessType string
	Status       int // -1 表示不筛选
	Page         int
	PageSize     int
}

// ==================== 仓储实现 ====================

type storeRepo struct {
	db *gorm.DB
}

// NewStoreRepository 创建店铺仓储
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepo{db: db}
}

func (r *storeRepo) Create(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Create(store).Error
}

func (r *storeRepo) GetByID(ctx context.Context, id int64) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) GetBySubdomain(ctx context.Context, subdomain string) (*model.Store, error) {
	var store model.Store
	if err := r.db.WithContext(ctx).Where("subdomain = ?", subdomain).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepo) Update(ctx context.Context, store *model.Store) error {
	return r.db.WithContext(ctx).Save(store).Error
}

func (r *storeRepo) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Store{}).Where("id = ?", id).Updates(fields).Error
}

func (r *storeRepo) UpdateStatus(ctx context.Context, id int64, status int) error {
	return r.db.WithContext(ctx).
		Model(&model.Store{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// Delete 删除店铺及全部下属租户数据
// 外键虽然配了级联，软删场景 gorm 不会触发数据库级联，这里显式逐表删
func (r *storeRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("store_id = ?", id).Delete(&model.Section{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", id).Delete(&model.Page{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", id).Delete(&model.Theme{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", id).Delete(&model.NavigationItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", id).Delete(&model.HeaderFooterSettings{}).Error; err != nil {
			return err
		}
		if err := tx.Where("store_id = ?", id).Delete(&model.StoreMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Store{}, id).Error
	})
}

func (r *storeRepo) List(ctx context.Context, filter StoreFilter) ([]model.Store, int64, error) {
	var stores []model.Store
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Store{})

	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.BusinessType != "" {
		query = query.Where("business_type = ?", filter.BusinessType)
	}
	if filter.Status >= 0 {
		query = query.Where("status = ?", filter.Status)
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
	if err := query.Order("created_at DESC").Limit(filter.PageSize).Offset(offset).Find(&stores).Error; err != nil {
		return nil, 0, err
	}

	return stores, total, nil
}

func (r *storeRepo) ListByUserID(ctx context.Context, userID int64) ([]model.Store, error) {
	var stores []model.Store
	err := r.db.WithContext(ctx).
		Model(&model.Store{}).
		Joins("JOIN store_members ON store_members.store_id = stores.id").
		Where("store_members.sys_user_id = ? AND store_members.deleted_at IS NULL", userID).
		Find(&stores).Error
	return stores, err
}

// ==================== StoreMemberRepository ====================

// StoreMemberRepository 店铺成员仓库接口
type StoreMemberRepository interface {
	Create(ctx context.Context, member *model.StoreMember) error
	GetByUserAndStore(ctx context.Context, userID, storeID int64) (*model.StoreMember, error)
	ListByStore(ctx context.Context, storeID int64) ([]model.StoreMember, error)
	UpdateRole(ctx context.Context, userID, storeID int64, role string) error
	Delete(ctx context.Context, userID, storeID int64) error
	HasAccess(ctx context.Context, userID, storeID int64) (bool, error)
}

type storeMemberRepo struct {
	db *gorm.DB
}

// NewStoreMemberRepository 创建店铺成员仓库
func NewStoreMemberRepository(db *gorm.DB) StoreMemberRepository {
	return &storeMemberRepo{db: db}
}

func (r *storeMemberRepo) Create(ctx context.Context, member *model.StoreMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *storeMemberRepo) GetByUserAndStore(ctx context.Context, userID, storeID int64) (*model.StoreMember, error) {
	var member model.StoreMember
	err := r.db.WithContext(ctx).
		Where("sys_user_id = ? AND store_id = ?", userID, storeID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *storeMemberRepo) ListByStore(ctx context.Context, storeID int64) ([]model.StoreMember, error) {
	var members []model.StoreMember
	err := r.db.WithContext(ctx).
		Preload("SysUser").
		Where("store_id = ?", storeID).
		Find(&members).Error
	return members, err
}

func (r *storeMemberRepo) UpdateRole(ctx context.Context, userID, storeID int64, role string) error {
	return r.db.WithContext(ctx).Model(&model.StoreMember{}).
		Where("sys_user_id = ? AND store_id = ?", userID, storeID).
		Update("role", role).Error
}

func (r *storeMemberRepo) Delete(ctx context.Context, userID, storeID int64) error {
	return r.db.WithContext(ctx).
		Where("sys_user_id = ? AND store_id = ?", userID, storeID).
		Delete(&model.StoreMember{}).Error
}

// HasAccess 检查用户是否有店铺访问权限
func (r *storeMemberRepo) HasAccess(ctx context.Context, userID, storeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.StoreMember{}).
		Where("sys_user_id = ? AND store_id = ?", userID, storeID).
		Count(&count).Error
	return count > 0, err
}

// IsNotFound 判断是否记录不存在
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
