package service

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storebuilder_v1_202608/internal/model"
	"storebuilder_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func newThemeTestService(t *testing.T) (*ThemeService, *gorm.DB, *model.Store) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Store{}, &model.Theme{}); err != nil {
		t.Fatalf("自动建表失败: %v", err)
	}
	svc := NewThemeService(repository.NewThemeRepository(db), repository.NewStoreRepository(db))

	store := &model.Store{Name: "测试店铺", Subdomain: "theme-shop", BusinessType: "ecommerce", Status: model.StoreStatusActive}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("创建店铺失败: %v", err)
	}
	return svc, db, store
}

// ==================== 创建 ====================

func TestThemeService_CreateDefaultTheme(t *testing.T) {
	svc, _, store := newThemeTestService(t)
	ctx := context.Background()

	theme, err := svc.CreateDefaultTheme(ctx, store.ID)
	if err != nil {
		t.Fatalf("创建默认主题失败: %v", err)
	}
	if !theme.IsActive {
		t.Error("默认主题应直接激活")
	}

	colors, err := DecodeConfig(theme.Colors)
	if err != nil {
		t.Fatalf("解析配色失败: %v", err)
	}
	if colors["primary"] == nil || colors["background"] == nil {
		t.Error("默认配色缺少基础键")
	}

	active, err := svc.GetActiveTheme(ctx, store.ID)
	if err != nil {
		t.Fatalf("查激活主题失败: %v", err)
	}
	if active.ID != theme.ID {
		t.Errorf("激活主题 ID = %d, want %d", active.ID, theme.ID)
	}
}

func TestThemeService_CreateTheme(t *testing.T) {
	svc, _, store := newThemeTestService(t)
	ctx := context.Background()

	theme, err := svc.CreateTheme(ctx, store.ID, "夏季促销")
	if err != nil {
		t.Fatalf("创建主题失败: %v", err)
	}
	if theme.IsActive {
		t.Error("手动创建的主题不应自动激活")
	}

	if _, err := svc.CreateTheme(ctx, store.ID, ""); !errors.Is(err, ErrValidation) {
		t.Errorf("空名称 err = %v, want ErrValidation", err)
	}
	if _, err := svc.CreateTheme(ctx, 9999, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("店铺不存在 err = %v, want ErrNotFound", err)
	}
}

// ==================== 激活 ====================

func TestThemeService_ActivateExclusive(t *testing.T) {
	svc, db, store := newThemeTestService(t)
	ctx := context.Background()

	first, _ := svc.CreateDefaultTheme(ctx, store.ID)
	second, _ := svc.CreateTheme(ctx, store.ID, "暗色主题")

	if err := svc.Activate(ctx, second.ID); err != nil {
		t.Fatalf("激活失败: %v", err)
	}

	// 同店铺同一时刻只有一个激活主题
	var activeCount int64
	db.Model(&model.Theme{}).Where("store_id = ? AND is_active = ?", store.ID, true).Count(&activeCount)
	if activeCount != 1 {
		t.Errorf("激活主题数 = %d, want 1", activeCount)
	}

	active, _ := svc.GetActiveTheme(ctx, store.ID)
	if active.ID != second.ID {
		t.Errorf("激活主题 = %d, want %d", active.ID, second.ID)
	}

	var old model.Theme
	db.First(&old, first.ID)
	if old.IsActive {
		t.Error("旧激活主题应被停用")
	}
}

func TestThemeService_ActivateIsolatedByStore(t *testing.T) {
	svc, db, store := newThemeTestService(t)
	ctx := context.Background()

	other := &model.Store{Name: "别家店", Subdomain: "other-theme-shop", BusinessType: "ecommerce", Status: model.StoreStatusActive}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("创建店铺失败: %v", err)
	}

	mine, _ := svc.CreateDefaultTheme(ctx, store.ID)
	theirs, _ := svc.CreateDefaultTheme(ctx, other.ID)
	extra, _ := svc.CreateTheme(ctx, store.ID, "新主题")

	if err := svc.Activate(ctx, extra.ID); err != nil {
		t.Fatalf("激活失败: %v", err)
	}

	// 切换只影响本店铺
	// 注意：gorm 的 First 会把已填充的主键拼进 WHERE，复查时每条记录用独立结构体
	var theirRow model.Theme
	if err := db.First(&theirRow, theirs.ID).Error; err != nil {
		t.Fatalf("查询他店主题失败: %v", err)
	}
	if !theirRow.IsActive {
		t.Error("切换主题不应影响其它店铺的激活状态")
	}

	var mineRow model.Theme
	if err := db.First(&mineRow, mine.ID).Error; err != nil {
		t.Fatalf("查询本店主题失败: %v", err)
	}
	if mineRow.IsActive {
		t.Error("本店铺旧主题应被停用")
	}
}

// ==================== 更新 ====================

func TestThemeService_UpdateThemeMerge(t *testing.T) {
	svc, _, store := newThemeTestService(t)
	ctx := context.Background()

	theme, _ := svc.CreateDefaultTheme(ctx, store.ID)

	css := ".hero { color: red }"
	updated, err := svc.UpdateTheme(ctx, theme.ID, ThemeUpdateInput{
		Colors:    map[string]interface{}{"primary": "#ff0000", "accent": nil},
		CustomCSS: &css,
	})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}

	colors, _ := DecodeConfig(updated.Colors)
	if colors["primary"] != "#ff0000" {
		t.Errorf("primary = %v, want #ff0000", colors["primary"])
	}
	if _, exists := colors["accent"]; exists {
		t.Error("null 补丁应删除 accent 键")
	}
	if colors["background"] != "#ffffff" {
		t.Error("未提交的键应保留")
	}
	if updated.CustomCSS != css {
		t.Errorf("custom_css = %s, want %s", updated.CustomCSS, css)
	}

	// 三个映射互不串味：只改 colors 不动 typography
	typography, _ := DecodeConfig(updated.Typography)
	if typography["heading_font"] != "Inter" {
		t.Error("未提交的 typography 应原样保留")
	}
}

// ==================== 删除 ====================

func TestThemeService_DeleteActiveProtected(t *testing.T) {
	svc, db, store := newThemeTestService(t)
	ctx := context.Background()

	active, _ := svc.CreateDefaultTheme(ctx, store.ID)
	spare, _ := svc.CreateTheme(ctx, store.ID, "备用主题")

	if err := svc.DeleteTheme(ctx, active.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("删激活主题 err = %v, want ErrValidation", err)
	}

	if err := svc.DeleteTheme(ctx, spare.ID); err != nil {
		t.Fatalf("删未激活主题失败: %v", err)
	}
	var count int64
	db.Model(&model.Theme{}).Where("store_id = ?", store.ID).Count(&count)
	if count != 1 {
		t.Errorf("剩余主题数 = %d, want 1", count)
	}
}
