package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storebuilder_v1_202608/internal/model"
	"storebuilder_v1_202608/internal/repository"
)

// ==================== 测试辅助 ====================

func setupPageTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.Store{}, &model.Page{}, &model.Section{}); err != nil {
		t.Fatalf("自动建表失败: %v", err)
	}
	return db
}

func newPageTestService(t *testing.T) (*PageService, *gorm.DB, *model.Store) {
	db := setupPageTestDB(t)
	svc := NewPageService(repository.NewPageRepository(db), repository.NewStoreRepository(db))
	store := &model.Store{Name: "测试店铺", Subdomain: "page-shop", BusinessType: "ecommerce", Status: model.StoreStatusActive}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("创建店铺失败: %v", err)
	}
	return svc, db, store
}

// ==================== slug ====================

func TestNormalizeSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"About Us", "about-us"},
		{"  Summer Sale 2026  ", "summer-sale-2026"},
		{"Hello, World!", "hello-world"},
		{"--weird---input--", "weird-input"},
		{"中文标题", ""},
		{"FAQ", "faq"},
	}
	for _, c := range cases {
		if got := NormalizeSlug(c.in); got != c.want {
			t.Errorf("NormalizeSlug(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// ==================== 创建 ====================

func TestPageService_CreatePage(t *testing.T) {
	svc, _, store := newPageTestService(t)
	ctx := context.Background()

	page, err := svc.CreatePage(ctx, store.ID, "品牌故事", "Brand Story", model.PageTypeCustom)
	if err != nil {
		t.Fatalf("创建页面失败: %v", err)
	}
	if page.Slug != "brand-story" {
		t.Errorf("slug = %s, want brand-story", page.Slug)
	}
	if !page.ShowHeader || !page.ShowFooter {
		t.Error("新页面应默认启用页头页尾")
	}
	if page.IsPublished {
		t.Error("新页面应为未发布")
	}

	// 不传 slug 时从标题派生
	derived, err := svc.CreatePage(ctx, store.ID, "Size Guide", "", "")
	if err != nil {
		t.Fatalf("创建页面失败: %v", err)
	}
	if derived.Slug != "size-guide" {
		t.Errorf("派生 slug = %s, want size-guide", derived.Slug)
	}
	if derived.PageType != model.PageTypeCustom {
		t.Errorf("默认类型 = %s, want custom", derived.PageType)
	}
}

func TestPageService_CreatePageSystemSlugFixed(t *testing.T) {
	svc, _, store := newPageTestService(t)

	// 系统页面不接受自定义 slug
	page, err := svc.CreatePage(context.Background(), store.ID, "我的购物车", "my-cart", model.PageTypeCart)
	if err != nil {
		t.Fatalf("创建页面失败: %v", err)
	}
	if page.Slug != "cart" {
		t.Errorf("系统页面 slug = %s, want cart", page.Slug)
	}
}

func TestPageService_CreatePageSlugConflict(t *testing.T) {
	svc, db, store := newPageTestService(t)
	ctx := context.Background()

	if _, err := svc.CreatePage(ctx, store.ID, "关于", "about", model.PageTypeCustom); err != nil {
		t.Fatalf("创建页面失败: %v", err)
	}

	_, err := svc.CreatePage(ctx, store.ID, "另一个关于", "about", model.PageTypeCustom)
	if !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}

	// 冲突拒绝后不落半条数据
	var count int64
	db.Model(&model.Page{}).Where("store_id = ?", store.ID).Count(&count)
	if count != 1 {
		t.Errorf("页面数 = %d, want 1", count)
	}

	// 不同店铺 slug 互不影响
	other := &model.Store{Name: "别家店", Subdomain: "other-shop", BusinessType: "ecommerce", Status: model.StoreStatusActive}
	if err := db.Create(other).Error; err != nil {
		t.Fatalf("创建店铺失败: %v", err)
	}
	if _, err := svc.CreatePage(ctx, other.ID, "关于", "about", model.PageTypeCustom); err != nil {
		t.Errorf("跨店铺同名 slug 不应冲突: %v", err)
	}
}

func TestPageService_CreatePageValidation(t *testing.T) {
	svc, _, store := newPageTestService(t)
	ctx := context.Background()

	if _, err := svc.CreatePage(ctx, store.ID, "", "x", model.PageTypeCustom); !errors.Is(err, ErrValidation) {
		t.Errorf("空标题 err = %v, want ErrValidation", err)
	}
	// slug 归一化后为空
	if _, err := svc.CreatePage(ctx, store.ID, "标题", "中文", model.PageTypeCustom); !errors.Is(err, ErrValidation) {
		t.Errorf("非法 slug err = %v, want ErrValidation", err)
	}
	if _, err := svc.CreatePage(ctx, 9999, "标题", "x", model.PageTypeCustom); !errors.Is(err, ErrNotFound) {
		t.Errorf("店铺不存在 err = %v, want ErrNotFound", err)
	}
}

// ==================== 更新 ====================

func TestPageService_UpdatePage(t *testing.T) {
	svc, _, store := newPageTestService(t)
	ctx := context.Background()

	page, _ := svc.CreatePage(ctx, store.ID, "原标题", "original", model.PageTypeCustom)

	newTitle := "新标题"
	newSlug := "Renamed Page"
	seoTitle := "SEO 标题"
	updated, err := svc.UpdatePage(ctx, page.ID, PageUpdateInput{
		Title:    &newTitle,
		Slug:     &newSlug,
		SeoTitle: &seoTitle,
	})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.Title != "新标题" {
		t.Errorf("title = %s, want 新标题", updated.Title)
	}
	if updated.Slug != "renamed-page" {
		t.Errorf("slug = %s, want renamed-page (更新也要归一化)", updated.Slug)
	}
	if updated.SeoTitle != "SEO 标题" {
		t.Errorf("seo_title = %s, want SEO 标题", updated.SeoTitle)
	}
}

func TestPageService_UpdateSystemSlugImmutable(t *testing.T) {
	svc, _, store := newPageTestService(t)
	ctx := context.Background()

	cart, _ := svc.CreatePage(ctx, store.ID, "购物车", "", model.PageTypeCart)

	bad := "my-cart"
	if _, err := svc.UpdatePage(ctx, cart.ID, PageUpdateInput{Slug: &bad}); !errors.Is(err, ErrValidation) {
		t.Errorf("改系统页 slug err = %v, want ErrValidation", err)
	}

	// 标题可以照常改
	title := "我的购物车"
	updated, err := svc.UpdatePage(ctx, cart.ID, PageUpdateInput{Title: &title})
	if err != nil {
		t.Fatalf("改系统页标题失败: %v", err)
	}
	if updated.Title != "我的购物车" || updated.Slug != "cart" {
		t.Errorf("标题/slug = %s/%s, want 我的购物车/cart", updated.Title, updated.Slug)
	}
}

func TestPageService_UpdateSlugConflict(t *testing.T) {
	svc, _, store := newPageTestService(t)
	ctx := context.Background()

	svc.CreatePage(ctx, store.ID, "关于", "about", model.PageTypeCustom)
	page, _ := svc.CreatePage(ctx, store.ID, "联系", "contact-us", model.PageTypeCustom)

	taken := "about"
	if _, err := svc.UpdatePage(ctx, page.ID, PageUpdateInput{Slug: &taken}); !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want ErrConflict", err)
	}

	// 提交自己当前的 slug 不算冲突
	same := "contact-us"
	if _, err := svc.UpdatePage(ctx, page.ID, PageUpdateInput{Slug: &same}); err != nil {
		t.Errorf("提交原 slug 不应报错: %v", err)
	}
}

// ==================== 发布 ====================

func TestPageService_PublishImmediate(t *testing.T) {
	svc, _, store := newPageTestService(t)
	ctx := context.Background()

	page, _ := svc.CreatePage(ctx, store.ID, "上线页", "launch", model.PageTypeCustom)

	published, err := svc.Publish(ctx, page.ID, nil)
	if err != nil {
		t.Fatalf("发布失败: %v", err)
	}
	if !published.IsPublished {
		t.Error("立即发布后应为已发布")
	}
	if published.PublishedAt == nil {
		t.Error("发布时间不应为空")
	}
}

func TestPageService_PublishScheduled(t *testing.T) {
	svc, db, store := newPageTestService(t)
	ctx := context.Background()

	page, _ := svc.CreatePage(ctx, store.ID, "预告页", "teaser", model.PageTypeCustom)

	future := time.Now().Add(2 * time.Hour)
	published, err := svc.Publish(ctx, page.ID, &future)
	if err != nil {
		t.Fatalf("定时发布失败: %v", err)
	}
	// 到点前保持未发布，由后台任务置位
	if published.IsPublished {
		t.Error("未来时间发布不应立即置为已发布")
	}

	var row model.Page
	db.First(&row, page.ID)
	if row.IsPublished {
		t.Error("库里也不应是已发布")
	}
	if row.PublishedAt == nil || !row.PublishedAt.After(time.Now()) {
		t.Error("published_at 应为未来时间")
	}
}

func TestPageService_Unpublish(t *testing.T) {
	svc, db, store := newPageTestService(t)
	ctx := context.Background()

	page, _ := svc.CreatePage(ctx, store.ID, "下线页", "retired", model.PageTypeCustom)
	if _, err := svc.Publish(ctx, page.ID, nil); err != nil {
		t.Fatalf("发布失败: %v", err)
	}

	if err := svc.Unpublish(ctx, page.ID); err != nil {
		t.Fatalf("撤回失败: %v", err)
	}

	var row model.Page
	db.First(&row, page.ID)
	if row.IsPublished {
		t.Error("撤回后应为未发布")
	}
	if row.PublishedAt != nil {
		t.Error("撤回后 published_at 应清空")
	}
}

// ==================== 删除 ====================

func TestPageService_DeletePage(t *testing.T) {
	svc, db, store := newPageTestService(t)
	ctx := context.Background()

	custom, _ := svc.CreatePage(ctx, store.ID, "活动页", "campaign", model.PageTypeCustom)
	cart, _ := svc.CreatePage(ctx, store.ID, "购物车", "", model.PageTypeCart)

	if err := svc.DeletePage(ctx, custom.ID); err != nil {
		t.Fatalf("删除自定义页失败: %v", err)
	}
	if _, err := svc.GetPage(ctx, custom.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("删除后查询 err = %v, want ErrNotFound", err)
	}

	// 系统页面受保护
	if err := svc.DeletePage(ctx, cart.ID); !errors.Is(err, ErrValidation) {
		t.Errorf("删系统页 err = %v, want ErrValidation", err)
	}
	var count int64
	db.Model(&model.Page{}).Where("id = ?", cart.ID).Count(&count)
	if count != 1 {
		t.Error("系统页不应被删除")
	}
}
