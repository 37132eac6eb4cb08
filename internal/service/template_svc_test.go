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

// setupTemplateTestDB 初始化模板测试库
// page_templates 的 tags 列在 Postgres 上是 text[]，SQLite 不认这个类型，
// 这里手工建表用 TEXT 存（pq.StringArray 落库本来就是序列化字符串）
func setupTemplateTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.Store{}, &model.Page{}, &model.Section{}); err != nil {
		t.Fatalf("自动建表失败: %v", err)
	}

	ddl := `CREATE TABLE page_templates (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME,
		business_type TEXT NOT NULL,
		business_category TEXT DEFAULT '',
		page_type TEXT NOT NULL,
		template_name TEXT NOT NULL DEFAULT 'default',
		title TEXT NOT NULL,
		slug TEXT NOT NULL,
		default_sections TEXT,
		tags TEXT,
		sort_order INTEGER NOT NULL DEFAULT 0,
		is_active NUMERIC DEFAULT true
	)`
	if err := db.Exec(ddl).Error; err != nil {
		t.Fatalf("建模板表失败: %v", err)
	}
	return db
}

func newTemplateTestService(t *testing.T) (*TemplateService, *gorm.DB) {
	db := setupTemplateTestDB(t)
	svc := NewTemplateService(
		repository.NewTemplateRepository(db),
		repository.NewPageRepository(db),
		repository.NewSectionRepository(db),
		repository.NewStoreRepository(db),
	)
	return svc, db
}

func seedEcommerceStore(t *testing.T, db *gorm.DB) *model.Store {
	store := &model.Store{
		Name:         "测试店铺",
		Subdomain:    "tpl-shop",
		BusinessType: model.BusinessTypeEcommerce,
		Status:       model.StoreStatusActive,
	}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("创建店铺失败: %v", err)
	}
	return store
}

// ==================== 内置目录 ====================

func TestTemplateService_EnsureCatalog(t *testing.T) {
	svc, db := newTemplateTestService(t)
	ctx := context.Background()

	if err := svc.EnsureCatalog(ctx); err != nil {
		t.Fatalf("写入内置目录失败: %v", err)
	}

	var count int64
	db.Model(&model.PageTemplate{}).Count(&count)
	if count != 8 {
		t.Errorf("内置模板数 = %d, want 8", count)
	}

	// 再跑一次不应翻倍（目录非空即不动）
	if err := svc.EnsureCatalog(ctx); err != nil {
		t.Fatalf("二次执行失败: %v", err)
	}
	db.Model(&model.PageTemplate{}).Count(&count)
	if count != 8 {
		t.Errorf("二次执行后模板数 = %d, want 8", count)
	}
}

func TestTemplateService_EnsureCatalogRespectsExisting(t *testing.T) {
	svc, db := newTemplateTestService(t)
	ctx := context.Background()

	// 运营已手工登记过目录，启动时不得覆盖
	custom := &model.PageTemplate{
		BusinessType:    model.BusinessTypeEcommerce,
		PageType:        model.PageTypeHomepage,
		TemplateName:    "custom",
		Title:           "定制首页",
		Slug:            "home",
		DefaultSections: []byte("[]"),
		IsActive:        true,
	}
	if err := db.Create(custom).Error; err != nil {
		t.Fatalf("预置模板失败: %v", err)
	}

	if err := svc.EnsureCatalog(ctx); err != nil {
		t.Fatalf("执行失败: %v", err)
	}

	var count int64
	db.Model(&model.PageTemplate{}).Count(&count)
	if count != 1 {
		t.Errorf("模板数 = %d, want 1 (已有目录不应追加内置模板)", count)
	}
}

// ==================== 店铺初始化 ====================

func TestTemplateService_SeedStore(t *testing.T) {
	svc, db := newTemplateTestService(t)
	ctx := context.Background()
	if err := svc.EnsureCatalog(ctx); err != nil {
		t.Fatalf("写入内置目录失败: %v", err)
	}
	store := seedEcommerceStore(t, db)

	created, err := svc.SeedStore(ctx, store.ID)
	if err != nil {
		t.Fatalf("初始化店铺失败: %v", err)
	}
	if created != 8 {
		t.Errorf("新建页面数 = %d, want 8", created)
	}

	var pages []model.Page
	db.Where("store_id = ?", store.ID).Order("id ASC").Find(&pages)
	wantSlugs := []string{"home", "products", "categories", "cart", "checkout", "profile", "about", "contact"}
	if len(pages) != len(wantSlugs) {
		t.Fatalf("页面数 = %d, want %d", len(pages), len(wantSlugs))
	}
	for i, slug := range wantSlugs {
		if pages[i].Slug != slug {
			t.Errorf("页面 %d slug = %s, want %s", i, pages[i].Slug, slug)
		}
		if !pages[i].ShowHeader || !pages[i].ShowFooter {
			t.Errorf("页面 %s 应默认启用页头页尾", slug)
		}
	}

	// 首页带 4 个默认区块，顺序与模板一致，config 留空对象
	var sections []model.Section
	db.Where("page_id = ?", pages[0].ID).Order("sort_order ASC").Find(&sections)
	wantTypes := []model.SectionType{
		model.SectionTypeHeroBanner,
		model.SectionTypeFeaturedProducts,
		model.SectionTypeCategoryGrid,
		model.SectionTypeTestimonials,
	}
	if len(sections) != len(wantTypes) {
		t.Fatalf("首页区块数 = %d, want %d", len(sections), len(wantTypes))
	}
	for i, wantType := range wantTypes {
		if sections[i].SectionType != wantType {
			t.Errorf("首页区块 %d 类型 = %s, want %s", i, sections[i].SectionType, wantType)
		}
		if sections[i].SortOrder != i {
			t.Errorf("首页区块 %d sort_order = %d, want %d", i, sections[i].SortOrder, i)
		}
		if string(sections[i].Config) != "{}" {
			t.Errorf("模板区块 config = %s, want {} (默认值由注册表兜底)", sections[i].Config)
		}
	}

	// 购物车这类纯系统页没有默认区块
	var cartSections int64
	db.Model(&model.Section{}).Where("page_id = ?", pages[3].ID).Count(&cartSections)
	if cartSections != 0 {
		t.Errorf("购物车页区块数 = %d, want 0", cartSections)
	}
}

func TestTemplateService_SeedStoreIdempotent(t *testing.T) {
	svc, db := newTemplateTestService(t)
	ctx := context.Background()
	if err := svc.EnsureCatalog(ctx); err != nil {
		t.Fatalf("写入内置目录失败: %v", err)
	}
	store := seedEcommerceStore(t, db)

	if _, err := svc.SeedStore(ctx, store.ID); err != nil {
		t.Fatalf("首次初始化失败: %v", err)
	}

	// 店主改过首页标题后补种，已有页面原样保留
	if err := db.Model(&model.Page{}).
		Where("store_id = ? AND slug = ?", store.ID, "home").
		Update("title", "改过的首页").Error; err != nil {
		t.Fatalf("改标题失败: %v", err)
	}

	created, err := svc.SeedStore(ctx, store.ID)
	if err != nil {
		t.Fatalf("二次初始化失败: %v", err)
	}
	if created != 0 {
		t.Errorf("二次初始化新建页面数 = %d, want 0", created)
	}

	var home model.Page
	db.Where("store_id = ? AND slug = ?", store.ID, "home").First(&home)
	if home.Title != "改过的首页" {
		t.Errorf("补种后首页标题 = %s, 已有页面不应被覆盖", home.Title)
	}

	var total int64
	db.Model(&model.Page{}).Where("store_id = ?", store.ID).Count(&total)
	if total != 8 {
		t.Errorf("补种后页面总数 = %d, want 8", total)
	}
}

func TestTemplateService_SeedStoreFillsMissing(t *testing.T) {
	svc, db := newTemplateTestService(t)
	ctx := context.Background()
	if err := svc.EnsureCatalog(ctx); err != nil {
		t.Fatalf("写入内置目录失败: %v", err)
	}
	store := seedEcommerceStore(t, db)

	if _, err := svc.SeedStore(ctx, store.ID); err != nil {
		t.Fatalf("首次初始化失败: %v", err)
	}

	// 店主删了关于页，补种只补这一页
	if err := db.Unscoped().
		Where("store_id = ? AND slug = ?", store.ID, "about").
		Delete(&model.Page{}).Error; err != nil {
		t.Fatalf("删页面失败: %v", err)
	}

	created, err := svc.SeedStore(ctx, store.ID)
	if err != nil {
		t.Fatalf("补种失败: %v", err)
	}
	if created != 1 {
		t.Errorf("补种新建页面数 = %d, want 1", created)
	}
}

func TestTemplateService_SeedStoreSkipsBrokenTemplate(t *testing.T) {
	svc, db := newTemplateTestService(t)
	ctx := context.Background()
	store := seedEcommerceStore(t, db)

	// 一行坏 JSON，一行正常：坏行跳过，好行照常落地
	broken := &model.PageTemplate{
		BusinessType:    model.BusinessTypeEcommerce,
		PageType:        model.PageTypeCustom,
		Title:           "坏模板",
		Slug:            "broken",
		DefaultSections: []byte("not-json"),
		SortOrder:       0,
		IsActive:        true,
	}
	good := &model.PageTemplate{
		BusinessType:    model.BusinessTypeEcommerce,
		PageType:        model.PageTypeAbout,
		Title:           "关于我们",
		Slug:            "about",
		DefaultSections: []byte("[]"),
		SortOrder:       1,
		IsActive:        true,
	}
	if err := db.Create(broken).Error; err != nil {
		t.Fatalf("预置坏模板失败: %v", err)
	}
	if err := db.Create(good).Error; err != nil {
		t.Fatalf("预置好模板失败: %v", err)
	}

	created, err := svc.SeedStore(ctx, store.ID)
	if err != nil {
		t.Fatalf("初始化失败: %v", err)
	}
	if created != 1 {
		t.Errorf("新建页面数 = %d, want 1 (坏模板行只跳过不中断)", created)
	}

	var pages []model.Page
	db.Where("store_id = ?", store.ID).Find(&pages)
	if len(pages) != 1 || pages[0].Slug != "about" {
		t.Errorf("落地页面 = %v, want 只有 about", pages)
	}
}

func TestTemplateService_SeedStoreCategoryMatch(t *testing.T) {
	svc, db := newTemplateTestService(t)
	ctx := context.Background()

	// 通用模板 + 女装专属模板 + 其他分类专属模板
	tpls := []*model.PageTemplate{
		{BusinessType: model.BusinessTypeEcommerce, BusinessCategory: "", PageType: model.PageTypeHomepage,
			Title: "首页", Slug: "home", DefaultSections: []byte("[]"), SortOrder: 0, IsActive: true},
		{BusinessType: model.BusinessTypeEcommerce, BusinessCategory: "fashion", PageType: model.PageTypeCustom,
			Title: "穿搭指南", Slug: "lookbook", DefaultSections: []byte("[]"), SortOrder: 1, IsActive: true},
		{BusinessType: model.BusinessTypeEcommerce, BusinessCategory: "grocery", PageType: model.PageTypeCustom,
			Title: "生鲜专区", Slug: "fresh", DefaultSections: []byte("[]"), SortOrder: 2, IsActive: true},
		{BusinessType: model.BusinessTypeEcommerce, BusinessCategory: "fashion", PageType: model.PageTypeCustom,
			Title: "停用模板", Slug: "disabled", DefaultSections: []byte("[]"), SortOrder: 3, IsActive: false},
	}
	for _, tpl := range tpls {
		if err := db.Create(tpl).Error; err != nil {
			t.Fatalf("预置模板失败: %v", err)
		}
	}

	store := &model.Store{
		Name:             "女装店",
		Subdomain:        "fashion-shop",
		BusinessType:     model.BusinessTypeEcommerce,
		BusinessCategory: "fashion",
		Status:           model.StoreStatusActive,
	}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("创建店铺失败: %v", err)
	}

	created, err := svc.SeedStore(ctx, store.ID)
	if err != nil {
		t.Fatalf("初始化失败: %v", err)
	}
	// 命中通用 home + fashion 专属 lookbook，grocery 专属和停用行不命中
	if created != 2 {
		t.Errorf("新建页面数 = %d, want 2", created)
	}

	var slugs []string
	db.Model(&model.Page{}).Where("store_id = ?", store.ID).Order("id ASC").Pluck("slug", &slugs)
	if len(slugs) != 2 || slugs[0] != "home" || slugs[1] != "lookbook" {
		t.Errorf("落地页面 = %v, want [home lookbook]", slugs)
	}
}

func TestTemplateService_SeedStoreNotFound(t *testing.T) {
	svc, _ := newTemplateTestService(t)

	_, err := svc.SeedStore(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
