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

func setupSectionTestDB(t *testing.T) *gorm.DB {
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

func newSectionTestService(t *testing.T) (*SectionService, *gorm.DB) {
	db := setupSectionTestDB(t)
	svc := NewSectionService(repository.NewSectionRepository(db), repository.NewPageRepository(db))
	return svc, db
}

// seedPage 建一个带店铺的空页面
func seedPage(t *testing.T, db *gorm.DB) *model.Page {
	store := &model.Store{Name: "测试店铺", Subdomain: "test-shop", BusinessType: "ecommerce", Status: model.StoreStatusActive}
	if err := db.Create(store).Error; err != nil {
		t.Fatalf("创建店铺失败: %v", err)
	}
	page := &model.Page{StoreID: store.ID, Title: "首页", Slug: "home", PageType: model.PageTypeHomepage}
	if err := db.Create(page).Error; err != nil {
		t.Fatalf("创建页面失败: %v", err)
	}
	return page
}

// listOrdered 按渲染顺序取页面区块
func listOrdered(t *testing.T, svc *SectionService, pageID int64) []model.Section {
	sections, err := svc.ListSections(context.Background(), pageID)
	if err != nil {
		t.Fatalf("查询区块失败: %v", err)
	}
	return sections
}

// ==================== 新增 ====================

func TestSectionService_AddSection(t *testing.T) {
	svc, db := newSectionTestService(t)
	page := seedPage(t, db)
	ctx := context.Background()

	first, err := svc.AddSection(ctx, page.ID, model.SectionTypeHeroBanner, "")
	if err != nil {
		t.Fatalf("添加区块失败: %v", err)
	}
	if first.SortOrder != 0 {
		t.Errorf("首个区块 sort_order = %d, want 0", first.SortOrder)
	}
	if first.Name == "" {
		t.Error("未指定名称时应取注册表 label")
	}
	if !first.IsVisible {
		t.Error("新区块应默认可见")
	}
	config, _ := DecodeConfig(first.Config)
	if len(config) == 0 {
		t.Error("新区块配置应取注册表默认值")
	}

	second, err := svc.AddSection(ctx, page.ID, model.SectionTypeRichText, "自定义文案")
	if err != nil {
		t.Fatalf("添加第二个区块失败: %v", err)
	}
	if second.SortOrder != first.SortOrder+1 {
		t.Errorf("第二个区块 sort_order = %d, want %d", second.SortOrder, first.SortOrder+1)
	}
	if second.Name != "自定义文案" {
		t.Errorf("name = %s, want 自定义文案", second.Name)
	}
}

func TestSectionService_AddSectionUnknownType(t *testing.T) {
	svc, db := newSectionTestService(t)
	page := seedPage(t, db)

	_, err := svc.AddSection(context.Background(), page.ID, model.SectionType("bogus"), "")
	if err == nil {
		t.Fatal("未注册类型应直接失败")
	}

	// 失败不应留下半成品数据
	if sections := listOrdered(t, svc, page.ID); len(sections) != 0 {
		t.Errorf("失败后区块数 = %d, want 0", len(sections))
	}
}

func TestSectionService_AddSectionPageNotFound(t *testing.T) {
	svc, _ := newSectionTestService(t)

	_, err := svc.AddSection(context.Background(), 9999, model.SectionTypeFAQ, "")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// ==================== 重排 ====================

func TestSectionService_Reorder(t *testing.T) {
	svc, db := newSectionTestService(t)
	page := seedPage(t, db)
	ctx := context.Background()

	a, _ := svc.AddSection(ctx, page.ID, model.SectionTypeHeroBanner, "A")
	b, _ := svc.AddSection(ctx, page.ID, model.SectionTypeRichText, "B")
	c, _ := svc.AddSection(ctx, page.ID, model.SectionTypeFAQ, "C")

	if err := svc.Reorder(ctx, page.ID, []int64{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("重排失败: %v", err)
	}

	got := listOrdered(t, svc, page.ID)
	wantOrder := []string{"C", "A", "B"}
	for i, name := range wantOrder {
		if got[i].Name != name {
			t.Errorf("位置 %d = %s, want %s", i, got[i].Name, name)
		}
		if got[i].SortOrder != i {
			t.Errorf("位置 %d sort_order = %d, want %d", i, got[i].SortOrder, i)
		}
	}
}

func TestSectionService_ReorderValidation(t *testing.T) {
	svc, db := newSectionTestService(t)
	page := seedPage(t, db)
	ctx := context.Background()

	a, _ := svc.AddSection(ctx, page.ID, model.SectionTypeHeroBanner, "A")
	b, _ := svc.AddSection(ctx, page.ID, model.SectionTypeRichText, "B")

	// 空列表
	if err := svc.Reorder(ctx, page.ID, nil); err == nil {
		t.Error("空排序列表应报错")
	}
	// 重复 ID
	if err := svc.Reorder(ctx, page.ID, []int64{a.ID, a.ID}); err == nil {
		t.Error("重复 ID 应报错")
	}
	// 数量不一致（视图过期）
	if err := svc.Reorder(ctx, page.ID, []int64{a.ID}); err == nil {
		t.Error("排序列表缺区块应报错")
	}
	// 数量一致但 ID 不属于该页面
	if err := svc.Reorder(ctx, page.ID, []int64{a.ID, 9999}); err == nil {
		t.Error("混入陌生 ID 应报错")
	}

	// 失败后原顺序不受影响
	got := listOrdered(t, svc, page.ID)
	if got[0].ID != a.ID || got[1].ID != b.ID {
		t.Error("重排失败后原顺序被破坏")
	}
}

// ==================== 相邻移动 ====================

func TestSectionService_MoveAdjacent(t *testing.T) {
	svc, db := newSectionTestService(t)
	page := seedPage(t, db)
	ctx := context.Background()

	a, _ := svc.AddSection(ctx, page.ID, model.SectionTypeHeroBanner, "A")
	b, _ := svc.AddSection(ctx, page.ID, model.SectionTypeRichText, "B")
	c, _ := svc.AddSection(ctx, page.ID, model.SectionTypeFAQ, "C")

	// B 上移 -> B A C
	if err := svc.MoveAdjacent(ctx, b.ID, MoveUp); err != nil {
		t.Fatalf("上移失败: %v", err)
	}
	got := listOrdered(t, svc, page.ID)
	if got[0].ID != b.ID || got[1].ID != a.ID || got[2].ID != c.ID {
		t.Errorf("上移后顺序 = [%s %s %s], want [B A C]", got[0].Name, got[1].Name, got[2].Name)
	}

	// A 下移 -> B C A
	if err := svc.MoveAdjacent(ctx, a.ID, MoveDown); err != nil {
		t.Fatalf("下移失败: %v", err)
	}
	got = listOrdered(t, svc, page.ID)
	if got[0].ID != b.ID || got[1].ID != c.ID || got[2].ID != a.ID {
		t.Errorf("下移后顺序 = [%s %s %s], want [B C A]", got[0].Name, got[1].Name, got[2].Name)
	}
}

func TestSectionService_MoveAdjacentBoundaryNoop(t *testing.T) {
	svc, db := newSectionTestService(t)
	page := seedPage(t, db)
	ctx := context.Background()

	a, _ := svc.AddSection(ctx, page.ID, model.SectionTypeHeroBanner, "A")
	b, _ := svc.AddSection(ctx, page.ID, model.SectionTypeRichText, "B")

	// 第一个上移：静默 no-op
	if err := svc.MoveAdjacent(ctx, a.ID, MoveUp); err != nil {
		t.Fatalf("顶部上移应为静默 no-op, got %v", err)
	}
	// 最后一个下移：静默 no-op
	if err := svc.MoveAdjacent(ctx, b.ID, MoveDown); err != nil {
		t.Fatalf("底部下移应为静默 no-op, got %v", err)
	}

	got := listOrdered(t, svc, page.ID)
	if got[0].ID != a.ID || got[1].ID != b.ID {
		t.Error("边界移动不应改变顺序")
	}
}

func TestSectionService_MoveAdjacentDirtySortOrder(t *testing.T) {
	svc, db := newSectionTestService(t)
	page := seedPage(t, db)
	ctx := context.Background()

	a, _ := svc.AddSection(ctx, page.ID, model.SectionTypeHeroBanner, "A")
	b, _ := svc.AddSection(ctx, page.ID, model.SectionTypeRichText, "B")

	// 模拟历史脏数据：两个区块 sort_order 相同
	if err := db.Model(&model.Section{}).Where("id = ?", b.ID).
		Update("sort_order", a.SortOrder).Error; err != nil {
		t.Fatalf("构造脏数据失败: %v", err)
	}

	// B（按 created_at 兜底排在后面）上移后应排到 A 之前
	if err := svc.MoveAdjacent(ctx, b.ID, MoveUp); err != nil {
		t.Fatalf("脏数据下上移失败: %v", err)
	}

	got := listOrdered(t, svc, page.ID)
	if got[0].ID != b.ID || got[1].ID != a.ID {
		t.Errorf("脏数据上移后顺序 = [%s %s], want [B A]", got[0].Name, got[1].Name)
	}
	if got[0].SortOrder == got[1].SortOrder {
		t.Error("整单重排后不应再有相同 sort_order")
	}
}

// ==================== 复制 ====================

func TestSectionService_Duplicate(t *testing.T) {
	svc, db := newSectionTestService(t)
	page := seedPage(t, db)
	ctx := context.Background()

	a, _ := svc.AddSection(ctx, page.ID, model.SectionTypeHeroBanner, "A")
	b, _ := svc.AddSection(ctx, page.ID, model.SectionTypeRichText, "B")
	c, _ := svc.AddSection(ctx, page.ID, model.SectionTypeFAQ, "C")

	// 给 A 写点配置和移动端覆盖再复制
	if _, err := svc.UpdateConfig(ctx, a.ID, map[string]interface{}{"title": "原始标题"}); err != nil {
		t.Fatalf("写配置失败: %v", err)
	}
	if _, err := svc.UpdateMobileConfig(ctx, a.ID, map[string]interface{}{"height": float64(320)}); err != nil {
		t.Fatalf("写移动端配置失败: %v", err)
	}

	dup, err := svc.Duplicate(ctx, a.ID)
	if err != nil {
		t.Fatalf("复制失败: %v", err)
	}
	if dup.Name != "A (副本)" {
		t.Errorf("副本名 = %s, want A (副本)", dup.Name)
	}

	// 副本紧跟源区块，后续整体后移
	got := listOrdered(t, svc, page.ID)
	wantIDs := []int64{a.ID, dup.ID, b.ID, c.ID}
	if len(got) != 4 {
		t.Fatalf("区块数 = %d, want 4", len(got))
	}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("位置 %d ID = %d, want %d", i, got[i].ID, id)
		}
	}

	// 配置深拷贝：改副本不影响源
	dupConfig, _ := DecodeConfig(dup.Config)
	if dupConfig["title"] != "原始标题" {
		t.Errorf("副本 config title = %v, want 原始标题", dupConfig["title"])
	}
	if _, err := svc.UpdateConfig(ctx, dup.ID, map[string]interface{}{"title": "改过的标题"}); err != nil {
		t.Fatalf("改副本配置失败: %v", err)
	}
	source, _ := svc.GetSection(ctx, a.ID)
	sourceConfig, _ := DecodeConfig(source.Config)
	if sourceConfig["title"] != "原始标题" {
		t.Error("修改副本配置不应影响源区块")
	}

	// 移动端覆盖也一并复制
	dupMobile, _ := DecodeConfig(dup.MobileConfig)
	if dupMobile["height"] != float64(320) {
		t.Errorf("副本 mobile_config height = %v, want 320", dupMobile["height"])
	}
}

// ==================== 删除与显隐 ====================

func TestSectionService_RemoveKeepsGaps(t *testing.T) {
	svc, db := newSectionTestService(t)
	page := seedPage(t, db)
	ctx := context.Background()

	a, _ := svc.AddSection(ctx, page.ID, model.SectionTypeHeroBanner, "A")
	b, _ := svc.AddSection(ctx, page.ID, model.SectionTypeRichText, "B")
	c, _ := svc.AddSection(ctx, page.ID, model.SectionTypeFAQ, "C")

	if err := svc.Remove(ctx, b.ID); err != nil {
		t.Fatalf("删除失败: %v", err)
	}

	got := listOrdered(t, svc, page.ID)
	if len(got) != 2 {
		t.Fatalf("区块数 = %d, want 2", len(got))
	}
	// 删除不回填 sort_order，留下空洞
	if got[0].ID != a.ID || got[1].ID != c.ID {
		t.Error("删除后相对顺序被破坏")
	}
	if got[1].SortOrder != c.SortOrder {
		t.Errorf("删除后 C 的 sort_order = %d, want %d (不回填)", got[1].SortOrder, c.SortOrder)
	}

	// 空洞不影响后续追加
	d, _ := svc.AddSection(ctx, page.ID, model.SectionTypeContactForm, "D")
	if d.SortOrder != c.SortOrder+1 {
		t.Errorf("新增区块 sort_order = %d, want %d", d.SortOrder, c.SortOrder+1)
	}
}

func TestSectionService_ToggleVisibility(t *testing.T) {
	svc, db := newSectionTestService(t)
	page := seedPage(t, db)
	ctx := context.Background()

	a, _ := svc.AddSection(ctx, page.ID, model.SectionTypeHeroBanner, "A")
	if _, err := svc.UpdateConfig(ctx, a.ID, map[string]interface{}{"title": "保留我"}); err != nil {
		t.Fatalf("写配置失败: %v", err)
	}

	hidden, err := svc.ToggleVisibility(ctx, a.ID)
	if err != nil {
		t.Fatalf("切换显隐失败: %v", err)
	}
	if hidden.IsVisible {
		t.Error("切换后应为隐藏")
	}

	// 隐藏不丢配置、不丢排序位置
	reloaded, _ := svc.GetSection(ctx, a.ID)
	config, _ := DecodeConfig(reloaded.Config)
	if config["title"] != "保留我" {
		t.Error("隐藏不应清除配置")
	}
	if reloaded.SortOrder != a.SortOrder {
		t.Error("隐藏不应改变 sort_order")
	}

	// 再切回可见
	shown, _ := svc.ToggleVisibility(ctx, a.ID)
	if !shown.IsVisible {
		t.Error("二次切换后应恢复可见")
	}
}

// ==================== 配置合并落库 ====================

func TestSectionService_UpdateConfigMerge(t *testing.T) {
	svc, db := newSectionTestService(t)
	page := seedPage(t, db)
	ctx := context.Background()

	a, _ := svc.AddSection(ctx, page.ID, model.SectionTypeHeroBanner, "A")

	if _, err := svc.UpdateConfig(ctx, a.ID, map[string]interface{}{
		"title": "第一轮", "extra": "keep",
	}); err != nil {
		t.Fatalf("第一轮更新失败: %v", err)
	}
	if _, err := svc.UpdateConfig(ctx, a.ID, map[string]interface{}{
		"title": "第二轮", "extra": nil,
	}); err != nil {
		t.Fatalf("第二轮更新失败: %v", err)
	}

	section, _ := svc.GetSection(ctx, a.ID)
	config, _ := DecodeConfig(section.Config)
	if config["title"] != "第二轮" {
		t.Errorf("title = %v, want 第二轮", config["title"])
	}
	if _, exists := config["extra"]; exists {
		t.Error("null 补丁应删除 extra 键")
	}
}

func TestSectionService_MobileConfigLifecycle(t *testing.T) {
	svc, db := newSectionTestService(t)
	page := seedPage(t, db)
	ctx := context.Background()

	a, _ := svc.AddSection(ctx, page.ID, model.SectionTypeFeaturedProducts, "A")
	if _, err := svc.UpdateConfig(ctx, a.ID, map[string]interface{}{"columns": float64(4)}); err != nil {
		t.Fatalf("写配置失败: %v", err)
	}

	// 未写 mobile_config 时移动端完全继承
	mobileView, err := svc.RenderConfig(ctx, a.ID, true)
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if mobileView["columns"] != float64(4) {
		t.Errorf("继承渲染 columns = %v, want 4", mobileView["columns"])
	}

	// 写覆盖后仅覆盖写入的字段
	if _, err := svc.UpdateMobileConfig(ctx, a.ID, map[string]interface{}{"columns": float64(2)}); err != nil {
		t.Fatalf("写移动端配置失败: %v", err)
	}
	mobileView, _ = svc.RenderConfig(ctx, a.ID, true)
	if mobileView["columns"] != float64(2) {
		t.Errorf("覆盖渲染 columns = %v, want 2", mobileView["columns"])
	}
	desktopView, _ := svc.RenderConfig(ctx, a.ID, false)
	if desktopView["columns"] != float64(4) {
		t.Errorf("桌面渲染 columns = %v, want 4", desktopView["columns"])
	}

	// 重置后恢复完全继承
	if err := svc.ResetMobileConfig(ctx, a.ID); err != nil {
		t.Fatalf("重置失败: %v", err)
	}
	mobileView, _ = svc.RenderConfig(ctx, a.ID, true)
	if mobileView["columns"] != float64(4) {
		t.Errorf("重置后渲染 columns = %v, want 4", mobileView["columns"])
	}
}
