package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"storebuilder_v1_202608/internal/controller"
	"storebuilder_v1_202608/internal/middleware"
	"storebuilder_v1_202608/internal/model"
	"storebuilder_v1_202608/internal/repository"
	"storebuilder_v1_202608/internal/router"
	"storebuilder_v1_202608/internal/service"
	"storebuilder_v1_202608/internal/task"
	"storebuilder_v1_202608/pkg/config"
	"storebuilder_v1_202608/pkg/database"
)

func main() {
	// 1. 加载配置
	cfg := config.Load()
	gin.SetMode(cfg.Server.Mode)
	middleware.InitJWT(cfg.JWT)

	// 2. 初始化数据库
	db := initDatabase(cfg)

	// 3. 初始化依赖
	deps := initDependencies(db, cfg)

	// 4. 初始化模板目录（空库时写入内置模板）
	ensureTemplateCatalog(deps)

	// 5. 启动定时任务
	publishTask := task.NewPublishTask(deps.Repos.Page)
	publishTask.Start()
	defer publishTask.Stop()

	// 6. 初始化路由
	r := gin.Default()
	router.InitRoutes(r, deps.Controllers, storeGuard(deps.Repos.StoreMember))

	// 7. 启动服务
	startServer(r, cfg.Server.Port)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User        repository.UserRepository
	Store       repository.StoreRepository
	StoreMember repository.StoreMemberRepository
	Page        repository.PageRepository
	Section     repository.SectionRepository
	Theme       repository.ThemeRepository
	Navigation  repository.NavigationRepository
	Settings    repository.SettingsRepository
	Template    repository.TemplateRepository
}

// Services 服务集合
type Services struct {
	User       *service.UserService
	Store      *service.StoreService
	Page       *service.PageService
	Section    *service.SectionService
	Theme      *service.ThemeService
	Navigation *service.NavigationService
	Settings   *service.SettingsService
	Template   *service.TemplateService
	Media      *service.MediaService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	db, err := database.Open(database.Options{
		DSN:             cfg.Database.DSN,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogSQL:          cfg.Server.Mode == "debug",
	},
		// Manager
		&model.SysUser{}, &model.StoreMember{},
		// Store
		&model.Store{}, &model.HeaderFooterSettings{},
		// Builder
		&model.Page{}, &model.Section{}, &model.Theme{}, &model.NavigationItem{},
		// Template
		&model.PageTemplate{},
	)
	if err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}
	middleware.RegisterAuditCallbacks(db)
	return db
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB, cfg *config.Config) *Dependencies {
	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- Service 层 --------
	templateSvc := service.NewTemplateService(repos.Template, repos.Page, repos.Section, repos.Store)
	themeSvc := service.NewThemeService(repos.Theme, repos.Store)

	services := &Services{
		User:       service.NewUserService(repos.User),
		Template:   templateSvc,
		Theme:      themeSvc,
		Store:      service.NewStoreService(repos.Store, repos.StoreMember, templateSvc, themeSvc, repos.Settings),
		Page:       service.NewPageService(repos.Page, repos.Store),
		Section:    service.NewSectionService(repos.Section, repos.Page),
		Navigation: service.NewNavigationService(repos.Navigation, repos.Page),
		Settings:   service.NewSettingsService(repos.Settings),
		Media:      initMediaService(cfg),
	}

	// -------- Controller 层 --------
	controllers := initControllers(services)

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:        repository.NewUserRepository(db),
		Store:       repository.NewStoreRepository(db),
		StoreMember: repository.NewStoreMemberRepository(db),
		Page:        repository.NewPageRepository(db),
		Section:     repository.NewSectionRepository(db),
		Theme:       repository.NewThemeRepository(db),
		Navigation:  repository.NewNavigationRepository(db),
		Settings:    repository.NewSettingsRepository(db),
		Template:    repository.NewTemplateRepository(db),
	}
}

// initMediaService 初始化媒体存储服务
func initMediaService(cfg *config.Config) *service.MediaService {
	mediaSvc, err := service.NewMediaService(&service.MediaConfig{
		Provider:  cfg.Media.Provider,
		Bucket:    cfg.Media.Bucket,
		Region:    cfg.Media.Region,
		AccessKey: cfg.Media.AccessKey,
		SecretKey: cfg.Media.SecretKey,
		Endpoint:  cfg.Media.Endpoint,
		CDNDomain: cfg.Media.CDNDomain,
		BasePath:  cfg.Media.BasePath,
	})
	if err != nil {
		log.Fatalf("媒体存储初始化失败: %v", err)
	}
	return mediaSvc
}

// initControllers 初始化所有控制器
func initControllers(svc *Services) *router.Controllers {
	return &router.Controllers{
		Auth:       controller.NewAuthController(svc.User),
		Store:      controller.NewStoreController(svc.Store),
		Page:       controller.NewPageController(svc.Page),
		Section:    controller.NewSectionController(svc.Section),
		Theme:      controller.NewThemeController(svc.Theme),
		Navigation: controller.NewNavigationController(svc.Navigation),
		Settings:   controller.NewSettingsController(svc.Settings),
		Media:      controller.NewMediaController(svc.Media),
	}
}

// ensureTemplateCatalog 启动时保证模板目录非空
func ensureTemplateCatalog(deps *Dependencies) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := deps.Services.Template.EnsureCatalog(ctx); err != nil {
		log.Fatalf("初始化模板目录失败: %v", err)
	}
}

// storeGuard 店铺访问控制校验器
func storeGuard(memberRepo repository.StoreMemberRepository) middleware.StoreAccessChecker {
	return middleware.StoreAccessFunc(func(c *gin.Context, userID, storeID int64) (bool, error) {
		return memberRepo.HasAccess(c.Request.Context(), userID, storeID)
	})
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}
