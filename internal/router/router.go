package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storebuilder_v1_202608/internal/controller"
	"storebuilder_v1_202608/internal/middleware"
	"storebuilder_v1_202608/internal/model"
)

// Controllers 路由依赖的控制器集合
type Controllers struct {
	Auth       *controller.AuthController
	Store      *controller.StoreController
	Page       *controller.PageController
	Section    *controller.SectionController
	Theme      *controller.ThemeController
	Navigation *controller.NavigationController
	Settings   *controller.SettingsController
	Media      *controller.MediaController
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctls *Controllers, storeGuard middleware.StoreAccessChecker) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. 本地存储模式下的静态资源
	r.Static("/uploads", "./uploads")

	// 3. API 路由组
	api := r.Group("/api/v1")
	{
		// auth 鉴权组
		auth := api.Group("/auth")
		{
			auth.POST("/login", ctls.Auth.Login)
			auth.POST("/register", ctls.Auth.Register)
			auth.POST("/refresh", ctls.Auth.RefreshToken)
			auth.GET("/me", middleware.JWTAuth(), ctls.Auth.Me)
		}

		// section-types 区块类型目录，静态数据无需店铺权限
		api.GET("/section-types", middleware.JWTAuth(), ctls.Section.ListSectionTypes)

		// 以下全部需要登录
		authed := api.Group("")
		authed.Use(middleware.JWTAuth(), middleware.AuditContext())
		{
			// stores 店铺管理
			authed.POST("/stores", ctls.Store.CreateStore)
			authed.GET("/stores", ctls.Store.ListStores)

			// admin 超管接口
			admin := authed.Group("/admin", middleware.RequireRole(model.RoleSuperAdmin))
			{
				admin.GET("/stores", ctls.Store.ListAllStores)
			}

			// 店铺维度接口，需要店铺成员身份
			store := authed.Group("/stores/:storeId", middleware.StoreAccess(storeGuard))
			{
				store.GET("", ctls.Store.GetStore)
				store.DELETE("", ctls.Store.DeleteStore)
				store.POST("/reseed", ctls.Store.ReseedStore)

				// 成员管理
				store.GET("/members", ctls.Store.ListMembers)
				store.POST("/members", ctls.Store.AddMember)
				store.DELETE("/members/:userId", ctls.Store.RemoveMember)

				// 页面
				store.GET("/pages", ctls.Page.ListPages)
				store.POST("/pages", ctls.Page.CreatePage)

				// 主题
				store.GET("/themes", ctls.Theme.ListThemes)
				store.GET("/themes/active", ctls.Theme.GetActiveTheme)
				store.POST("/themes", ctls.Theme.CreateTheme)

				// 导航
				store.GET("/navigation", ctls.Navigation.ListNavigation)
				store.POST("/navigation", ctls.Navigation.CreateNavigation)
				store.PUT("/navigation/reorder", ctls.Navigation.ReorderNavigation)

				// 页头页脚设置
				store.GET("/settings/header-footer", ctls.Settings.GetSettings)
				store.PUT("/settings/header-footer", ctls.Settings.UpdateSettings)

				// 媒体上传
				store.POST("/media", ctls.Media.UploadImage)
				store.POST("/media/base64", ctls.Media.UploadBase64)
			}

			// pages 页面维度接口
			pages := authed.Group("/pages")
			{
				pages.GET("/:id", ctls.Page.GetPage)
				pages.PUT("/:id", ctls.Page.UpdatePage)
				pages.DELETE("/:id", ctls.Page.DeletePage)
				pages.POST("/:id/publish", ctls.Page.PublishPage)
				pages.POST("/:id/unpublish", ctls.Page.UnpublishPage)
			}

			// page sections 页面区块列表
			// gin 不允许同一段路径用不同参数名，沿用 :id
			pageSections := authed.Group("/pages/:id/sections")
			{
				pageSections.GET("", ctls.Section.ListSections)
				pageSections.POST("", ctls.Section.AddSection)
				pageSections.PUT("/reorder", ctls.Section.ReorderSections)
			}

			// sections 区块维度接口
			sections := authed.Group("/sections")
			{
				sections.DELETE("/:id", ctls.Section.RemoveSection)
				sections.POST("/:id/move", ctls.Section.MoveSection)
				sections.POST("/:id/duplicate", ctls.Section.DuplicateSection)
				sections.POST("/:id/toggle-visibility", ctls.Section.ToggleVisibility)
				sections.PUT("/:id/config", ctls.Section.UpdateConfig)
				sections.PUT("/:id/mobile-config", ctls.Section.UpdateMobileConfig)
				sections.DELETE("/:id/mobile-config", ctls.Section.ResetMobileConfig)
				sections.GET("/:id/render", ctls.Section.RenderConfig)
			}

			// themes 主题维度接口
			themes := authed.Group("/themes")
			{
				themes.PUT("/:id", ctls.Theme.UpdateTheme)
				themes.DELETE("/:id", ctls.Theme.DeleteTheme)
				themes.POST("/:id/activate", ctls.Theme.ActivateTheme)
			}

			// navigation 导航维度接口
			navigation := authed.Group("/navigation")
			{
				navigation.PUT("/:id", ctls.Navigation.UpdateNavigation)
				navigation.DELETE("/:id", ctls.Navigation.DeleteNavigation)
			}
		}
	}
}
