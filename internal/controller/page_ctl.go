package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storebuilder_v1_202608/internal/api/dto"
	"storebuilder_v1_202608/internal/model"
	"storebuilder_v1_202608/internal/service"
)

type PageController struct {
	pageSvc *service.PageService
}

func NewPageController(pageSvc *service.PageService) *PageController {
	return &PageController{
		pageSvc: pageSvc,
	}
}

// ListPages 获取店铺页面列表
// @Summary 获取页面列表
// @Description 返回店铺全部页面，按 sort_order 排序，不含 Section 明细
// @Tags Page (页面管理)
// @Produce json
// @Param storeId path int true "店铺ID"
// @Success 200 {array} dto.PageInfo "页面列表"
// @Router /api/v1/stores/{storeId}/pages [get]
func (c *PageController) ListPages(ctx *gin.Context) {
	storeID, ok := parseIDParam(ctx, "storeId")
	if !ok {
		return
	}

	pages, err := c.pageSvc.ListPages(ctx.Request.Context(), storeID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	list := make([]*dto.PageInfo, 0, len(pages))
	for i := range pages {
		info, err := toPageInfo(&pages[i], false)
		if err != nil {
			respondError(ctx, err)
			return
		}
		list = append(list, info)
	}
	ctx.JSON(http.StatusOK, list)
}

// GetPage 获取页面详情
// @Summary 获取页面详情
// @Description 返回页面及其全部 Section，按显示顺序排列
// @Tags Page (页面管理)
// @Produce json
// @Param id path int true "页面ID"
// @Success 200 {object} dto.PageInfo "页面详情"
// @Failure 404 {object} map[string]string "页面不存在"
// @Router /api/v1/pages/{id} [get]
func (c *PageController) GetPage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, err := c.pageSvc.GetPage(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	info, err := toPageInfo(page, true)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, info)
}

// CreatePage 创建页面
// @Summary 创建页面
// @Description 创建自定义页面；系统页面类型使用固定 slug
// @Tags Page (页面管理)
// @Accept json
// @Produce json
// @Param storeId path int true "店铺ID"
// @Param request body dto.CreatePageRequest true "页面参数"
// @Success 201 {object} dto.PageInfo "创建结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 409 {object} map[string]string "slug 已存在"
// @Router /api/v1/stores/{storeId}/pages [post]
func (c *PageController) CreatePage(ctx *gin.Context) {
	storeID, ok := parseIDParam(ctx, "storeId")
	if !ok {
		return
	}

	var req dto.CreatePageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	page, err := c.pageSvc.CreatePage(ctx.Request.Context(), storeID, req.Title, req.Slug, model.PageType(req.PageType))
	if err != nil {
		respondError(ctx, err)
		return
	}

	info, err := toPageInfo(page, false)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, info)
}

// UpdatePage 更新页面
// @Summary 更新页面
// @Description 更新页面元信息和 SEO 配置，仅提交的字段生效
// @Tags Page (页面管理)
// @Accept json
// @Produce json
// @Param id path int true "页面ID"
// @Param request body dto.UpdatePageRequest true "更新参数"
// @Success 200 {object} dto.PageInfo "更新结果"
// @Failure 400 {object} map[string]string "系统页面 slug 不可修改"
// @Failure 409 {object} map[string]string "slug 已存在"
// @Router /api/v1/pages/{id} [put]
func (c *PageController) UpdatePage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	page, err := c.pageSvc.UpdatePage(ctx.Request.Context(), id, service.PageUpdateInput{
		Title:          req.Title,
		Slug:           req.Slug,
		ShowHeader:     req.ShowHeader,
		ShowFooter:     req.ShowFooter,
		SeoTitle:       req.SeoTitle,
		SeoDescription: req.SeoDescription,
		OgImageUrl:     req.OgImageUrl,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	info, err := toPageInfo(page, false)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, info)
}

// PublishPage 发布页面
// @Summary 发布页面
// @Description 立即发布或定时发布；传 publish_at 时到点由定时任务生效
// @Tags Page (页面管理)
// @Accept json
// @Produce json
// @Param id path int true "页面ID"
// @Param request body dto.PublishPageRequest false "发布参数"
// @Success 200 {object} dto.PageInfo "发布结果"
// @Failure 404 {object} map[string]string "页面不存在"
// @Router /api/v1/pages/{id}/publish [post]
func (c *PageController) PublishPage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	// body 可为空，为空即立即发布
	var req dto.PublishPageRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
			return
		}
	}

	page, err := c.pageSvc.Publish(ctx.Request.Context(), id, req.PublishAt)
	if err != nil {
		respondError(ctx, err)
		return
	}

	info, err := toPageInfo(page, false)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, info)
}

// UnpublishPage 取消发布
// @Summary 取消发布
// @Tags Page (页面管理)
// @Produce json
// @Param id path int true "页面ID"
// @Success 200 {object} map[string]string "{"message": "已取消发布"}"
// @Failure 404 {object} map[string]string "页面不存在"
// @Router /api/v1/pages/{id}/unpublish [post]
func (c *PageController) UnpublishPage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.pageSvc.Unpublish(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "已取消发布"})
}

// DeletePage 删除页面
// @Summary 删除页面
// @Description 删除自定义页面及其全部 Section；系统页面不可删除
// @Tags Page (页面管理)
// @Produce json
// @Param id path int true "页面ID"
// @Success 200 {object} map[string]string "{"message": "删除成功"}"
// @Failure 400 {object} map[string]string "系统页面不可删除"
// @Router /api/v1/pages/{id} [delete]
func (c *PageController) DeletePage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.pageSvc.DeletePage(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
