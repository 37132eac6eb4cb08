package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storebuilder_v1_202608/internal/api/dto"
	"storebuilder_v1_202608/internal/model"
	"storebuilder_v1_202608/internal/service"
)

type NavigationController struct {
	navSvc *service.NavigationService
}

func NewNavigationController(navSvc *service.NavigationService) *NavigationController {
	return &NavigationController{
		navSvc: navSvc,
	}
}

// ListNavigation 获取导航
// @Summary 获取导航
// @Description 按位置返回导航树（顶层项带子项），按显示顺序排列
// @Tags Navigation (导航管理)
// @Produce json
// @Param storeId path int true "店铺ID"
// @Param location query string true "导航位置" Enums(header, footer, mobile)
// @Success 200 {array} dto.NavigationItemInfo "导航列表"
// @Router /api/v1/stores/{storeId}/navigation [get]
func (c *NavigationController) ListNavigation(ctx *gin.Context) {
	storeID, ok := parseIDParam(ctx, "storeId")
	if !ok {
		return
	}

	location := model.NavLocation(ctx.DefaultQuery("location", "header"))
	items, err := c.navSvc.ListByLocation(ctx.Request.Context(), storeID, location)
	if err != nil {
		respondError(ctx, err)
		return
	}

	list := make([]*dto.NavigationItemInfo, 0, len(items))
	for i := range items {
		list = append(list, toNavigationInfo(&items[i]))
	}
	ctx.JSON(http.StatusOK, list)
}

// CreateNavigation 创建导航项
// @Summary 创建导航项
// @Description 追加到该位置末尾；支持一级嵌套，关联页面时 url 默认取页面 slug
// @Tags Navigation (导航管理)
// @Accept json
// @Produce json
// @Param storeId path int true "店铺ID"
// @Param request body dto.CreateNavigationRequest true "导航参数"
// @Success 201 {object} dto.NavigationItemInfo "创建结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Router /api/v1/stores/{storeId}/navigation [post]
func (c *NavigationController) CreateNavigation(ctx *gin.Context) {
	storeID, ok := parseIDParam(ctx, "storeId")
	if !ok {
		return
	}

	var req dto.CreateNavigationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	item, err := c.navSvc.CreateItem(ctx.Request.Context(), storeID, service.NavigationItemInput{
		Label:    req.Label,
		Url:      req.Url,
		PageID:   req.PageID,
		Location: model.NavLocation(req.Location),
		ParentID: req.ParentID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toNavigationInfo(item))
}

// UpdateNavigation 更新导航项
// @Summary 更新导航项
// @Tags Navigation (导航管理)
// @Accept json
// @Produce json
// @Param id path int true "导航项ID"
// @Param request body dto.UpdateNavigationRequest true "更新参数"
// @Success 200 {object} dto.NavigationItemInfo "更新结果"
// @Failure 404 {object} map[string]string "导航项不存在"
// @Router /api/v1/navigation/{id} [put]
func (c *NavigationController) UpdateNavigation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateNavigationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	item, err := c.navSvc.UpdateItem(ctx.Request.Context(), id, req.Label, req.Url)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toNavigationInfo(item))
}

// ReorderNavigation 重排导航
// @Summary 重排导航
// @Description 按提交的 ID 顺序重排该位置的顶层导航项
// @Tags Navigation (导航管理)
// @Accept json
// @Produce json
// @Param storeId path int true "店铺ID"
// @Param request body dto.ReorderNavigationRequest true "新顺序"
// @Success 200 {object} map[string]string "{"message": "重排成功"}"
// @Failure 400 {object} map[string]string "ID 集合不匹配"
// @Router /api/v1/stores/{storeId}/navigation/reorder [put]
func (c *NavigationController) ReorderNavigation(ctx *gin.Context) {
	storeID, ok := parseIDParam(ctx, "storeId")
	if !ok {
		return
	}

	var req dto.ReorderNavigationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if err := c.navSvc.Reorder(ctx.Request.Context(), storeID, model.NavLocation(req.Location), req.IDs); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "重排成功"})
}

// DeleteNavigation 删除导航项
// @Summary 删除导航项
// @Description 删除导航项及其全部子项
// @Tags Navigation (导航管理)
// @Produce json
// @Param id path int true "导航项ID"
// @Success 200 {object} map[string]string "{"message": "删除成功"}"
// @Failure 404 {object} map[string]string "导航项不存在"
// @Router /api/v1/navigation/{id} [delete]
func (c *NavigationController) DeleteNavigation(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.navSvc.DeleteItem(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
