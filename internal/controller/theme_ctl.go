package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storebuilder_v1_202608/internal/api/dto"
	"storebuilder_v1_202608/internal/service"
)

type ThemeController struct {
	themeSvc *service.ThemeService
}

func NewThemeController(themeSvc *service.ThemeService) *ThemeController {
	return &ThemeController{
		themeSvc: themeSvc,
	}
}

// ListThemes 获取主题列表
// @Summary 获取主题列表
// @Tags Theme (主题管理)
// @Produce json
// @Param storeId path int true "店铺ID"
// @Success 200 {array} dto.ThemeInfo "主题列表"
// @Router /api/v1/stores/{storeId}/themes [get]
func (c *ThemeController) ListThemes(ctx *gin.Context) {
	storeID, ok := parseIDParam(ctx, "storeId")
	if !ok {
		return
	}

	themes, err := c.themeSvc.ListThemes(ctx.Request.Context(), storeID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	list := make([]*dto.ThemeInfo, 0, len(themes))
	for i := range themes {
		info, err := toThemeInfo(&themes[i])
		if err != nil {
			respondError(ctx, err)
			return
		}
		list = append(list, info)
	}
	ctx.JSON(http.StatusOK, list)
}

// GetActiveTheme 获取当前激活主题
// @Summary 获取激活主题
// @Tags Theme (主题管理)
// @Produce json
// @Param storeId path int true "店铺ID"
// @Success 200 {object} dto.ThemeInfo "激活主题"
// @Failure 404 {object} map[string]string "店铺没有激活主题"
// @Router /api/v1/stores/{storeId}/themes/active [get]
func (c *ThemeController) GetActiveTheme(ctx *gin.Context) {
	storeID, ok := parseIDParam(ctx, "storeId")
	if !ok {
		return
	}

	theme, err := c.themeSvc.GetActiveTheme(ctx.Request.Context(), storeID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	info, err := toThemeInfo(theme)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, info)
}

// CreateTheme 创建主题
// @Summary 创建主题
// @Description 以默认样式创建新主题，不自动激活
// @Tags Theme (主题管理)
// @Accept json
// @Produce json
// @Param storeId path int true "店铺ID"
// @Param request body dto.CreateThemeRequest true "主题参数"
// @Success 201 {object} dto.ThemeInfo "创建结果"
// @Router /api/v1/stores/{storeId}/themes [post]
func (c *ThemeController) CreateTheme(ctx *gin.Context) {
	storeID, ok := parseIDParam(ctx, "storeId")
	if !ok {
		return
	}

	var req dto.CreateThemeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	theme, err := c.themeSvc.CreateTheme(ctx.Request.Context(), storeID, req.Name)
	if err != nil {
		respondError(ctx, err)
		return
	}

	info, err := toThemeInfo(theme)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, info)
}

// UpdateTheme 更新主题
// @Summary 更新主题
// @Description colors/typography/layout 各自浅合并，未提交的键保留
// @Tags Theme (主题管理)
// @Accept json
// @Produce json
// @Param id path int true "主题ID"
// @Param request body dto.UpdateThemeRequest true "更新参数"
// @Success 200 {object} dto.ThemeInfo "更新结果"
// @Failure 404 {object} map[string]string "主题不存在"
// @Router /api/v1/themes/{id} [put]
func (c *ThemeController) UpdateTheme(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateThemeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	theme, err := c.themeSvc.UpdateTheme(ctx.Request.Context(), id, service.ThemeUpdateInput{
		Name:       req.Name,
		Colors:     req.Colors,
		Typography: req.Typography,
		Layout:     req.Layout,
		CustomCSS:  req.CustomCSS,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	info, err := toThemeInfo(theme)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, info)
}

// ActivateTheme 激活主题
// @Summary 激活主题
// @Description 激活该主题并取消店铺内其他主题的激活状态
// @Tags Theme (主题管理)
// @Produce json
// @Param id path int true "主题ID"
// @Success 200 {object} map[string]string "{"message": "激活成功"}"
// @Failure 404 {object} map[string]string "主题不存在"
// @Router /api/v1/themes/{id}/activate [post]
func (c *ThemeController) ActivateTheme(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.themeSvc.Activate(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "激活成功"})
}

// DeleteTheme 删除主题
// @Summary 删除主题
// @Description 激活中的主题不可删除
// @Tags Theme (主题管理)
// @Produce json
// @Param id path int true "主题ID"
// @Success 200 {object} map[string]string "{"message": "删除成功"}"
// @Failure 400 {object} map[string]string "激活中的主题不可删除"
// @Router /api/v1/themes/{id} [delete]
func (c *ThemeController) DeleteTheme(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.themeSvc.DeleteTheme(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
