package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storebuilder_v1_202608/internal/api/dto"
	"storebuilder_v1_202608/internal/service"
)

type SettingsController struct {
	settingsSvc *service.SettingsService
}

func NewSettingsController(settingsSvc *service.SettingsService) *SettingsController {
	return &SettingsController{
		settingsSvc: settingsSvc,
	}
}

// GetSettings 获取页头页脚设置
// @Summary 获取页头页脚设置
// @Description 店铺首次访问时自动创建空设置
// @Tags Settings (店铺设置)
// @Produce json
// @Param storeId path int true "店铺ID"
// @Success 200 {object} dto.SettingsInfo "设置"
// @Router /api/v1/stores/{storeId}/settings/header-footer [get]
func (c *SettingsController) GetSettings(ctx *gin.Context) {
	storeID, ok := parseIDParam(ctx, "storeId")
	if !ok {
		return
	}

	settings, err := c.settingsSvc.GetSettings(ctx.Request.Context(), storeID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	info, err := toSettingsInfo(settings)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, info)
}

// UpdateSettings 更新页头页脚设置
// @Summary 更新页头页脚设置
// @Description 三个映射各自浅合并：提交的键覆盖，未提交的键保留，null 删键
// @Tags Settings (店铺设置)
// @Accept json
// @Produce json
// @Param storeId path int true "店铺ID"
// @Param request body dto.UpdateSettingsRequest true "设置补丁"
// @Success 200 {object} dto.SettingsInfo "更新结果"
// @Router /api/v1/stores/{storeId}/settings/header-footer [put]
func (c *SettingsController) UpdateSettings(ctx *gin.Context) {
	storeID, ok := parseIDParam(ctx, "storeId")
	if !ok {
		return
	}

	var req dto.UpdateSettingsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	settings, err := c.settingsSvc.UpdateSettings(ctx.Request.Context(), storeID, service.SettingsUpdateInput{
		HeaderConfig: req.HeaderConfig,
		FooterConfig: req.FooterConfig,
		SocialLinks:  req.SocialLinks,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	info, err := toSettingsInfo(settings)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, info)
}
