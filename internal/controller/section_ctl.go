package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storebuilder_v1_202608/internal/api/dto"
	"storebuilder_v1_202608/internal/model"
	"storebuilder_v1_202608/internal/registry"
	"storebuilder_v1_202608/internal/service"
)

type SectionController struct {
	sectionSvc *service.SectionService
}

func NewSectionController(sectionSvc *service.SectionService) *SectionController {
	return &SectionController{
		sectionSvc: sectionSvc,
	}
}

// ListSectionTypes 获取 Section 类型目录
// @Summary 获取 Section 类型目录
// @Description 返回全部可用的 Section 类型定义，按分类分组
// @Tags Section (区块管理)
// @Produce json
// @Success 200 {object} map[string][]dto.SectionTypeInfo "按分类分组的类型目录"
// @Router /api/v1/section-types [get]
func (c *SectionController) ListSectionTypes(ctx *gin.Context) {
	grouped := registry.GroupedByCategory()

	resp := make(map[string][]*dto.SectionTypeInfo, len(grouped))
	for category, defs := range grouped {
		infos := make([]*dto.SectionTypeInfo, 0, len(defs))
		for _, def := range defs {
			defaultConfig, _ := registry.CloneDefaultConfig(def.Type)
			infos = append(infos, &dto.SectionTypeInfo{
				Type:          string(def.Type),
				Label:         def.Label,
				Category:      string(def.Category),
				Description:   def.Description,
				DefaultConfig: defaultConfig,
			})
		}
		resp[string(category)] = infos
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListSections 获取页面 Section 列表
// @Summary 获取页面区块
// @Description 返回页面全部 Section，按显示顺序排列
// @Tags Section (区块管理)
// @Produce json
// @Param id path int true "页面ID"
// @Success 200 {array} dto.SectionInfo "区块列表"
// @Router /api/v1/pages/{id}/sections [get]
func (c *SectionController) ListSections(ctx *gin.Context) {
	pageID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	sections, err := c.sectionSvc.ListSections(ctx.Request.Context(), pageID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	list := make([]*dto.SectionInfo, 0, len(sections))
	for i := range sections {
		info, err := toSectionInfo(&sections[i])
		if err != nil {
			respondError(ctx, err)
			return
		}
		list = append(list, info)
	}
	ctx.JSON(http.StatusOK, list)
}

// AddSection 添加 Section
// @Summary 添加区块
// @Description 在页面末尾追加一个新区块，配置取该类型的默认值
// @Tags Section (区块管理)
// @Accept json
// @Produce json
// @Param id path int true "页面ID"
// @Param request body dto.AddSectionRequest true "区块参数"
// @Success 201 {object} dto.SectionInfo "创建结果"
// @Failure 400 {object} map[string]string "未知区块类型"
// @Router /api/v1/pages/{id}/sections [post]
func (c *SectionController) AddSection(ctx *gin.Context) {
	pageID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	section, err := c.sectionSvc.AddSection(ctx.Request.Context(), pageID, model.SectionType(req.Type), req.Name)
	if err != nil {
		respondError(ctx, err)
		return
	}

	info, err := toSectionInfo(section)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, info)
}

// ReorderSections 整单重排
// @Summary 重排区块
// @Description 按提交的 ID 顺序重排页面全部区块，ID 集合必须与页面现有区块完全一致
// @Tags Section (区块管理)
// @Accept json
// @Produce json
// @Param id path int true "页面ID"
// @Param request body dto.ReorderSectionsRequest true "新顺序"
// @Success 200 {object} map[string]string "{"message": "重排成功"}"
// @Failure 400 {object} map[string]string "ID 集合不匹配"
// @Router /api/v1/pages/{id}/sections/reorder [put]
func (c *SectionController) ReorderSections(ctx *gin.Context) {
	pageID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ReorderSectionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if err := c.sectionSvc.Reorder(ctx.Request.Context(), pageID, req.IDs); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "重排成功"})
}

// MoveSection 相邻移动
// @Summary 上移/下移区块
// @Description 与相邻区块交换位置；已在边界时不做任何变更
// @Tags Section (区块管理)
// @Accept json
// @Produce json
// @Param id path int true "区块ID"
// @Param request body dto.MoveSectionRequest true "移动方向"
// @Success 200 {object} map[string]string "{"message": "移动成功"}"
// @Failure 404 {object} map[string]string "区块不存在"
// @Router /api/v1/sections/{id}/move [post]
func (c *SectionController) MoveSection(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.MoveSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	direction := service.MoveUp
	if req.Direction == "down" {
		direction = service.MoveDown
	}

	if err := c.sectionSvc.MoveAdjacent(ctx.Request.Context(), id, direction); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "移动成功"})
}

// DuplicateSection 复制区块
// @Summary 复制区块
// @Description 复制区块及其全部配置，插入到原区块之后
// @Tags Section (区块管理)
// @Produce json
// @Param id path int true "区块ID"
// @Success 201 {object} dto.SectionInfo "复制结果"
// @Failure 404 {object} map[string]string "区块不存在"
// @Router /api/v1/sections/{id}/duplicate [post]
func (c *SectionController) DuplicateSection(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	dup, err := c.sectionSvc.Duplicate(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	info, err := toSectionInfo(dup)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, info)
}

// RemoveSection 删除区块
// @Summary 删除区块
// @Tags Section (区块管理)
// @Produce json
// @Param id path int true "区块ID"
// @Success 200 {object} map[string]string "{"message": "删除成功"}"
// @Failure 404 {object} map[string]string "区块不存在"
// @Router /api/v1/sections/{id} [delete]
func (c *SectionController) RemoveSection(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.sectionSvc.Remove(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// ToggleVisibility 切换可见性
// @Summary 切换区块可见性
// @Description 隐藏的区块保留配置和排序位置，仅渲染时跳过
// @Tags Section (区块管理)
// @Produce json
// @Param id path int true "区块ID"
// @Success 200 {object} dto.SectionInfo "切换结果"
// @Failure 404 {object} map[string]string "区块不存在"
// @Router /api/v1/sections/{id}/toggle-visibility [post]
func (c *SectionController) ToggleVisibility(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	section, err := c.sectionSvc.ToggleVisibility(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	info, err := toSectionInfo(section)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, info)
}

// UpdateConfig 更新区块配置
// @Summary 更新区块配置
// @Description 增量更新：提交的键覆盖，未提交的键保留，null 删键
// @Tags Section (区块管理)
// @Accept json
// @Produce json
// @Param id path int true "区块ID"
// @Param request body dto.UpdateSectionConfigRequest true "配置补丁"
// @Success 200 {object} dto.SectionInfo "更新结果"
// @Failure 404 {object} map[string]string "区块不存在"
// @Router /api/v1/sections/{id}/config [put]
func (c *SectionController) UpdateConfig(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSectionConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	section, err := c.sectionSvc.UpdateConfig(ctx.Request.Context(), id, req.Config)
	if err != nil {
		respondError(ctx, err)
		return
	}

	info, err := toSectionInfo(section)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, info)
}

// UpdateMobileConfig 更新移动端配置
// @Summary 更新移动端配置
// @Description 增量更新移动端覆盖配置，渲染时覆盖桌面端同名键
// @Tags Section (区块管理)
// @Accept json
// @Produce json
// @Param id path int true "区块ID"
// @Param request body dto.UpdateSectionConfigRequest true "配置补丁"
// @Success 200 {object} dto.SectionInfo "更新结果"
// @Failure 404 {object} map[string]string "区块不存在"
// @Router /api/v1/sections/{id}/mobile-config [put]
func (c *SectionController) UpdateMobileConfig(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateSectionConfigRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	section, err := c.sectionSvc.UpdateMobileConfig(ctx.Request.Context(), id, req.Config)
	if err != nil {
		respondError(ctx, err)
		return
	}

	info, err := toSectionInfo(section)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, info)
}

// ResetMobileConfig 清空移动端配置
// @Summary 清空移动端配置
// @Description 删除全部移动端覆盖，恢复使用桌面端配置
// @Tags Section (区块管理)
// @Produce json
// @Param id path int true "区块ID"
// @Success 200 {object} map[string]string "{"message": "已清空移动端配置"}"
// @Failure 404 {object} map[string]string "区块不存在"
// @Router /api/v1/sections/{id}/mobile-config [delete]
func (c *SectionController) ResetMobileConfig(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.sectionSvc.ResetMobileConfig(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "已清空移动端配置"})
}

// RenderConfig 获取渲染配置
// @Summary 获取渲染配置
// @Description 返回合并后的最终渲染配置；mobile=true 时叠加移动端覆盖
// @Tags Section (区块管理)
// @Produce json
// @Param id path int true "区块ID"
// @Param mobile query bool false "是否移动端"
// @Success 200 {object} dto.SectionRenderResponse "渲染配置"
// @Failure 404 {object} map[string]string "区块不存在"
// @Router /api/v1/sections/{id}/render [get]
func (c *SectionController) RenderConfig(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	mobile := ctx.Query("mobile") == "true"
	config, err := c.sectionSvc.RenderConfig(ctx.Request.Context(), id, mobile)
	if err != nil {
		respondError(ctx, err)
		return
	}

	section, err := c.sectionSvc.GetSection(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SectionRenderResponse{
		ID:     section.ID,
		Type:   string(section.SectionType),
		Mobile: mobile,
		Config: config,
	})
}
