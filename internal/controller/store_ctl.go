package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storebuilder_v1_202608/internal/api/dto"
	"storebuilder_v1_202608/internal/middleware"
	"storebuilder_v1_202608/internal/repository"
	"storebuilder_v1_202608/internal/service"
)

type StoreController struct {
	storeSvc *service.StoreService
}

func NewStoreController(storeSvc *service.StoreService) *StoreController {
	return &StoreController{
		storeSvc: storeSvc,
	}
}

// CreateStore 创建店铺
// @Summary 创建店铺
// @Description 创建店铺并初始化默认主题、页头页脚设置和模板页面
// @Tags Store (店铺管理)
// @Accept json
// @Produce json
// @Param request body dto.CreateStoreRequest true "店铺参数"
// @Success 201 {object} dto.CreateStoreResponse "创建结果"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 409 {object} map[string]string "二级域名已被占用"
// @Router /api/v1/stores [post]
func (c *StoreController) CreateStore(ctx *gin.Context) {
	var req dto.CreateStoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	store, seeded, err := c.storeSvc.CreateStore(ctx.Request.Context(), service.StoreCreateInput{
		Name:             req.Name,
		Subdomain:        req.Subdomain,
		BusinessType:     req.BusinessType,
		BusinessCategory: req.BusinessCategory,
		OwnerUserID:      middleware.GetUserID(ctx),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.CreateStoreResponse{
		Store:       toStoreInfo(store),
		SeededPages: seeded,
	})
}

// ListStores 获取当前用户的店铺列表
// @Summary 获取我的店铺
// @Description 返回当前用户是成员的全部店铺
// @Tags Store (店铺管理)
// @Produce json
// @Success 200 {object} dto.StoreListResponse "店铺列表"
// @Router /api/v1/stores [get]
func (c *StoreController) ListStores(ctx *gin.Context) {
	stores, err := c.storeSvc.ListUserStores(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}

	list := make([]*dto.StoreInfo, 0, len(stores))
	for i := range stores {
		list = append(list, toStoreInfo(&stores[i]))
	}
	ctx.JSON(http.StatusOK, dto.StoreListResponse{List: list, Total: int64(len(list))})
}

// ListAllStores 超管查询全部店铺
// @Summary 查询全部店铺
// @Description 分页查询全部店铺，支持按名称、状态筛选（仅超管角色）
// @Tags Store (店铺管理)
// @Produce json
// @Param keyword query string false "店铺名称关键词"
// @Param status query int false "状态筛选"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} dto.StoreListResponse "店铺列表"
// @Router /api/v1/admin/stores [get]
func (c *StoreController) ListAllStores(ctx *gin.Context) {
	var req dto.StoreListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	status := -1
	if req.Status != nil {
		status = *req.Status
	}
	stores, total, err := c.storeSvc.ListStores(ctx.Request.Context(), repository.StoreFilter{
		Name:     req.Keyword,
		Status:   status,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	list := make([]*dto.StoreInfo, 0, len(stores))
	for i := range stores {
		list = append(list, toStoreInfo(&stores[i]))
	}
	ctx.JSON(http.StatusOK, dto.StoreListResponse{List: list, Total: total})
}

// GetStore 获取店铺详情
// @Summary 获取店铺详情
// @Tags Store (店铺管理)
// @Produce json
// @Param storeId path int true "店铺ID"
// @Success 200 {object} dto.StoreInfo "店铺详情"
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/v1/stores/{storeId} [get]
func (c *StoreController) GetStore(ctx *gin.Context) {
	storeID, ok := parseIDParam(ctx, "storeId")
	if !ok {
		return
	}

	store, err := c.storeSvc.GetStore(ctx.Request.Context(), storeID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, toStoreInfo(store))
}

// ReseedStore 重新执行模板初始化
// @Summary 重新初始化模板页面
// @Description 对缺失的模板页面补种，已存在的页面保持不变
// @Tags Store (店铺管理)
// @Produce json
// @Param storeId path int true "店铺ID"
// @Success 200 {object} map[string]int "{"created": 2}"
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/v1/stores/{storeId}/reseed [post]
func (c *StoreController) ReseedStore(ctx *gin.Context) {
	storeID, ok := parseIDParam(ctx, "storeId")
	if !ok {
		return
	}

	created, err := c.storeSvc.ReseedStore(ctx.Request.Context(), storeID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"created": created})
}

// DeleteStore 删除店铺
// @Summary 删除店铺
// @Description 删除店铺及其全部页面、主题、导航和设置
// @Tags Store (店铺管理)
// @Produce json
// @Param storeId path int true "店铺ID"
// @Success 200 {object} map[string]string "{"message": "删除成功"}"
// @Failure 404 {object} map[string]string "店铺不存在"
// @Router /api/v1/stores/{storeId} [delete]
func (c *StoreController) DeleteStore(ctx *gin.Context) {
	storeID, ok := parseIDParam(ctx, "storeId")
	if !ok {
		return
	}

	if err := c.storeSvc.DeleteStore(ctx.Request.Context(), storeID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// ==================== 店铺成员 ====================

// AddMember 添加店铺成员
// @Summary 添加店铺成员
// @Tags Store (店铺管理)
// @Accept json
// @Produce json
// @Param storeId path int true "店铺ID"
// @Param request body dto.AddMemberRequest true "成员参数"
// @Success 201 {object} map[string]string "{"message": "添加成功"}"
// @Failure 409 {object} map[string]string "该用户已是店铺成员"
// @Router /api/v1/stores/{storeId}/members [post]
func (c *StoreController) AddMember(ctx *gin.Context) {
	storeID, ok := parseIDParam(ctx, "storeId")
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	if err := c.storeSvc.AddMember(ctx.Request.Context(), storeID, req.UserID, req.Role); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "添加成功"})
}

// ListMembers 获取店铺成员列表
// @Summary 获取店铺成员
// @Tags Store (店铺管理)
// @Produce json
// @Param storeId path int true "店铺ID"
// @Success 200 {array} dto.MemberInfo "成员列表"
// @Router /api/v1/stores/{storeId}/members [get]
func (c *StoreController) ListMembers(ctx *gin.Context) {
	storeID, ok := parseIDParam(ctx, "storeId")
	if !ok {
		return
	}

	members, err := c.storeSvc.ListMembers(ctx.Request.Context(), storeID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	list := make([]*dto.MemberInfo, 0, len(members))
	for i := range members {
		m := &members[i]
		info := &dto.MemberInfo{UserID: m.SysUserID, Role: m.Role}
		if m.SysUser != nil {
			info.Username = m.SysUser.Username
		}
		list = append(list, info)
	}
	ctx.JSON(http.StatusOK, list)
}

// RemoveMember 移除店铺成员
// @Summary 移除店铺成员
// @Description 店主不可被移除
// @Tags Store (店铺管理)
// @Produce json
// @Param storeId path int true "店铺ID"
// @Param userId path int true "用户ID"
// @Success 200 {object} map[string]string "{"message": "移除成功"}"
// @Failure 400 {object} map[string]string "店主不可移除"
// @Router /api/v1/stores/{storeId}/members/{userId} [delete]
func (c *StoreController) RemoveMember(ctx *gin.Context) {
	storeID, ok := parseIDParam(ctx, "storeId")
	if !ok {
		return
	}
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := c.storeSvc.RemoveMember(ctx.Request.Context(), storeID, userID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "移除成功"})
}
