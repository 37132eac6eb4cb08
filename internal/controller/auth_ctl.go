package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storebuilder_v1_202608/internal/api/dto"
	"storebuilder_v1_202608/internal/middleware"
	"storebuilder_v1_202608/internal/service"
)

type AuthController struct {
	userSvc *service.UserService
}

func NewAuthController(userSvc *service.UserService) *AuthController {
	return &AuthController{
		userSvc: userSvc,
	}
}

// Login 用户登录
// @Summary 用户登录
// @Description 用户名密码登录，返回 Access/Refresh Token 对
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录参数"
// @Success 200 {object} dto.LoginResponse "登录成功"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 401 {object} map[string]string "用户名或密码错误"
// @Router /api/v1/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	resp, err := c.userSvc.Login(ctx.Request.Context(), &req)
	if err != nil {
		if err == service.ErrInvalidCredentials || err == service.ErrUserDisabled {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, resp)
}

// Register 用户注册
// @Summary 用户注册
// @Description 注册新用户，用户名全局唯一
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册参数"
// @Success 201 {object} dto.UserInfo "注册成功"
// @Failure 400 {object} map[string]string "参数错误"
// @Failure 409 {object} map[string]string "用户名已存在"
// @Router /api/v1/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	user, err := c.userSvc.Register(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	})
}

// RefreshToken 刷新 Token
// @Summary 刷新 Token
// @Description 使用 Refresh Token 换取新的 Token 对
// @Tags Auth (认证)
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "刷新参数"
// @Success 200 {object} dto.RefreshTokenResponse "刷新成功"
// @Failure 401 {object} map[string]string "Token 无效或已过期"
// @Router /api/v1/auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "参数错误: " + err.Error()})
		return
	}

	claims, err := middleware.ParseToken(req.RefreshToken)
	if err != nil || !claims.IsRefresh() {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh Token 无效或已过期"})
		return
	}

	pair, err := middleware.IssueTokenPair(claims.UserID, claims.Username, claims.Role)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, dto.RefreshTokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

// Me 获取当前用户信息
// @Summary 获取当前用户
// @Description 根据 Token 返回当前登录用户信息
// @Tags Auth (认证)
// @Produce json
// @Success 200 {object} dto.UserInfo "用户信息"
// @Failure 401 {object} map[string]string "未登录"
// @Router /api/v1/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	userID := middleware.GetUserID(ctx)
	user, err := c.userSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	})
}
