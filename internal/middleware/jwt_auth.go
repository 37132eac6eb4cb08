package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"storebuilder_v1_202608/pkg/config"
)

// ==================== 签名配置 ====================

// Token 类型，写入 RegisteredClaims.Subject
const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

// ErrJWTNotConfigured 启动时未调用 InitJWT
var ErrJWTNotConfigured = errors.New("JWT 签名配置未初始化")

// 签名配置由 config.Load 提供，启动时注入一次，此后只读
var jwtCfg *config.JWTConfig

// InitJWT 注入 JWT 签名配置，main 启动时调用
func InitJWT(cfg config.JWTConfig) {
	jwtCfg = &cfg
}

// ==================== Claims 定义 ====================

// SessionClaims 登录会话声明
type SessionClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"` // 系统级角色，见 model.RoleSuperAdmin / model.RoleUser
	jwt.RegisteredClaims
}

// IsAccess 是否为 Access Token
func (c *SessionClaims) IsAccess() bool { return c.Subject == TokenKindAccess }

// IsRefresh 是否为 Refresh Token
func (c *SessionClaims) IsRefresh() bool { return c.Subject == TokenKindRefresh }

// ==================== Token 签发 ====================

// TokenPair 一次签发的 Access/Refresh Token
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // Access Token 有效期，秒
}

// IssueTokenPair 为登录会话签发 Token 对
func IssueTokenPair(userID int64, username, role string) (*TokenPair, error) {
	if jwtCfg == nil {
		return nil, ErrJWTNotConfigured
	}

	accessToken, err := signToken(userID, username, role, TokenKindAccess, jwtCfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, err := signToken(userID, username, role, TokenKindRefresh, jwtCfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(jwtCfg.AccessTokenTTL / time.Second),
	}, nil
}

// signToken 签发单个 Token，kind 写入 Subject
func signToken(userID int64, username, role, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtCfg.Issuer,
			Subject:   kind,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtCfg.SecretKey))
}

// ==================== Token 解析 ====================

// ParseToken 校验签名并返回会话声明
func ParseToken(tokenString string) (*SessionClaims, error) {
	if jwtCfg == nil {
		return nil, ErrJWTNotConfigured
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("签名算法不匹配")
		}
		return []byte(jwtCfg.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("Token 无效")
	}
	return claims, nil
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"
)

// JWTAuth 认证中间件，校验 Bearer Access Token 并注入用户信息
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "未提供认证信息")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "认证格式错误，应为 Bearer {token}")
			return
		}

		claims, err := ParseToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "Token 无效或已过期")
			return
		}

		// Refresh Token 只能走 /auth/refresh，不能直接访问接口
		if !claims.IsAccess() {
			abortUnauthorized(c, "Token 类型错误")
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyRole, claims.Role)

		c.Next()
	}
}

// RequireRole 系统级角色校验，需在 JWTAuth 之后
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextKeyRole)
		if !exists {
			abortUnauthorized(c, "未获取到用户角色")
			return
		}

		userRole := role.(string)
		for _, r := range roles {
			if userRole == r {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "无权限访问"})
		c.Abort()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": message})
	c.Abort()
}

// ==================== 辅助函数 ====================

// GetUserID 从 Context 获取当前用户 ID
func GetUserID(c *gin.Context) int64 {
	if id, exists := c.Get(ContextKeyUserID); exists {
		return id.(int64)
	}
	return 0
}

// GetUsername 从 Context 获取当前用户名
func GetUsername(c *gin.Context) string {
	if name, exists := c.Get(ContextKeyUsername); exists {
		return name.(string)
	}
	return ""
}
