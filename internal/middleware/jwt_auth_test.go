package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storebuilder_v1_202608/internal/model"
	"storebuilder_v1_202608/pkg/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试辅助 ====================

func initTestJWT() {
	InitJWT(config.JWTConfig{
		SecretKey:       "middleware-test-secret",
		AccessTokenTTL:  2 * time.Hour,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		Issuer:          "storebuilder-test",
	})
}

// newGuardedRouter 挂一条需要超管角色的路由，模拟 /admin 组
func newGuardedRouter() *gin.Engine {
	r := gin.New()
	admin := r.Group("/admin", JWTAuth(), RequireRole(model.RoleSuperAdmin))
	admin.GET("/stores", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	return r
}

func getWithToken(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== Token 签发与解析 ====================

func TestIssueTokenPair_RoundTrip(t *testing.T) {
	initTestJWT()

	pair, err := IssueTokenPair(7, "alice", model.RoleUser)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(2*60*60), pair.ExpiresIn)

	access, err := ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(7), access.UserID)
	assert.Equal(t, "alice", access.Username)
	assert.Equal(t, model.RoleUser, access.Role)
	assert.True(t, access.IsAccess())

	refresh, err := ParseToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, refresh.IsRefresh())
}

func TestIssueTokenPair_RequiresInit(t *testing.T) {
	jwtCfg = nil
	defer initTestJWT()

	_, err := IssueTokenPair(1, "alice", model.RoleUser)
	assert.ErrorIs(t, err, ErrJWTNotConfigured)
}

// ==================== 超管路由守卫 ====================

func TestRequireRole_SuperAdminGuard(t *testing.T) {
	initTestJWT()
	r := newGuardedRouter()

	superPair, err := IssueTokenPair(1, "root", model.RoleSuperAdmin)
	require.NoError(t, err)
	userPair, err := IssueTokenPair(2, "alice", model.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"超管放行", superPair.AccessToken, http.StatusOK},
		{"普通店主拒绝", userPair.AccessToken, http.StatusForbidden},
		{"未携带 Token", "", http.StatusUnauthorized},
		{"Refresh Token 不能当 Access 用", superPair.RefreshToken, http.StatusUnauthorized},
		{"伪造 Token", "not-a-token", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := getWithToken(r, "/admin/stores", tt.token)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
