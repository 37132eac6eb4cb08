package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ==================== 店铺访问控制 ====================

// StoreAccessChecker 店铺成员校验接口
type StoreAccessChecker interface {
	HasAccess(c *gin.Context, userID, storeID int64) (bool, error)
}

// StoreAccessFunc 函数式校验器
type StoreAccessFunc func(c *gin.Context, userID, storeID int64) (bool, error)

// HasAccess 实现 StoreAccessChecker
func (f StoreAccessFunc) HasAccess(c *gin.Context, userID, storeID int64) (bool, error) {
	return f(c, userID, storeID)
}

// StoreAccess 店铺访问控制中间件
// 校验当前用户是否为路径参数 :storeId 对应店铺的成员
func StoreAccess(checker StoreAccessChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		storeID, err := strconv.ParseInt(c.Param("storeId"), 10, 64)
		if err != nil || storeID <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的店铺 ID"})
			c.Abort()
			return
		}

		userID := GetUserID(c)
		if userID == 0 {
			abortUnauthorized(c, "未获取到用户信息")
			return
		}

		ok, err := checker.HasAccess(c, userID, storeID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "校验店铺权限失败"})
			c.Abort()
			return
		}
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "无权访问该店铺"})
			c.Abort()
			return
		}

		c.Set("store_id", storeID)
		c.Next()
	}
}

// GetStoreID 从 Context 获取店铺 ID
func GetStoreID(c *gin.Context) int64 {
	if id, exists := c.Get("store_id"); exists {
		return id.(int64)
	}
	return 0
}
