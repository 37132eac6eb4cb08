package middleware

import (
	"context"
	"reflect"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ==================== 操作人上下文 ====================

// 登录用户沿 request context 传给 GORM 回调，写库时自动补审计字段。

type actorKey struct{}

// Actor 当前操作人
type Actor struct {
	UserID   int64
	Username string
}

// WithActor 把操作人写入 context
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom 从 context 取出操作人，未登录返回零值
func ActorFrom(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}

// AuditContext 审计上下文中间件，需在 JWTAuth 之后
// 将 JWT 里的登录用户注入 request context
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := GetUserID(c); userID > 0 {
			ctx := WithActor(c.Request.Context(), Actor{
				UserID:   userID,
				Username: GetUsername(c),
			})
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// ==================== GORM 回调 ====================

// RegisterAuditCallbacks 注册审计回调
// Create 时填充 CreatedBy/UpdatedBy，Update 时填充 UpdatedBy
func RegisterAuditCallbacks(db *gorm.DB) {
	db.Callback().Create().Before("gorm:create").
		Register("storebuilder:audit_create", stampActor("CreatedBy", "UpdatedBy"))
	db.Callback().Update().Before("gorm:update").
		Register("storebuilder:audit_update", stampActor("UpdatedBy"))
}

// stampActor 构造回调：把操作人 ID 写入指定审计字段
// 模型没有对应字段、或字段已有值时跳过
func stampActor(fieldNames ...string) func(tx *gorm.DB) {
	return func(tx *gorm.DB) {
		if tx.Statement.Context == nil || tx.Statement.Schema == nil {
			return
		}
		actor, ok := ActorFrom(tx.Statement.Context)
		if !ok || actor.UserID == 0 {
			return
		}

		for _, name := range fieldNames {
			field := tx.Statement.Schema.LookUpField(name)
			if field == nil {
				continue
			}

			switch tx.Statement.ReflectValue.Kind() {
			case reflect.Struct:
				setIfZero(tx, field, tx.Statement.ReflectValue, actor.UserID)
			case reflect.Slice:
				// 批量写入
				for i := 0; i < tx.Statement.ReflectValue.Len(); i++ {
					setIfZero(tx, field, tx.Statement.ReflectValue.Index(i), actor.UserID)
				}
			}
		}
	}
}

func setIfZero(tx *gorm.DB, field *schema.Field, rv reflect.Value, value int64) {
	if _, isZero := field.ValueOf(tx.Statement.Context, rv); isZero {
		_ = field.Set(tx.Statement.Context, rv, value)
	}
}
