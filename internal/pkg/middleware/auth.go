package middleware

import (
	"net/http"
	"strings"

	"blog_crud_jwt/internal/pkg/token"
	"blog_crud_jwt/pkg/response"
	"blog_crud_jwt/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware JWT认证中间件
// 校验签名之外还检查 Redis 白名单，登出后的 token 立即失效
func AuthMiddleware(store token.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Authorization header is required")
			c.Abort()
			return
		}

		// 检查格式 "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Invalid or expired token")
			c.Abort()
			return
		}

		if !store.IsValid(c.Request.Context(), claims.UserID, claims.ID) {
			response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "Token has been revoked")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Next()
	}
}

// OptionalAuthMiddleware 可选认证
// 公开读接口也放行；携带了合法 token 时把 userID 放进上下文
func OptionalAuthMiddleware(store token.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			if claims, err := utils.ParseToken(parts[1]); err == nil {
				if store.IsValid(c.Request.Context(), claims.UserID, claims.ID) {
					c.Set("userID", claims.UserID)
				}
			}
		}
		c.Next()
	}
}

// GetUserID 从上下文取当前用户ID，未认证时返回空串
func GetUserID(c *gin.Context) string {
	val, _ := c.Get("userID")
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}
