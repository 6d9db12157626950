package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Rushant-123/ui-learnings/pkg/jwt"
	"github.com/Rushant-123/ui-learnings/pkg/redis"
	"github.com/Rushant-123/ui-learnings/pkg/response"
)

const claimsKey = "claims"

// JWTAuth JWT 认证中间件
// 从 Authorization: Bearer <token> 中提取并验证 Access Token，
// 再检查 Redis 黑名单（rdb 为 nil 时跳过黑名单，降级放行）
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Missing or invalid authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "Missing or invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			// Redis 出错时降级放行，只拦截确认在黑名单中的 Token
			if err == nil && blacklisted {
				response.Unauthorized(c, "Invalid or expired token")
				c.Abort()
				return
			}
		}

		// 将用户信息注入上下文
		c.Set(claimsKey, claims)
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}
