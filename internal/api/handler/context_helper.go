package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Rushant-123/ui-learnings/pkg/jwt"
	"github.com/Rushant-123/ui-learnings/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "Unauthorized")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, "Unauthorized")
		return "", false
	}
	return s, true
}

// GetClaims 从 Gin 上下文中提取完整 JWT Claims，未注入时返回 nil
func GetClaims(c *gin.Context) *jwt.Claims {
	v, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := v.(*jwt.Claims)
	if !ok {
		return nil
	}
	return claims
}
