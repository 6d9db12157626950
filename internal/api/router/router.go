package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Rushant-123/ui-learnings/config"
	"github.com/Rushant-123/ui-learnings/internal/api/handler"
	"github.com/Rushant-123/ui-learnings/internal/api/middleware"
	"github.com/Rushant-123/ui-learnings/pkg/jwt"
	"github.com/Rushant-123/ui-learnings/pkg/redis"
	"github.com/Rushant-123/ui-learnings/pkg/response"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// 已注册路径上用错 HTTP 方法时回 405 而非 404
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c, "Method not allowed")
	})

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20)) // 文件走预签名直传，API 请求体 1MB 足够

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API ──
	api := r.Group("/api")
	{
		// 认证模块（无需认证，登录注册单独限流）
		auth := api.Group("/auth")
		{
			auth.POST("/signup", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Signup)
			auth.POST("/signin", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Signin)
		}

		// 需要认证的路由
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/signout", h.Auth.Signout)

			// 学习进度
			authorized.GET("/progress", h.Progress.Get)
			authorized.POST("/progress", h.Progress.Update)

			// 作业
			authorized.GET("/assignments", h.Assignment.List)
			authorized.POST("/assignments", h.Assignment.Submit)
			authorized.PUT("/assignments", h.Assignment.Update)

			// 作品集
			authorized.GET("/portfolio", h.Portfolio.List)
			authorized.POST("/portfolio", h.Portfolio.Submit)
			authorized.PUT("/portfolio", h.Portfolio.Update)

			// 反馈
			authorized.GET("/feedback", h.Feedback.List)
			authorized.POST("/feedback", h.Feedback.Create)
			authorized.PUT("/feedback", h.Feedback.Update)

			// 上传（预签名直传）
			authorized.POST("/upload", middleware.RateLimit(rdb, 30, time.Minute), h.Upload.Presign)

			// 导出
			export := authorized.Group("/export")
			{
				export.GET("/progress", h.Export.ExportProgress)
				export.GET("/calendar", h.Export.ExportCalendar)
			}
		}
	}

	return r
}
