package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/benbrewster85/risk-assessment-app-sub000/config"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/api/handler"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/api/middleware"
	"github.com/benbrewster85/risk-assessment-app-sub000/internal/model"
	"github.com/benbrewster85/risk-assessment-app-sub000/pkg/jwt"
	"github.com/benbrewster85/risk-assessment-app-sub000/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 可写角色：viewer 对看板只读
	editors := middleware.RoleAuth(model.RoleAdmin, model.RoleEditor)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录接口限速）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 看板模块
			board := authorized.Group("/board")
			{
				board.GET("", h.Board.GetBoard)
				board.POST("/drop", editors, h.Board.Drop)
				board.DELETE("/allocations/:id", editors, h.Board.DeleteAllocation)
				board.POST("/bulk-assign", editors, h.Board.BulkAssign)

				// 注记
				board.PUT("/notes", editors, h.Annotation.SaveNote)
				board.DELETE("/notes/:id", editors, h.Annotation.DeleteNote)
				board.POST("/day-events", editors, h.Annotation.CreateDayEvent)
				board.DELETE("/day-events/:id", editors, h.Annotation.DeleteDayEvent)
			}

			// 目录模块
			catalog := authorized.Group("/catalog")
			{
				catalog.GET("/resources", h.Board.ListResources)
				catalog.GET("/work-items", h.Board.ListWorkItems)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/board", h.Export.ExportBoard)
				export.GET("/calendar/:personnel_id", h.Export.PersonnelCalendar)
			}
		}
	}

	return r
}
