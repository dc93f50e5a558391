package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wedding-planner/backend/config"
	"wedding-planner/backend/internal/api/handler"
	"wedding-planner/backend/internal/api/middleware"
	"wedding-planner/backend/pkg/jwt"
	"wedding-planner/backend/pkg/redis"
)

// 公开 RSVP 端点的限流参数：每 IP 每路由一分钟 30 次
const (
	rsvpRateLimit  = 30
	rsvpRateWindow = time.Minute
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

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}

		// 公开 RSVP 模块（凭令牌访问，带限流）
		rsvp := v1.Group("/rsvp")
		rsvp.Use(middleware.RateLimit(rdb, rsvpRateLimit, rsvpRateWindow))
		{
			rsvp.GET("/:token", h.Rsvp.GetPage)
			rsvp.POST("/:token", h.Rsvp.Submit)
			rsvp.GET("/:token/calendar", h.Rsvp.CalendarInvite)
		}

		// 需要认证的管理端路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr))
		{
			// 宾客模块
			guests := authorized.Group("/guests")
			{
				guests.GET("", h.Guest.List)
				guests.POST("", h.Guest.Create)
				guests.GET("/:id", h.Guest.Get)
				guests.PUT("/:id", h.Guest.Update)
				guests.DELETE("/:id", h.Guest.Delete)
				guests.POST("/:id/resend-invitation", h.Guest.ResendInvitation)
			}

			// 餐桌模块
			tables := authorized.Group("/tables")
			{
				tables.GET("", h.Table.List)
				tables.POST("", h.Table.Create)
				tables.GET("/:id", h.Table.Get)
				tables.PUT("/:id", h.Table.Update)
				tables.DELETE("/:id", h.Table.Delete)
			}

			// 座位分配模块
			seating := authorized.Group("/seating")
			{
				seating.GET("", h.Table.SeatingPlan)
				seating.POST("/assign", h.Table.AssignGuest)
				seating.POST("/unassign", h.Table.UnassignGuest)
			}

			// 仪表盘模块
			dashboard := authorized.Group("/dashboard")
			{
				dashboard.GET("", h.Dashboard.Summary)
				dashboard.GET("/stats", h.Dashboard.Stats)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/guests", h.Dashboard.ExportGuests)
			}
		}
	}

	return r
}
