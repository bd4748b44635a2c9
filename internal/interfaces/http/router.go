package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campusvoice/internal/interfaces/http/middleware"
	"campusvoice/internal/interfaces/http/routes"
	"campusvoice/internal/shared/utils"
)

// SetupRoutes configures all HTTP routes
func (c *Container) SetupRoutes() {
	c.engine.Use(middleware.RequestID())
	c.engine.Use(middleware.Logger(c.log.Named("http")))
	c.engine.Use(middleware.Recovery(c.log))
	c.engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	c.engine.Use(middleware.SecurityHeaders())

	c.engine.GET("/health", c.healthCheck)

	api := c.engine.Group("/api/v1")
	if c.rateLimiter != nil {
		api.Use(c.rateLimiter.Limit())
	}
	api.Use(c.identityMiddleware.Resolve())

	routes.SetupComplaintRoutes(api, &routes.ComplaintRouteConfig{
		ComplaintHandler: c.hdlrs.complaintHandler,
	})
	routes.SetupNoticeRoutes(api, &routes.NoticeRouteConfig{
		NoticeHandler: c.hdlrs.noticeHandler,
	})
}

// healthCheck reports whether the database and, when configured, Redis
// answer within a short deadline.
func (c *Container) healthCheck(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"database": "ok"}
	healthy := true

	if sqlDB, err := c.db.DB(); err != nil || sqlDB.PingContext(pingCtx) != nil {
		status["database"] = "unreachable"
		healthy = false
	}
	if c.redis != nil {
		status["redis"] = "ok"
		if err := c.redis.Ping(pingCtx).Err(); err != nil {
			status["redis"] = "unreachable"
			healthy = false
		}
	}

	if !healthy {
		c.log.Warnw("health check failed", "status", status)
		ctx.JSON(http.StatusServiceUnavailable, utils.APIResponse{
			Success: false,
			Message: "service degraded",
			Data:    status,
		})
		return
	}
	utils.SuccessResponse(ctx, http.StatusOK, "ok", status)
}

// Run starts the HTTP server
func (c *Container) Run(addr string) error {
	return c.engine.Run(addr)
}
