package routes

import (
	"github.com/gin-gonic/gin"

	noticehandlers "campusvoice/internal/interfaces/http/handlers/notice"
	"campusvoice/internal/interfaces/http/middleware"
)

type NoticeRouteConfig struct {
	NoticeHandler *noticehandlers.Handler
}

func SetupNoticeRoutes(api *gin.RouterGroup, config *NoticeRouteConfig) {
	notices := api.Group("/notices")
	{
		notices.GET("",
			middleware.RequireCaller(),
			config.NoticeHandler.List)
		notices.POST("",
			middleware.RequireAuthority(),
			config.NoticeHandler.Create)
		notices.DELETE("/:id",
			middleware.RequireAuthority(),
			config.NoticeHandler.Deactivate)
	}
}
