package routes

import (
	"github.com/gin-gonic/gin"

	complainthandlers "campusvoice/internal/interfaces/http/handlers/complaint"
	"campusvoice/internal/interfaces/http/middleware"
)

type ComplaintRouteConfig struct {
	ComplaintHandler *complainthandlers.Handler
}

func SetupComplaintRoutes(api *gin.RouterGroup, config *ComplaintRouteConfig) {
	complaints := api.Group("/complaints")
	{
		// Collection operations (no ID parameter)
		complaints.POST("",
			middleware.RequireStudent(),
			config.ComplaintHandler.Submit)
		complaints.GET("",
			middleware.RequireStudent(),
			config.ComplaintHandler.ListFeed)

		// Specific action endpoints (must come BEFORE /:id to avoid conflicts)
		complaints.PATCH("/:id/status",
			middleware.RequireAuthority(),
			config.ComplaintHandler.UpdateStatus)
		complaints.POST("/:id/escalate",
			middleware.RequireAuthority(),
			config.ComplaintHandler.Escalate)
		complaints.POST("/:id/vote",
			middleware.RequireStudent(),
			config.ComplaintHandler.CastVote)
		complaints.DELETE("/:id/vote",
			middleware.RequireStudent(),
			config.ComplaintHandler.RemoveVote)
		complaints.GET("/:id/history",
			middleware.RequireCaller(),
			config.ComplaintHandler.StatusHistory)
		complaints.GET("/:id/escalations",
			middleware.RequireCaller(),
			config.ComplaintHandler.EscalationHistory)
		complaints.GET("/:id/visibility",
			middleware.RequireStudent(),
			config.ComplaintHandler.Visibility)

		complaints.GET("/:id",
			middleware.RequireCaller(),
			config.ComplaintHandler.Get)
	}
}
