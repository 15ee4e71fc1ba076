package routes

import (
	"github.com/gin-gonic/gin"

	"safety_reports/internal/controllers"
	"safety_reports/internal/middleware"
)

func InvestigationRoutes(r *gin.Engine, ctrl *controllers.InvestigationController, auth *middleware.Auth) {
	inv := r.Group("/investigations")
	{
		inv.GET("", auth.OptionalAuth(), ctrl.Dashboard)
		inv.GET("/stats", ctrl.Stats)
		inv.POST("/reports/:id/status", auth.RequireAuth(), ctrl.UpdateStatus)
	}
}
