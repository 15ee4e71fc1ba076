package routes

import (
	"github.com/gin-gonic/gin"

	"safety_reports/internal/controllers"
	"safety_reports/internal/middleware"
)

func ReportRoutes(r *gin.Engine, ctrl *controllers.ReportController, auth *middleware.Auth) {
	reports := r.Group("/reports")
	{
		reports.GET("", auth.OptionalAuth(), ctrl.List)
		reports.GET("/:id", auth.OptionalAuth(), ctrl.Detail)
		reports.POST("", auth.RequireAuth(), ctrl.Create)
		reports.POST("/:id/comments", auth.RequireAuth(), ctrl.AddComment)
	}
}
