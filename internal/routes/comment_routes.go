package routes

import (
	"github.com/gin-gonic/gin"

	"safety_reports/internal/controllers"
	"safety_reports/internal/middleware"
)

func CommentRoutes(r *gin.Engine, ctrl *controllers.CommentController, auth *middleware.Auth) {
	comments := r.Group("/comments")
	comments.Use(auth.RequireAuth())
	{
		comments.GET("/:id", ctrl.Get)
		comments.PUT("/:id", ctrl.Update)
		comments.DELETE("/:id", ctrl.Delete)
	}
}
