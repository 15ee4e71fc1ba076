package routes

import (
	"github.com/gin-gonic/gin"

	"safety_reports/internal/controllers"
	"safety_reports/internal/middleware"
)

func AdminRoutes(r *gin.Engine, ctrl *controllers.AdminController, auth *middleware.Auth) {
	admin := r.Group("/admin")
	admin.Use(auth.RequireAuth(), ctrl.RequireAdmin())
	{
		admin.PUT("/users/:id/role", ctrl.SetRole)
		admin.DELETE("/users/:id", ctrl.DeleteUser)
	}
}
