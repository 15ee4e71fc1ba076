package routes

import (
	"github.com/gin-gonic/gin"

	"safety_reports/internal/controllers"
	"safety_reports/internal/middleware"
)

func AuthRoutes(r *gin.Engine, ctrl *controllers.AuthController, auth *middleware.Auth) {
	group := r.Group("/auth")
	{
		group.POST("/register", ctrl.Register)
		group.POST("/login", ctrl.Login)
		group.GET("/me", auth.RequireAuth(), ctrl.Me)
	}
}
