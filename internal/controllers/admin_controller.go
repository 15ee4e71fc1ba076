package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"safety_reports/internal/policy"
	"safety_reports/internal/services"
)

// AdminController covers the few user-management actions admins need.
type AdminController struct {
	actorLoader
}

func NewAdminController(users *services.UserService) *AdminController {
	return &AdminController{actorLoader: actorLoader{users: users}}
}

// RequireAdmin checks the caller's current role in the database, so a
// demoted admin is refused even with a token issued before the change.
func (ac *AdminController) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := ac.currentActor(c)
		if err != nil {
			respondError(c, "RequireAdmin", err)
			c.Abort()
			return
		}
		if actor == nil {
			respondError(c, "RequireAdmin", services.ErrNotAuthenticated)
			c.Abort()
			return
		}
		if !policy.CanAdministerUsers(actor) {
			respondError(c, "RequireAdmin", services.ErrPermissionDenied)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (ac *AdminController) SetRole(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.users.SetRole(c.Request.Context(), id, body.Role)
	if err != nil {
		respondError(c, "SetRole", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// DeleteUser removes the user with their reports and comments.
func (ac *AdminController) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ac.users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteUser", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
