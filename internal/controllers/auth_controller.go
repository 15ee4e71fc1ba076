package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"safety_reports/internal/middleware"
	"safety_reports/internal/models"
	"safety_reports/internal/services"
)

type AuthController struct {
	actorLoader
	auth *middleware.Auth
}

func NewAuthController(users *services.UserService, auth *middleware.Auth) *AuthController {
	return &AuthController{actorLoader: actorLoader{users: users}, auth: auth}
}

// Register creates an account (always with the regular role) and logs it in.
func (ac *AuthController) Register(c *gin.Context) {
	var input services.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.users.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, "Register", err)
		return
	}

	ac.respondWithToken(c, http.StatusCreated, user)
}

func (ac *AuthController) Login(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.users.Authenticate(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		respondError(c, "Login", err)
		return
	}

	ac.respondWithToken(c, http.StatusOK, user)
}

// Me returns the current user and role.
func (ac *AuthController) Me(c *gin.Context) {
	actor, err := ac.currentActor(c)
	if err != nil {
		respondError(c, "Me", err)
		return
	}
	if actor == nil {
		respondError(c, "Me", services.ErrNotAuthenticated)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(actor)})
}

func (ac *AuthController) respondWithToken(c *gin.Context, code int, user *models.User) {
	role := models.RoleRegular
	if user.Profile != nil {
		role = user.Profile.Role
	}
	token, err := ac.auth.GenerateToken(user.ID, role)
	if err != nil {
		logrus.WithError(err).Error("could not generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}
	c.JSON(code, gin.H{
		"token": token,
		"user":  toUserResponse(user),
	})
}
