package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/opsboard/internal/constants"
	"github.com/yukikurage/opsboard/internal/dto"
	apierrors "github.com/yukikurage/opsboard/internal/errors"
	"github.com/yukikurage/opsboard/internal/middleware"
	"github.com/yukikurage/opsboard/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	username    string
}

// NewAuthHandler creates a new AuthHandler for the configured owner.
func NewAuthHandler(authService *services.AuthService, username string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		username:    username,
	}
}

// Login checks the owner credentials and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.Login(req.Username, req.Password); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.InvalidCredentials(c)
			return
		}
		apierrors.InternalError(c, "")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.ContextKeyUsername, h.username)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{Username: h.username})
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the logged in owner.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	username, exists := middleware.GetUsername(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	c.JSON(http.StatusOK, dto.SessionResponse{Username: username})
}
