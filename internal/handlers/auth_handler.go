package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mauc/audioguide-backend/internal/apperr"
	"github.com/mauc/audioguide-backend/internal/middleware"
	"github.com/mauc/audioguide-backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles admin login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	admin, tokens, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"admin":  admin,
		"tokens": tokens,
	})
}

// Refresh rotates the token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// Logout revokes the caller's refresh token
func (h *AuthHandler) Logout(c *gin.Context) {
	adminID, ok := middleware.AdminID(c)
	if !ok {
		respondError(c, apperr.Unauthorizedf("missing authenticated admin"))
		return
	}
	if err := h.authService.Logout(c.Request.Context(), adminID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
