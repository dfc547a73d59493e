package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/flowfactory-backend/internal/apierr"
	"github.com/yungbote/flowfactory-backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.InvalidInput(errors.New("invalid request body")))
		return
	}
	user, err := ah.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"user": user})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierr.InvalidInput(errors.New("invalid request body")))
		return
	}
	resp, err := ah.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{
		"access_token": resp.AccessToken,
		"expires_at":   resp.ExpiresAt,
		"user":         resp.User,
	})
}
