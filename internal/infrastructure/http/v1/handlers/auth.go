package handlers

import (
	"github.com/gin-gonic/gin"

	"tuldokpos/internal/domain/auth"
	"tuldokpos/internal/infrastructure/http/v1/dto"
)

// AuthHandler serves the operator authentication endpoints.
type AuthHandler struct {
	base    *BaseHandler
	service *auth.Service
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(base *BaseHandler, service *auth.Service) *AuthHandler {
	return &AuthHandler{base: base, service: service}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	token, err := h.service.Login(c.Request.Context(), auth.Credentials{Password: req.Password})
	if err != nil {
		h.base.Error(c, err)
		return
	}

	h.base.OK(c, dto.LoginResponse{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
	})
}
