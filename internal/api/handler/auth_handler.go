package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Joechristian9/SituationalReport-sub000/internal/dto"
	"github.com/Joechristian9/SituationalReport-sub000/internal/service"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/response"
)

// AuthHandler authentication endpoints
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login email and password login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout revokes the current access token
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, nil)
}

// Me the current account
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	user, err := h.authSvc.Me(c.Request.Context(), actor.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, user)
}
