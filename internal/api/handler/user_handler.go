package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Joechristian9/SituationalReport-sub000/internal/dto"
	"github.com/Joechristian9/SituationalReport-sub000/internal/service"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/response"
)

// UserHandler account administration
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates a UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// CreateUser admin creates an account
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	user, err := h.userSvc.Create(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, user)
}

// ListUsers one page of accounts
// GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	var q dto.UserListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.userSvc.List(c.Request.Context(), &q)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, result)
}
