package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Joechristian9/SituationalReport-sub000/internal/service"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/response"
)

// ModificationHandler field change history
type ModificationHandler struct {
	modificationSvc service.ModificationService
}

// NewModificationHandler creates a ModificationHandler
func NewModificationHandler(modificationSvc service.ModificationService) *ModificationHandler {
	return &ModificationHandler{modificationSvc: modificationSvc}
}

// History GET /api/v1/modifications/:model
func (h *ModificationHandler) History(c *gin.Context) {
	result, err := h.modificationSvc.History(c.Request.Context(), c.Param("model"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, result)
}
