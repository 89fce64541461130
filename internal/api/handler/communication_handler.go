package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Joechristian9/SituationalReport-sub000/internal/dto"
	"github.com/Joechristian9/SituationalReport-sub000/internal/service"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/response"
)

// CommunicationServiceHandler reference list of communication services
type CommunicationServiceHandler struct {
	svc service.CommunicationServiceService
}

// NewCommunicationServiceHandler creates a CommunicationServiceHandler
func NewCommunicationServiceHandler(svc service.CommunicationServiceService) *CommunicationServiceHandler {
	return &CommunicationServiceHandler{svc: svc}
}

// List active services, or all with include_inactive=true
// GET /api/v1/communication-services
func (h *CommunicationServiceHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	list, err := h.svc.List(c.Request.Context(), includeInactive)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// Create POST /api/v1/communication-services
func (h *CommunicationServiceHandler) Create(c *gin.Context) {
	var req dto.CreateCommunicationServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	result, err := h.svc.Create(c.Request.Context(), &req, actor)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, result)
}

// Update rename or toggle is_active
// PUT /api/v1/communication-services/:id
func (h *CommunicationServiceHandler) Update(c *gin.Context) {
	id, ok := MustGetUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCommunicationServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	result, err := h.svc.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, result)
}
