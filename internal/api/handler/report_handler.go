package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Joechristian9/SituationalReport-sub000/internal/dto"
	"github.com/Joechristian9/SituationalReport-sub000/internal/service"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/response"
)

// ReportHandler report entity ingestion and listing
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler creates a ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Catalog every report entity with its columns
// GET /api/v1/reports
func (h *ReportHandler) Catalog(c *gin.Context) {
	response.OK(c, gin.H{"list": h.reportSvc.Catalog()})
}

// BulkSubmit creates or updates many rows of one entity. The whole batch is
// validated before any write; replace-mode entities are rewritten in one
// transaction, others row by row, so rows saved before a failure are kept
// POST /api/v1/reports/:entity
func (h *ReportHandler) BulkSubmit(c *gin.Context) {
	var req dto.BulkSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	result, err := h.reportSvc.BulkSubmit(c.Request.Context(), c.Param("entity"), req.Rows, actor)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, result)
}

// UpdateRow edits one row
// PUT /api/v1/reports/:entity/:id
func (h *ReportHandler) UpdateRow(c *gin.Context) {
	id, ok := MustGetUintParam(c, "id")
	if !ok {
		return
	}

	var row map[string]any
	if err := c.ShouldBindJSON(&row); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	result, err := h.reportSvc.UpdateRow(c.Request.Context(), c.Param("entity"), id, row, actor)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, result)
}

// GetRow one row
// GET /api/v1/reports/:entity/:id
func (h *ReportHandler) GetRow(c *gin.Context) {
	id, ok := MustGetUintParam(c, "id")
	if !ok {
		return
	}

	row, err := h.reportSvc.GetRow(c.Request.Context(), c.Param("entity"), id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, row)
}

// ListRows rows of one entity in the requested scope
// GET /api/v1/reports/:entity
func (h *ReportHandler) ListRows(c *gin.Context) {
	var q dto.ReportListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.reportSvc.List(c.Request.Context(), c.Param("entity"), &q)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, result)
}
