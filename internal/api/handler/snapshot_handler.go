package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Joechristian9/SituationalReport-sub000/internal/service"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/response"
)

// SnapshotHandler aggregated report data for a typhoon or a year
type SnapshotHandler struct {
	snapshotSvc service.SnapshotService
	exportSvc   service.ExportService
}

// NewSnapshotHandler creates a SnapshotHandler
func NewSnapshotHandler(snapshotSvc service.SnapshotService, exportSvc service.ExportService) *SnapshotHandler {
	return &SnapshotHandler{snapshotSvc: snapshotSvc, exportSvc: exportSvc}
}

// TyphoonSnapshot GET /api/v1/snapshots/typhoons/:id
func (h *SnapshotHandler) TyphoonSnapshot(c *gin.Context) {
	id, ok := MustGetUintParam(c, "id")
	if !ok {
		return
	}

	snap, err := h.snapshotSvc.GatherForTyphoon(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, snap)
}

// YearSnapshot GET /api/v1/snapshots/years/:year
func (h *SnapshotHandler) YearSnapshot(c *gin.Context) {
	year, ok := MustGetYearParam(c)
	if !ok {
		return
	}

	snap, err := h.snapshotSvc.GatherForYear(c.Request.Context(), year)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, snap)
}

// YearReport annual summary as PDF
// GET /api/v1/snapshots/years/:year/pdf
func (h *SnapshotHandler) YearReport(c *gin.Context) {
	year, ok := MustGetYearParam(c)
	if !ok {
		return
	}

	data, filename, err := h.snapshotSvc.RenderYear(c.Request.Context(), year)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, "application/pdf", data)
}

// ExportYear GET /api/v1/snapshots/years/:year/export
func (h *SnapshotHandler) ExportYear(c *gin.Context) {
	year, ok := MustGetYearParam(c)
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportYear(c.Request.Context(), year)
	if err != nil {
		writeError(c, err)
		return
	}

	sendWorkbook(c, filename, buf.Bytes())
}
