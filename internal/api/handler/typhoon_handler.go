package handler

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Joechristian9/SituationalReport-sub000/internal/dto"
	"github.com/Joechristian9/SituationalReport-sub000/internal/service"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TyphoonHandler typhoon lifecycle, final report and export
type TyphoonHandler struct {
	typhoonSvc  service.TyphoonService
	snapshotSvc service.SnapshotService
	exportSvc   service.ExportService
}

// NewTyphoonHandler creates a TyphoonHandler
func NewTyphoonHandler(typhoonSvc service.TyphoonService, snapshotSvc service.SnapshotService, exportSvc service.ExportService) *TyphoonHandler {
	return &TyphoonHandler{typhoonSvc: typhoonSvc, snapshotSvc: snapshotSvc, exportSvc: exportSvc}
}

// ListTyphoons newest first
// GET /api/v1/typhoons
func (h *TyphoonHandler) ListTyphoons(c *gin.Context) {
	list, err := h.typhoonSvc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, gin.H{"list": list})
}

// GetActive the open typhoon, if any
// GET /api/v1/typhoons/active
func (h *TyphoonHandler) GetActive(c *gin.Context) {
	result, err := h.typhoonSvc.Active(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, result)
}

// GetTyphoon typhoon details
// GET /api/v1/typhoons/:id
func (h *TyphoonHandler) GetTyphoon(c *gin.Context) {
	id, ok := MustGetUintParam(c, "id")
	if !ok {
		return
	}

	t, err := h.typhoonSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, t)
}

// CreateTyphoon opens a new typhoon
// POST /api/v1/typhoons
func (h *TyphoonHandler) CreateTyphoon(c *gin.Context) {
	var req dto.CreateTyphoonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	t, err := h.typhoonSvc.Create(c.Request.Context(), &req, actor)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Created(c, t)
}

// UpdateTyphoon rename or re-describe
// PUT /api/v1/typhoons/:id
func (h *TyphoonHandler) UpdateTyphoon(c *gin.Context) {
	id, ok := MustGetUintParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateTyphoonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	t, err := h.typhoonSvc.Update(c.Request.Context(), id, &req, actor)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, t)
}

// PauseTyphoon suspends data entry
// POST /api/v1/typhoons/:id/pause
func (h *TyphoonHandler) PauseTyphoon(c *gin.Context) {
	h.transition(c, h.typhoonSvc.Pause)
}

// ResumeTyphoon reopens data entry; rows entered before now are hidden from listings
// POST /api/v1/typhoons/:id/resume
func (h *TyphoonHandler) ResumeTyphoon(c *gin.Context) {
	h.transition(c, h.typhoonSvc.Resume)
}

type typhoonTransition func(ctx context.Context, id uint, actor service.Actor) (*dto.TyphoonResponse, error)

func (h *TyphoonHandler) transition(c *gin.Context, fn typhoonTransition) {
	id, ok := MustGetUintParam(c, "id")
	if !ok {
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	t, err := fn(c.Request.Context(), id, actor)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, t)
}

// EndTyphoon closes the typhoon and renders its final report.
// A render failure is reported in the body; the typhoon is ended regardless.
// POST /api/v1/typhoons/:id/end
func (h *TyphoonHandler) EndTyphoon(c *gin.Context) {
	id, ok := MustGetUintParam(c, "id")
	if !ok {
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	result, err := h.typhoonSvc.End(c.Request.Context(), id, actor)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, result)
}

// DeleteTyphoon removes a typhoon that has no report records
// DELETE /api/v1/typhoons/:id
func (h *TyphoonHandler) DeleteTyphoon(c *gin.Context) {
	id, ok := MustGetUintParam(c, "id")
	if !ok {
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.typhoonSvc.Delete(c.Request.Context(), id, actor); err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, nil)
}

// DownloadReport streams the stored final report
// GET /api/v1/typhoons/:id/report
func (h *TyphoonHandler) DownloadReport(c *gin.Context) {
	id, ok := MustGetUintParam(c, "id")
	if !ok {
		return
	}

	rc, filename, err := h.snapshotSvc.OpenReport(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		_ = c.Error(err)
	}
}

// RegenerateReport renders the final report again for an ended typhoon
// POST /api/v1/typhoons/:id/report
func (h *TyphoonHandler) RegenerateReport(c *gin.Context) {
	id, ok := MustGetUintParam(c, "id")
	if !ok {
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	result, err := h.typhoonSvc.RegenerateReport(c.Request.Context(), id, actor)
	if err != nil {
		writeError(c, err)
		return
	}

	response.OK(c, result)
}

// ExportTyphoon workbook of every entity recorded for the typhoon
// GET /api/v1/typhoons/:id/export
func (h *TyphoonHandler) ExportTyphoon(c *gin.Context) {
	id, ok := MustGetUintParam(c, "id")
	if !ok {
		return
	}

	buf, filename, err := h.exportSvc.ExportTyphoon(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	sendWorkbook(c, filename, buf.Bytes())
}

func sendWorkbook(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
