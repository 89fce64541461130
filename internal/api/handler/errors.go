package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Joechristian9/SituationalReport-sub000/internal/service"
	pkgerrors "github.com/Joechristian9/SituationalReport-sub000/pkg/errors"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/response"
)

// Response codes by error kind
const (
	codeBadRequest     = 10001
	codeUnauthorized   = 10002
	codeBodyTooLarge   = 10005
	codeValidation     = 20001
	codeConflict       = 20002
	codeInvalidState   = 20003
	codeNotFound       = 20004
	codeBadCredentials = 11001
	codeDisabled       = 11002
	codePersistence    = 50001
	codeRender         = 50002
)

// writeError maps a service error onto the response envelope by kind
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr *pkgerrors.ValidationError
	switch {
	case errors.As(err, &verr):
		response.ErrorWithData(c, http.StatusUnprocessableEntity, codeValidation, "validation failed", gin.H{"fields": verr.Fields})
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, codeBadCredentials, "invalid email or password")
	case errors.Is(err, service.ErrAccountDisabled):
		response.Forbidden(c, codeDisabled, "account is disabled")
	case errors.Is(err, pkgerrors.ErrValidation):
		response.UnprocessableEntity(c, codeValidation, err.Error())
	case errors.Is(err, pkgerrors.ErrConflict):
		response.UnprocessableEntity(c, codeConflict, err.Error())
	case errors.Is(err, pkgerrors.ErrInvalidState):
		response.UnprocessableEntity(c, codeInvalidState, err.Error())
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.NotFound(c, codeNotFound, err.Error())
	case errors.Is(err, pkgerrors.ErrPersistence):
		response.ErrorWithDetails(c, http.StatusInternalServerError, codePersistence, "persistence failure", err.Error())
	case errors.Is(err, pkgerrors.ErrRender):
		response.ErrorWithDetails(c, http.StatusInternalServerError, codeRender, "report generation failed", err.Error())
	default:
		response.InternalError(c)
	}
}

// bindError rejects malformed bodies or query strings
func bindError(c *gin.Context, err error) {
	_ = c.Error(err)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusRequestEntityTooLarge, codeBodyTooLarge, "request body too large")
		return
	}
	response.BadRequest(c, codeBadRequest, "invalid request")
}
