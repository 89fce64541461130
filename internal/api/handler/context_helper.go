package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Joechristian9/SituationalReport-sub000/internal/api/middleware"
	"github.com/Joechristian9/SituationalReport-sub000/internal/service"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/jwt"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/response"
)

// MustGetActor reads the authenticated actor set by JWTAuth.
// On failure it writes 401 and the caller should return.
func MustGetActor(c *gin.Context) (service.Actor, bool) {
	id := c.GetString(middleware.ContextUserID)
	role := c.GetString(middleware.ContextRole)
	if id == "" || role == "" {
		response.Unauthorized(c, codeUnauthorized, "not authenticated")
		return service.Actor{}, false
	}
	return service.Actor{
		ID:   id,
		Name: c.GetString(middleware.ContextName),
		Role: role,
	}, true
}

// MustGetClaims reads the parsed token claims set by JWTAuth
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(middleware.ContextClaims)
	if !exists {
		response.Unauthorized(c, codeUnauthorized, "not authenticated")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, codeUnauthorized, "not authenticated")
		return nil, false
	}
	return claims, true
}

// MustGetUintParam parses a positive numeric path parameter; writes 400 otherwise
func MustGetUintParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		response.BadRequest(c, codeBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(n), true
}

// MustGetYearParam parses the :year path parameter
func MustGetYearParam(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		response.BadRequest(c, codeBadRequest, "invalid year")
		return 0, false
	}
	return year, true
}
