package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Joechristian9/SituationalReport-sub000/pkg/jwt"
	"github.com/Joechristian9/SituationalReport-sub000/pkg/response"
)

// Context keys set by JWTAuth
const (
	ContextUserID = "user_id"
	ContextName   = "name"
	ContextRole   = "role"
	ContextClaims = "claims"
)

// RevocationChecker reports whether a token id was revoked at logout
type RevocationChecker interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth validates the Bearer access token and injects the actor.
// A nil checker skips the blacklist lookup.
func JWTAuth(jwtMgr *jwt.Manager, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token is invalid or expired")
			c.Abort()
			return
		}

		if revoked != nil {
			// Redis errors fail closed; a revoked token must never pass
			blacklisted, err := revoked.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil || blacklisted {
				response.Unauthorized(c, 10002, "token has been revoked")
				c.Abort()
				return
			}
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextName, claims.Name)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

// RoleAuth allows only the listed roles
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			response.Unauthorized(c, 10002, "not authenticated")
			c.Abort()
			return
		}

		for _, r := range allowedRoles {
			if role == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "insufficient permissions")
		c.Abort()
	}
}
