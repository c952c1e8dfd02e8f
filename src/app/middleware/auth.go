package middleware

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"candlepin/src/app/http/response"
	"candlepin/src/core/domain"
	"candlepin/src/core/usecase"
)

// PrincipalKey is the gin context key holding the authenticated principal.
const PrincipalKey = "principal"

// Authenticator checks a username and password pair.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*usecase.Principal, error)
}

// BasicAuth requires HTTP basic credentials and stores the resulting
// principal in both the gin context and the request context.
func BasicAuth(auth Authenticator, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := GetRequestID(c)

		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="candlepin"`)
			response.Unauthorized(c, "missing basic credentials", requestID)
			c.Abort()
			return
		}

		p, err := auth.Authenticate(c.Request.Context(), username, password)
		if err != nil {
			if !domain.IsUnauthorized(err) && !domain.IsNotFound(err) {
				log.Error("authentication failed", "request_id", requestID, "error", err)
				response.InternalError(c, requestID)
				c.Abort()
				return
			}
			c.Header("WWW-Authenticate", `Basic realm="candlepin"`)
			response.Unauthorized(c, "invalid credentials", requestID)
			c.Abort()
			return
		}

		c.Set(PrincipalKey, p)
		c.Request = c.Request.WithContext(usecase.WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

// SuperAdmin rejects callers whose principal lacks super-admin rights.
// It must run after BasicAuth.
func SuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := Principal(c)
		if !ok {
			response.Unauthorized(c, "not authenticated", GetRequestID(c))
			c.Abort()
			return
		}
		if !p.SuperAdmin {
			response.Forbidden(c, "super admin access required", GetRequestID(c))
			c.Abort()
			return
		}
		c.Next()
	}
}

// Principal returns the authenticated caller, if any.
func Principal(c *gin.Context) (*usecase.Principal, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*usecase.Principal)
	return p, ok && p != nil
}

// PrincipalName returns the authenticated caller's name, if any.
func PrincipalName(c *gin.Context) (string, bool) {
	p, ok := Principal(c)
	if !ok {
		return "", false
	}
	return p.Name, true
}
