package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"candlepin/src/app/http/response"
)

// Recovery turns a panic into a 500 and logs the stack. Install it first.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			requestID := GetRequestID(c)
			log.Error("panic recovered",
				"request_id", requestID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"panic", rec,
				"stack", string(debug.Stack()),
			)
			response.InternalError(c, requestID)
			c.Abort()
		}()

		c.Next()
	}
}
