package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// maxLoggedBody caps how much of a request or response body ends up in a log line.
const maxLoggedBody = 2048

// Logging emits one line per request with its status, latency and bodies.
// Bodies of credential-bearing and binary endpoints are never captured.
func Logging(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		capture := capturesBody(path)

		var reqBodyBytes []byte
		if capture && c.Request.Body != nil {
			reqBodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(reqBodyBytes))
		}

		rec := &responseCapture{ResponseWriter: c.Writer, enabled: capture}
		c.Writer = rec

		c.Next()

		api := path
		if query != "" {
			api = api + "?" + query
		}

		status := c.Writer.Status()
		attrs := []any{
			"request_id", GetRequestID(c),
			"method", c.Request.Method,
			"path", api,
			"status", status,
			"latency", time.Since(start),
		}
		if p, ok := PrincipalName(c); ok {
			attrs = append(attrs, "principal", p)
		}
		if capture {
			attrs = append(attrs,
				"request", truncate(string(reqBodyBytes)),
				"response", truncate(rec.body.String()),
			)
		}

		switch {
		case status >= 500:
			log.Error("http request", attrs...)
		case status >= 400:
			log.Warn("http request", attrs...)
		default:
			log.Info("http request", attrs...)
		}
	}
}

func capturesBody(path string) bool {
	if strings.Contains(path, "/users") {
		return false
	}
	if strings.HasSuffix(path, "/export") {
		return false
	}
	return true
}

func truncate(s string) string {
	if len(s) <= maxLoggedBody {
		return s
	}
	return s[:maxLoggedBody] + "..."
}

// responseCapture captures the response body while delegating to the original writer.
type responseCapture struct {
	gin.ResponseWriter
	body    bytes.Buffer
	enabled bool
}

func (r *responseCapture) Write(b []byte) (int, error) {
	if r.enabled {
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseCapture) WriteString(s string) (int, error) {
	if r.enabled {
		r.body.WriteString(s)
	}
	return r.ResponseWriter.WriteString(s)
}
