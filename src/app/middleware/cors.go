package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS adds permissive CORS headers and answers OPTIONS preflight requests.
func CORS() gin.HandlerFunc {
	const (
		allowedOrigin  = "*"
		allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		allowedHeaders = "Authorization, Content-Type, " + RequestIDHeader
		exposedHeaders = RequestIDHeader
		maxAge         = "600"
	)

	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowedOrigin)
		c.Header("Access-Control-Allow-Methods", allowedMethods)
		c.Header("Access-Control-Allow-Headers", allowedHeaders)
		c.Header("Access-Control-Expose-Headers", exposedHeaders)
		c.Header("Access-Control-Max-Age", maxAge)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
