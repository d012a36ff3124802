package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ContextKeyRequestID = "request_id"

// RequestID injects an X-Request-ID header into the request and response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger logs each HTTP request with method, route, status, latency and, for
// per-user routes, the user id from the path.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		requestID, _ := c.Get(ContextKeyRequestID)
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		user := c.Param("userId")
		if user == "" {
			user = "-"
		}
		log.Printf("[%s] %s %s user=%s %d %s",
			requestID,
			c.Request.Method,
			path,
			user,
			c.Writer.Status(),
			latency,
		)
	}
}

// Recovery recovers from panics, logs them with the request id and returns a
// 500 in the standard error envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID, _ := c.Get(ContextKeyRequestID)
		log.Printf("[%s] panic recovered: %v", requestID, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "an internal error occurred",
			"code":      "INTERNAL_ERROR",
			"retryable": false,
		})
	})
}
