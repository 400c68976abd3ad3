package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/dorado/internal/logging"
	"github.com/Domenick1991/dorado/internal/security"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"

	requestIDKey = "request_id"
	loggerKey    = "logger"
)

// RequestLogger tags every request with an id (taken from X-Request-ID when
// the client sent one) and logs it once it completes.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Set(requestIDKey, id)

		reqLog := log.With("request_id", id)
		c.Set(loggerKey, reqLog)

		start := time.Now()
		c.Next()

		reqLog.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func loggerFrom(c *gin.Context) logging.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(logging.Logger); ok {
			return l
		}
	}
	return logging.Nop()
}

// AuthMiddleware rejects anonymous callers with 401 before any handler runs.
func AuthMiddleware(tokens security.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := security.Authenticate(tokens, c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Request = c.Request.WithContext(security.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}
