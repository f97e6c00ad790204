package logging

import (
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	RequestIDHeader = "X-Request-Id"
	requestIDKey    = "request_id"
)

// AccessLogHandler type spécifique pour Fx
type AccessLogHandler gin.HandlerFunc

// DefaultSkipPaths chemins à ignorer par le logger
func DefaultSkipPaths() []string {
	return []string{
		"/health",
		"/ready",
		"/favicon.ico",
	}
}

// NewAccessLogger identifiant de requête puis une ligne zap par requête
func NewAccessLogger(logger *zap.Logger) AccessLogHandler {
	return newAccessLogger(logger.Named("http"), DefaultSkipPaths())
}

func newAccessLogger(logger *zap.Logger, skipPaths []string) AccessLogHandler {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if slices.Contains(skipPaths, path) {
			return
		}

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", requestID),
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			fields = append(fields, zap.String("errors", errs))
		}

		switch {
		case status >= 500:
			logger.Error("[GIN]", fields...)
		case status >= 400:
			logger.Warn("[GIN]", fields...)
		default:
			logger.Info("[GIN]", fields...)
		}
	}
}

// RequestID identifiant attribué par le logger d'accès
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
