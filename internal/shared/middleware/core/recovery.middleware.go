package core

import (
	"net/http"
	"runtime"

	"habilitations-core/internal/shared/middleware/logging"
	"habilitations-core/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryHandler type spécifique pour Fx
type RecoveryHandler gin.HandlerFunc

// RecoveryMiddleware capture les panics et répond avec l'enveloppe standard
func RecoveryMiddleware(logger *zap.Logger) RecoveryHandler {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				stack := make([]byte, 4096)
				n := runtime.Stack(stack, false)

				logger.Error("[HTTP] panic récupérée",
					zap.Any("error", err),
					zap.ByteString("stack", stack[:n]),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("client_ip", c.ClientIP()),
					zap.String("request_id", logging.RequestID(c)),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, response.Envelope(c, nil, response.MsgGenericError))
			}
		}()
		c.Next()
	}
}
