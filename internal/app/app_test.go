package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"habilitations-core/internal/app/config"
	"habilitations-core/internal/shared/middleware/core"
	"habilitations-core/internal/shared/middleware/logging"
	"habilitations-core/internal/shared/middleware/security"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func TestAppModule_GraphIsComplete(t *testing.T) {
	err := fx.ValidateApp(AppModule, fx.NopLogger)
	assert.NoError(t, err)
}

func TestNewRouter_GlobalMiddlewares(t *testing.T) {
	cfg := &config.Config{
		Environment: "test",
		CORS:        config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
	logger := zap.NewNop()

	r := NewRouter(cfg, logging.NewAccessLogger(logger), core.RecoveryMiddleware(logger), security.CORSMiddleware(cfg))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, w.Header().Get(logging.RequestIDHeader))
}
