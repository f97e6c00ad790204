package app

import (
	"habilitations-core/internal/app/config"
	"habilitations-core/internal/shared/middleware/core"
	"habilitations-core/internal/shared/middleware/logging"
	"habilitations-core/internal/shared/middleware/security"

	"github.com/gin-gonic/gin"
)

// NewRouter crée le moteur Gin avec les middlewares globaux ;
// les modules enregistrent leurs routes via fx.Invoke
func NewRouter(
	cfg *config.Config,
	accessLog logging.AccessLogHandler,
	recovery core.RecoveryHandler,
	cors security.CORSHandler,
) *gin.Engine {
	configureGinMode(cfg.Environment)

	// Create router without default middleware for custom configuration
	r := gin.New()
	r.HandleMethodNotAllowed = false

	// Ordre : identifiant de requête et log d'accès, puis recovery, puis CORS
	r.Use(gin.HandlerFunc(accessLog))
	r.Use(gin.HandlerFunc(recovery))
	r.Use(gin.HandlerFunc(cors))

	return r
}

// configureGinMode configure le mode Gin selon l'environnement
func configureGinMode(environment string) {
	switch environment {
	case "production", "docker", "staging":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		// Mode debug par défaut pour développement local
		gin.SetMode(gin.DebugMode)
	}
}
