package security

import (
	"time"

	"habilitations-core/internal/app/config"
	"habilitations-core/internal/shared/middleware/logging"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSHandler type spécifique pour Fx
type CORSHandler gin.HandlerFunc

// CORSMiddleware origines explicites : le cookie de session exige les credentials
func CORSMiddleware(appConfig *config.Config) CORSHandler {
	corsConfig := appConfig.GetCORS()

	return CORSHandler(cors.New(cors.Config{
		AllowOrigins:     corsConfig.AllowedOrigins,
		AllowMethods:     corsConfig.AllowedMethods,
		AllowHeaders:     append(corsConfig.AllowedHeaders, logging.RequestIDHeader),
		ExposeHeaders:    []string{"Content-Length", logging.RequestIDHeader},
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           time.Duration(corsConfig.MaxAge) * time.Second,
	}))
}
