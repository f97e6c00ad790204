package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"habilitations-core/internal/app/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Application serveur HTTP piloté par le lifecycle fx
type Application struct {
	config *config.Config
	router *gin.Engine
	server *http.Server
	logger *zap.Logger
}

// NewApplication crée une nouvelle instance de l'application
func NewApplication(cfg *config.Config, router *gin.Engine, logger *zap.Logger) *Application {
	return &Application{
		config: cfg,
		router: router,
		logger: logger,
	}
}

// Start démarre l'application avec lifecycle Fx
func (a *Application) Start(lc fx.Lifecycle, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			serverConfig := a.config.GetServer()
			addr := fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port)

			a.server = &http.Server{
				Addr:         addr,
				Handler:      a.router,
				ReadTimeout:  serverConfig.ReadTimeout,
				WriteTimeout: serverConfig.WriteTimeout,
			}

			// Écoute synchrone : un port occupé fait échouer le démarrage
			listener, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("écoute sur %s: %w", addr, err)
			}

			go func() {
				if err := a.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
					a.logger.Error("[SERVER] arrêt inattendu du serveur HTTP", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()

			a.logger.Info("[SERVER] serveur HTTP démarré",
				zap.String("addr", addr),
				zap.String("env", a.config.Environment),
			)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if a.server == nil {
				return nil
			}
			a.logger.Info("[SERVER] arrêt du serveur HTTP")

			shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()

			if err := a.server.Shutdown(shutdownCtx); err != nil {
				a.logger.Warn("[SERVER] arrêt forcé", zap.Error(err))
				return err
			}

			a.logger.Info("[SERVER] serveur arrêté proprement")
			return nil
		},
	})
}

// IsDevelopment indique si l'application est en mode développement
func (a *Application) IsDevelopment() bool {
	return a.config.IsDevelopment()
}
