package auth

import (
	"context"
	"time"

	"habilitations-core/internal/app/config"
	"habilitations-core/internal/modules/auth/controllers"
	"habilitations-core/internal/modules/auth/services"
	authMiddleware "habilitations-core/internal/shared/middleware/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module regroupe tous les providers du domaine Auth
var Module = fx.Options(
	// Sessions
	fx.Provide(services.NewSessionService),
	fx.Provide(services.NewSessionCookie),
	fx.Provide(services.NewSessionManager),
	fx.Provide(NewMiddlewareSessionManager),

	// Connexion et autorisation
	fx.Provide(services.NewLoginThrottle),
	fx.Provide(services.NewAuthorizationService),
	fx.Provide(NewAuthorizer),
	fx.Provide(services.NewAuthService),

	// Controllers
	fx.Provide(controllers.NewAuthController),

	fx.Invoke(RegisterAuthRoutes),
	fx.Invoke(RegisterSessionJanitor),
)

func NewMiddlewareSessionManager(m *services.SessionManager) authMiddleware.SessionManager {
	return m
}

func NewAuthorizer(s *services.AuthorizationService) authMiddleware.Authorizer {
	return s
}

// RegisterAuthRoutes routes publiques : vérification souple uniquement
func RegisterAuthRoutes(
	r *gin.Engine,
	authController *controllers.AuthController,
	authStack *authMiddleware.AuthMiddlewareStack,
) {
	authAPI := r.Group("/user")
	authAPI.Use(authMiddleware.Soft(authStack)...)
	{
		authAPI.GET("/session", authController.Session)
		authAPI.POST("/auth", authController.Login)
		authAPI.GET("/logout", authController.Logout)
	}
}

// RegisterSessionJanitor purge périodiquement les sessions expirées de PostgreSQL
func RegisterSessionJanitor(
	lc fx.Lifecycle,
	store *services.SessionService,
	sessionConfig *config.SessionConfig,
	logger *zap.Logger,
) {
	interval := sessionConfig.CleanupInterval
	if interval <= 0 {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(interval)
				defer ticker.Stop()

				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						purged, err := store.CleanExpired(ctx)
						if err != nil {
							logger.Warn("[SESSION] purge des sessions expirées échouée", zap.Error(err))
							continue
						}
						if purged > 0 {
							logger.Info("[SESSION] sessions expirées purgées", zap.Int64("count", purged))
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
