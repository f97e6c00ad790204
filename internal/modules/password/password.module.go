package password

import (
	"habilitations-core/internal/app/config"
	"habilitations-core/internal/modules/password/controllers"
	"habilitations-core/internal/modules/password/services"
	authMiddleware "habilitations-core/internal/shared/middleware/auth"
	"habilitations-core/internal/shared/permissions"
	"habilitations-core/internal/shared/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewHasher),
	fx.Provide(services.NewCredentialService),
	fx.Provide(services.NewPolicyService),
	fx.Provide(services.NewPasswordService),
	fx.Provide(controllers.NewPasswordController),
	fx.Invoke(RegisterPasswordRoutes),
)

// NewHasher bcrypt borné par HASH_CONCURRENCY
func NewHasher(security *config.SecurityConfig) *utils.Hasher {
	return utils.NewHasher(security.BcryptCost, security.HashConcurrency)
}

func RegisterPasswordRoutes(
	r *gin.Engine,
	ctrl *controllers.PasswordController,
	authStack *authMiddleware.AuthMiddlewareStack,
) {
	api := r.Group("/password")
	{
		api.GET("/passParam", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.ViewPassParams), ctrl.GetPassParam)...)
		api.PUT("/passParam", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.UpdatePassParams), ctrl.UpdatePassParam)...)
		api.POST("/userPass", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.UpdateUsers), ctrl.ResetUserPass)...)

		// Changement par l'utilisateur lui-même, y compris mot de passe initial ou expiré
		api.PUT("/userPass", authMiddleware.With(authMiddleware.Soft(authStack), ctrl.ChangeOwnPass)...)
	}
}
