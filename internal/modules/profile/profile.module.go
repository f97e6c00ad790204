package profile

import (
	"habilitations-core/internal/modules/profile/controllers"
	"habilitations-core/internal/modules/profile/services"
	authMiddleware "habilitations-core/internal/shared/middleware/auth"
	"habilitations-core/internal/shared/permissions"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(services.NewProfileService),
	fx.Provide(controllers.NewProfileController),
	fx.Invoke(RegisterProfileRoutes),
)

func RegisterProfileRoutes(
	r *gin.Engine,
	ctrl *controllers.ProfileController,
	authStack *authMiddleware.AuthMiddlewareStack,
) {
	api := r.Group("/profile")
	{
		// Lectures
		api.GET("/profiles", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.ViewProfils), ctrl.ListProfiles)...)
		api.GET("/profilesWithPermissions", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.ViewProfils), ctrl.ListProfilesWithPermissions)...)
		api.GET("/profile/:id", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.ViewProfils), ctrl.GetProfile)...)
		api.GET("/profilePermissions/:id", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.ViewProfils), ctrl.GetProfilePermissions)...)
		api.GET("/userProfiles/:id", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.ViewProfils), ctrl.GetUserProfiles)...)
		api.GET("/permissionGroups", authMiddleware.With(authMiddleware.Protected(authStack), ctrl.PermissionGroups)...)

		// Mutations
		api.POST("/profile", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.CreateProfils), ctrl.CreateProfile)...)
		api.PUT("/profile", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.UpdateProfils), ctrl.UpdateProfile)...)
		api.DELETE("/profile/:id", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.DeleteProfils), ctrl.DeleteProfile)...)
		api.PUT("/profilePermissions", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.UpdateProfilPermissions), ctrl.ReplaceProfilePermissions)...)
		api.PUT("/userProfiles", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.UpdateUserProfils), ctrl.ReplaceUserProfiles)...)
	}
}
