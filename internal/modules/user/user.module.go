package user

import (
	"habilitations-core/internal/modules/user/controllers"
	"habilitations-core/internal/modules/user/services"
	authMiddleware "habilitations-core/internal/shared/middleware/auth"
	"habilitations-core/internal/shared/permissions"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(services.NewUserService),
	fx.Provide(services.NewLoggingService),
	fx.Provide(NewActivityRecorder),
	fx.Provide(controllers.NewUserController),
	fx.Invoke(RegisterUserRoutes),
)

// NewActivityRecorder expose l'horodatage des connexions au middleware de session
func NewActivityRecorder(users *services.UserService) authMiddleware.ActivityRecorder {
	return users
}

func RegisterUserRoutes(
	r *gin.Engine,
	ctrl *controllers.UserController,
	authStack *authMiddleware.AuthMiddlewareStack,
) {
	api := r.Group("/user")
	{
		api.GET("/users", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.ViewUsers), ctrl.ListUsers)...)
		api.GET("/usersWithProfiles", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.ViewUsers), ctrl.ListUsersWithProfiles)...)
		api.GET("/user/:id", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.ViewUsers), ctrl.GetUser)...)

		api.POST("/user", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.CreateUsers), ctrl.CreateUser)...)
		api.PUT("/user", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.UpdateUsers), ctrl.UpdateUser)...)
		api.DELETE("/user/:id", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.DeleteUsers), ctrl.DeleteUser)...)
		api.PUT("/changeUserStatus", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.UpdateUsers), ctrl.ChangeUserStatus)...)

		api.POST("/userLoggings", authMiddleware.With(authMiddleware.RequirePermission(authStack, permissions.ViewLoggings), ctrl.SearchLoggings)...)
	}
}
