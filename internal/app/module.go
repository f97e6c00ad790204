package app

import (
	"habilitations-core/internal/app/bootstrap"
	"habilitations-core/internal/app/config"
	"habilitations-core/internal/infrastructure/database"
	"habilitations-core/internal/infrastructure/logger"
	"habilitations-core/internal/modules/auth"
	"habilitations-core/internal/modules/password"
	"habilitations-core/internal/modules/profile"
	"habilitations-core/internal/modules/system"
	"habilitations-core/internal/modules/user"
	"habilitations-core/internal/shared/middleware"

	"go.uber.org/fx"
)

// ConfigModule configuration et sous-configurations injectées
var ConfigModule = fx.Options(
	fx.Provide(config.NewConfig),
	fx.Provide(config.NewPostgresConfig),
	fx.Provide(config.NewRedisConfig),
	fx.Provide(config.NewMongoConfig),
	fx.Provide(config.NewSessionConfig),
	fx.Provide(config.NewSuperAdminConfig),
	fx.Provide(config.NewSecurityConfig),
)

var AppModule = fx.Options(
	// Configuration (doit être fournie en premier)
	ConfigModule,

	// Infrastructure
	logger.Module,
	database.Module,

	// Middlewares partagés (après infrastructure, avant modules métier)
	middleware.Module,

	// Router
	fx.Provide(NewRouter),

	// Modules métier
	password.Module,
	profile.Module,
	user.Module,
	auth.Module,
	system.Module,

	// Migrations et super administrateur avant l'ouverture du port
	bootstrap.Module,

	// Application
	fx.Provide(NewApplication),
	fx.Invoke((*Application).Start),
)
