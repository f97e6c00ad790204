package database

import (
	"habilitations-core/internal/infrastructure/database/mongodb"
	"habilitations-core/internal/infrastructure/database/postgres"
	"habilitations-core/internal/infrastructure/database/redis"

	"go.uber.org/fx"
)

var Module = fx.Options(
	// Modules database
	postgres.Module,
	redis.Module,
	mongodb.Module,
)
