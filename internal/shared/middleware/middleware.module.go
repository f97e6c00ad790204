package middleware

import (
	"habilitations-core/internal/shared/middleware/auth"
	"habilitations-core/internal/shared/middleware/core"
	"habilitations-core/internal/shared/middleware/logging"
	"habilitations-core/internal/shared/middleware/security"
	"habilitations-core/internal/shared/validation"

	"go.uber.org/fx"
)

// Module regroupe tous les providers des middlewares
var Module = fx.Options(
	// Middlewares globaux
	fx.Provide(logging.NewAccessLogger),
	fx.Provide(core.RecoveryMiddleware),
	fx.Provide(security.CORSMiddleware),

	// Middlewares d'authentification
	fx.Provide(auth.NewSessionMiddleware),
	fx.Provide(auth.NewAuthMiddlewareStack),

	// Validation des corps de requête
	fx.Provide(validation.New),
)
