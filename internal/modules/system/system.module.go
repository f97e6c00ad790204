package system

import (
	"habilitations-core/internal/modules/system/controllers"
	"habilitations-core/internal/modules/system/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

// Module regroupe tous les providers du domaine System
var Module = fx.Options(
	fx.Provide(services.NewSystemService),
	fx.Provide(controllers.NewSystemController),
	fx.Invoke(RegisterSystemRoutes),
)

// RegisterSystemRoutes routes publiques de supervision
func RegisterSystemRoutes(r *gin.Engine, ctrl *controllers.SystemController) {
	r.GET("/health", ctrl.Health)
	r.GET("/ready", ctrl.Ready)
}
