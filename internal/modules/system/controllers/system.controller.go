package controllers

import (
	"net/http"

	"habilitations-core/internal/modules/system/services"

	"github.com/gin-gonic/gin"
)

type SystemController struct {
	service *services.SystemService
}

func NewSystemController(service *services.SystemService) *SystemController {
	return &SystemController{
		service: service,
	}
}

// Health - GET /health : le processus répond, avec l'état des dépendances
func (c *SystemController) Health(ctx *gin.Context) {
	report, _ := c.service.Check(ctx.Request.Context())
	ctx.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}

// Ready - GET /ready : 503 tant qu'une dépendance requise est injoignable
func (c *SystemController) Ready(ctx *gin.Context) {
	report, ready := c.service.Check(ctx.Request.Context())
	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, gin.H{"success": ready, "data": report})
}
