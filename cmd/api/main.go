package main

import (
	"time"

	"habilitations-core/internal/app"
	"habilitations-core/internal/infrastructure/logger"

	"go.uber.org/fx"
)

func main() {
	fx.New(
		app.AppModule,
		logger.WithFxLogger,
		// Les migrations et le seed s'exécutent pendant OnStart
		fx.StartTimeout(6*time.Minute),
	).Run()
}
