package bootstrap

import (
	"context"
	"fmt"
	"time"

	"habilitations-core/internal/infrastructure/database/migrations"
	pgInfra "habilitations-core/internal/infrastructure/database/postgres"

	"go.uber.org/zap"
)

// MigrationManager applique les migrations goose embarquées
type MigrationManager struct {
	apply  func(ctx context.Context) error
	logger *zap.Logger
}

func NewMigrationManager(pgClient *pgInfra.Client, logger *zap.Logger) *MigrationManager {
	return &MigrationManager{
		apply: func(ctx context.Context) error {
			return migrations.Up(ctx, pgClient.Pool())
		},
		logger: logger,
	}
}

// EnsureMigrationsApplied applique les migrations en attente ; sans effet si le schéma est à jour
func (mm *MigrationManager) EnsureMigrationsApplied(ctx context.Context) error {
	start := time.Now()
	mm.logger.Info("[MIGRATIONS] application des migrations en attente")

	if err := mm.apply(ctx); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	mm.logger.Info("[MIGRATIONS] schéma à jour", zap.Duration("duration", time.Since(start)))
	return nil
}
