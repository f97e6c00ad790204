package bootstrap

import (
	"context"
	"fmt"

	"habilitations-core/internal/infrastructure/database/seeds"

	"go.uber.org/zap"
)

// SeedingManager crée les données initiales manquantes
type SeedingManager struct {
	seedService seeds.SeedingService
	logger      *zap.Logger
}

func NewSeedingManager(seedService seeds.SeedingService, logger *zap.Logger) *SeedingManager {
	return &SeedingManager{
		seedService: seedService,
		logger:      logger,
	}
}

// CheckSeedDataExists vérifie quelles données de seeding existent déjà
func (sm *SeedingManager) CheckSeedDataExists(ctx context.Context) (*seeds.SeedDataStatus, error) {
	status, err := sm.seedService.CheckSeedDataExists(ctx)
	if err != nil {
		return nil, fmt.Errorf("erreur vérification données seeding: %w", err)
	}

	sm.logger.Info("[SEEDING] état des données initiales",
		zap.Bool("super_admin", status.SuperAdminExists),
		zap.Bool("pass_params", status.PolicyExists),
		zap.Bool("user_pass", status.PasswordExists),
		zap.Bool("profil", status.ProfileExists),
		zap.Bool("user_profil", status.AssignmentExists),
	)
	return status, nil
}

// ApplySeeding ne fait rien si tout est présent
func (sm *SeedingManager) ApplySeeding(ctx context.Context, status *seeds.SeedDataStatus) error {
	if status.AllDataExists {
		sm.logger.Info("[SEEDING] toutes les données initiales sont présentes")
		return nil
	}

	sm.logger.Info("[SEEDING] données manquantes", zap.Strings("missing", status.GetMissingSeeds()))
	if err := sm.seedService.SeedSuperAdmin(ctx); err != nil {
		return fmt.Errorf("seeding super administrateur: %w", err)
	}
	return nil
}
