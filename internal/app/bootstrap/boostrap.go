package bootstrap

import (
	"context"
	"fmt"
	"time"

	"habilitations-core/internal/infrastructure/database/seeds"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// BootstrapSystem orchestre le démarrage : migrations puis données initiales
type BootstrapSystem struct {
	migrationManager *MigrationManager
	seedingManager   *SeedingManager
	logger           *zap.Logger
	timeout          time.Duration
}

// BootstrapResult contient le résultat d'exécution du bootstrap
type BootstrapResult struct {
	Success        bool          `json:"success"`
	TotalDuration  time.Duration `json:"total_duration"`
	PhasesExecuted []PhaseResult `json:"phases_executed"`
	ErrorMessage   string        `json:"error_message,omitempty"`
}

// PhaseResult contient le résultat d'une phase du bootstrap
type PhaseResult struct {
	Phase       string        `json:"phase"`
	Success     bool          `json:"success"`
	Duration    time.Duration `json:"duration"`
	Description string        `json:"description"`
	Error       string        `json:"error,omitempty"`
}

type phase struct {
	name        string
	description string
	run         func(ctx context.Context) error
}

func NewBootstrapSystem(
	migrationManager *MigrationManager,
	seedingManager *SeedingManager,
	logger *zap.Logger,
) *BootstrapSystem {
	return &BootstrapSystem{
		migrationManager: migrationManager,
		seedingManager:   seedingManager,
		logger:           logger,
		timeout:          5 * time.Minute,
	}
}

// Execute s'arrête à la première phase en échec
func (bs *BootstrapSystem) Execute(ctx context.Context) (*BootstrapResult, error) {
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, bs.timeout)
	defer cancel()

	bs.logger.Info("[BOOTSTRAP] démarrage", zap.Duration("timeout", bs.timeout))

	result := &BootstrapResult{Success: true, PhasesExecuted: []PhaseResult{}}
	for i, p := range bs.phases() {
		phaseResult := bs.executePhase(ctx, p)
		result.PhasesExecuted = append(result.PhasesExecuted, phaseResult)
		if !phaseResult.Success {
			result.Success = false
			result.ErrorMessage = fmt.Sprintf("Phase %d échouée: %s", i+1, phaseResult.Error)
			result.TotalDuration = time.Since(startTime)
			return result, fmt.Errorf("bootstrap failed at phase %d: %s", i+1, phaseResult.Error)
		}
	}

	result.TotalDuration = time.Since(startTime)
	bs.logger.Info("[BOOTSTRAP] terminé", zap.Duration("duration", result.TotalDuration))
	return result, nil
}

func (bs *BootstrapSystem) phases() []phase {
	return []phase{
		{
			name:        "Phase 1: Migrations",
			description: "Migrations goose appliquées",
			run:         bs.migrationManager.EnsureMigrationsApplied,
		},
		{
			name:        "Phase 2: Seeding données",
			description: "Super administrateur, paramétrage et profil réservé",
			run: func(ctx context.Context) error {
				status, err := bs.seedingManager.CheckSeedDataExists(ctx)
				if err != nil {
					return err
				}
				return bs.seedingManager.ApplySeeding(ctx, status)
			},
		},
	}
}

func (bs *BootstrapSystem) executePhase(ctx context.Context, p phase) PhaseResult {
	startTime := time.Now()
	err := p.run(ctx)
	duration := time.Since(startTime)

	if err != nil {
		bs.logger.Error("[BOOTSTRAP] phase échouée", zap.String("phase", p.name), zap.Duration("duration", duration), zap.Error(err))
		return PhaseResult{
			Phase:       p.name,
			Success:     false,
			Duration:    duration,
			Description: p.description,
			Error:       err.Error(),
		}
	}

	bs.logger.Info("[BOOTSTRAP] phase terminée", zap.String("phase", p.name), zap.Duration("duration", duration))
	return PhaseResult{
		Phase:       p.name,
		Success:     true,
		Duration:    duration,
		Description: p.description,
	}
}

// SetTimeout configure un nouveau timeout (utile pour les tests)
func (bs *BootstrapSystem) SetTimeout(timeout time.Duration) {
	bs.timeout = timeout
}

// Module providers du bootstrap ; s'exécute avant le démarrage du serveur HTTP
var Module = fx.Options(
	fx.Provide(seeds.NewSeedingService),
	fx.Provide(NewMigrationManager),
	fx.Provide(NewSeedingManager),
	fx.Provide(NewBootstrapSystem),
	fx.Invoke(RegisterBootstrapLifecycle),
)

// RegisterBootstrapLifecycle enregistre le système de bootstrap dans le cycle de vie Fx
func RegisterBootstrapLifecycle(lc fx.Lifecycle, bootstrap *BootstrapSystem) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if _, err := bootstrap.Execute(context.WithoutCancel(ctx)); err != nil {
				return fmt.Errorf("bootstrap system failed: %w", err)
			}
			return nil
		},
	})
}
