package seeds

import (
	"context"
	"fmt"

	"habilitations-core/internal/app/config"
	"habilitations-core/internal/infrastructure/database/postgres"
	"habilitations-core/internal/shared/permissions"
	"habilitations-core/internal/shared/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// seedingService crée ou répare les données initiales ; relancé à chaque démarrage
type seedingService struct {
	db         postgres.DB
	txManager  *postgres.TransactionManager
	hasher     *utils.Hasher
	superAdmin *config.SuperAdminConfig
	logger     *zap.Logger
}

func NewSeedingService(
	db postgres.DB,
	txManager *postgres.TransactionManager,
	hasher *utils.Hasher,
	superAdmin *config.SuperAdminConfig,
	logger *zap.Logger,
) SeedingService {
	return &seedingService{
		db:         db,
		txManager:  txManager,
		hasher:     hasher,
		superAdmin: superAdmin,
		logger:     logger,
	}
}

func (s *seedingService) CheckSeedDataExists(ctx context.Context) (*SeedDataStatus, error) {
	status := &SeedDataStatus{}

	err := s.db.QueryRow(ctx, seedQueries.Status, s.superAdmin.Login, s.superAdmin.ProfileLib).Scan(
		&status.SuperAdminExists,
		&status.PolicyExists,
		&status.PasswordExists,
		&status.ProfileExists,
		&status.AssignmentExists,
	)
	if err != nil {
		return nil, ErrDatabaseOperation("vérification des données initiales", err)
	}

	status.AllDataExists = status.IsComplete()
	return status, nil
}

// SeedSuperAdmin chaque étape est idempotente ; un élément supprimé est réactivé
func (s *seedingService) SeedSuperAdmin(ctx context.Context) error {
	if s.superAdmin.Login == "" || s.superAdmin.ProfileLib == "" {
		return ErrValidation("SUPER_ADMIN_LOGIN et SUPER_ADMIN_PROFILE_LIB sont requis")
	}

	return s.txManager.WithTransaction(ctx, func(tx pgx.Tx) error {
		userID, err := s.ensureUser(ctx, tx)
		if err != nil {
			return err
		}

		if _, err := tx.Exec(ctx, seedQueries.InsertPolicy, s.superAdmin.DefaultDays); err != nil {
			return ErrDatabaseOperation("paramétrage des mots de passe", err)
		}

		if err := s.ensurePassword(ctx, tx, userID); err != nil {
			return err
		}

		profilID, err := s.ensureProfile(ctx, tx, userID)
		if err != nil {
			return err
		}

		perms := permissions.Strings(permissions.SuperAdmin())
		if _, err := tx.Exec(ctx, seedQueries.InsertPermissions, profilID, perms); err != nil {
			return ErrDatabaseOperation("permissions du profil réservé", err)
		}

		if _, err := tx.Exec(ctx, seedQueries.AssignProfile, userID, profilID); err != nil {
			return ErrDatabaseOperation("affectation du profil réservé", err)
		}

		s.logger.Info("[SEEDING] super administrateur prêt",
			zap.String("login", s.superAdmin.Login),
			zap.Int64("user_id", userID),
			zap.Int64("profil_id", profilID),
			zap.Int("permissions", len(perms)),
		)
		return nil
	})
}

func (s *seedingService) ensureUser(ctx context.Context, tx pgx.Tx) (int64, error) {
	var userID int64
	var isActive, isDelete bool
	err := tx.QueryRow(ctx, seedQueries.LockSuperAdmin, s.superAdmin.Login).Scan(&userID, &isActive, &isDelete)

	switch {
	case postgres.IsNoRows(err):
		err = tx.QueryRow(ctx, seedQueries.InsertSuperAdmin,
			s.superAdmin.Login,
			s.superAdmin.Nom,
			optional(s.superAdmin.Prenom),
			s.superAdmin.Genre,
			optional(s.superAdmin.Email),
			optional(s.superAdmin.Tel),
		).Scan(&userID)
		if err != nil {
			return 0, ErrDatabaseOperation("création du super administrateur", err)
		}
	case err != nil:
		return 0, ErrDatabaseOperation("recherche du super administrateur", err)
	case !isActive || isDelete:
		if _, err := tx.Exec(ctx, seedQueries.ReviveSuperAdmin, userID); err != nil {
			return 0, ErrDatabaseOperation("réactivation du super administrateur", err)
		}
		s.logger.Warn("[SEEDING] super administrateur réactivé", zap.Int64("user_id", userID))
	}
	return userID, nil
}

func (s *seedingService) ensurePassword(ctx context.Context, tx pgx.Tx, userID int64) error {
	var exists bool
	if err := tx.QueryRow(ctx, seedQueries.HasCurrentPass, userID).Scan(&exists); err != nil {
		return ErrDatabaseOperation("lecture du mot de passe courant", err)
	}
	if exists {
		return nil
	}

	if s.superAdmin.InitPass == "" {
		return ErrMissingInitPassword(s.superAdmin.Login)
	}

	hashed, err := s.hasher.Hash(ctx, s.superAdmin.InitPass)
	if err != nil {
		return fmt.Errorf("hachage du mot de passe initial: %w", err)
	}
	if _, err := tx.Exec(ctx, seedQueries.InsertInitPass, userID, hashed); err != nil {
		return ErrDatabaseOperation("mot de passe initial", err)
	}
	return nil
}

func (s *seedingService) ensureProfile(ctx context.Context, tx pgx.Tx, userID int64) (int64, error) {
	var profilID int64
	var isDelete bool
	err := tx.QueryRow(ctx, seedQueries.LockProfile, s.superAdmin.ProfileLib).Scan(&profilID, &isDelete)

	switch {
	case postgres.IsNoRows(err):
		if err := tx.QueryRow(ctx, seedQueries.InsertProfile, s.superAdmin.ProfileLib, userID).Scan(&profilID); err != nil {
			return 0, ErrDatabaseOperation("création du profil réservé", err)
		}
	case err != nil:
		return 0, ErrDatabaseOperation("recherche du profil réservé", err)
	case isDelete:
		if _, err := tx.Exec(ctx, seedQueries.ReviveProfile, profilID); err != nil {
			return 0, ErrDatabaseOperation("réactivation du profil réservé", err)
		}
	}
	return profilID, nil
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
