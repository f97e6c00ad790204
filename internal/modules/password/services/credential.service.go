package services

import (
	"context"
	"fmt"
	"time"

	"habilitations-core/internal/app/config"
	"habilitations-core/internal/infrastructure/database/postgres"
	"habilitations-core/internal/modules/password/dto"
	"habilitations-core/internal/modules/password/queries"
	"habilitations-core/internal/shared/apperrors"
	"habilitations-core/internal/shared/audit"
	"habilitations-core/internal/shared/utils"

	"github.com/jackc/pgx/v5"
)

// CredentialService gère l'historique des mots de passe.
// Au plus une ligne is_curr = TRUE par utilisateur : la bascule et l'insertion
// se font dans une transaction qui verrouille la ligne utilisateur.
type CredentialService struct {
	db          postgres.DB
	txManager   *postgres.TransactionManager
	hasher      *utils.Hasher
	defaultDays int
	now         func() time.Time
}

func NewCredentialService(
	db postgres.DB,
	txManager *postgres.TransactionManager,
	hasher *utils.Hasher,
	superAdmin *config.SuperAdminConfig,
) *CredentialService {
	days := superAdmin.DefaultDays
	if days <= 0 {
		days = dto.DefaultPassExpirDays
	}
	return &CredentialService{
		db:          db,
		txManager:   txManager,
		hasher:      hasher,
		defaultDays: days,
		now:         time.Now,
	}
}

// GetCurrent retourne nil si l'utilisateur n'a aucun mot de passe courant
func (s *CredentialService) GetCurrent(ctx context.Context, userID int64) (*dto.Credential, error) {
	var c dto.Credential
	err := s.db.QueryRow(ctx, queries.PasswordQueries.GetCurrent, userID).Scan(
		&c.UserPassID, &c.UserID, &c.Pass, &c.IsCurr, &c.IsInit, &c.CreateDate,
	)
	if postgres.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lecture du mot de passe courant: %w", err)
	}
	return &c, nil
}

// Create enregistre un nouveau mot de passe courant dans sa propre transaction
func (s *CredentialService) Create(ctx context.Context, userID int64, hashed string, isInit bool, actorID int64) (int64, error) {
	var id int64
	entry := &audit.Entry{Type: audit.OperationInsert, Table: "user_pass", RecorderID: actorID}

	err := s.txManager.WithJournaledTransaction(ctx, entry, func(tx pgx.Tx) error {
		var err error
		id, err = s.CreateTx(ctx, tx, userID, hashed, isInit, actorID)
		entry.AffectedIDs = []int64{id}
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// CreateTx verrouille l'utilisateur, bascule les anciens mots de passe puis insère le nouveau.
// À appeler dans une transaction ouverte par l'appelant.
func (s *CredentialService) CreateTx(ctx context.Context, q postgres.Querier, userID int64, hashed string, isInit bool, actorID int64) (int64, error) {
	var lockedID int64
	err := q.QueryRow(ctx, queries.PasswordQueries.LockUser, userID).Scan(&lockedID)
	if postgres.IsNoRows(err) {
		return 0, apperrors.NotFound("Utilisateur introuvable")
	}
	if err != nil {
		return 0, fmt.Errorf("verrouillage utilisateur %d: %w", userID, err)
	}

	if _, err := q.Exec(ctx, queries.PasswordQueries.FlipCurrent, userID, actorID); err != nil {
		return 0, fmt.Errorf("bascule des mots de passe: %w", err)
	}

	var id int64
	if err := q.QueryRow(ctx, queries.PasswordQueries.InsertCredential, userID, hashed, isInit, actorID).Scan(&id); err != nil {
		return 0, fmt.Errorf("insertion du mot de passe: %w", err)
	}
	return id, nil
}

// Update remplace le mot de passe courant sans créer d'historique (is_init repasse à FALSE)
func (s *CredentialService) Update(ctx context.Context, userID int64, hashed string) error {
	entry := &audit.Entry{
		Type:        audit.OperationUpdate,
		Table:       "user_pass",
		RecorderID:  userID,
		AffectedIDs: []int64{userID},
	}

	return s.txManager.WithJournaledTransaction(ctx, entry, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, queries.PasswordQueries.UpdateCurrent, userID, hashed)
		if err != nil {
			return fmt.Errorf("mise à jour du mot de passe: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NotFound("Mot de passe introuvable")
		}
		return nil
	})
}

// IsInHistory compare le candidat à chaque hash connu de l'utilisateur
func (s *CredentialService) IsInHistory(ctx context.Context, userID int64, candidate string) (bool, error) {
	rows, err := s.db.Query(ctx, queries.PasswordQueries.GetHistory, userID)
	if err != nil {
		return false, fmt.Errorf("lecture de l'historique: %w", err)
	}
	hashes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return false, fmt.Errorf("lecture de l'historique: %w", err)
	}

	for _, hashed := range hashes {
		match, err := s.hasher.Compare(ctx, hashed, candidate)
		if err != nil {
			return false, err
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}

// IsExpired : expiré si aucun mot de passe courant ou si create_date + pass_expir_day est dépassé
func (s *CredentialService) IsExpired(ctx context.Context, userID int64) (bool, error) {
	var createDate time.Time
	var days int
	err := s.db.QueryRow(ctx, queries.PasswordQueries.GetExpiryInfo, userID, s.defaultDays).Scan(&createDate, &days)
	if postgres.IsNoRows(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("lecture de l'expiration: %w", err)
	}
	return Expired(createDate, days, s.now()), nil
}

// IsInitial indique un mot de passe attribué par un administrateur
func (s *CredentialService) IsInitial(ctx context.Context, userID int64) (bool, error) {
	var isInit bool
	err := s.db.QueryRow(ctx, queries.PasswordQueries.GetIsInit, userID).Scan(&isInit)
	if postgres.IsNoRows(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lecture de is_init: %w", err)
	}
	return isInit, nil
}

// Expired vrai strictement après create_date + days
func Expired(createDate time.Time, days int, now time.Time) bool {
	expiry := createDate.Add(time.Duration(days) * 24 * time.Hour)
	return now.After(expiry)
}
