package services

import (
	"context"
	"fmt"

	"habilitations-core/internal/infrastructure/database/postgres"
	"habilitations-core/internal/modules/password/dto"
	"habilitations-core/internal/modules/password/queries"
	"habilitations-core/internal/shared/audit"

	"github.com/jackc/pgx/v5"
)

// PolicyService paramétrage unique des mots de passe (0 ou 1 ligne)
type PolicyService struct {
	db        postgres.DB
	txManager *postgres.TransactionManager
}

func NewPolicyService(db postgres.DB, txManager *postgres.TransactionManager) *PolicyService {
	return &PolicyService{db: db, txManager: txManager}
}

// Get retourne nil si aucun paramétrage n'a été enregistré
func (s *PolicyService) Get(ctx context.Context) (*dto.PassParam, error) {
	var p dto.PassParam
	err := s.db.QueryRow(ctx, queries.PasswordQueries.GetPassParam).Scan(
		&p.PassParamID, &p.PassExpirDay, &p.AllowPastPass, &p.CreateDate,
		&p.CreateurID, &p.ModDate, &p.ModifieurID,
	)
	if postgres.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lecture des paramètres: %w", err)
	}
	return &p, nil
}

// AllowPastPass FALSE en l'absence de paramétrage
func (s *PolicyService) AllowPastPass(ctx context.Context) (bool, error) {
	var allow bool
	if err := s.db.QueryRow(ctx, queries.PasswordQueries.GetAllowPastPass).Scan(&allow); err != nil {
		return false, fmt.Errorf("lecture de allow_past_pass: %w", err)
	}
	return allow, nil
}

// Upsert met à jour la ligne existante ou l'insère si aucune ligne n'a été modifiée
func (s *PolicyService) Upsert(ctx context.Context, expirDays int, allowPastPass bool, actorID int64) error {
	entry := &audit.Entry{Type: audit.OperationUpdate, Table: "pass_params", RecorderID: actorID}

	return s.txManager.WithJournaledTransaction(ctx, entry, func(tx pgx.Tx) error {
		return upsertTx(ctx, tx, entry, expirDays, allowPastPass, actorID)
	})
}

// upsertTx bascule entry en insert quand aucune ligne n'existait
func upsertTx(ctx context.Context, q postgres.Querier, entry *audit.Entry, expirDays int, allowPastPass bool, actorID int64) error {
	tag, err := q.Exec(ctx, queries.PasswordQueries.UpdatePassParam, expirDays, allowPastPass, actorID)
	if err != nil {
		return fmt.Errorf("mise à jour des paramètres: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	entry.Type = audit.OperationInsert
	if _, err := q.Exec(ctx, queries.PasswordQueries.InsertPassParam, expirDays, allowPastPass, actorID); err != nil {
		return fmt.Errorf("insertion des paramètres: %w", err)
	}
	return nil
}
