package postgres

import (
	"context"
	"fmt"
	"time"

	"habilitations-core/internal/shared/apperrors"
	"habilitations-core/internal/shared/audit"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TransactionManager struct {
	db      DB
	journal audit.Journal
	logger  *zap.Logger
}

type TxFunc func(tx pgx.Tx) error

func NewTransactionManager(db DB, journal audit.Journal, logger *zap.Logger) *TransactionManager {
	if journal == nil {
		journal = audit.NopJournal{}
	}
	return &TransactionManager{
		db:      db,
		journal: journal,
		logger:  logger,
	}
}

// WithTransaction exécute fn dans une transaction : commit si fn réussit,
// rollback sur erreur ou panic.
func (tm *TransactionManager) WithTransaction(ctx context.Context, fn TxFunc) (err error) {
	tx, err := tm.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	closed := false

	// Rollback automatique en cas d'erreur ou de panic
	defer func() {
		if closed {
			return
		}
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			// Ne pas masquer l'erreur originale
			tm.logger.Warn("[TX] échec rollback", zap.Error(rollbackErr))
		}
		if p := recover(); p != nil {
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	closed = true
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// WithJournaledTransaction exécute fn puis journalise l'entrée une fois le commit acquis.
// fn peut compléter entry.AffectedIDs.
func (tm *TransactionManager) WithJournaledTransaction(ctx context.Context, entry *audit.Entry, fn TxFunc) error {
	if err := tm.WithTransaction(ctx, fn); err != nil {
		fields := []zap.Field{
			zap.String("type", string(entry.Type)),
			zap.String("table", entry.Table),
			zap.Int64("recorder_id", entry.RecorderID),
			zap.Error(err),
		}
		// Un refus métier (conflit, validation...) n'est pas une panne
		if appErr, ok := apperrors.As(err); ok && appErr.Kind != apperrors.KindInternal {
			tm.logger.Warn("[TX] transaction annulée", fields...)
		} else {
			tm.logger.Error("[TX] transaction échouée", fields...)
		}
		return err
	}

	if entry.OperationID == "" {
		entry.OperationID = uuid.NewString()
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}

	tm.logger.Info("[TX] transaction validée",
		zap.String("operation_id", entry.OperationID),
		zap.String("type", string(entry.Type)),
		zap.String("table", entry.Table),
		zap.Int64("recorder_id", entry.RecorderID),
		zap.Int64s("affected_ids", entry.AffectedIDs),
	)
	tm.journal.Record(ctx, *entry)

	return nil
}
