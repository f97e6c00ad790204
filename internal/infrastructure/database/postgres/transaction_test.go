package postgres

import (
	"context"
	"errors"
	"testing"

	"habilitations-core/internal/shared/apperrors"
	"habilitations-core/internal/shared/audit"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingJournal struct {
	entries []audit.Entry
}

func (j *recordingJournal) Record(_ context.Context, entry audit.Entry) {
	j.entries = append(j.entries, entry)
}

func newManager(t *testing.T) (*TransactionManager, pgxmock.PgxPoolIface, *recordingJournal) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	journal := &recordingJournal{}
	return NewTransactionManager(mock, journal, zap.NewNop()), mock, journal
}

func TestWithTransaction_Commit(t *testing.T) {
	tm, mock, _ := newManager(t)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM profil_permissions").WithArgs(int64(3)).WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectCommit()

	err := tm.WithTransaction(context.Background(), func(tx pgx.Tx) error {
		_, err := tx.Exec(context.Background(), "DELETE FROM profil_permissions WHERE profil_id = $1", int64(3))
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollbackOnError(t *testing.T) {
	tm, mock, _ := newManager(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tm.WithTransaction(context.Background(), func(tx pgx.Tx) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollbackOnPanic(t *testing.T) {
	tm, mock, _ := newManager(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = tm.WithTransaction(context.Background(), func(tx pgx.Tx) error {
			panic("échec inattendu")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithJournaledTransaction_RecordsAfterCommit(t *testing.T) {
	tm, mock, journal := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	entry := &audit.Entry{Type: audit.OperationInsert, Table: "profils", RecorderID: 1}
	err := tm.WithJournaledTransaction(context.Background(), entry, func(tx pgx.Tx) error {
		entry.AffectedIDs = []int64{42}
		return nil
	})

	require.NoError(t, err)
	require.Len(t, journal.entries, 1)
	assert.NotEmpty(t, journal.entries[0].OperationID)
	assert.False(t, journal.entries[0].RecordedAt.IsZero())
	assert.Equal(t, []int64{42}, journal.entries[0].AffectedIDs)
}

func TestWithJournaledTransaction_NothingRecordedOnFailure(t *testing.T) {
	tm, mock, journal := newManager(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tm.WithJournaledTransaction(context.Background(), &audit.Entry{Table: "profils"}, func(tx pgx.Tx) error {
		return errors.New("conflit")
	})

	assert.Error(t, err)
	assert.Empty(t, journal.entries)
}

func TestWithJournaledTransaction_LogLevelFollowsErrorKind(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		level zapcore.Level
	}{
		{"conflit métier", apperrors.Conflict("Ce libellé existe déjà"), zapcore.WarnLevel},
		{"validation", apperrors.Required("profil_lib"), zapcore.WarnLevel},
		{"erreur interne", apperrors.Internal(errors.New("connexion perdue")), zapcore.ErrorLevel},
		{"erreur brute", errors.New("connexion perdue"), zapcore.ErrorLevel},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			core, logs := observer.New(zapcore.DebugLevel)
			tm := NewTransactionManager(mock, &recordingJournal{}, zap.New(core))

			mock.ExpectBegin()
			mock.ExpectRollback()

			err = tm.WithJournaledTransaction(context.Background(), &audit.Entry{Table: "profils"}, func(tx pgx.Tx) error {
				return tc.err
			})

			assert.ErrorIs(t, err, tc.err)
			require.Equal(t, 1, logs.Len())
			assert.Equal(t, tc.level, logs.All()[0].Level)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("x")))
	assert.True(t, IsNoRows(pgx.ErrNoRows))
}
