package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"habilitations-core/internal/app/config"
	"habilitations-core/internal/infrastructure/database/postgres"
	"habilitations-core/internal/shared/apperrors"
	"habilitations-core/internal/shared/audit"
	"habilitations-core/internal/shared/permissions"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const saLib = "SUPER ADMINISTRATEUR"

var profilCols = []string{"profil_id", "profil_lib", "is_delete", "create_date", "createur_id", "mod_date", "modifieur_id"}

func newService(t *testing.T) (*ProfileService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	tm := postgres.NewTransactionManager(mock, audit.NopJournal{}, zap.NewNop())
	return NewProfileService(mock, tm, &config.SuperAdminConfig{Login: "ADMIN", ProfileLib: saLib}), mock
}

func expectLockManaged(mock pgxmock.PgxPoolIface, profilID int64) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT profil_id FROM profils")).
		WithArgs(profilID, saLib).
		WillReturnRows(pgxmock.NewRows([]string{"profil_id"}).AddRow(profilID))
}

func TestCreate_Insert(t *testing.T) {
	s, mock := newService(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT profil_id, is_delete FROM profils")).
		WithArgs("COMPTABLE").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO profils")).
		WithArgs("COMPTABLE", int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"profil_id"}).AddRow(int64(7)))
	mock.ExpectCommit()

	res, err := s.Create(context.Background(), "  comptable ", 1)

	require.NoError(t, err)
	assert.Equal(t, int64(7), res.ProfilID)
	assert.False(t, res.Reactivated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ReactivatesDeleted(t *testing.T) {
	s, mock := newService(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT profil_id, is_delete FROM profils")).
		WithArgs("COMPTABLE").
		WillReturnRows(pgxmock.NewRows([]string{"profil_id", "is_delete"}).AddRow(int64(4), true))
	mock.ExpectExec(regexp.QuoteMeta("SET profil_lib = $2, is_delete = FALSE")).
		WithArgs(int64(4), "COMPTABLE", int64(1)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	res, err := s.Create(context.Background(), "Comptable", 1)

	require.NoError(t, err)
	assert.Equal(t, int64(4), res.ProfilID)
	assert.True(t, res.Reactivated)
}

func TestCreate_Conflicts(t *testing.T) {
	s, mock := newService(t)

	_, err := s.Create(context.Background(), "super administrateur", 1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	_, err = s.Create(context.Background(), "   ", 1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT profil_id, is_delete FROM profils")).
		WithArgs("COMPTABLE").
		WillReturnRows(pgxmock.NewRows([]string{"profil_id", "is_delete"}).AddRow(int64(4), false))
	mock.ExpectRollback()

	_, err = s.Create(context.Background(), "comptable", 1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT profil_id, is_delete FROM profils")).
		WithArgs("RH").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO profils")).
		WithArgs("RH", int64(1)).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err = s.Create(context.Background(), "rh", 1)
	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_LabelTaken(t *testing.T) {
	s, mock := newService(t)
	mock.ExpectBegin()
	expectLockManaged(mock, 3)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM profils")).
		WithArgs("RH", int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err := s.Update(context.Background(), 3, "rh", 1)

	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSoftDelete_NotFound(t *testing.T) {
	s, mock := newService(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET is_delete = TRUE")).
		WithArgs(int64(3), int64(1), saLib).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := s.SoftDelete(context.Background(), 3, 1)

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestReplacePermissions(t *testing.T) {
	s, mock := newService(t)
	perms := []string{string(permissions.ViewUsers), string(permissions.CreateUsers), string(permissions.ViewUsers)}

	mock.ExpectBegin()
	expectLockManaged(mock, 3)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM profil_permissions")).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profil_permissions")).
		WithArgs(int64(3), []string{string(permissions.ViewUsers), string(permissions.CreateUsers)}).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	require.NoError(t, s.ReplacePermissions(context.Background(), 3, perms, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplacePermissions_EmptyClearsAll(t *testing.T) {
	s, mock := newService(t)
	mock.ExpectBegin()
	expectLockManaged(mock, 3)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM profil_permissions")).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 4))
	mock.ExpectCommit()

	require.NoError(t, s.ReplacePermissions(context.Background(), 3, []string{}, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplacePermissions_UnknownPermission(t *testing.T) {
	s, _ := newService(t)

	err := s.ReplacePermissions(context.Background(), 3, []string{"Voler la base"}, 1)

	assert.True(t, apperrors.IsKind(err, apperrors.KindValidation))
}

func TestReplaceUserProfiles(t *testing.T) {
	s, mock := newService(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM users")).
		WithArgs(int64(9), "ADMIN").
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(9)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM profils")).
		WithArgs([]int64{3, 4}, saLib).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_profils")).
		WithArgs(int64(9), saLib).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_profils")).
		WithArgs(int64(9), []int64{3, 4}).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	require.NoError(t, s.ReplaceUserProfiles(context.Background(), 9, []int64{3, 4, 3}, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceUserProfiles_UnknownProfile(t *testing.T) {
	s, mock := newService(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM users")).
		WithArgs(int64(9), "ADMIN").
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(9)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM profils")).
		WithArgs([]int64{3, 99}, saLib).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectRollback()

	err := s.ReplaceUserProfiles(context.Background(), 9, []int64{3, 99}, 1)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, MsgProfilNotFound, appErr.Message)
}

func TestReplaceUserProfiles_UnknownUser(t *testing.T) {
	s, mock := newService(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM users")).
		WithArgs(int64(1), "ADMIN").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := s.ReplaceUserProfiles(context.Background(), 1, nil, 2)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, MsgUserNotFound, appErr.Message)
}

func TestEffectivePermissionsForUser_Empty(t *testing.T) {
	s, mock := newService(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT pp.permission")).
		WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows([]string{"permission"}))

	perms, err := s.EffectivePermissionsForUser(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, []string{}, perms)
}

func TestGetByID_NotFound(t *testing.T) {
	s, mock := newService(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.profil_id = $1")).
		WithArgs(int64(3), saLib).
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetByID(context.Background(), 3)

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestListWithPermissions(t *testing.T) {
	s, mock := newService(t)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY p.profil_lib")).
		WithArgs(saLib).
		WillReturnRows(pgxmock.NewRows(profilCols).
			AddRow(int64(3), "COMPTABLE", false, now, nil, nil, nil).
			AddRow(int64(4), "RH", false, now, nil, nil, nil))
	mock.ExpectQuery(regexp.QuoteMeta("FROM profil_permissions pp")).
		WithArgs(saLib).
		WillReturnRows(pgxmock.NewRows([]string{"profil_id", "permission"}).
			AddRow(int64(3), string(permissions.ViewUsers)))

	out, err := s.ListWithPermissions(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, []string{string(permissions.ViewUsers)}, out[0].Permissions)
	assert.Equal(t, []string{}, out[1].Permissions)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, dedupe([]int64{3, 1, 3, 2, 1}))
	assert.Equal(t, []string{}, dedupe[string](nil))
}

func TestUpdate_RejectsBlankLabel(t *testing.T) {
	s, mock := newService(t)

	err := s.Update(context.Background(), 3, "   ", 1)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Details, "profil_lib")
	assert.NoError(t, mock.ExpectationsWereMet())
}
