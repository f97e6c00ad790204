package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"habilitations-core/internal/app/config"
	"habilitations-core/internal/shared/apperrors"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type authFixture struct {
	mock     pgxmock.PgxPoolIface
	domain   domain
	throttle *LoginThrottle
	service  *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	mock := newMock(t)
	rc, _ := newRedis(t)
	d := newDomain(mock)
	throttle := NewLoginThrottle(rc, &config.SecurityConfig{LoginMaxAttempts: 2, LoginLockWindow: time.Minute}, zap.NewNop())
	return &authFixture{
		mock:     mock,
		domain:   d,
		throttle: throttle,
		service:  NewAuthService(d.users, d.credentials, d.hasher, throttle, zap.NewNop()),
	}
}

func (f *authFixture) expectCandidate(login string, userID int64, active, deleted bool) {
	f.mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, is_active, is_delete FROM users")).
		WithArgs(login).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "is_active", "is_delete"}).AddRow(userID, active, deleted))
}

func (f *authFixture) expectPassword(t *testing.T, userID int64, pass string) {
	hashed, err := f.domain.hasher.Hash(context.Background(), pass)
	require.NoError(t, err)
	f.mock.ExpectQuery(regexp.QuoteMeta("SELECT user_pass_id")).
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"user_pass_id", "user_id", "pass", "is_curr", "is_init", "create_date"}).
			AddRow(int64(1), userID, hashed, true, false, time.Now()))
}

func TestLogin_Success(t *testing.T) {
	f := newAuthFixture(t)
	f.expectCandidate("ADIALLO", 4, true, false)
	f.expectPassword(t, 4, "secret")
	f.mock.ExpectBegin()
	f.mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows([]string{"user_id"}).AddRow(int64(4)))
	f.mock.ExpectExec(regexp.QuoteMeta("UPDATE loggings SET is_curr = FALSE")).WithArgs(int64(4)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	f.mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO loggings")).WithArgs(int64(4)).
		WillReturnRows(pgxmock.NewRows([]string{"logging_id"}).AddRow(int64(9)))
	f.mock.ExpectCommit()

	userID, err := f.service.Login(context.Background(), " adiallo ", " secret ")

	require.NoError(t, err)
	assert.Equal(t, int64(4), userID)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestLogin_WrongPasswordCountsAttempt(t *testing.T) {
	f := newAuthFixture(t)
	for range 2 {
		f.expectCandidate("ADIALLO", 4, true, false)
		f.expectPassword(t, 4, "secret")
	}

	for range 2 {
		_, err := f.service.Login(context.Background(), "adiallo", "faux")
		appErr, ok := apperrors.As(err)
		require.True(t, ok)
		assert.Equal(t, MsgBadCredentials, appErr.Message)
	}

	// verrouillé : aucune requête supplémentaire
	_, err := f.service.Login(context.Background(), "adiallo", "secret")
	assert.True(t, apperrors.IsKind(err, apperrors.KindTooManyRequests))
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestLogin_UnknownOrDeletedUser(t *testing.T) {
	f := newAuthFixture(t)
	f.mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, is_active, is_delete FROM users")).
		WithArgs("INCONNU").
		WillReturnError(pgx.ErrNoRows)
	f.expectCandidate("ANCIEN", 5, true, true)

	_, err := f.service.Login(context.Background(), "inconnu", "x")
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))

	_, err = f.service.Login(context.Background(), "ancien", "x")
	assert.True(t, apperrors.IsKind(err, apperrors.KindUnauthorized))
}

func TestLogin_InactiveAccount(t *testing.T) {
	f := newAuthFixture(t)
	f.expectCandidate("ADIALLO", 4, false, false)
	f.expectPassword(t, 4, "secret")

	_, err := f.service.Login(context.Background(), "adiallo", "secret")

	assert.ErrorIs(t, err, ErrAccountInactive)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}
