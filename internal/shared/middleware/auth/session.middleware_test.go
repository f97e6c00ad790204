package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"habilitations-core/internal/app/config"
	"habilitations-core/internal/shared/permissions"
	"habilitations-core/internal/shared/response"
	"habilitations-core/internal/shared/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSessions struct {
	mu        sync.Mutex
	sess      *session.Session
	loadErr   error
	destroyed []string
	refreshed []string
	renewed   int
}

func (f *fakeSessions) Load(*gin.Context) (*session.Session, error) { return f.sess, f.loadErr }

func (f *fakeSessions) RenewCookie(*gin.Context, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renewed++
}

func (f *fakeSessions) Refresh(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refreshed = append(f.refreshed, id)
	return nil
}

func (f *fakeSessions) Destroy(_ *gin.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.destroyed = append(f.destroyed, id)
	return nil
}

func (f *fakeSessions) refreshCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.refreshed)
}

type fakeAuthorizer struct {
	verdict response.Verdict
	err     error
}

func (f fakeAuthorizer) Resolve(context.Context, int64) (response.Verdict, error) {
	return f.verdict, f.err
}

type activityCall struct {
	userID    int64
	isCurrent bool
}

type fakeActivity struct {
	mu    sync.Mutex
	calls []activityCall
}

func (f *fakeActivity) RecordLatestActivity(_ context.Context, userID int64, isCurrent bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, activityCall{userID, isCurrent})
	return nil
}

func (f *fakeActivity) snapshot() []activityCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]activityCall(nil), f.calls...)
}

type harness struct {
	sessions *fakeSessions
	activity *fakeActivity
	router   *gin.Engine
}

func newHarness(sess *session.Session, authorizer fakeAuthorizer) *harness {
	h := &harness{sessions: &fakeSessions{sess: sess}, activity: &fakeActivity{}}
	mw := NewSessionMiddleware(h.sessions, authorizer, h.activity, &config.SecurityConfig{}, zap.NewNop())
	stack := NewAuthMiddlewareStack(mw)

	ok := func(c *gin.Context) { response.OK(c, nil, "") }
	h.router = gin.New()
	h.router.GET("/full", With(Protected(stack), ok)...)
	h.router.GET("/soft", With(Soft(stack), ok)...)
	h.router.GET("/perm", With(RequirePermission(stack, permissions.ViewUsers), ok)...)
	return h
}

func (h *harness) do(t *testing.T, path string) (int, response.ApiResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body response.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

var activeSession = &session.Session{ID: "sid-1", UserID: 4}

func loggedIn(perms ...string) fakeAuthorizer {
	return fakeAuthorizer{verdict: response.Verdict{
		Status: response.LoggedIn,
		User:   &response.CurrentUser{Nom: "Diallo", Permissions: perms},
	}}
}

func TestFull_NoSession(t *testing.T) {
	h := newHarness(nil, fakeAuthorizer{})

	code, body := h.do(t, "/full")

	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, response.LoggedOut, body.AuthStatus)
	assert.Equal(t, response.MsgMustLogIn, body.Message)
}

func TestSoft_NoSessionPassesThrough(t *testing.T) {
	h := newHarness(nil, fakeAuthorizer{})

	code, body := h.do(t, "/soft")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, response.LoggedOut, body.AuthStatus)
}

func TestFull_LoggedInRefreshesSession(t *testing.T) {
	h := newHarness(activeSession, loggedIn())

	code, body := h.do(t, "/full")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, response.LoggedIn, body.AuthStatus)
	require.NotNil(t, body.CurrentUser)
	assert.Equal(t, "Diallo", body.CurrentUser.Nom)
	assert.Eventually(t, func() bool { return h.sessions.refreshCount() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, []activityCall{{4, true}}, h.activity.snapshot())
}

func TestFull_ExpiredPasswordRejected(t *testing.T) {
	h := newHarness(activeSession, fakeAuthorizer{verdict: response.Verdict{
		Status:  response.ExpiredPassword,
		User:    &response.CurrentUser{Nom: "Diallo", Permissions: []string{}},
		Message: response.MsgExpiredPass,
	}})

	code, body := h.do(t, "/full")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, response.ExpiredPassword, body.AuthStatus)
	assert.NotNil(t, body.CurrentUser)

	code, body = h.do(t, "/soft")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, response.ExpiredPassword, body.AuthStatus)
}

func TestDeletedAccountDestroysSession(t *testing.T) {
	h := newHarness(activeSession, fakeAuthorizer{verdict: response.Verdict{
		Status:  response.AccountDelete,
		Message: response.MsgAccountDeleted,
	}})

	code, body := h.do(t, "/full")

	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, response.AccountDelete, body.AuthStatus)
	assert.Equal(t, []string{"sid-1"}, h.sessions.destroyed)
	assert.Equal(t, []activityCall{{4, false}}, h.activity.snapshot())
	assert.Equal(t, 0, h.sessions.renewed)
}

func TestInactiveAccountKeepsSession(t *testing.T) {
	h := newHarness(activeSession, fakeAuthorizer{verdict: response.Verdict{
		Status:  response.AccountInactive,
		Message: response.MsgAccountInactive,
	}})

	code, _ := h.do(t, "/full")

	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Empty(t, h.sessions.destroyed)
	assert.Equal(t, 1, h.sessions.renewed)
}

func TestResolveErrorIs500(t *testing.T) {
	h := newHarness(activeSession, fakeAuthorizer{err: errors.New("pg down")})

	code, body := h.do(t, "/soft")

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, response.MsgGenericError, body.Message)
}

func TestLoadErrorIs500(t *testing.T) {
	h := newHarness(nil, fakeAuthorizer{})
	h.sessions.loadErr = errors.New("redis et pg down")

	code, _ := h.do(t, "/soft")

	assert.Equal(t, http.StatusInternalServerError, code)
}

func TestRequirePermission(t *testing.T) {
	h := newHarness(activeSession, loggedIn(string(permissions.ViewProfils)))
	code, body := h.do(t, "/perm")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, response.MsgPermissionDenied, body.Message)
	assert.Equal(t, response.LoggedIn, body.AuthStatus)

	h = newHarness(activeSession, loggedIn(string(permissions.ViewUsers)))
	code, _ = h.do(t, "/perm")
	assert.Equal(t, http.StatusOK, code)
}

func TestContextBinding(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := UserID(c)
	assert.False(t, ok)

	Bind(c, "sid", 7)
	id, ok := UserID(c)
	assert.True(t, ok)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "sid", SessionID(c))

	Unbind(c)
	_, ok = UserID(c)
	assert.False(t, ok)
	assert.Empty(t, SessionID(c))
}
