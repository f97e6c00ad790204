package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"habilitations-core/internal/app/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCookie(secret string) *SessionCookie {
	return NewSessionCookie(&config.SessionConfig{Name: "habilitations.sid", Secret: secret, MaxAge: time.Hour})
}

func writeCookie(t *testing.T, sc *SessionCookie, sessionID string) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	require.NoError(t, sc.Write(c, sessionID))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func readCookie(sc *SessionCookie, cookie *http.Cookie) (string, bool) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.AddCookie(cookie)
	return sc.Read(c)
}

func TestSessionCookie_RoundTrip(t *testing.T) {
	sc := newCookie("secret")
	cookie := writeCookie(t, sc, "3f6c2a1e-8d9b-4c57-a2e1-0b7d5c4e9f10")

	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	id, ok := readCookie(sc, cookie)
	require.True(t, ok)
	assert.Equal(t, "3f6c2a1e-8d9b-4c57-a2e1-0b7d5c4e9f10", id)
}

func TestSessionCookie_RejectsForeignSignature(t *testing.T) {
	cookie := writeCookie(t, newCookie("secret"), "abc")

	_, ok := readCookie(newCookie("autre-secret"), cookie)
	assert.False(t, ok)
}

func TestSessionCookie_RejectsExpiredToken(t *testing.T) {
	sc := newCookie("secret")
	cookie := writeCookie(t, sc, "abc")

	sc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, ok := readCookie(sc, cookie)
	assert.False(t, ok)
}

func TestSessionCookie_Clear(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	newCookie("secret").Clear(c)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
