package services

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"habilitations-core/internal/app/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie cookie httpOnly portant un jeton HS256 dont le jti est l'identifiant de session
type SessionCookie struct {
	name   string
	secret []byte
	maxAge time.Duration
	secure bool
	now    func() time.Time
}

func NewSessionCookie(sessionConfig *config.SessionConfig) *SessionCookie {
	maxAge := sessionConfig.MaxAge
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &SessionCookie{
		name:   sessionConfig.Name,
		secret: []byte(sessionConfig.Secret),
		maxAge: maxAge,
		secure: sessionConfig.Secure,
		now:    time.Now,
	}
}

// Write pose (ou renouvelle) le cookie pour la durée complète
func (sc *SessionCookie) Write(c *gin.Context, sessionID string) error {
	now := sc.now()
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(sc.maxAge)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(sc.secret)
	if err != nil {
		return fmt.Errorf("signature du cookie de session: %w", err)
	}

	sc.set(c, token, int(sc.maxAge.Seconds()))
	return nil
}

// Read retourne l'identifiant de session d'un cookie valide
func (sc *SessionCookie) Read(c *gin.Context) (string, bool) {
	raw, err := c.Cookie(sc.name)
	if err != nil || raw == "" {
		return "", false
	}

	sessionID, err := sc.parse(raw)
	if err != nil {
		return "", false
	}
	return sessionID, true
}

func (sc *SessionCookie) Clear(c *gin.Context) {
	sc.set(c, "", -1)
}

func (sc *SessionCookie) parse(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return sc.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(sc.now),
	)
	if err != nil {
		return "", err
	}
	if claims.ID == "" {
		return "", errors.New("jeton de session sans identifiant")
	}
	return claims.ID, nil
}

func (sc *SessionCookie) set(c *gin.Context, value string, maxAge int) {
	if sc.secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(sc.name, value, maxAge, "/", "", sc.secure, true)
}
