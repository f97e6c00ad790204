package services

import (
	"context"
	"errors"

	authMiddleware "habilitations-core/internal/shared/middleware/auth"
	"habilitations-core/internal/shared/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionManager relie le cookie du client au stockage des sessions
type SessionManager struct {
	store  *SessionService
	cookie *SessionCookie
	logger *zap.Logger
}

func NewSessionManager(store *SessionService, cookie *SessionCookie, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		store:  store,
		cookie: cookie,
		logger: logger,
	}
}

// Load retourne nil sans erreur quand le client n'a pas de session valide
func (m *SessionManager) Load(c *gin.Context) (*session.Session, error) {
	sessionID, ok := m.cookie.Read(c)
	if !ok {
		return nil, nil
	}

	sess, err := m.store.Get(c.Request.Context(), sessionID)
	if errors.Is(err, session.ErrNotFound) {
		m.cookie.Clear(c)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (m *SessionManager) RenewCookie(c *gin.Context, sessionID string) {
	if err := m.cookie.Write(c, sessionID); err != nil {
		m.logger.Warn("[SESSION] renouvellement du cookie échoué", zap.Error(err))
	}
}

func (m *SessionManager) Refresh(ctx context.Context, sessionID string) error {
	return m.store.Refresh(ctx, sessionID)
}

// Destroy supprime la session côté serveur et efface le cookie
func (m *SessionManager) Destroy(c *gin.Context, sessionID string) error {
	err := m.store.Delete(c.Request.Context(), sessionID)
	m.cookie.Clear(c)
	return err
}

// Start ouvre toujours une nouvelle session : l'ancienne est détruite (fixation de session)
func (m *SessionManager) Start(c *gin.Context, userID int64) (*session.Session, error) {
	ctx := c.Request.Context()

	previous := authMiddleware.SessionID(c)
	if previous == "" {
		previous, _ = m.cookie.Read(c)
	}
	if previous != "" {
		if err := m.store.Delete(ctx, previous); err != nil {
			m.logger.Warn("[SESSION] suppression de l'ancienne session échouée", zap.Error(err))
		}
	}

	sess, err := m.store.Create(ctx, userID, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		return nil, err
	}
	if err := m.cookie.Write(c, sess.ID); err != nil {
		return nil, err
	}
	return sess, nil
}
