package auth

import (
	"context"
	"net/http"
	"time"

	"habilitations-core/internal/app/config"
	"habilitations-core/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionMiddleware résout la session en verdict avant chaque handler.
// Full rejette tout état autre que "Logged in" ; Soft attache le verdict et laisse
// le handler décider.
type SessionMiddleware struct {
	sessions        SessionManager
	authorizer      Authorizer
	activity        ActivityRecorder
	logger          *zap.Logger
	activityTimeout time.Duration
}

func NewSessionMiddleware(
	sessions SessionManager,
	authorizer Authorizer,
	activity ActivityRecorder,
	security *config.SecurityConfig,
	logger *zap.Logger,
) *SessionMiddleware {
	timeout := security.ActivityTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &SessionMiddleware{
		sessions:        sessions,
		authorizer:      authorizer,
		activity:        activity,
		logger:          logger,
		activityTimeout: timeout,
	}
}

func (m *SessionMiddleware) Full() gin.HandlerFunc {
	return m.handler(true)
}

func (m *SessionMiddleware) Soft() gin.HandlerFunc {
	return m.handler(false)
}

func (m *SessionMiddleware) handler(strict bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := m.sessions.Load(c)
		if err != nil {
			m.logger.Error("[SESSION] lecture de session échouée", zap.Error(err))
			response.Abort(c, http.StatusInternalServerError, response.LoggedOut, nil, response.MsgGenericError)
			return
		}

		// 1. Aucune session
		if sess == nil {
			response.SetVerdict(c, response.Verdict{Status: response.LoggedOut, Message: response.MsgMustLogIn})
			if strict {
				response.Abort(c, http.StatusUnauthorized, response.LoggedOut, nil, response.MsgMustLogIn)
				return
			}
			c.Next()
			return
		}

		Bind(c, sess.ID, sess.UserID)
		reqCtx := c.Request.Context()

		// 2. Statut, identité, mot de passe initial/expiré et permissions
		verdict, err := m.authorizer.Resolve(reqCtx, sess.UserID)
		if err != nil {
			m.logger.Error("[SESSION] résolution du verdict échouée",
				zap.Int64("user_id", sess.UserID),
				zap.Error(err),
			)
			response.Abort(c, http.StatusInternalServerError, response.LoggedIn, nil, response.MsgGenericError)
			m.afterResponse(reqCtx, sess.ID, sess.UserID)
			return
		}

		// 3. Compte supprimé : la session est détruite
		if verdict.Status == response.AccountDelete {
			m.closeDeleted(c, sess.ID, sess.UserID)
			response.SetVerdict(c, verdict)
			if strict {
				response.Abort(c, http.StatusUnauthorized, verdict.Status, nil, verdict.Message)
				return
			}
			c.Next()
			return
		}

		response.SetVerdict(c, verdict)
		m.sessions.RenewCookie(c, sess.ID)
		// La session peut avoir changé pendant le handler (connexion, déconnexion)
		defer func() {
			if sid := SessionID(c); sid != "" {
				userID, _ := UserID(c)
				m.afterResponse(reqCtx, sid, userID)
			}
		}()

		// 4. Compte inactif, mot de passe initial ou expiré
		if strict && verdict.Status != response.LoggedIn {
			response.Abort(c, http.StatusUnauthorized, verdict.Status, verdict.User, verdict.Message)
			return
		}

		c.Next()
	}
}

// closeDeleted clôt la connexion courante puis détruit la session (stockage + cookie)
func (m *SessionMiddleware) closeDeleted(c *gin.Context, sessionID string, userID int64) {
	ctx := c.Request.Context()
	if err := m.activity.RecordLatestActivity(ctx, userID, false); err != nil {
		m.logger.Warn("[SESSION] clôture de la connexion échouée", zap.Int64("user_id", userID), zap.Error(err))
	}
	if err := m.sessions.Destroy(c, sessionID); err != nil {
		m.logger.Warn("[SESSION] destruction de session échouée", zap.Int64("user_id", userID), zap.Error(err))
	}
	Unbind(c)
}

// afterResponse horodate l'activité et prolonge la session sans bloquer la réponse
func (m *SessionMiddleware) afterResponse(reqCtx context.Context, sessionID string, userID int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(reqCtx), m.activityTimeout)
		defer cancel()

		if err := m.activity.RecordLatestActivity(ctx, userID, true); err != nil {
			m.logger.Warn("[SESSION] horodatage de l'activité échoué", zap.Int64("user_id", userID), zap.Error(err))
		}
		if err := m.sessions.Refresh(ctx, sessionID); err != nil {
			m.logger.Warn("[SESSION] prolongation de session échouée", zap.String("session_id", sessionID), zap.Error(err))
		}
	}()
}
