package auth

import (
	"context"

	"habilitations-core/internal/shared/response"
	"habilitations-core/internal/shared/session"

	"github.com/gin-gonic/gin"
)

// SessionManager lit et entretient la session portée par le cookie
type SessionManager interface {
	// Load retourne nil quand la requête ne porte aucune session valide
	Load(c *gin.Context) (*session.Session, error)
	RenewCookie(c *gin.Context, sessionID string)
	Refresh(ctx context.Context, sessionID string) error
	Destroy(c *gin.Context, sessionID string) error
}

// Authorizer calcule le verdict d'un utilisateur à partir du stockage
type Authorizer interface {
	Resolve(ctx context.Context, userID int64) (response.Verdict, error)
}

// ActivityRecorder horodate la ligne de connexion courante
type ActivityRecorder interface {
	RecordLatestActivity(ctx context.Context, userID int64, isCurrent bool) error
}
