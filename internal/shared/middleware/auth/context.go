package auth

import (
	"github.com/gin-gonic/gin"
)

const (
	userIDKey    = "user_id"
	sessionIDKey = "session_id"
)

// UserID utilisateur lié à la session courante
func UserID(c *gin.Context) (int64, bool) {
	value, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok && id > 0
}

// SessionID identifiant de la session courante, vide si aucune
func SessionID(c *gin.Context) string {
	return c.GetString(sessionIDKey)
}

// Bind associe la session et son utilisateur à la requête
func Bind(c *gin.Context, sessionID string, userID int64) {
	c.Set(sessionIDKey, sessionID)
	c.Set(userIDKey, userID)
}

// Unbind retire la session du contexte (logout, compte supprimé)
func Unbind(c *gin.Context) {
	c.Set(sessionIDKey, "")
	c.Set(userIDKey, int64(0))
}
