package auth

import (
	"net/http"
	"slices"

	"habilitations-core/internal/shared/permissions"
	"habilitations-core/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RequirePermissionHandler vérifie la permission dans le verdict posé par Full()
func RequirePermissionHandler(permission permissions.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, user := response.Auth(c)
		if status != response.LoggedIn || user == nil {
			response.Abort(c, http.StatusUnauthorized, status, user, response.MsgMustLogIn)
			return
		}

		if !slices.Contains(user.Permissions, string(permission)) {
			response.Abort(c, http.StatusUnauthorized, status, user, response.MsgPermissionDenied)
			return
		}

		c.Next()
	}
}
