package auth

import (
	"habilitations-core/internal/shared/permissions"

	"github.com/gin-gonic/gin"
)

// AuthMiddlewareStack représente la pile de middlewares d'authentification
type AuthMiddlewareStack struct {
	SessionMiddleware *SessionMiddleware
}

func NewAuthMiddlewareStack(sessionMiddleware *SessionMiddleware) *AuthMiddlewareStack {
	return &AuthMiddlewareStack{SessionMiddleware: sessionMiddleware}
}

// ApplyFullAuth vérification complète de la session
func (stack *AuthMiddlewareStack) ApplyFullAuth() []gin.HandlerFunc {
	return []gin.HandlerFunc{stack.SessionMiddleware.Full()}
}

// ApplySoftAuth verdict attaché sans rejet
func (stack *AuthMiddlewareStack) ApplySoftAuth() []gin.HandlerFunc {
	return []gin.HandlerFunc{stack.SessionMiddleware.Soft()}
}

// ApplyPermissionAuth vérification complète puis permission
func (stack *AuthMiddlewareStack) ApplyPermissionAuth(permission permissions.Permission) []gin.HandlerFunc {
	return append(stack.ApplyFullAuth(), RequirePermissionHandler(permission))
}

// Helpers pour les routes courantes

// Protected applique la vérification complète
func Protected(stack *AuthMiddlewareStack) []gin.HandlerFunc {
	return stack.ApplyFullAuth()
}

// Soft applique la vérification souple (session, connexion, changement de mot de passe)
func Soft(stack *AuthMiddlewareStack) []gin.HandlerFunc {
	return stack.ApplySoftAuth()
}

// RequirePermission vérification complète et permission du catalogue
func RequirePermission(stack *AuthMiddlewareStack, permission permissions.Permission) []gin.HandlerFunc {
	return stack.ApplyPermissionAuth(permission)
}

// With ajoute le handler final aux middlewares
func With(middlewares []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	return append(middlewares, handler)
}
