// Package response construit l'enveloppe JSON commune à toutes les routes :
// {authStatus, currentUser?, data?, message?}.
package response

import (
	"net/http"

	"habilitations-core/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthStatus string

const (
	LoggedIn            AuthStatus = "Logged in"
	LoggedOut           AuthStatus = "Logged out"
	InitializedPassword AuthStatus = "Initialized password"
	ExpiredPassword     AuthStatus = "Expired password"
	AccountDelete       AuthStatus = "Account delete"
	AccountInactive     AuthStatus = "Account inactive"
)

// Messages partagés entre middleware et contrôleurs
const (
	MsgMustLogIn          = "Vous devez vous connecter."
	MsgGenericError       = "Une erreur est survenue. Réessayez plus tard. Si cela persiste, contactez l'Administrateur."
	MsgAccountDeleted     = "Votre compte a été supprimé"
	MsgAccountInactive    = "Votre compte est désactivé. Veuillez contacter votre Administrateur."
	MsgInitializedPass    = "Votre mot de passe a été réinitialisé. Vous devez le mettre à jour."
	MsgExpiredPass        = "Votre mot de passe a expiré. Vous devez le mettre à jour."
	MsgPermissionDenied   = "Vous n'avez pas les permissions nécessaires."
	MsgInvalidRequestBody = "Données de la requête invalides"
)

const (
	authStatusKey  = "auth_status"
	currentUserKey = "current_user"
	authMessageKey = "auth_message"
)

// CurrentUser identité renvoyée au client avec ses permissions effectives
type CurrentUser struct {
	Nom         string   `json:"nom"`
	Prenom      *string  `json:"prenom"`
	Genre       string   `json:"genre"`
	Permissions []string `json:"permissions"`
}

// Verdict résultat de la résolution de session pour un utilisateur
type Verdict struct {
	Status  AuthStatus
	User    *CurrentUser
	Message string
}

type ApiResponse struct {
	AuthStatus  AuthStatus   `json:"authStatus"`
	CurrentUser *CurrentUser `json:"currentUser,omitempty"`
	Data        any          `json:"data,omitempty"`
	Message     string       `json:"message,omitempty"`
}

// SetAuth enregistre le verdict de session dans le contexte Gin
func SetAuth(c *gin.Context, status AuthStatus, user *CurrentUser) {
	c.Set(authStatusKey, status)
	c.Set(currentUserKey, user)
}

// SetVerdict enregistre le verdict et son message
func SetVerdict(c *gin.Context, v Verdict) {
	SetAuth(c, v.Status, v.User)
	if v.Message != "" {
		c.Set(authMessageKey, v.Message)
	}
}

// VerdictMessage message associé au verdict courant
func VerdictMessage(c *gin.Context) string {
	return c.GetString(authMessageKey)
}

// Auth lit le verdict ; LoggedOut si aucun middleware ne l'a posé
func Auth(c *gin.Context) (AuthStatus, *CurrentUser) {
	status := LoggedOut
	if value, ok := c.Get(authStatusKey); ok {
		if s, ok := value.(AuthStatus); ok {
			status = s
		}
	}

	var user *CurrentUser
	if value, ok := c.Get(currentUserKey); ok {
		user, _ = value.(*CurrentUser)
	}
	return status, user
}

// Envelope construit la réponse à partir du verdict courant
func Envelope(c *gin.Context, data any, message string) ApiResponse {
	status, user := Auth(c)
	return ApiResponse{
		AuthStatus:  status,
		CurrentUser: user,
		Data:        data,
		Message:     message,
	}
}

// Send écrit l'enveloppe avec le code HTTP donné
func Send(c *gin.Context, httpStatus int, data any, message string) {
	c.JSON(httpStatus, Envelope(c, data, message))
}

// OK raccourci 200
func OK(c *gin.Context, data any, message string) {
	Send(c, http.StatusOK, data, message)
}

// Abort interrompt la chaîne avec un statut d'authentification explicite
func Abort(c *gin.Context, httpStatus int, status AuthStatus, user *CurrentUser, message string) {
	c.AbortWithStatusJSON(httpStatus, ApiResponse{
		AuthStatus:  status,
		CurrentUser: user,
		Message:     message,
	})
}

// Fail traduit une erreur de service en réponse HTTP.
// Les erreurs non typées sont journalisées et masquées derrière le message générique.
func Fail(c *gin.Context, logger *zap.Logger, err error) {
	appErr, ok := apperrors.As(err)
	if !ok || appErr.Kind == apperrors.KindInternal {
		logger.Error("[HTTP] erreur interne",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope(c, nil, MsgGenericError))
		return
	}

	var data any
	if len(appErr.Details) > 0 {
		data = appErr.Details
	}
	c.AbortWithStatusJSON(StatusOf(appErr.Kind), Envelope(c, data, appErr.Message))
}

// StatusOf code HTTP associé à un type d'erreur
func StatusOf(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return http.StatusBadRequest
	case apperrors.KindUnauthorized:
		return http.StatusUnauthorized
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindConflict:
		return http.StatusConflict
	case apperrors.KindTooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
