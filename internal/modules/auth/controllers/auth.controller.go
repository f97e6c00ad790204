package controllers

import (
	"errors"
	"net/http"

	"habilitations-core/internal/modules/auth/dto"
	"habilitations-core/internal/modules/auth/services"
	authMiddleware "habilitations-core/internal/shared/middleware/auth"
	"habilitations-core/internal/shared/response"
	"habilitations-core/internal/shared/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	MsgAlreadyLoggedOut = "Vous êtes déjà déconnecté."
	MsgLoggedOut        = "Vous avez été déconnecté(e) avec succès."
	MsgLogoutFailed     = "Nous avons eu du mal à vous déconnecter. Veuillez réessayer plutard. Si cela persiste contactez l'administrateur."
)

type AuthController struct {
	auth       *services.AuthService
	sessions   *services.SessionManager
	authorizer authMiddleware.Authorizer
	activity   authMiddleware.ActivityRecorder
	validator  *validation.Validator
	logger     *zap.Logger
}

func NewAuthController(
	auth *services.AuthService,
	sessions *services.SessionManager,
	authorizer authMiddleware.Authorizer,
	activity authMiddleware.ActivityRecorder,
	validator *validation.Validator,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		auth:       auth,
		sessions:   sessions,
		authorizer: authorizer,
		activity:   activity,
		validator:  validator,
		logger:     logger,
	}
}

// Session - GET /user/session : verdict de la vérification souple
func (ctrl *AuthController) Session(c *gin.Context) {
	response.OK(c, nil, response.VerdictMessage(c))
}

// Login - POST /user/auth
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := ctrl.validator.BindJSON(c, &req); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	ctx := c.Request.Context()
	userID, err := ctrl.auth.Login(ctx, req.Login, req.Pass)
	if errors.Is(err, services.ErrAccountInactive) {
		response.Abort(c, http.StatusUnauthorized, response.AccountInactive, nil, response.MsgAccountInactive)
		return
	}
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	sess, err := ctrl.sessions.Start(c, userID)
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	authMiddleware.Bind(c, sess.ID, userID)

	verdict, err := ctrl.authorizer.Resolve(ctx, userID)
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	response.SetVerdict(c, verdict)

	ctrl.logger.Info("[AUTH] connexion réussie", zap.Int64("user_id", userID), zap.String("status", string(verdict.Status)))
	response.OK(c, true, verdict.Message)
}

// Logout - GET /user/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	userID, ok := authMiddleware.UserID(c)
	if !ok {
		response.SetAuth(c, response.LoggedOut, nil)
		response.OK(c, nil, MsgAlreadyLoggedOut)
		return
	}

	if err := ctrl.activity.RecordLatestActivity(c.Request.Context(), userID, false); err != nil {
		ctrl.logger.Warn("[AUTH] clôture de la connexion échouée", zap.Int64("user_id", userID), zap.Error(err))
	}

	if err := ctrl.sessions.Destroy(c, authMiddleware.SessionID(c)); err != nil {
		ctrl.logger.Error("[AUTH] destruction de session échouée", zap.Int64("user_id", userID), zap.Error(err))
		response.Send(c, http.StatusInternalServerError, nil, MsgLogoutFailed)
		return
	}

	authMiddleware.Unbind(c)
	response.SetAuth(c, response.LoggedOut, nil)
	response.OK(c, nil, MsgLoggedOut)
}
