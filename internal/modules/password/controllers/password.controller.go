package controllers

import (
	"net/http"

	"habilitations-core/internal/modules/password/dto"
	"habilitations-core/internal/modules/password/services"
	"habilitations-core/internal/shared/apperrors"
	authMiddleware "habilitations-core/internal/shared/middleware/auth"
	"habilitations-core/internal/shared/response"
	"habilitations-core/internal/shared/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	MsgPassParamUpdated = "Paramètres des mots de passe mis à jour avec succès"
	MsgUserPassReset    = "Mot de passe de l'utilisateur réinitialisé avec succès"
	MsgOwnPassUpdated   = "Mot de passe mis à jour avec succès."
	MsgPassParamMissing = "Aucun paramétrage des mots de passe trouvé"
)

type PasswordController struct {
	passwords  *services.PasswordService
	policy     *services.PolicyService
	authorizer authMiddleware.Authorizer
	validator  *validation.Validator
	logger     *zap.Logger
}

func NewPasswordController(
	passwords *services.PasswordService,
	policy *services.PolicyService,
	authorizer authMiddleware.Authorizer,
	validator *validation.Validator,
	logger *zap.Logger,
) *PasswordController {
	return &PasswordController{
		passwords:  passwords,
		policy:     policy,
		authorizer: authorizer,
		validator:  validator,
		logger:     logger,
	}
}

// GET /password/passParam
func (ctrl *PasswordController) GetPassParam(c *gin.Context) {
	param, err := ctrl.policy.Get(c.Request.Context())
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	if param == nil {
		response.Fail(c, ctrl.logger, apperrors.NotFound(MsgPassParamMissing))
		return
	}
	response.OK(c, param, "")
}

// PUT /password/passParam
func (ctrl *PasswordController) UpdatePassParam(c *gin.Context) {
	var req dto.UpdatePassParamRequest
	if err := ctrl.validator.BindJSON(c, &req); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	actorID, _ := authMiddleware.UserID(c)
	if err := ctrl.policy.Upsert(c.Request.Context(), req.PassExpirDay, *req.AllowPastPass, actorID); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	response.OK(c, true, MsgPassParamUpdated)
}

// POST /password/userPass
func (ctrl *PasswordController) ResetUserPass(c *gin.Context) {
	var req dto.ResetUserPassRequest
	if err := ctrl.validator.BindJSON(c, &req); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	actorID, _ := authMiddleware.UserID(c)
	if err := ctrl.passwords.ResetUserPassword(c.Request.Context(), req.UserID, req.Pass, actorID); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	response.OK(c, true, MsgUserPassReset)
}

// PUT /password/userPass : accessible avec un mot de passe initial ou expiré
func (ctrl *PasswordController) ChangeOwnPass(c *gin.Context) {
	userID, ok := authMiddleware.UserID(c)
	if !ok {
		response.Abort(c, http.StatusUnauthorized, response.LoggedOut, nil, response.MsgMustLogIn)
		return
	}

	status, _ := response.Auth(c)
	switch status {
	case response.AccountDelete, response.AccountInactive:
		response.Abort(c, http.StatusUnauthorized, status, nil, response.VerdictMessage(c))
		return
	case response.LoggedOut:
		response.Abort(c, http.StatusUnauthorized, response.LoggedOut, nil, response.MsgMustLogIn)
		return
	}

	var req dto.ChangeOwnPassRequest
	if err := ctrl.validator.BindJSON(c, &req); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	forced := status == response.InitializedPassword || status == response.ExpiredPassword
	ctx := c.Request.Context()
	if err := ctrl.passwords.ChangeOwnPassword(ctx, userID, req.OldPass, req.Pass, req.IsUpdate, forced); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	// Le nouveau mot de passe lève l'état initial/expiré : verdict recalculé
	verdict, err := ctrl.authorizer.Resolve(ctx, userID)
	if err != nil {
		ctrl.logger.Warn("[PASSWORD] recalcul du verdict échoué", zap.Int64("user_id", userID), zap.Error(err))
		_, user := response.Auth(c)
		response.SetAuth(c, response.LoggedIn, user)
	} else {
		response.SetVerdict(c, verdict)
	}
	response.OK(c, true, MsgOwnPassUpdated)
}
