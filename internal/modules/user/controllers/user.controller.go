package controllers

import (
	"habilitations-core/internal/modules/user/dto"
	"habilitations-core/internal/modules/user/services"
	authMiddleware "habilitations-core/internal/shared/middleware/auth"
	"habilitations-core/internal/shared/response"
	"habilitations-core/internal/shared/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserController struct {
	users     *services.UserService
	loggings  *services.LoggingService
	validator *validation.Validator
	logger    *zap.Logger
}

func NewUserController(
	users *services.UserService,
	loggings *services.LoggingService,
	validator *validation.Validator,
	logger *zap.Logger,
) *UserController {
	return &UserController{
		users:     users,
		loggings:  loggings,
		validator: validator,
		logger:    logger,
	}
}

// GET /user/users
func (ctrl *UserController) ListUsers(c *gin.Context) {
	users, err := ctrl.users.List(c.Request.Context())
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	if users == nil {
		users = []dto.User{}
	}
	response.OK(c, users, "")
}

// GET /user/usersWithProfiles
func (ctrl *UserController) ListUsersWithProfiles(c *gin.Context) {
	users, err := ctrl.users.ListWithProfiles(c.Request.Context())
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	response.OK(c, users, "")
}

// GET /user/user/:id
func (ctrl *UserController) GetUser(c *gin.Context) {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	user, err := ctrl.users.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	response.OK(c, user, "")
}

// POST /user/user
func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctrl.validator.BindJSON(c, &req); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	actorID, _ := authMiddleware.UserID(c)
	result, err := ctrl.users.Create(c.Request.Context(), req, actorID)
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	message := "Utilisateur créé avec succès"
	if result.Reactivated {
		message = "Utilisateur restauré avec succès"
	}
	response.OK(c, result, message)
}

// PUT /user/user
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := ctrl.validator.BindJSON(c, &req); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	actorID, _ := authMiddleware.UserID(c)
	if err := ctrl.users.Update(c.Request.Context(), req, actorID); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	response.OK(c, true, "Utilisateur mis à jour avec succès")
}

// DELETE /user/user/:id
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	actorID, _ := authMiddleware.UserID(c)
	if err := ctrl.users.SoftDelete(c.Request.Context(), id, actorID); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	response.OK(c, true, "Utilisateur supprimé avec succès")
}

// PUT /user/changeUserStatus
func (ctrl *UserController) ChangeUserStatus(c *gin.Context) {
	var req dto.ChangeStatusRequest
	if err := ctrl.validator.BindJSON(c, &req); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	actorID, _ := authMiddleware.UserID(c)
	if err := ctrl.users.ChangeStatus(c.Request.Context(), req.UserID, *req.IsActive, actorID); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	message := "Utilisateur désactivé avec succès"
	if *req.IsActive {
		message = "Utilisateur activé avec succès"
	}
	response.OK(c, true, message)
}

// POST /user/userLoggings
func (ctrl *UserController) SearchLoggings(c *gin.Context) {
	var req dto.LoggingSearchRequest
	if err := ctrl.validator.BindJSON(c, &req); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	loggings, err := ctrl.loggings.Search(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	response.OK(c, loggings, "")
}
