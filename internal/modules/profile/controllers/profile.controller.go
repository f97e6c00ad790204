package controllers

import (
	"habilitations-core/internal/modules/profile/dto"
	"habilitations-core/internal/modules/profile/services"
	authMiddleware "habilitations-core/internal/shared/middleware/auth"
	"habilitations-core/internal/shared/response"
	"habilitations-core/internal/shared/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileController struct {
	service   *services.ProfileService
	validator *validation.Validator
	logger    *zap.Logger
}

func NewProfileController(service *services.ProfileService, validator *validation.Validator, logger *zap.Logger) *ProfileController {
	return &ProfileController{
		service:   service,
		validator: validator,
		logger:    logger,
	}
}

// GET /profile/profiles
func (ctrl *ProfileController) ListProfiles(c *gin.Context) {
	profils, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	response.OK(c, profils, "")
}

// GET /profile/profilesWithPermissions
func (ctrl *ProfileController) ListProfilesWithPermissions(c *gin.Context) {
	profils, err := ctrl.service.ListWithPermissions(c.Request.Context())
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	response.OK(c, profils, "")
}

// GET /profile/profile/:id
func (ctrl *ProfileController) GetProfile(c *gin.Context) {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	profil, err := ctrl.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	response.OK(c, profil, "")
}

// GET /profile/profilePermissions/:id
func (ctrl *ProfileController) GetProfilePermissions(c *gin.Context) {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	perms, err := ctrl.service.PermissionsOfProfile(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	response.OK(c, perms, "")
}

// GET /profile/userProfiles/:id
func (ctrl *ProfileController) GetUserProfiles(c *gin.Context) {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	profils, err := ctrl.service.ProfilesOfUser(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	response.OK(c, profils, "")
}

// GET /profile/permissionGroups
func (ctrl *ProfileController) PermissionGroups(c *gin.Context) {
	response.OK(c, dto.CatalogGroups(), "")
}

// POST /profile/profile
func (ctrl *ProfileController) CreateProfile(c *gin.Context) {
	var req dto.CreateProfilRequest
	if err := ctrl.validator.BindJSON(c, &req); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	actorID, _ := authMiddleware.UserID(c)
	result, err := ctrl.service.Create(c.Request.Context(), req.ProfilLib, actorID)
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	message := "Profil créé avec succès"
	if result.Reactivated {
		message = "Profil restauré avec succès"
	}
	response.OK(c, result, message)
}

// PUT /profile/profile
func (ctrl *ProfileController) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfilRequest
	if err := ctrl.validator.BindJSON(c, &req); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	actorID, _ := authMiddleware.UserID(c)
	if err := ctrl.service.Update(c.Request.Context(), req.ProfilID, req.ProfilLib, actorID); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	response.OK(c, true, "Profil mis à jour avec succès")
}

// DELETE /profile/profile/:id
func (ctrl *ProfileController) DeleteProfile(c *gin.Context) {
	id, err := validation.ParamID(c, "id")
	if err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	actorID, _ := authMiddleware.UserID(c)
	if err := ctrl.service.SoftDelete(c.Request.Context(), id, actorID); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	response.OK(c, true, "Profil supprimé avec succès")
}

// PUT /profile/profilePermissions
func (ctrl *ProfileController) ReplaceProfilePermissions(c *gin.Context) {
	var req dto.ReplacePermissionsRequest
	if err := ctrl.validator.BindJSON(c, &req); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	actorID, _ := authMiddleware.UserID(c)
	if err := ctrl.service.ReplacePermissions(c.Request.Context(), req.ProfilID, req.Permissions, actorID); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	response.OK(c, true, "Permissions du profil mises à jour avec succès")
}

// PUT /profile/userProfiles
func (ctrl *ProfileController) ReplaceUserProfiles(c *gin.Context) {
	var req dto.ReplaceUserProfilesRequest
	if err := ctrl.validator.BindJSON(c, &req); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}

	actorID, _ := authMiddleware.UserID(c)
	if err := ctrl.service.ReplaceUserProfiles(c.Request.Context(), req.UserID, req.ProfilIDs, actorID); err != nil {
		response.Fail(c, ctrl.logger, err)
		return
	}
	response.OK(c, true, "Profils de l'utilisateur mis à jour avec succès")
}
