package services

import (
	"context"
	"fmt"
	"strings"

	"habilitations-core/internal/app/config"
	"habilitations-core/internal/infrastructure/database/postgres"
	"habilitations-core/internal/modules/password/queries"
	"habilitations-core/internal/shared/apperrors"
	"habilitations-core/internal/shared/utils"
)

const (
	MsgUserNotFound  = "Utilisateur introuvable"
	MsgWrongPassword = "Mot de passe incorrect"
	MsgPasswordUsed  = "Mot de passe déjà utilisé"
)

// PasswordService réinitialisation administrateur et changement par l'utilisateur
type PasswordService struct {
	db              postgres.DB
	credentials     *CredentialService
	policy          *PolicyService
	hasher          *utils.Hasher
	superAdminLogin string
}

func NewPasswordService(
	db postgres.DB,
	credentials *CredentialService,
	policy *PolicyService,
	hasher *utils.Hasher,
	superAdmin *config.SuperAdminConfig,
) *PasswordService {
	return &PasswordService{
		db:              db,
		credentials:     credentials,
		policy:          policy,
		hasher:          hasher,
		superAdminLogin: superAdmin.Login,
	}
}

// ResetUserPassword attribue un mot de passe initial (is_init) à un utilisateur géré
func (s *PasswordService) ResetUserPassword(ctx context.Context, userID int64, pass string, actorID int64) error {
	pass = strings.TrimSpace(pass)
	if pass == "" {
		return apperrors.Required("pass")
	}

	var exists bool
	if err := s.db.QueryRow(ctx, queries.PasswordQueries.ManagedUserExists, userID, s.superAdminLogin).Scan(&exists); err != nil {
		return fmt.Errorf("vérification utilisateur %d: %w", userID, err)
	}
	if !exists {
		return apperrors.NotFound(MsgUserNotFound)
	}

	hashed, err := s.hasher.Hash(ctx, pass)
	if err != nil {
		return err
	}

	_, err = s.credentials.Create(ctx, userID, hashed, true, actorID)
	return err
}

// ChangeOwnPassword vérifie l'ancien mot de passe et l'historique puis enregistre le nouveau.
// Un changement imposé (mot de passe initial ou expiré) crée toujours un nouveau mot de passe
// courant ; isUpdate n'écrase le courant que pour un changement volontaire.
func (s *PasswordService) ChangeOwnPassword(ctx context.Context, userID int64, oldPass, newPass string, isUpdate, forced bool) error {
	oldPass = strings.TrimSpace(oldPass)
	newPass = strings.TrimSpace(newPass)
	if newPass == "" {
		return apperrors.Required("pass")
	}

	current, err := s.credentials.GetCurrent(ctx, userID)
	if err != nil {
		return err
	}
	if current == nil {
		return apperrors.Unauthorized(MsgWrongPassword)
	}

	match, err := s.hasher.Compare(ctx, current.Pass, oldPass)
	if err != nil {
		return err
	}
	if !match {
		return apperrors.Unauthorized(MsgWrongPassword)
	}

	allowPast, err := s.policy.AllowPastPass(ctx)
	if err != nil {
		return err
	}
	if !allowPast {
		used, err := s.credentials.IsInHistory(ctx, userID, newPass)
		if err != nil {
			return err
		}
		if used {
			return apperrors.Unauthorized(MsgPasswordUsed)
		}
	}

	hashed, err := s.hasher.Hash(ctx, newPass)
	if err != nil {
		return err
	}

	if isUpdate && !forced {
		return s.credentials.Update(ctx, userID, hashed)
	}
	_, err = s.credentials.Create(ctx, userID, hashed, false, userID)
	return err
}
