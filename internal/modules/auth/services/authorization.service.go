package services

import (
	"context"
	"fmt"

	pwdServices "habilitations-core/internal/modules/password/services"
	profileServices "habilitations-core/internal/modules/profile/services"
	userDto "habilitations-core/internal/modules/user/dto"
	userServices "habilitations-core/internal/modules/user/services"
	"habilitations-core/internal/shared/response"

	"golang.org/x/sync/errgroup"
)

type accountReader interface {
	GetStatus(ctx context.Context, userID int64) (*userDto.UserStatus, error)
	GetIdentity(ctx context.Context, userID int64) (*userDto.Identity, error)
}

type passwordState interface {
	IsInitial(ctx context.Context, userID int64) (bool, error)
	IsExpired(ctx context.Context, userID int64) (bool, error)
}

type permissionSource interface {
	EffectivePermissionsForUser(ctx context.Context, userID int64) ([]string, error)
}

// AuthorizationService calcule le verdict d'une session à chaque requête
type AuthorizationService struct {
	accounts    accountReader
	passwords   passwordState
	permissions permissionSource
}

func NewAuthorizationService(
	users *userServices.UserService,
	credentials *pwdServices.CredentialService,
	profiles *profileServices.ProfileService,
) *AuthorizationService {
	return &AuthorizationService{
		accounts:    users,
		passwords:   credentials,
		permissions: profiles,
	}
}

// Resolve ordre de priorité : supprimé, inactif, mot de passe initial, expiré, connecté
func (s *AuthorizationService) Resolve(ctx context.Context, userID int64) (response.Verdict, error) {
	var (
		status           *userDto.UserStatus
		identity         *userDto.Identity
		initial, expired bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		status, err = s.accounts.GetStatus(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		identity, err = s.accounts.GetIdentity(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		initial, err = s.passwords.IsInitial(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		expired, err = s.passwords.IsExpired(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return response.Verdict{}, err
	}
	if status == nil || identity == nil {
		return response.Verdict{}, fmt.Errorf("utilisateur %d introuvable pour une session active", userID)
	}

	switch {
	case status.IsDelete:
		return response.Verdict{Status: response.AccountDelete, Message: response.MsgAccountDeleted}, nil
	case !status.IsActive:
		return response.Verdict{Status: response.AccountInactive, Message: response.MsgAccountInactive}, nil
	case initial:
		return response.Verdict{
			Status:  response.InitializedPassword,
			User:    currentUser(identity, []string{}),
			Message: response.MsgInitializedPass,
		}, nil
	case expired:
		return response.Verdict{
			Status:  response.ExpiredPassword,
			User:    currentUser(identity, []string{}),
			Message: response.MsgExpiredPass,
		}, nil
	}

	perms, err := s.permissions.EffectivePermissionsForUser(ctx, userID)
	if err != nil {
		return response.Verdict{}, err
	}
	return response.Verdict{Status: response.LoggedIn, User: currentUser(identity, perms)}, nil
}

func currentUser(identity *userDto.Identity, perms []string) *response.CurrentUser {
	if perms == nil {
		perms = []string{}
	}
	return &response.CurrentUser{
		Nom:         identity.Nom,
		Prenom:      identity.Prenom,
		Genre:       identity.Genre,
		Permissions: perms,
	}
}
