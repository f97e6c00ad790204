package services

import (
	"context"
	"errors"
	"strings"

	pwdServices "habilitations-core/internal/modules/password/services"
	userServices "habilitations-core/internal/modules/user/services"
	"habilitations-core/internal/shared/apperrors"
	"habilitations-core/internal/shared/utils"

	"go.uber.org/zap"
)

const (
	MsgBadCredentials  = "Login ou mot de passe incorrect"
	MsgTooManyAttempts = "Trop de tentatives de connexion. Veuillez réessayer plus tard."
)

// ErrAccountInactive identifiants corrects mais compte désactivé
var ErrAccountInactive = errors.New("compte désactivé")

type AuthService struct {
	users       *userServices.UserService
	credentials *pwdServices.CredentialService
	hasher      *utils.Hasher
	throttle    *LoginThrottle
	logger      *zap.Logger
}

func NewAuthService(
	users *userServices.UserService,
	credentials *pwdServices.CredentialService,
	hasher *utils.Hasher,
	throttle *LoginThrottle,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		credentials: credentials,
		hasher:      hasher,
		throttle:    throttle,
		logger:      logger,
	}
}

// Login vérifie les identifiants et enregistre la connexion ; retourne l'utilisateur authentifié
func (s *AuthService) Login(ctx context.Context, login, pass string) (int64, error) {
	login = utils.NormalizeKey(login)
	pass = strings.TrimSpace(pass)

	if s.throttle.Locked(ctx, login) {
		s.logger.Warn("[AUTH] connexion bloquée après trop d'échecs", zap.String("login", login))
		return 0, apperrors.TooManyRequests(MsgTooManyAttempts)
	}

	candidate, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		return 0, err
	}
	if candidate == nil || candidate.IsDelete {
		s.throttle.Fail(ctx, login)
		return 0, apperrors.Unauthorized(MsgBadCredentials)
	}

	current, err := s.credentials.GetCurrent(ctx, candidate.UserID)
	if err != nil {
		return 0, err
	}
	if current == nil {
		s.throttle.Fail(ctx, login)
		return 0, apperrors.Unauthorized(MsgBadCredentials)
	}

	match, err := s.hasher.Compare(ctx, current.Pass, pass)
	if err != nil {
		return 0, err
	}
	if !match {
		s.throttle.Fail(ctx, login)
		return 0, apperrors.Unauthorized(MsgBadCredentials)
	}

	s.throttle.Reset(ctx, login)

	if !candidate.IsActive {
		return 0, ErrAccountInactive
	}

	if _, err := s.users.RecordLogin(ctx, candidate.UserID); err != nil {
		return 0, err
	}
	return candidate.UserID, nil
}
