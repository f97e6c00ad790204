package services

import (
	"context"
	"errors"
	"time"

	"habilitations-core/internal/app/config"
	redisInfra "habilitations-core/internal/infrastructure/database/redis"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const loginAttemptsPattern = "auth_login_attempts"

// LoginThrottle compte les échecs de connexion par login.
// Redis indisponible : la connexion reste permise.
type LoginThrottle struct {
	redisClient *redisInfra.Client
	maxAttempts int64
	window      time.Duration
	logger      *zap.Logger
}

func NewLoginThrottle(redisClient *redisInfra.Client, security *config.SecurityConfig, logger *zap.Logger) *LoginThrottle {
	maxAttempts := int64(security.LoginMaxAttempts)
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	window := security.LoginLockWindow
	if window <= 0 {
		window, _ = redisClient.TTL(loginAttemptsPattern)
	}
	return &LoginThrottle{
		redisClient: redisClient,
		maxAttempts: maxAttempts,
		window:      window,
		logger:      logger,
	}
}

func (t *LoginThrottle) Locked(ctx context.Context, login string) bool {
	key, ok := t.key(login)
	if !ok {
		return false
	}

	count, err := t.redisClient.Client().Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		t.logger.Warn("[AUTH] lecture du compteur de tentatives échouée", zap.Error(err))
		return false
	}
	return count >= t.maxAttempts
}

// Fail la fenêtre démarre au premier échec
func (t *LoginThrottle) Fail(ctx context.Context, login string) {
	key, ok := t.key(login)
	if !ok {
		return
	}

	count, err := t.redisClient.Client().Incr(ctx, key).Result()
	if err != nil {
		t.logger.Warn("[AUTH] incrément du compteur de tentatives échoué", zap.Error(err))
		return
	}
	if count == 1 {
		if err := t.redisClient.Client().Expire(ctx, key, t.window).Err(); err != nil {
			t.logger.Warn("[AUTH] expiration du compteur de tentatives échouée", zap.Error(err))
		}
	}
}

func (t *LoginThrottle) Reset(ctx context.Context, login string) {
	key, ok := t.key(login)
	if !ok {
		return
	}
	if err := t.redisClient.Del(ctx, key); err != nil {
		t.logger.Warn("[AUTH] remise à zéro du compteur de tentatives échouée", zap.Error(err))
	}
}

// key le login est haché : il peut contenir des caractères interdits dans une clé
func (t *LoginThrottle) key(login string) (string, bool) {
	key, err := t.redisClient.Key(loginAttemptsPattern, uuid.NewSHA1(uuid.NameSpaceOID, []byte(login)).String())
	if err != nil {
		t.logger.Warn("[AUTH] clé de tentatives invalide", zap.Error(err))
		return "", false
	}
	return key, true
}
