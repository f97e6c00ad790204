package services

import (
	"context"
	"testing"
	"time"

	"habilitations-core/internal/app/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoginThrottle_LocksAfterMaxAttempts(t *testing.T) {
	rc, mr := newRedis(t)
	throttle := NewLoginThrottle(rc, &config.SecurityConfig{LoginMaxAttempts: 3, LoginLockWindow: 10 * time.Minute}, zap.NewNop())
	ctx := context.Background()

	for range 2 {
		throttle.Fail(ctx, "ADIALLO")
	}
	assert.False(t, throttle.Locked(ctx, "ADIALLO"))

	throttle.Fail(ctx, "ADIALLO")
	assert.True(t, throttle.Locked(ctx, "ADIALLO"))
	assert.False(t, throttle.Locked(ctx, "BDIOP"))

	key, _ := throttle.key("ADIALLO")
	assert.Equal(t, 10*time.Minute, mr.TTL(key))

	mr.FastForward(11 * time.Minute)
	assert.False(t, throttle.Locked(ctx, "ADIALLO"))
}

func TestLoginThrottle_Reset(t *testing.T) {
	rc, _ := newRedis(t)
	throttle := NewLoginThrottle(rc, &config.SecurityConfig{LoginMaxAttempts: 1}, zap.NewNop())
	ctx := context.Background()

	throttle.Fail(ctx, "ADIALLO")
	assert.True(t, throttle.Locked(ctx, "ADIALLO"))

	throttle.Reset(ctx, "ADIALLO")
	assert.False(t, throttle.Locked(ctx, "ADIALLO"))
}

func TestLoginThrottle_RedisDownAllowsLogin(t *testing.T) {
	rc, mr := newRedis(t)
	throttle := NewLoginThrottle(rc, &config.SecurityConfig{LoginMaxAttempts: 1}, zap.NewNop())
	mr.Close()

	throttle.Fail(context.Background(), "ADIALLO")
	assert.False(t, throttle.Locked(context.Background(), "ADIALLO"))
}

func TestLoginThrottle_KeyAcceptsAnyLogin(t *testing.T) {
	rc, _ := newRedis(t)
	throttle := NewLoginThrottle(rc, &config.SecurityConfig{}, zap.NewNop())

	key, ok := throttle.key("l'utilisateur é/ç")
	assert.True(t, ok)
	assert.Contains(t, key, keyPrefix+"_auth_login_attempts:")
}
