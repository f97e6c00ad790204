package redis

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	g := NewRedisKeyGenerator("Habilitations_Test")

	key, err := g.GenerateKey("auth_session", "3f6c2a1e-8d9b-4c57-a2e1-0b7d5c4e9f10")
	require.NoError(t, err)
	assert.Equal(t, "habilitations_test_auth_session:3f6c2a1e-8d9b-4c57-a2e1-0b7d5c4e9f10", key)

	ttl, err := g.GetTTL("auth_login_attempts")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, ttl)
}

func TestGenerateKey_Errors(t *testing.T) {
	g := NewRedisKeyGenerator("habilitations_test")

	_, err := g.GenerateKey("inconnu", "x")
	assert.Error(t, err)

	_, err = g.GenerateKey("auth_session", "avec espace")
	assert.Error(t, err)

	_, err = g.GenerateKey("auth_session", strings.Repeat("a", 260))
	assert.Error(t, err)

	_, err = NewRedisKeyGenerator("bad-prefix").GenerateKey("auth_session", "x")
	assert.Error(t, err)
}

func TestValidateKey_Prefix(t *testing.T) {
	g := NewRedisKeyGenerator("habilitations_test")

	assert.NoError(t, g.ValidateKey("habilitations_test_auth_session:abc"))
	assert.Error(t, g.ValidateKey("other_auth_session:abc"))
	assert.Error(t, g.ValidateKey(""))
}
