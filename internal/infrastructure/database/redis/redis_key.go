package redis

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	validKeyRegex    = regexp.MustCompile(`^[a-zA-Z0-9_:\-.]+$`)
	validPrefixRegex = regexp.MustCompile(`^[a-z0-9_]+$`)
)

// RedisKeyGenerator génère et valide les clés Redis
type RedisKeyGenerator struct {
	prefix string
}

// NewRedisKeyGenerator crée une nouvelle instance du générateur
func NewRedisKeyGenerator(prefix string) *RedisKeyGenerator {
	return &RedisKeyGenerator{prefix: strings.ToLower(prefix)}
}

// RedisKeyPattern définit les patterns standards des clés
// Pattern: {prefix}_{domain}_{context}:{identifier}
type RedisKeyPattern struct {
	Domain  string
	Context string
	TTL     time.Duration // 0 = fixé par l'appelant
}

// Seuls les patterns réellement implémentés sont listés ici
var RedisKeyPatterns = map[string]RedisKeyPattern{
	// Sessions : TTL glissant fixé par la configuration de session
	"auth_session": {Domain: "auth", Context: "session", TTL: 0},
	// Tentatives de connexion échouées par login
	"auth_login_attempts": {Domain: "auth", Context: "login_attempts", TTL: 15 * time.Minute},
}

// GenerateKey génère une clé Redis : {prefix}_{domain}_{context}:{identifier}
func (rkg *RedisKeyGenerator) GenerateKey(patternName string, identifier ...string) (string, error) {
	pattern, exists := RedisKeyPatterns[patternName]
	if !exists {
		return "", fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}

	if !validPrefixRegex.MatchString(rkg.prefix) {
		return "", fmt.Errorf("préfixe Redis invalide: %q", rkg.prefix)
	}

	prefix := fmt.Sprintf("%s_%s_%s", rkg.prefix, pattern.Domain, pattern.Context)

	key := prefix
	if len(identifier) > 0 {
		key = fmt.Sprintf("%s:%s", prefix, strings.Join(identifier, "_"))
	}

	if err := rkg.ValidateKey(key); err != nil {
		return "", err
	}
	return key, nil
}

// GetTTL récupère le TTL d'un pattern
func (rkg *RedisKeyGenerator) GetTTL(patternName string) (time.Duration, error) {
	pattern, exists := RedisKeyPatterns[patternName]
	if !exists {
		return 0, fmt.Errorf("pattern Redis non trouvé: %s", patternName)
	}
	return pattern.TTL, nil
}

// ValidateKey valide qu'une clé respecte les conventions
func (rkg *RedisKeyGenerator) ValidateKey(key string) error {
	if len(key) == 0 {
		return fmt.Errorf("clé vide")
	}

	if len(key) > 250 {
		return fmt.Errorf("clé trop longue (max 250 caractères): %d", len(key))
	}

	if !validKeyRegex.MatchString(key) {
		return fmt.Errorf("clé contient des caractères invalides: %s", key)
	}

	if !strings.HasPrefix(key, rkg.prefix+"_") {
		return fmt.Errorf("clé doit commencer par '%s_': %s", rkg.prefix, key)
	}

	return nil
}
