package utils

import "strings"

// NormalizeKey trim + majuscules ; utilisé pour les logins et libellés de profil
func NormalizeKey(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// TrimOptional retourne nil pour une valeur absente ou vide après trim
func TrimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
