package seeds

import "fmt"

// SeedingError représente une erreur de seeding
type SeedingError struct {
	Message string         `json:"message"`
	Type    string         `json:"type"`
	Details map[string]any `json:"details,omitempty"`
	Err     error          `json:"-"`
}

func (e *SeedingError) Error() string {
	return e.Message
}

func (e *SeedingError) Unwrap() error {
	return e.Err
}

func NewSeedingError(message, errorType string, details map[string]any) *SeedingError {
	return &SeedingError{
		Message: message,
		Type:    errorType,
		Details: details,
	}
}

// Erreurs prédéfinies pour le seeding
var (
	ErrMissingInitPassword = func(login string) error {
		return NewSeedingError(
			fmt.Sprintf("SUPER_ADMIN_INIT_PASSWORD requis pour initialiser %s", login),
			"missing_init_password",
			map[string]any{"login": login},
		)
	}

	ErrValidation = func(message string) error {
		return NewSeedingError(message, "validation_error", nil)
	}

	ErrDatabaseOperation = func(operation string, err error) error {
		e := NewSeedingError(
			fmt.Sprintf("erreur base de données lors de %s: %v", operation, err),
			"database_error",
			map[string]any{"operation": operation},
		)
		e.Err = err
		return e
	}
)
