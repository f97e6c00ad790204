// Package apperrors définit les erreurs métier typées. Le type (Kind)
// détermine le code HTTP ; le message est celui affiché au client.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindInternal        Kind = "INTERNAL"
	KindValidation      Kind = "VALIDATION"
	KindUnauthorized    Kind = "UNAUTHORIZED"
	KindNotFound        Kind = "NOT_FOUND"
	KindConflict        Kind = "CONFLICT"
	KindTooManyRequests Kind = "TOO_MANY_REQUESTS"
)

type AppError struct {
	Kind    Kind
	Message string
	Details map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func NotFound(message string) *AppError {
	return New(KindNotFound, message)
}

func Conflict(message string) *AppError {
	return New(KindConflict, message)
}

func Unauthorized(message string) *AppError {
	return New(KindUnauthorized, message)
}

func TooManyRequests(message string) *AppError {
	return New(KindTooManyRequests, message)
}

// Validation erreur 400 avec le détail par champ
func Validation(message string, details map[string]string) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Details: details}
}

// Required champ obligatoire resté vide après normalisation
func Required(field string) *AppError {
	return Validation("Données invalides", map[string]string{field: "Ce champ est requis"})
}

// Internal enveloppe une erreur technique ; le message n'est jamais exposé
func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "erreur interne", Err: err}
}

// As extrait l'AppError d'une chaîne d'erreurs
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind indique si err porte le type donné
func IsKind(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
