// Package validation regroupe le décodage et la validation des corps JSON.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"habilitations-core/internal/shared/apperrors"
	"habilitations-core/internal/shared/permissions"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Noms de champs JSON dans les messages
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Valeur du catalogue de permissions
	mustRegister(v, "permission", func(fl validator.FieldLevel) bool {
		return permissions.IsValid(fl.Field().String())
	})
	// Chaîne non vide une fois les espaces retirés
	mustRegister(v, "notblank", validators.NotBlank)

	return &Validator{validate: v}
}

// mustRegister une balise mal déclarée est une erreur de programmation
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validation: balise %q: %v", tag, err))
	}
}

// Struct valide une structure déjà décodée
func (v *Validator) Struct(value any) error {
	err := v.validate.Struct(value)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.Validation(MsgInvalidData, nil)
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		details[fieldPath(fieldErr)] = Message(fieldErr)
	}
	return apperrors.Validation(MsgInvalidData, details)
}

// BindJSON décode le corps puis le valide
func (v *Validator) BindJSON(c *gin.Context, dest any) error {
	if err := c.ShouldBindJSON(dest); err != nil {
		return apperrors.Validation(MsgInvalidData, map[string]string{"body": "JSON invalide"})
	}
	return v.Struct(dest)
}

const MsgInvalidData = "Données invalides"

// fieldPath retire le nom de la structure racine : "userData.login"
func fieldPath(err validator.FieldError) string {
	ns := err.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return err.Field()
}

func Message(err validator.FieldError) string {
	switch err.Tag() {
	case "required", "notblank":
		return "Ce champ est requis"
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("Doit contenir au moins %s caractères", err.Param())
		}
		return fmt.Sprintf("Doit être supérieur ou égal à %s", err.Param())
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("Doit contenir au maximum %s caractères", err.Param())
		}
		return fmt.Sprintf("Doit être inférieur ou égal à %s", err.Param())
	case "email":
		return "Format d'email invalide"
	case "oneof":
		return fmt.Sprintf("Valeur invalide. Valeurs autorisées: %s", err.Param())
	case "permission":
		return "Permission inconnue"
	case "gt":
		return fmt.Sprintf("Doit être supérieur à %s", err.Param())
	default:
		return "Valeur invalide"
	}
}

// ParamID lit un identifiant numérique positif dans le chemin
func ParamID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation(MsgInvalidData, map[string]string{name: "Identifiant invalide"})
	}
	return id, nil
}
