package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/aueb-cf/inventory-service/internal/domain"
	apperrors "github.com/aueb-cf/inventory-service/pkg/util"
)

const passwordSpecials = "@$!%*?&"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the custom rules registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
			return StrongPassword(fl.Field().String())
		})
		// bcrypt reads at most 72 bytes; "max" would count runes.
		_ = validate.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
			limit, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return len(fl.Field().String()) <= limit
		})
		_ = validate.RegisterValidation("role", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseRole(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// StrongPassword requires at least five characters including a lowercase
// letter, an uppercase letter, a digit and one of @$!%*?&.
func StrongPassword(p string) bool {
	if len([]rune(p)) < 5 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return lower && upper && digit && special
}

// Validate checks s and returns a validationFailed error listing each bad field.
func Validate(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("invalid request", nil)
	}

	fields := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	return apperrors.NewValidationError("request validation failed", map[string]any{"fields": fields})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "strongpassword":
		return "must be at least 5 characters with a lowercase letter, an uppercase letter, a digit and one of " + passwordSpecials
	case "role":
		return "must be USER or ADMIN"
	case "maxbytes":
		return fmt.Sprintf("must be at most %s bytes", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt", "gte":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return "is invalid"
	}
}
