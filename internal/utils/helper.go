package utils

import (
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"

	appErrors "github.com/aaravmahajanofficial/grocery-storefront/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	validate = validator.New()
	strict   = bluemonday.StrictPolicy()
)

// ValidateStruct runs the struct's validate tags and reports the first failing
// field as a ValidationError.
func ValidateStruct(data any) error {
	if err := validate.Struct(data); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			slog.Warn("User input validation failed",
				slog.String("error", validationErrs.Error()),
			)

			first := validationErrs[0]
			return appErrors.AddValidationError(strings.ToLower(first.Field()), describe(first)).WithError(err)
		}

		slog.Error("Unexpected validation error", slog.String("error", err.Error()))
		return appErrors.InternalError("Unexpected validation error").WithError(err)
	}

	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}

// SanitizeText strips all markup from user-entered text. Entities the policy
// escapes are turned back into plain characters.
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
