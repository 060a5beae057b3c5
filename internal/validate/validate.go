// Package validate wraps go-playground/validator so input problems surface
// as a single human-readable domain.ValidationError before any network call.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hohoindia/event-client/internal/core/domain"
)

// Validator checks struct tags on gateway inputs.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the default tag set.
func New() *Validator {
	return &Validator{v: validator.New()}
}

// Struct validates i and converts any failures into a domain.ValidationError
// with one message per offending field.
func (va *Validator) Struct(i any) error {
	err := va.v.Struct(i)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
		return &domain.ValidationError{Message: strings.Join(msgs, "; ")}
	}
	return err
}

// fieldError converts a single tag failure into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
