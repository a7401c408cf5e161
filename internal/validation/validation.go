// Package validation checks request structs against their validator tags
// and reports the first violation as a bad request.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Additional-Code/orders/pkg/errorbank"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Struct validates v and converts the first field violation into an
// errorbank bad request. Non-field failures are returned as internal errors.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errorbank.Internal("validation failed", errorbank.WithCause(err))
	}
	return errorbank.BadRequest(message(fieldErrs[0]), errorbank.WithCause(err))
}

func message(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("%s must be > %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "required":
		return fmt.Sprintf("%s is required", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
