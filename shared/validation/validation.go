package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Struct validates obj against its `validate` tags and returns one entry per
// failing field, or nil when obj is valid.
func Struct(obj any) []FieldError {
	return fieldErrors(validate.Struct(obj))
}

// StructExcept validates obj like Struct but skips the named fields.
func StructExcept(obj any, fields ...string) []FieldError {
	return fieldErrors(validate.StructExcept(obj, fields...))
}

func fieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []FieldError{{Message: err.Error(), Type: "invalid"}}
	}

	out := make([]FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: errorMessage(fe),
			Type:    fe.Tag(),
		})
	}
	return out
}

// Email reports whether s is a well-formed email address.
func Email(s string) bool {
	return strings.TrimSpace(s) != "" && validate.Var(s, "email") == nil
}

// Fields joins the failing field names for log output.
func Fields(errs []FieldError) string {
	names := make([]string, len(errs))
	for i, e := range errs {
		names[i] = e.Field + ":" + e.Type
	}
	return strings.Join(names, ",")
}

func errorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "gt":
		return "Value must be greater than " + err.Param()
	default:
		return "Invalid value"
	}
}
