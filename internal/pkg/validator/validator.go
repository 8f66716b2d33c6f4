package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report json field names in violations, not Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Validate runs struct-tag validation.
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator returns the shared validator for custom configuration.
func GetValidator() *validator.Validate {
	return validate
}

// FieldViolation is a single machine-readable validation failure.
type FieldViolation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Violations flattens a validation error into per-field entries.
// Returns nil when err does not come from the validator.
func Violations(err error) []FieldViolation {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	violations := make([]FieldViolation, 0, len(errs))
	for _, e := range errs {
		msg := fmt.Sprintf("field '%s' failed on the '%s' rule", e.Field(), e.Tag())
		if e.Param() != "" {
			msg = fmt.Sprintf("%s (%s)", msg, e.Param())
		}
		violations = append(violations, FieldViolation{
			Field:   e.Field(),
			Rule:    e.Tag(),
			Message: msg,
		})
	}
	return violations
}

// Violation builds a single-entry violation list for failures detected
// outside struct-tag validation (missing or non-numeric query params).
func Violation(field, rule, message string) []FieldViolation {
	return []FieldViolation{{Field: field, Rule: rule, Message: message}}
}
