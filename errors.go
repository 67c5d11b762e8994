package apidoc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Sentinel errors. Use errors.Is to classify failures returned by the registry.
var (
	// ErrArgument reports a malformed call: a bad success shape, an invalid
	// resource reference, or a payload that failed validation.
	ErrArgument = errors.New("apidoc: invalid argument")

	// ErrParamGroupUndefined reports a lookup of a param group that was never added.
	ErrParamGroupUndefined = errors.New("apidoc: param group not defined")
)

// ArgumentError describes a malformed argument passed to a registry operation.
type ArgumentError struct {
	Op     string
	Detail string
	Fields []FieldError
}

// FieldError describes a single payload field that failed validation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error returns the operation and detail.
func (e *ArgumentError) Error() string {
	msg := e.Detail
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Field+": "+f.Message)
		}
		msg = strings.Join(parts, "; ")
	}
	if e.Op == "" {
		return "apidoc: " + msg
	}
	return fmt.Sprintf("apidoc: %s: %s", e.Op, msg)
}

// Is reports whether target is ErrArgument.
func (e *ArgumentError) Is(target error) bool { return target == ErrArgument }

// ConfigurationError reports a reference to a definition that does not exist.
type ConfigurationError struct {
	Key string
}

// Error returns the missing key.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("apidoc: param group %s not defined", e.Key)
}

// Is reports whether target is ErrParamGroupUndefined.
func (e *ConfigurationError) Is(target error) bool { return target == ErrParamGroupUndefined }

func argumentError(op, format string, args ...any) error {
	return &ArgumentError{Op: op, Detail: fmt.Sprintf(format, args...)}
}

// validationError converts validator failures into an ArgumentError with
// one entry per offending field.
func validationError(op string, err error) error {
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return &ArgumentError{Op: op, Detail: err.Error()}
	}
	fields := make([]FieldError, 0, len(valErrs))
	for _, ve := range valErrs {
		fields = append(fields, FieldError{
			Field:   ve.Namespace(),
			Message: formatValidationError(ve),
		})
	}
	return &ArgumentError{Op: op, Fields: fields}
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", ve.Param())
	case "dive":
		return "invalid element"
	default:
		return fmt.Sprintf("failed %s validation", ve.Tag())
	}
}
