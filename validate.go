package apidoc

import "github.com/go-playground/validator/v10"

// SelfValidator is implemented by payloads that validate themselves.
type SelfValidator interface {
	Validate() error
}

// Validator validates a description payload before it reaches the catalog.
type Validator interface {
	Validate(payload any) error
}

// structValidator checks `validate` struct tags on payloads.
type structValidator struct {
	v *validator.Validate
}

// NewStructValidator returns the default Validator, driven by `validate`
// struct tags.
func NewStructValidator() Validator {
	return &structValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (s *structValidator) Validate(payload any) error {
	return s.v.Struct(payload)
}

// validatePayload runs the configured validator and the payload's own
// Validate method, in that order.
func (r *Registry) validatePayload(op string, payload any) error {
	if r.validator != nil {
		if err := r.validator.Validate(payload); err != nil {
			return validationError(op, err)
		}
	}
	if sv, ok := payload.(SelfValidator); ok {
		if err := sv.Validate(); err != nil {
			return validationError(op, err)
		}
	}
	return nil
}
