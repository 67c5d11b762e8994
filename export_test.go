package apidoc

import "reflect"

// Test-only exports for internal functions.
var (
	QualifyParams     = qualifyParams
	ExpectedType      = expectedType
	TagOptions        = tagOptions
	NormalizeYAML     = normalizeYAML
	FormatExampleData = formatExampleData
)

// ConstraintText renders the constraint tags of the named field of T.
func ConstraintText[T any](field string) string {
	f, ok := reflect.TypeFor[T]().FieldByName(field)
	if !ok {
		return ""
	}
	return constraintText(f)
}

// IsIgnored exposes the ignore-list check.
func (r *Registry) IsIgnored(h *Handler, method string) bool {
	return r.isIgnored(h, method)
}
