package apidoc

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Expected parameter types as rendered in the documentation.
const (
	TypeString  = "string"
	TypeNumeric = "numeric"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeHash    = "hash"
)

// ParamDescription documents one request parameter. Hash parameters carry
// their nested parameters in Params.
type ParamDescription struct {
	Name         string             `json:"name" yaml:"name" validate:"required"`
	FullName     string             `json:"full_name" yaml:"full_name,omitempty"`
	Description  string             `json:"description" yaml:"description,omitempty"`
	Required     bool               `json:"required" yaml:"required,omitempty"`
	AllowNil     bool               `json:"allow_nil" yaml:"allow_nil,omitempty"`
	ExpectedType string             `json:"expected_type" yaml:"expected_type,omitempty" validate:"omitempty,oneof=string numeric boolean array hash"`
	Validator    string             `json:"validator,omitempty" yaml:"validator,omitempty"`
	Params       []ParamDescription `json:"params,omitempty" yaml:"params,omitempty" validate:"dive"`
}

// ErrorDescription documents one error response.
type ErrorDescription struct {
	Code        int            `json:"code" yaml:"code" validate:"omitempty,min=100,max=599"`
	Description string         `json:"description" yaml:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Route is one HTTP verb and path an endpoint is served at.
type Route struct {
	HTTPMethod       string `json:"http_method" yaml:"http_method" validate:"required,oneof=GET POST PUT PATCH DELETE HEAD OPTIONS"`
	Path             string `json:"api_url" yaml:"path" validate:"required"`
	ShortDescription string `json:"short_description" yaml:"short_description,omitempty"`
}

// SeeReference points to a related method, e.g. "v1#users#index".
type SeeReference struct {
	Link        string `json:"link" yaml:"link" validate:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ParamsOf derives parameter descriptions from the exported fields of T.
//
// The parameter name comes from the `param` tag, falling back to the `json`
// name. Other recognized tags: doc, required, allow_nil, enum, minimum,
// maximum, minLength, maxLength. Nested structs become hash parameters.
func ParamsOf[T any]() []ParamDescription {
	return structParams(reflect.TypeFor[T]())
}

func structParams(t reflect.Type) []ParamDescription {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var params []ParamDescription
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name := paramFieldName(f)
		if name == "-" {
			continue
		}

		p := ParamDescription{
			Name:         name,
			Description:  f.Tag.Get("doc"),
			Required:     f.Tag.Get("required") == "true",
			AllowNil:     f.Tag.Get("allow_nil") == "true",
			ExpectedType: expectedType(f.Type),
			Validator:    constraintText(f),
		}
		if p.ExpectedType == TypeHash {
			p.Params = structParams(f.Type)
		}
		params = append(params, p)
	}
	return params
}

// paramFieldName returns the documented name for a struct field.
func paramFieldName(f reflect.StructField) string {
	if name, _ := tagOptions(f.Tag.Get("param")); name != "" {
		return name
	}
	name, _ := tagOptions(f.Tag.Get("json"))
	if name == "" {
		return f.Name
	}
	return name
}

// expectedType maps a Go type onto the documentation's type vocabulary.
func expectedType(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		return expectedType(t.Elem())
	}

	switch t {
	case reflect.TypeFor[time.Time](), reflect.TypeFor[time.Duration]():
		return TypeString
	}

	//exhaustive:ignore
	switch t.Kind() {
	case reflect.Bool:
		return TypeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return TypeNumeric
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return TypeString
		}
		return TypeArray
	case reflect.Array:
		return TypeArray
	case reflect.Map, reflect.Struct:
		return TypeHash
	default:
		return TypeString
	}
}

// constraintText renders the constraint tags on f as a human-readable
// validator description.
func constraintText(f reflect.StructField) string {
	var parts []string

	if tag := f.Tag.Get("enum"); tag != "" {
		parts = append(parts, "Must be one of: "+strings.Join(strings.Split(tag, ","), ", ")+".")
	}

	lo, hi := f.Tag.Get("minimum"), f.Tag.Get("maximum")
	switch {
	case lo != "" && hi != "":
		parts = append(parts, fmt.Sprintf("Must be a number between %s and %s.", lo, hi))
	case lo != "":
		parts = append(parts, fmt.Sprintf("Must be at least %s.", lo))
	case hi != "":
		parts = append(parts, fmt.Sprintf("Must be at most %s.", hi))
	}

	minLen, maxLen := f.Tag.Get("minLength"), f.Tag.Get("maxLength")
	switch {
	case minLen != "" && maxLen != "":
		parts = append(parts, fmt.Sprintf("Must be %s to %s characters.", minLen, maxLen))
	case minLen != "":
		parts = append(parts, fmt.Sprintf("Must be at least %s characters.", minLen))
	case maxLen != "":
		parts = append(parts, fmt.Sprintf("Must be at most %s characters.", maxLen))
	}

	return strings.Join(parts, " ")
}

// tagOptions splits a struct tag value on comma and returns
// the name and remaining options.
func tagOptions(tag string) (string, string) {
	name, opts, _ := strings.Cut(tag, ",")
	return name, opts
}

// qualifyParams returns a deep copy of params with FullName filled in:
// top-level names stay as they are, nested ones become "parent[child]".
func qualifyParams(params []ParamDescription, prefix string) []ParamDescription {
	if params == nil {
		return nil
	}
	out := make([]ParamDescription, len(params))
	for i, p := range params {
		if prefix == "" {
			p.FullName = p.Name
		} else {
			p.FullName = prefix + "[" + p.Name + "]"
		}
		p.Params = qualifyParams(p.Params, p.FullName)
		out[i] = p
	}
	return out
}
