package apidoc

import (
	"fmt"
	"math"
	"reflect"

	"gopkg.in/yaml.v3"
)

// SuccessArgs is the raw shape of a success declaration as produced by the
// annotation layer. See NewSuccessDescription for the accepted forms.
type SuccessArgs []any

// UnmarshalYAML accepts both the positional sequence form and the mapping form.
func (a *SuccessArgs) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.MappingNode {
		var m map[string]any
		if err := node.Decode(&m); err != nil {
			return err
		}
		*a = SuccessArgs{m}
		return nil
	}
	var seq []any
	if err := node.Decode(&seq); err != nil {
		return err
	}
	*a = seq
	return nil
}

// SuccessDescription documents one success response. It is immutable.
type SuccessDescription struct {
	code        int
	description string
	sample      any
}

// SuccessJSON is the serialized form of a SuccessDescription.
type SuccessJSON struct {
	Code        int    `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
	Sample      any    `json:"sample" yaml:"sample"`
}

// NewSuccessDescription builds a SuccessDescription from one of the accepted
// shapes:
//
//	NewSuccessDescription(map[string]any{"code": 200, "desc": "OK", "sample": s})
//	NewSuccessDescription(200, "OK")
//	NewSuccessDescription(200, "OK", sample)
//
// Map keys other than code, description, desc and sample are rejected.
func NewSuccessDescription(args ...any) (SuccessDescription, error) {
	const op = "success"

	switch len(args) {
	case 1:
		m, ok := args[0].(map[string]any)
		if !ok {
			return SuccessDescription{}, argumentError(op, "bad use of success: expected a map, got %T", args[0])
		}
		return successFromMap(m)
	case 2, 3:
		code, err := toCode(args[0])
		if err != nil {
			return SuccessDescription{}, err
		}
		desc, err := toDescription(args[1])
		if err != nil {
			return SuccessDescription{}, err
		}
		sd := SuccessDescription{code: code, description: desc}
		if len(args) == 3 {
			sd.sample = args[2]
		}
		return sd, nil
	default:
		return SuccessDescription{}, argumentError(op, "bad use of success: %d arguments", len(args))
	}
}

func successFromMap(m map[string]any) (SuccessDescription, error) {
	var sd SuccessDescription
	var desc, description any

	for k, v := range m {
		switch k {
		case "code":
			code, err := toCode(v)
			if err != nil {
				return SuccessDescription{}, err
			}
			sd.code = code
		case "desc":
			desc = v
		case "description":
			description = v
		case "sample":
			sd.sample = v
		default:
			return SuccessDescription{}, argumentError("success", "bad use of success: unknown key %q", k)
		}
	}

	// desc takes precedence over description.
	chosen := description
	if desc != nil {
		chosen = desc
	}
	if chosen != nil {
		d, err := toDescription(chosen)
		if err != nil {
			return SuccessDescription{}, err
		}
		sd.description = d
	}
	return sd, nil
}

func toCode(v any) (int, error) {
	rv := reflect.ValueOf(v)
	//exhaustive:ignore
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n := rv.Int(); n >= math.MinInt && n <= math.MaxInt {
			return int(n), nil
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if n := rv.Uint(); n <= math.MaxInt {
			return int(n), nil
		}
	case reflect.Float32, reflect.Float64:
		// Decoded JSON numbers arrive as float64.
		f := rv.Float()
		if f != math.Trunc(f) {
			return 0, argumentError("success", "bad use of success: code %v is not an integer", v)
		}
		if f >= math.MinInt && f < math.MaxInt {
			return int(f), nil
		}
	default:
		return 0, argumentError("success", "bad use of success: code must be an integer, got %T", v)
	}
	return 0, argumentError("success", "bad use of success: code %v is out of range", v)
}

func toDescription(v any) (string, error) {
	switch d := v.(type) {
	case string:
		return d, nil
	case fmt.Stringer:
		return d.String(), nil
	default:
		return "", argumentError("success", "bad use of success: description must be a string, got %T", v)
	}
}

// Code returns the status code.
func (s SuccessDescription) Code() int { return s.code }

// Description returns the free-text description.
func (s SuccessDescription) Description() string { return s.description }

// Sample returns the example payload, or nil.
func (s SuccessDescription) Sample() any { return s.sample }

// ToJSON returns the documentation record.
func (s SuccessDescription) ToJSON() SuccessJSON {
	return SuccessJSON{Code: s.code, Description: s.description, Sample: s.sample}
}
