package apidoc

import (
	"fmt"
	"maps"
	"slices"
)

// MethodPayload is the description of one endpoint as produced by the
// annotation layer.
type MethodPayload struct {
	// APIVersions restricts the method to these versions. Empty means the
	// versions of the declaring handler.
	APIVersions []string `yaml:"api_versions"`

	APIs             []Route            `yaml:"apis" validate:"dive"`
	ShortDescription string             `yaml:"short_description"`
	FullDescription  string             `yaml:"full_description"`
	Params           []ParamDescription `yaml:"params" validate:"dive"`
	Errors           []ErrorDescription `yaml:"errors" validate:"dive"`
	Successes        []SuccessArgs      `yaml:"successes"`
	Examples         []string           `yaml:"examples"`
	See              []SeeReference     `yaml:"see" validate:"dive"`
	Formats          []string           `yaml:"formats"`
	Metadata         map[string]any     `yaml:"metadata"`
	Deprecated       bool               `yaml:"deprecated"`
}

// Validate rejects parameters declared twice at the same level.
func (p *MethodPayload) Validate() error {
	return uniqueParams(p.Params, "")
}

func uniqueParams(params []ParamDescription, parent string) error {
	seen := make(map[string]struct{}, len(params))
	for _, param := range params {
		if _, dup := seen[param.Name]; dup {
			if parent != "" {
				return fmt.Errorf("param %q declared twice in %q", param.Name, parent)
			}
			return fmt.Errorf("param %q declared twice", param.Name)
		}
		seen[param.Name] = struct{}{}
		if err := uniqueParams(param.Params, param.Name); err != nil {
			return err
		}
	}
	return nil
}

// MethodDescription documents one endpoint of one resource in one version.
// Its fields are fixed at construction; a later definition for the same
// method replaces the instance on the resource.
type MethodDescription struct {
	name     string
	resource *ResourceDescription

	apis             []Route
	shortDescription string
	fullDescription  string
	params           []ParamDescription
	errors           []ErrorDescription
	successes        []SuccessDescription
	examples         []string
	see              []SeeReference
	formats          []string
	metadata         map[string]any
	deprecated       bool
}

// MethodJSON is the serialized form of a MethodDescription.
type MethodJSON struct {
	DocURL           string             `json:"doc_url" yaml:"doc_url"`
	Name             string             `json:"name" yaml:"name"`
	APIs             []Route            `json:"apis" yaml:"apis"`
	ShortDescription string             `json:"short_description" yaml:"short_description"`
	FullDescription  string             `json:"full_description" yaml:"full_description"`
	Formats          []string           `json:"formats" yaml:"formats"`
	Params           []ParamDescription `json:"params" yaml:"params"`
	Errors           []ErrorDescription `json:"errors" yaml:"errors"`
	Successes        []SuccessJSON      `json:"successes" yaml:"successes"`
	Examples         []string           `json:"examples" yaml:"examples"`
	See              []SeeReference     `json:"see" yaml:"see"`
	Metadata         map[string]any     `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Deprecated       bool               `json:"deprecated" yaml:"deprecated"`
}

// newMethodDescription copies everything it keeps out of p, so later changes
// to the payload do not leak into the catalog. recorded are appended after
// the payload's own examples.
func newMethodDescription(name string, resource *ResourceDescription, p MethodPayload, successes []SuccessDescription, recorded []string) *MethodDescription {
	formats := p.Formats
	if len(formats) == 0 && resource != nil {
		formats = resource.formats
	}

	return &MethodDescription{
		name:             name,
		resource:         resource,
		apis:             slices.Clone(p.APIs),
		shortDescription: p.ShortDescription,
		fullDescription:  p.FullDescription,
		params:           qualifyParams(p.Params, ""),
		errors:           slices.Clone(p.Errors),
		successes:        slices.Clone(successes),
		examples:         append(slices.Clone(p.Examples), recorded...),
		see:              slices.Clone(p.See),
		formats:          slices.Clone(formats),
		metadata:         maps.Clone(p.Metadata),
		deprecated:       p.Deprecated,
	}
}

// Name returns the method name.
func (m *MethodDescription) Name() string { return m.name }

// Resource returns the resource the method belongs to.
func (m *MethodDescription) Resource() *ResourceDescription { return m.resource }

// Version returns the version of the owning resource.
func (m *MethodDescription) Version() string { return m.resource.version }

// ShortDescription returns the one-line summary.
func (m *MethodDescription) ShortDescription() string { return m.shortDescription }

// FullDescription returns the long-form documentation text.
func (m *MethodDescription) FullDescription() string { return m.fullDescription }

// APIs returns the routes the method is served at.
func (m *MethodDescription) APIs() []Route { return slices.Clone(m.apis) }

// Params returns the documented parameters.
func (m *MethodDescription) Params() []ParamDescription { return qualifyParams(m.params, "") }

// Errors returns the documented error responses.
func (m *MethodDescription) Errors() []ErrorDescription { return slices.Clone(m.errors) }

// Successes returns the documented success responses.
func (m *MethodDescription) Successes() []SuccessDescription { return slices.Clone(m.successes) }

// Examples returns the documented examples, recorded ones included.
func (m *MethodDescription) Examples() []string { return slices.Clone(m.examples) }

// See returns the see-also references.
func (m *MethodDescription) See() []SeeReference { return slices.Clone(m.see) }

// Formats returns the supported response formats.
func (m *MethodDescription) Formats() []string { return slices.Clone(m.formats) }

// Deprecated reports whether the method is marked deprecated.
func (m *MethodDescription) Deprecated() bool { return m.deprecated }

// DocURL returns the documentation URL of the method.
func (m *MethodDescription) DocURL() string {
	return m.resource.DocURL() + "/" + m.name
}

// ToJSON returns the documentation record.
func (m *MethodDescription) ToJSON() MethodJSON {
	successes := make([]SuccessJSON, 0, len(m.successes))
	for _, s := range m.successes {
		successes = append(successes, s.ToJSON())
	}

	return MethodJSON{
		DocURL:           m.DocURL(),
		Name:             m.name,
		APIs:             nonNil(m.APIs()),
		ShortDescription: m.shortDescription,
		FullDescription:  m.fullDescription,
		Formats:          nonNil(m.Formats()),
		Params:           nonNil(m.Params()),
		Errors:           nonNil(m.Errors()),
		Successes:        successes,
		Examples:         nonNil(m.Examples()),
		See:              nonNil(m.See()),
		Metadata:         maps.Clone(m.metadata),
		Deprecated:       m.deprecated,
	}
}

// nonNil makes empty lists serialize as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
