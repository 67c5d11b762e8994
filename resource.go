package apidoc

import (
	"maps"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ResourcePayload carries resource-level metadata from the annotation layer.
// Zero-valued fields are treated as "not given" when merging.
type ResourcePayload struct {
	ShortDescription string         `yaml:"short_description"`
	FullDescription  string         `yaml:"full_description"`
	Formats          []string       `yaml:"formats"`
	Metadata         map[string]any `yaml:"metadata"`
	Deprecated       *bool          `yaml:"deprecated"`
}

// ResourceDescription documents one handler group in one version. Methods
// keep the order they were first added in.
type ResourceDescription struct {
	handler *Handler
	name    string
	version string
	docURL  string
	apiURL  string

	shortDescription string
	fullDescription  string
	formats          []string
	metadata         map[string]any
	deprecated       bool

	methods *orderedmap.OrderedMap[string, *MethodDescription]
}

// ResourceJSON is the serialized form of a ResourceDescription.
type ResourceJSON struct {
	DocURL           string                                     `json:"doc_url" yaml:"doc_url"`
	APIURL           string                                     `json:"api_url" yaml:"api_url"`
	Name             string                                     `json:"name" yaml:"name"`
	ShortDescription string                                     `json:"short_description" yaml:"short_description"`
	FullDescription  string                                     `json:"full_description" yaml:"full_description"`
	Version          string                                     `json:"version" yaml:"version"`
	Formats          []string                                   `json:"formats" yaml:"formats"`
	Metadata         map[string]any                             `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Deprecated       bool                                       `json:"deprecated" yaml:"deprecated"`
	Methods          *orderedmap.OrderedMap[string, MethodJSON] `json:"_methods" yaml:"_methods"`
}

// NewResourceDescription returns a description of handler's resource name in
// version. docURL and apiURL are the base URLs of the resource; p may be nil.
func NewResourceDescription(handler *Handler, name, version, docURL, apiURL string, p *ResourcePayload) *ResourceDescription {
	rd := &ResourceDescription{
		handler: handler,
		name:    name,
		version: version,
		docURL:  docURL,
		apiURL:  apiURL,
		methods: orderedmap.New[string, *MethodDescription](),
	}
	if p != nil {
		rd.UpdateFromPayload(*p)
	}
	return rd
}

// UpdateFromPayload merges the non-zero fields of p. Fields already set are
// never cleared; metadata keys are merged one by one.
func (rd *ResourceDescription) UpdateFromPayload(p ResourcePayload) {
	if p.ShortDescription != "" {
		rd.shortDescription = p.ShortDescription
	}
	if p.FullDescription != "" {
		rd.fullDescription = p.FullDescription
	}
	if p.Formats != nil {
		rd.formats = slices.Clone(p.Formats)
	}
	if p.Metadata != nil {
		if rd.metadata == nil {
			rd.metadata = make(map[string]any, len(p.Metadata))
		}
		maps.Copy(rd.metadata, p.Metadata)
	}
	if p.Deprecated != nil {
		rd.deprecated = *p.Deprecated
	}
}

// AddMethodDescription stores md under its name. Replacing an existing method
// keeps its original position.
func (rd *ResourceDescription) AddMethodDescription(md *MethodDescription) {
	rd.methods.Set(md.name, md)
}

// MethodDescription returns the named method, or nil.
func (rd *ResourceDescription) MethodDescription(name string) *MethodDescription {
	md, _ := rd.methods.Get(name)
	return md
}

// RemoveMethodDescription deletes the named method. Absent methods are ignored.
func (rd *ResourceDescription) RemoveMethodDescription(name string) {
	rd.methods.Delete(name)
}

// MethodDescriptions returns the methods in insertion order.
func (rd *ResourceDescription) MethodDescriptions() []*MethodDescription {
	out := make([]*MethodDescription, 0, rd.methods.Len())
	for pair := rd.methods.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// HasMethods reports whether at least one method is registered.
func (rd *ResourceDescription) HasMethods() bool { return rd.methods.Len() > 0 }

// Handler returns the handler that owns the resource.
func (rd *ResourceDescription) Handler() *Handler { return rd.handler }

// Name returns the resource name.
func (rd *ResourceDescription) Name() string { return rd.name }

// Version returns the version the description belongs to.
func (rd *ResourceDescription) Version() string { return rd.version }

// ShortDescription returns the one-line summary.
func (rd *ResourceDescription) ShortDescription() string { return rd.shortDescription }

// FullDescription returns the long-form documentation text.
func (rd *ResourceDescription) FullDescription() string { return rd.fullDescription }

// Formats returns the default response formats of the resource.
func (rd *ResourceDescription) Formats() []string { return slices.Clone(rd.formats) }

// Metadata returns a copy of the free-form metadata.
func (rd *ResourceDescription) Metadata() map[string]any { return maps.Clone(rd.metadata) }

// Deprecated reports whether the resource is marked deprecated.
func (rd *ResourceDescription) Deprecated() bool { return rd.deprecated }

// DocURL returns the documentation URL of the resource.
func (rd *ResourceDescription) DocURL() string { return rd.docURL }

// ToJSON returns the documentation record. A non-empty methodFilter limits
// the methods to that one name.
func (rd *ResourceDescription) ToJSON(methodFilter string) ResourceJSON {
	methods := orderedmap.New[string, MethodJSON]()
	if methodFilter != "" {
		if md := rd.MethodDescription(methodFilter); md != nil {
			methods.Set(md.name, md.ToJSON())
		}
	} else {
		for pair := rd.methods.Oldest(); pair != nil; pair = pair.Next() {
			methods.Set(pair.Key, pair.Value.ToJSON())
		}
	}

	return ResourceJSON{
		DocURL:           rd.docURL,
		APIURL:           rd.apiURL,
		Name:             rd.name,
		ShortDescription: rd.shortDescription,
		FullDescription:  rd.fullDescription,
		Version:          rd.version,
		Formats:          nonNil(rd.Formats()),
		Metadata:         rd.Metadata(),
		Deprecated:       rd.deprecated,
		Methods:          methods,
	}
}
