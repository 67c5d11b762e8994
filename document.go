package apidoc

import (
	"encoding/json"
	"io"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// Document is the documentation tree of one version.
type Document struct {
	Docs Docs `json:"docs" yaml:"docs"`
}

// Docs holds the application metadata and the resources of a Document.
type Docs struct {
	Name      string    `json:"name" yaml:"name"`
	Info      string    `json:"info" yaml:"info"`
	Copyright string    `json:"copyright" yaml:"copyright"`
	DocURL    string    `json:"doc_url" yaml:"doc_url"`
	APIURL    string    `json:"api_url" yaml:"api_url"`
	Resources Resources `json:"resources" yaml:"resources"`
}

// Resources serializes as an object keyed by resource name when the whole
// version was requested, or as a one-element list when a single resource was.
type Resources struct {
	byName *orderedmap.OrderedMap[string, ResourceJSON]
	list   []ResourceJSON
}

// IsList reports whether the resources serialize as a list.
func (rs Resources) IsList() bool { return rs.byName == nil }

// Len returns the number of resources.
func (rs Resources) Len() int {
	if rs.byName != nil {
		return rs.byName.Len()
	}
	return len(rs.list)
}

// Get returns the named resource.
func (rs Resources) Get(name string) (ResourceJSON, bool) {
	if rs.byName != nil {
		return rs.byName.Get(name)
	}
	for _, res := range rs.list {
		if res.Name == name {
			return res, true
		}
	}
	return ResourceJSON{}, false
}

// All returns the resources in order.
func (rs Resources) All() []ResourceJSON {
	if rs.byName == nil {
		return rs.list
	}
	out := make([]ResourceJSON, 0, rs.byName.Len())
	for pair := rs.byName.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (rs Resources) MarshalJSON() ([]byte, error) {
	if rs.byName != nil {
		return json.Marshal(rs.byName)
	}
	return json.Marshal(nonNil(rs.list))
}

// MarshalYAML implements yaml.Marshaler.
func (rs Resources) MarshalYAML() (any, error) {
	if rs.byName != nil {
		return rs.byName, nil
	}
	return nonNil(rs.list), nil
}

// ToJSON builds the documentation tree of version. With an empty resource
// every resource of the version that has at least one method is included;
// otherwise only the named resource, optionally narrowed to method. It
// returns nil when the named resource is not in the catalog.
func (r *Registry) ToJSON(version, resource, method string) *Document {
	if version == "" {
		version = r.defaultVersion
	}

	var rs Resources
	if strings.TrimSpace(resource) == "" {
		rs.byName = orderedmap.New[string, ResourceJSON]()
		if resources, ok := r.catalog[version]; ok {
			for pair := resources.Oldest(); pair != nil; pair = pair.Next() {
				// Base handlers without methods are not resources worth showing.
				if !pair.Value.HasMethods() {
					continue
				}
				rs.byName.Set(pair.Key, pair.Value.ToJSON(""))
			}
		}
	} else {
		rd := r.lookup(version, resource)
		if rd == nil {
			return nil
		}
		rs.list = []ResourceJSON{rd.ToJSON(method)}
	}

	return &Document{
		Docs: Docs{
			Name:      r.appName,
			Info:      r.appInfo[version],
			Copyright: r.copyright,
			DocURL:    r.docURL(version),
			APIURL:    r.apiBaseURL(version),
			Resources: rs,
		},
	}
}

// WriteDocument writes the documentation tree of version as indented JSON.
func (r *Registry) WriteDocument(w io.Writer, version, resource, method string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r.documentOrEmpty(version, resource, method))
}

// WriteDocumentYAML writes the documentation tree of version as YAML.
func (r *Registry) WriteDocumentYAML(w io.Writer, version, resource, method string) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close() //nolint:errcheck // Encode already reported any write error
	return enc.Encode(r.documentOrEmpty(version, resource, method))
}

// documentOrEmpty substitutes an empty resource list for a missing resource
// so writers always produce a well-formed document.
func (r *Registry) documentOrEmpty(version, resource, method string) *Document {
	if doc := r.ToJSON(version, resource, method); doc != nil {
		return doc
	}
	doc := r.ToJSON(version, "", "")
	doc.Docs.Resources = Resources{list: []ResourceJSON{}}
	return doc
}

// docURL is the documentation root of version.
func (r *Registry) docURL(version string) string {
	base := strings.TrimRight(r.docBaseURL, "/")
	if r.versionInURL && version != "" {
		return base + "/" + version
	}
	return base
}

func (r *Registry) resourceDocURL(version, name string) string {
	return r.docURL(version) + "/" + name
}

func (r *Registry) apiBaseURL(version string) string {
	if url, ok := r.apiBaseURLs[version]; ok {
		return url
	}
	return r.defaultAPIBaseURL
}
