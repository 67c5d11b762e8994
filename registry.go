package apidoc

import (
	"log/slog"
	"slices"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/time/rate"
)

// DefaultVersion is the version used when WithDefaultVersion is not given.
const DefaultVersion = "1.0"

// Registry is the versioned catalog of resource and method descriptions.
//
// A Registry does no locking. Registration is expected to happen from a
// single goroutine during startup, followed by read-only queries; callers
// that register concurrently must serialize access themselves.
type Registry struct {
	// version -> resource name -> description, in registration order.
	catalog map[string]*orderedmap.OrderedMap[string, *ResourceDescription]

	resourceIDs        map[*Handler]string
	controllerVersions map[*Handler][]string
	paramGroups        map[string][]ParamDescription
	recordedExamples   map[string][]RecordedExample

	tree    *Tree
	loaders []Loader

	appName           string
	appInfo           map[string]string
	copyright         string
	docBaseURL        string
	defaultAPIBaseURL string
	apiBaseURLs       map[string]string
	versionInURL      bool
	defaultVersion    string
	ignorePatterns    []string
	examplesFile      string
	semverOrdering    bool

	logger    *slog.Logger
	ignoreLog rate.Sometimes
	validator Validator
}

// New creates a Registry with the given options.
func New(opts ...Option) *Registry {
	r := &Registry{
		tree:              NewTree(),
		appInfo:           make(map[string]string),
		apiBaseURLs:       make(map[string]string),
		docBaseURL:        "/apidoc",
		defaultAPIBaseURL: "/api",
		defaultVersion:    DefaultVersion,
		examplesFile:      DefaultExamplesFile,
		logger:            slog.Default(),
		ignoreLog:         rate.Sometimes{First: 10, Interval: time.Minute},
		validator:         NewStructValidator(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.ignorePatterns = r.validPatterns(r.ignorePatterns)
	r.Init()
	return r
}

// Init resets the catalog and every index built during registration:
// resource ids, controller versions and param groups.
func (r *Registry) Init() {
	r.catalog = make(map[string]*orderedmap.OrderedMap[string, *ResourceDescription])
	r.resourceIDs = make(map[*Handler]string)
	r.controllerVersions = make(map[*Handler][]string)
	r.paramGroups = make(map[string][]ParamDescription)
}

// Clear empties the catalog. Indices survive.
func (r *Registry) Clear() {
	clear(r.catalog)
}

// Tree returns the handler hierarchy used for version inheritance.
func (r *Registry) Tree() *Tree { return r.tree }

// DefaultVersion returns the configured default version.
func (r *Registry) DefaultVersion() string { return r.defaultVersion }

// SetResourceID overrides the resource name of h.
func (r *Registry) SetResourceID(h *Handler, id string) {
	if h == nil {
		return
	}
	r.resourceIDs[h] = id
}

// ResourceName returns the resource name of h: the id set with SetResourceID,
// else h.Resource. The root handler (nil) has no resource name.
func (r *Registry) ResourceName(h *Handler) string {
	if h == nil {
		return ""
	}
	if id, ok := r.resourceIDs[h]; ok {
		return id
	}
	return h.Resource
}

// SetControllerVersions records the versions h is documented under. The
// list overrides anything inherited from ancestors; an empty list restores
// inheritance.
func (r *Registry) SetControllerVersions(h *Handler, versions []string) {
	if h == nil {
		return
	}
	if len(versions) == 0 {
		delete(r.controllerVersions, h)
		return
	}
	r.controllerVersions[h] = slices.Clone(versions)
}

// ControllerVersions returns the versions h belongs to, inherited from the
// closest ancestor with an explicit declaration, or the default version.
func (r *Registry) ControllerVersions(h *Handler) []string {
	return ResolveVersions(h, r.tree.Parent, r.controllerVersions, r.defaultVersion)
}

// DefineResourceDescription registers the resource of h in version, merging p
// into an existing description when there is one. It returns nil without an
// error when h is ignored or has no resource name.
func (r *Registry) DefineResourceDescription(h *Handler, version string, p *ResourcePayload) (*ResourceDescription, error) {
	const op = "define resource"

	if h == nil || r.isIgnored(h, "") {
		return nil, nil
	}
	if p != nil {
		if err := r.validatePayload(op, p); err != nil {
			return nil, err
		}
	}

	name := r.ResourceName(h)
	if name == "" {
		return nil, nil
	}
	if version == "" {
		version = r.defaultVersion
	}

	rd := r.lookup(version, name)
	if rd != nil {
		if p != nil {
			rd.UpdateFromPayload(*p)
		}
		return rd, nil
	}
	return r.insert(h, name, version, p), nil
}

// DefineMethodDescription registers method of h in every version it belongs
// to: p.APIVersions when given, else ControllerVersions(h). A blank version
// means the default version. Each version gets its own MethodDescription; the
// one for the first version is returned.
// It returns nil without an error when the method is ignored.
func (r *Registry) DefineMethodDescription(h *Handler, method string, p MethodPayload) (*MethodDescription, error) {
	const op = "define method"

	if h == nil {
		return nil, argumentError(op, "method %q has no handler", method)
	}
	if method == "" {
		return nil, argumentError(op, "empty method name on %s", h)
	}
	if r.isIgnored(h, method) {
		return nil, nil
	}
	if err := r.validatePayload(op, &p); err != nil {
		return nil, err
	}

	name := r.ResourceName(h)
	if name == "" {
		return nil, argumentError(op, "cannot resolve resource name of %s", h)
	}

	// Normalize once so a bad success shape fails before anything is stored.
	successes := make([]SuccessDescription, 0, len(p.Successes))
	for _, args := range p.Successes {
		sd, err := NewSuccessDescription(args...)
		if err != nil {
			return nil, err
		}
		successes = append(successes, sd)
	}

	versions := p.APIVersions
	if len(versions) == 0 {
		versions = r.ControllerVersions(h)
	}
	recorded := r.examplesFor(name + "#" + method)

	var first *MethodDescription
	seen := make(map[string]struct{}, len(versions))
	for _, version := range versions {
		if version == "" {
			version = r.defaultVersion
		}
		if _, dup := seen[version]; dup {
			continue
		}
		seen[version] = struct{}{}

		rd := r.lookup(version, name)
		if rd == nil {
			rd = r.insert(h, name, version, nil)
		}

		md := newMethodDescription(method, rd, p, successes, recorded)
		rd.AddMethodDescription(md)
		if first == nil {
			first = md
		}
	}

	r.logger.Debug("defined method", "resource", name, "method", method, "versions", versions)
	return first, nil
}

// AvailableVersions returns every version present in the catalog, sorted.
func (r *Registry) AvailableVersions() []string {
	versions := make([]string, 0, len(r.catalog))
	for v := range r.catalog {
		versions = append(versions, v)
	}
	r.sortVersions(versions)
	return versions
}

func (r *Registry) lookup(version, name string) *ResourceDescription {
	resources, ok := r.catalog[version]
	if !ok {
		return nil
	}
	rd, _ := resources.Get(name)
	return rd
}

func (r *Registry) insert(h *Handler, name, version string, p *ResourcePayload) *ResourceDescription {
	resources, ok := r.catalog[version]
	if !ok {
		resources = orderedmap.New[string, *ResourceDescription]()
		r.catalog[version] = resources
	}

	rd := NewResourceDescription(h, name, version, r.resourceDocURL(version, name), r.apiBaseURL(version), p)
	resources.Set(name, rd)

	r.logger.Debug("defined resource", "version", version, "resource", name, "handler", h.String())
	return rd
}

// isIgnored reports whether h, or method of h when method is non-empty, is on
// the ignore list.
func (r *Registry) isIgnored(h *Handler, method string) bool {
	for _, pattern := range r.ignorePatterns {
		if match(pattern, h.Name) || (method != "" && match(pattern, h.Name+"#"+method)) {
			r.ignoreLog.Do(func() {
				r.logger.Debug("skipping ignored handler", "handler", h.String(), "method", method, "pattern", pattern)
			})
			return true
		}
	}
	return false
}

// validPatterns drops malformed ignore patterns, logging each one.
func (r *Registry) validPatterns(patterns []string) []string {
	valid := patterns[:0:0]
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			r.logger.Warn("ignoring malformed ignore pattern", "pattern", p)
			continue
		}
		valid = append(valid, p)
	}
	return valid
}

func match(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
