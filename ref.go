package apidoc

import "strings"

type refKind int

const (
	refInvalid refKind = iota
	refPath
	refHandler
)

// ResourceRef names a resource for lookups and removals. Build one with Path
// or HandlerRef; the zero value is invalid and rejected with ErrArgument.
type ResourceRef struct {
	kind    refKind
	path    string
	version string
	handler *Handler
}

// Path refers to a resource by a "#"-separated path: "users" names the
// resource in the default version, "v1#users" pins version v1.
//
// GetMethodDescription also accepts a trailing method segment when no method
// name is passed: "users#create" or "v2#users#create".
func Path(s string) ResourceRef {
	return ResourceRef{kind: refPath, path: s}
}

// HandlerRef refers to the resource declared by h, in the default version
// unless pinned with In.
func HandlerRef(h *Handler) ResourceRef {
	if h == nil {
		return ResourceRef{}
	}
	return ResourceRef{kind: refHandler, handler: h}
}

// In returns a copy of the reference pinned to version. It overrides a
// version segment in a path.
func (ref ResourceRef) In(version string) ResourceRef {
	ref.version = version
	return ref
}

func (ref ResourceRef) String() string {
	var s string
	switch ref.kind {
	case refPath:
		s = ref.path
	case refHandler:
		s = ref.handler.String()
	default:
		return "<invalid>"
	}
	if ref.version != "" {
		s += "@" + ref.version
	}
	return s
}

// splitMethod pops the trailing method segment off a path reference.
func (ref ResourceRef) splitMethod() (ResourceRef, string, bool) {
	if ref.kind != refPath {
		return ref, "", false
	}
	i := strings.LastIndexByte(ref.path, '#')
	if i < 0 {
		return ref, "", false
	}
	out := ref
	out.path = ref.path[:i]
	return out, ref.path[i+1:], true
}

// resolvedRef is a reference after boundary validation: a concrete version
// and resource name.
type resolvedRef struct {
	version string
	name    string
}

// resolve validates ref and collapses it to a version and resource name.
// A missing version becomes the default version.
func (r *Registry) resolve(op string, ref ResourceRef) (resolvedRef, error) {
	var out resolvedRef
	switch ref.kind {
	case refPath:
		crumbs := strings.Split(ref.path, "#")
		switch len(crumbs) {
		case 1:
			out.name = crumbs[0]
		case 2:
			out.version, out.name = crumbs[0], crumbs[1]
		default:
			return out, argumentError(op, "resource path %q has too many segments", ref.path)
		}
		if out.name == "" {
			return out, argumentError(op, "empty resource name in %q", ref.path)
		}
	case refHandler:
		out.name = r.ResourceName(ref.handler)
		if out.name == "" {
			return out, argumentError(op, "cannot resolve resource name of %s", ref.handler)
		}
	default:
		return out, argumentError(op, "resource reference is neither a path nor a handler")
	}

	if ref.version != "" {
		out.version = ref.version
	}
	if out.version == "" {
		out.version = r.defaultVersion
	}
	return out, nil
}
