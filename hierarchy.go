package apidoc

import "slices"

// Handler identifies an external unit (typically a controller) that owns
// resource and method declarations. Identity is pointer identity: two
// *Handler values are the same handler only if they are the same pointer.
type Handler struct {
	// Name is the handler's own name, e.g. "UsersController". The ignore
	// list matches against it.
	Name string

	// Resource is the structural resource name, e.g. "users". Abstract
	// handlers leave it empty and never become resources.
	Resource string

	// Path scopes param groups, e.g. "api/v1/users". Defaults to Resource.
	Path string
}

func (h *Handler) path() string {
	if h.Path != "" {
		return h.Path
	}
	return h.Resource
}

func (h *Handler) String() string {
	if h == nil {
		return "<root>"
	}
	if h.Name != "" {
		return h.Name
	}
	return h.Resource
}

// Tree is an explicit forest of handlers. Parent links live in a side table;
// a handler without a recorded parent hangs off the implicit root (nil).
type Tree struct {
	parents map[*Handler]*Handler
}

// NewTree returns an empty Tree.
func NewTree() *Tree {
	return &Tree{parents: make(map[*Handler]*Handler)}
}

// Add records parent as the parent of child. A nil parent attaches child to
// the root. Links that would create a cycle are rejected.
func (t *Tree) Add(child, parent *Handler) error {
	if child == nil {
		return argumentError("tree", "cannot add the root handler")
	}
	for p := parent; p != nil; p = t.parents[p] {
		if p == child {
			return argumentError("tree", "linking %s under %s creates a cycle", child, parent)
		}
	}
	if parent == nil {
		delete(t.parents, child)
		return nil
	}
	t.parents[child] = parent
	return nil
}

// Parent returns the parent of h, or nil when h hangs off the root.
func (t *Tree) Parent(h *Handler) *Handler {
	if t == nil || h == nil {
		return nil
	}
	return t.parents[h]
}

// Ancestors returns the chain from h's parent up to the last handler below
// the root.
func (t *Tree) Ancestors(h *Handler) []*Handler {
	var out []*Handler
	for p := t.Parent(h); p != nil; p = t.Parent(p) {
		out = append(out, p)
	}
	return out
}

// ResolveVersions returns the API versions h belongs to: the first non-empty
// explicit list found walking from h towards the root, or [defaultVersion]
// once the root is reached.
func ResolveVersions(h *Handler, parentOf func(*Handler) *Handler, explicit map[*Handler][]string, defaultVersion string) []string {
	seen := make(map[*Handler]struct{})
	for cur := h; cur != nil; cur = parentOf(cur) {
		if _, ok := seen[cur]; ok {
			break
		}
		seen[cur] = struct{}{}

		if versions := explicit[cur]; len(versions) > 0 {
			return slices.Clone(versions)
		}
	}
	return []string{defaultVersion}
}
