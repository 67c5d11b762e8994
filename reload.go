package apidoc

import (
	"errors"
	"fmt"
)

// Loader replays the registrations of one group of handlers. Loaders stand
// in for the annotation layer when the catalog is rebuilt from scratch.
type Loader interface {
	Load(r *Registry) error
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(r *Registry) error

// Load calls f(r).
func (f LoaderFunc) Load(r *Registry) error { return f(r) }

// AddLoader registers a loader replayed by ReloadDocumentation.
func (r *Registry) AddLoader(l Loader) {
	r.loaders = append(r.loaders, l)
}

// ReloadDocumentation rebuilds the catalog: it resets every index, drops the
// cached recorded examples and replays each loader in the order they were
// added. All loaders run; their errors are joined.
func (r *Registry) ReloadDocumentation() error {
	r.Init()
	r.ReloadExamples()

	var errs []error
	for i, l := range r.loaders {
		if err := l.Load(r); err != nil {
			errs = append(errs, fmt.Errorf("loader %d: %w", i, err))
		}
	}

	r.logger.Debug("reloaded documentation", "loaders", len(r.loaders), "versions", r.AvailableVersions())
	return errors.Join(errs...)
}
