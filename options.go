package apidoc

import "log/slog"

// Option configures a Registry.
type Option func(*Registry)

// WithAppName sets the application name shown at the top of the document.
func WithAppName(name string) Option {
	return func(r *Registry) {
		r.appName = name
	}
}

// WithAppInfo sets the description text shown for version.
func WithAppInfo(version, info string) Option {
	return func(r *Registry) {
		r.appInfo[version] = info
	}
}

// WithCopyright sets the copyright line of the document.
func WithCopyright(copyright string) Option {
	return func(r *Registry) {
		r.copyright = copyright
	}
}

// WithDocBaseURL sets the base URL the documentation is served under
// (default "/apidoc").
func WithDocBaseURL(url string) Option {
	return func(r *Registry) {
		r.docBaseURL = url
	}
}

// WithAPIBaseURL sets the base URL of the API for version. An empty version
// sets the fallback used for versions without their own entry
// (default "/api").
func WithAPIBaseURL(version, url string) Option {
	return func(r *Registry) {
		if version == "" {
			r.defaultAPIBaseURL = url
			return
		}
		r.apiBaseURLs[version] = url
	}
}

// WithVersionInURL includes the version in documentation URLs.
func WithVersionInURL() Option {
	return func(r *Registry) {
		r.versionInURL = true
	}
}

// WithDefaultVersion sets the version used for handlers without an explicit
// version and for references that do not name one (default "1.0").
func WithDefaultVersion(version string) Option {
	return func(r *Registry) {
		r.defaultVersion = version
	}
}

// WithIgnored excludes handlers and methods from the catalog. Patterns match
// a handler name ("UsersController") or a handler and method
// ("UsersController#destroy"); doublestar globs are supported. Malformed
// patterns are dropped with a warning once every option has been applied.
func WithIgnored(patterns ...string) Option {
	return func(r *Registry) {
		r.ignorePatterns = append(r.ignorePatterns, patterns...)
	}
}

// WithLogger sets the logger (default slog.Default()).
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		r.logger = logger
	}
}

// WithValidator replaces the payload validator. Passing nil disables
// tag-based validation; SelfValidator payloads are still checked.
func WithValidator(v Validator) Option {
	return func(r *Registry) {
		r.validator = v
	}
}

// WithExamplesFile sets the recorded examples file
// (default DefaultExamplesFile).
func WithExamplesFile(path string) Option {
	return func(r *Registry) {
		r.examplesFile = path
	}
}

// WithSemverOrdering sorts versions by semantic version precedence instead
// of lexically. Versions that do not parse sort after those that do.
func WithSemverOrdering() Option {
	return func(r *Registry) {
		r.semverOrdering = true
	}
}

// WithTree sets the handler hierarchy used for version inheritance.
func WithTree(t *Tree) Option {
	return func(r *Registry) {
		if t != nil {
			r.tree = t
		}
	}
}

// WithLoader adds a loader replayed by ReloadDocumentation.
func WithLoader(l Loader) Option {
	return func(r *Registry) {
		r.loaders = append(r.loaders, l)
	}
}
