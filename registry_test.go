package apidoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/apidoc"
	"github.com/bjaus/apidoc/apitest"
)

func TestRegistry_ControllerVersions(t *testing.T) {
	t.Parallel()

	reg := apitest.NewRegistry(t, apidoc.WithDefaultVersion("v1"))
	h := apitest.NewHandlers(t, reg)

	assert.Equal(t, []string{"v1"}, reg.ControllerVersions(h.AdminWidgets))

	reg.SetControllerVersions(h.Base, []string{"v1", "v2"})
	assert.Equal(t, []string{"v1", "v2"}, reg.ControllerVersions(h.AdminWidgets))

	reg.SetControllerVersions(h.Admin, []string{"v3"})
	assert.Equal(t, []string{"v3"}, reg.ControllerVersions(h.AdminWidgets))
	assert.Equal(t, []string{"v1", "v2"}, reg.ControllerVersions(h.Users))

	reg.SetControllerVersions(h.Admin, nil)
	assert.Equal(t, []string{"v1", "v2"}, reg.ControllerVersions(h.AdminWidgets))
}

func TestRegistry_ResourceName(t *testing.T) {
	t.Parallel()

	reg := apitest.NewRegistry(t)
	h := apitest.NewHandlers(t, reg)

	assert.Equal(t, "users", reg.ResourceName(h.Users))
	assert.Empty(t, reg.ResourceName(h.Base))
	assert.Empty(t, reg.ResourceName(nil))

	reg.SetResourceID(h.Users, "people")
	assert.Equal(t, "people", reg.ResourceName(h.Users))
}

func TestRegistry_DefineResourceDescription(t *testing.T) {
	t.Parallel()

	t.Run("creates then merges", func(t *testing.T) {
		t.Parallel()

		reg := apitest.NewRegistry(t)
		h := apitest.NewHandlers(t, reg)

		first, err := reg.DefineResourceDescription(h.Users, "v1", &apidoc.ResourcePayload{
			ShortDescription: "Users",
			Formats:          []string{"json"},
			Metadata:         map[string]any{"owner": "core"},
		})
		require.NoError(t, err)
		require.NotNil(t, first)

		deprecated := true
		second, err := reg.DefineResourceDescription(h.Users, "v1", &apidoc.ResourcePayload{
			FullDescription: "All about users.",
			Metadata:        map[string]any{"tier": 1},
			Deprecated:      &deprecated,
		})
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, "Users", second.ShortDescription())
		assert.Equal(t, "All about users.", second.FullDescription())
		assert.Equal(t, []string{"json"}, second.Formats())
		assert.Equal(t, map[string]any{"owner": "core", "tier": 1}, second.Metadata())
		assert.True(t, second.Deprecated())
		assert.Equal(t, "v1", second.Version())
		assert.Same(t, h.Users, second.Handler())
	})

	t.Run("blank version uses the default", func(t *testing.T) {
		t.Parallel()

		reg := apitest.NewRegistry(t, apidoc.WithDefaultVersion("v9"))
		h := apitest.NewHandlers(t, reg)

		rd, err := reg.DefineResourceDescription(h.Users, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "v9", rd.Version())
		assert.Equal(t, []string{"v9"}, reg.AvailableVersions())
	})

	t.Run("abstract handler is skipped", func(t *testing.T) {
		t.Parallel()

		reg := apitest.NewRegistry(t)
		h := apitest.NewHandlers(t, reg)

		rd, err := reg.DefineResourceDescription(h.Base, "v1", &apidoc.ResourcePayload{ShortDescription: "base"})
		require.NoError(t, err)
		assert.Nil(t, rd)
		assert.Empty(t, reg.AvailableVersions())
	})

	t.Run("nil handler is skipped", func(t *testing.T) {
		t.Parallel()

		reg := apitest.NewRegistry(t)
		rd, err := reg.DefineResourceDescription(nil, "v1", nil)
		require.NoError(t, err)
		assert.Nil(t, rd)
	})

	t.Run("ignored handler is skipped", func(t *testing.T) {
		t.Parallel()

		reg := apitest.NewRegistry(t, apidoc.WithIgnored("Admin::*"))
		h := apitest.NewHandlers(t, reg)

		rd, err := reg.DefineResourceDescription(h.AdminWidgets, "v1", nil)
		require.NoError(t, err)
		assert.Nil(t, rd)
	})
}

func TestRegistry_DefineMethodDescription(t *testing.T) {
	t.Parallel()

	t.Run("one instance per version", func(t *testing.T) {
		t.Parallel()

		reg := apitest.NewRegistry(t)
		h := apitest.NewHandlers(t, reg)
		reg.SetControllerVersions(h.Base, []string{"v1", "v2"})

		md := apitest.DefineMethod(t, reg, h.Users, "show", apidoc.MethodPayload{
			ShortDescription: "Show a user",
			Successes:        []apidoc.SuccessArgs{{200, "ok"}},
		})
		require.NotNil(t, md)
		assert.Equal(t, "v1", md.Version())

		v1, err := reg.GetMethodDescription(apidoc.Path("v1#users"), "show")
		require.NoError(t, err)
		v2, err := reg.GetMethodDescription(apidoc.Path("v2#users"), "show")
		require.NoError(t, err)

		assert.Same(t, md, v1)
		require.NotNil(t, v2)
		assert.NotSame(t, v1, v2)
		assert.Equal(t, "v2", v2.Version())
		assert.Equal(t, v1.ShortDescription(), v2.ShortDescription())
		assert.Equal(t, []string{"v1", "v2"}, reg.AvailableVersions())
	})

	t.Run("api versions override the handler", func(t *testing.T) {
		t.Parallel()

		reg := apitest.NewRegistry(t)
		h := apitest.NewHandlers(t, reg)
		reg.SetControllerVersions(h.Users, []string{"v1"})

		md := apitest.DefineMethod(t, reg, h.Users, "index", apidoc.MethodPayload{
			APIVersions: []string{"v3", "v2", "v3"},
		})
		assert.Equal(t, "v3", md.Version())
		assert.Equal(t, []string{"v2", "v3"}, reg.AvailableVersions())
	})

	t.Run("blank versions mean the default", func(t *testing.T) {
		t.Parallel()

		tests := map[string]func(reg *apidoc.Registry, h *apitest.Handlers) apidoc.MethodPayload{
			"api versions": func(*apidoc.Registry, *apitest.Handlers) apidoc.MethodPayload {
				return apidoc.MethodPayload{APIVersions: []string{"", "v1"}}
			},
			"controller versions": func(reg *apidoc.Registry, h *apitest.Handlers) apidoc.MethodPayload {
				reg.SetControllerVersions(h.Users, []string{""})
				return apidoc.MethodPayload{}
			},
		}

		for name, payload := range tests {
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				reg := apitest.NewRegistry(t, apidoc.WithDefaultVersion("v1"))
				h := apitest.NewHandlers(t, reg)

				md := apitest.DefineMethod(t, reg, h.Users, "index", payload(reg, h))
				assert.Equal(t, "v1", md.Version())
				assert.Equal(t, []string{"v1"}, reg.AvailableVersions())

				got, err := reg.GetMethodDescription(apidoc.Path("users#index"), "")
				require.NoError(t, err)
				assert.Same(t, md, got)

				doc := reg.ToJSON("", "", "")
				require.NotNil(t, doc)
				assert.Equal(t, 1, doc.Docs.Resources.Len())
			})
		}
	})

	t.Run("redefinition replaces in place", func(t *testing.T) {
		t.Parallel()

		reg := apitest.NewRegistry(t)
		h := apitest.NewHandlers(t, reg)

		apitest.DefineMethod(t, reg, h.Users, "index", apidoc.MethodPayload{})
		apitest.DefineMethod(t, reg, h.Users, "show", apidoc.MethodPayload{ShortDescription: "old"})
		apitest.DefineMethod(t, reg, h.Users, "index", apidoc.MethodPayload{ShortDescription: "new"})

		rd, err := reg.GetResourceDescription(apidoc.Path("users"))
		require.NoError(t, err)

		var names []string
		for _, md := range rd.MethodDescriptions() {
			names = append(names, md.Name())
		}
		assert.Equal(t, []string{"index", "show"}, names)
		assert.Equal(t, "new", rd.MethodDescription("index").ShortDescription())
	})

	t.Run("payload is copied", func(t *testing.T) {
		t.Parallel()

		reg := apitest.NewRegistry(t)
		h := apitest.NewHandlers(t, reg)

		p := apidoc.MethodPayload{
			Params:   []apidoc.ParamDescription{{Name: "id"}},
			Examples: []string{"GET /users/1"},
		}
		md := apitest.DefineMethod(t, reg, h.Users, "show", p)
		p.Params[0].Name = "changed"
		p.Examples[0] = "changed"

		assert.Equal(t, "id", md.Params()[0].Name)
		assert.Equal(t, []string{"GET /users/1"}, md.Examples())
	})

	t.Run("formats fall back to the resource", func(t *testing.T) {
		t.Parallel()

		reg := apitest.NewRegistry(t)
		h := apitest.NewHandlers(t, reg)

		_, err := reg.DefineResourceDescription(h.Users, "1.0", &apidoc.ResourcePayload{Formats: []string{"json", "xml"}})
		require.NoError(t, err)

		inherited := apitest.DefineMethod(t, reg, h.Users, "index", apidoc.MethodPayload{})
		own := apitest.DefineMethod(t, reg, h.Users, "show", apidoc.MethodPayload{Formats: []string{"csv"}})

		assert.Equal(t, []string{"json", "xml"}, inherited.Formats())
		assert.Equal(t, []string{"csv"}, own.Formats())
	})

	t.Run("resource id overrides the resource name", func(t *testing.T) {
		t.Parallel()

		reg := apitest.NewRegistry(t)
		h := apitest.NewHandlers(t, reg)
		reg.SetResourceID(h.Users, "people")

		apitest.DefineMethod(t, reg, h.Users, "index", apidoc.MethodPayload{})

		md, err := reg.GetMethodDescription(apidoc.Path("people#index"), "")
		require.NoError(t, err)
		assert.NotNil(t, md)
	})

	t.Run("doc urls", func(t *testing.T) {
		t.Parallel()

		reg := apitest.NewRegistry(t, apidoc.WithDocBaseURL("/docs/"), apidoc.WithVersionInURL())
		h := apitest.NewHandlers(t, reg)

		md := apitest.DefineMethod(t, reg, h.Users, "show", apidoc.MethodPayload{})
		assert.Equal(t, "/docs/1.0/users", md.Resource().DocURL())
		assert.Equal(t, "/docs/1.0/users/show", md.DocURL())
	})
}

func TestRegistry_DefineMethodDescription_ignored(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		patterns []string
		method   string
		ignored  bool
	}{
		"handler name": {
			patterns: []string{"UsersController"},
			method:   "show",
			ignored:  true,
		},
		"handler and method": {
			patterns: []string{"UsersController#destroy"},
			method:   "destroy",
			ignored:  true,
		},
		"other method of listed handler": {
			patterns: []string{"UsersController#destroy"},
			method:   "show",
		},
		"glob": {
			patterns: []string{"Users*#de*"},
			method:   "delete",
			ignored:  true,
		},
		"no match": {
			patterns: []string{"WidgetsController"},
			method:   "show",
		},
		"malformed pattern dropped": {
			patterns: []string{"Users[Controller"},
			method:   "show",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			reg := apitest.NewRegistry(t, apidoc.WithIgnored(tc.patterns...))
			h := apitest.NewHandlers(t, reg)

			md, err := reg.DefineMethodDescription(h.Users, tc.method, apidoc.MethodPayload{})
			require.NoError(t, err)
			assert.Equal(t, tc.ignored, md == nil)
			assert.Equal(t, tc.ignored, reg.IsIgnored(h.Users, tc.method))
		})
	}
}

func TestRegistry_DefineMethodDescription_errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		handler    func(h *apitest.Handlers) *apidoc.Handler
		method     string
		payload    apidoc.MethodPayload
		wantFields []string
	}{
		"nil handler": {
			handler: func(*apitest.Handlers) *apidoc.Handler { return nil },
			method:  "show",
		},
		"empty method": {
			handler: func(h *apitest.Handlers) *apidoc.Handler { return h.Users },
		},
		"abstract handler": {
			handler: func(h *apitest.Handlers) *apidoc.Handler { return h.Base },
			method:  "show",
		},
		"bad success shape": {
			handler: func(h *apitest.Handlers) *apidoc.Handler { return h.Users },
			method:  "show",
			payload: apidoc.MethodPayload{Successes: []apidoc.SuccessArgs{{200}}},
		},
		"route without verb": {
			handler:    func(h *apitest.Handlers) *apidoc.Handler { return h.Users },
			method:     "show",
			payload:    apidoc.MethodPayload{APIs: []apidoc.Route{{Path: "/users/:id"}}},
			wantFields: []string{"MethodPayload.APIs[0].HTTPMethod"},
		},
		"param without name": {
			handler:    func(h *apitest.Handlers) *apidoc.Handler { return h.Users },
			method:     "show",
			payload:    apidoc.MethodPayload{Params: []apidoc.ParamDescription{{Description: "anonymous"}}},
			wantFields: []string{"MethodPayload.Params[0].Name"},
		},
		"error code out of range": {
			handler:    func(h *apitest.Handlers) *apidoc.Handler { return h.Users },
			method:     "show",
			payload:    apidoc.MethodPayload{Errors: []apidoc.ErrorDescription{{Code: 42}}},
			wantFields: []string{"MethodPayload.Errors[0].Code"},
		},
		"duplicate param": {
			handler: func(h *apitest.Handlers) *apidoc.Handler { return h.Users },
			method:  "show",
			payload: apidoc.MethodPayload{Params: []apidoc.ParamDescription{{Name: "id"}, {Name: "id"}}},
		},
		"unknown param type": {
			handler:    func(h *apitest.Handlers) *apidoc.Handler { return h.Users },
			method:     "show",
			payload:    apidoc.MethodPayload{Params: []apidoc.ParamDescription{{Name: "id", ExpectedType: "uuid"}}},
			wantFields: []string{"MethodPayload.Params[0].ExpectedType"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			reg := apitest.NewRegistry(t)
			h := apitest.NewHandlers(t, reg)

			md, err := reg.DefineMethodDescription(tc.handler(h), tc.method, tc.payload)
			require.ErrorIs(t, err, apidoc.ErrArgument)
			assert.Nil(t, md)
			assert.Empty(t, reg.AvailableVersions(), "nothing is stored on failure")

			if tc.wantFields != nil {
				var argErr *apidoc.ArgumentError
				require.ErrorAs(t, err, &argErr)
				var fields []string
				for _, f := range argErr.Fields {
					fields = append(fields, f.Field)
				}
				assert.Equal(t, tc.wantFields, fields)
			}
		})
	}
}

func TestRegistry_customValidator(t *testing.T) {
	t.Parallel()

	var seen []any
	reg := apitest.NewRegistry(t, apidoc.WithValidator(validatorFunc(func(payload any) error {
		seen = append(seen, payload)
		return nil
	})))
	h := apitest.NewHandlers(t, reg)

	// Tag validation is replaced, so a route without a verb gets through.
	md, err := reg.DefineMethodDescription(h.Users, "show", apidoc.MethodPayload{
		APIs: []apidoc.Route{{Path: "/users/:id"}},
	})
	require.NoError(t, err)
	assert.NotNil(t, md)
	assert.Len(t, seen, 1)
}

type validatorFunc func(any) error

func (f validatorFunc) Validate(payload any) error { return f(payload) }

func TestRegistry_ClearAndInit(t *testing.T) {
	t.Parallel()

	reg := apitest.NewRegistry(t)
	h := apitest.NewHandlers(t, reg)
	reg.SetControllerVersions(h.Base, []string{"v1"})
	reg.SetResourceID(h.Users, "people")
	require.NoError(t, reg.AddParamGroup(h.Users, "pagination", []apidoc.ParamDescription{{Name: "page"}}))
	apitest.DefineMethod(t, reg, h.Users, "index", apidoc.MethodPayload{})

	reg.Clear()
	assert.Empty(t, reg.AvailableVersions())
	assert.Equal(t, "people", reg.ResourceName(h.Users))
	assert.Equal(t, []string{"v1"}, reg.ControllerVersions(h.Users))

	reg.Init()
	assert.Equal(t, "users", reg.ResourceName(h.Users))
	assert.Equal(t, []string{"1.0"}, reg.ControllerVersions(h.Users))
	_, err := reg.ParamGroup(h.Users, "pagination")
	require.ErrorIs(t, err, apidoc.ErrParamGroupUndefined)
}
