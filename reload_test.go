package apidoc_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/apidoc"
	"github.com/bjaus/apidoc/apitest"
)

func TestRegistry_ReloadDocumentation(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "examples.yml")
	users := &apidoc.Handler{Name: "UsersController", Resource: "users"}

	var short string
	var calls int
	reg := apitest.NewRegistry(t,
		apidoc.WithExamplesFile(path),
		apidoc.WithLoader(apidoc.LoaderFunc(func(r *apidoc.Registry) error {
			calls++
			r.SetControllerVersions(users, []string{"v1"})
			_, err := r.DefineMethodDescription(users, "show", apidoc.MethodPayload{ShortDescription: short})
			return err
		})),
	)
	assert.Zero(t, calls, "loaders only run on reload")

	short = "first"
	require.NoError(t, reg.ReloadDocumentation())

	md, err := reg.GetMethodDescription(apidoc.Path("v1#users#show"), "")
	require.NoError(t, err)
	require.NotNil(t, md)
	assert.Equal(t, "first", md.ShortDescription())
	assert.Empty(t, md.Examples())

	// Stale definitions disappear and the examples file is read again.
	apitest.DefineMethod(t, reg, users, "legacy", apidoc.MethodPayload{})
	apitest.WriteExamples(t, path, map[string][]apidoc.RecordedExample{
		"users#show": {{Verb: "GET", Path: "/users/1", Code: 200, ShowInDoc: 1}},
	})

	short = "second"
	require.NoError(t, reg.ReloadDocumentation())
	assert.Equal(t, 2, calls)

	md, err = reg.GetMethodDescription(apidoc.Path("v1#users#show"), "")
	require.NoError(t, err)
	assert.Equal(t, "second", md.ShortDescription())
	assert.Equal(t, []string{"GET /users/1\n200"}, md.Examples())

	legacy, err := reg.GetMethodDescription(apidoc.Path("v1#users#legacy"), "")
	require.NoError(t, err)
	assert.Nil(t, legacy)
}

func TestRegistry_ReloadDocumentation_errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var ran []string

	reg := apitest.NewRegistry(t)
	reg.AddLoader(apidoc.LoaderFunc(func(*apidoc.Registry) error {
		ran = append(ran, "first")
		return boom
	}))
	reg.AddLoader(apidoc.LoaderFunc(func(r *apidoc.Registry) error {
		ran = append(ran, "second")
		_, err := r.DefineMethodDescription(nil, "show", apidoc.MethodPayload{})
		return err
	}))

	err := reg.ReloadDocumentation()
	require.ErrorIs(t, err, boom)
	require.ErrorIs(t, err, apidoc.ErrArgument)
	assert.Equal(t, []string{"first", "second"}, ran)
}
