package apidoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/apidoc"
	"github.com/bjaus/apidoc/apitest"
)

func TestRegistry_ParamGroup(t *testing.T) {
	t.Parallel()

	reg := apitest.NewRegistry(t)
	h := apitest.NewHandlers(t, reg)

	pagination := []apidoc.ParamDescription{
		{Name: "page", ExpectedType: apidoc.TypeNumeric},
		{Name: "filter", ExpectedType: apidoc.TypeHash, Params: []apidoc.ParamDescription{{Name: "q"}}},
	}
	require.NoError(t, reg.AddParamGroup(h.Users, "pagination", pagination))

	got, err := reg.ParamGroup(h.Users, "pagination")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "page", got[0].FullName)
	assert.Equal(t, "filter[q]", got[1].Params[0].FullName)

	got[0].Name = "changed"
	again, err := reg.ParamGroup(h.Users, "pagination")
	require.NoError(t, err)
	assert.Equal(t, "page", again[0].Name, "callers get a copy")

	t.Run("scoped to the handler path", func(t *testing.T) {
		_, err := reg.ParamGroup(h.AdminWidgets, "pagination")
		require.ErrorIs(t, err, apidoc.ErrParamGroupUndefined)

		var cfgErr *apidoc.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "admin/widgets#pagination", cfgErr.Key)
		assert.EqualError(t, err, "apidoc: param group admin/widgets#pagination not defined")
	})

	t.Run("handlers sharing a path share groups", func(t *testing.T) {
		other := &apidoc.Handler{Name: "Api::UsersController", Resource: "users"}
		shared, err := reg.ParamGroup(other, "pagination")
		require.NoError(t, err)
		assert.Len(t, shared, 2)
	})

	t.Run("replace", func(t *testing.T) {
		require.NoError(t, reg.AddParamGroup(h.AdminWidgets, "sort", []apidoc.ParamDescription{{Name: "by"}}))
		require.NoError(t, reg.AddParamGroup(h.AdminWidgets, "sort", []apidoc.ParamDescription{{Name: "order"}}))
		got, err := reg.ParamGroup(h.AdminWidgets, "sort")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "order", got[0].Name)
	})
}

func TestRegistry_AddParamGroup_errors(t *testing.T) {
	t.Parallel()

	reg := apitest.NewRegistry(t)
	h := apitest.NewHandlers(t, reg)

	err := reg.AddParamGroup(nil, "pagination", nil)
	require.ErrorIs(t, err, apidoc.ErrArgument)

	err = reg.AddParamGroup(h.Users, "pagination", []apidoc.ParamDescription{{ExpectedType: apidoc.TypeString}})
	require.ErrorIs(t, err, apidoc.ErrArgument)

	var argErr *apidoc.ArgumentError
	require.ErrorAs(t, err, &argErr)
	require.Len(t, argErr.Fields, 1)
	assert.Equal(t, "ParamDescription.Name", argErr.Fields[0].Field)
	assert.Equal(t, "required", argErr.Fields[0].Message)

	_, err = reg.ParamGroup(nil, "pagination")
	require.ErrorIs(t, err, apidoc.ErrArgument)
}
