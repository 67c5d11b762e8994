package apidoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/apidoc"
)

func TestArgumentError(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err    *apidoc.ArgumentError
		expect string
	}{
		"detail": {
			err:    &apidoc.ArgumentError{Op: "success", Detail: "bad use of success: 4 arguments"},
			expect: "apidoc: success: bad use of success: 4 arguments",
		},
		"no op": {
			err:    &apidoc.ArgumentError{Detail: "bad ref"},
			expect: "apidoc: bad ref",
		},
		"fields": {
			err: &apidoc.ArgumentError{
				Op: "define method",
				Fields: []apidoc.FieldError{
					{Field: "MethodPayload.APIs[0].HTTPMethod", Message: "required"},
					{Field: "MethodPayload.Errors[0].Code", Message: "must be at least 100"},
				},
			},
			expect: "apidoc: define method: MethodPayload.APIs[0].HTTPMethod: required; MethodPayload.Errors[0].Code: must be at least 100",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.EqualError(t, tc.err, tc.expect)
			require.ErrorIs(t, tc.err, apidoc.ErrArgument)
			assert.NotErrorIs(t, tc.err, apidoc.ErrParamGroupUndefined)
		})
	}
}

func TestConfigurationError(t *testing.T) {
	t.Parallel()

	err := &apidoc.ConfigurationError{Key: "users#pagination"}
	assert.EqualError(t, err, "apidoc: param group users#pagination not defined")
	require.ErrorIs(t, err, apidoc.ErrParamGroupUndefined)
	assert.NotErrorIs(t, err, apidoc.ErrArgument)
}
