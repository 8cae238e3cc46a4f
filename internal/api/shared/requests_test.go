package shared

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type target struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	tests := []struct {
		name        string
		requestBody string
		wantErr     bool
		errContains string
	}{
		{
			name:        "valid json",
			requestBody: `{"name": "test", "age": 30}`,
		},
		{
			name:        "invalid json",
			requestBody: `{"name": "test", "age": 30,}`, // trailing comma
			wantErr:     true,
			errContains: "invalid character",
		},
		{
			name:        "empty body",
			requestBody: "",
			wantErr:     true,
			errContains: "request body is empty",
		},
		{
			name:        "unknown field",
			requestBody: `{"name": "test", "height": 180}`,
			wantErr:     true,
			errContains: "unknown field",
		},
		{
			name:        "trailing object",
			requestBody: `{"name": "a"}{"name": "b"}`,
			wantErr:     true,
			errContains: "single JSON object",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(tc.requestBody))
			w := httptest.NewRecorder()

			var got target
			err := DecodeJSON(w, req, &got)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "test", got.Name)
			assert.Equal(t, 30, got.Age)
		})
	}
}

type selfValidating struct{ err error }

func (s selfValidating) Validate() error { return s.err }

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	type request struct {
		Outer struct {
			Value *float64 `json:"value" validate:"required"`
		} `json:"outer"`
	}

	t.Run("struct tags with json field names", func(t *testing.T) {
		t.Parallel()

		err := ValidateRequest(request{})
		require.Error(t, err)

		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, "outer.value", FieldPath(verrs[0].Namespace()))
		assert.Equal(t, "required", verrs[0].Tag())
	})

	t.Run("valid struct", func(t *testing.T) {
		t.Parallel()

		v := 1.5
		var req request
		req.Outer.Value = &v
		assert.NoError(t, ValidateRequest(req))
	})

	t.Run("uses Validate method when present", func(t *testing.T) {
		t.Parallel()

		sentinel := errors.New("custom")
		assert.ErrorIs(t, ValidateRequest(selfValidating{err: sentinel}), sentinel)
		assert.NoError(t, ValidateRequest(selfValidating{}))
	})
}
