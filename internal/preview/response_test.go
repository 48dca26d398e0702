package preview

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperboy/internal/types"
)

func TestError_AppError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(types.WithRequestID(req.Context(), "req-1"))

	Error(rec, req, types.NewAppErrorWithDetails(types.ErrCodeValidationDigest, "bad digest",
		errors.New("internal detail"), map[string]any{"fields": map[string]any{"date": "required"}}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, "validation_invalid_digest", detail.Code)
	assert.Equal(t, "bad digest", detail.Message)
	assert.Equal(t, "req-1", detail.RequestID)
	assert.NotContains(t, rec.Body.String(), "internal detail")
}

func TestError_Generic(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("db password leaked"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_unexpected_error", decodeError(t, rec).Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestJSON_MarshalFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, map[string]any{"ch": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_unexpected_error", decodeError(t, rec).Code)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{name: "valid", body: `{"name":"a","count":1}`},
		{name: "empty", body: ``, wantMsg: "request body must not be empty"},
		{name: "syntax", body: `{"name":`, wantMsg: "invalid JSON in request body"},
		{name: "bad syntax", body: `{"name" "a"}`, wantMsg: "malformed JSON in request body"},
		{name: "wrong type", body: `{"count":"x"}`, wantMsg: "invalid value for field"},
		{name: "unknown field", body: `{"other":1}`, wantMsg: `unknown field in request body: "other"`},
		{name: "two values", body: `{"name":"a"} {"name":"b"}`, wantMsg: "request body must contain a single JSON object"},
		{name: "too large", body: `{"name":"` + strings.Repeat("a", maxRequestBodySize) + `"}`, wantMsg: "request body must not exceed 1MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst payload
			err := DecodeJSON(rec, req, &dst)
			if tt.wantMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, "a", dst.Name)
				return
			}

			var appErr *types.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, types.ErrCodeValidationInvalidJSON, appErr.Code)
			assert.Equal(t, tt.wantMsg, appErr.Message)
		})
	}
}
