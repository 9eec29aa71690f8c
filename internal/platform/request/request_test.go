// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/cadenza/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/cadenza/internal/platform/request"
	"github.com/taibuivan/cadenza/internal/platform/sec"
	"github.com/taibuivan/cadenza/internal/platform/validate"
)

/*
TestDecodeJSON accepts known fields and rejects the rest.
*/
func TestDecodeJSON(t *testing.T) {
	var target struct {
		Name string `json:"name"`
	}

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Moon Safari"}`))
	require.NoError(t, requestutil.DecodeJSON(httptest.NewRecorder(), request, &target))
	assert.Equal(t, "Moon Safari", target.Name)

	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Moon Safari"}`))
	assert.ErrorIs(t, requestutil.DecodeJSON(httptest.NewRecorder(), request, &target), validate.ErrInvalidJSON)

	request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.ErrorIs(t, requestutil.DecodeJSON(httptest.NewRecorder(), request, &target), validate.ErrInvalidJSON)
}

/*
TestParam decodes escaped path segments so "%2B" reads as a composite separator.
*/
func TestParam(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"literal_plus", "/albums/blur+parklife", "blur+parklife"},
		{"encoded_plus", "/albums/blur%2Bparklife", "blur+parklife"},
		{"encoded_space", "/albums/blur%20uk", "blur uk"},
		{"numeric", "/albums/42", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			router := chi.NewRouter()
			router.Get("/albums/{idOrSlug}", func(writer http.ResponseWriter, request *http.Request) {
				value, err := requestutil.Param(request, "idOrSlug")
				require.NoError(t, err)
				got = value
			})

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.want, got)
		})
	}
}

/*
TestRequiredCaller rejects anonymous requests.
*/
func TestRequiredCaller(t *testing.T) {
	request := httptest.NewRequest(http.MethodPost, "/", nil)
	_, err := requestutil.RequiredCaller(request)
	assert.Error(t, err)

	claims := &sec.AuthClaims{UserID: "scanner", Role: string(sec.RoleIngestion)}
	request = request.WithContext(ctxutil.WithCaller(request.Context(), claims))
	caller, err := requestutil.RequiredCaller(request)
	require.NoError(t, err)
	assert.Equal(t, "scanner", caller.UserID)
}
