package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/UsersAPI_Go/internal/config"
	"github.com/osse101/UsersAPI_Go/internal/mapping"
	"github.com/osse101/UsersAPI_Go/internal/user"
	"github.com/osse101/UsersAPI_Go/internal/validation"
)

func newTestServer(t *testing.T, maxBody int64) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Port:         0,
		MaxBodyBytes: maxBody,
	}
	repo := user.NewCachedRepository(user.NewInMemoryRepository(), user.DefaultCacheConfig())
	svc := user.NewService(repo, mapping.NewRules(), validation.New())
	return NewServer(cfg, svc, mapping.NewRules()).Handler()
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServer_OperationalEndpoints(t *testing.T) {
	h := newTestServer(t, config.DefaultMaxBodyBytes)

	tests := []struct {
		path     string
		contains string
	}{
		{"/healthz", `"status":"ok"`},
		{"/readyz", `"status":"ok"`},
		{"/version", `"go_version"`},
		{"/admin/cache/stats", `"hits"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := serve(h, http.MethodGet, tt.path, "")

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.contains)
			assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
		})
	}
}

func TestServer_MetricsExposeRoutePatterns(t *testing.T) {
	h := newTestServer(t, config.DefaultMaxBodyBytes)

	rec := serve(h, http.MethodGet, UsersBasePath+"/6a1f6f3e-8c58-4bb4-b0f2-3c1b7b1d9a11", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, `path="/api/users/{userId}"`)
	assert.NotContains(t, body, "6a1f6f3e-8c58-4bb4-b0f2-3c1b7b1d9a11")
}

func TestServer_UsersRoundTrip(t *testing.T) {
	h := newTestServer(t, config.DefaultMaxBodyBytes)

	rec := serve(h, http.MethodPost, UsersBasePath, `{"login":"johndoe375","firstName":"John","lastName":"Doe"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	location := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "http://example.com"+UsersBasePath+"/"), location)
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))

	rec = serve(h, http.MethodGet, strings.TrimPrefix(location, "http://example.com"), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"fullName":"Doe John"`)

	rec = serve(h, http.MethodOptions, UsersBasePath, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Allow"))
}

func TestServer_OversizedBodyIsTooLarge(t *testing.T) {
	h := newTestServer(t, 32)

	rec := serve(h, http.MethodPost, UsersBasePath,
		`{"login":"johndoe375","firstName":"John","lastName":"`+strings.Repeat("x", 64)+`"}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "Request body too large")
}

func TestServer_MethodNotAllowed(t *testing.T) {
	h := newTestServer(t, config.DefaultMaxBodyBytes)

	rec := serve(h, http.MethodDelete, UsersBasePath, "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServer_SwaggerUIMounted(t *testing.T) {
	h := newTestServer(t, config.DefaultMaxBodyBytes)

	rec := serve(h, http.MethodGet, "/swagger/index.html", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "swagger-ui")
}
