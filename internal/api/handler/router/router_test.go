package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouter_RoutePattern(t *testing.T) {
	noop := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	rt := New(WithRoutes(
		Route{Path: "/api/leads", Method: http.MethodGet, Handler: noop},
		Route{Path: "/api/leads/:id", Method: http.MethodGet, Handler: noop},
		Route{Path: "/api/leads/:id/status", Method: http.MethodPatch, Handler: noop},
		Route{Path: "/api/export/leads/:format", Method: http.MethodGet, Handler: noop},
		Route{Path: "/static/*filepath", Method: http.MethodGet, Handler: noop},
	))

	tests := []struct {
		method   string
		path     string
		expected string
	}{
		{http.MethodGet, "/api/leads", "/api/leads"},
		{http.MethodGet, "/api/leads/42", "/api/leads/:id"},
		{http.MethodPatch, "/api/leads/42/status", "/api/leads/:id/status"},
		{http.MethodGet, "/api/export/leads/xlsx", "/api/export/leads/:format"},
		{http.MethodGet, "/static/css/app.css", "/static/*filepath"},
		{http.MethodGet, "/api/leads/42/status", ""},
		{http.MethodGet, "/api/leads/", ""},
		{http.MethodDelete, "/api/leads/42", ""},
		{http.MethodGet, "/wp-login.php", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			assert.Equal(t, tt.expected, rt.RoutePattern(req))
		})
	}
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	noop := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	rt := New(WithRoutes(Route{Path: "/api/leads/:id", Method: http.MethodGet, Handler: noop}))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leads/1", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nada", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/leads/1", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
