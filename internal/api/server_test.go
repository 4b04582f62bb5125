package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/lead-crm-api/internal/config"
	"github.com/vfg2006/lead-crm-api/internal/domain"
	"github.com/vfg2006/lead-crm-api/internal/usecases/authenticating"
	authmocks "github.com/vfg2006/lead-crm-api/internal/usecases/authenticating/mocks"
	exportmocks "github.com/vfg2006/lead-crm-api/internal/usecases/exporting/mocks"
	importmocks "github.com/vfg2006/lead-crm-api/internal/usecases/importing/mocks"
	leadmocks "github.com/vfg2006/lead-crm-api/internal/usecases/lead/mocks"
	sellermocks "github.com/vfg2006/lead-crm-api/internal/usecases/seller/mocks"
	"github.com/vfg2006/lead-crm-api/pkg/apiErrors"
	"github.com/vfg2006/lead-crm-api/pkg/log"
	"go.uber.org/mock/gomock"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type idleWarmer struct{}

func (idleWarmer) TriggerManualSync(context.Context) bool { return false }
func (idleWarmer) GetStatus() map[string]any              { return map[string]any{} }

type testServer struct {
	handler http.Handler
	auth    *authmocks.MockAuthenticator
	leads   *leadmocks.MockLeadService
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	auth := authmocks.NewMockAuthenticator(ctrl)
	leads := leadmocks.NewMockLeadService(ctrl)

	cfg := &config.Config{
		Auth: config.Auth{LoginRateLimitRPS: 0},
		Cors: config.Cors{AllowedOrigins: []string{"http://localhost:5173"}},
	}

	h := NewHandler(cfg, Services{
		DB:            okPinger{},
		Authenticator: auth,
		Leads:         leads,
		Sellers:       sellermocks.NewMockSellerService(ctrl),
		Exporter:      exportmocks.NewMockExporter(ctrl),
		Importer:      importmocks.NewMockImporter(ctrl),
		StatsWarmer:   idleWarmer{},
	})

	return testServer{handler: h, auth: auth, leads: leads}
}

func (s testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func TestHandler_PublicRoutes(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = srv.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestHandler_ProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/api/leads", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	srv.auth.EXPECT().ValidateToken("expirado").Return(nil,
		authenticating.NewAuthError(authenticating.ErrExpiredToken, apiErrors.ErrExpiredToken, "Token expirado"))

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.Header.Set("Authorization", "Bearer expirado")
	rec = srv.do(req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrExpiredToken)
}

func TestHandler_AuthenticatedRequest(t *testing.T) {
	srv := newTestServer(t)

	srv.auth.EXPECT().ValidateToken("valido").Return(&domain.Claims{Authenticated: true}, nil).Times(2)
	srv.leads.EXPECT().ListLeads(gomock.Any(), gomock.Any()).Return(&domain.LeadListResponse{
		Data:       []*domain.Lead{},
		Pagination: domain.Pagination{Page: 1, Limit: 50},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/leads", nil)
	req.Header.Set("Authorization", "Bearer valido")
	req.Header.Set("X-Request-ID", "req-123")
	rec := srv.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/api/nao-existe", nil)
	req.Header.Set("Authorization", "Bearer valido")
	rec = srv.do(req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), apiErrors.ErrNotFound)
}

func TestHandler_CorsPreflightSkipsAuth(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/leads/1/status", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := srv.do(req)

	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch))
}

func TestHandler_MetricsUseRoutePatterns(t *testing.T) {
	srv := newTestServer(t)

	srv.do(httptest.NewRequest(http.MethodGet, "/api/leads/987654/status", nil))
	for _, path := range []string{"/admin/.env", "/wp-login.php", "/cgi-bin/x"} {
		srv.do(httptest.NewRequest(http.MethodGet, path, nil))
	}

	rec := srv.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	assert.Contains(t, body, `path="unmatched"`)
	assert.NotContains(t, body, "987654")
	assert.NotContains(t, body, "wp-login")
	assert.NotContains(t, body, ".env")
}
