package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/metrics"
	"github.com/MKhiriev/go-form-keeper/internal/service"
)

func TestNewHandler_StoresDependencies(t *testing.T) {
	svc := &service.Services{}
	rec := metrics.New()
	log := logger.Nop()

	h := NewHandler(svc, rec, log)

	require.NotNil(t, h)
	assert.Equal(t, svc, h.services)
	assert.Equal(t, rec, h.metrics)
	assert.Equal(t, log, h.logger)
}

// newTestServices returns services whose every call succeeds trivially;
// tests override the parts they exercise.
func newTestServices() *service.Services {
	return &service.Services{
		AuthService:       acceptToken(),
		FormService:       &mockFormService{},
		SubmissionService: &mockSubmissionService{},
		AppInfoService:    &mockAppInfoService{version: "test-version"},
		HealthService:     &mockHealthService{},
	}
}

func newTestRouter(svcs *service.Services) http.Handler {
	return NewHandler(svcs, metrics.New(), logger.Nop()).Init()
}

// do sends a request through router. token is sent as a bearer token when
// not empty; body is JSON-encoded when not nil.
func do(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, ok := body.(string)
		if !ok {
			encoded, err := json.Marshal(body)
			require.NoError(t, err)
			raw = string(encoded)
		}
		reader = bytes.NewBufferString(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// routeCase describes a single expected route.
type routeCase struct {
	method string
	path   string
}

// ownerRoutes must answer 401 without a token.
var ownerRoutes = []routeCase{
	{http.MethodPost, "/forms/create"},
	{http.MethodGet, "/forms/list"},
	{http.MethodGet, "/forms/responses/some-id"},
	{http.MethodDelete, "/forms/delete/some-id"},
}

func TestInit_OwnerRoutesRequireToken(t *testing.T) {
	router := newTestRouter(newTestServices())

	for _, tc := range ownerRoutes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := do(t, router, tc.method, tc.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestInit_PublicRoutes(t *testing.T) {
	router := newTestRouter(newTestServices())

	rec := do(t, router, http.MethodGet, "/api/version/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test-version", rec.Body.String())

	rec = do(t, router, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestInit_UnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(newTestServices())

	rec := do(t, router, http.MethodGet, "/api/nonexistent", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_WrongMethodReturns404(t *testing.T) {
	router := newTestRouter(newTestServices())

	rec := do(t, router, http.MethodPut, "/forms/submit", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz_StorageDown(t *testing.T) {
	svcs := newTestServices()
	svcs.HealthService = &mockHealthService{err: errors.New("connection refused")}

	rec := do(t, newTestRouter(svcs), http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), errStorageNotReady.Error())
}
