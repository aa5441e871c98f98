package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	fdhttp "github.com/MrJamesThe3rd/filingdesk/internal/http"
	"github.com/MrJamesThe3rd/filingdesk/internal/http/deadline"
	"github.com/MrJamesThe3rd/filingdesk/internal/http/importcsv"
	"github.com/MrJamesThe3rd/filingdesk/internal/http/order"
	"github.com/MrJamesThe3rd/filingdesk/internal/http/renewal"
	"github.com/MrJamesThe3rd/filingdesk/internal/http/stats"
)

func newRouter() http.Handler {
	return fdhttp.New(
		fdhttp.Options{JWTSecret: secret, AllowedOrigins: []string{"https://admin.example.com"}},
		order.NewHandler(nil),
		deadline.NewHandler(nil),
		renewal.NewHandler(nil),
		importcsv.NewHandler(nil, nil),
		stats.NewHandler(nil),
	)
}

func TestRouter_PublicEndpoints(t *testing.T) {
	router := newRouter()

	for _, path := range []string{"/healthz", "/metrics"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouter_AdminRoutesRequireToken(t *testing.T) {
	router := newRouter()

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/stats"},
		{http.MethodGet, "/api/v1/renewals"},
		{http.MethodPost, "/api/v1/filings/import"},
		{http.MethodDelete, "/api/v1/applications/00000000-0000-0000-0000-000000000000/deadlines"},
	} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(route.method, route.path, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code, route.path)
	}
}

func TestRouter_AdminTokenReachesHandler(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/not-a-uuid/status", nil)
	req.Header.Set("Authorization", "Bearer "+sign(t, jwt.SigningMethodHS256, secret, "admin"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
