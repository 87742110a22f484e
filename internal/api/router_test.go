package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhilbhutani/sitehost/internal/auth"
	"github.com/nikhilbhutani/sitehost/internal/booking"
	"github.com/nikhilbhutani/sitehost/internal/cache"
	"github.com/nikhilbhutani/sitehost/internal/classifier"
	"github.com/nikhilbhutani/sitehost/internal/config"
	"github.com/nikhilbhutani/sitehost/internal/models"
	"github.com/nikhilbhutani/sitehost/internal/preview"
	"github.com/nikhilbhutani/sitehost/internal/resolver"
)

const (
	testAdminKey  = "ops-key"
	testJWTSecret = "dash-secret"
)

type tenantTable map[string]*models.Tenant

func (t tenantTable) GetBySlug(_ context.Context, slug string) (*models.Tenant, error) {
	if tn, ok := t[slug]; ok {
		cp := *tn
		return &cp, nil
	}
	return nil, models.ErrTenantNotFound
}

func (t tenantTable) UpdateContent(_ context.Context, slug string, o models.ContentOverrides) error {
	tn, ok := t[slug]
	if !ok {
		return models.ErrTenantNotFound
	}
	tn.Content = o
	return nil
}

type countingStore struct{ n int }

func (s *countingStore) CreateQuote(_ context.Context, q *booking.Quote) error {
	s.n++
	return nil
}

func newTestServer(t *testing.T) (http.Handler, tenantTable, *countingStore) {
	t.Helper()
	cfg := config.Defaults()
	cfg.Site.BaseDomain = "platform.test"
	cfg.Site.PublicURL = "https://www.platform.test"
	cfg.Auth.JWTSecret = testJWTSecret
	cfg.Auth.AdminKeyHash = auth.HashAPIKey(testAdminKey)
	cfg.Server.RateLimitRPS = 1000
	cfg.Server.RateLimitBurst = 1000

	tenants := tenantTable{"acme": {
		ID:           uuid.New(),
		Slug:         "acme",
		Industry:     "mobile-detailing",
		BusinessName: "Acme Detailing",
		Phone:        "7025550143",
		Status:       models.TenantActive,
	}}
	ccache := cache.NewContextCache(cache.NoopStore{}, cache.DefaultPolicy(), nil)
	cl := classifier.New(classifier.Options{BaseDomain: cfg.Site.BaseDomain})
	codec := preview.NewCodec("preview-secret", "test")
	res := resolver.New(resolver.Deps{Classifier: cl, Gateway: tenants, Tokens: codec, Cache: ccache})
	store := &countingStore{}

	rt := NewRouter(Deps{
		Config:      &cfg,
		Classifier:  cl,
		Resolver:    res,
		Quotes:      booking.NewService(store, nil),
		Previews:    codec,
		Content:     tenants,
		Invalidator: ccache,
	})
	return rt.Setup(), tenants, store
}

func do(h http.Handler, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouterPublicRoutes(t *testing.T) {
	h, _, _ := newTestServer(t)

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/readyz", "", nil).Code)

	rec := do(h, http.MethodGet, "http://acme.platform.test/api/v1/site", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"live_tenant"`)

	rec = do(h, http.MethodGet, "http://ghost.platform.test/api/v1/site", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(h, http.MethodGet, "http://acme.platform.test/robots.txt", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Disallow: /preview")
}

func TestRouterQuotes(t *testing.T) {
	h, _, store := newTestServer(t)
	body := `{"name":"Jamie","phone":"7025550143","email":"jamie@example.com"}`

	rec := do(h, http.MethodPost, "http://acme.platform.test/api/v1/quotes", body, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, store.n)

	rec = do(h, http.MethodPost, "http://www.platform.test/api/v1/quotes?name=Jamie&phone=7025550143&city=Reno&state=NV&industry=barber", body, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "true", rec.Header().Get("X-Preview-Mode"))
	assert.Equal(t, 1, store.n, "preview submissions are never stored")
}

func TestRouterAdminPreviews(t *testing.T) {
	h, _, _ := newTestServer(t)
	body := `{"name":"Jamie's Cuts","phone":"7025550143","city":"Reno","state":"NV","industry":"barber"}`

	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodPost, "/api/v1/admin/previews", body, nil).Code)

	rec := do(h, http.MethodPost, "/api/v1/admin/previews", body, map[string]string{auth.DefaultAdminKeyHeader: testAdminKey})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://www.platform.test/?t=")
}

func TestRouterDashboard(t *testing.T) {
	h, tenants, _ := newTestServer(t)
	body := `{"brand":"Acme Mobile Detailing"}`

	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodPut, "/api/v1/dashboard/content", body, nil).Code)

	sign := func(role auth.Role) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
			Tenant: "acme",
			Role:   role,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}).SignedString([]byte(testJWTSecret))
		require.NoError(t, err)
		return "Bearer " + tok
	}

	rec := do(h, http.MethodPut, "/api/v1/dashboard/content", body, map[string]string{"Authorization": sign(auth.RoleViewer)})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(h, http.MethodPut, "/api/v1/dashboard/content", body, map[string]string{"Authorization": sign(auth.RoleEditor)})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Acme Mobile Detailing", tenants["acme"].Content.Brand)

	rec = do(h, http.MethodGet, "http://acme.platform.test/api/v1/site", "", nil)
	assert.Contains(t, rec.Body.String(), "Acme Mobile Detailing")
}

func TestRouterCORSPreflight(t *testing.T) {
	h, _, _ := newTestServer(t)
	rec := do(h, http.MethodOptions, "/api/v1/site", "", map[string]string{"Origin": "https://acme.platform.test"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-Admin-Key")
}
