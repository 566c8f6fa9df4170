package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clinical-service/internal/app/config"
	"clinical-service/internal/app/drivers/metrics"
	"clinical-service/internal/app/models"
	"clinical-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testSecret = "test-jwt-secret"
	testPrefix = "/api/v1/clinical"
)

func newTestMiddlewares(t *testing.T, authEnabled bool) (*Middlewares, *metrics.Collector) {
	t.Helper()
	collector := metrics.NewCollector("test")
	internalConfig := &config.InternalConfig{
		App: config.App{
			EndpointPrefix:              testPrefix,
			RequestBodyLimitInMegabytes: 1,
		},
		JWT: config.JWT{Enabled: authEnabled, Secret: testSecret},
	}
	m, err := NewMiddlewares(zap.NewNop(), internalConfig, collector)
	require.NoError(t, err)
	return m, collector
}

func signToken(t *testing.T, secret string, roles []string, expiresAt time.Time) string {
	t.Helper()
	rawRoles := make([]interface{}, 0, len(roles))
	for _, role := range roles {
		rawRoles = append(rawRoles, role)
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": expiresAt.Unix(),
		constvars.JWTClaimRealmAccess: map[string]interface{}{
			constvars.JWTClaimRoles: rawRoles,
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("success"))
})

func TestAuthenticate(t *testing.T) {
	m, _ := newTestMiddlewares(t, true)

	t.Run("valid token exposes upper-cased realm roles", func(t *testing.T) {
		var principal *models.Principal
		handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, _ = r.Context().Value(constvars.CONTEXT_PRINCIPAL_KEY).(*models.Principal)
		}))

		req := httptest.NewRequest(http.MethodGet, testPrefix+"/conditions", nil)
		req.Header.Set(constvars.HeaderAuthorization, constvars.BearerPrefix+signToken(t, testSecret, []string{"doctor", "offline_access"}, time.Now().Add(time.Hour)))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.NotNil(t, principal)
		assert.Equal(t, "user-1", principal.Subject)
		assert.Equal(t, []string{"DOCTOR", "OFFLINE_ACCESS"}, principal.Roles)
	})

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, testPrefix+"/conditions", nil)
		rr := httptest.NewRecorder()
		m.Authenticate(okHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, testPrefix+"/conditions", nil)
		req.Header.Set(constvars.HeaderAuthorization, constvars.BearerPrefix+signToken(t, testSecret, []string{"doctor"}, time.Now().Add(-time.Hour)))
		rr := httptest.NewRecorder()
		m.Authenticate(okHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("wrong signature", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, testPrefix+"/conditions", nil)
		req.Header.Set(constvars.HeaderAuthorization, constvars.BearerPrefix+signToken(t, "another-secret", []string{"doctor"}, time.Now().Add(time.Hour)))
		rr := httptest.NewRecorder()
		m.Authenticate(okHandler).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAuthenticate_DisabledPassesThrough(t *testing.T) {
	m, _ := newTestMiddlewares(t, false)

	req := httptest.NewRequest(http.MethodPost, testPrefix+"/conditions", nil)
	rr := httptest.NewRecorder()
	m.Authenticate(m.Authorize(okHandler)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestNewTokenVerifier_RequiresKeyWhenEnabled(t *testing.T) {
	_, err := NewTokenVerifier(config.JWT{Enabled: true})
	assert.Error(t, err)

	_, err = NewTokenVerifier(config.JWT{Enabled: true, PublicKey: "not a pem"})
	assert.Error(t, err)

	_, err = NewTokenVerifier(config.JWT{Enabled: true, JWKSUrl: "http://keycloak.local/certs"})
	assert.NoError(t, err)
}

func TestAccessPolicy(t *testing.T) {
	policy := NewAccessPolicy(testPrefix)
	doctor := &models.Principal{Roles: []string{constvars.RoleDoctor}}
	staff := &models.Principal{Roles: []string{constvars.RoleStaff}}
	patient := &models.Principal{Roles: []string{constvars.RolePatient}}

	cases := []struct {
		name      string
		principal *models.Principal
		method    string
		path      string
		allowed   bool
	}{
		{"patient reads observations", patient, http.MethodGet, testPrefix + "/observations/patient/199001011234", true},
		{"patient cannot create conditions", patient, http.MethodPost, testPrefix + "/conditions", false},
		{"staff creates encounters", staff, http.MethodPost, testPrefix + "/encounters", true},
		{"staff updates encounters", staff, http.MethodPut, testPrefix + "/encounters/e-1", true},
		{"staff cannot update observations", staff, http.MethodPut, testPrefix + "/observations/o-1", false},
		{"doctor updates conditions", doctor, http.MethodPut, testPrefix + "/conditions/c-1", true},
		{"staff cannot delete encounters", staff, http.MethodDelete, testPrefix + "/encounters/e-1", false},
		{"doctor deletes observations", doctor, http.MethodDelete, testPrefix + "/observations/o-1", true},
		{"prefix match respects segment boundary", patient, http.MethodPost, testPrefix + "/conditionsx", true},
		{"anonymous is never allowed", nil, http.MethodGet, testPrefix + "/conditions", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, policy.Allows(tc.principal, tc.method, tc.path))
		})
	}
}

func TestAuthorize_ForbidsRoleOutsidePolicy(t *testing.T) {
	m, _ := newTestMiddlewares(t, true)
	handler := m.Authenticate(m.Authorize(okHandler))

	req := httptest.NewRequest(http.MethodPost, testPrefix+"/observations", strings.NewReader(`{}`))
	req.Header.Set(constvars.HeaderAuthorization, constvars.BearerPrefix+signToken(t, testSecret, []string{"patient"}, time.Now().Add(time.Hour)))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	req = httptest.NewRequest(http.MethodPost, testPrefix+"/observations", strings.NewReader(`{}`))
	req.Header.Set(constvars.HeaderAuthorization, constvars.BearerPrefix+signToken(t, testSecret, []string{"staff"}, time.Now().Add(time.Hour)))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	m, _ := newTestMiddlewares(t, false)

	var seen string
	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	}))

	t.Run("client supplied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-42")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, "client-42", seen)
		assert.Equal(t, "client-42", rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("generated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.True(t, strings.HasPrefix(seen, constvars.REQUEST_ID_PREFIX))
		assert.Equal(t, seen, rr.Header().Get(constvars.HeaderXRequestID))
	})
}

func TestErrorHandler_RecoversPanics(t *testing.T) {
	m, _ := newTestMiddlewares(t, false)
	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":false`)
}

func TestMetrics_LabelsByRoutePattern(t *testing.T) {
	m, collector := newTestMiddlewares(t, false)
	require.Same(t, collector, m.MetricsRecorder)

	router := chi.NewRouter()
	router.Use(m.Metrics)
	router.Get("/conditions/patient/{personnummer}", okHandler)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/conditions/patient/199001011234", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.RequestsTotal.WithLabelValues(http.MethodGet, "/conditions/patient/{personnummer}", "200")))
}
