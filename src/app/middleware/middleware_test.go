package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candlepin/src/core/domain"
	"candlepin/src/core/usecase"
	"candlepin/src/infra/config"
	"candlepin/src/infra/logger"
)

type stubAuth struct {
	users map[string]*usecase.Principal
	err   error
}

func (s stubAuth) Authenticate(_ context.Context, username, password string) (*usecase.Principal, error) {
	if s.err != nil {
		return nil, s.err
	}
	if p, ok := s.users[username]; ok && password == "secret" {
		return p, nil
	}
	return nil, domain.NewUnauthorizedError("invalid credentials")
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(mw...)
	r.GET("/who", func(c *gin.Context) {
		c.String(http.StatusOK, usecase.PrincipalFrom(c.Request.Context()).Name)
	})
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := newRouter()

	w := do(r, httptest.NewRequest(http.MethodGet, "/who", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = do(r, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}

func TestBasicAuth(t *testing.T) {
	auth := stubAuth{users: map[string]*usecase.Principal{
		"admin": {Type: "user", Name: "admin", SuperAdmin: true},
		"bob":   {Type: "user", Name: "bob"},
	}}
	r := newRouter(BasicAuth(auth, logger.Nop()))

	t.Run("missing credentials", func(t *testing.T) {
		w := do(r, httptest.NewRequest(http.MethodGet, "/who", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Header().Get("WWW-Authenticate"), "Basic")
	})

	t.Run("wrong password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		req.SetBasicAuth("bob", "nope")
		assert.Equal(t, http.StatusUnauthorized, do(r, req).Code)
	})

	t.Run("principal reaches the request context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/who", nil)
		req.SetBasicAuth("bob", "secret")
		w := do(r, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "bob", w.Body.String())
	})
}

func TestBasicAuthBackendFailure(t *testing.T) {
	r := newRouter(BasicAuth(stubAuth{err: context.DeadlineExceeded}, logger.Nop()))
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.SetBasicAuth("bob", "secret")
	assert.Equal(t, http.StatusInternalServerError, do(r, req).Code)
}

func TestSuperAdmin(t *testing.T) {
	auth := stubAuth{users: map[string]*usecase.Principal{
		"admin": {Type: "user", Name: "admin", SuperAdmin: true},
		"bob":   {Type: "user", Name: "bob"},
	}}
	r := newRouter(BasicAuth(auth, logger.Nop()), SuperAdmin())

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.SetBasicAuth("bob", "secret")
	assert.Equal(t, http.StatusForbidden, do(r, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/who", nil)
	req.SetBasicAuth("admin", "secret")
	assert.Equal(t, http.StatusOK, do(r, req).Code)
}

func TestSuperAdminWithoutAuth(t *testing.T) {
	r := newRouter(SuperAdmin())
	assert.Equal(t, http.StatusUnauthorized, do(r, httptest.NewRequest(http.MethodGet, "/who", nil)).Code)
}

func TestRateLimit(t *testing.T) {
	r := newRouter(RateLimit(1, 2))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, do(r, httptest.NewRequest(http.MethodGet, "/who", nil)).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitDisabled(t *testing.T) {
	r := newRouter(RateLimit(0, 0))
	for i := 0; i < 20; i++ {
		require.Equal(t, http.StatusOK, do(r, httptest.NewRequest(http.MethodGet, "/who", nil)).Code)
	}
}

func TestLimiterSetSweepsIdleClients(t *testing.T) {
	set := newLimiterSet(10, 1)
	start := time.Now()

	assert.True(t, set.allow("a", start))
	assert.False(t, set.allow("a", start))

	later := start.Add(2 * idleLimiterTTL)
	assert.True(t, set.allow("b", later))
	assert.NotContains(t, set.clients, "a")
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter(CORS())
	r.OPTIONS("/who", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := do(r, httptest.NewRequest(http.MethodOptions, "/who", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(logger.Nop()), RequestID())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := do(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestLoggingSkipsSensitiveBodies(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(config.LogConfig{Level: "debug", Format: "json"}, &buf)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logging(log))
	r.POST("/candlepin/users", func(c *gin.Context) { c.String(http.StatusCreated, "created") })
	r.POST("/candlepin/owners", func(c *gin.Context) { c.String(http.StatusCreated, "owner") })

	do(r, httptest.NewRequest(http.MethodPost, "/candlepin/users", bytes.NewBufferString(`{"password":"hunter2"}`)))
	assert.NotContains(t, buf.String(), "hunter2")

	buf.Reset()
	do(r, httptest.NewRequest(http.MethodPost, "/candlepin/owners", bytes.NewBufferString(`{"key":"acme"}`)))
	assert.Contains(t, buf.String(), "acme")
	assert.Contains(t, buf.String(), `"status":201`)
}
