package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubVerifier map[string]string

func (s stubVerifier) Verify(token string) (string, error) {
	if uid, ok := s[token]; ok {
		return uid, nil
	}
	return "", errors.New("invalid token")
}

func runOptionalAuth(t *testing.T, header string) string {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/lugares", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen string
	h := NewAuthMiddleware(stubVerifier{"good": "u1"}).OptionalAuth(func(c echo.Context) error {
		seen = UserID(c)
		return c.NoContent(http.StatusCreated)
	})

	require.NoError(t, h(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	return seen
}

func TestOptionalAuthNeverRejects(t *testing.T) {
	assert.Equal(t, "u1", runOptionalAuth(t, "Bearer good"))
	assert.Empty(t, runOptionalAuth(t, ""))
	assert.Empty(t, runOptionalAuth(t, "Bearer bad"))
	assert.Empty(t, runOptionalAuth(t, "good"))
}

type stubLimiter struct{ allow bool }

func (s stubLimiter) Allow(string) (bool, time.Duration) {
	return s.allow, 1500 * time.Millisecond
}

func TestRateLimitAnswers429(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/resenas", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RateLimit(stubLimiter{allow: false})(func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	})

	require.NoError(t, h(c))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "TOO_MANY_REQUESTS")
}

func TestRateLimitNilLimiterPassesThrough(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

	h := RateLimit(nil)(func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	require.NoError(t, h(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMetricsCountsByRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	e := echo.New()
	e.Use(m.Middleware)
	e.GET("/api/lugares/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/lugares/abc", nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/lugares/:id", "200")))
}

func TestRequestLoggerWritesAccessLine(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	e := echo.New()
	e.Use(RequestLogger(zap.New(core)))
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].ContextMap()["uri"].(string), "/health"))
	assert.Equal(t, int64(200), entries[0].ContextMap()["status"])
}
