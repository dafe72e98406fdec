package httpx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/counterline/posgate/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestIPKeyExtractor(t *testing.T) {
	t.Run("extracts from RemoteAddr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"

		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(req))
	})

	t.Run("prefers the first X-Forwarded-For entry", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")

		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("falls back to X-Real-IP", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Real-IP", "203.0.113.2")

		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})

	t.Run("tolerates RemoteAddr without a port", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1"

		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(req))
	})
}

func TestCompositeKeyExtractor(t *testing.T) {
	t.Run("joins user and ip", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		ctx := context.WithValue(req.Context(), httpx.CtxKeyUserID, "user-1")
		req = req.WithContext(ctx)

		extractor := httpx.CompositeKeyExtractor(":", httpx.UserIDKeyExtractor, httpx.IPKeyExtractor)
		require.Equal(t, "user-1:192.168.1.1", extractor(req))
	})

	t.Run("skips empty parts", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"

		extractor := httpx.CompositeKeyExtractor(":", httpx.UserIDKeyExtractor, httpx.IPKeyExtractor)
		require.Equal(t, "192.168.1.1", extractor(req))
	})
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("rejects requests over the burst", func(t *testing.T) {
		cfg := httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}
		h := httpx.RateLimitMiddleware(cfg, httpx.IPKeyExtractor)(okHandler())

		for range 3 {
			require.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1000").Code)
		}

		rec := doRequest(h, "10.0.0.1:1000")
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	})

	t.Run("buckets are independent per key", func(t *testing.T) {
		cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		h := httpx.RateLimitMiddleware(cfg, httpx.IPKeyExtractor)(okHandler())

		require.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1000").Code)
		require.Equal(t, http.StatusTooManyRequests, doRequest(h, "10.0.0.1:1000").Code)

		// A different client is unaffected.
		require.Equal(t, http.StatusOK, doRequest(h, "10.0.0.2:1000").Code)
	})

	t.Run("tokens refill over time", func(t *testing.T) {
		cfg := httpx.RateLimitConfig{RequestsPerWindow: 10, Window: time.Second, Burst: 1}
		h := httpx.RateLimitMiddleware(cfg, httpx.IPKeyExtractor)(okHandler())

		require.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1000").Code)
		require.Equal(t, http.StatusTooManyRequests, doRequest(h, "10.0.0.1:1000").Code)

		// At 10 req/s a token is back within 100ms.
		time.Sleep(150 * time.Millisecond)
		require.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1000").Code)
	})

	t.Run("allows requests when no key can be extracted", func(t *testing.T) {
		cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		noKey := func(*http.Request) string { return "" }
		h := httpx.RateLimitMiddleware(cfg, noKey)(okHandler())

		for range 5 {
			require.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1000").Code)
		}
	})
}

func TestRateLimitByUserFallsBackToIP(t *testing.T) {
	cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
	h := httpx.RateLimitByUser(cfg)(okHandler())

	// Unauthenticated requests bucket by IP alone.
	require.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1000").Code)
	require.Equal(t, http.StatusTooManyRequests, doRequest(h, "10.0.0.1:1000").Code)

	// An authenticated request from the same IP has its own bucket.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1000"
	req = req.WithContext(context.WithValue(req.Context(), httpx.CtxKeyUserID, "user-1"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestProfileOrdering(t *testing.T) {
	require.Less(t, httpx.StrictLimit.RequestsPerWindow, httpx.ModerateLimit.RequestsPerWindow)
	require.Less(t, httpx.ModerateLimit.RequestsPerWindow, httpx.LenientLimit.RequestsPerWindow)
}

func TestParseRateLimitFromEnv(t *testing.T) {
	def := httpx.RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	t.Run("returns defaults when unset", func(t *testing.T) {
		got := httpx.ParseRateLimitFromEnv("TESTX", def)
		require.Equal(t, def, got)
	})

	t.Run("overrides each field", func(t *testing.T) {
		t.Setenv("RATELIMIT_TESTX_REQUESTS", "50")
		t.Setenv("RATELIMIT_TESTX_WINDOW_SEC", "30")
		t.Setenv("RATELIMIT_TESTX_BURST", "10")

		got := httpx.ParseRateLimitFromEnv("TESTX", def)
		require.Equal(t, 50, got.RequestsPerWindow)
		require.Equal(t, 30*time.Second, got.Window)
		require.Equal(t, 10, got.Burst)
	})

	t.Run("ignores invalid values", func(t *testing.T) {
		t.Setenv("RATELIMIT_TESTX_REQUESTS", "not-a-number")
		t.Setenv("RATELIMIT_TESTX_WINDOW_SEC", "-1")

		got := httpx.ParseRateLimitFromEnv("TESTX", def)
		require.Equal(t, def, got)
	})
}
