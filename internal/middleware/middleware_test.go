package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSimpleAPIKey(t *testing.T) {
	h := SimpleAPIKey("secret")(okHandler())

	cases := []struct {
		name   string
		path   string
		header string
		value  string
		want   int
	}{
		{"valid x-api-key", "/v1/evaluations", "X-API-Key", "secret", http.StatusOK},
		{"valid bearer", "/v1/evaluations", "Authorization", "Bearer secret", http.StatusOK},
		{"wrong key", "/v1/evaluations", "X-API-Key", "guess", http.StatusUnauthorized},
		{"no key", "/v1/evaluations", "", "", http.StatusUnauthorized},
		{"health skips auth", "/health", "", "", http.StatusOK},
		{"readyz skips auth", "/readyz", "", "", http.StatusOK},
		{"health lookalike needs auth", "/healthz-admin", "", "", http.StatusUnauthorized},
		{"health subpath needs auth", "/health/metrics", "", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, tc.path, nil)
		if tc.header != "" {
			req.Header.Set(tc.header, tc.value)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, rec.Code, tc.want)
		}
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Stop()
	h := rl.Middleware(okHandler())

	do := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/v1/evaluations", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 3; i++ {
		if code := do("10.0.0.1:1234"); code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, code)
		}
	}
	if code := do("10.0.0.1:1234"); code != http.StatusTooManyRequests {
		t.Errorf("over limit: status = %d, want 429", code)
	}
	// other clients are unaffected
	if code := do("10.0.0.2:1234"); code != http.StatusOK {
		t.Errorf("second client: status = %d, want 200", code)
	}
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		addr string
		want string
	}{
		{"10.0.0.1:1234", "10.0.0.1"},
		{"[::1]:1234", "::1"},
		{"10.0.0.1", "10.0.0.1"},
	}
	for _, tc := range cases {
		if got := clientIP(tc.addr); got != tc.want {
			t.Errorf("clientIP(%q) = %q, want %q", tc.addr, got, tc.want)
		}
	}
}
