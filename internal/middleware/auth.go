package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/ceylonsure/motor-risk/pkg/problem"
)

// SimpleAPIKey provides basic API key authentication.
// In production, use JWT/OAuth2 with proper token validation.
func SimpleAPIKey(apiKey string) func(http.Handler) http.Handler {
	apiKeyBytes := []byte(apiKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip auth for health checks. Exact match only: a prefix
			// check would also exempt lookalike paths.
			if r.URL.Path == "/health" || r.URL.Path == "/readyz" {
				next.ServeHTTP(w, r)
				return
			}

			// Check X-API-Key header
			key := r.Header.Get("X-API-Key")
			if key == "" {
				// Also check Authorization: Bearer <key>
				auth := r.Header.Get("Authorization")
				if strings.HasPrefix(auth, "Bearer ") {
					key = strings.TrimPrefix(auth, "Bearer ")
				}
			}

			// Constant-time comparison to prevent timing attacks
			if subtle.ConstantTimeCompare([]byte(key), apiKeyBytes) != 1 {
				problem.Write(w, http.StatusUnauthorized,
					"Unauthorized",
					"Missing or invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
