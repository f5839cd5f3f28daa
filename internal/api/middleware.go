package api

import (
	"net/http"
)

// apiKeyAuth gates a route group on the x-api-key header: missing key is
// 401, mismatched key is 403.
func apiKeyAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("x-api-key")
			if key == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized", "Missing API Key")
				return
			}
			if key != apiKey {
				writeError(w, http.StatusForbidden, "Forbidden", "Invalid API Key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
