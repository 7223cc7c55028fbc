package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS builds the cross-origin policy. The rotation headers must be listed as
// exposed or browsers will hide a rotated token from the page that needs to
// persist it.
func CORS(origins []string) func(http.Handler) http.Handler {
	allowed := origins
	if len(allowed) == 0 {
		allowed = []string{"*"}
	}

	policy := cors.Options{
		AllowedOrigins: allowed,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Authorization", "X-Auth-Token", "X-Request-ID"},
		MaxAge:         3600,
	}

	return cors.New(policy).Handler
}
