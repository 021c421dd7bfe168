package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// Storefront, admin dashboard and local dev origins.
var defaultCORSOrigins = []string{
	"http://localhost:5173",
	"https://ravetagbd.web.app",
	"https://ravetag-76898.web.app",
	"https://ravetagbd.firebaseapp.com",
}

// CORS returns middleware applying the storefront origin policy. Extra
// origins from configuration are appended to the built-in list.
func CORS(extraOrigins []string) func(http.Handler) http.Handler {
	origins := make([]string, 0, len(defaultCORSOrigins)+len(extraOrigins))
	origins = append(origins, defaultCORSOrigins...)
	origins = append(origins, extraOrigins...)

	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Admin-Token", "Idempotency-Key", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
