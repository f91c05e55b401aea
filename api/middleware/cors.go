package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/rajchaudar/HR-Dep/pkg/config"
)

var defaultCORSOrigins = []string{
	"http://localhost:5500", // local frontend
	"http://localhost:3000", // local dev
}

// CORS returns middleware that applies the API's allowed origin policy.
// The configured frontend origin is appended to the defaults.
func CORS(cfg config.AppConfig) func(http.Handler) http.Handler {
	origins := append([]string{}, defaultCORSOrigins...)
	if cfg.FrontendURL != "" {
		origins = append(origins, cfg.FrontendURL)
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
