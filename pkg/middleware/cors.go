package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

const corsMaxAge = 12 * 60 * 60

// CORS allows cross-origin calls from the configured origins. Credentials (the
// admin cookie) are only allowed for origins listed explicitly; "*" answers with a
// literal wildcard and no credentials. An empty list leaves CORS off.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	origins := make([]string, 0, len(allowedOrigins))
	wildcard := false
	for _, o := range allowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			continue
		}
		if o == "*" {
			wildcard = true
		}
		origins = append(origins, o)
	}

	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if wildcard {
		origins = []string{"*"}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: !wildcard,
		MaxAge:           corsMaxAge,
	})
}
