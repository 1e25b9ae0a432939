package web

import (
	"net/http"

	"github.com/gobwas/glob"
)

// NewCORSMiddleware returns a middleware that answers cross-origin requests
// for origins matching any of the given glob patterns. An empty pattern
// list disables CORS entirely.
func NewCORSMiddleware(patterns []string) func(http.Handler) http.Handler {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		if g, err := glob.Compile(p); err == nil {
			globs = append(globs, g)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && matchOrigin(globs, origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func matchOrigin(globs []glob.Glob, origin string) bool {
	for _, g := range globs {
		if g.Match(origin) {
			return true
		}
	}
	return false
}
