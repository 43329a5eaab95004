// Package middleware provides HTTP middleware for the HelAI API.
package middleware

import (
	"net/http"
	"strings"
)

// CORS returns middleware that sets CORS headers for the given origins and
// methods. A "*" origin is sent as a literal wildcard; other origins are
// echoed back when they match. OPTIONS requests are answered with 200.
func CORS(allowedOrigins []string, methods ...string) func(http.Handler) http.Handler {
	allowMethods := strings.Join(methods, ", ")

	wildcard := false
	for _, o := range allowedOrigins {
		if o == "*" {
			wildcard = true
			break
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			allowOrigin := ""
			if wildcard {
				allowOrigin = "*"
			} else {
				for _, o := range allowedOrigins {
					if o == origin {
						allowOrigin = origin
						break
					}
				}
				w.Header().Add("Vary", "Origin")
			}

			if allowOrigin != "" {
				w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
				w.Header().Set("Access-Control-Allow-Methods", allowMethods)
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
