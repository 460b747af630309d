package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/cbti-tools/sleep-diary/pkg/problem"
)

// Recovery converts handler panics into a problem+json 500, logging
// the request line and stack the same way Logger reports requests.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("%s %s panic: %v\n%s", r.Method, r.URL.Path, err, debug.Stack())
				problem.InternalError("An unexpected error occurred").Write(w)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
