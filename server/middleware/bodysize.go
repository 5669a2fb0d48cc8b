package middleware

import (
	"net/http"

	"github.com/kbukum/flowsynth/util"
)

const defaultMaxBodySize = 1 << 20

// BodySizeLimit caps the request body at maxSize ("1MB", "512KB", ...).
// Reads past the cap fail, which handlers report as malformed input.
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				r.Body = http.MaxBytesReader(w, r.Body, size)
			}
			next.ServeHTTP(w, r)
		})
	}
}
