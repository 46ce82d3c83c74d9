package middleware

import "net/http"

// BodyLimit returns a middleware that caps the request body at n bytes.
// Reads beyond the limit fail, which surfaces as a decode error in the
// handler. Applied per route group so the image upload endpoint can carry a
// larger limit than JSON endpoints.
func BodyLimit(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if n > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, n)
			}
			next.ServeHTTP(w, r)
		})
	}
}
