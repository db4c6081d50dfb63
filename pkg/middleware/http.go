package middleware

import (
	"net/http"

	"github.com/yourusername/reqcache/pkg/cache"
)

// Handler wraps next for plain net/http servers. Handlers retrieve the
// request store with cache.FromContext(r.Context()).
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scope := m.begin(r)
		r = r.WithContext(cache.NewContext(r.Context(), scope.store))

		sw := &headerWriter{ResponseWriter: w, scope: scope, status: http.StatusOK}
		defer func() {
			sw.flushHeaders()
			scope.finish(r, sw.status)
		}()

		next.ServeHTTP(sw, r)
	})
}

// headerWriter sets the scope headers right before the response header is sent.
type headerWriter struct {
	http.ResponseWriter
	scope   *requestScope
	status  int
	written bool
}

func (w *headerWriter) flushHeaders() {
	if w.written {
		return
	}
	w.written = true
	w.scope.writeHeaders(w.ResponseWriter.Header())
}

func (w *headerWriter) WriteHeader(code int) {
	w.flushHeaders()
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *headerWriter) Write(b []byte) (int, error) {
	w.flushHeaders()
	return w.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *headerWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
