package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/reqcache/pkg/cache"
)

const (
	// ContextKey is the gin context key holding the request store.
	ContextKey = "reqcache.store"

	// RequestIDKey is the gin context key holding the request id.
	RequestIDKey = "reqcache.request_id"
)

// Gin returns the middleware as a gin handler. Handlers retrieve the
// request store with FromGin(c) or cache.FromContext(c.Request.Context()).
func (m *Middleware) Gin() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := m.begin(c.Request)

		c.Set(ContextKey, scope.store)
		c.Set(RequestIDKey, scope.requestID)
		c.Request = c.Request.WithContext(cache.NewContext(c.Request.Context(), scope.store))

		w := &ginHeaderWriter{ResponseWriter: c.Writer, scope: scope}
		c.Writer = w

		c.Next()

		// Nothing was written: gin sends the header after the chain returns.
		w.flushHeaders()
		scope.finish(c.Request, c.Writer.Status())
	}
}

// FromGin returns the request store attached by the middleware.
func FromGin(c *gin.Context) (*cache.Store, bool) {
	if v, ok := c.Get(ContextKey); ok {
		if store, ok := v.(*cache.Store); ok {
			return store, true
		}
	}
	return cache.FromContext(c.Request.Context())
}

// RequestID returns the request id assigned by the middleware.
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// RequestLogger logs one line per request, including the store counters when
// the request carried a store. Register it after the store middleware so the
// store is still attached when the line is written.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		var stats cache.Stats
		c.Next()
		if store, ok := FromGin(c); ok {
			stats = store.Stats()
		}

		logger.Info("Request",
			"request_id", RequestID(c),
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"store_reads", stats.Reads,
			"store_misses", stats.Misses,
			"store_writes", stats.Writes,
			"store_deletes", stats.Deletes,
		)
	}
}

// ginHeaderWriter sets the scope headers right before gin sends the response header.
type ginHeaderWriter struct {
	gin.ResponseWriter
	scope   *requestScope
	written bool
}

func (w *ginHeaderWriter) flushHeaders() {
	if w.written {
		return
	}
	w.written = true
	w.scope.writeHeaders(w.ResponseWriter.Header())
}

func (w *ginHeaderWriter) WriteHeaderNow() {
	w.flushHeaders()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *ginHeaderWriter) Write(b []byte) (int, error) {
	w.flushHeaders()
	return w.ResponseWriter.Write(b)
}

func (w *ginHeaderWriter) WriteString(s string) (int, error) {
	w.flushHeaders()
	return w.ResponseWriter.WriteString(s)
}
