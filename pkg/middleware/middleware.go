// Package middleware bounds the lifetime of a request store to one HTTP request.
// Every request gets a fresh store from a cache.Factory; when the handler chain
// returns, the store is flushed, its counters are recorded and logged, and the
// store is discarded.
package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/reqcache/internal/metrics"
	"github.com/yourusername/reqcache/pkg/cache"
)

// CacheMiddleware is an interface for HTTP middleware that owns a request store.
type CacheMiddleware interface {
	// Handler wraps next so that every request carries its own store.
	Handler(next http.Handler) http.Handler
}

// Config holds the middleware settings.
type Config struct {
	// ExposeHeaders adds the store counters as response headers.
	ExposeHeaders bool

	// HeaderPrefix is prepended to Reads, Misses, Writes and Deletes.
	HeaderPrefix string

	// RequestIDHeader is read for an incoming request id and echoed back.
	// An empty value disables request id handling.
	RequestIDHeader string

	// Recorder receives the counters of every finished request. May be nil.
	Recorder *metrics.Recorder

	// Logger receives a debug line per request. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// Option is a function that configures the middleware.
type Option func(*Config)

// DefaultConfig returns the default middleware settings.
func DefaultConfig() *Config {
	return &Config{
		ExposeHeaders:   false,
		HeaderPrefix:    "X-Request-Cache-",
		RequestIDHeader: "X-Request-ID",
	}
}

// WithExposeHeaders enables counter headers using the given prefix.
func WithExposeHeaders(enabled bool, prefix string) Option {
	return func(c *Config) {
		c.ExposeHeaders = enabled
		if prefix != "" {
			c.HeaderPrefix = prefix
		}
	}
}

// WithRequestIDHeader sets the request id header name.
func WithRequestIDHeader(header string) Option {
	return func(c *Config) {
		c.RequestIDHeader = header
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(recorder *metrics.Recorder) Option {
	return func(c *Config) {
		c.Recorder = recorder
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// Middleware creates, attaches and releases request stores.
// It is safe for concurrent use; Update may be called while serving.
type Middleware struct {
	factory *cache.Factory
	config  atomic.Pointer[Config]
}

var _ CacheMiddleware = (*Middleware)(nil)

// New creates a Middleware drawing stores from factory.
func New(factory *cache.Factory, options ...Option) *Middleware {
	m := &Middleware{factory: factory}
	m.Update(options...)
	return m
}

// Update replaces the middleware settings for subsequent requests.
func (m *Middleware) Update(options ...Option) {
	config := DefaultConfig()
	for _, option := range options {
		option(config)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	m.config.Store(config)
}

// requestScope is the per-request state shared by the gin and net/http paths.
type requestScope struct {
	store     *cache.Store
	requestID string
	config    *Config
	start     time.Time
}

func (m *Middleware) begin(r *http.Request) *requestScope {
	config := m.config.Load()

	var requestID string
	if config.RequestIDHeader != "" {
		requestID = r.Header.Get(config.RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
	}

	return &requestScope{
		store:     m.factory.New(),
		requestID: requestID,
		config:    config,
		start:     time.Now(),
	}
}

// writeHeaders sets the request id and, when enabled, the counter headers.
func (s *requestScope) writeHeaders(h http.Header) {
	if s.config.RequestIDHeader != "" {
		h.Set(s.config.RequestIDHeader, s.requestID)
	}
	if !s.config.ExposeHeaders {
		return
	}

	stats := s.store.Stats()
	prefix := s.config.HeaderPrefix
	h.Set(prefix+"Reads", strconv.FormatInt(stats.Reads, 10))
	h.Set(prefix+"Misses", strconv.FormatInt(stats.Misses, 10))
	h.Set(prefix+"Writes", strconv.FormatInt(stats.Writes, 10))
	h.Set(prefix+"Deletes", strconv.FormatInt(stats.Deletes, 10))
}

// finish flushes the store and reports its counters.
func (s *requestScope) finish(r *http.Request, status int) cache.Stats {
	stats := s.store.Stats()
	s.store.Flush()

	if s.config.Recorder != nil {
		s.config.Recorder.Record(stats)
	}

	s.config.Logger.Debug("Request store released",
		"request_id", s.requestID,
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"misses", stats.Misses,
		"reads", stats.Reads,
		"writes", stats.Writes,
		"deletes", stats.Deletes,
		"duration", time.Since(s.start),
	)
	return stats
}
