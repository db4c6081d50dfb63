// Package api provides the main entry point for the reqcache API.
// It re-exports the core types and constructors from the sub-packages.
package api

import (
	"github.com/yourusername/reqcache/pkg/cache"
	"github.com/yourusername/reqcache/pkg/errors"
	"github.com/yourusername/reqcache/pkg/middleware"
)

// Store is a request-scoped key/value tree with access counters.
// It is re-exported from the cache package.
type Store = cache.Store

// Value is a node of the store tree.
// It is re-exported from the cache package.
type Value = cache.Value

// Leaf holds a terminal value.
// It is re-exported from the cache package.
type Leaf = cache.Leaf

// Branch holds further keyed values.
// It is re-exported from the cache package.
type Branch = cache.Branch

// Stats is a snapshot of the store counters.
// It is re-exported from the cache package.
type Stats = cache.Stats

// Option configures a store.
// It is re-exported from the cache package.
type Option = cache.Option

// Factory creates one store per request.
// It is re-exported from the cache package.
type Factory = cache.Factory

// KeyError describes a failed operation on a key path.
// It is re-exported from the errors package.
type KeyError = errors.KeyError

// CacheMiddleware is an interface for HTTP middleware that owns a request store.
// It is re-exported from the middleware package.
type CacheMiddleware = middleware.CacheMiddleware

// Re-export functions from the cache package.
var (
	// New creates a store.
	New = cache.New

	// NewFactory creates a store factory.
	NewFactory = cache.NewFactory

	// NewContext attaches a store to a context.
	NewContext = cache.NewContext

	// FromContext returns the store attached to a context.
	FromContext = cache.FromContext

	// Plain converts a Value into plain Go data.
	Plain = cache.Plain

	// WithName sets the store name used in logs and metrics.
	WithName = cache.WithName

	// WithResetStatsOnFlush makes Flush also zero the counters.
	WithResetStatsOnFlush = cache.WithResetStatsOnFlush

	// WithLogger sets the store logger.
	WithLogger = cache.WithLogger
)

// Re-export error helpers from the errors package.
var (
	ErrInvalidValue = errors.ErrInvalidValue
	ErrEmptyKeyPath = errors.ErrEmptyKeyPath
	ErrNotFound     = errors.ErrNotFound

	IsInvalidValue = errors.IsInvalidValue
	IsEmptyKeyPath = errors.IsEmptyKeyPath
	IsNotFound     = errors.IsNotFound
)
