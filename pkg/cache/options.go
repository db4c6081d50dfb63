package cache

import "log/slog"

// Option is a function that configures a Store.
//
// Option 是配置 Store 的函数。
type Option func(*Config)

// WithName sets the store name used in logs and metric labels.
func WithName(name string) Option {
	return func(c *Config) {
		c.Name = name
	}
}

// WithResetStatsOnFlush makes Flush also zero the counters.
func WithResetStatsOnFlush(reset bool) Option {
	return func(c *Config) {
		c.ResetStatsOnFlush = reset
	}
}

// WithLogger sets the logger for debug events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
