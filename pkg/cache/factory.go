package cache

import (
	"fmt"
	"sync"
)

// Factory creates Stores from a shared, validated configuration.
// The request boundary calls New once per request; Update swaps the
// configuration, e.g. after a config file reload. It is safe for concurrent use.
//
// Factory 根据共享且已验证的配置创建 Store。
// 请求边界在每次请求时调用 New；Update 用于替换配置（例如配置文件重新加载后）。
type Factory struct {
	mu     sync.RWMutex
	config Config
}

// NewFactory creates a Factory.
//
// Parameters:
//   - options: Functional options applied over NewDefaultConfig
//
// Returns:
//   - *Factory: A new factory
//   - error: An error if the configuration is invalid
func NewFactory(options ...Option) (*Factory, error) {
	f := &Factory{}
	if err := f.Update(options...); err != nil {
		return nil, err
	}
	return f, nil
}

// New creates a fresh, empty Store.
func (f *Factory) New() *Store {
	f.mu.RLock()
	config := f.config
	f.mu.RUnlock()
	return newStore(&config)
}

// Update replaces the factory configuration. Stores already created keep
// their original settings. On error the previous configuration is kept.
func (f *Factory) Update(options ...Option) error {
	config := NewDefaultConfig()
	for _, option := range options {
		option(config)
	}

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid store configuration: %w", err)
	}

	f.mu.Lock()
	f.config = *config
	f.mu.Unlock()
	return nil
}

// Config returns a copy of the current configuration.
func (f *Factory) Config() Config {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.config
}
