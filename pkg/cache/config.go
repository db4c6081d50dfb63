package cache

import (
	"fmt"
	"log/slog"
)

// Config defines the configuration options for a Store.
//
// Config 定义 Store 的配置选项。
type Config struct {
	// Name of the store, used in logs and metric labels
	// 存储的名称，用于日志和指标标签
	Name string `json:"name" yaml:"name"`

	// ResetStatsOnFlush makes Flush also zero the counters.
	// By default counters survive a flush.
	//
	// ResetStatsOnFlush 使 Flush 同时清零计数器。默认情况下计数器在清空后保留。
	ResetStatsOnFlush bool `json:"reset_stats_on_flush" yaml:"reset_stats_on_flush"`

	// Logger receives debug events such as flushes and rejected writes.
	// If nil, slog.Default() is used.
	//
	// Logger 接收清空和被拒绝写入等调试事件。为 nil 时使用 slog.Default()。
	Logger *slog.Logger `json:"-" yaml:"-"`
}

// NewDefaultConfig returns a Config with sensible default values.
//
// NewDefaultConfig 返回具有合理默认值的Config。
func NewDefaultConfig() *Config {
	return &Config{
		Name:              "reqcache",
		ResetStatsOnFlush: false,
	}
}

// Validate checks if the configuration is valid.
//
// Validate 检查配置是否有效。
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("store name cannot be empty")
	}
	return nil
}
