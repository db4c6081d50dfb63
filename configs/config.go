// Package configs provides configuration structures and utilities for reqcache.
// It offers mechanisms for loading, validating, and saving configuration from
// JSON and YAML files. The configuration controls the request store, the HTTP
// middleware that owns one store per request, metrics, logging and the demo server.
//
// Package configs 提供 reqcache 的配置结构和工具。
// 它提供从 JSON 和 YAML 文件加载、验证和保存配置的机制。
// 配置控制请求存储、为每个请求持有一个存储的 HTTP 中间件、指标、日志和示例服务器。
package configs

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/reqcache/pkg/cache"
)

// Config represents the complete configuration for reqcache.
//
// Config 表示 reqcache 的完整配置。
type Config struct {
	// Store contains request store settings
	// Store 包含请求存储设置
	Store StoreConfig `json:"store" yaml:"store" mapstructure:"store"`

	// Middleware controls how the HTTP boundary manages stores
	// Middleware 控制 HTTP 边界如何管理存储
	Middleware MiddlewareConfig `json:"middleware" yaml:"middleware" mapstructure:"middleware"`

	// Metrics configures aggregation of per-request counters
	// Metrics 配置每个请求计数器的聚合
	Metrics MetricsConfig `json:"metrics" yaml:"metrics" mapstructure:"metrics"`

	// Log configures the logging behavior
	// Log 配置日志行为
	Log LogConfig `json:"log" yaml:"log" mapstructure:"log"`

	// Server configures the demo HTTP server
	// Server 配置示例 HTTP 服务器
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`

	// Extensions configures optional features like hot reloading
	// Extensions 配置可选功能，如热重载
	Extensions ExtensionsConfig `json:"extensions" yaml:"extensions" mapstructure:"extensions"`
}

// StoreConfig contains request store settings.
//
// StoreConfig 包含请求存储设置。
type StoreConfig struct {
	// Name identifies the store in logs and metric labels
	// Name 在日志和指标标签中标识存储
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// ResetStatsOnFlush makes a flush also zero the counters
	// ResetStatsOnFlush 使清空操作同时清零计数器
	ResetStatsOnFlush bool `json:"reset_stats_on_flush" yaml:"reset_stats_on_flush" mapstructure:"reset_stats_on_flush"`
}

// MiddlewareConfig controls the per-request store lifecycle at the HTTP boundary.
//
// MiddlewareConfig 控制 HTTP 边界上每个请求的存储生命周期。
type MiddlewareConfig struct {
	// Enable attaches a store to every request
	// Enable 为每个请求附加一个存储
	Enable bool `json:"enable" yaml:"enable" mapstructure:"enable"`

	// ExposeHeaders adds the store counters as response headers
	// ExposeHeaders 将存储计数器作为响应头输出
	ExposeHeaders bool `json:"expose_headers" yaml:"expose_headers" mapstructure:"expose_headers"`

	// HeaderPrefix is prepended to Reads, Misses, Writes and Deletes
	// HeaderPrefix 添加在 Reads、Misses、Writes 和 Deletes 之前
	HeaderPrefix string `json:"header_prefix" yaml:"header_prefix" mapstructure:"header_prefix"`

	// RequestIDHeader is read for an incoming request id and echoed back
	// RequestIDHeader 用于读取传入的请求 ID 并回写
	RequestIDHeader string `json:"request_id_header" yaml:"request_id_header" mapstructure:"request_id_header"`
}

// MetricsConfig configures metrics aggregation.
//
// MetricsConfig 配置指标聚合。
type MetricsConfig struct {
	// Enable determines whether per-request counters are aggregated
	// Enable 决定是否聚合每个请求的计数器
	Enable bool `json:"enable" yaml:"enable" mapstructure:"enable"`

	// Level is one of "disabled", "basic", "detailed"
	// Level 为 "disabled"、"basic"、"detailed" 之一
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Path is the HTTP path serving the Prometheus text format
	// Path 是提供 Prometheus 文本格式的 HTTP 路径
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
//
// LogConfig 配置日志。
type LogConfig struct {
	// Level is one of "debug", "info", "warn", "error"
	// Level 为 "debug"、"info"、"warn"、"error" 之一
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "text" or "json"
	// Format 为 "text" 或 "json"
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// Output is "stdout", "stderr" or "file"
	// Output 为 "stdout"、"stderr" 或 "file"
	Output string `json:"output" yaml:"output" mapstructure:"output"`

	// FilePath is the log file used when Output is "file"
	// FilePath 是 Output 为 "file" 时使用的日志文件
	FilePath string `json:"file_path" yaml:"file_path" mapstructure:"file_path"`
}

// ServerConfig configures the demo HTTP server.
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// Mode is the gin mode: "debug", "release" or "test"
	Mode string `json:"mode" yaml:"mode" mapstructure:"mode"`
}

// ExtensionsConfig configures optional features.
type ExtensionsConfig struct {
	HotReload HotReloadConfig `json:"hot_reload" yaml:"hot_reload" mapstructure:"hot_reload"`
}

// HotReloadConfig configures configuration hot reloading.
type HotReloadConfig struct {
	// Enable turns on watching the configuration file
	Enable bool `json:"enable" yaml:"enable" mapstructure:"enable"`

	// Method is "fsnotify" (file events) or "poll" (re-read every WatchInterval)
	Method string `json:"method" yaml:"method" mapstructure:"method"`

	// WatchInterval is the polling interval used when Method is "poll"
	WatchInterval time.Duration `json:"watch_interval" yaml:"watch_interval" mapstructure:"watch_interval"`
}

// DefaultConfig returns a Config with default values.
//
// DefaultConfig 返回具有默认值的Config。
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Name:              "reqcache",
			ResetStatsOnFlush: false,
		},
		Middleware: MiddlewareConfig{
			Enable:          true,
			ExposeHeaders:   false,
			HeaderPrefix:    "X-Request-Cache-",
			RequestIDHeader: "X-Request-ID",
		},
		Metrics: MetricsConfig{
			Enable: true,
			Level:  "basic",
			Path:   "/metrics",
		},
		Log: LogConfig{
			Level:    "info",
			Format:   "text",
			Output:   "stderr",
			FilePath: "/var/log/reqcache.log",
		},
		Server: ServerConfig{
			Addr: ":8080",
			Mode: "release",
		},
		Extensions: ExtensionsConfig{
			HotReload: HotReloadConfig{
				Enable:        false,
				Method:        "fsnotify",
				WatchInterval: 30 * time.Second,
			},
		},
	}
}

// LoadFromFile loads configuration from a YAML or JSON file, chosen by extension.
// Fields absent from the file keep their default values.
//
// LoadFromFile 从 YAML 或 JSON 文件加载配置（按扩展名选择）。
// 文件中缺失的字段保持默认值。
func LoadFromFile(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration file: %w", err)
	}
	defer file.Close()

	config := DefaultConfig()
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".yaml", ".yml":
		err = yaml.NewDecoder(file).Decode(config)
	case ".json":
		err = json.NewDecoder(file).Decode(config)
	default:
		return nil, fmt.Errorf("unsupported configuration file format: %s", ext)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return config, nil
}

// LoadFromReader loads configuration from a reader in the given format.
//
// LoadFromReader 以给定格式从读取器加载配置。
func LoadFromReader(r io.Reader, format string) (*Config, error) {
	config := DefaultConfig()
	var err error

	switch strings.ToLower(format) {
	case "yaml", "yml":
		err = yaml.NewDecoder(r).Decode(config)
	case "json":
		err = json.NewDecoder(r).Decode(config)
	default:
		return nil, fmt.Errorf("unsupported configuration format: %s", format)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	return config, nil
}

// SaveToFile writes the configuration as YAML or JSON, chosen by extension.
//
// SaveToFile 将配置写为 YAML 或 JSON（按扩展名选择）。
func (c *Config) SaveToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create configuration file: %w", err)
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".yaml", ".yml":
		encoder := yaml.NewEncoder(file)
		defer encoder.Close()
		err = encoder.Encode(c)
	case ".json":
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		err = encoder.Encode(c)
	default:
		return fmt.Errorf("unsupported configuration file format: %s", ext)
	}

	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	return nil
}

// Validate checks the configuration for invalid values.
//
// Validate 检查配置中的无效值。
func (c *Config) Validate() error {
	if c.Store.Name == "" {
		return fmt.Errorf("store.name must not be empty")
	}

	if c.Middleware.ExposeHeaders && c.Middleware.HeaderPrefix == "" {
		return fmt.Errorf("middleware.header_prefix must be set when middleware.expose_headers is enabled")
	}

	switch c.Metrics.Level {
	case "disabled", "basic", "detailed":
	default:
		return fmt.Errorf("metrics.level must be one of: disabled, basic, detailed")
	}
	if c.Metrics.Enable && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with '/'")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of: debug, info, warn, error")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be one of: text, json")
	}
	switch c.Log.Output {
	case "stdout", "stderr", "file":
	default:
		return fmt.Errorf("log.output must be one of: stdout, stderr, file")
	}
	if c.Log.Output == "file" && c.Log.FilePath == "" {
		return fmt.Errorf("log.file_path must be specified when log.output is 'file'")
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be one of: debug, release, test")
	}

	switch c.Extensions.HotReload.Method {
	case "fsnotify", "poll":
	default:
		return fmt.Errorf("extensions.hot_reload.method must be one of: fsnotify, poll")
	}
	if c.Extensions.HotReload.Enable && c.Extensions.HotReload.WatchInterval < time.Second {
		return fmt.Errorf("extensions.hot_reload.watch_interval must be at least 1 second")
	}

	return nil
}

// StoreOptions converts the store section into cache options.
//
// StoreOptions 将存储配置转换为缓存选项。
func (c *Config) StoreOptions(logger *slog.Logger) []cache.Option {
	return []cache.Option{
		cache.WithName(c.Store.Name),
		cache.WithResetStatsOnFlush(c.Store.ResetStatsOnFlush),
		cache.WithLogger(logger),
	}
}
