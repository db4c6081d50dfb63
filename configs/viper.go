// Package configs provides configuration structures and utilities for reqcache.
// This file implements Viper-based configuration management with hot reloading support.
//
// Package configs 提供 reqcache 的配置结构和工具。
// 本文件实现基于Viper的配置管理，支持热重载。
package configs

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ViperConfig wraps a Config with Viper functionality for hot reloading.
// It provides thread-safe access to configuration and notifies subscribers
// when the underlying configuration file changes.
//
// ViperConfig 使用Viper功能包装Config以支持热重载。
// 它提供对配置的线程安全访问，并在底层配置文件更改时通知订阅者。
type ViperConfig struct {
	*Config                     // Embedded configuration / 嵌入的配置
	viper       *viper.Viper    // Viper instance for configuration management / 用于配置管理的Viper实例
	configFile  string          // Path to the configuration file / 配置文件路径
	logger      *slog.Logger    // Logger for reload events / 重载事件的日志记录器
	mu          sync.RWMutex    // Mutex for thread-safe access / 用于线程安全访问的互斥锁
	subscribers []func(*Config) // List of subscribers to notify on config changes / 配置更改时要通知的订阅者列表
}

// NewViperConfig creates a new ViperConfig.
// It loads configuration from the specified file over the defaults and validates it.
//
// NewViperConfig 创建一个新的ViperConfig。
// 它在默认值之上从指定的文件加载配置并验证它。
//
// Parameters:
//   - configFile: Path to a .yaml, .yml or .json file
//
// Returns:
//   - *ViperConfig: The loaded configuration
//   - error: An error if the file cannot be read, decoded or validated
func NewViperConfig(configFile string) (*ViperConfig, error) {
	v := viper.New()

	v.SetConfigFile(configFile)
	ext := filepath.Ext(configFile)
	v.SetConfigType(strings.TrimPrefix(ext, "."))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := decodeViper(v)
	if err != nil {
		return nil, err
	}

	return &ViperConfig{
		Config:      config,
		viper:       v,
		configFile:  configFile,
		logger:      slog.Default(),
		subscribers: make([]func(*Config), 0),
	}, nil
}

func decodeViper(v *viper.Viper) (*Config, error) {
	config := DefaultConfig()

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// SetLogger sets the logger used for reload events.
func (vc *ViperConfig) SetLogger(logger *slog.Logger) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.logger = logger
}

// EnableHotReload watches the configuration file with fsnotify and applies
// valid changes. Invalid changes are logged and ignored.
//
// EnableHotReload 使用 fsnotify 监视配置文件并应用有效的更改。无效的更改会被记录并忽略。
func (vc *ViperConfig) EnableHotReload() {
	vc.viper.OnConfigChange(func(e fsnotify.Event) {
		logger := vc.currentLogger()
		logger.Info("Config file changed", "file", e.Name, "op", e.Op.String())

		newConfig, err := decodeViper(vc.viper)
		if err != nil {
			logger.Error("Failed to reload config", "err", err)
			return
		}

		vc.apply(newConfig)
	})
	vc.viper.WatchConfig()
}

// Subscribe registers a function called with every newly applied configuration.
//
// Subscribe 注册一个在每次应用新配置时调用的函数。
func (vc *ViperConfig) Subscribe(subscriber func(*Config)) {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	vc.subscribers = append(vc.subscribers, subscriber)
}

// Get returns the current configuration.
//
// Get 返回当前配置。
func (vc *ViperConfig) Get() *Config {
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	return vc.Config
}

func (vc *ViperConfig) currentLogger() *slog.Logger {
	vc.mu.RLock()
	defer vc.mu.RUnlock()
	return vc.logger
}

// apply swaps in newConfig and notifies subscribers outside the lock.
func (vc *ViperConfig) apply(newConfig *Config) {
	vc.mu.Lock()
	vc.Config = newConfig
	subscribers := make([]func(*Config), len(vc.subscribers))
	copy(subscribers, vc.subscribers)
	vc.mu.Unlock()

	for _, subscriber := range subscribers {
		subscriber(newConfig)
	}
}

// LoadViperConfig loads a configuration file and optionally enables hot reloading.
//
// LoadViperConfig 加载配置文件，并可选择启用热重载。
func LoadViperConfig(configFile string, enableHotReload bool) (*ViperConfig, error) {
	vc, err := NewViperConfig(configFile)
	if err != nil {
		return nil, err
	}

	if enableHotReload {
		vc.EnableHotReload()
	}

	return vc, nil
}

// LoadViperConfigWithWatcher loads a configuration file and polls it every
// watchInterval, for filesystems where fsnotify events are unreliable.
// The polling goroutine stops when done is closed.
//
// LoadViperConfigWithWatcher 加载配置文件并每隔 watchInterval 轮询一次，
// 适用于 fsnotify 事件不可靠的文件系统。done 关闭时轮询协程停止。
func LoadViperConfigWithWatcher(configFile string, watchInterval time.Duration, done <-chan struct{}) (*ViperConfig, error) {
	vc, err := NewViperConfig(configFile)
	if err != nil {
		return nil, err
	}

	vc.WatchPoll(watchInterval, done)
	return vc, nil
}

// WatchPoll re-reads the configuration file every interval and applies valid
// changes. Polling stops when done is closed; the returned channel is closed
// once the polling goroutine has exited.
//
// WatchPoll 每隔 interval 重新读取配置文件并应用有效的更改。
// done 关闭时停止轮询；轮询协程退出后关闭返回的通道。
func (vc *ViperConfig) WatchPoll(interval time.Duration, done <-chan struct{}) <-chan struct{} {
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				vc.poll()
			}
		}
	}()

	return stopped
}

// Watch starts the hot reload method selected by hotReload.
// It does nothing when hot reload is disabled.
//
// Watch 启动 hotReload 选择的热重载方式。未启用热重载时不做任何事。
func (vc *ViperConfig) Watch(hotReload HotReloadConfig, done <-chan struct{}) {
	if !hotReload.Enable {
		return
	}

	vc.currentLogger().Info("Watching config file", "file", vc.configFile, "method", hotReload.Method)
	if hotReload.Method == "poll" {
		vc.WatchPoll(hotReload.WatchInterval, done)
		return
	}
	vc.EnableHotReload()
}

// poll re-reads the file and applies it when it differs from the current config.
func (vc *ViperConfig) poll() {
	logger := vc.currentLogger()

	if err := vc.viper.ReadInConfig(); err != nil {
		logger.Error("Failed to read config file", "err", err)
		return
	}

	newConfig, err := decodeViper(vc.viper)
	if err != nil {
		logger.Error("Failed to reload config", "err", err)
		return
	}

	if configsEqual(vc.Get(), newConfig) {
		return
	}

	logger.Info("Config file changed", "file", vc.configFile)
	vc.apply(newConfig)
}

// configsEqual compares two configurations by their printed form.
func configsEqual(c1, c2 *Config) bool {
	return fmt.Sprintf("%v", c1) == fmt.Sprintf("%v", c2)
}
