package clog

import (
	"fmt"
	"sync"
)

// New 创建一个新的 Logger 实例
//
// config - 日志配置，如果为 nil 会使用默认配置
func New(config *Config) (Logger, error) {
	if config == nil {
		config = &Config{Level: "info", Format: "console", Output: "stdout"}
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return newLogger(config)
}

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger
)

// Default 返回进程级默认 Logger
//
// 未调用 SetDefault 时返回 console/info 格式的 stdout Logger。
func Default() Logger {
	defaultMu.RLock()
	l := defaultLogger
	defaultMu.RUnlock()
	if l != nil {
		return l
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		l, err := New(nil)
		if err != nil {
			return Discard()
		}
		defaultLogger = l
	}
	return defaultLogger
}

// SetDefault 替换进程级默认 Logger
func SetDefault(l Logger) {
	if l == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}
