package clog

import (
	"fmt"
	"log/slog"
	"strings"
)

// Config 日志配置结构，定义日志的基本行为
//
// 支持的配置项：
//
//	Level: 日志级别 (debug|info|warn|error)
//	Format: 输出格式 (json|console)
//	Output: 输出目标 (stdout|stderr|文件路径)
//	AddSource: 是否显示调用位置信息
type Config struct {
	Level     string `json:"level" yaml:"level"`
	Format    string `json:"format" yaml:"format"`
	Output    string `json:"output" yaml:"output"`
	AddSource bool   `json:"add_source" yaml:"add_source"`
}

// validate 验证配置的有效性并为空值设置默认值（内部使用）
func (c *Config) validate() error {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}

	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}
	format := strings.ToLower(c.Format)
	if format != "json" && format != "console" {
		return fmt.Errorf("invalid format: %s, must be json or console", c.Format)
	}
	// Output 可以是 stdout, stderr 或文件路径，不做严格校验
	return nil
}

// Level 日志级别类型
//
// 级别按严重程度递增：Debug < Info < Warn < Error。
type Level int

const (
	DebugLevel Level = iota - 4 // 调试级别
	InfoLevel                   // 信息级别
	WarnLevel                   // 警告级别
	ErrorLevel                  // 错误级别
)

// String 返回 Level 的字符串表示
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", l)
	}
}

// slogLevel 映射为 slog 的级别（内部使用）
func (l Level) slogLevel() slog.Level {
	switch l {
	case DebugLevel:
		return slog.LevelDebug
	case WarnLevel:
		return slog.LevelWarn
	case ErrorLevel:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel 将字符串解析为 Level（不区分大小写）
//
// 如果无法解析，返回 InfoLevel 和错误信息。
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warn":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level: %s", s)
	}
}
