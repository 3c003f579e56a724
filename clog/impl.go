package clog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// loggerImpl 是 Logger 接口的具体实现
type loggerImpl struct {
	sl        *slog.Logger
	file      *os.File // 仅当输出到文件时非空，Flush 时 Sync
	namespace string
}

// newLogger 创建 Logger 实例（内部使用）
func newLogger(config *Config) (Logger, error) {
	level, err := ParseLevel(config.Level)
	if err != nil {
		return nil, err
	}

	var w *os.File
	var owned bool
	switch config.Output {
	case "stdout":
		w = os.Stdout
	case "stderr":
		w = os.Stderr
	default:
		f, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log output %s: %w", config.Output, err)
		}
		w = f
		owned = true
	}

	opts := &slog.HandlerOptions{
		Level:     level.slogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	if strings.ToLower(config.Format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := &loggerImpl{sl: slog.New(handler)}
	if owned {
		l.file = w
	}
	return l, nil
}

func (l *loggerImpl) Debug(msg string, fields ...Field) {
	l.log(slog.LevelDebug, msg, fields)
}

func (l *loggerImpl) Info(msg string, fields ...Field) {
	l.log(slog.LevelInfo, msg, fields)
}

func (l *loggerImpl) Warn(msg string, fields ...Field) {
	l.log(slog.LevelWarn, msg, fields)
}

func (l *loggerImpl) Error(msg string, fields ...Field) {
	l.log(slog.LevelError, msg, fields)
}

func (l *loggerImpl) Fatal(msg string, fields ...Field) {
	l.log(slog.LevelError+4, msg, fields)
	l.Flush()
	os.Exit(1)
}

func (l *loggerImpl) With(fields ...Field) Logger {
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		args = append(args, f)
	}
	return &loggerImpl{
		sl:        l.sl.With(args...),
		file:      l.file,
		namespace: l.namespace,
	}
}

func (l *loggerImpl) WithNamespace(parts ...string) Logger {
	ns := l.namespace
	for _, p := range parts {
		if p == "" {
			continue
		}
		if ns == "" {
			ns = p
		} else {
			ns = ns + "." + p
		}
	}
	return &loggerImpl{sl: l.sl, file: l.file, namespace: ns}
}

func (l *loggerImpl) Flush() {
	if l.file != nil {
		_ = l.file.Sync()
	}
}

// log 统一入口，追加命名空间字段后交给 slog（内部使用）
func (l *loggerImpl) log(level slog.Level, msg string, fields []Field) {
	if l.namespace != "" {
		fields = append(fields, slog.String("namespace", l.namespace))
	}
	l.sl.LogAttrs(context.Background(), level, msg, fields...)
}
