package idgen

import (
	"github.com/ceyewan/flakeid/clog"
	"github.com/ceyewan/flakeid/metrics"
)

// Option 组件初始化选项函数
type Option func(*Options)

// Options 组件初始化选项配置
type Options struct {
	Logger clog.Logger
	Meter  metrics.Meter
}

// WithLogger 设置 Logger
func WithLogger(logger clog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithMeter 设置 Meter
func WithMeter(meter metrics.Meter) Option {
	return func(o *Options) {
		o.Meter = meter
	}
}

// applyOptions 应用选项并补齐默认值（内部使用）
func applyOptions(opts []Option) Options {
	opt := Options{
		Logger: clog.Default(),
	}
	for _, o := range opts {
		o(&opt)
	}
	if opt.Logger == nil {
		opt.Logger = clog.Discard()
	}
	return opt
}
