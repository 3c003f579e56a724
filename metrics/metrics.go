package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.20.0"
)

// Config 指标系统的配置结构体
//
// 典型配置示例（YAML）：
//
//	metrics:
//	  enabled: true
//	  service_name: "order-service"
//	  version: "v1.0.0"
//	  port: 9090
//	  path: "/metrics"
type Config struct {
	// Enabled 是否启用指标收集
	// 为 false 时，metrics.New() 会返回 noop Meter，所有操作都是空操作
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// ServiceName 服务名称，作为 OpenTelemetry Resource 的 service.name 属性
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`

	// Version 服务版本，作为 service.version 属性
	Version string `mapstructure:"version" yaml:"version"`

	// Port Prometheus HTTP 服务器监听的端口，大于 0 时启动暴露服务
	Port int `mapstructure:"port" yaml:"port"`

	// Path Prometheus 指标的 HTTP 路径，必须以 "/" 开头
	Path string `mapstructure:"path" yaml:"path"`
}

// New 创建 Meter 实例
// 返回值实现 Meter 接口，用于创建和记录指标
func New(cfg *Config) (Meter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	if !cfg.Enabled {
		return &noopMeter{}, nil
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(cfg.ServiceName),
			semconv.ServiceVersionKey.String(cfg.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	prometheusExporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(prometheusExporter),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	// 启动 Prometheus HTTP 服务器
	if cfg.Port > 0 && cfg.Path != "" {
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Port)
			mux := http.NewServeMux()
			mux.Handle(cfg.Path, promhttp.Handler())
			httpServer := &http.Server{Addr: addr, Handler: mux}
			slog.Default().Info("Starting Prometheus metrics server", "addr", addr, "path", cfg.Path)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				slog.Default().Error("Prometheus server error", "error", err)
			}
		}()
	}

	return &meterImpl{
		meter:    mp.Meter("flakeid"),
		provider: mp,
	}, nil
}

// Must 类似 New，但出错时 panic。仅用于初始化阶段
func Must(cfg *Config) Meter {
	m, err := New(cfg)
	if err != nil {
		panic(fmt.Sprintf("failed to create metrics: %v", err))
	}
	return m
}

// meterImpl 实现 Meter 接口
type meterImpl struct {
	meter    metric.Meter
	provider *sdkmetric.MeterProvider
}

// Counter 创建计数器
func (m *meterImpl) Counter(name string, desc string) (Counter, error) {
	c, err := m.meter.Float64Counter(name, metric.WithDescription(desc))
	if err != nil {
		return nil, err
	}
	return &counterImpl{c: c}, nil
}

// Histogram 创建直方图
func (m *meterImpl) Histogram(name string, desc string) (Histogram, error) {
	h, err := m.meter.Float64Histogram(name, metric.WithDescription(desc))
	if err != nil {
		return nil, err
	}
	return &histogramImpl{h: h}, nil
}

// Shutdown 关闭 Meter，刷新所有指标
func (m *meterImpl) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}

type counterImpl struct {
	c metric.Float64Counter
}

func (c *counterImpl) Inc(ctx context.Context, labels ...Label) {
	c.c.Add(ctx, 1, metric.WithAttributes(toAttributes(labels)...))
}

func (c *counterImpl) Add(ctx context.Context, val float64, labels ...Label) {
	c.c.Add(ctx, val, metric.WithAttributes(toAttributes(labels)...))
}

type histogramImpl struct {
	h metric.Float64Histogram
}

func (h *histogramImpl) Record(ctx context.Context, val float64, labels ...Label) {
	h.h.Record(ctx, val, metric.WithAttributes(toAttributes(labels)...))
}

// toAttributes 将 Label 转换为 OTel 属性（内部使用）
func toAttributes(labels []Label) []attribute.KeyValue {
	if len(labels) == 0 {
		return nil
	}
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for _, l := range labels {
		attrs = append(attrs, attribute.String(l.Key, l.Value))
	}
	return attrs
}
