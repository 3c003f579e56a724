// Package metrics 为 flakeid 提供统一的指标收集能力。
// 基于 OpenTelemetry 标准构建，提供简洁的 Counter、Histogram 指标接口，
// 内置 Prometheus HTTP 服务器，支持指标自动暴露。
//
// 快速开始：
//
//	meter, err := metrics.New(&metrics.Config{
//	    Enabled:     true,
//	    ServiceName: "order-service",
//	    Port:        9090,
//	    Path:        "/metrics",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer meter.Shutdown(ctx)
//
//	counter, _ := meter.Counter("ids_generated_total", "生成的 ID 总数")
//	counter.Inc(ctx, metrics.L("engine", "snowflake"))
package metrics

import "context"

// Counter 计数器接口
// 用于记录只能增加的累计值，例如生成的 ID 总数、时钟回拨次数等
type Counter interface {
	// Inc 将计数器增加 1
	Inc(ctx context.Context, labels ...Label)

	// Add 将计数器增加给定的值
	// 注意：如果传入负数，大部分监控系统会忽略或报错
	Add(ctx context.Context, val float64, labels ...Label)
}

// Histogram 直方图接口
// 用于记录值的分布情况，例如序列号耗尽时的等待耗时分布
type Histogram interface {
	// Record 记录一个观测值
	Record(ctx context.Context, val float64, labels ...Label)
}

// Meter 指标系统入口
// 负责创建具体指标并管理底层 Provider 的生命周期
type Meter interface {
	// Counter 创建计数器
	Counter(name string, desc string) (Counter, error)

	// Histogram 创建直方图
	Histogram(name string, desc string) (Histogram, error)

	// Shutdown 关闭 Meter，刷新所有指标
	Shutdown(ctx context.Context) error
}

// Label 指标标签
type Label struct {
	Key   string
	Value string
}

// L 创建标签的简写形式
//
//	counter.Inc(ctx, metrics.L("engine", "uuid_v7"))
func L(key, value string) Label {
	return Label{Key: key, Value: value}
}
