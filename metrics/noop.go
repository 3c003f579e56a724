package metrics

import "context"

// noopMeter 在 Enabled=false 时使用，所有操作都是空操作（内部使用）
type noopMeter struct{}

// Noop 返回一个什么都不做的 Meter
//
// 适用于测试或未启用指标收集的场景。
func Noop() Meter {
	return &noopMeter{}
}

func (m *noopMeter) Counter(name string, desc string) (Counter, error) {
	return &noopCounter{}, nil
}

func (m *noopMeter) Histogram(name string, desc string) (Histogram, error) {
	return &noopHistogram{}, nil
}

func (m *noopMeter) Shutdown(ctx context.Context) error {
	return nil
}

type noopCounter struct{}

func (c *noopCounter) Inc(ctx context.Context, labels ...Label)              {}
func (c *noopCounter) Add(ctx context.Context, val float64, labels ...Label) {}

type noopHistogram struct{}

func (h *noopHistogram) Record(ctx context.Context, val float64, labels ...Label) {}
