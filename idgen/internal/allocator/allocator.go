// Package allocator 提供构造期的 WorkerID 获取策略。
// 只包含无需外部协调服务的本地策略；跨进程的唯一性由部署方保证。
package allocator

import "context"

// Allocator 在构造生成器时产出一个 WorkerID
type Allocator interface {
	Allocate(ctx context.Context) (int64, error)
}

// StaticAllocator 返回调用方手动指定的 WorkerID
type StaticAllocator struct {
	workerID int64
}

// NewStatic 创建静态分配器
func NewStatic(workerID int64) *StaticAllocator {
	return &StaticAllocator{workerID: workerID}
}

// Allocate 直接返回配置的 WorkerID
func (a *StaticAllocator) Allocate(ctx context.Context) (int64, error) {
	return a.workerID, nil
}
