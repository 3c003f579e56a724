package idgen

import (
	"context"
	"crypto/rand"
	"io"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/ceyewan/flakeid/clog"
	"github.com/ceyewan/flakeid/metrics"
)

// UUIDV7 时间有序 UUID 生成器（RFC 9562 v7）
//
// 无锁实现：毫秒时间戳通过原子 CAS 维护，进程内单调不减。同一毫秒内
// 生成的 ID 仅按随机后缀排序，相互之间没有顺序保证——需要全序的调用方
// 应使用 Snowflake。运行时没有任何失败模式，Next 总是完成。
type UUIDV7 struct {
	// lastMillis 所有调用共享的单调时间戳，只通过原子读与 CAS 访问
	lastMillis atomic.Int64

	// nowMillis 时钟源，测试中可替换
	nowMillis func() int64

	logger    clog.Logger
	generated metrics.Counter
}

// NewUUIDV7 创建 UUID v7 生成器
//
// 使用示例：
//
//	gen := idgen.NewUUIDV7(idgen.WithLogger(logger))
//	uid := gen.Next()
func NewUUIDV7(opts ...Option) *UUIDV7 {
	opt := applyOptions(opts)
	logger := opt.Logger.With(clog.String("component", "idgen"))

	u := &UUIDV7{
		nowMillis: func() int64 { return time.Now().UnixMilli() },
		logger:    logger,
	}

	if opt.Meter != nil {
		u.generated, _ = opt.Meter.Counter(MetricUUIDGenerated, "UUID v7 生成总数")
	}

	logger.Info("uuid v7 generator created")

	return u
}

// Next 生成下一个 UUID v7
func (u *UUIDV7) Next() uuid.UUID {
	ms := u.monotonicMillis()

	var b [16]byte
	// 后 10 字节为新抽取的随机位
	_, _ = io.ReadFull(rand.Reader, b[6:])

	// 0-5 字节：48 bit 毫秒时间戳（大端）
	b[0] = byte(ms >> 40)
	b[1] = byte(ms >> 32)
	b[2] = byte(ms >> 24)
	b[3] = byte(ms >> 16)
	b[4] = byte(ms >> 8)
	b[5] = byte(ms)

	// 版本位 0111 与变体位 10
	b[6] = 0x70 | b[6]&0x0F
	b[8] = 0x80 | b[8]&0x3F

	if u.generated != nil {
		u.generated.Inc(context.Background())
	}

	return uuid.UUID(b)
}

// NextString 返回字符串形式的 ID
func (u *UUIDV7) NextString() string {
	return u.Next().String()
}

// monotonicMillis 通过 CAS 获取单调不减的毫秒时间戳
//
// 循环：读时钟与共享时间戳，取两者较大值为候选，CAS 写回；失败说明
// 有并发更新，重试。成功调用使用的时间戳不会小于任何先前成功调用的
// 时间戳，且全程无阻塞。
func (u *UUIDV7) monotonicMillis() int64 {
	for {
		now := u.nowMillis()
		last := u.lastMillis.Load()
		candidate := now
		if candidate < last {
			candidate = last
		}
		if u.lastMillis.CompareAndSwap(last, candidate) {
			return candidate
		}
	}
}

// defaultUUID 供包级便捷函数使用的进程级默认实例
var defaultUUID = &UUIDV7{
	nowMillis: func() int64 { return time.Now().UnixMilli() },
	logger:    clog.Discard(),
}

// UUID 用进程级默认实例生成 UUID v7 字符串
//
// 这是最常用的形式，适合作为数据库主键。
//
// 使用示例：
//
//	uid := idgen.UUID()
func UUID() string {
	return defaultUUID.NextString()
}
