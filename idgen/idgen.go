// Package idgen 提供两类进程内唯一 ID 生成器。
//
//   - Snowflake：可配置位分段的 64 位整数生成器。同一实例生成的 ID
//     在时间戳字段溢出前严格递增；互斥锁保证并发调用的全序。
//   - UUIDV7：时间有序的 128 位随机 ID 生成器（RFC 9562 v7），无锁实现。
//     时间戳字段进程内单调不减，但同一毫秒内的 ID 之间没有顺序保证，
//     排序保证弱于 Snowflake。
//
// 两类生成器不共享任何状态，可以在同一进程中共存。跨进程唯一性不由本包
// 保证：部署方必须为每个并发运行的实例分配互不相同的 (WorkerID,
// DatacenterID) 组合。
//
// 基本使用：
//
//	// 经典 41/5/5/12 布局
//	sf, _ := idgen.NewClassic(&idgen.ClassicConfig{WorkerID: 1, DatacenterID: 2})
//	id := sf.Next()
//
//	// 自定义位分段
//	sf, _ := idgen.New(&idgen.GeneratorConfig{
//	    TimestampBits:  39,
//	    DatacenterBits: 3,
//	    WorkerBits:     7,
//	    TimestampDivisor: 10, // 10ms 精度，换取更长的可用年限
//	    WorkerID:       42,
//	})
//
//	// UUID v7
//	gen := idgen.NewUUIDV7()
//	uid := gen.NextString()
package idgen

// Generator 通用 ID 生成器接口
type Generator interface {
	// NextString 返回字符串形式的 ID
	NextString() string
}

// Int64Generator 支持数字 ID 的生成器（Snowflake 家族）
type Int64Generator interface {
	Generator
	// Next 返回 int64 形式的 ID
	Next() int64
}

var (
	_ Int64Generator = (*Snowflake)(nil)
	_ Generator      = (*UUIDV7)(nil)
)
