package idgen

import (
	"context"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/ceyewan/flakeid/clog"
	"github.com/ceyewan/flakeid/metrics"
	"github.com/ceyewan/flakeid/xerrors"
)

// Snowflake 雪花算法生成器
// 按配置的位分段生成严格递增的 64 位整数 ID，无需外部依赖。
// 所有共享状态都由单个互斥锁保护，多个实例之间完全独立。
type Snowflake struct {
	mu       sync.Mutex
	lay      layout
	dcID     int64
	workerID int64

	// lastTick 上次发号的时间槽，-1 表示尚未发号
	lastTick int64
	sequence int64

	// nowMillis 时钟源，测试中可替换
	nowMillis func() int64

	logger      clog.Logger
	generated   metrics.Counter
	regressions metrics.Counter
}

// New 创建按 cfg 的位分段发号的 Snowflake 生成器
//
// 所有校验都发生在构造阶段（见 GeneratorConfig）；校验失败时不会产生
// 任何半初始化的实例。Next 在运行时没有错误条件。
//
// 使用示例：
//
//	sf, err := idgen.New(&idgen.GeneratorConfig{
//	    TimestampBits:  41,
//	    DatacenterBits: 5,
//	    WorkerBits:     5,
//	    WorkerID:       1,
//	    DatacenterID:   2,
//	}, idgen.WithLogger(logger))
func New(cfg *GeneratorConfig, opts ...Option) (*Snowflake, error) {
	if cfg == nil {
		return nil, xerrors.WithCode(ErrInvalidConfig, "config_is_nil")
	}

	lay, err := newLayout(cfg)
	if err != nil {
		return nil, err
	}

	opt := applyOptions(opts)
	logger := opt.Logger.With(clog.String("component", "idgen"))

	s := &Snowflake{
		lay:       lay,
		dcID:      cfg.DatacenterID,
		workerID:  cfg.WorkerID,
		lastTick:  -1,
		nowMillis: func() int64 { return time.Now().UnixMilli() },
		logger:    logger,
	}

	if opt.Meter != nil {
		s.generated, _ = opt.Meter.Counter(MetricSnowflakeGenerated, "雪花算法 ID 生成总数")
		s.regressions, _ = opt.Meter.Counter(MetricSnowflakeClockRegressions, "被钳制吸收的时钟回拨次数")
	}

	logger.Info("snowflake generator created",
		clog.Int64("worker_id", cfg.WorkerID),
		clog.Int64("datacenter_id", cfg.DatacenterID),
		clog.Int("sequence_bits", lay.sequenceBits),
	)

	return s, nil
}

// Next 生成下一个 ID
//
// 整个函数体持锁执行，并发调用被全序化。时钟回拨被钳制到上次时间槽
// 静默吸收；序列号耗尽时自旋等待时钟进入下一个时间槽（期间持有锁，
// 所有调用者都会被阻塞——这是刻意以延迟换简单性的取舍）。
func (s *Snowflake) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	tick := s.nowMillis() / s.lay.divisor

	if tick < s.lastTick {
		// 时钟回拨：钳制到上次时间槽，不向调用方暴露
		tick = s.lastTick
		if s.regressions != nil {
			s.regressions.Inc(context.Background())
		}
	}

	if tick == s.lastTick {
		s.sequence = (s.sequence + 1) & s.lay.maxSequence
		if s.sequence == 0 {
			// 本时间槽的序列号耗尽，等待时钟前进
			// 时钟冻结时此处不会返回，这是文档化的活性风险
			for tick <= s.lastTick {
				runtime.Gosched()
				tick = s.nowMillis() / s.lay.divisor
			}
		}
	} else {
		s.sequence = 0
	}

	s.lastTick = tick

	id := (tick-s.lay.epochTick)<<s.lay.timestampShift |
		s.dcID<<s.lay.datacenterShift |
		s.workerID<<s.lay.workerShift |
		s.sequence

	if s.generated != nil {
		s.generated.Inc(context.Background())
	}

	return id
}

// NextString 返回字符串形式的 ID
func (s *Snowflake) NextString() string {
	return strconv.FormatInt(s.Next(), 10)
}

// ID 为 Decode 拆解出的各分段
type ID struct {
	Timestamp    time.Time
	DatacenterID int64
	WorkerID     int64
	Sequence     int64
}

// Decode 按本实例的位分段拆解一个 ID
//
// 只对同一布局（且同一 Epoch）下生成的 ID 有意义。
func (s *Snowflake) Decode(id int64) ID {
	tick := (id >> s.lay.timestampShift) + s.lay.epochTick
	return ID{
		Timestamp:    time.UnixMilli(tick * s.lay.divisor),
		DatacenterID: (id >> s.lay.datacenterShift) & s.lay.maxDatacenterID,
		WorkerID:     (id >> s.lay.workerShift) & s.lay.maxWorkerID,
		Sequence:     id & s.lay.maxSequence,
	}
}
