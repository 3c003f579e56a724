package idgen

import (
	"time"

	"github.com/ceyewan/flakeid/xerrors"
)

// GeneratorConfig 通用位分段生成器配置
//
// 一个 ID 由高位到低位依次为：1 bit 符号位（恒为 0）、TimestampBits 位
// 时间戳、DatacenterBits 位数据中心、WorkerBits 位工作节点，剩余的
// 63 − TimestampBits − DatacenterBits − WorkerBits 位为序列号。
// 三段位宽之和加符号位不得超过 63。
type GeneratorConfig struct {
	// TimestampBits 时间戳位宽
	TimestampBits int `yaml:"timestamp_bits" json:"timestamp_bits" mapstructure:"timestamp_bits"`

	// DatacenterBits 数据中心位宽，范围 [1, 5]
	DatacenterBits int `yaml:"datacenter_bits" json:"datacenter_bits" mapstructure:"datacenter_bits"`

	// WorkerBits 工作节点位宽，必须为正
	WorkerBits int `yaml:"worker_bits" json:"worker_bits" mapstructure:"worker_bits"`

	// TimestampDivisor 时间槽除数（默认 1，即毫秒精度）
	// 更大的值以精度换取时间戳字段溢出前更长的可用年限。
	TimestampDivisor int64 `yaml:"timestamp_divisor" json:"timestamp_divisor" mapstructure:"timestamp_divisor"`

	// Epoch 时间戳基准点（默认 Unix 纪元），由代码设置
	Epoch time.Time `yaml:"-" json:"-" mapstructure:"-"`

	// DatacenterID 数据中心 ID，范围 [0, 2^DatacenterBits − 1]
	DatacenterID int64 `yaml:"datacenter_id" json:"datacenter_id" mapstructure:"datacenter_id"`

	// WorkerID 工作节点 ID，范围 [0, 2^WorkerBits − 1]
	WorkerID int64 `yaml:"worker_id" json:"worker_id" mapstructure:"worker_id"`
}

func (c *GeneratorConfig) setDefaults() {
	if c.TimestampDivisor == 0 {
		c.TimestampDivisor = 1
	}
	if c.Epoch.IsZero() {
		c.Epoch = time.Unix(0, 0).UTC()
	}
}

// layout 由合法配置派生出的移位与掩码集合，创建后不可变
type layout struct {
	sequenceBits    int
	maxSequence     int64
	maxWorkerID     int64
	maxDatacenterID int64
	timestampShift  uint
	datacenterShift uint
	workerShift     uint
	divisor         int64
	epochTick       int64
}

// newLayout 按固定顺序校验配置并派生 layout
//
// 校验失败返回带错误码的 ErrInvalidConfig，构造必须中止。
func newLayout(cfg *GeneratorConfig) (layout, error) {
	cfg.setDefaults()

	if cfg.DatacenterBits < 1 || cfg.DatacenterBits > 5 {
		return layout{}, xerrors.WithCode(ErrInvalidConfig, "datacenter_bits_out_of_range")
	}
	if cfg.WorkerBits <= 0 {
		return layout{}, xerrors.WithCode(ErrInvalidConfig, "worker_bits_must_be_positive")
	}
	if cfg.TimestampDivisor <= 0 {
		return layout{}, xerrors.WithCode(ErrInvalidConfig, "divisor_must_be_positive")
	}
	if 1+cfg.TimestampBits+cfg.DatacenterBits+cfg.WorkerBits > 63 {
		return layout{}, xerrors.WithCode(ErrInvalidConfig, "total_bit_width_exceeds_63")
	}

	sequenceBits := 63 - cfg.TimestampBits - cfg.DatacenterBits - cfg.WorkerBits
	maxWorkerID := int64(1)<<cfg.WorkerBits - 1
	maxDatacenterID := int64(1)<<cfg.DatacenterBits - 1

	if cfg.WorkerID < 0 || cfg.WorkerID > maxWorkerID {
		return layout{}, xerrors.WithCode(ErrInvalidConfig, "worker_id_out_of_range")
	}
	if cfg.DatacenterID < 0 || cfg.DatacenterID > maxDatacenterID {
		return layout{}, xerrors.WithCode(ErrInvalidConfig, "datacenter_id_out_of_range")
	}

	return layout{
		sequenceBits:    sequenceBits,
		maxSequence:     int64(1)<<sequenceBits - 1,
		maxWorkerID:     maxWorkerID,
		maxDatacenterID: maxDatacenterID,
		timestampShift:  uint(cfg.DatacenterBits + cfg.WorkerBits + sequenceBits),
		datacenterShift: uint(cfg.WorkerBits + sequenceBits),
		workerShift:     uint(sequenceBits),
		divisor:         cfg.TimestampDivisor,
		epochTick:       cfg.Epoch.UnixMilli() / cfg.TimestampDivisor,
	}, nil
}
