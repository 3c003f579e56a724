package idgen

import (
	"context"
	"time"

	"github.com/ceyewan/flakeid/idgen/internal/allocator"
	"github.com/ceyewan/flakeid/xerrors"
)

// 经典位分段：41 bit 时间戳 + 5 bit 数据中心 + 5 bit 工作节点 + 12 bit 序列号
const (
	classicTimestampBits  = 41
	classicDatacenterBits = 5
	classicWorkerBits     = 5
)

// ClassicConfig 经典 41/5/5/12 布局的配置
// 只留 WorkerID、DatacenterID、Epoch 由调用方指定，其余为布局常量。
type ClassicConfig struct {
	// Method 指定 WorkerID 的获取方式
	// 可选: "static"（默认，手动指定）| "ip"（本机 IPv4 最后一段，
	// 截断到 5 bit 工作节点空间）
	Method string `yaml:"method" json:"method" mapstructure:"method"`

	// WorkerID 当 Method="static" 时手动指定，范围 [0, 31]
	WorkerID int64 `yaml:"worker_id" json:"worker_id" mapstructure:"worker_id"`

	// DatacenterID 数据中心 ID，范围 [0, 31]
	DatacenterID int64 `yaml:"datacenter_id" json:"datacenter_id" mapstructure:"datacenter_id"`

	// Epoch 时间戳基准点（默认 Unix 纪元）
	Epoch time.Time `yaml:"-" json:"-" mapstructure:"-"`
}

// NewClassic 创建经典布局的 Snowflake 生成器
//
// 这是纯粹的配置特化：用布局常量构造通用生成器，不引入任何独立逻辑。
//
// 使用示例：
//
//	sf, _ := idgen.NewClassic(&idgen.ClassicConfig{
//	    WorkerID:     1,
//	    DatacenterID: 2,
//	})
//	id := sf.Next()
func NewClassic(cfg *ClassicConfig, opts ...Option) (*Snowflake, error) {
	if cfg == nil {
		return nil, xerrors.WithCode(ErrInvalidConfig, "config_is_nil")
	}

	var alloc allocator.Allocator
	switch cfg.Method {
	case "", "static":
		alloc = allocator.NewStatic(cfg.WorkerID)
	case "ip":
		alloc = allocator.NewIP()
	default:
		return nil, xerrors.WithCode(ErrInvalidConfig, "unsupported_method")
	}

	workerID, err := alloc.Allocate(context.Background())
	if err != nil {
		return nil, xerrors.Wrap(err, "allocate worker id")
	}
	if cfg.Method == "ip" {
		// IP 最后一段为 8 bit，截断到经典布局的 5 bit 工作节点空间
		workerID &= int64(1)<<classicWorkerBits - 1
	}

	return New(&GeneratorConfig{
		TimestampBits:    classicTimestampBits,
		DatacenterBits:   classicDatacenterBits,
		WorkerBits:       classicWorkerBits,
		TimestampDivisor: 1,
		Epoch:            cfg.Epoch,
		DatacenterID:     cfg.DatacenterID,
		WorkerID:         workerID,
	}, opts...)
}
