package idgen

import (
	"testing"

	"github.com/ceyewan/flakeid/xerrors"
)

// ========================================
// 布局校验单元测试
// ========================================

func TestNewLayout_Validation(t *testing.T) {
	tests := []struct {
		name     string
		cfg      *GeneratorConfig
		wantCode string // 空串表示期望成功
	}{
		{
			name: "classic layout",
			cfg:  &GeneratorConfig{TimestampBits: 41, DatacenterBits: 5, WorkerBits: 5, WorkerID: 1},
		},
		{
			name: "boundary ids accepted",
			cfg:  &GeneratorConfig{TimestampBits: 41, DatacenterBits: 5, WorkerBits: 5, WorkerID: 31, DatacenterID: 31},
		},
		{
			name: "zero ids accepted",
			cfg:  &GeneratorConfig{TimestampBits: 41, DatacenterBits: 5, WorkerBits: 5},
		},
		{
			name: "max total width accepted",
			cfg:  &GeneratorConfig{TimestampBits: 50, DatacenterBits: 5, WorkerBits: 7},
		},
		{
			name:     "datacenter bits zero",
			cfg:      &GeneratorConfig{TimestampBits: 41, DatacenterBits: 0, WorkerBits: 5},
			wantCode: "datacenter_bits_out_of_range",
		},
		{
			name:     "datacenter bits too large",
			cfg:      &GeneratorConfig{TimestampBits: 41, DatacenterBits: 6, WorkerBits: 5},
			wantCode: "datacenter_bits_out_of_range",
		},
		{
			name:     "worker bits zero",
			cfg:      &GeneratorConfig{TimestampBits: 41, DatacenterBits: 5, WorkerBits: 0},
			wantCode: "worker_bits_must_be_positive",
		},
		{
			name:     "negative divisor",
			cfg:      &GeneratorConfig{TimestampBits: 41, DatacenterBits: 5, WorkerBits: 5, TimestampDivisor: -1},
			wantCode: "divisor_must_be_positive",
		},
		{
			name:     "total width exceeds 63",
			cfg:      &GeneratorConfig{TimestampBits: 51, DatacenterBits: 5, WorkerBits: 7},
			wantCode: "total_bit_width_exceeds_63",
		},
		{
			name:     "worker id too large",
			cfg:      &GeneratorConfig{TimestampBits: 41, DatacenterBits: 5, WorkerBits: 5, WorkerID: 32},
			wantCode: "worker_id_out_of_range",
		},
		{
			name:     "negative worker id",
			cfg:      &GeneratorConfig{TimestampBits: 41, DatacenterBits: 5, WorkerBits: 5, WorkerID: -1},
			wantCode: "worker_id_out_of_range",
		},
		{
			name:     "datacenter id too large",
			cfg:      &GeneratorConfig{TimestampBits: 41, DatacenterBits: 5, WorkerBits: 5, DatacenterID: 32},
			wantCode: "datacenter_id_out_of_range",
		},
		{
			name:     "negative datacenter id",
			cfg:      &GeneratorConfig{TimestampBits: 41, DatacenterBits: 5, WorkerBits: 5, DatacenterID: -1},
			wantCode: "datacenter_id_out_of_range",
		},
		{
			// 多处违规时按固定顺序返回第一个
			name:     "datacenter bits checked first",
			cfg:      &GeneratorConfig{TimestampBits: 41, DatacenterBits: 0, WorkerBits: 0, TimestampDivisor: -1},
			wantCode: "datacenter_bits_out_of_range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLayout(tt.cfg)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("期望成功，得到错误: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("期望错误，得到 nil")
			}
			if !xerrors.Is(err, ErrInvalidConfig) {
				t.Errorf("错误链应包含 ErrInvalidConfig: %v", err)
			}
			if code := xerrors.GetCode(err); code != tt.wantCode {
				t.Errorf("错误码 = %q，期望 %q", code, tt.wantCode)
			}
		})
	}
}

func TestNewLayout_Derivation(t *testing.T) {
	cfg := &GeneratorConfig{TimestampBits: 41, DatacenterBits: 5, WorkerBits: 5}
	lay, err := newLayout(cfg)
	if err != nil {
		t.Fatalf("newLayout 失败: %v", err)
	}

	if lay.sequenceBits != 12 {
		t.Errorf("sequenceBits = %d，期望 12", lay.sequenceBits)
	}
	if lay.maxSequence != 4095 {
		t.Errorf("maxSequence = %d，期望 4095", lay.maxSequence)
	}
	if lay.maxWorkerID != 31 || lay.maxDatacenterID != 31 {
		t.Errorf("maxWorkerID/maxDatacenterID = %d/%d，期望 31/31", lay.maxWorkerID, lay.maxDatacenterID)
	}
	if lay.timestampShift != 22 || lay.datacenterShift != 17 || lay.workerShift != 12 {
		t.Errorf("shifts = %d/%d/%d，期望 22/17/12", lay.timestampShift, lay.datacenterShift, lay.workerShift)
	}
	if lay.divisor != 1 {
		t.Errorf("divisor = %d，期望默认 1", lay.divisor)
	}
}

func TestNewLayout_DivisorDefaultsAndEpoch(t *testing.T) {
	// 未设置的 divisor 取默认 1，未设置的 Epoch 取 Unix 纪元
	cfg := &GeneratorConfig{TimestampBits: 39, DatacenterBits: 2, WorkerBits: 8}
	lay, err := newLayout(cfg)
	if err != nil {
		t.Fatalf("newLayout 失败: %v", err)
	}
	if lay.epochTick != 0 {
		t.Errorf("epochTick = %d，期望 0（Unix 纪元）", lay.epochTick)
	}

	// 更大的 divisor 换取更长年限：epochTick 按 divisor 折算
	cfg2 := &GeneratorConfig{TimestampBits: 39, DatacenterBits: 2, WorkerBits: 8, TimestampDivisor: 10}
	lay2, err := newLayout(cfg2)
	if err != nil {
		t.Fatalf("newLayout 失败: %v", err)
	}
	if lay2.divisor != 10 {
		t.Errorf("divisor = %d，期望 10", lay2.divisor)
	}
}
