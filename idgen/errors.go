package idgen

import "github.com/ceyewan/flakeid/xerrors"

var (
	// ErrInvalidConfig 配置校验失败
	// 只在构造时出现，构造必须中止；运行时没有任何错误条件。
	ErrInvalidConfig = xerrors.New("idgen: invalid config")
)
