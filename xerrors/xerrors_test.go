package xerrors

import (
	"errors"
	"testing"
)

func TestWrap(t *testing.T) {
	// nil 错误应返回 nil
	if err := Wrap(nil, "context"); err != nil {
		t.Errorf("Wrap(nil) = %v，期望 nil", err)
	}

	// 包装后的错误应包含消息并保留错误链
	base := errors.New("base error")
	wrapped := Wrap(base, "context")
	if wrapped == nil {
		t.Fatal("Wrap(err) = nil，期望非 nil")
	}
	if wrapped.Error() != "context: base error" {
		t.Errorf("Wrap(err).Error() = %q，期望 %q", wrapped.Error(), "context: base error")
	}
	if !errors.Is(wrapped, base) {
		t.Error("errors.Is(wrapped, base) = false，期望 true")
	}
}

func TestWrapf(t *testing.T) {
	if err := Wrapf(nil, "worker %d", 7); err != nil {
		t.Errorf("Wrapf(nil) = %v，期望 nil", err)
	}

	base := errors.New("out of range")
	wrapped := Wrapf(base, "worker %d", 7)
	if wrapped.Error() != "worker 7: out of range" {
		t.Errorf("Wrapf(err).Error() = %q，期望 %q", wrapped.Error(), "worker 7: out of range")
	}
}

func TestWithCode(t *testing.T) {
	if err := WithCode(nil, "CODE"); err != nil {
		t.Errorf("WithCode(nil) = %v，期望 nil", err)
	}

	base := errors.New("invalid config")
	coded := WithCode(base, "worker_id_out_of_range")
	if coded.Error() != "[worker_id_out_of_range] invalid config" {
		t.Errorf("WithCode(err).Error() = %q", coded.Error())
	}

	// GetCode 应能提取 code
	if code := GetCode(coded); code != "worker_id_out_of_range" {
		t.Errorf("GetCode(coded) = %q，期望 %q", code, "worker_id_out_of_range")
	}

	// 错误链应保留
	if !errors.Is(coded, base) {
		t.Error("errors.Is(coded, base) = false，期望 true")
	}

	// 无 code 的错误应返回空串
	if code := GetCode(base); code != "" {
		t.Errorf("GetCode(plain) = %q，期望空串", code)
	}
}

func TestMust(t *testing.T) {
	// 无错误时直接返回值
	if v := Must(42, nil); v != 42 {
		t.Errorf("Must(42, nil) = %d，期望 42", v)
	}

	// 有错误时应 panic
	defer func() {
		if recover() == nil {
			t.Error("Must(_, err) 未 panic")
		}
	}()
	Must(0, errors.New("boom"))
}
