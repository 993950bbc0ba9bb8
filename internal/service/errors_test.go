package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
)

func asError(err error, target **Error) bool {
	return errors.As(err, target)
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"validation", Validation("bad %d", 1), KindValidation},
		{"unknown key", UnknownKey("nope"), KindUnknownKey},
		{"wrapped", fmt.Errorf("handler: %w", UnknownKey("nope")), KindUnknownKey},
		{"computation", Computation(StageScored, errors.New("x")), KindComputation},
		{"plain", errors.New("plain"), KindComputation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	inner := errors.New("boom")
	err := Computation(StageScored, inner)
	if !errors.Is(err, inner) {
		t.Error("Computation does not unwrap")
	}
	if got := err.Error(); got != "computation_error at scored: 分析失败: boom" {
		t.Errorf("Error() = %q", got)
	}
	if got := MessageOf(Validation("文本内容不能为空")); got != "文本内容不能为空" {
		t.Errorf("MessageOf = %q", got)
	}
	if got := StageRejected.String(); got != "rejected" {
		t.Errorf("StageRejected = %q", got)
	}
}

func TestRunReject(t *testing.T) {
	r := newRun("test", false)
	err := r.reject(Validation("x"))
	if r.stage != StageRejected || err.Stage != StageReceived {
		t.Errorf("run stage = %v, error stage = %v", r.stage, err.Stage)
	}
}

func TestRunBatch(t *testing.T) {
	var active, peak int32
	results := runBatch(context.Background(), 50, 3, func(_ context.Context, i int) int {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		atomic.AddInt32(&active, -1)
		return i * i
	})
	for i, v := range results {
		if v != i*i {
			t.Fatalf("results[%d] = %d", i, v)
		}
	}
	if peak > 3 {
		t.Errorf("peak concurrency %d above limit", peak)
	}
	if got := runBatch(context.Background(), 0, 3, func(context.Context, int) int { return 1 }); len(got) != 0 {
		t.Errorf("empty batch = %v", got)
	}
}
