package metrics

import (
	"context"
)

// RecordStepSubmitted 记录步骤提交
func RecordStepSubmitted(ctx context.Context, step, outcome string) {
	if m := GetMetrics(); m != nil {
		m.RecordStepSubmitted(ctx, step, outcome)
	}
}

// RecordValidationFailure 记录字段校验失败
func RecordValidationFailure(ctx context.Context, step, field string) {
	if m := GetMetrics(); m != nil {
		m.RecordValidationFailure(ctx, step, field)
	}
}

// RecordStepTransition 记录步骤切换
func RecordStepTransition(ctx context.Context, from, to, direction string) {
	if m := GetMetrics(); m != nil {
		m.RecordStepTransition(ctx, from, to, direction)
	}
}

// RecordStorageFallback 记录读取回退
func RecordStorageFallback(ctx context.Context, reason string) {
	if m := GetMetrics(); m != nil {
		m.RecordStorageFallback(ctx, reason)
	}
}

// RecordStorageWrite 记录写入耗时
func RecordStorageWrite(ctx context.Context, duration float64, success bool) {
	if m := GetMetrics(); m != nil {
		m.RecordStorageWrite(ctx, duration, success)
	}
}
