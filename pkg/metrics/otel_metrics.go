package metrics

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTelMetrics 表单向导相关的 OpenTelemetry 指标集合
type OTelMetrics struct {
	StepSubmittedTotal     metric.Int64Counter
	ValidationFailureTotal metric.Int64Counter
	StepTransitionTotal    metric.Int64Counter
	StorageFallbackTotal   metric.Int64Counter
	StorageWriteDuration   metric.Float64Histogram
}

var (
	// 全局指标实例，InitMetrics 之前为 nil，记录函数会直接跳过
	metrics *OTelMetrics
	// meter 用于创建指标
	meter = otel.Meter("multistepform")
)

// InitMetrics 初始化 OpenTelemetry 指标
func InitMetrics() error {
	var err error

	m := &OTelMetrics{}

	m.StepSubmittedTotal, err = meter.Int64Counter(
		"wizard_step_submitted_total",
		metric.WithDescription("Total number of wizard step submissions"),
		metric.WithUnit("{submission}"),
	)
	if err != nil {
		return err
	}

	m.ValidationFailureTotal, err = meter.Int64Counter(
		"wizard_validation_failure_total",
		metric.WithDescription("Total number of invalid fields rejected on submit"),
		metric.WithUnit("{field}"),
	)
	if err != nil {
		return err
	}

	m.StepTransitionTotal, err = meter.Int64Counter(
		"wizard_step_transition_total",
		metric.WithDescription("Total number of step changes"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return err
	}

	m.StorageFallbackTotal, err = meter.Int64Counter(
		"wizard_storage_fallback_total",
		metric.WithDescription("Stored form data that could not be read and fell back to defaults"),
		metric.WithUnit("{load}"),
	)
	if err != nil {
		return err
	}

	m.StorageWriteDuration, err = meter.Float64Histogram(
		"wizard_storage_write_duration_seconds",
		metric.WithDescription("Time spent persisting form data"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0),
	)
	if err != nil {
		return err
	}

	metrics = m
	return nil
}

// GetMetrics 获取全局指标实例
func GetMetrics() *OTelMetrics {
	return metrics
}

// RecordStepSubmitted 记录一次步骤提交，outcome 为 accepted / rejected / failed
func (m *OTelMetrics) RecordStepSubmitted(ctx context.Context, step, outcome string) {
	m.StepSubmittedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("step", step),
		attribute.String("outcome", outcome),
	))
}

// RecordValidationFailure 记录单个字段校验失败
func (m *OTelMetrics) RecordValidationFailure(ctx context.Context, step, field string) {
	m.ValidationFailureTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("step", step),
		attribute.String("field", field),
	))
}

// RecordStepTransition 记录步骤切换
func (m *OTelMetrics) RecordStepTransition(ctx context.Context, from, to, direction string) {
	m.StepTransitionTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from),
		attribute.String("to", to),
		attribute.String("direction", direction),
	))
}

// RecordStorageFallback 记录读取失败回退默认值
func (m *OTelMetrics) RecordStorageFallback(ctx context.Context, reason string) {
	m.StorageFallbackTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

// RecordStorageWrite 记录一次写入耗时
func (m *OTelMetrics) RecordStorageWrite(ctx context.Context, duration float64, success bool) {
	status := "success"
	if !success {
		status = "failed"
	}
	m.StorageWriteDuration.Record(ctx, duration, metric.WithAttributes(
		attribute.String("status", status),
	))
}
