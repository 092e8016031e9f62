package database

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

const (
	spanKey      = "otel:span"
	startTimeKey = "otel:start_time"
)

var (
	dbQueriesTotal  metric.Int64Counter
	dbQueryDuration metric.Float64Histogram
	metricsOnce     sync.Once
)

func initDatabaseMetrics() {
	metricsOnce.Do(func() {
		meter := otel.Meter("multistepform.gorm")

		dbQueriesTotal, _ = meter.Int64Counter(
			"db.queries.total",
			metric.WithDescription("Total number of database queries"),
			metric.WithUnit("{query}"),
		)

		dbQueryDuration, _ = meter.Float64Histogram(
			"db.query.duration",
			metric.WithDescription("Database query duration"),
			metric.WithUnit("s"),
			metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0),
		)
	})
}

// OTELPlugin GORM OpenTelemetry 插件，只挂在表单存储用到的查询和写入上
type OTELPlugin struct {
	tracer      trace.Tracer
	serviceName string
}

func NewOTELPlugin(serviceName string) *OTELPlugin {
	if serviceName == "" {
		serviceName = "multistepform"
	}
	initDatabaseMetrics()

	return &OTELPlugin{
		tracer:      otel.Tracer(serviceName + ".gorm"),
		serviceName: serviceName,
	}
}

// Name 实现 gorm.Plugin 接口
func (p *OTELPlugin) Name() string {
	return "otel_plugin"
}

// Initialize 注册回调
func (p *OTELPlugin) Initialize(db *gorm.DB) error {
	callbacks := db.Callback()

	if err := callbacks.Query().Before("gorm:query").Register("otel:before_query", p.before("db.select")); err != nil {
		return err
	}
	if err := callbacks.Query().After("gorm:query").Register("otel:after_query", p.after("db.select")); err != nil {
		return err
	}
	if err := callbacks.Create().Before("gorm:create").Register("otel:before_create", p.before("db.upsert")); err != nil {
		return err
	}
	return callbacks.Create().After("gorm:create").Register("otel:after_create", p.after("db.upsert"))
}

func (p *OTELPlugin) before(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx, span := p.tracer.Start(db.Statement.Context, operation,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				semconv.DBSystemPostgreSQL,
				attribute.String("db.table", db.Statement.Table),
				attribute.String("service.name", p.serviceName),
			),
		)

		db.InstanceSet(startTimeKey, time.Now())
		db.InstanceSet(spanKey, span)
		db.Statement.Context = ctx
	}
}

func (p *OTELPlugin) after(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(spanKey)
		if !ok {
			return
		}
		span, ok := v.(trace.Span)
		if !ok {
			return
		}
		defer span.End()

		// SQL 只在执行后才生成；不记录参数，表单内容不进 trace
		span.SetAttributes(
			semconv.DBStatement(db.Statement.SQL.String()),
			attribute.Int64("db.rows_affected", db.Statement.RowsAffected),
		)

		status := "success"
		switch {
		case db.Error == nil:
			span.SetStatus(codes.Ok, "Success")
		case errors.Is(db.Error, gorm.ErrRecordNotFound):
			span.SetStatus(codes.Ok, "Record not found")
		default:
			status = "error"
			span.SetStatus(codes.Error, db.Error.Error())
			span.RecordError(db.Error)
		}

		if started, ok := db.InstanceGet(startTimeKey); ok {
			if t, ok := started.(time.Time); ok {
				p.recordMetrics(db.Statement.Context, operation, status, time.Since(t).Seconds())
			}
		}
	}
}

func (p *OTELPlugin) recordMetrics(ctx context.Context, operation, status string, duration float64) {
	labels := metric.WithAttributes(
		attribute.String("db.operation", operation),
		attribute.String("db.status", status),
	)
	dbQueriesTotal.Add(ctx, 1, labels)
	dbQueryDuration.Record(ctx, duration, labels)
}

// WithOTELPlugin 为 GORM 添加 OpenTelemetry 插件
func WithOTELPlugin(db *gorm.DB, serviceName string) error {
	return db.Use(NewOTELPlugin(serviceName))
}
