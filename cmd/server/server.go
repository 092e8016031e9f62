package main

import (
	"context"
	"net"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/config"
	"go.uber.org/zap"

	appconfig "MultiStepForm/config"
	"MultiStepForm/internal/middleware"
	"MultiStepForm/internal/router"
	"MultiStepForm/pkg/logger"
	"MultiStepForm/pkg/metrics"
	"MultiStepForm/pkg/otel"
	"MultiStepForm/pkg/snowflake"
	"MultiStepForm/storage"
)

func main() {
	// 日志部分
	logger.Init()
	defer logger.Sync()

	cfg := appconfig.Cfg

	ctx := context.Background()

	// 可观测性需要在存储之前初始化，redis hook 和 gorm 插件会读取全局 provider
	if cfg.OTelEnabled() {
		shutdownOTel, err := otel.InitOpenTelemetry(ctx, otel.Config{
			ServiceName:    cfg.ServiceName,
			ServiceVersion: cfg.ServiceVersion,
			Environment:    cfg.Environment,
			OTLPEndpoint:   cfg.OTLPEndpoint,
			SampleRatio:    cfg.OTelSampleRatio,
		})
		if err != nil {
			logger.Logger.Warn("Failed to initialize OpenTelemetry, continuing without export", zap.Error(err))
		} else {
			defer func() {
				if err := shutdownOTel(context.Background()); err != nil {
					logger.Logger.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
				}
			}()
		}
	}

	if err := metrics.InitMetrics(); err != nil {
		logger.Logger.Warn("Failed to initialize wizard metrics", zap.Error(err))
	}

	// 初始化存储层，记得关闭外部连接
	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(cfg.SnowflakeMachineID, cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	// 初始化中间件
	if err := middleware.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize middlewares", zap.Error(err))
	}

	logger.Logger.Info("Server starting",
		zap.String("service", cfg.ServiceName),
		zap.String("port", cfg.ServerPort),
		zap.String("environment", cfg.Environment),
		zap.String("storage_backend", cfg.StorageBackend),
	)

	addr := net.JoinHostPort(cfg.ServerHost, cfg.ServerPort)
	// Spin 自己监听 SIGINT/SIGTERM 并在等待时间内优雅关闭
	opts := []config.Option{
		server.WithHostPorts(addr),
		server.WithExitWaitTime(5 * time.Second),
	}

	// 导出开启时挂上 hertz 的 server tracer，负责 trace 上下文的提取与传播
	var tracingMiddleware app.HandlerFunc
	if cfg.OTelEnabled() {
		tracer, mw := middleware.NewServerTracerConfig()
		opts = append(opts, tracer)
		tracingMiddleware = mw
	}

	h := server.Default(opts...)
	if tracingMiddleware != nil {
		h.Use(tracingMiddleware)
	}

	router.Register(h)

	logger.Logger.Info("HTTP server listening", zap.String("addr", addr))

	h.Spin()

	logger.Logger.Info("Server shutting down gracefully")
}
