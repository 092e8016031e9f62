package middleware

import (
	"go.uber.org/zap"

	"MultiStepForm/config"
	"MultiStepForm/pkg/logger"
	"MultiStepForm/storage/redis"
)

var rateLimiter *RateLimiter

// Init 初始化会话存储和限流器。限流只在 redis 客户端可用时启用。
func Init() error {
	initSessionStore()

	cfg := config.Cfg
	if cfg.RateLimitEnabled && redis.Ready() {
		rateLimiter = NewRateLimiter(redis.Client(), RateLimitConfig{
			Window:        cfg.RateLimitWindow,
			MaxRequests:   cfg.RateLimitMaxRequests,
			KeyPrefix:     "rate:limit",
			BlockDuration: cfg.RateLimitBlock,
		})
	} else if cfg.RateLimitEnabled {
		logger.Logger.Info("Rate limiting disabled, redis backend not in use",
			zap.String("storage_backend", cfg.StorageBackend),
		)
	}

	logger.Logger.Info("All middlewares initialized successfully",
		zap.Bool("csrf", cfg.CSRFEnabled),
		zap.Bool("rate_limit", rateLimiter != nil),
	)
	return nil
}

// RateLimit 返回已初始化的限流器，未启用时为 nil
func RateLimit() *RateLimiter {
	return rateLimiter
}
