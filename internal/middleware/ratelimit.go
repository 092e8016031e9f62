package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	redislib "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"MultiStepForm/pkg/errors"
	"MultiStepForm/pkg/logger"
	"MultiStepForm/pkg/response"
	"MultiStepForm/storage/redis"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	// 时间窗口
	Window time.Duration
	// 时间窗口内最大请求数
	MaxRequests int
	// 限流键前缀
	KeyPrefix string
	// 超过限制后禁止访问的时间
	BlockDuration time.Duration
}

// RateLimiter 基于 redis zset 的滑动窗口限流器，按访客 ID 计数，没有访客 ID 时按 IP
type RateLimiter struct {
	client redislib.Cmdable
	config RateLimitConfig
}

func NewRateLimiter(client redislib.Cmdable, config RateLimitConfig) *RateLimiter {
	if config.KeyPrefix == "" {
		config.KeyPrefix = "rate:limit"
	}
	return &RateLimiter{
		client: client,
		config: config,
	}
}

// getKey 生成限流键
func (rl *RateLimiter) getKey(ctx context.Context, c *app.RequestContext) string {
	var identifier string
	if visitorID, exists := GetVisitorID(ctx, c); exists {
		identifier = "visitor:" + visitorID
	} else {
		identifier = "ip:" + c.ClientIP()
	}

	return redis.Key(rl.config.KeyPrefix, identifier)
}

// Allow 检查是否允许请求，使用滑动窗口算法
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	now := time.Now()
	windowStart := now.Add(-rl.config.Window)

	pipe := rl.client.Pipeline()

	// 先移除窗口之外的请求记录
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	pipe.ZAdd(ctx, key, redislib.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	zcardCmd := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, rl.config.Window+10*time.Second)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to execute pipeline: %w", err)
	}

	count := int(zcardCmd.Val())
	return count <= rl.config.MaxRequests, count, nil
}

func (rl *RateLimiter) blockKey(key string) string {
	return key + ":block"
}

func (rl *RateLimiter) Block(ctx context.Context, key string) error {
	return rl.client.Set(ctx, rl.blockKey(key), "1", rl.config.BlockDuration).Err()
}

func (rl *RateLimiter) IsBlocked(ctx context.Context, key string) (bool, error) {
	result, err := rl.client.Exists(ctx, rl.blockKey(key)).Result()
	return result > 0, err
}

// Middleware 限流中间件，需要放在 VisitorMiddleware 之后。
// redis 不可用时放行，只记录日志。
func (rl *RateLimiter) Middleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		key := rl.getKey(ctx, c)

		blocked, err := rl.IsBlocked(ctx, key)
		if err != nil {
			logger.Logger.Warn("Failed to check block status", zap.Error(err))
			c.Next(ctx)
			return
		}
		if blocked {
			response.Error(ctx, c, errors.TooManyRequests)
			c.Abort()
			return
		}

		allowed, count, err := rl.Allow(ctx, key)
		if err != nil {
			logger.Logger.Warn("Failed to check rate limit", zap.Error(err))
			c.Next(ctx)
			return
		}

		remaining := rl.config.MaxRequests - count
		if remaining < 0 {
			remaining = 0
		}
		c.Response.Header.Set("X-RateLimit-Limit", strconv.Itoa(rl.config.MaxRequests))
		c.Response.Header.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Response.Header.Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(rl.config.Window).Unix(), 10))

		if !allowed {
			if err := rl.Block(ctx, key); err != nil {
				logger.Logger.Error("Failed to block visitor", zap.Error(err))
			}
			response.Error(ctx, c, errors.TooManyRequests)
			c.Abort()
			return
		}

		c.Next(ctx)
	}
}
