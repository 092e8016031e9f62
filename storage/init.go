package storage

import (
	"fmt"
	"time"

	"MultiStepForm/config"
	"MultiStepForm/internal/persistence"
	"MultiStepForm/storage/database"
	"MultiStepForm/storage/redis"
)

var formStore persistence.KVStore

// Init 按 STORAGE_BACKEND 初始化表单数据所在的存储
func Init() error {
	switch config.Cfg.StorageBackend {
	case config.BackendRedis:
		if err := redis.Init(); err != nil {
			return fmt.Errorf("init redis: %w", err)
		}
		formStore = withBreaker("redis", persistence.NewRedisStore(redis.Client()))
	case config.BackendPostgres:
		if err := database.Init(); err != nil {
			return fmt.Errorf("init database: %w", err)
		}
		formStore = withBreaker("postgres", persistence.NewDatabaseStore(database.DB()))
	case config.BackendMemory:
		formStore = persistence.NewMemoryStore()
	default:
		return fmt.Errorf("unknown storage backend %q", config.Cfg.StorageBackend)
	}

	return nil
}

// 外部存储连续失败 5 次后熔断 30 秒，期间读取回退默认记录，写入直接失败
func withBreaker(name string, store persistence.KVStore) persistence.KVStore {
	return persistence.NewBreakerStore(store, persistence.NewCircuitBreaker(name, 5, 30*time.Second))
}

// FormStore 返回表单数据使用的键值存储，需先调用 Init
func FormStore() persistence.KVStore {
	if formStore == nil {
		panic("storage not init")
	}
	return formStore
}
