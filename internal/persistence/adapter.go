package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"MultiStepForm/internal/form"
	"MultiStepForm/pkg/logger"
	"MultiStepForm/pkg/metrics"
)

// StorageKey 表单数据的固定存储键
const StorageKey = "multistep_form_data"

// Adapter 把整条表单记录作为一个 JSON blob 读写到固定键下。
// 不做版本号和迁移：schema 变化后旧 blob 可能与新规则不一致。
type Adapter struct {
	store KVStore
	key   string
}

// NewAdapter scope 一般是访客 ID，用来隔离不同访客的数据；为空时直接使用 StorageKey
func NewAdapter(store KVStore, scope string) *Adapter {
	key := StorageKey
	if scope != "" {
		key = StorageKey + ":" + scope
	}
	return &Adapter{store: store, key: key}
}

// Key 实际使用的存储键
func (a *Adapter) Key() string {
	return a.key
}

// Save 序列化完整记录并无条件写入，失败直接返回，不重试
func (a *Adapter) Save(ctx context.Context, rec form.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal form data: %w", err)
	}

	start := time.Now()
	err = a.store.SetItem(ctx, a.key, string(data))
	metrics.RecordStorageWrite(ctx, time.Since(start).Seconds(), err == nil)
	if err != nil {
		return fmt.Errorf("save form data: %w", err)
	}
	return nil
}

// Load 读取并反序列化记录。键不存在、读取失败或解析失败都返回 ok=false，
// 调用方使用默认记录；读失败只记日志，不向用户暴露。
func (a *Adapter) Load(ctx context.Context) (form.Record, bool) {
	raw, ok, err := a.store.GetItem(ctx, a.key)
	if err != nil {
		logger.Logger.Warn("Failed to read stored form data, using defaults",
			zap.String("key", a.key),
			zap.Error(err),
		)
		metrics.RecordStorageFallback(ctx, "read_error")
		return form.DefaultRecord(), false
	}
	if !ok {
		return form.DefaultRecord(), false
	}

	// 缺失的键保持零值，记录始终完整
	rec := form.DefaultRecord()
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		logger.Logger.Warn("Stored form data is not valid JSON, using defaults",
			zap.String("key", a.key),
			zap.Error(err),
		)
		metrics.RecordStorageFallback(ctx, "parse_error")
		return form.DefaultRecord(), false
	}

	return rec, true
}
