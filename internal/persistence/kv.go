package persistence

import "context"

// KVStore 是表单数据落地的键值存储，对应浏览器里的持久化 key-value 存储。
// GetItem 在键不存在时返回 ok=false 且 err=nil。
type KVStore interface {
	GetItem(ctx context.Context, key string) (value string, ok bool, err error)
	SetItem(ctx context.Context, key, value string) error
}
