package persistence

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"MultiStepForm/internal/form"
	"MultiStepForm/internal/model"
)

// newTestDB 内存 sqlite，单连接保证所有查询落在同一个库上
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&model.FormDataBlob{}))
	return db
}

func TestDatabaseStoreGetMissing(t *testing.T) {
	store := NewDatabaseStore(newTestDB(t))

	value, ok, err := store.GetItem(context.Background(), "msf:multistep_form_data:1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestDatabaseStoreSetOverwriteGet(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := NewDatabaseStore(db)
	key := "msf:multistep_form_data:1"

	require.NoError(t, store.SetItem(ctx, key, `{"name":"A"}`))
	value, ok, err := store.GetItem(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"name":"A"}`, value)

	var first model.FormDataBlob
	require.NoError(t, db.Take(&first, map[string]interface{}{"key": key}).Error)

	require.NoError(t, store.SetItem(ctx, key, `{"name":"B"}`))
	value, ok, err = store.GetItem(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"name":"B"}`, value)

	// 覆盖写只更新 value 和 updated_at
	var count int64
	require.NoError(t, db.Model(&model.FormDataBlob{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var second model.FormDataBlob
	require.NoError(t, db.Take(&second, map[string]interface{}{"key": key}).Error)
	assert.True(t, second.CreatedAt.Equal(first.CreatedAt))
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
}

func TestDatabaseStoreKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := NewDatabaseStore(newTestDB(t))

	require.NoError(t, store.SetItem(ctx, "msf:multistep_form_data:1", "one"))
	require.NoError(t, store.SetItem(ctx, "msf:multistep_form_data:2", "two"))

	value, ok, err := store.GetItem(ctx, "msf:multistep_form_data:1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "one", value)

	_, ok, err = store.GetItem(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok, "empty key must not match an arbitrary row")
}

func TestDatabaseStoreBehindAdapter(t *testing.T) {
	ctx := context.Background()
	adapter := NewAdapter(NewDatabaseStore(newTestDB(t)), "1")

	rec, ok := adapter.Load(ctx)
	assert.False(t, ok)
	assert.Equal(t, form.DefaultRecord(), rec)

	want := form.Record{Name: "Yago Cunha", Email: "yago@gmail.com", Number: form.Float(100)}
	require.NoError(t, adapter.Save(ctx, want))

	got, ok := adapter.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, want, got)
}
