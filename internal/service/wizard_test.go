package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MultiStepForm/internal/form"
	"MultiStepForm/internal/persistence"
	"MultiStepForm/internal/wizard"
	pkgerrors "MultiStepForm/pkg/errors"
)

type readOnlyStore struct {
	*persistence.MemoryStore
}

func (readOnlyStore) SetItem(ctx context.Context, key, value string) error {
	return errors.New("quota exceeded")
}

func TestWizardHappyPath(t *testing.T) {
	ctx := context.Background()
	kv := persistence.NewMemoryStore()
	svc := NewWizardService(kv)
	store := svc.Open(ctx, "v1", wizard.StepPersonalInfo)

	errs, err := svc.Next(ctx, store, form.Input{"name": "Yago Cunha", "email": "yago@gmail.com"})
	require.NoError(t, err)
	require.Empty(t, errs)
	assert.Equal(t, wizard.StepAddress, store.Step())

	errs, err = svc.Next(ctx, store, form.Input{"street": "Paulista Avenue", "number": "100"})
	require.NoError(t, err)
	require.Empty(t, errs)
	assert.Equal(t, wizard.StepPreferences, store.Step())

	errs, err = svc.Next(ctx, store, form.Input{"receiveMarketingEmails": "on"})
	require.NoError(t, err)
	require.Empty(t, errs)
	assert.Equal(t, wizard.StepReview, store.Step())

	want := form.Record{
		Name:                   "Yago Cunha",
		Email:                  "yago@gmail.com",
		Street:                 "Paulista Avenue",
		Number:                 form.Float(100),
		ReceiveMarketingEmails: true,
		ReceiveNotifications:   false,
	}
	assert.Equal(t, want, store.Snapshot().Record)

	// 重新打开会读到同一条记录
	reopened := svc.Open(ctx, "v1", wizard.StepReview)
	assert.Equal(t, want, reopened.Snapshot().Record)

	// 其他访客互不影响
	other := svc.Open(ctx, "v2", wizard.StepPersonalInfo)
	assert.Equal(t, form.DefaultRecord(), other.Snapshot().Record)
}

func TestWizardInvalidSubmitDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	kv := persistence.NewMemoryStore()
	svc := NewWizardService(kv)
	store := svc.Open(ctx, "v1", wizard.StepPersonalInfo)

	errs, err := svc.Next(ctx, store, form.Input{"name": "", "email": ""})
	require.NoError(t, err)
	require.Len(t, errs, 2)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "String must contain at least 1 character(s)", errs[0].Message)
	assert.Equal(t, "email", errs[1].Field)
	assert.Equal(t, "Invalid email", errs[1].Message)

	assert.Equal(t, wizard.StepPersonalInfo, store.Step())
	assert.Zero(t, kv.Len())
}

func TestWizardReviewNextIsNoop(t *testing.T) {
	ctx := context.Background()
	kv := persistence.NewMemoryStore()
	svc := NewWizardService(kv)
	store := svc.Open(ctx, "v1", wizard.StepReview)

	errs, err := svc.Next(ctx, store, form.Input{"name": "ignored"})
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, wizard.StepReview, store.Step())
	assert.Zero(t, kv.Len())
}

func TestWizardPreviousKeepsRecord(t *testing.T) {
	ctx := context.Background()
	kv := persistence.NewMemoryStore()
	svc := NewWizardService(kv)
	store := svc.Open(ctx, "v1", wizard.StepPersonalInfo)

	_, err := svc.Next(ctx, store, form.Input{"name": "A", "email": "a@a.com"})
	require.NoError(t, err)
	before := store.Snapshot().Record

	svc.Previous(ctx, store)
	assert.Equal(t, wizard.StepPersonalInfo, store.Step())
	svc.Previous(ctx, store)
	assert.Equal(t, wizard.StepPersonalInfo, store.Step())
	assert.Equal(t, before, store.Snapshot().Record)
}

func TestWizardStorageWriteFailure(t *testing.T) {
	ctx := context.Background()
	svc := NewWizardService(readOnlyStore{persistence.NewMemoryStore()})
	store := svc.Open(ctx, "v1", wizard.StepPersonalInfo)

	errs, err := svc.Next(ctx, store, form.Input{"name": "A", "email": "a@a.com"})
	assert.Empty(t, errs)
	require.Error(t, err)
	assert.ErrorIs(t, err, pkgerrors.StorageWriteFailed)

	assert.Equal(t, wizard.StepPersonalInfo, store.Step())
	assert.Equal(t, form.DefaultRecord(), store.Snapshot().Record)
}
