package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"MultiStepForm/internal/form"
	"MultiStepForm/internal/persistence"
	"MultiStepForm/internal/wizard"
	pkgerrors "MultiStepForm/pkg/errors"
	"MultiStepForm/pkg/logger"
	"MultiStepForm/pkg/metrics"
	"MultiStepForm/storage"
)

var (
	wizardService *WizardService
	wizardOnce    sync.Once
)

// Wizard 返回使用全局表单存储的单例，需先调用 storage.Init
func Wizard() *WizardService {
	wizardOnce.Do(func() {
		wizardService = NewWizardService(storage.FormStore())
	})
	return wizardService
}

// WizardService 向导的提交与导航逻辑
type WizardService struct {
	kv persistence.KVStore
}

func NewWizardService(kv persistence.KVStore) *WizardService {
	return &WizardService{kv: kv}
}

// Open 为访客构建本次请求的 Store，记录只读取一次
func (s *WizardService) Open(ctx context.Context, visitorID string, step wizard.Step) *wizard.Store {
	return wizard.NewStore(ctx, persistence.NewAdapter(s.kv, visitorID), step)
}

// Next 校验当前步骤的字段；失败时返回字段错误，不合并也不前进。
// 成功时先持久化合并结果再前进。Review 没有字段，只尝试前进。
func (s *WizardService) Next(ctx context.Context, store *wizard.Store, in form.Input) (form.FieldErrors, error) {
	current := store.Step()

	slice, ok := current.Slice()
	if !ok {
		if !store.Advance() {
			logger.Logger.Info("Next requested on last step, nothing to do",
				zap.String("step", current.String()),
			)
		}
		return nil, nil
	}

	patch, err := form.Validate(slice, in)
	if err != nil {
		var fieldErrs form.FieldErrors
		if stderrors.As(err, &fieldErrs) {
			metrics.RecordStepSubmitted(ctx, current.String(), "invalid")
			for _, fe := range fieldErrs {
				metrics.RecordValidationFailure(ctx, current.String(), fe.Field)
			}
			return fieldErrs, nil
		}
		return nil, err
	}

	if err := store.MergeUpdate(ctx, patch); err != nil {
		metrics.RecordStepSubmitted(ctx, current.String(), "storage_error")
		logger.Logger.Error("Failed to persist form data",
			zap.String("step", current.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", pkgerrors.StorageWriteFailed, err)
	}
	metrics.RecordStepSubmitted(ctx, current.String(), "ok")

	if store.Advance() {
		metrics.RecordStepTransition(ctx, current.String(), store.Step().String(), "next")
	}
	return nil, nil
}

// Previous 后退一步，不校验也不修改记录
func (s *WizardService) Previous(ctx context.Context, store *wizard.Store) {
	from := store.Step()
	if store.Retreat() {
		metrics.RecordStepTransition(ctx, from.String(), store.Step().String(), "previous")
	}
}
