package handler

import (
	"context"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"

	"MultiStepForm/internal/form"
	"MultiStepForm/internal/service"
	"MultiStepForm/internal/wizard"
	"MultiStepForm/pkg/errors"
	"MultiStepForm/pkg/response"
)

// WizardState JSON 接口返回的向导状态
type WizardState struct {
	Step   wizard.Step   `json:"step"`
	Title  string        `json:"title"`
	Steps  []wizard.Step `json:"steps"`
	Record form.Record   `json:"record"`
}

func newWizardState(store *wizard.Store) WizardState {
	state := store.Snapshot()
	return WizardState{
		Step:   state.Step,
		Title:  state.Step.Title(),
		Steps:  wizard.Steps,
		Record: state.Record,
	}
}

// GetWizardState 获取当前步骤和已保存的记录
func GetWizardState(ctx context.Context, c *app.RequestContext) {
	store, ok := openStore(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.SessionInvalid)
		return
	}
	response.Success(ctx, c, newWizardState(store))
}

// isJSON 只接受 application/json。text/plain 之类的简单请求浏览器跨站也能发出
func isJSON(c *app.RequestContext) bool {
	mediaType := strings.SplitN(string(c.ContentType()), ";", 2)[0]
	return strings.EqualFold(strings.TrimSpace(mediaType), "application/json")
}

// bindInput 空请求体视为空对象
func bindInput(c *app.RequestContext) (form.Input, error) {
	if !isJSON(c) {
		return nil, errors.UnsupportedMediaType
	}
	in := form.Input{}
	if len(c.Request.Body()) == 0 {
		return in, nil
	}
	if err := c.BindJSON(&in); err != nil {
		return nil, err
	}
	return in, nil
}

// checkStep 请求里的 step 必须是字符串且等于当前步骤
func checkStep(in form.Input, current wizard.Step) error {
	raw, ok := in[stepField]
	if !ok {
		return nil
	}
	submitted, isString := raw.(string)
	if !isString {
		return errors.InvalidRequest
	}
	if isStale(submitted, current) {
		return errors.StepMismatch
	}
	return nil
}

// SubmitWizardStepJSON 提交当前步骤
func SubmitWizardStepJSON(ctx context.Context, c *app.RequestContext) {
	store, ok := openStore(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.SessionInvalid)
		return
	}

	in, err := bindInput(c)
	if err == errors.UnsupportedMediaType {
		response.Error(ctx, c, err)
		return
	}
	if err != nil {
		response.BindError(ctx, c, err)
		return
	}
	if err := checkStep(in, store.Step()); err != nil {
		response.ErrorWithDetails(ctx, c, err, map[string]interface{}{
			"current": store.Step().String(),
		})
		return
	}
	delete(in, stepField)

	fieldErrs, err := service.Wizard().Next(ctx, store, in)
	if err != nil {
		_ = c.Error(err)
		response.Error(ctx, c, errors.StorageWriteFailed)
		return
	}
	if len(fieldErrs) > 0 {
		response.ErrorWithDetails(ctx, c, errors.ValidationFailed, fieldErrs.Details())
		return
	}

	if !saveStep(ctx, c, store) {
		response.Error(ctx, c, errors.SessionInvalid)
		return
	}
	response.Success(ctx, c, newWizardState(store))
}

// PreviousWizardStepJSON 后退一步
func PreviousWizardStepJSON(ctx context.Context, c *app.RequestContext) {
	store, ok := openStore(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.SessionInvalid)
		return
	}

	in, err := bindInput(c)
	if err == errors.UnsupportedMediaType {
		response.Error(ctx, c, err)
		return
	}
	if err != nil {
		response.BindError(ctx, c, err)
		return
	}
	if err := checkStep(in, store.Step()); err != nil {
		response.ErrorWithDetails(ctx, c, err, map[string]interface{}{
			"current": store.Step().String(),
		})
		return
	}

	service.Wizard().Previous(ctx, store)
	if !saveStep(ctx, c, store) {
		response.Error(ctx, c, errors.SessionInvalid)
		return
	}
	response.Success(ctx, c, newWizardState(store))
}
