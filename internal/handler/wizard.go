package handler

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"go.uber.org/zap"

	"MultiStepForm/internal/form"
	"MultiStepForm/internal/middleware"
	"MultiStepForm/internal/service"
	"MultiStepForm/internal/view"
	"MultiStepForm/internal/wizard"
	"MultiStepForm/pkg/errors"
	"MultiStepForm/pkg/logger"
	"MultiStepForm/pkg/response"
)

// WizardPath HTML 向导入口
const WizardPath = "/wizard"

// stepField 表单和 JSON 请求里携带的步骤名，用来识别过期页面
const stepField = "step"

// openStore 按会话里的访客和步骤构建 Store
func openStore(ctx context.Context, c *app.RequestContext) (*wizard.Store, bool) {
	visitorID, ok := middleware.GetVisitorID(ctx, c)
	if !ok {
		return nil, false
	}
	return service.Wizard().Open(ctx, visitorID, middleware.CurrentStep(c)), true
}

// renderPage 渲染整个页面
func renderPage(ctx context.Context, c *app.RequestContext, status int, page view.Page) {
	page.CSRFToken = middleware.CSRFToken(c)

	body, err := view.Render(ctx, page)
	if err != nil {
		logger.Logger.Error("Failed to render wizard page",
			zap.String("step", page.Step.String()),
			zap.Error(err),
		)
		_ = c.Error(err)
		c.String(consts.StatusInternalServerError, errors.InternalServerError.Message)
		return
	}

	response.HTML(ctx, c, status, body)
}

// formInput 只读取当前步骤的字段；未勾选的复选框不会出现在表单里
func formInput(c *app.RequestContext, slice form.Slice) form.Input {
	in := form.Input{}
	for _, field := range slice.Fields() {
		if value, ok := c.GetPostForm(field); ok {
			in[field] = value
		}
	}
	return in
}

// isStale 提交的步骤与会话不一致，通常来自旧标签页或浏览器后退
func isStale(submitted string, current wizard.Step) bool {
	return submitted != "" && submitted != current.String()
}

func saveStep(ctx context.Context, c *app.RequestContext, store *wizard.Store) bool {
	if err := middleware.SaveStep(ctx, c, store.Step()); err != nil {
		logger.Logger.Error("Failed to save session step", zap.Error(err))
		return false
	}
	return true
}

// ShowWizard 渲染会话当前步骤
func ShowWizard(ctx context.Context, c *app.RequestContext) {
	store, ok := openStore(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.SessionInvalid)
		return
	}

	state := store.Snapshot()
	renderPage(ctx, c, http.StatusOK, view.Page{Step: state.Step, Record: state.Record})
}

// SubmitWizardStep 提交当前步骤。校验失败时 422 并回显输入和错误，成功后 303 回到向导。
func SubmitWizardStep(ctx context.Context, c *app.RequestContext) {
	store, ok := openStore(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.SessionInvalid)
		return
	}

	current := store.Step()
	if submitted := c.PostForm(stepField); isStale(submitted, current) {
		logger.Logger.Info("Ignoring submit from stale page",
			zap.String("submitted", submitted),
			zap.String("current", current.String()),
		)
		response.SeeOther(ctx, c, WizardPath)
		return
	}

	var in form.Input
	if slice, ok := current.Slice(); ok {
		in = formInput(c, slice)
	}

	fieldErrs, err := service.Wizard().Next(ctx, store, in)
	if err != nil {
		_ = c.Error(err)
		c.String(response.StatusFor(err), errors.StorageWriteFailed.Message)
		return
	}
	if len(fieldErrs) > 0 {
		state := store.Snapshot()
		renderPage(ctx, c, http.StatusUnprocessableEntity, view.Page{
			Step:   state.Step,
			Record: state.Record,
			Input:  in,
			Errors: fieldErrs,
		})
		return
	}

	if !saveStep(ctx, c, store) {
		c.String(consts.StatusInternalServerError, errors.InternalServerError.Message)
		return
	}
	response.SeeOther(ctx, c, WizardPath)
}

// PreviousWizardStep 后退一步，不校验也不保存输入
func PreviousWizardStep(ctx context.Context, c *app.RequestContext) {
	store, ok := openStore(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.SessionInvalid)
		return
	}

	if submitted := c.PostForm(stepField); isStale(submitted, store.Step()) {
		response.SeeOther(ctx, c, WizardPath)
		return
	}

	service.Wizard().Previous(ctx, store)
	if !saveStep(ctx, c, store) {
		c.String(consts.StatusInternalServerError, errors.InternalServerError.Message)
		return
	}
	response.SeeOther(ctx, c, WizardPath)
}
