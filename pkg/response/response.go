package response

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"MultiStepForm/pkg/errors"
)

// ErrorResponse 统一的错误响应格式
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Details map[string]interface{} `json:"details,omitempty"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
}

// SuccessResponse 统一的成功响应格式
type SuccessResponse struct {
	Data interface{}            `json:"data"`
}

// StatusFor 根据错误码映射 HTTP 状态码
func StatusFor(err error) int {
	var def errors.Definition
	if !stderrors.As(err, &def) {
		return http.StatusInternalServerError
	}

	switch def.Code {
	case errors.TooManyRequests.Code:
		return http.StatusTooManyRequests // 429
	case errors.InvalidRequest.Code:
		return http.StatusBadRequest // 400
	case errors.UnsupportedMediaType.Code:
		return http.StatusUnsupportedMediaType // 415
	case errors.CSRFInvalid.Code, errors.SessionInvalid.Code:
		return http.StatusForbidden // 403
	case errors.StepMismatch.Code:
		return http.StatusConflict // 409
	case errors.ValidationFailed.Code:
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}

func describe(err error) (string, string) {
	var def errors.Definition
	if stderrors.As(err, &def) {
		return def.Code, def.Message
	}
	return errors.InternalServerError.Code, err.Error()
}

// Error 返回错误响应
func Error(ctx context.Context, c *app.RequestContext, err error) {
	ErrorWithDetails(ctx, c, err, nil)
}

func ErrorWithDetails(ctx context.Context, c *app.RequestContext, err error, details map[string]interface{}) {
	code, message := describe(err)

	c.JSON(StatusFor(err), ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func Success(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
	})
}

func BindError(ctx context.Context, c *app.RequestContext, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{
			Code:    errors.InvalidRequest.Code,
			Message: err.Error(),
		},
	})
}

// HTML 返回渲染好的页面
func HTML(ctx context.Context, c *app.RequestContext, status int, body []byte) {
	c.Data(status, "text/html; charset=utf-8", body)
}

// SeeOther 表单提交成功后重定向，避免刷新时重复提交
func SeeOther(ctx context.Context, c *app.RequestContext, location string) {
	c.Redirect(http.StatusSeeOther, []byte(location))
}
