package middleware

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/csrf"
	"go.uber.org/zap"

	"MultiStepForm/config"
	"MultiStepForm/pkg/errors"
	"MultiStepForm/pkg/logger"
	"MultiStepForm/pkg/response"
)

// CSRFFormField 表单中 token 的字段名
const CSRFFormField = "csrf"

// CSRFMiddleware HTML 表单的 CSRF 校验，依赖 SessionMiddleware 先执行
func CSRFMiddleware() app.HandlerFunc {
	return csrf.New(
		csrf.WithSecret(config.Cfg.CSRFSecret),
		csrf.WithKeyLookUp("form:"+CSRFFormField),
		csrf.WithErrorFunc(func(ctx context.Context, c *app.RequestContext) {
			logger.Logger.Warn("CSRF validation failed",
				zap.String("path", string(c.Path())),
				zap.String("client_ip", c.ClientIP()),
			)
			response.Error(ctx, c, errors.CSRFInvalid)
			c.Abort()
		}),
	)
}

// CSRFToken 当前会话的 token，未启用 CSRF 时为空
func CSRFToken(c *app.RequestContext) string {
	if !config.Cfg.CSRFEnabled {
		return ""
	}
	return csrf.GetToken(c)
}
