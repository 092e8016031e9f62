package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"MultiStepForm/config"
	"MultiStepForm/internal/handler"
	"MultiStepForm/internal/middleware"
)

func Register(h *server.Hertz) {
	cfg := config.Cfg

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.RequestIDMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	h.GET("/health", handler.Health)
	h.GET("/", func(ctx context.Context, c *app.RequestContext) {
		c.Redirect(consts.StatusFound, []byte(handler.WizardPath))
	})

	// 访客会话：签名 cookie 保存访客 ID 和当前步骤
	visitor := []app.HandlerFunc{middleware.SessionMiddleware(), middleware.VisitorMiddleware()}
	if limiter := middleware.RateLimit(); limiter != nil {
		visitor = append(visitor, limiter.Middleware())
	}

	// HTML 向导
	pages := h.Group(handler.WizardPath, visitor...)
	if cfg.CSRFEnabled {
		pages.Use(middleware.CSRFMiddleware())
	}
	{
		pages.GET("", handler.ShowWizard)
		pages.POST("/next", handler.SubmitWizardStep)
		pages.POST("/previous", handler.PreviousWizardStep)
	}

	// JSON 接口，跨域只放行配置的来源
	v1 := h.Group("/v1", middleware.CORSMiddleware(cfg.CORSAllowOrigins))
	v1.OPTIONS("/*path", func(ctx context.Context, c *app.RequestContext) {
		c.AbortWithStatus(consts.StatusNoContent)
	})

	wizard := v1.Group("/wizard", visitor...)
	{
		wizard.GET("", handler.GetWizardState)
		wizard.POST("/next", handler.SubmitWizardStepJSON)
		wizard.POST("/previous", handler.PreviousWizardStepJSON)
	}
}
