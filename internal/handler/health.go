package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"MultiStepForm/config"
)

// Health 存活检查
func Health(ctx context.Context, c *app.RequestContext) {
	c.JSON(consts.StatusOK, utils.H{
		"status":  "ok",
		"service": config.Cfg.ServiceName,
		"version": config.Cfg.ServiceVersion,
	})
}
