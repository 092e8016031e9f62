package middleware

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/sessions"
	"go.uber.org/zap"

	"MultiStepForm/pkg/errors"
	"MultiStepForm/pkg/logger"
	"MultiStepForm/pkg/response"
	"MultiStepForm/pkg/snowflake"
)

const visitorIDKey = "visitor_id"

// VisitorMiddleware 确保会话里有访客 ID，首次访问时用 snowflake 生成
func VisitorMiddleware() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		session := sessions.Default(c)

		visitorID, _ := session.Get(sessionVisitorKey).(string)
		if visitorID == "" {
			id, err := snowflake.NextID()
			if err != nil {
				logger.Logger.Error("Failed to generate visitor id", zap.Error(err))
				response.Error(ctx, c, errors.InternalServerError)
				c.Abort()
				return
			}

			visitorID = strconv.FormatInt(id, 10)
			session.Set(sessionVisitorKey, visitorID)
			if err := session.Save(); err != nil {
				logger.Logger.Error("Failed to save session", zap.Error(err))
				response.Error(ctx, c, errors.SessionInvalid)
				c.Abort()
				return
			}
		}

		c.Set(visitorIDKey, visitorID)
		c.Next(ctx)
	}
}

// GetVisitorID 从上下文中获取访客 ID
func GetVisitorID(ctx context.Context, c *app.RequestContext) (string, bool) {
	visitorID := c.GetString(visitorIDKey)
	return visitorID, visitorID != ""
}
