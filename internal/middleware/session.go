package middleware

import (
	"context"
	"net/http"
	"sync"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/sessions"
	"github.com/hertz-contrib/sessions/cookie"

	"MultiStepForm/config"
	"MultiStepForm/internal/wizard"
)

const (
	sessionVisitorKey = "visitor_id"
	sessionStepKey    = "step"
)

var (
	sessionStore     sessions.Store
	sessionStoreOnce sync.Once
)

func initSessionStore() {
	sessionStoreOnce.Do(func() {
		cfg := config.Cfg
		store := cookie.NewStore([]byte(cfg.SessionSecret))
		store.Options(sessions.Options{
			Path:     "/",
			MaxAge:   cfg.SessionMaxAge,
			HttpOnly: true,
			Secure:   cfg.IsProduction(),
			SameSite: http.SameSiteLaxMode,
		})
		sessionStore = store
	})
}

// SessionMiddleware 签名 cookie 会话，保存访客 ID 和当前步骤
func SessionMiddleware() app.HandlerFunc {
	initSessionStore()
	return sessions.New(config.Cfg.SessionName, sessionStore)
}

// CurrentStep 会话中的当前步骤，没有或非法时返回第一步
func CurrentStep(c *app.RequestContext) wizard.Step {
	raw, _ := sessions.Default(c).Get(sessionStepKey).(string)
	step, ok := wizard.ParseStep(raw)
	if !ok {
		return wizard.First()
	}
	return step
}

// SaveStep 把步骤写回会话
func SaveStep(ctx context.Context, c *app.RequestContext, step wizard.Step) error {
	session := sessions.Default(c)
	session.Set(sessionStepKey, step.String())
	return session.Save()
}
