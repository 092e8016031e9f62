package view

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"MultiStepForm/internal/form"
	"MultiStepForm/internal/wizard"
)

// Page 渲染一个步骤所需的数据
type Page struct {
	Step   wizard.Step
	Record form.Record
	// Input 校验失败时用户提交的原始值，优先于 Record 回填
	Input     form.Input
	Errors    form.FieldErrors
	CSRFToken string
}

// value 输入框回填值
func (p Page) value(field string) string {
	if p.Input != nil {
		if raw, ok := p.Input[field]; ok {
			return fmt.Sprint(raw)
		}
	}

	switch field {
	case "name":
		return p.Record.Name
	case "email":
		return p.Record.Email
	case "street":
		return p.Record.Street
	case "number":
		return formatNumber(p.Record.Number)
	}
	return ""
}

func (p Page) checked(field string) bool {
	if p.Input != nil {
		if raw, ok := p.Input[field]; ok {
			switch v := raw.(type) {
			case bool:
				return v
			case string:
				return v == "on" || v == "true" || v == "1" || v == "yes"
			}
			return false
		}
	}

	switch field {
	case "receiveMarketingEmails":
		return p.Record.ReceiveMarketingEmails
	case "receiveNotifications":
		return p.Record.ReceiveNotifications
	}
	return false
}

func formatNumber(n *float64) string {
	if n == nil {
		return ""
	}
	return strconv.FormatFloat(*n, 'f', -1, 64)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// Render 渲染成完整页面
func Render(ctx context.Context, p Page) ([]byte, error) {
	var buf bytes.Buffer
	if err := Shell(p).Render(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// html 拼接标签时统一转义
type html struct {
	w   io.Writer
	err error
}

func (h *html) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *html) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *html) attr(name, value string) {
	h.raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}
