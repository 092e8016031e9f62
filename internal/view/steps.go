package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func hiddenFields(h *html, p Page) {
	h.raw(`<input type="hidden" name="csrf"`)
	h.attr("value", p.CSRFToken)
	h.raw(`>`)
	h.raw(`<input type="hidden" name="step"`)
	h.attr("value", p.Step.String())
	h.raw(`>`)
}

func textInput(h *html, p Page, field, kind string) {
	h.raw(`<div class="field"><input`)
	h.attr("type", kind)
	h.attr("name", field)
	h.attr("id", field)
	h.attr("placeholder", field)
	h.attr("value", p.value(field))
	h.raw(`></div>`)
}

func checkbox(h *html, p Page, field, label string) {
	h.raw(`<div class="field"><label><input type="checkbox"`)
	h.attr("name", field)
	h.attr("id", field)
	if p.checked(field) {
		h.raw(` checked`)
	}
	h.raw(`> `)
	h.text(label)
	h.raw(`</label></div>`)
}

// errorList 每条错误渲染为 "field: message"
func errorList(h *html, p Page) {
	if len(p.Errors) == 0 {
		return
	}
	h.raw(`<ul class="errors">`)
	for _, fe := range p.Errors {
		h.raw(`<li>`)
		h.text(fe.Field + ": " + fe.Message)
		h.raw(`</li>`)
	}
	h.raw(`</ul>`)
}

func buttons(h *html, withPrevious bool) {
	h.raw(`<div class="actions">`)
	if withPrevious {
		h.raw(`<button type="submit" formaction="/wizard/previous">Previous</button>`)
	}
	h.raw(`<button type="submit" formaction="/wizard/next">Next</button></div>`)
}

func stepForm(p Page, body func(h *html)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &html{w: w}
		h.raw(`<section`)
		h.attr("data-step", p.Step.String())
		h.raw(`><h2>`)
		h.text(p.Step.Title())
		h.raw(`</h2><form method="post" action="/wizard/next">`)
		hiddenFields(h, p)
		body(h)
		h.raw(`</form></section>`)
		return h.err
	})
}

// PersonalInformation 第一步，没有 Previous
func PersonalInformation(p Page) templ.Component {
	return stepForm(p, func(h *html) {
		textInput(h, p, "name", "text")
		textInput(h, p, "email", "text")
		errorList(h, p)
		buttons(h, false)
	})
}

func Address(p Page) templ.Component {
	return stepForm(p, func(h *html) {
		textInput(h, p, "street", "text")
		textInput(h, p, "number", "number")
		errorList(h, p)
		buttons(h, true)
	})
}

// Preferences 未勾选的复选框不会提交，按 false 处理
func Preferences(p Page) templ.Component {
	return stepForm(p, func(h *html) {
		checkbox(h, p, "receiveMarketingEmails", "Receive marketing emails")
		checkbox(h, p, "receiveNotifications", "Receive notifications")
		errorList(h, p)
		buttons(h, true)
	})
}

// Review 只读展示全部字段
func Review(p Page) templ.Component {
	return stepForm(p, func(h *html) {
		rows := [][2]string{
			{"Name", p.Record.Name},
			{"Email", p.Record.Email},
			{"Street", p.Record.Street},
			{"Number", formatNumber(p.Record.Number)},
			{"Receive marketings", yesNo(p.Record.ReceiveMarketingEmails)},
			{"Receive notifications", yesNo(p.Record.ReceiveNotifications)},
		}
		h.raw(`<dl class="review">`)
		for _, row := range rows {
			h.raw(`<div><dt>`)
			h.text(row[0] + ":")
			h.raw(`</dt><dd>`)
			h.text(row[1])
			h.raw(`</dd></div>`)
		}
		h.raw(`</dl>`)
		buttons(h, true)
	})
}
