package view

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"MultiStepForm/internal/wizard"
)

// PageTitle 页面标题
const PageTitle = "Simple multi-step form"

// Shell 页面外壳，按当前步骤选择唯一的步骤视图
func Shell(p Page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		step, err := stepView(p)
		if err != nil {
			return err
		}

		h := &html{w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		h.text(PageTitle)
		h.raw(`</title></head><body><main><h1>`)
		h.text(PageTitle)
		h.raw(`</h1><p class="progress">`)
		h.text(fmt.Sprintf("Step %d of %d", p.Step.Position(), len(wizard.Steps)))
		h.raw(`</p>`)
		if h.err != nil {
			return h.err
		}
		if err := step.Render(ctx, w); err != nil {
			return err
		}
		h.raw(`</main></body></html>`)
		return h.err
	})
}

func stepView(p Page) (templ.Component, error) {
	switch p.Step {
	case wizard.StepPersonalInfo:
		return PersonalInformation(p), nil
	case wizard.StepAddress:
		return Address(p), nil
	case wizard.StepPreferences:
		return Preferences(p), nil
	case wizard.StepReview:
		return Review(p), nil
	default:
		return nil, fmt.Errorf("unknown step %q", p.Step)
	}
}
