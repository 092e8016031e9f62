package view

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MultiStepForm/internal/form"
	"MultiStepForm/internal/wizard"
)

func render(t *testing.T, p Page) string {
	t.Helper()
	body, err := Render(context.Background(), p)
	require.NoError(t, err)
	return string(body)
}

func TestShellRendersExactlyOneStep(t *testing.T) {
	for _, step := range wizard.Steps {
		t.Run(step.String(), func(t *testing.T) {
			html := render(t, Page{Step: step, Record: form.DefaultRecord()})
			assert.Contains(t, html, "<h1>Simple multi-step form</h1>")
			assert.Equal(t, 1, strings.Count(html, "data-step="))
			assert.Contains(t, html, `data-step="`+step.String()+`"`)
			assert.Contains(t, html, step.Title())
		})
	}
}

func TestShellRejectsUnknownStep(t *testing.T) {
	_, err := Render(context.Background(), Page{Step: "payment"})
	assert.Error(t, err)
}

func TestPreviousHiddenOnFirstStep(t *testing.T) {
	html := render(t, Page{Step: wizard.StepPersonalInfo})
	assert.NotContains(t, html, "Previous")
	assert.Contains(t, html, "Next")

	for _, step := range wizard.Steps[1:] {
		assert.Contains(t, render(t, Page{Step: step}), "Previous", step)
	}
}

func TestInputsArePrefilled(t *testing.T) {
	rec := form.Record{
		Name:   "Yago Cunha",
		Email:  "yago@gmail.com",
		Street: "Paulista Avenue",
		Number: form.Float(100),
	}

	html := render(t, Page{Step: wizard.StepPersonalInfo, Record: rec, CSRFToken: "tok"})
	assert.Contains(t, html, `name="name" id="name" placeholder="name" value="Yago Cunha"`)
	assert.Contains(t, html, `placeholder="email" value="yago@gmail.com"`)
	assert.Contains(t, html, `name="csrf" value="tok"`)
	assert.Contains(t, html, `name="step" value="personal-info"`)

	html = render(t, Page{Step: wizard.StepAddress, Record: rec})
	assert.Contains(t, html, `placeholder="street" value="Paulista Avenue"`)
	assert.Contains(t, html, `placeholder="number" value="100"`)
}

func TestRejectedInputWinsOverRecord(t *testing.T) {
	html := render(t, Page{
		Step:   wizard.StepPersonalInfo,
		Record: form.Record{Name: "Old"},
		Input:  form.Input{"name": "", "email": "bad"},
		Errors: form.FieldErrors{
			{Field: "name", Message: "String must contain at least 1 character(s)"},
			{Field: "email", Message: "Invalid email"},
		},
	})
	assert.Contains(t, html, `placeholder="name" value=""`)
	assert.Contains(t, html, `placeholder="email" value="bad"`)
	assert.Contains(t, html, "<li>name: String must contain at least 1 character(s)</li>")
	assert.Contains(t, html, "<li>email: Invalid email</li>")
}

func TestPreferencesCheckboxes(t *testing.T) {
	html := render(t, Page{Step: wizard.StepPreferences, Record: form.Record{ReceiveNotifications: true}})
	assert.Contains(t, html, `name="receiveNotifications" id="receiveNotifications" checked`)
	assert.NotContains(t, html, `name="receiveMarketingEmails" id="receiveMarketingEmails" checked`)
}

func TestReviewShowsEveryField(t *testing.T) {
	html := render(t, Page{Step: wizard.StepReview, Record: form.Record{
		Name:                   "Yago Cunha",
		Email:                  "yago@gmail.com",
		Street:                 "Paulista Avenue",
		Number:                 form.Float(100),
		ReceiveMarketingEmails: true,
	}})

	assert.Contains(t, html, "Yago Cunha")
	assert.Contains(t, html, "yago@gmail.com")
	assert.Contains(t, html, "Paulista Avenue")
	assert.Contains(t, html, "<dd>100</dd>")
	assert.Contains(t, html, "<dt>Receive marketings:</dt><dd>Yes</dd>")
	assert.Contains(t, html, "<dt>Receive notifications:</dt><dd>No</dd>")
	assert.NotContains(t, html, "<input type=\"text\"")
}

func TestReviewNullNumberIsEmpty(t *testing.T) {
	html := render(t, Page{Step: wizard.StepReview, Record: form.DefaultRecord()})
	assert.Contains(t, html, "<dt>Number:</dt><dd></dd>")
}

func TestValuesAreEscaped(t *testing.T) {
	html := render(t, Page{Step: wizard.StepPersonalInfo, Record: form.Record{Name: `"><script>`}})
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}
