package form

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePersonalInformation(t *testing.T) {
	tests := []struct {
		name       string
		input      Input
		wantErrors map[string]string
	}{
		{
			name:  "valid",
			input: Input{"name": "Yago Cunha", "email": "yago@gmail.com"},
		},
		{
			name:  "empty submission reports both fields",
			input: Input{},
			wantErrors: map[string]string{
				"name":  "String must contain at least 1 character(s)",
				"email": "Invalid email",
			},
		},
		{
			name:       "malformed email",
			input:      Input{"name": "A", "email": "not-an-email"},
			wantErrors: map[string]string{"email": "Invalid email"},
		},
		{
			name:       "non string name from json",
			input:      Input{"name": 12.0, "email": "a@a.com"},
			wantErrors: map[string]string{"name": "Expected string, received number"},
		},
		{
			name:  "fields of other steps are ignored",
			input: Input{"name": "A", "email": "a@a.com", "street": "", "number": "abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch, err := Validate(SlicePersonalInformation, tt.input)
			if tt.wantErrors == nil {
				require.NoError(t, err)
				require.IsType(t, PersonalInformation{}, patch)
				return
			}

			require.Error(t, err)
			assert.Nil(t, patch)
			var fieldErrs FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Len(t, fieldErrs, len(tt.wantErrors))
			for field, msg := range tt.wantErrors {
				got, ok := fieldErrs.Get(field)
				assert.True(t, ok, "missing error for %s", field)
				assert.Equal(t, msg, got)
			}
		})
	}
}

func TestValidateEmailShape(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"yago@gmail.com", true},
		{"first.last+tag@mail.example.co", true},
		{"o'neil@example.org", true},
		{"a@b.c", false},
		{"plain", false},
		{"a@", false},
		{"@example.com", false},
		{".a@example.com", false},
		{"a..b@example.com", false},
		{"a.@example.com", false},
		{"a b@example.com", false},
		{`"quoted"@example.com`, false},
		{"a@-example.com", false},
		{"a@example", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			_, err := Validate(SlicePersonalInformation, Input{"name": "A", "email": tt.email})
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var fieldErrs FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			msg, ok := fieldErrs.Get("email")
			assert.True(t, ok)
			assert.Equal(t, "Invalid email", msg)
		})
	}
}

func TestValidateErrorsFollowFieldOrder(t *testing.T) {
	_, err := Validate(SlicePersonalInformation, Input{"name": "", "email": ""})
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 2)
	assert.Equal(t, "name", fieldErrs[0].Field)
	assert.Equal(t, "email", fieldErrs[1].Field)
	assert.Equal(t, "name: String must contain at least 1 character(s); email: Invalid email", err.Error())
}

func TestValidateAddressNumberCoercion(t *testing.T) {
	tests := []struct {
		name    string
		number  interface{}
		want    *float64
		wantErr string
	}{
		{name: "absent is null", number: nil},
		{name: "empty text is null", number: ""},
		{name: "numeric text", number: "100", want: Float(100)},
		{name: "decimal text", number: " 12.5 ", want: Float(12.5)},
		{name: "json number", number: 5.0, want: Float(5)},
		{name: "negative allowed", number: "-3", want: Float(-3)},
		{name: "garbage", number: "abc", wantErr: "Expected number, received nan"},
		{name: "nan text", number: "NaN", wantErr: "Expected number, received nan"},
		{name: "boolean", number: true, wantErr: "Expected number, received boolean"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{"street": "Paulista Avenue"}
			if tt.number != nil {
				in["number"] = tt.number
			}

			patch, err := Validate(SliceAddress, in)
			if tt.wantErr != "" {
				var fieldErrs FieldErrors
				require.ErrorAs(t, err, &fieldErrs)
				msg, ok := fieldErrs.Get("number")
				require.True(t, ok)
				assert.Equal(t, tt.wantErr, msg)
				return
			}

			require.NoError(t, err)
			addr := patch.(Address)
			assert.Equal(t, "Paulista Avenue", addr.Street)
			assert.Equal(t, tt.want, addr.Number)
		})
	}
}

func TestValidateAddressRequiresStreet(t *testing.T) {
	_, err := Validate(SliceAddress, Input{"street": "", "number": "10"})
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	msg, ok := fieldErrs.Get("street")
	require.True(t, ok)
	assert.Equal(t, "String must contain at least 1 character(s)", msg)
	_, ok = fieldErrs.Get("number")
	assert.False(t, ok)
}

func TestValidatePreferences(t *testing.T) {
	patch, err := Validate(SlicePreferences, Input{"receiveMarketingEmails": "on"})
	require.NoError(t, err)
	assert.Equal(t, Preferences{ReceiveMarketingEmails: true}, patch)

	patch, err = Validate(SlicePreferences, Input{"receiveMarketingEmails": false, "receiveNotifications": true})
	require.NoError(t, err)
	assert.Equal(t, Preferences{ReceiveNotifications: true}, patch)

	_, err = Validate(SlicePreferences, Input{"receiveNotifications": "maybe"})
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	_, ok := fieldErrs.Get("receiveNotifications")
	assert.True(t, ok)
}

func TestPatchApplyOnlyTouchesOwnFields(t *testing.T) {
	rec := Record{
		Name:                 "A",
		Email:                "a@a.com",
		Street:               "S",
		Number:               Float(5),
		ReceiveNotifications: true,
	}

	Address{Street: "New Street"}.Apply(&rec)
	assert.Equal(t, "A", rec.Name)
	assert.Equal(t, "New Street", rec.Street)
	assert.Nil(t, rec.Number)
	assert.True(t, rec.ReceiveNotifications)

	PersonalInformation{Name: "B", Email: "b@b.com"}.Apply(&rec)
	assert.Equal(t, "B", rec.Name)
	assert.Equal(t, "New Street", rec.Street)
}

func TestRecordJSONKeepsEveryKey(t *testing.T) {
	data, err := json.Marshal(DefaultRecord())
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"name":"","email":"","street":"","number":null,"receiveMarketingEmails":false,"receiveNotifications":false}`,
		string(data),
	)
}

func TestRecordCloneDoesNotShareNumber(t *testing.T) {
	rec := Record{Number: Float(1)}
	clone := rec.Clone()
	*clone.Number = 2
	assert.Equal(t, 1.0, *rec.Number)
}
