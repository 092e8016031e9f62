package form

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Slice 标识某个步骤负责的字段子集
type Slice int

const (
	SlicePersonalInformation Slice = iota + 1
	SliceAddress
	SlicePreferences
)

var sliceFields = map[Slice][]string{
	SlicePersonalInformation: {"name", "email"},
	SliceAddress:             {"street", "number"},
	SlicePreferences:         {"receiveMarketingEmails", "receiveNotifications"},
}

// Fields 返回子集内的字段名，顺序即错误展示顺序
func (s Slice) Fields() []string {
	return sliceFields[s]
}

func (s Slice) String() string {
	switch s {
	case SlicePersonalInformation:
		return "personal-information"
	case SliceAddress:
		return "address"
	case SlicePreferences:
		return "preferences"
	default:
		return "unknown"
	}
}

// Input 是一次提交的原始输入。HTML 表单里全是字符串，JSON 请求里是解码后的值。
type Input map[string]interface{}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func schemaValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// 错误按 json 字段名归档，和存储里的键一致
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// validator 自带的 email 接受 a@b.c 和带引号的本地部分，这里收紧到常见邮箱形态
		_ = validate.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
			return isMailbox(fl.Field().String())
		})
	})
	return validate
}

var mailboxPattern = regexp.MustCompile(`^[A-Za-z0-9_'+\-.]*[A-Za-z0-9_+\-]@([A-Za-z0-9][A-Za-z0-9\-]*\.)+[A-Za-z]{2,}$`)

// isMailbox 本地部分不能以点开头，也不能有连续的点；顶级域至少两个字母
func isMailbox(s string) bool {
	if strings.HasPrefix(s, ".") || strings.Contains(s, "..") {
		return false
	}
	return mailboxPattern.MatchString(s)
}

// Validate 把输入强转成子集的类型化值并按规则校验。
// 成功返回 Patch；失败返回 FieldErrors，每个非法字段一条信息。子集以外的字段被忽略。
func Validate(slice Slice, in Input) (Patch, error) {
	errs := FieldErrors{}

	var patch Patch
	switch slice {
	case SlicePersonalInformation:
		patch = PersonalInformation{
			Name:  in.text("name", &errs),
			Email: in.text("email", &errs),
		}
	case SliceAddress:
		patch = Address{
			Street: in.text("street", &errs),
			Number: in.number("number", &errs),
		}
	case SlicePreferences:
		patch = Preferences{
			ReceiveMarketingEmails: in.boolean("receiveMarketingEmails", &errs),
			ReceiveNotifications:   in.boolean("receiveNotifications", &errs),
		}
	default:
		return nil, fmt.Errorf("unknown form slice %d", slice)
	}

	if err := schemaValidator().Struct(patch); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("validate %s: %w", slice, err)
		}
		for _, fe := range verrs {
			errs.add(fe.Field(), messageFor(fe))
		}
	}

	if len(errs) > 0 {
		errs.sortBy(slice.Fields())
		return nil, errs
	}

	return patch, nil
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("String must contain at least %s character(s)", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "email", "mailbox":
		return "Invalid email"
	default:
		return fe.Error()
	}
}

func (in Input) text(field string, errs *FieldErrors) string {
	raw, ok := in[field]
	if !ok || raw == nil {
		return ""
	}
	s, ok := raw.(string)
	if !ok {
		errs.add(field, "Expected string, received "+typeName(raw))
		return ""
	}
	return s
}

// number 空串和缺省都视为 null，没有范围约束
func (in Input) number(field string, errs *FieldErrors) *float64 {
	raw, ok := in[field]
	if !ok || raw == nil {
		return nil
	}

	var v float64
	switch n := raw.(type) {
	case float64:
		v = n
	case int:
		v = float64(n)
	case int64:
		v = float64(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			errs.add(field, "Expected number, received nan")
			return nil
		}
		v = parsed
	default:
		errs.add(field, "Expected number, received "+typeName(raw))
		return nil
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		errs.add(field, "Expected number, received nan")
		return nil
	}
	return &v
}

// boolean 兼容复选框：勾选时浏览器提交 "on"，未勾选时字段缺省
func (in Input) boolean(field string, errs *FieldErrors) bool {
	raw, ok := in[field]
	if !ok || raw == nil {
		return false
	}

	switch b := raw.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "on", "true", "1", "yes":
			return true
		case "", "off", "false", "0", "no":
			return false
		}
		errs.add(field, "Expected boolean, received string")
		return false
	default:
		errs.add(field, "Expected boolean, received "+typeName(raw))
		return false
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
