package form

import (
	"sort"
	"strings"
)

// FieldError 单个字段的校验失败信息
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors 一次校验的全部字段错误，每个字段最多一条
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

// Get 返回字段对应的错误信息
func (e FieldErrors) Get(field string) (string, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message, true
		}
	}
	return "", false
}

// Details 转成响应 details 使用的 field -> message
func (e FieldErrors) Details() map[string]interface{} {
	out := make(map[string]interface{}, len(e))
	for _, fe := range e {
		out[fe.Field] = fe.Message
	}
	return out
}

// 同一字段只保留第一条，强转失败优先于规则校验
func (e *FieldErrors) add(field, message string) {
	if _, exists := e.Get(field); exists {
		return
	}
	*e = append(*e, FieldError{Field: field, Message: message})
}

func (e FieldErrors) sortBy(order []string) {
	rank := make(map[string]int, len(order))
	for i, f := range order {
		rank[f] = i
	}
	sort.SliceStable(e, func(i, j int) bool {
		return rank[e[i].Field] < rank[e[j].Field]
	})
}
