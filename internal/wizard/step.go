package wizard

import (
	"MultiStepForm/internal/form"
)

// Step 向导的一个页面
type Step string

const (
	StepPersonalInfo Step = "personal-info"
	StepAddress      Step = "address"
	StepPreferences  Step = "preferences"
	StepReview       Step = "review"
)

// Steps 固定的步骤顺序
var Steps = []Step{StepPersonalInfo, StepAddress, StepPreferences, StepReview}

// First 初始步骤
func First() Step {
	return Steps[0]
}

// ParseStep 解析步骤名，未知名称返回 false
func ParseStep(s string) (Step, bool) {
	for _, step := range Steps {
		if string(step) == s {
			return step, true
		}
	}
	return "", false
}

func (s Step) index() int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}
	return -1
}

// Valid 是否为合法步骤
func (s Step) Valid() bool {
	return s.index() >= 0
}

// Next 下一步，已在最后一步时返回自身
func (s Step) Next() Step {
	i := s.index()
	if i < 0 || i+1 >= len(Steps) {
		return s
	}
	return Steps[i+1]
}

// Previous 上一步，已在第一步时返回自身
func (s Step) Previous() Step {
	i := s.index()
	if i <= 0 {
		return s
	}
	return Steps[i-1]
}

// Position 从 1 开始的序号
func (s Step) Position() int {
	return s.index() + 1
}

// Title 页面标题
func (s Step) Title() string {
	switch s {
	case StepPersonalInfo:
		return "Personal Information"
	case StepAddress:
		return "Address"
	case StepPreferences:
		return "Preferences"
	case StepReview:
		return "Review your informations"
	default:
		return ""
	}
}

// Slice 该步骤负责校验的字段子集；Review 只读，没有子集
func (s Step) Slice() (form.Slice, bool) {
	switch s {
	case StepPersonalInfo:
		return form.SlicePersonalInformation, true
	case StepAddress:
		return form.SliceAddress, true
	case StepPreferences:
		return form.SlicePreferences, true
	default:
		return 0, false
	}
}

func (s Step) String() string {
	return string(s)
}
