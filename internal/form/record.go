package form

// Record 是向导跨步骤累积的全部字段，序列化后就是存储里的 JSON blob。
// 所有键始终存在：文本默认空串，number 默认 null，布尔默认 false。
type Record struct {
	Name                   string   `json:"name"`
	Email                  string   `json:"email"`
	Street                 string   `json:"street"`
	Number                 *float64 `json:"number"`
	ReceiveMarketingEmails bool     `json:"receiveMarketingEmails"`
	ReceiveNotifications   bool     `json:"receiveNotifications"`
}

// DefaultRecord 返回全零值的记录
func DefaultRecord() Record {
	return Record{}
}

// Clone 深拷贝，Number 指针不与原记录共享
func (r Record) Clone() Record {
	out := r
	if r.Number != nil {
		n := *r.Number
		out.Number = &n
	}
	return out
}

// Patch 是某个步骤字段子集的校验结果，只覆盖自己负责的字段。
type Patch interface {
	Apply(r *Record)
}

// PersonalInformation 第一步：姓名和邮箱
type PersonalInformation struct {
	Name  string `json:"name" validate:"min=1"`
	Email string `json:"email" validate:"mailbox"`
}

func (p PersonalInformation) Apply(r *Record) {
	r.Name = p.Name
	r.Email = p.Email
}

// Address 第二步：街道和门牌号，门牌号可以为空
type Address struct {
	Street string   `json:"street" validate:"min=1"`
	Number *float64 `json:"number"`
}

func (a Address) Apply(r *Record) {
	r.Street = a.Street
	r.Number = nil
	if a.Number != nil {
		n := *a.Number
		r.Number = &n
	}
}

// Preferences 第三步：两个订阅开关
type Preferences struct {
	ReceiveMarketingEmails bool `json:"receiveMarketingEmails"`
	ReceiveNotifications   bool `json:"receiveNotifications"`
}

func (p Preferences) Apply(r *Record) {
	r.ReceiveMarketingEmails = p.ReceiveMarketingEmails
	r.ReceiveNotifications = p.ReceiveNotifications
}

// Float 方便构造 Number 字段
func Float(v float64) *float64 {
	return &v
}
