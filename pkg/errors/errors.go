package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 请求相关错误。
var (
	InvalidRequest       = Definition{Code: "INVALID_REQUEST", Message: "Invalid request"}
	UnsupportedMediaType = Definition{Code: "UNSUPPORTED_MEDIA_TYPE", Message: "Content-Type must be application/json"}
	TooManyRequests      = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests, please slow down"}
	CSRFInvalid          = Definition{Code: "CSRF_INVALID", Message: "Form expired, please reload the page"}
	SessionInvalid       = Definition{Code: "SESSION_INVALID", Message: "Session invalid"}
)

// 表单向导错误。
var (
	ValidationFailed = Definition{Code: "VALIDATION_FAILED", Message: "Validation failed"}
	StepMismatch     = Definition{Code: "STEP_MISMATCH", Message: "Submitted step is not the current step"}
)

// 存储错误。读失败在适配器内部回退为默认记录，不会出现在响应里。
var (
	StorageWriteFailed = Definition{Code: "STORAGE_WRITE_FAILED", Message: "Failed to save form data"}
)

var InternalServerError = Definition{Code: "INTERNAL_SERVER_ERROR", Message: "Internal server error"}
