package response

import "github.com/f2fpay/internal/i18n"

// AppError 对外错误：Key 为文案键，Detail 为原样透传的提示（如网关 msg），Retryable 表示可原样重试
type AppError struct {
	Code      int
	Key       string
	Detail    string
	Err       error
	Retryable bool
}

func (e *AppError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Key
	}
	if e.Err == nil {
		return msg
	}
	return msg + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Message 按语言返回提示
func (e *AppError) Message(locale string) string {
	if e.Detail != "" {
		return e.Detail
	}
	return i18n.T(locale, e.Key)
}

// WrapError 以文案键包装错误
func WrapError(key string, err error) *AppError {
	return &AppError{Code: CodeFail, Key: key, Err: err}
}

// WrapDetail 以原样提示包装错误
func WrapDetail(detail string, err error) *AppError {
	return &AppError{Code: CodeFail, Detail: detail, Err: err}
}
