package service

import "errors"

// Kind 业务错误类别。
type Kind int

const (
	// KindNotFound 指定 id+租户下实体不存在。
	KindNotFound Kind = iota + 1
	// KindDuplicateValue 唯一字段冲突。
	KindDuplicateValue
	// KindHasChildren 菜单仍被子菜单引用，禁止删除。
	KindHasChildren
	// KindBadCredentials 登录密码错误。
	KindBadCredentials
	// KindDisabled 登录账户非启用状态。
	KindDisabled
	// KindInvalidInput 载荷不合法。
	KindInvalidInput
)

// Error 携带类别与面向用户的提示信息，不暴露内部细节。
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// IsKind 判断 err 是否为指定类别的业务错误。
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// AsError 提取业务错误，供边界层映射响应信封。
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
