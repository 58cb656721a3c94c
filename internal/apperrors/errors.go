package apperrors

import (
	"errors"
	"fmt"
)

// Kind 错误类别，handler 层据此映射 HTTP 状态码
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
	KindConflict
	KindDatabase
)

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, identifier string) *AppError {
	message := fmt.Sprintf("%s不存在", resource)
	if identifier != "" {
		message = fmt.Sprintf("%s不存在: %s", resource, identifier)
	}
	return &AppError{Kind: KindNotFound, Message: message}
}

func Validation(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

func Conflict(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func Database(message string, err error) *AppError {
	return &AppError{Kind: KindDatabase, Message: message, Err: err}
}

func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
