// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrForbidden      = errors.New("forbidden")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrConflict       = errors.New("resource conflict") // 重複エラー用
	ErrLocked         = errors.New("content locked")
	ErrSlugCollision  = errors.New("slug collision")
)

// ErrorDetail はクライアントに返すエラーの中身です。
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// AppError はユーザー向けメッセージと根本原因のエラーをまとめます。
// HTTPステータスは Err (センチネルエラー) から決定されます。
type AppError struct {
	Detail ErrorDetail
	Err    error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{
		Detail: ErrorDetail{Code: code, Message: message, Field: field},
		Err:    err,
	}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Detail.Code, e.Detail.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Detail.Code, e.Detail.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
