package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTutorNotFound は講師IDに該当する行がないことを表します
var ErrTutorNotFound = errors.New("tutor not found")

// ValidationError は必須項目の欠落を表します。クライアント起因(400)
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// StorageError は台帳・ディレクトリの障害を表します(500)
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// DispatchError は通知送信の失敗です。呼び出し側には伝播させない
type DispatchError struct {
	Channel string
	Err     error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch to %s: %v", e.Channel, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// BackendError は生成AIバックエンドの失敗です。フォールバック応答に置き換えられる
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("generative backend: %v", e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}
