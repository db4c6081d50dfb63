// Package errors provides standardized error types for the request cache.
// It defines the sentinel errors, a key-path error wrapper, and helper functions
// for error checking in callers.
//
// Package errors 提供请求级缓存的标准化错误类型。
// 它定义了哨兵错误、携带键路径的错误包装器以及供调用方使用的错误检查辅助函数。
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Standard errors that can be returned by the request cache.
//
// 请求级缓存可能返回的标准错误。
var (
	// ErrInvalidValue is returned when a write attempts to store nil.
	// 当写入尝试存储 nil 时返回ErrInvalidValue。
	ErrInvalidValue = errors.New("cache: invalid value")

	// ErrEmptyKeyPath is returned when a write is given no key segments.
	// 当写入未提供任何键段时返回ErrEmptyKeyPath。
	ErrEmptyKeyPath = errors.New("cache: key path is empty")

	// ErrNotFound is returned by Decode when the key path is not present.
	// 当键路径不存在时，Decode 返回ErrNotFound。
	ErrNotFound = errors.New("cache: key not found")

	// ErrDecodeFailed is returned when a stored value cannot be decoded into the target.
	// 当存储的值无法解码到目标时返回ErrDecodeFailed。
	ErrDecodeFailed = errors.New("cache: decode failed")

	// ErrQueryFailed is returned when a JSONPath query cannot be evaluated.
	// 当 JSONPath 查询无法求值时返回ErrQueryFailed。
	ErrQueryFailed = errors.New("cache: query failed")
)

// KeyError represents an error related to a specific key path.
// It wraps an underlying error with the path and the operation that caused it.
//
// KeyError 表示与特定键路径相关的错误。
// 它用导致错误的键路径和操作包装底层错误。
type KeyError struct {
	Op   string   // The operation that failed / 失败的操作
	Path []string // The key path that caused the error / 导致错误的键路径
	Err  error    // The underlying error / 底层错误
	Msg  string   // Optional detail / 可选的详细信息
}

// Error returns the error message.
//
// Error 返回错误消息。
func (e *KeyError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	b.WriteString(": ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(" ")
	}
	fmt.Fprintf(&b, "%q", JoinPath(e.Path))
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	return b.String()
}

// Unwrap returns the underlying error.
// This allows errors.Is and errors.As to work with wrapped errors.
//
// Unwrap 返回底层错误。
// 这允许errors.Is和errors.As与包装的错误一起工作。
func (e *KeyError) Unwrap() error {
	return e.Err
}

// NewKeyError creates a new KeyError.
//
// NewKeyError 创建一个新的KeyError。
//
// Parameters:
//   - op: The operation name, e.g. "write"
//   - path: The key path that caused the error
//   - err: The underlying error
//   - msg: Optional detail appended to the message
//
// Returns:
//   - *KeyError: A new key error instance
func NewKeyError(op string, path []string, err error, msg string) *KeyError {
	p := make([]string, len(path))
	copy(p, path)
	return &KeyError{Op: op, Path: p, Err: err, Msg: msg}
}

// JoinPath renders a key path the way it appears in error messages and logs.
func JoinPath(path []string) string {
	return strings.Join(path, ".")
}

// IsInvalidValue returns true if the error indicates that nil was written.
//
// IsInvalidValue 如果错误表示写入了 nil，则返回true。
func IsInvalidValue(err error) bool {
	return errors.Is(err, ErrInvalidValue)
}

// IsEmptyKeyPath returns true if the error indicates an empty key path.
//
// IsEmptyKeyPath 如果错误表示键路径为空，则返回true。
func IsEmptyKeyPath(err error) bool {
	return errors.Is(err, ErrEmptyKeyPath)
}

// IsNotFound returns true if the error indicates that a key was not found.
//
// IsNotFound 如果错误表示未找到键，则返回true。
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDecodeFailed returns true if the error indicates a decode failure.
func IsDecodeFailed(err error) bool {
	return errors.Is(err, ErrDecodeFailed)
}

// IsQueryFailed returns true if the error indicates a query failure.
func IsQueryFailed(err error) bool {
	return errors.Is(err, ErrQueryFailed)
}
