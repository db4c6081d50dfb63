package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKeyErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *KeyError
		want string
	}{
		{
			name: "write nil",
			err:  NewKeyError("write", []string{"a", "b"}, ErrInvalidValue, "attempted to store nil"),
			want: `cache: invalid value: write "a.b": attempted to store nil`,
		},
		{
			name: "empty path",
			err:  NewKeyError("write", nil, ErrEmptyKeyPath, ""),
			want: `cache: key path is empty: write ""`,
		},
		{
			name: "no op",
			err:  NewKeyError("", []string{"user"}, ErrNotFound, ""),
			want: `cache: key not found: "user"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNewKeyErrorCopiesPath(t *testing.T) {
	path := []string{"a", "b"}
	err := NewKeyError("write", path, ErrInvalidValue, "")
	path[0] = "changed"

	if err.Path[0] != "a" {
		t.Errorf("Expected path to be copied, got %v", err.Path)
	}
}

func TestIsHelpers(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewKeyError("decode", []string{"x"}, ErrDecodeFailed, "bad"))

	if !IsDecodeFailed(wrapped) {
		t.Error("Expected IsDecodeFailed through wrapping")
	}
	if IsNotFound(wrapped) {
		t.Error("Expected IsNotFound to be false")
	}

	var keyErr *KeyError
	if !errors.As(wrapped, &keyErr) {
		t.Fatal("Expected errors.As to find the KeyError")
	}
	if keyErr.Op != "decode" {
		t.Errorf("Expected op 'decode', got %q", keyErr.Op)
	}

	checks := []struct {
		err  error
		is   func(error) bool
		name string
	}{
		{ErrInvalidValue, IsInvalidValue, "IsInvalidValue"},
		{ErrEmptyKeyPath, IsEmptyKeyPath, "IsEmptyKeyPath"},
		{ErrNotFound, IsNotFound, "IsNotFound"},
		{ErrQueryFailed, IsQueryFailed, "IsQueryFailed"},
	}
	for _, c := range checks {
		if !c.is(fmt.Errorf("%w: detail", c.err)) {
			t.Errorf("Expected %s to match its sentinel", c.name)
		}
	}
}
