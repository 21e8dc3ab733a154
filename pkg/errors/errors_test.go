package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeStructureSyntax, "unexpected %q", "x")

	if err.Code != ErrCodeStructureSyntax {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStructureSyntax)
	}

	if err.Message != `unexpected "x"` {
		t.Errorf("Message = %v, want %v", err.Message, `unexpected "x"`)
	}

	expected := `STRUCTURE_SYNTAX: unexpected "x"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeFileNotFound, cause, "read data")

	if err.Code != ErrCodeFileNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeFileNotFound)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeUnbalancedStructure, "test"),
			code:     ErrCodeUnbalancedStructure,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeUnbalancedStructure, "test"),
			code:     ErrCodeStructureSyntax,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeLayout, New(ErrCodeUnbalancedStructure, "inner"), "outer"),
			code:     ErrCodeLayout,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("parse: %w", New(ErrCodeStructureSyntax, "inner")),
			code:     ErrCodeStructureSyntax,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodeUnknownScheme, "test"), ErrCodeUnknownScheme},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"wrapped Error", Wrap(ErrCodeInvalidInput, errors.New("cause"), "outer"), "outer: cause"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsInput(t *testing.T) {
	if !IsInput(New(ErrCodeColorSpecSyntax, "x")) {
		t.Error("COLOR_SPEC_SYNTAX should be an input error")
	}
	if IsInput(New(ErrCodeInternal, "x")) {
		t.Error("INTERNAL_ERROR should not be an input error")
	}
	if IsInput(errors.New("plain")) {
		t.Error("plain errors should not be input errors")
	}
}
