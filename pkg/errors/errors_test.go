package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("a → b → a")
	err := Wrap(ErrCodeCycleDetected, cause, "reactor graph is not acyclic")

	if err.Code != ErrCodeCycleDetected {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeCycleDetected)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "CYCLE_DETECTED: reactor graph is not acyclic: a → b → a"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
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
			err:      New(ErrCodeDuplicateProject, "test"),
			code:     ErrCodeDuplicateProject,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeDuplicateProject, "test"),
			code:     ErrCodeCycleDetected,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeUnknownProject, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeUnknownProject,
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
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidManifest, "test"),
			expected: ErrCodeInvalidManifest,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
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
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "Error with cause",
			err:      Wrap(ErrCodeCycleDetected, errors.New("a → a"), "cycle"),
			expected: "cycle: a → a",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsGraphError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeDuplicateProject, "x"), true},
		{New(ErrCodeCycleDetected, "x"), true},
		{New(ErrCodeUnknownProject, "x"), true},
		{New(ErrCodeInvalidManifest, "x"), false},
		{errors.New("plain"), false},
	}

	for _, tt := range tests {
		if got := IsGraphError(tt.err); got != tt.want {
			t.Errorf("IsGraphError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
