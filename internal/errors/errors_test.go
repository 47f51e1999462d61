package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindNotFound, "not found"},
		{KindInvalid, "invalid"},
		{KindIO, "I/O error"},
		{KindNetwork, "network error"},
		{KindBackend, "backend error"},
		{KindConfig, "configuration error"},
		{KindClipboard, "clipboard error"},
		{KindTimeout, "timeout"},
		{Kind(999), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("Kind.String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "test.Op", Context: "some context", Err: errors.New("underlying error")},
			expected: "test.Op: some context: underlying error",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "test.Op", Err: errors.New("underlying error")},
			expected: "test.Op: underlying error",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("underlying error")},
			expected: "underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestE(t *testing.T) {
	underlying := errors.New("boom")
	err := E(Op("backend.Upload"), KindNetwork, "posting report.pdf", underlying)

	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("E should return *Error")
	}
	if e.Op != "backend.Upload" {
		t.Errorf("Op = %q", e.Op)
	}
	if e.Kind != KindNetwork {
		t.Errorf("Kind = %v", e.Kind)
	}
	if !errors.Is(err, underlying) {
		t.Error("E should wrap the underlying error")
	}
}

func TestE_ContextBecomesError(t *testing.T) {
	err := E(Op("config.Validate"), "server url is empty")
	if got := err.Error(); got != "config.Validate: server url is empty" {
		t.Errorf("Error() = %q", got)
	}
}

func TestE_MsgOnly(t *testing.T) {
	err := E(KindBackend, Msg("bad format"))
	if got := err.Error(); got != "bad format" {
		t.Errorf("Error() = %q, want %q", got, "bad format")
	}
}

func TestGetKind(t *testing.T) {
	inner := E(Op("backend.Chat"), KindNetwork, errors.New("connection refused"))
	wrapped := Wrap("app.send", inner)
	fmtWrapped := fmt.Errorf("outer: %w", wrapped)

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain error", errors.New("x"), KindUnknown},
		{"direct", inner, KindNetwork},
		{"wrapped without kind", wrapped, KindNetwork},
		{"fmt wrapped", fmtWrapped, KindNetwork},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetKind(tt.err); got != tt.want {
				t.Errorf("GetKind() = %v, want %v", got, tt.want)
			}
		})
	}

	if !Is(fmtWrapped, KindNetwork) {
		t.Error("Is(fmtWrapped, KindNetwork) should be true")
	}
}

func TestUserMessage(t *testing.T) {
	withMsg := E(Op("backend.Upload"), KindBackend, Msg("bad format"))

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "fallback"},
		{"plain", errors.New("x"), "fallback"},
		{"with message", withMsg, "bad format"},
		{"wrapped message", Wrap("app.upload", withMsg), "bad format"},
		{"fmt wrapped message", fmt.Errorf("ctx: %w", withMsg), "bad format"},
		{"no message", E(Op("x"), KindNetwork, errors.New("y")), "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err, "fallback"); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrap_Nil(t *testing.T) {
	if Wrap("x", nil) != nil {
		t.Error("Wrap(nil) should be nil")
	}
}
