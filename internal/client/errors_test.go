package client

import (
	"errors"
	"testing"
)

func TestRegistryError(t *testing.T) {
	t.Run("error with message", func(t *testing.T) {
		err := NewRegistryError(ErrNotFound, "io.example/mcp-math-server")
		expected := "server not found: io.example/mcp-math-server"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("error without message", func(t *testing.T) {
		err := NewRegistryError(ErrAuthRequired, "")
		expected := "authentication required"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("error unwrapping", func(t *testing.T) {
		err := NewRegistryError(ErrUnreachable, "connection timeout")
		if !errors.Is(err, ErrUnreachable) {
			t.Error("error should unwrap to ErrUnreachable")
		}
	})

	t.Run("status error records status", func(t *testing.T) {
		err := newStatusError(ErrVersionExists, 409, "duplicate")
		if err.StatusCode != 409 {
			t.Errorf("expected status 409, got %d", err.StatusCode)
		}
		if err.Details["status"] != 409 {
			t.Error("status should be recorded in details")
		}
		if !errors.Is(err, ErrVersionExists) {
			t.Error("status error should unwrap to its type")
		}
	})
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"error field", `{"error": "bad input"}`, "bad input"},
		{"problem detail", `{"title": "Conflict", "detail": "version exists"}`, "version exists"},
		{"title only", `{"title": "Conflict"}`, "Conflict"},
		{"plain text", "internal failure", "internal failure"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errorMessage([]byte(tt.body)); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestTokenPreview(t *testing.T) {
	long := "0123456789012345678901234567890"
	preview := tokenPreview(long)
	if preview != "01234567890123456789..." {
		t.Errorf("unexpected preview %q", preview)
	}
	if tokenPreview("short") != "short" {
		t.Error("short tokens should pass through")
	}
}

func TestSimpleName(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"io.example/mcp-math-server", "mcp-math-server"},
		{"com.example/my-server", "my-server"},
		{"plain-name", "plain-name"},
		{"trailing/", "trailing/"},
	}
	for _, tt := range tests {
		if got := SimpleName(tt.in); got != tt.out {
			t.Errorf("SimpleName(%q) = %q, want %q", tt.in, got, tt.out)
		}
	}
}
