package descriptor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeDescriptor(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write descriptor: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid descriptor", func(t *testing.T) {
		path := writeDescriptor(t, `{
			"name": "io.example/mcp-math-server",
			"version": "1.0.0",
			"title": "Math Server",
			"description": "Does math",
			"packages": [{"registryType": "npm", "identifier": "@example/math"}]
		}`)

		d, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Name() != "io.example/mcp-math-server" {
			t.Errorf("unexpected name %q", d.Name())
		}
		if d.Version() != "1.0.0" {
			t.Errorf("unexpected version %q", d.Version())
		}
		if d.Title() != "Math Server" {
			t.Errorf("unexpected title %q", d.Title())
		}
		if len(d.Packages()) != 1 {
			t.Errorf("expected 1 package, got %d", len(d.Packages()))
		}
		if d.Remotes() != nil {
			t.Errorf("expected no remotes")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		if !errors.Is(err, ErrDescriptorNotFound) {
			t.Fatalf("expected ErrDescriptorNotFound, got %v", err)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		path := writeDescriptor(t, `{"name": `)
		_, err := Load(path)
		if !errors.Is(err, ErrDescriptorUnreadable) {
			t.Fatalf("expected ErrDescriptorUnreadable, got %v", err)
		}
	})

	t.Run("non-object document", func(t *testing.T) {
		path := writeDescriptor(t, `["not", "an", "object"]`)
		_, err := Load(path)
		if !errors.Is(err, ErrDescriptorUnreadable) {
			t.Fatalf("expected ErrDescriptorUnreadable, got %v", err)
		}
	})

	t.Run("missing fields come back empty", func(t *testing.T) {
		path := writeDescriptor(t, `{"name": 42}`)
		d, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.Name() != "" {
			t.Errorf("non-string name should read as empty, got %q", d.Name())
		}
		if d.Version() != "" {
			t.Errorf("absent version should read as empty, got %q", d.Version())
		}
	})
}
