package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		for _, key := range []string{"MCP_REGISTRY_URL", "MCP_AUTH_TOKEN", "MCP_AUTO_AUTH", "MCP_UPDATE_MODE", "MCP_SERVER_JSON"} {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}

		cfg, err := Resolve()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.BaseURL != "http://localhost:8080" {
			t.Errorf("expected default base URL, got %q", cfg.BaseURL)
		}
		if !cfg.AutoAuth {
			t.Error("auto auth should default to true")
		}
		if cfg.UpdateMode {
			t.Error("update mode should default to false")
		}
		if cfg.DescriptorPath != "server.json" {
			t.Errorf("expected default descriptor path, got %q", cfg.DescriptorPath)
		}
		if cfg.SchemaSource() != DefaultSchemaURL {
			t.Errorf("expected default schema URL, got %q", cfg.SchemaSource())
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		t.Setenv("MCP_REGISTRY_URL", "https://registry.example.com/")
		t.Setenv("MCP_AUTH_TOKEN", "secret-token")
		t.Setenv("MCP_AUTO_AUTH", "false")
		t.Setenv("MCP_UPDATE_MODE", "true")
		t.Setenv("MCP_SERVER_JSON", "/tmp/custom.json")

		cfg, err := Resolve()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.BaseURL != "https://registry.example.com" {
			t.Errorf("trailing slash should be trimmed, got %q", cfg.BaseURL)
		}
		if cfg.AuthToken != "secret-token" {
			t.Errorf("expected env token, got %q", cfg.AuthToken)
		}
		if cfg.AutoAuth {
			t.Error("auto auth should be disabled")
		}
		if !cfg.UpdateMode {
			t.Error("update mode should be enabled")
		}
		if cfg.DescriptorPath != "/tmp/custom.json" {
			t.Errorf("expected env descriptor path, got %q", cfg.DescriptorPath)
		}
	})

	t.Run("config file provides registry and token", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		for _, key := range []string{"MCP_REGISTRY_URL", "MCP_AUTH_TOKEN"} {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}

		saved := CLIConfig{
			Current: "local",
			Registries: map[string]Registry{
				"local": {URL: "http://registry.local:9000/", Token: "file-token"},
			},
		}
		if err := SaveCLI(saved); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		cfg, err := Resolve()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.BaseURL != "http://registry.local:9000" {
			t.Errorf("expected file registry URL, got %q", cfg.BaseURL)
		}
		if cfg.AuthToken != "file-token" {
			t.Errorf("expected file token, got %q", cfg.AuthToken)
		}
	})

	t.Run("environment wins over config file", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("MCP_REGISTRY_URL", "http://from-env:8080")

		saved := CLIConfig{
			Current: "local",
			Registries: map[string]Registry{
				"local": {URL: "http://from-file:9000"},
			},
		}
		if err := SaveCLI(saved); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		cfg, err := Resolve()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.BaseURL != "http://from-env:8080" {
			t.Errorf("env should win, got %q", cfg.BaseURL)
		}
	})
}

func TestParseBool(t *testing.T) {
	trueValues := []string{"1", "true", "TRUE", "yes", "on", " true "}
	for _, v := range trueValues {
		if !parseBool(v) {
			t.Errorf("parseBool(%q) should be true", v)
		}
	}

	falseValues := []string{"0", "false", "no", "off", "", "banana"}
	for _, v := range falseValues {
		if parseBool(v) {
			t.Errorf("parseBool(%q) should be false", v)
		}
	}
}

func TestCLIConfigRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	original := CLIConfig{
		Current: "prod",
		Registries: map[string]Registry{
			"prod":  {URL: "https://registry.example.com", Token: "tok"},
			"local": {URL: "http://localhost:8080"},
		},
	}

	if err := SaveCLI(original); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := LoadCLI()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if loaded.Current != "prod" {
		t.Errorf("expected current 'prod', got %q", loaded.Current)
	}
	if len(loaded.Registries) != 2 {
		t.Fatalf("expected 2 registries, got %d", len(loaded.Registries))
	}
	if loaded.Registries["prod"].Token != "tok" {
		t.Errorf("token did not round-trip")
	}

	// Config file must not be world-readable, it can hold tokens
	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("failed to get config path: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("failed to stat config: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
	}
}

func TestLoadCLIMissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadCLI()
	if err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
	if cfg.Registries == nil {
		t.Error("registries map should be initialized")
	}
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("loads values without overriding existing", func(t *testing.T) {
		dir := t.TempDir()
		envPath := filepath.Join(dir, ".env")
		content := "# comment\nMCPREG_TEST_A=from-file\nMCPREG_TEST_B=\"quoted\"\n\nnot-a-pair\n"
		if err := os.WriteFile(envPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}

		t.Setenv("MCPREG_TEST_A", "from-env")
		os.Unsetenv("MCPREG_TEST_B")
		t.Cleanup(func() { os.Unsetenv("MCPREG_TEST_B") })

		if err := LoadEnvFile(envPath); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := os.Getenv("MCPREG_TEST_A"); got != "from-env" {
			t.Errorf("existing env should not be overwritten, got %q", got)
		}
		if got := os.Getenv("MCPREG_TEST_B"); got != "quoted" {
			t.Errorf("expected quotes trimmed, got %q", got)
		}
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		if err := LoadEnvFile(filepath.Join(t.TempDir(), "nope.env")); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
