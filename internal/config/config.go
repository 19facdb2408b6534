package config

import (
	"os"
	"strings"
)

// RegistryConfig holds everything one publish or consume invocation needs.
// It is resolved once at process start and treated as immutable afterwards.
type RegistryConfig struct {
	BaseURL        string // registry base URL, no trailing slash
	AuthToken      string // bearer token; empty means none configured
	AutoAuth       bool   // obtain a token from /auth/none when none is configured
	UpdateMode     bool   // PUT an existing name+version instead of creating
	DescriptorPath string // path to the server.json descriptor
	SchemaPath     string // local schema file; empty means fetch SchemaURL
	SchemaURL      string // schema document URL
}

// DefaultSchemaURL is the published MCP server descriptor schema.
const DefaultSchemaURL = "https://static.modelcontextprotocol.io/schemas/2025-09-29/server.schema.json"

// Resolve builds a RegistryConfig from the CLI config file and environment.
// Environment variables always win over the config file.
func Resolve() (RegistryConfig, error) {
	cfg := RegistryConfig{
		BaseURL:        "http://localhost:8080",
		AutoAuth:       true,
		DescriptorPath: "server.json",
		SchemaURL:      DefaultSchemaURL,
	}

	// File-configured registry, if any
	cliCfg, err := LoadCLI()
	if err != nil {
		return RegistryConfig{}, err
	}
	if reg, ok := cliCfg.Registries[cliCfg.Current]; ok {
		if reg.URL != "" {
			cfg.BaseURL = reg.URL
		}
		if reg.Token != "" {
			cfg.AuthToken = reg.Token
		}
	}

	// Environment overrides
	if v := os.Getenv("MCP_REGISTRY_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("MCP_AUTH_TOKEN"); v != "" {
		cfg.AuthToken = v
	}
	if v := os.Getenv("MCP_AUTO_AUTH"); v != "" {
		cfg.AutoAuth = parseBool(v)
	}
	if v := os.Getenv("MCP_UPDATE_MODE"); v != "" {
		cfg.UpdateMode = parseBool(v)
	}
	if v := os.Getenv("MCP_SERVER_JSON"); v != "" {
		cfg.DescriptorPath = v
	}
	if v := os.Getenv("MCP_SCHEMA_PATH"); v != "" {
		cfg.SchemaPath = v
	}
	if v := os.Getenv("MCP_SCHEMA_URL"); v != "" {
		cfg.SchemaURL = v
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg, nil
}

// SchemaSource returns the configured schema location, preferring a local file.
func (c RegistryConfig) SchemaSource() string {
	if c.SchemaPath != "" {
		return c.SchemaPath
	}
	return c.SchemaURL
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
