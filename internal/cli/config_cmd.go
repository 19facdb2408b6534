package cli

import (
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mcpreg/internal/config"
)

// configCmd groups local configuration commands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage local registry configuration",
	Long: `Manage the registries stored in ~/.mcpreg/config.toml.

Environment variables (MCP_REGISTRY_URL, MCP_AUTH_TOKEN, ...) always take
precedence over the config file.`,
}

// configSetRegistryCmd adds or updates a named registry and makes it current
var configSetRegistryCmd = &cobra.Command{
	Use:   "set-registry <name> <url>",
	Short: "Add or update a registry and make it the current one",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSetRegistry(args[0], args[1])
	},
}

// configSetTokenCmd stores a bearer token for the current registry
var configSetTokenCmd = &cobra.Command{
	Use:   "set-token",
	Short: "Store a bearer token for the current registry",
	Long: `Store a bearer token for the current registry.

The token is prompted for without echo and written to the config file with
0600 permissions.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigSetToken()
	},
}

// configShowCmd prints the resolved configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow()
	},
}

func init() {
	configCmd.AddCommand(configSetRegistryCmd)
	configCmd.AddCommand(configSetTokenCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigSetRegistry(name, url string) error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	reg := cfg.Registries[name]
	reg.URL = url
	cfg.Registries[name] = reg
	cfg.Current = name

	if err := config.SaveCLI(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("✅ Registry '%s' set to %s (now current)\n", name, url)
	return nil
}

func runConfigSetToken() error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Current == "" {
		return fmt.Errorf("no current registry configured. Use 'config set-registry' first")
	}

	fmt.Printf("Token for %s: ", cfg.Current)
	tokenBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	fmt.Println() // New line after masked input

	token := string(tokenBytes)
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	reg := cfg.Registries[cfg.Current]
	reg.Token = token
	cfg.Registries[cfg.Current] = reg

	if err := config.SaveCLI(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("🔑 Token saved for registry '%s'\n", cfg.Current)
	return nil
}

func runConfigShow() error {
	cfg, err := config.Resolve()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Printf("Registry URL:  %s\n", cfg.BaseURL)
	if cfg.AuthToken != "" {
		fmt.Printf("Auth token:    set (%d chars)\n", len(cfg.AuthToken))
	} else {
		fmt.Printf("Auth token:    not set\n")
	}
	fmt.Printf("Auto auth:     %v\n", cfg.AutoAuth)
	fmt.Printf("Update mode:   %v\n", cfg.UpdateMode)
	fmt.Printf("Descriptor:    %s\n", cfg.DescriptorPath)
	fmt.Printf("Schema source: %s\n", cfg.SchemaSource())
	return nil
}
