package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mcpreg/internal/client"
	"mcpreg/internal/config"
	"mcpreg/internal/discover"
)

// consumeRootCmd is the entry point of the mcp-consume binary
var consumeRootCmd = &cobra.Command{
	Use:   "mcp-consume",
	Short: "Discover and consume MCP servers from a registry",
	Long: `mcp-consume searches and inspects servers published to an MCP
registry over its REST API.

Configuration comes from ~/.mcpreg/config.toml and the environment
(MCP_REGISTRY_URL).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env file if it exists
		config.LoadEnvFile(".env")
	},
}

// ExecuteConsume runs the consume CLI
func ExecuteConsume() error {
	return consumeRootCmd.Execute()
}

func init() {
	consumeRootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	consumeRootCmd.AddCommand(searchCmd)
	consumeRootCmd.AddCommand(getCmd)
	consumeRootCmd.AddCommand(versionsCmd)
	consumeRootCmd.AddCommand(listCmd)
	consumeRootCmd.AddCommand(installCmd)
}

// newDiscoverService builds a discovery service from the resolved config
func newDiscoverService() (*discover.Service, error) {
	cfg, err := config.Resolve()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	c := client.NewClient(cfg.BaseURL)
	c.SetVerbose(verbose)

	if verbose {
		fmt.Printf("🌐 Registry: %s\n", cfg.BaseURL)
	}

	return discover.New(c), nil
}
