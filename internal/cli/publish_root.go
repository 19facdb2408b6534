package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mcpreg/internal/config"
)

var (
	verbose        bool
	descriptorFlag string
	updateFlag     bool
)

// publishRootCmd is the entry point of the mcp-publish binary
var publishRootCmd = &cobra.Command{
	Use:   "mcp-publish",
	Short: "Publish an MCP server descriptor to a registry",
	Long: `mcp-publish validates a server.json descriptor against the registry
schema and publishes it over the registry REST API.

The workflow is: load descriptor, validate, authenticate, create or update,
then verify the entry by reading it back. A publish whose read-back does not
match is reported as unverified but does not fail the process.

Configuration comes from ~/.mcpreg/config.toml and the environment
(MCP_REGISTRY_URL, MCP_AUTH_TOKEN, MCP_AUTO_AUTH, MCP_UPDATE_MODE,
MCP_SERVER_JSON).`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env file if it exists
		config.LoadEnvFile(".env")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPublish(cmd)
	},
}

// ExecutePublish runs the publish CLI
func ExecutePublish() error {
	return publishRootCmd.Execute()
}

func init() {
	publishRootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	publishRootCmd.Flags().StringVarP(&descriptorFlag, "file", "f", "", "path to server.json (overrides MCP_SERVER_JSON)")
	publishRootCmd.Flags().BoolVar(&updateFlag, "update", false, "update an existing version instead of creating")

	publishRootCmd.AddCommand(configCmd)
}

// resolvePublishConfig resolves configuration and applies flag overrides
func resolvePublishConfig(cmd *cobra.Command) (config.RegistryConfig, error) {
	cfg, err := config.Resolve()
	if err != nil {
		return config.RegistryConfig{}, fmt.Errorf("failed to load config: %w", err)
	}

	if descriptorFlag != "" {
		cfg.DescriptorPath = descriptorFlag
	}
	if cmd.Flags().Changed("update") {
		cfg.UpdateMode = updateFlag
	}

	return cfg, nil
}
