package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"mcpreg/internal/discover"
)

var (
	getVersion string
	listLimit  int
)

// searchCmd searches the registry by server name
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for servers by name",
	Long: `Search the registry for servers whose name matches the query.

Examples:
  mcp-consume search math
  mcp-consume search io.example/mcp-math-server`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConsumeSearch(args[0])
	},
}

// getCmd fetches the details of one server
var getCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Show details for a server",
	Long: `Show the full record for a server. Without --version the latest
published version is shown.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConsumeGet(args[0], getVersion)
	},
}

// versionsCmd lists every published version of a server
var versionsCmd = &cobra.Command{
	Use:   "versions <name>",
	Short: "List all versions of a server, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConsumeVersions(args[0])
	},
}

// listCmd pages through the entire catalog
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every server in the registry",
	Long:  `Walk the full catalog using cursor pagination and list every server.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConsumeList()
	},
}

// installCmd derives installation instructions for a server
var installCmd = &cobra.Command{
	Use:   "install <name>",
	Short: "Show how to install and run a server",
	Long: `Derive installation instructions from a server's package and
transport metadata, including an MCP client configuration snippet.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConsumeInstall(args[0], getVersion)
	},
}

func init() {
	getCmd.Flags().StringVar(&getVersion, "version", "", "specific version (default: latest)")
	installCmd.Flags().StringVar(&getVersion, "version", "", "specific version (default: latest)")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "page size for catalog pagination")
}

func runConsumeSearch(query string) error {
	svc, err := newDiscoverService()
	if err != nil {
		return err
	}

	results, err := svc.Search(context.Background(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Printf("No servers found matching '%s'\n", query)
		return nil
	}

	fmt.Printf("📋 Found %d server(s):\n\n", len(results))
	for _, result := range results {
		printSummary(result)
	}
	return nil
}

func runConsumeGet(name, version string) error {
	svc, err := newDiscoverService()
	if err != nil {
		return err
	}

	detail, err := svc.GetDetails(context.Background(), name, version)
	if err != nil {
		return err
	}

	server := detail.Server
	fmt.Printf("📦 %s\n", server.Name)
	if server.Title != "" {
		fmt.Printf("   Title:       %s\n", server.Title)
	}
	fmt.Printf("   Version:     %s\n", server.Version)
	if server.Description != "" {
		fmt.Printf("   Description: %s\n", server.Description)
	}
	if server.Repository != nil {
		fmt.Printf("   Repository:  %s\n", server.Repository.URL)
	}
	if detail.Meta.Status != "" {
		fmt.Printf("   Status:      %s\n", detail.Meta.Status)
	}
	if detail.Meta.PublishedAt != "" {
		fmt.Printf("   Published:   %s\n", detail.Meta.PublishedAt)
	}
	if detail.Meta.IsLatest {
		fmt.Printf("   Latest:      ✓\n")
	}

	for _, pkg := range server.Packages {
		fmt.Printf("   Package:     %s %s\n", pkg.RegistryType, pkg.Identifier)
	}
	for _, remote := range server.Remotes {
		fmt.Printf("   Remote:      %s %s\n", remote.Type, remote.URL)
	}
	return nil
}

func runConsumeVersions(name string) error {
	svc, err := newDiscoverService()
	if err != nil {
		return err
	}

	versions, err := svc.ListVersions(context.Background(), name)
	if err != nil {
		return err
	}

	fmt.Printf("Available versions of %s:\n", name)
	for i, version := range versions {
		if i == 0 {
			fmt.Printf("  • v%s (latest)\n", version)
		} else {
			fmt.Printf("  • v%s\n", version)
		}
	}
	return nil
}

func runConsumeList() error {
	svc, err := newDiscoverService()
	if err != nil {
		return err
	}

	all, err := svc.All(context.Background(), listLimit)
	if err != nil {
		return err
	}

	fmt.Printf("📋 %d server(s) in the registry:\n\n", len(all))
	for _, summary := range all {
		printSummary(summary)
	}
	return nil
}

func runConsumeInstall(name, version string) error {
	svc, err := newDiscoverService()
	if err != nil {
		return err
	}

	detail, err := svc.GetDetails(context.Background(), name, version)
	if err != nil {
		return err
	}

	instructions := discover.Instructions(detail)

	fmt.Printf("📖 Installation guide for %s\n\n", instructions.ServerName)

	if len(instructions.Steps) > 0 {
		for _, step := range instructions.Steps {
			fmt.Printf("# %s\n%s\n\n", step.Description, step.Command)
		}
	}

	for _, remote := range instructions.Remotes {
		fmt.Printf("# Hosted endpoint (%s)\n%s\n\n", remote.Type, remote.URL)
	}

	if instructions.ClientConfig != "" {
		fmt.Printf("# Add to your MCP client config:\n%s\n", instructions.ClientConfig)
	}

	if len(instructions.Steps) == 0 && len(instructions.Remotes) == 0 {
		fmt.Printf("No installation metadata published for this server.\n")
	}
	return nil
}

func printSummary(summary discover.ServerSummary) {
	fmt.Printf("📦 %s@%s\n", summary.Name, summary.Version)
	if summary.Title != "" {
		fmt.Printf("   %s\n", summary.Title)
	}
	if summary.Description != "" {
		fmt.Printf("   %s\n", summary.Description)
	}
	fmt.Printf("\n")
}
