package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mcpreg/internal/descriptor"
	"mcpreg/internal/publish"
)

func runPublish(cmd *cobra.Command) error {
	cfg, err := resolvePublishConfig(cmd)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Printf("🌐 Registry: %s\n", cfg.BaseURL)
		fmt.Printf("📄 Descriptor: %s\n", cfg.DescriptorPath)
		fmt.Printf("🔧 Update mode: %v\n", cfg.UpdateMode)
	}

	// Show what we are about to publish before touching the network
	if d, err := descriptor.Load(cfg.DescriptorPath); err == nil {
		printDescriptorSummary(d)
	}

	publisher := publish.New(cfg)
	publisher.SetVerbose(verbose)

	result, err := publisher.Run(context.Background())
	if err != nil {
		var violations *publish.SchemaViolationError
		if errors.As(err, &violations) {
			fmt.Printf("❌ Descriptor failed validation:\n")
			for _, v := range violations.Violations {
				path := v.Path
				if path == "" {
					path = "/"
				}
				fmt.Printf("   %s: %s\n", path, v.Message)
			}
			return fmt.Errorf("%d schema violation(s)", len(violations.Violations))
		}
		return err
	}

	switch result.Status {
	case publish.StatusUpdated:
		fmt.Printf("✅ Updated %s v%s\n", result.Name, result.Version)
	default:
		fmt.Printf("✅ Published %s v%s\n", result.Name, result.Version)
	}
	fmt.Printf("📌 Server ID: %s\n", result.ServerID)

	if result.Verified {
		fmt.Printf("🔎 Verified: registry returned v%s on read-back\n", result.Version)
	} else {
		// Ran to completion, so still exit zero - but say it loudly.
		fmt.Printf("⚠️  NOT VERIFIED: the registry did not return v%s on read-back.\n", result.Version)
		fmt.Printf("⚠️  The publish may have partially succeeded; check the registry directly.\n")
	}

	return nil
}

func printDescriptorSummary(d *descriptor.Descriptor) {
	fmt.Printf("📦 %s\n", d.Name())
	if d.Title() != "" {
		fmt.Printf("   Title:       %s\n", d.Title())
	}
	fmt.Printf("   Version:     %s\n", d.Version())
	if desc := d.Description(); desc != "" {
		if len(desc) > 60 {
			desc = desc[:60] + "..."
		}
		fmt.Printf("   Description: %s\n", desc)
	}

	if pkgs := d.Packages(); len(pkgs) > 0 {
		fmt.Printf("   Packages:    %d\n", len(pkgs))
		for _, pkg := range pkgs {
			fmt.Printf("      - %s: %s\n", stringValue(pkg, "registryType"), stringValue(pkg, "identifier"))
		}
	}
	if remotes := d.Remotes(); len(remotes) > 0 {
		fmt.Printf("   Remotes:     %d\n", len(remotes))
		for _, remote := range remotes {
			fmt.Printf("      - %s: %s\n", stringValue(remote, "type"), stringValue(remote, "url"))
		}
	}
	fmt.Println()
}

func stringValue(m map[string]interface{}, key string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	return ""
}
