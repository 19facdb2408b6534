package discover

import (
	"encoding/json"
	"fmt"

	"mcpreg/internal/client"
)

// InstallStep is one concrete action a user can take to install or run a server
type InstallStep struct {
	Description string
	Command     string
}

// RemoteEndpoint is a hosted alternative to local installation
type RemoteEndpoint struct {
	Type string
	URL  string
}

// InstallInstructions is a structured installation guide derived from a
// server's package and transport metadata
type InstallInstructions struct {
	ServerName   string
	Steps        []InstallStep
	Remotes      []RemoteEndpoint
	ClientConfig string // MCP client configuration snippet (JSON)
}

// Instructions derives installation instructions from a server detail.
// Pure function of the descriptor's package/transport metadata; makes no
// network calls.
func Instructions(detail *ServerDetail) InstallInstructions {
	server := detail.Server
	instructions := InstallInstructions{ServerName: server.Name}

	for _, pkg := range server.Packages {
		if step, ok := installStep(pkg); ok {
			instructions.Steps = append(instructions.Steps, step)
		}
		if step, ok := runStep(pkg); ok {
			instructions.Steps = append(instructions.Steps, step)
		}
	}

	if len(server.Packages) == 0 && server.Repository != nil {
		instructions.Steps = append(instructions.Steps, InstallStep{
			Description: "No pre-packaged installation available; clone and build from source",
			Command:     fmt.Sprintf("git clone %s", server.Repository.URL),
		})
	}

	for _, remote := range server.Remotes {
		instructions.Remotes = append(instructions.Remotes, RemoteEndpoint{
			Type: remote.Type,
			URL:  remote.URL,
		})
	}

	instructions.ClientConfig = clientConfig(server)
	return instructions
}

// installStep maps a package's registry type to its package-manager command
func installStep(pkg client.Package) (InstallStep, bool) {
	id := pkg.Identifier
	if pkg.Version != "" {
		switch pkg.RegistryType {
		case "npm", "nuget":
			id = fmt.Sprintf("%s@%s", pkg.Identifier, pkg.Version)
		case "pypi":
			id = fmt.Sprintf("%s==%s", pkg.Identifier, pkg.Version)
		case "oci", "docker":
			id = fmt.Sprintf("%s:%s", pkg.Identifier, pkg.Version)
		}
	}

	switch pkg.RegistryType {
	case "npm":
		return InstallStep{Description: "Install from npm", Command: "npm install -g " + id}, true
	case "pypi":
		return InstallStep{Description: "Install from PyPI", Command: "pip install " + id}, true
	case "oci", "docker":
		return InstallStep{Description: "Pull container image", Command: "docker pull " + id}, true
	case "nuget":
		return InstallStep{Description: "Install from NuGet", Command: "dotnet tool install -g " + id}, true
	case "mcpb":
		return InstallStep{Description: "Download MCP bundle", Command: "curl -LO " + pkg.Identifier}, true
	}
	return InstallStep{}, false
}

// runStep maps a package's runtime hint to a run command
func runStep(pkg client.Package) (InstallStep, bool) {
	switch pkg.RuntimeHint {
	case "npx":
		return InstallStep{Description: "Run without installing", Command: "npx -y " + pkg.Identifier}, true
	case "uvx":
		return InstallStep{Description: "Run without installing", Command: "uvx " + pkg.Identifier}, true
	case "docker":
		return InstallStep{Description: "Run the container", Command: "docker run -i --rm " + pkg.Identifier}, true
	case "dnx":
		return InstallStep{Description: "Run without installing", Command: "dnx " + pkg.Identifier}, true
	}
	return InstallStep{}, false
}

// clientConfig renders an MCP client configuration snippet. Remote servers
// are referenced by URL; local packages by their run command.
func clientConfig(server client.ServerJSON) string {
	key := client.SimpleName(server.Name)

	entry := make(map[string]interface{})
	switch {
	case len(server.Remotes) > 0:
		entry["type"] = server.Remotes[0].Type
		entry["url"] = server.Remotes[0].URL
	case len(server.Packages) > 0:
		pkg := server.Packages[0]
		if step, ok := runStep(pkg); ok {
			entry["command"] = step.Command
		} else {
			entry["command"] = pkg.Identifier
		}
	default:
		return ""
	}

	config := map[string]interface{}{
		"mcpServers": map[string]interface{}{
			key: entry,
		},
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}
