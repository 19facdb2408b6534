package client

import "strings"

// ServerJSON is the descriptor shape stored by the registry
type ServerJSON struct {
	Schema      string      `json:"$schema,omitempty"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Version     string      `json:"version"`
	Title       string      `json:"title,omitempty"`
	WebsiteURL  string      `json:"websiteUrl,omitempty"`
	Repository  *Repository `json:"repository,omitempty"`
	Packages    []Package   `json:"packages,omitempty"`
	Remotes     []Remote    `json:"remotes,omitempty"`
}

// Repository contains source repository information
type Repository struct {
	URL    string `json:"url"`
	Source string `json:"source"`
	ID     string `json:"id,omitempty"`
}

// Package describes one installable distribution of a server
type Package struct {
	RegistryType    string     `json:"registryType"`
	RegistryBaseURL string     `json:"registryBaseUrl,omitempty"`
	Identifier      string     `json:"identifier"`
	Version         string     `json:"version,omitempty"`
	RuntimeHint     string     `json:"runtimeHint,omitempty"`
	Transport       *Transport `json:"transport,omitempty"`
}

// Remote is a hosted endpoint for a server
type Remote struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

// Transport defines how a package is spoken to once running
type Transport struct {
	Type string `json:"type"`
	URL  string `json:"url,omitempty"`
}

// RegistryMeta is the registry-managed metadata attached to each response
type RegistryMeta struct {
	ServerID    string `json:"serverId,omitempty"`
	Status      string `json:"status,omitempty"`
	PublishedAt string `json:"publishedAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
	IsLatest    bool   `json:"isLatest,omitempty"`
}

// ResponseMeta wraps the namespaced _meta object
type ResponseMeta struct {
	Official *RegistryMeta `json:"io.modelcontextprotocol.registry/official,omitempty"`
}

// ServerResponse is one server version with its registry metadata
type ServerResponse struct {
	Server ServerJSON   `json:"server"`
	Meta   ResponseMeta `json:"_meta"`
}

// ListMetadata carries pagination info for listing responses
type ListMetadata struct {
	NextCursor string `json:"nextCursor,omitempty"`
	Count      int    `json:"count,omitempty"`
}

// ServerListResponse is a page of servers
type ServerListResponse struct {
	Servers  []ServerResponse `json:"servers"`
	Metadata ListMetadata     `json:"metadata"`
}

// VersionEntry is one version record in a version listing
type VersionEntry struct {
	Version ServerJSON   `json:"version"`
	Meta    ResponseMeta `json:"_meta"`
}

// VersionListResponse lists every published version of one server
type VersionListResponse struct {
	Versions []VersionEntry `json:"versions"`
}

// Official returns the registry-managed metadata, never nil
func (r *ServerResponse) Official() *RegistryMeta {
	if r.Meta.Official != nil {
		return r.Meta.Official
	}
	return &RegistryMeta{}
}

// SimpleName extracts the short server name from a reverse-DNS identifier.
// "io.example/mcp-math-server" becomes "mcp-math-server"; names without a
// namespace are returned unchanged.
func SimpleName(name string) string {
	idx := strings.LastIndex(name, "/")
	if idx >= 0 && idx < len(name)-1 {
		return name[idx+1:]
	}
	return name
}
