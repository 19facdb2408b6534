// Package discover implements the read side of the registry client:
// search, detail fetch, version listing, catalog pagination, and
// installation-instruction derivation.
package discover

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	gocache "github.com/patrickmn/go-cache"

	"mcpreg/internal/client"
)

const (
	cacheTTL     = 5 * time.Minute
	cacheSweep   = 10 * time.Minute
	defaultLimit = 30
)

// ServerSummary is a one-line projection of a server listing entry
type ServerSummary struct {
	Name        string
	Version     string
	Title       string
	Description string
	IsLatest    bool
	PublishedAt string
}

// ServerDetail is the full record for one server version
type ServerDetail struct {
	Server client.ServerJSON
	Meta   client.RegistryMeta
}

// Service exposes the discovery operations. All operations are idempotent
// and side-effect-free; responses are cached briefly to ride out registry
// hiccups.
type Service struct {
	client *client.Client
	cache  *gocache.Cache
}

// New creates a discovery service for the given registry client
func New(c *client.Client) *Service {
	return &Service{
		client: c,
		cache:  gocache.New(cacheTTL, cacheSweep),
	}
}

// Search finds servers whose name matches the query. An empty result set is
// a valid outcome; an empty query is not.
func (s *Service) Search(ctx context.Context, query string) ([]ServerSummary, error) {
	if strings.TrimSpace(query) == "" {
		return nil, client.NewRegistryError(client.ErrInvalidQuery, "search query cannot be empty")
	}

	cacheKey := "search:" + query
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.([]ServerSummary), nil
	}

	resp, err := s.client.ListServers(ctx, client.ListOptions{
		Search: query,
		Limit:  defaultLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	summaries := toSummaries(resp.Servers)
	s.cache.Set(cacheKey, summaries, gocache.DefaultExpiration)
	return summaries, nil
}

// GetDetails fetches one server version. An empty version resolves to the
// latest published version.
func (s *Service) GetDetails(ctx context.Context, name, version string) (*ServerDetail, error) {
	cacheKey := "detail:" + name + "@" + version
	if cached, found := s.cache.Get(cacheKey); found {
		detail := cached.(ServerDetail)
		return &detail, nil
	}

	resp, err := s.client.GetServer(ctx, name, version)
	if err != nil {
		return nil, err
	}

	detail := ServerDetail{
		Server: resp.Server,
		Meta:   *resp.Official(),
	}
	s.cache.Set(cacheKey, detail, gocache.DefaultExpiration)
	return &detail, nil
}

// ListVersions returns every published version of a server, newest first.
// Semantic versions sort by precedence; anything unparseable sorts after
// them, lexically descending.
func (s *Service) ListVersions(ctx context.Context, name string) ([]string, error) {
	resp, err := s.client.ListServerVersions(ctx, name)
	if err != nil {
		return nil, err
	}

	versions := make([]string, 0, len(resp.Versions))
	for _, entry := range resp.Versions {
		if entry.Version.Version != "" {
			versions = append(versions, entry.Version.Version)
		}
	}

	sortVersionsNewestFirst(versions)
	return versions, nil
}

func sortVersionsNewestFirst(versions []string) {
	parsed := make(map[string]*semver.Version, len(versions))
	for _, v := range versions {
		if sv, err := semver.NewVersion(v); err == nil {
			parsed[v] = sv
		}
	}

	sort.SliceStable(versions, func(i, j int) bool {
		vi, iOK := parsed[versions[i]]
		vj, jOK := parsed[versions[j]]
		switch {
		case iOK && jOK:
			return vi.GreaterThan(vj)
		case iOK:
			return true
		case jOK:
			return false
		default:
			return versions[i] > versions[j]
		}
	})
}

func toSummaries(servers []client.ServerResponse) []ServerSummary {
	summaries := make([]ServerSummary, 0, len(servers))
	for i := range servers {
		srv := &servers[i]
		meta := srv.Official()
		summaries = append(summaries, ServerSummary{
			Name:        srv.Server.Name,
			Version:     srv.Server.Version,
			Title:       srv.Server.Title,
			Description: srv.Server.Description,
			IsLatest:    meta.IsLatest,
			PublishedAt: meta.PublishedAt,
		})
	}
	return summaries
}
