package discover

import (
	"context"
	"fmt"

	"mcpreg/internal/client"
)

// Pager walks the full catalog one page at a time using the registry's
// opaque cursor. Cursors are passed back unmodified. A Pager is single-use;
// construct a new one to restart from the beginning.
type Pager struct {
	client   *client.Client
	limit    int
	cursor   string
	started  bool
	finished bool
}

// Pager creates a fresh catalog pager. A limit of zero uses the default
// page size.
func (s *Service) Pager(limit int) *Pager {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Pager{client: s.client, limit: limit}
}

// Next fetches the next page. It returns (nil, nil) once the catalog is
// exhausted. A registry that hands back the same cursor twice in a row
// would loop forever, so that is detected and surfaced as an error.
func (p *Pager) Next(ctx context.Context) ([]ServerSummary, error) {
	if p.finished {
		return nil, nil
	}

	resp, err := p.client.ListServers(ctx, client.ListOptions{
		Limit:  p.limit,
		Cursor: p.cursor,
	})
	if err != nil {
		return nil, err
	}

	next := resp.Metadata.NextCursor
	switch {
	case next == "":
		p.finished = true
	case p.started && next == p.cursor:
		p.finished = true
		return nil, client.NewRegistryError(client.ErrPaginationStalled,
			fmt.Sprintf("registry returned cursor %q twice in a row", next))
	default:
		p.cursor = next
	}
	p.started = true

	return toSummaries(resp.Servers), nil
}

// All collects the entire catalog by draining a fresh pager sequentially,
// one outstanding request at a time.
func (s *Service) All(ctx context.Context, limit int) ([]ServerSummary, error) {
	pager := s.Pager(limit)

	var all []ServerSummary
	for {
		page, err := pager.Next(ctx)
		if err != nil {
			return nil, err
		}
		if page == nil {
			return all, nil
		}
		all = append(all, page...)
	}
}
