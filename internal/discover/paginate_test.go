package discover

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"mcpreg/internal/client"
)

// pagedRegistry serves n servers in pages of the requested size with
// numeric cursors
func pagedRegistry(t *testing.T, n int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		if limit <= 0 {
			limit = defaultLimit
		}
		offset := 0
		if cursor := r.URL.Query().Get("cursor"); cursor != "" {
			offset, _ = strconv.Atoi(cursor)
		}

		var servers []interface{}
		for i := offset; i < n && i < offset+limit; i++ {
			servers = append(servers, serverEntry(fmt.Sprintf("io.example/server-%03d", i), "1.0.0"))
		}

		metadata := map[string]interface{}{"count": len(servers)}
		if offset+limit < n {
			metadata["nextCursor"] = strconv.Itoa(offset + limit)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"servers":  servers,
			"metadata": metadata,
		})
	}))
}

func TestPaginateAll(t *testing.T) {
	t.Run("yields every item exactly once", func(t *testing.T) {
		const total = 25
		srv := pagedRegistry(t, total)
		defer srv.Close()

		svc := newTestService(srv.URL)
		all, err := svc.All(context.Background(), 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(all) != total {
			t.Fatalf("expected %d servers, got %d", total, len(all))
		}
		seen := make(map[string]bool)
		for _, summary := range all {
			if seen[summary.Name] {
				t.Errorf("duplicate entry %q", summary.Name)
			}
			seen[summary.Name] = true
		}
	})

	t.Run("page size does not change the result", func(t *testing.T) {
		const total = 17
		srv := pagedRegistry(t, total)
		defer srv.Close()

		svc := newTestService(srv.URL)
		for _, limit := range []int{1, 5, 17, 50} {
			all, err := svc.All(context.Background(), limit)
			if err != nil {
				t.Fatalf("limit %d: unexpected error: %v", limit, err)
			}
			if len(all) != total {
				t.Errorf("limit %d: expected %d servers, got %d", limit, total, len(all))
			}
		}
	})

	t.Run("empty catalog", func(t *testing.T) {
		srv := pagedRegistry(t, 0)
		defer srv.Close()

		svc := newTestService(srv.URL)
		all, err := svc.All(context.Background(), 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(all) != 0 {
			t.Errorf("expected empty catalog, got %d", len(all))
		}
	})

	t.Run("pager is restartable", func(t *testing.T) {
		srv := pagedRegistry(t, 8)
		defer srv.Close()

		svc := newTestService(srv.URL)
		first, err := svc.All(context.Background(), 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := svc.All(context.Background(), 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(first) != len(second) {
			t.Errorf("restarted pagination differs: %d vs %d", len(first), len(second))
		}
	})
}

func TestPaginationStall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Always hand back the same cursor
		json.NewEncoder(w).Encode(map[string]interface{}{
			"servers":  []interface{}{serverEntry("io.example/s", "1.0.0")},
			"metadata": map[string]interface{}{"nextCursor": "stuck"},
		})
	}))
	defer srv.Close()

	svc := newTestService(srv.URL)
	_, err := svc.All(context.Background(), 10)
	if !errors.Is(err, client.ErrPaginationStalled) {
		t.Fatalf("expected ErrPaginationStalled, got %v", err)
	}

	// The pager must not be stuck in a loop afterwards either
	pager := svc.Pager(10)
	if _, err := pager.Next(context.Background()); err != nil {
		t.Fatalf("first page should succeed: %v", err)
	}
	if _, err := pager.Next(context.Background()); !errors.Is(err, client.ErrPaginationStalled) {
		t.Fatalf("expected stall on second page, got %v", err)
	}
	if page, err := pager.Next(context.Background()); page != nil || err != nil {
		t.Fatalf("stalled pager should be finished, got %v %v", page, err)
	}
}
