// Package publish orchestrates the publish workflow:
// load descriptor, validate, authenticate, create or update, verify.
package publish

import (
	"context"
	"fmt"
	"strings"

	"mcpreg/internal/client"
	"mcpreg/internal/config"
	"mcpreg/internal/descriptor"
)

// Status says whether the registry entry was created or replaced
type Status string

const (
	StatusCreated Status = "created"
	StatusUpdated Status = "updated"
)

// Result is the outcome of a completed publish. It is only produced after
// the verification read-back has run; Verified reports whether the registry
// returned the submitted version.
type Result struct {
	ServerID string
	Name     string
	Version  string
	Status   Status
	Verified bool
}

// SchemaViolationError carries the full violation list from a failed
// validation, not just the first entry.
type SchemaViolationError struct {
	Violations []descriptor.Violation
}

func (e *SchemaViolationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "descriptor failed schema validation (%d violation(s))", len(e.Violations))
	for _, v := range e.Violations {
		path := v.Path
		if path == "" {
			path = "/"
		}
		fmt.Fprintf(&b, "\n  %s: %s", path, v.Message)
	}
	return b.String()
}

// Publisher runs the publish pipeline against one registry
type Publisher struct {
	cfg     config.RegistryConfig
	client  *client.Client
	verbose bool
}

// New creates a publisher for the given configuration
func New(cfg config.RegistryConfig) *Publisher {
	return &Publisher{
		cfg:    cfg,
		client: client.NewClient(cfg.BaseURL),
	}
}

// SetVerbose enables progress and request logging
func (p *Publisher) SetVerbose(verbose bool) {
	p.verbose = verbose
	p.client.SetVerbose(verbose)
}

// Client returns the underlying registry client
func (p *Publisher) Client() *client.Client {
	return p.client
}

// Run executes the pipeline. Each stage is gated on the previous one; the
// only partial outcome is a successful submit whose read-back did not match,
// which is reported as Result.Verified=false rather than an error.
func (p *Publisher) Run(ctx context.Context) (*Result, error) {
	// Stage 1: load
	d, err := descriptor.Load(p.cfg.DescriptorPath)
	if err != nil {
		return nil, err
	}

	// Stage 2: validate, before any publish network call. The name/version
	// check runs first so a descriptor missing either fails even when the
	// schema cannot be fetched.
	if vs := requiredFields(d); len(vs) > 0 {
		return nil, &SchemaViolationError{Violations: vs}
	}
	schema, err := descriptor.LoadSchema(ctx, p.cfg.SchemaSource())
	if err != nil {
		return nil, err
	}
	if res := descriptor.Validate(d, schema); !res.Valid {
		return nil, &SchemaViolationError{Violations: res.Violations}
	}

	name := d.Name()
	version := d.Version()

	if p.verbose {
		fmt.Printf("📦 Publishing %s v%s to %s\n", name, version, p.cfg.BaseURL)
	}

	// Pre-flight connectivity check
	if err := p.client.Health(ctx); err != nil {
		return nil, fmt.Errorf("registry health check failed: %w", err)
	}

	// Stage 3: authenticate
	token, err := p.client.Authenticate(ctx, p.cfg)
	if err != nil {
		return nil, err
	}

	// Stage 4: submit
	var resp *client.ServerResponse
	status := StatusCreated
	if p.cfg.UpdateMode {
		status = StatusUpdated
		resp, err = p.client.UpdateServerVersion(ctx, name, version, d.Raw(), token.Value)
	} else {
		resp, err = p.client.PublishServer(ctx, d.Raw(), token.Value)
	}
	if err != nil {
		return nil, err
	}

	result := &Result{
		ServerID: resp.Official().ServerID,
		Name:     name,
		Version:  version,
		Status:   status,
	}
	if result.ServerID == "" {
		result.ServerID = name
	}

	// Stage 5: verify with a read-back. A failed read-back is not a hard
	// failure: the registry may have stored the entry anyway, and the
	// caller must be told that explicitly.
	result.Verified = p.verify(ctx, name, version)

	return result, nil
}

// requiredFields reports the fields a descriptor cannot be published without
func requiredFields(d *descriptor.Descriptor) []descriptor.Violation {
	var vs []descriptor.Violation
	if d.Name() == "" {
		vs = append(vs, descriptor.Violation{Path: "/name", Message: "required field is missing", Keyword: "required"})
	}
	if d.Version() == "" {
		vs = append(vs, descriptor.Violation{Path: "/version", Message: "required field is missing", Keyword: "required"})
	}
	return vs
}

// verify re-fetches the just-published version and confirms it round-tripped
func (p *Publisher) verify(ctx context.Context, name, version string) bool {
	got, err := p.client.GetServer(ctx, name, version)
	if err != nil {
		if p.verbose {
			fmt.Printf("⚠️  Verification fetch failed: %v\n", err)
		}
		return false
	}
	return got.Server.Version == version
}
