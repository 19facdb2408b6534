package descriptor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaHTTPTimeout bounds the one-shot schema download.
const schemaHTTPTimeout = 10 * time.Second

// LoadSchema loads and compiles the registry's descriptor schema from a local
// file path or an http(s) URL. Validation itself never touches the network;
// this is the only place the schema document is fetched.
func LoadSchema(ctx context.Context, source string) (*jsonschema.Schema, error) {
	var data []byte
	var err error

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = fetchSchema(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load schema from %s: %w", source, err)
	}

	return CompileSchema(data, source)
}

// CompileSchema compiles raw schema bytes under the given resource name
func CompileSchema(data []byte, name string) (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return schema, nil
}

func fetchSchema(ctx context.Context, schemaURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", schemaURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	httpClient := &http.Client{Timeout: schemaHTTPTimeout}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("schema download failed with status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
