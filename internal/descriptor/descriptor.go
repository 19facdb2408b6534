// Package descriptor loads and validates server.json descriptor documents.
// Descriptors are kept as generic structured values: the registry schema is
// the contract, not a Go type, so the document is submitted verbatim.
package descriptor

import (
	"bytes"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	ErrDescriptorNotFound   = fmt.Errorf("descriptor not found")
	ErrDescriptorUnreadable = fmt.Errorf("descriptor unreadable")
)

// Descriptor is one loaded server.json document. Read-only after load.
type Descriptor struct {
	path string
	raw  map[string]interface{}
}

// Load reads and parses a descriptor file
func Load(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrDescriptorNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDescriptorUnreadable, path, err)
	}

	// Decode with json.Number semantics so schema validation sees the
	// numbers exactly as written.
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDescriptorUnreadable, path, err)
	}

	obj, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: %s: top-level value must be an object", ErrDescriptorUnreadable, path)
	}

	return &Descriptor{path: path, raw: obj}, nil
}

// Path returns the file the descriptor was loaded from
func (d *Descriptor) Path() string {
	return d.path
}

// Raw returns the descriptor document as submitted to the registry
func (d *Descriptor) Raw() map[string]interface{} {
	return d.raw
}

// Name returns the reverse-DNS server identifier
func (d *Descriptor) Name() string {
	return d.stringField("name")
}

// Version returns the descriptor's version string
func (d *Descriptor) Version() string {
	return d.stringField("version")
}

// Title returns the human-readable title, if any
func (d *Descriptor) Title() string {
	return d.stringField("title")
}

// Description returns the description, if any
func (d *Descriptor) Description() string {
	return d.stringField("description")
}

// Packages returns the package entries, if any
func (d *Descriptor) Packages() []map[string]interface{} {
	return d.objectList("packages")
}

// Remotes returns the remote endpoint entries, if any
func (d *Descriptor) Remotes() []map[string]interface{} {
	return d.objectList("remotes")
}

func (d *Descriptor) stringField(key string) string {
	if val, ok := d.raw[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func (d *Descriptor) objectList(key string) []map[string]interface{} {
	val, ok := d.raw[key]
	if !ok {
		return nil
	}
	items, ok := val.([]interface{})
	if !ok {
		return nil
	}

	var result []map[string]interface{}
	for _, item := range items {
		if obj, ok := item.(map[string]interface{}); ok {
			result = append(result, obj)
		}
	}
	return result
}
