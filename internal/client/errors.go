package client

import "fmt"

// Common registry error types
var (
	ErrUnreachable       = fmt.Errorf("registry unreachable")
	ErrRejected          = fmt.Errorf("request rejected")
	ErrMalformedResponse = fmt.Errorf("malformed response")
	ErrAuthRequired      = fmt.Errorf("authentication required")
	ErrAuthFailed        = fmt.Errorf("authentication failed")
	ErrNotFound          = fmt.Errorf("server not found")
	ErrVersionExists     = fmt.Errorf("version already exists")
	ErrVersionNotFound   = fmt.Errorf("version not found")
	ErrInvalidQuery      = fmt.Errorf("invalid query")
	ErrPaginationStalled = fmt.Errorf("pagination stalled")
)

// RegistryError provides detailed error information
type RegistryError struct {
	Type       error
	Message    string
	StatusCode int
	Details    map[string]interface{}
}

func (e *RegistryError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%v: %s", e.Type, e.Message)
	}
	return e.Type.Error()
}

func (e *RegistryError) Unwrap() error {
	return e.Type
}

// NewRegistryError creates a new registry error
func NewRegistryError(errType error, message string) *RegistryError {
	return &RegistryError{
		Type:    errType,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// newStatusError creates a registry error that records the HTTP status
func newStatusError(errType error, status int, message string) *RegistryError {
	err := NewRegistryError(errType, message)
	err.StatusCode = status
	err.Details["status"] = status
	return err
}
