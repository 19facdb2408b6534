package descriptor

import (
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// ValidationResult contains the outcome of validating one descriptor.
type ValidationResult struct {
	Valid      bool
	Violations []Violation
}

// Violation is a single schema violation.
type Violation struct {
	Path    string // instance location, e.g. "/packages/0/identifier"
	Message string
	Keyword string // schema keyword that failed
}

// Validate checks a descriptor against the registry schema. All violations
// are collected, not just the first, so the caller sees the full set.
// Runs entirely locally.
func Validate(d *Descriptor, schema *jsonschema.Schema) *ValidationResult {
	err := schema.Validate(interface{}(d.raw))
	if err == nil {
		return &ValidationResult{Valid: true}
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &ValidationResult{
			Valid:      false,
			Violations: []Violation{{Message: err.Error()}},
		}
	}

	violations := collectViolations(validationErr, nil)
	if len(violations) == 0 {
		violations = []Violation{{Message: validationErr.Error()}}
	}

	return &ValidationResult{
		Valid:      false,
		Violations: dedupe(violations),
	}
}

// collectViolations walks the error tree and gathers leaf-level violations.
// Required-property failures are expanded into one violation per missing
// field so each field's own path is reported.
func collectViolations(ve *jsonschema.ValidationError, violations []Violation) []Violation {
	if len(ve.Causes) > 0 {
		for _, cause := range ve.Causes {
			violations = collectViolations(cause, violations)
		}
		return violations
	}

	path := instancePath(ve.InstanceLocation)

	if req, ok := ve.ErrorKind.(*kind.Required); ok {
		for _, missing := range req.Missing {
			violations = append(violations, Violation{
				Path:    path + "/" + missing,
				Message: "required field is missing",
				Keyword: "required",
			})
		}
		return violations
	}

	keyword := ""
	if ve.ErrorKind != nil {
		kwPath := ve.ErrorKind.KeywordPath()
		if len(kwPath) > 0 {
			keyword = kwPath[len(kwPath)-1]
		}
	}

	// Container keywords carry no field-level detail of their own
	if keyword == "" || keyword == "oneOf" || keyword == "anyOf" || keyword == "allOf" || keyword == "$ref" {
		return violations
	}

	msg := ""
	if ve.ErrorKind != nil {
		msg = ve.ErrorKind.LocalizedString(printer)
	}

	return append(violations, Violation{
		Path:    path,
		Message: msg,
		Keyword: keyword,
	})
}

func instancePath(location []string) string {
	if len(location) == 0 {
		return ""
	}
	return "/" + strings.Join(location, "/")
}

// dedupe removes duplicates; oneOf branches produce overlapping errors
func dedupe(violations []Violation) []Violation {
	seen := make(map[string]bool)
	var result []Violation
	for _, v := range violations {
		key := v.Path + "|" + v.Keyword + "|" + v.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, v)
		}
	}
	return result
}
