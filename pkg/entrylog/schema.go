package entrylog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidExport is returned when an export does not match the entry log shape.
var ErrInvalidExport = errors.New("invalid entry export")

// exportSchema accepts either a bare list of entries or {"entries": [...]}.
const exportSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {
    "entry": {
      "type": "object",
      "required": ["name", "severity"],
      "properties": {
        "id": {"type": "string"},
        "name": {"type": "string", "minLength": 1},
        "category": {"type": ["string", "null"]},
        "severity": {"type": "number"},
        "timestamp": {"type": ["string", "number", "null"]},
        "notes": {"type": ["string", "null"]}
      }
    },
    "entries": {
      "type": "array",
      "items": {"$ref": "#/definitions/entry"}
    }
  },
  "oneOf": [
    {"$ref": "#/definitions/entries"},
    {
      "type": "object",
      "required": ["entries"],
      "properties": {"entries": {"$ref": "#/definitions/entries"}}
    }
  ]
}`

// ValidationError lists schema violations found in an export.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidExport, strings.Join(e.Issues, "; "))
}

// Is makes errors.Is(err, ErrInvalidExport) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidExport
}

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	errSchema  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(exportSchema))
		if err != nil {
			errSchema = fmt.Errorf("compile export schema: %w", err)

			return
		}

		schema = s
	})

	return schema, errSchema
}

// Validate checks a generically decoded document against the export schema.
func Validate(doc any) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}

	result, err := s.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidExport, err)
	}

	if result.Valid() {
		return nil
	}

	issues := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		issues = append(issues, fmt.Sprintf("%s: %s", verr.Field(), verr.Description()))
	}

	return &ValidationError{Issues: issues}
}
