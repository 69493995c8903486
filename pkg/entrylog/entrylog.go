// Package entrylog decodes exported symptom logs (JSON or YAML) into
// entries. Shape problems are rejected up front; timestamps that cannot be
// resolved are kept as zero values so the timeline reports them per entry.
package entrylog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/symptomline/pkg/symptom"
	"github.com/Sumatoshi-tech/symptomline/pkg/textutil"
)

// Format is the serialization of an export.
type Format string

// Supported formats.
const (
	FormatAuto Format = ""
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrDecode is returned when an export is not well-formed JSON or YAML.
var ErrDecode = errors.New("decode entry export")

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// Record is one entry as it appears in an export.
type Record struct {
	ID        string  `json:"id,omitempty" yaml:"id,omitempty"`
	Name      string  `json:"name" yaml:"name"`
	Category  string  `json:"category,omitempty" yaml:"category,omitempty"`
	Severity  float64 `json:"severity" yaml:"severity"`
	Timestamp any     `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Notes     string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Entry resolves the record. An unresolvable timestamp leaves Timestamp zero.
func (r Record) Entry(loc *time.Location) symptom.Entry {
	ts, _ := ParseTimestamp(r.Timestamp, loc)

	return symptom.Entry{
		ID:        r.ID,
		Name:      r.Name,
		Category:  symptom.ParseCategory(r.Category),
		Severity:  r.Severity,
		Timestamp: ts,
		Notes:     r.Notes,
	}
}

// Resolve converts records to entries, assigning positional ids to records
// without one.
func Resolve(records []Record, loc *time.Location) []symptom.Entry {
	entries := make([]symptom.Entry, len(records))

	for i, r := range records {
		if r.ID == "" {
			r.ID = fmt.Sprintf("#%d", i+1)
		}

		entries[i] = r.Entry(loc)
	}

	return entries
}

// Decoder reads exports.
type Decoder struct {
	// Location resolves timestamps written without a zone. Nil means time.Local.
	Location *time.Location
	// Format forces a format; FormatAuto sniffs the content.
	Format Format
}

// ReadFile decodes the export at path; "-" reads standard input.
func (d Decoder) ReadFile(path string) ([]symptom.Entry, error) {
	var (
		data []byte
		err  error
	)

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}

	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if d.Format == FormatAuto {
		d.Format = FormatFromPath(path)
	}

	entries, err := d.DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return entries, nil
}

// Decode reads an export from r.
func (d Decoder) Decode(r io.Reader) ([]symptom.Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	return d.DecodeBytes(data)
}

// DecodeBytes parses, validates and resolves an export.
func (d Decoder) DecodeBytes(data []byte) ([]symptom.Entry, error) {
	records, err := d.Records(data)
	if err != nil {
		return nil, err
	}

	return Resolve(records, d.Location), nil
}

// Records parses and validates an export without resolving timestamps.
func (d Decoder) Records(data []byte) ([]Record, error) {
	data = textutil.TrimBOM(data)

	if textutil.IsBinary(data) {
		return nil, fmt.Errorf("%w: input is binary", ErrDecode)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []Record{}, nil
	}

	doc, err := d.document(data)
	if err != nil {
		return nil, err
	}

	err = Validate(doc)
	if err != nil {
		return nil, err
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if _, isList := doc.([]any); isList {
		var records []Record

		err = json.Unmarshal(normalized, &records)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}

		return records, nil
	}

	var wrapped struct {
		Entries []Record `json:"entries"`
	}

	err = json.Unmarshal(normalized, &wrapped)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return wrapped.Entries, nil
}

func (d Decoder) document(data []byte) (any, error) {
	format := d.Format
	if format == FormatAuto {
		format = sniff(data)
	}

	if format == FormatJSON {
		var doc any

		err := json.Unmarshal(data, &doc)
		if err != nil {
			return nil, fmt.Errorf("%w: json: %w", ErrDecode, err)
		}

		return doc, nil
	}

	var node yaml.Node

	err := yaml.Unmarshal(data, &node)
	if err != nil {
		return nil, fmt.Errorf("%w: yaml: %w", ErrDecode, err)
	}

	doc, err := plainValue(&node)
	if err != nil {
		return nil, fmt.Errorf("%w: yaml: %w", ErrDecode, err)
	}

	return doc, nil
}

func sniff(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') && json.Valid(trimmed) {
		return FormatJSON
	}

	return FormatYAML
}

// MaxYAMLNodes bounds the nodes produced from one YAML export once aliases
// are expanded.
const MaxYAMLNodes = 1 << 20

// YAML structure errors, reported wrapped in ErrDecode.
var (
	ErrAliasCycle   = errors.New("alias refers to itself")
	ErrTooManyNodes = errors.New("document expands to too many nodes")
)

// nodeConverter turns YAML nodes into JSON-compatible values. Timestamps
// stay as their source text so zone-less values resolve in the decoder
// location.
type nodeConverter struct {
	// expanding holds the anchors of the aliases on the current path.
	expanding map[*yaml.Node]bool
	budget    int
}

func plainValue(n *yaml.Node) (any, error) {
	c := nodeConverter{expanding: make(map[*yaml.Node]bool), budget: MaxYAMLNodes}

	return c.convert(n)
}

func (c *nodeConverter) convert(n *yaml.Node) (any, error) {
	c.budget--
	if c.budget < 0 {
		return nil, fmt.Errorf("%w (max %d)", ErrTooManyNodes, MaxYAMLNodes)
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}

		return c.convert(n.Content[0])
	case yaml.AliasNode:
		return c.alias(n)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))

		for _, child := range n.Content {
			v, err := c.convert(child)
			if err != nil {
				return nil, err
			}

			out = append(out, v)
		}

		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)

		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := c.convert(n.Content[i+1])
			if err != nil {
				return nil, err
			}

			out[n.Content[i].Value] = v
		}

		return out, nil
	case yaml.ScalarNode:
		if n.ShortTag() == "!!timestamp" {
			return n.Value, nil
		}

		var v any

		err := n.Decode(&v)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}

		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported yaml node kind %d", n.Line, n.Kind)
	}
}

func (c *nodeConverter) alias(n *yaml.Node) (any, error) {
	if n.Alias == nil {
		return nil, fmt.Errorf("line %d: unknown anchor %q", n.Line, n.Value)
	}

	if c.expanding[n.Alias] {
		return nil, fmt.Errorf("line %d: %w: *%s", n.Line, ErrAliasCycle, n.Value)
	}

	c.expanding[n.Alias] = true
	defer delete(c.expanding, n.Alias)

	return c.convert(n.Alias)
}
