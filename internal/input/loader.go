// Package input parses and validates serialized action logs: a JSON array
// of action-log entries, shape-checked against a JSON Schema before being
// handed to the auditor.
package input

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/sattva-labs/dharmakit/internal/model"
)

// ErrNotAnArray is returned when the parsed root is not an ordered
// collection. The auditor's contract requires a homogeneous array; objects
// or scalars are never coerced.
var ErrNotAnArray = errors.New("input: action log root must be a JSON array")

// entrySchema is the shape contract for one action-log entry. Feature
// bounds are not enforced here — the scoring formulas clamp — but required
// fields and types are.
const entrySchema = `{
	"type": "object",
	"required": ["id", "description", "agent", "features", "timestamp"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"description": {"type": "string"},
		"agent": {"type": "string"},
		"timestamp": {"type": "number"},
		"parentId": {"type": "string"},
		"svadharma": {"type": "string"},
		"features": {
			"type": "object",
			"required": ["altruism", "deliberation", "attachment", "agitation",
				"transparency", "effort", "harmPotential", "consistency"],
			"additionalProperties": {"type": "number"}
		}
	}
}`

// Loader validates and decodes action logs. The schema is compiled once at
// construction.
type Loader struct {
	schema *jsonschema.Schema
}

// NewLoader compiles the entry schema.
func NewLoader() (*Loader, error) {
	var schemaObj any
	if err := json.Unmarshal([]byte(entrySchema), &schemaObj); err != nil {
		return nil, fmt.Errorf("input: entry schema is not valid JSON: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("entry.json", schemaObj); err != nil {
		return nil, fmt.Errorf("input: schema resource: %w", err)
	}
	sch, err := c.Compile("entry.json")
	if err != nil {
		return nil, fmt.Errorf("input: schema compile: %w", err)
	}
	return &Loader{schema: sch}, nil
}

// Load reads a JSON action log from r. A non-array root fails with
// ErrNotAnArray; entries that fail schema validation are reported together,
// each with its index.
func (l *Loader) Load(r io.Reader) ([]model.AuditLogEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("input: read: %w", err)
	}

	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("input: parse: %w", err)
	}
	items, ok := root.([]any)
	if !ok {
		return nil, ErrNotAnArray
	}

	var shapeErrs []error
	for i, item := range items {
		if err := l.schema.Validate(item); err != nil {
			shapeErrs = append(shapeErrs, fmt.Errorf("entry %d: %w", i, err))
		}
	}
	if len(shapeErrs) > 0 {
		return nil, errors.Join(shapeErrs...)
	}

	var entries []model.AuditLogEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("input: decode: %w", err)
	}
	return entries, nil
}

// LoadFile reads a JSON action log from disk.
func (l *Loader) LoadFile(path string) ([]model.AuditLogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("input: open %s: %w", path, err)
	}
	defer f.Close()
	return l.Load(f)
}
