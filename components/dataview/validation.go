package dataview

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrInvalidRecord wraps every schema violation reported for a new row.
var ErrInvalidRecord = errors.New("dataview: invalid record")

// schemaBaseURL keeps compiled schema ids off the local filesystem.
const schemaBaseURL = "mem://dataview/"

// RecordValidator validates values of a new row against its table schema.
type RecordValidator interface {
	Validate(def TableDefinition, values map[string]string) error
}

// JSONSchemaValidator compiles table schemas and validates rows.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Validate ensures the row satisfies the table schema.
func (v *JSONSchemaValidator) Validate(def TableDefinition, values map[string]string) error {
	if len(def.Schema) == 0 {
		return nil
	}
	schema, err := v.schemaFor(def)
	if err != nil {
		return err
	}
	payload := make(map[string]any, len(values))
	for k, val := range values {
		payload[k] = val
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("%w: row for %s: %w", ErrInvalidRecord, def.Code, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(def TableDefinition) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[def.Code]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(def.Schema)
	if err != nil {
		return nil, fmt.Errorf("dataview: marshal schema %s: %w", def.Code, err)
	}
	compiler := jsonschema.NewCompiler()
	name := schemaBaseURL + def.Code + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("dataview: load schema %s: %w", def.Code, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("dataview: compile schema %s: %w", def.Code, err)
	}
	v.mu.Lock()
	v.compiled[def.Code] = compiled
	v.mu.Unlock()
	return compiled, nil
}
