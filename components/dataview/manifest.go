package dataview

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// TableManifestDocument models a YAML manifest describing admin tables.
type TableManifestDocument struct {
	Version string          `json:"version" yaml:"version"`
	Name    string          `json:"name,omitempty" yaml:"name,omitempty"`
	Tables  []ManifestTable `json:"tables" yaml:"tables"`
	Source  string          `json:"-" yaml:"-"`
}

// ManifestTable is one table entry; Rows optionally seed a static source.
type ManifestTable struct {
	Definition TableDefinition     `json:"definition" yaml:"definition"`
	Rows       []map[string]string `json:"rows,omitempty" yaml:"rows,omitempty"`
	Tags       []string            `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// LoadManifestFile reads a manifest from disk and registers it.
func (r *Registry) LoadManifestFile(path string) (*TableManifestDocument, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument registers definitions and inline rows from a manifest.
func (r *Registry) LoadManifestDocument(doc *TableManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("dataview: manifest document is nil")
	}
	for _, table := range doc.Tables {
		if err := r.RegisterTable(table.Definition); err != nil {
			return fmt.Errorf("dataview: register table %s from %s: %w", table.Definition.Code, doc.Source, err)
		}
		if len(table.Rows) == 0 {
			continue
		}
		if err := r.RegisterSource(table.Definition.Code, NewStaticSource(table.Rows)); err != nil {
			return fmt.Errorf("dataview: register rows for %s: %w", table.Definition.Code, err)
		}
	}
	return nil
}

// ReadManifest loads a manifest file without registering it.
func ReadManifest(path string) (*TableManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dataview: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dataview: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*TableManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc TableManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dataview: manifest is empty")
		}
		return nil, fmt.Errorf("dataview: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *TableManifestDocument) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("dataview: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Tables))
	for idx, table := range doc.Tables {
		def := table.Definition
		if def.Code == "" {
			return fmt.Errorf("dataview: manifest table at index %d is missing definition.code", idx)
		}
		if def.Name == "" {
			return fmt.Errorf("dataview: manifest table %s missing definition.name", def.Code)
		}
		if len(def.Columns) == 0 {
			return fmt.Errorf("dataview: manifest table %s declares no columns", def.Code)
		}
		if _, exists := seen[def.Code]; exists {
			return fmt.Errorf("dataview: manifest duplicates table code %s", def.Code)
		}
		seen[def.Code] = struct{}{}
	}
	return nil
}

func (doc *TableManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
	for i := range doc.Tables {
		def := &doc.Tables[i].Definition
		for j := range def.Columns {
			if def.Columns[j].Label == "" {
				def.Columns[j].Label = columnLabel(def.Columns[j].Key)
			}
		}
	}
}
