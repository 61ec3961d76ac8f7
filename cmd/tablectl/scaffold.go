package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dataview/components/dataview"
)

type scaffoldCmd struct {
	Code         string   `required:"" help:"Fully-qualified table code (e.g. admin.table.spa)."`
	Name         string   `help:"Display name (defaults to the last code segment, title cased)."`
	Description  string   `help:"One-line description used in manifests."`
	Column       []string `required:"" help:"Column as key or key:Label (repeat --column)."`
	KeyColumn    string   `default:"id" help:"Column holding the row key."`
	StatusColumn string   `default:"status" help:"Column consulted by the status filter."`
	StatusOption []string `help:"Status values offered by the filter (repeat --status-option)."`
	PageSize     int      `default:"10" help:"Rows per page."`
	ManifestPath string   `required:"" name:"manifest" type:"path" help:"Path to the table manifest YAML to update."`
	Tag          []string `help:"Optional tags to include in the manifest."`
	Overwrite    bool     `help:"Replace an existing manifest entry with the same code."`
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	return cmd.run(os.Stdout)
}

func (cmd *scaffoldCmd) run(out io.Writer) error {
	if err := cmd.validate(); err != nil {
		return err
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("tablectl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}

	entry := dataview.ManifestTable{Definition: cmd.definition(), Tags: cmd.Tag}
	replaced := false
	for idx := range doc.Tables {
		if doc.Tables[idx].Definition.Code != cmd.Code {
			continue
		}
		if !cmd.Overwrite {
			return fmt.Errorf("tablectl: manifest already defines table %s (use --overwrite to replace)", cmd.Code)
		}
		entry.Rows = doc.Tables[idx].Rows
		doc.Tables[idx] = entry
		replaced = true
		break
	}
	if !replaced {
		doc.Tables = append(doc.Tables, entry)
	}
	sort.Slice(doc.Tables, func(i, j int) bool {
		return doc.Tables[i].Definition.Code < doc.Tables[j].Definition.Code
	})
	if err := doc.Validate(); err != nil {
		return err
	}
	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Added %s to %s\n", cmd.Code, manifestPath)
	return nil
}

func (cmd *scaffoldCmd) validate() error {
	if !strings.Contains(cmd.Code, ".") {
		return fmt.Errorf("tablectl: table code %s must contain at least one '.' segment", cmd.Code)
	}
	if cmd.PageSize <= 0 {
		return fmt.Errorf("tablectl: page size must be positive, got %d", cmd.PageSize)
	}
	return nil
}

func (cmd *scaffoldCmd) definition() dataview.TableDefinition {
	name := cmd.Name
	if name == "" {
		parts := strings.Split(cmd.Code, ".")
		name = strcase.ToPascal(parts[len(parts)-1])
	}
	columns := make([]dataview.ColumnDefinition, 0, len(cmd.Column))
	for _, raw := range cmd.Column {
		key, label, _ := strings.Cut(raw, ":")
		columns = append(columns, dataview.ColumnDefinition{
			Key:   dataview.NormalizeColumnKey(key),
			Label: strings.TrimSpace(label),
		})
	}
	return dataview.TableDefinition{
		Code:          cmd.Code,
		Name:          name,
		Description:   cmd.Description,
		Columns:       columns,
		KeyColumn:     dataview.NormalizeColumnKey(cmd.KeyColumn),
		StatusColumn:  dataview.NormalizeColumnKey(cmd.StatusColumn),
		StatusOptions: cmd.StatusOption,
		PageSize:      cmd.PageSize,
	}
}

func loadOrInitManifest(path string) (*dataview.TableManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &dataview.TableManifestDocument{
				Version: dataview.ManifestVersion,
				Tables:  []dataview.ManifestTable{},
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("tablectl: stat manifest: %w", err)
	}
	return dataview.ReadManifest(path)
}

func writeManifest(path string, doc *dataview.TableManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("tablectl: mkdir %s: %w", filepath.Dir(path), err)
	}
	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("tablectl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("tablectl: write manifest: %w", err)
	}
	return nil
}
