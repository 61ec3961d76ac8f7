package dataview

import (
	"strings"

	"github.com/ettle/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// NormalizeColumnKey turns "Check In", "checkIn" or "check-in" into "check_in".
func NormalizeColumnKey(name string) string {
	return strcase.ToSnake(strings.TrimSpace(name))
}

// columnLabel derives a display label from a column key: "check_in" -> "Check In".
func columnLabel(key string) string {
	words := strings.ReplaceAll(NormalizeColumnKey(key), "_", " ")
	return titleCaser.String(words)
}

// NormalizeValues rewrites the keys of a raw row with NormalizeColumnKey.
func NormalizeValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[NormalizeColumnKey(k)] = v
	}
	return out
}

// normalizeDefinition rewrites the column, key and status names of def (and
// the property names of its schema) so they line up with normalized rows.
func normalizeDefinition(def TableDefinition) TableDefinition {
	def.Code = strings.TrimSpace(def.Code)
	for i := range def.Columns {
		col := &def.Columns[i]
		col.Key = NormalizeColumnKey(col.Key)
		if col.Label == "" {
			col.Label = columnLabel(col.Key)
		}
	}
	if def.KeyColumn != "" {
		def.KeyColumn = NormalizeColumnKey(def.KeyColumn)
	}
	if def.StatusColumn != "" {
		def.StatusColumn = NormalizeColumnKey(def.StatusColumn)
	}
	if props, ok := def.Schema["properties"].(map[string]any); ok {
		out := make(map[string]any, len(props))
		for k, v := range props {
			out[NormalizeColumnKey(k)] = v
		}
		def.Schema["properties"] = out
	}
	switch required := def.Schema["required"].(type) {
	case []string:
		for i, k := range required {
			required[i] = NormalizeColumnKey(k)
		}
	case []any:
		for i, k := range required {
			if name, ok := k.(string); ok {
				required[i] = NormalizeColumnKey(name)
			}
		}
	}
	return def
}
