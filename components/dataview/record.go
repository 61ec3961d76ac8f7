package dataview

import (
	"sort"
	"strconv"
	"strings"
)

// Field is a single displayed column value.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Record is one row of tabular data. Fields keep column order; Status is the
// attribute consulted by the status filter.
type Record struct {
	Key    string  `json:"key"`
	Fields []Field `json:"fields"`
	Status string  `json:"status"`
}

// NewRecord builds a record from ordered fields.
func NewRecord(key, status string, fields ...Field) Record {
	return Record{
		Key:    key,
		Status: status,
		Fields: append([]Field(nil), fields...),
	}
}

// RecordFromValues builds a record for the table definition. Columns follow the
// definition order, unknown keys are appended sorted by name. When the key
// column is missing the insertion position becomes the key.
func RecordFromValues(def TableDefinition, position int, values map[string]string) Record {
	fields := make([]Field, 0, len(values))
	seen := make(map[string]struct{}, len(def.Columns))
	for _, col := range def.Columns {
		seen[col.Key] = struct{}{}
		fields = append(fields, Field{Name: col.Key, Value: values[col.Key]})
	}
	var extra []string
	for name := range values {
		if _, ok := seen[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		fields = append(fields, Field{Name: name, Value: values[name]})
	}
	key := ""
	if def.KeyColumn != "" {
		key = strings.TrimSpace(values[def.KeyColumn])
	}
	if key == "" && position > 0 {
		key = strconv.Itoa(position)
	}
	return Record{
		Key:    key,
		Fields: fields,
		Status: values[def.StatusColumn],
	}
}

// Value returns the named field, or an empty string when the field is missing.
func (r Record) Value(name string) string {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

// Values returns the record as a column map.
func (r Record) Values() map[string]string {
	out := make(map[string]string, len(r.Fields))
	for _, f := range r.Fields {
		out[f.Name] = f.Value
	}
	return out
}

// Text is the searchable text of the record: every field value joined by a
// single space.
func (r Record) Text() string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = f.Value
	}
	return strings.Join(parts, " ")
}

func (r Record) clone() Record {
	r.Fields = append([]Field(nil), r.Fields...)
	return r
}
