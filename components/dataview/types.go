package dataview

import (
	"context"

	"github.com/goliatone/go-dataview/pkg/activity"
)

// TableRegistry stores table definitions and the sources that feed them.
type TableRegistry interface {
	RegisterTable(def TableDefinition) error
	RegisterSource(code string, source RecordSource) error
	Table(code string) (TableDefinition, bool)
	Source(code string) (RecordSource, bool)
	Tables() []TableDefinition
}

// RecordSource supplies raw rows for a table. Rows are column maps; missing
// columns are treated as empty strings.
type RecordSource interface {
	Records(ctx context.Context, query SourceQuery) ([]map[string]string, error)
}

// SourceFunc adapts a function into a RecordSource.
type SourceFunc func(ctx context.Context, query SourceQuery) ([]map[string]string, error)

// Records implements RecordSource.
func (f SourceFunc) Records(ctx context.Context, query SourceQuery) ([]map[string]string, error) {
	return f(ctx, query)
}

// SourceQuery describes the table and viewer a source is loading rows for.
type SourceQuery struct {
	Table  TableDefinition
	Viewer ViewerContext
}

// SessionStore keeps per-viewer sessions. Implementations must be safe for
// concurrent use.
type SessionStore interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// RefreshHook notifies transports (REST/WebSocket) about view changes.
type RefreshHook interface {
	ViewUpdated(ctx context.Context, event ViewEvent) error
}

// Notifier presents toast style messages to the viewer.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// ActivityEmitter receives audit events for row mutations.
type ActivityEmitter interface {
	Emit(ctx context.Context, evt activity.Event) error
}

// TableDefinition describes a table shown in the admin panel.
type TableDefinition struct {
	Code          string             `json:"code" yaml:"code"`
	Name          string             `json:"name" yaml:"name"`
	Description   string             `json:"description,omitempty" yaml:"description,omitempty"`
	Columns       []ColumnDefinition `json:"columns" yaml:"columns"`
	KeyColumn     string             `json:"key_column,omitempty" yaml:"key_column,omitempty"`
	StatusColumn  string             `json:"status_column,omitempty" yaml:"status_column,omitempty"`
	StatusOptions []string           `json:"status_options,omitempty" yaml:"status_options,omitempty"`
	PageSize      int                `json:"page_size,omitempty" yaml:"page_size,omitempty"`
	Schema        map[string]any     `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Clone returns a deep copy of the definition.
func (def TableDefinition) Clone() TableDefinition {
	def.Columns = append([]ColumnDefinition(nil), def.Columns...)
	def.StatusOptions = append([]string(nil), def.StatusOptions...)
	if def.Schema != nil {
		def.Schema = cloneSchemaValue(def.Schema).(map[string]any)
	}
	return def
}

func cloneSchemaValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneSchemaValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneSchemaValue(item)
		}
		return out
	case []string:
		return append([]string(nil), val...)
	default:
		return val
	}
}

// ColumnDefinition is a displayed column.
type ColumnDefinition struct {
	Key   string `json:"key" yaml:"key"`
	Label string `json:"label" yaml:"label"`
}

// ViewerContext captures the active user/locale information.
type ViewerContext struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles,omitempty"`
	Locale string   `json:"locale,omitempty"`
}

// ViewEvent describes a session change transports might care about.
type ViewEvent struct {
	SessionID     string `json:"session_id"`
	TableCode     string `json:"table_code"`
	Reason        string `json:"reason"`
	RowKey        string `json:"row_key,omitempty"`
	MatchingCount int    `json:"matching_count"`
	TotalCount    int    `json:"total_count"`
}

// ViewPayload is what the UI layer renders for a session.
type ViewPayload struct {
	SessionID     string                     `json:"session_id"`
	TableCode     string                     `json:"table_code"`
	TableName     string                     `json:"table_name"`
	Columns       []ColumnDefinition         `json:"columns"`
	StatusOptions []string                   `json:"status_options,omitempty"`
	View          ViewResult                 `json:"view"`
	Summary       string                     `json:"summary"`
	Highlights    map[string][]FieldSegments `json:"highlights,omitempty"`
	Suggestions   []string                   `json:"suggestions,omitempty"`
}
