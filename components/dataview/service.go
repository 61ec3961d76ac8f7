package dataview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-dataview/pkg/activity"
)

var (
	// ErrTableNotFound is returned when a table code is not registered.
	ErrTableNotFound = errors.New("dataview: table not found")
	// ErrInvalidTable is returned when a request names no table.
	ErrInvalidTable = errors.New("dataview: table code is required")
	// ErrInvalidSession is returned when a request names no session.
	ErrInvalidSession = errors.New("dataview: session id is required")
)

// Options configures the dataview Service. Every collaborator is provided via
// interface so applications can swap implementations.
type Options struct {
	Tables          TableRegistry
	Sessions        SessionStore
	Validator       RecordValidator
	RefreshHook     RefreshHook
	Telemetry       Telemetry
	Notifier        Notifier
	Activity        ActivityEmitter
	DefaultPageSize int
	NewSessionID    func() string
	Now             func() time.Time
}

// Service manages table sessions on top of the core View.
type Service struct {
	opts Options
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Tables == nil {
		opts.Tables = NewRegistry()
	}
	if opts.Sessions == nil {
		opts.Sessions = NewInMemorySessionStore()
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Notifier == nil {
		opts.Notifier = noopNotifier{}
	}
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = DefaultPageSize
	}
	if opts.NewSessionID == nil {
		opts.NewSessionID = func() string { return uuid.NewString() }
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{opts: opts}
}

// Tables exposes the table registry.
func (s *Service) Tables() TableRegistry {
	return s.opts.Tables
}

// OpenSessionRequest captures the data required to open a table session.
type OpenSessionRequest struct {
	TableCode string        `json:"table_code"`
	Viewer    ViewerContext `json:"viewer"`
	PageSize  int           `json:"page_size,omitempty"`
	Filter    *FilterState  `json:"filter,omitempty"`
}

// OpenSession loads the table rows into a new, private view.
func (s *Service) OpenSession(ctx context.Context, req OpenSessionRequest) (ViewPayload, error) {
	def, err := s.table(req.TableCode)
	if err != nil {
		return ViewPayload{}, err
	}
	records, err := s.fetch(ctx, def, req.Viewer)
	if err != nil {
		return ViewPayload{}, err
	}
	view := NewView(s.pageSize(def, req.PageSize))
	view.Load(records)
	if req.Filter != nil {
		view.SetFilter(*req.Filter)
	}
	session := NewSession(s.opts.NewSessionID(), def.Code, req.Viewer.UserID, view)
	session.CreatedAt = s.opts.Now()
	if err := s.opts.Sessions.Create(ctx, session); err != nil {
		return ViewPayload{}, err
	}
	s.recordTelemetry(ctx, "dataview.session.open", map[string]any{
		"session_id": session.ID,
		"table_code": def.Code,
		"rows":       len(records),
	})
	return s.View(ctx, session.ID)
}

// CloseSession drops the session and its view.
func (s *Service) CloseSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return ErrInvalidSession
	}
	if err := s.opts.Sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dataview.session.close", map[string]any{"session_id": sessionID})
	return nil
}

// Reload re-fetches rows from the table source and resets filter and page.
func (s *Service) Reload(ctx context.Context, sessionID string, viewer ViewerContext) error {
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return err
	}
	def, err := s.table(session.TableCode)
	if err != nil {
		return err
	}
	records, err := s.fetch(ctx, def, viewer)
	if err != nil {
		return err
	}
	return s.mutate(ctx, session, ViewEvent{Reason: "reload"}, func(v *View) error {
		v.Load(records)
		return nil
	})
}

// SetStatusFilter replaces the status filter of a session.
func (s *Service) SetStatusFilter(ctx context.Context, sessionID, value string) error {
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.mutate(ctx, session, ViewEvent{Reason: "filter"}, func(v *View) error {
		v.SetStatusFilter(value)
		return nil
	})
}

// SetSearchQuery replaces the free-text query of a session.
func (s *Service) SetSearchQuery(ctx context.Context, sessionID, query string) error {
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.mutate(ctx, session, ViewEvent{Reason: "search"}, func(v *View) error {
		v.SetSearchQuery(query)
		return nil
	})
}

// SetPage moves the session to page n, clamped into range.
func (s *Service) SetPage(ctx context.Context, sessionID string, n int) error {
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.mutate(ctx, session, ViewEvent{Reason: "page"}, func(v *View) error {
		v.SetPage(n)
		return nil
	})
}

// RemoveRow deletes a row from the session. Unknown keys are ignored.
func (s *Service) RemoveRow(ctx context.Context, sessionID, rowKey string) error {
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return err
	}
	removed := false
	err = s.mutate(ctx, session, ViewEvent{Reason: "remove", RowKey: rowKey}, func(v *View) error {
		removed = v.Remove(rowKey)
		if !removed {
			return errSkipEvent
		}
		return nil
	})
	if err != nil || !removed {
		return err
	}
	s.notify(ctx, Notification{
		SessionID: session.ID,
		Message:   "Item deleted successfully",
		Severity:  SeveritySuccess,
	})
	s.emitActivity(ctx, session, "delete", rowKey)
	return nil
}

// AddRow validates values against the table schema and appends the row.
func (s *Service) AddRow(ctx context.Context, sessionID string, values map[string]string) (Record, error) {
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return Record{}, err
	}
	def, err := s.table(session.TableCode)
	if err != nil {
		return Record{}, err
	}
	values = NormalizeValues(values)
	if err := s.opts.Validator.Validate(def, values); err != nil {
		s.notify(ctx, Notification{SessionID: session.ID, Message: err.Error(), Severity: SeverityError})
		return Record{}, err
	}
	var added Record
	err = s.mutate(ctx, session, ViewEvent{Reason: "create"}, func(v *View) error {
		rec, err := v.Add(RecordFromValues(def, 0, values))
		if err != nil {
			return err
		}
		added = rec
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	s.notify(ctx, Notification{
		SessionID: session.ID,
		Message:   "Item created successfully",
		Severity:  SeveritySuccess,
	})
	s.emitActivity(ctx, session, "create", added.Key)
	return added, nil
}

// View computes the current projection of a session.
func (s *Service) View(ctx context.Context, sessionID string) (ViewPayload, error) {
	session, err := s.session(ctx, sessionID)
	if err != nil {
		return ViewPayload{}, err
	}
	def, err := s.table(session.TableCode)
	if err != nil {
		return ViewPayload{}, err
	}
	var result ViewResult
	_ = session.Do(func(v *View) error {
		result = v.Result()
		return nil
	})
	return NewViewPayload(session.ID, def, result), nil
}

// NewViewPayload decorates a projection with table metadata, search
// highlights and, when nothing matches, status suggestions.
func NewViewPayload(sessionID string, def TableDefinition, result ViewResult) ViewPayload {
	payload := ViewPayload{
		SessionID:     sessionID,
		TableCode:     def.Code,
		TableName:     def.Name,
		Columns:       append([]ColumnDefinition(nil), def.Columns...),
		StatusOptions: append([]string(nil), def.StatusOptions...),
		View:          result,
		Summary:       result.Summary(),
	}
	if result.Filter.Query != "" {
		payload.Highlights = make(map[string][]FieldSegments, len(result.Records))
		for _, rec := range result.Records {
			payload.Highlights[rec.Key] = HighlightRecord(rec, result.Filter.Query)
		}
	}
	if result.MatchingCount == 0 {
		payload.Suggestions = SuggestStatuses(result.Filter.Status, def.StatusOptions)
	}
	return payload
}

var errSkipEvent = errors.New("dataview: no change")

func (s *Service) mutate(ctx context.Context, session *Session, event ViewEvent, fn func(v *View) error) error {
	err := session.Do(func(v *View) error {
		if err := fn(v); err != nil {
			return err
		}
		event.MatchingCount = len(v.ComputeMatches())
		event.TotalCount = len(v.All())
		return nil
	})
	if errors.Is(err, errSkipEvent) {
		s.recordTelemetry(ctx, "dataview.session."+event.Reason+".noop", map[string]any{
			"session_id": session.ID,
			"row_key":    event.RowKey,
		})
		return nil
	}
	if err != nil {
		return err
	}
	event.SessionID = session.ID
	event.TableCode = session.TableCode
	if err := s.opts.RefreshHook.ViewUpdated(ctx, event); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dataview.session."+event.Reason, map[string]any{
		"session_id":     session.ID,
		"table_code":     session.TableCode,
		"matching_count": event.MatchingCount,
		"total_count":    event.TotalCount,
	})
	return nil
}

func (s *Service) session(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrInvalidSession
	}
	return s.opts.Sessions.Get(ctx, id)
}

func (s *Service) table(code string) (TableDefinition, error) {
	if code == "" {
		return TableDefinition{}, ErrInvalidTable
	}
	def, ok := s.opts.Tables.Table(code)
	if !ok {
		return TableDefinition{}, fmt.Errorf("%w: %s", ErrTableNotFound, code)
	}
	return def, nil
}

func (s *Service) fetch(ctx context.Context, def TableDefinition, viewer ViewerContext) ([]Record, error) {
	source, ok := s.opts.Tables.Source(def.Code)
	if !ok || source == nil {
		return nil, nil
	}
	rows, err := source.Records(ctx, SourceQuery{Table: def, Viewer: viewer})
	if err != nil {
		return nil, fmt.Errorf("dataview: load rows for %s: %w", def.Code, err)
	}
	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = RecordFromValues(def, i+1, NormalizeValues(row))
	}
	return records, nil
}

func (s *Service) pageSize(def TableDefinition, requested int) int {
	switch {
	case requested > 0:
		return requested
	case def.PageSize > 0:
		return def.PageSize
	default:
		return s.opts.DefaultPageSize
	}
}

func (s *Service) notify(ctx context.Context, n Notification) {
	if err := s.opts.Notifier.Notify(ctx, n); err != nil {
		s.recordTelemetry(ctx, "dataview.notification.error", map[string]any{"error": err.Error()})
	}
}

func (s *Service) emitActivity(ctx context.Context, session *Session, verb, rowKey string) {
	if s.opts.Activity == nil {
		return
	}
	meta := ActivityFromContext(ctx).forSession(session)
	err := s.opts.Activity.Emit(ctx, activity.Event{
		Verb:           verb,
		ActorID:        meta.ActorID,
		UserID:         meta.UserID,
		TenantID:       meta.TenantID,
		ObjectType:     session.TableCode,
		ObjectID:       rowKey,
		DefinitionCode: session.TableCode + ":" + verb,
		Metadata:       map[string]any{"session_id": session.ID},
		OccurredAt:     s.opts.Now(),
	})
	if err != nil {
		s.recordTelemetry(ctx, "dataview.activity.error", map[string]any{"error": err.Error()})
	}
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

type noopRefreshHook struct{}

func (noopRefreshHook) ViewUpdated(context.Context, ViewEvent) error {
	return nil
}
