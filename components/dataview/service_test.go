package dataview

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-dataview/pkg/activity"
)

type recordingTelemetry struct {
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.events = append(r.events, event)
}

type recordingNotifier struct {
	notes []Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n Notification) error {
	r.notes = append(r.notes, n)
	return nil
}

type recordingRefresh struct {
	events []ViewEvent
	err    error
}

func (r *recordingRefresh) ViewUpdated(_ context.Context, e ViewEvent) error {
	r.events = append(r.events, e)
	return r.err
}

type recordingActivity struct {
	events []activity.Event
}

func (r *recordingActivity) Emit(_ context.Context, evt activity.Event) error {
	r.events = append(r.events, evt)
	return nil
}

type serviceFixture struct {
	service   *Service
	telemetry *recordingTelemetry
	notifier  *recordingNotifier
	refresh   *recordingRefresh
	activity  *recordingActivity
}

func newServiceFixture(t *testing.T) serviceFixture {
	t.Helper()
	reg := NewEmptyRegistry()
	def := TableDefinition{
		Code:          "test.rooms",
		Name:          "Rooms",
		KeyColumn:     "id",
		StatusColumn:  "status",
		StatusOptions: []string{"Available", "Occupied", "Maintenance"},
		PageSize:      2,
		Columns:       []ColumnDefinition{{Key: "id", Label: "Room"}, {Key: "status", Label: "Status"}},
		Schema: map[string]any{
			"type":     "object",
			"required": []string{"id"},
		},
	}
	require.NoError(t, reg.RegisterTable(def))
	require.NoError(t, reg.RegisterSource(def.Code, NewStaticSource([]map[string]string{
		{"id": "R1", "status": "Available"},
		{"id": "R2", "status": "Occupied"},
		{"id": "R3", "status": "Maintenance"},
	})))
	fx := serviceFixture{
		telemetry: &recordingTelemetry{},
		notifier:  &recordingNotifier{},
		refresh:   &recordingRefresh{},
		activity:  &recordingActivity{},
	}
	next := 0
	fx.service = NewService(Options{
		Tables:      reg,
		Telemetry:   fx.telemetry,
		Notifier:    fx.notifier,
		RefreshHook: fx.refresh,
		Activity:    fx.activity,
		NewSessionID: func() string {
			next++
			return "session-" + string(rune('0'+next))
		},
		Now: func() time.Time { return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) },
	})
	return fx
}

func (fx serviceFixture) open(t *testing.T) ViewPayload {
	t.Helper()
	payload, err := fx.service.OpenSession(context.Background(), OpenSessionRequest{
		TableCode: "test.rooms",
		Viewer:    ViewerContext{UserID: "user-1"},
	})
	require.NoError(t, err)
	return payload
}

func TestServiceOpenSession(t *testing.T) {
	fx := newServiceFixture(t)
	payload := fx.open(t)
	assert.Equal(t, "session-1", payload.SessionID)
	assert.Equal(t, "Rooms", payload.TableName)
	assert.Equal(t, 3, payload.View.TotalCount)
	assert.Equal(t, 2, payload.View.PageCount)
	assert.Equal(t, []string{"R1", "R2"}, keys(payload.View.Records))
	assert.Equal(t, "Showing 1-2 of 3 items", payload.Summary)
	assert.Contains(t, fx.telemetry.events, "dataview.session.open")
}

func TestServiceOpenSessionUnknownTable(t *testing.T) {
	fx := newServiceFixture(t)
	_, err := fx.service.OpenSession(context.Background(), OpenSessionRequest{TableCode: "missing"})
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestServiceOpenSessionSourceError(t *testing.T) {
	reg := NewEmptyRegistry()
	boom := errors.New("boom")
	require.NoError(t, reg.RegisterTable(TableDefinition{Code: "t", Name: "T"}))
	require.NoError(t, reg.RegisterSource("t", SourceFunc(func(context.Context, SourceQuery) ([]map[string]string, error) {
		return nil, boom
	})))
	service := NewService(Options{Tables: reg})
	_, err := service.OpenSession(context.Background(), OpenSessionRequest{TableCode: "t"})
	assert.ErrorIs(t, err, boom)
}

func TestServiceStatusFilterAndPaging(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()
	id := fx.open(t).SessionID

	require.NoError(t, fx.service.SetPage(ctx, id, 2))
	require.NoError(t, fx.service.SetStatusFilter(ctx, id, "main"))

	payload, err := fx.service.View(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, payload.View.Page)
	assert.Equal(t, []string{"R3"}, keys(payload.View.Records))
	assert.Equal(t, 1, payload.View.MatchingCount)

	require.Len(t, fx.refresh.events, 2)
	last := fx.refresh.events[1]
	assert.Equal(t, "filter", last.Reason)
	assert.Equal(t, 1, last.MatchingCount)
	assert.Equal(t, 3, last.TotalCount)
}

func TestServiceSearchHighlights(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()
	id := fx.open(t).SessionID

	require.NoError(t, fx.service.SetSearchQuery(ctx, id, "occ"))
	payload, err := fx.service.View(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []string{"R2"}, keys(payload.View.Records))
	fields := payload.Highlights["R2"]
	require.Len(t, fields, 2)
	assert.Equal(t, []Segment{{Matched: true, Text: "Occ"}, {Text: "upied"}}, fields[1].Segments)
}

func TestServiceSuggestionsWhenNothingMatches(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()
	id := fx.open(t).SessionID

	require.NoError(t, fx.service.SetStatusFilter(ctx, id, "Ocupied"))
	payload, err := fx.service.View(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, payload.View.Records)
	assert.Equal(t, []string{"Occupied"}, payload.Suggestions)
	assert.Equal(t, "Showing 0-0 of 0 items", payload.Summary)
}

func TestServiceRemoveRow(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()
	ctx = ContextWithActivity(ctx, ActivityContext{ActorID: "actor-1"})
	id := fx.open(t).SessionID

	require.NoError(t, fx.service.RemoveRow(ctx, id, "R2"))
	require.NoError(t, fx.service.SetStatusFilter(ctx, id, StatusAll))
	payload, err := fx.service.View(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"R1", "R3"}, keys(payload.View.Records))

	require.Len(t, fx.notifier.notes, 1)
	assert.Equal(t, "Item deleted successfully", fx.notifier.notes[0].Message)
	assert.Equal(t, SeveritySuccess, fx.notifier.notes[0].Severity)

	require.Len(t, fx.activity.events, 1)
	evt := fx.activity.events[0]
	assert.Equal(t, "delete", evt.Verb)
	assert.Equal(t, "actor-1", evt.ActorID)
	assert.Equal(t, "user-1", evt.UserID)
	assert.Equal(t, "test.rooms", evt.ObjectType)
	assert.Equal(t, "R2", evt.ObjectID)
}

func TestServiceRemoveUnknownRowIsSilent(t *testing.T) {
	fx := newServiceFixture(t)
	id := fx.open(t).SessionID

	require.NoError(t, fx.service.RemoveRow(context.Background(), id, "nope"))
	assert.Empty(t, fx.notifier.notes)
	assert.Empty(t, fx.refresh.events)
	assert.Empty(t, fx.activity.events)
	assert.Contains(t, fx.telemetry.events, "dataview.session.remove.noop")
}

func TestServiceAddRow(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()
	id := fx.open(t).SessionID

	rec, err := fx.service.AddRow(ctx, id, map[string]string{"id": "R4", "Status": "Available"})
	require.NoError(t, err)
	assert.Equal(t, "R4", rec.Key)
	assert.Equal(t, "Available", rec.Status)

	payload, err := fx.service.View(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 4, payload.View.TotalCount)

	_, err = fx.service.AddRow(ctx, id, map[string]string{"id": "R4"})
	assert.ErrorIs(t, err, ErrDuplicateRowKey)
}

func TestServiceAddRowValidation(t *testing.T) {
	fx := newServiceFixture(t)
	id := fx.open(t).SessionID

	_, err := fx.service.AddRow(context.Background(), id, map[string]string{"status": "Available"})
	require.Error(t, err)
	require.NotEmpty(t, fx.notifier.notes)
	assert.Equal(t, SeverityError, fx.notifier.notes[len(fx.notifier.notes)-1].Severity)
}

func TestServiceReloadResetsState(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()
	id := fx.open(t).SessionID

	require.NoError(t, fx.service.RemoveRow(ctx, id, "R1"))
	require.NoError(t, fx.service.SetSearchQuery(ctx, id, "zzz"))
	require.NoError(t, fx.service.Reload(ctx, id, ViewerContext{UserID: "user-1"}))

	payload, err := fx.service.View(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, payload.View.TotalCount)
	assert.Equal(t, DefaultFilter(), payload.View.Filter)
}

func TestServiceSessionsAreIsolated(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()
	a := fx.open(t).SessionID
	b := fx.open(t).SessionID
	require.NotEqual(t, a, b)

	require.NoError(t, fx.service.RemoveRow(ctx, a, "R1"))
	payload, err := fx.service.View(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, 3, payload.View.TotalCount)
}

func TestServiceCloseSession(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()
	id := fx.open(t).SessionID

	require.NoError(t, fx.service.CloseSession(ctx, id))
	_, err := fx.service.View(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Error(t, fx.service.CloseSession(ctx, ""))
}

func TestServiceRefreshHookErrorPropagates(t *testing.T) {
	fx := newServiceFixture(t)
	id := fx.open(t).SessionID
	fx.refresh.err = errors.New("hook down")
	assert.Error(t, fx.service.SetPage(context.Background(), id, 2))
}

func TestServiceDefaultsUseBuiltinTables(t *testing.T) {
	service := NewService(Options{})
	payload, err := service.OpenSession(context.Background(), OpenSessionRequest{TableCode: "admin.table.rooms", PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, 3, payload.View.PageSize)
	assert.Len(t, payload.View.Records, 3)
	assert.NotEmpty(t, payload.SessionID)
}
