package dataview

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureRenderer struct {
	name string
	data any
}

func (c *captureRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	c.name = name
	c.data = data
	if len(out) > 0 && out[0] != nil {
		_, _ = out[0].Write([]byte("<table></table>"))
	}
	return "<table></table>", nil
}

func TestControllerRenderTemplate(t *testing.T) {
	renderer := &captureRenderer{}
	controller := NewController(ControllerOptions{
		Service:  NewService(Options{}),
		Renderer: renderer,
	})
	var buf bytes.Buffer
	err := controller.RenderTemplate(context.Background(), "admin.table.rooms", ViewerContext{UserID: "u"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultTableTemplate, renderer.name)
	assert.Equal(t, "<table></table>", buf.String())

	data, ok := renderer.data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Rooms", data["table_name"])
	rows, ok := data["rows"].([]templateRow)
	require.True(t, ok)
	assert.NotEmpty(t, rows)
}

func TestControllerPageLoadsDoNotAccumulateSessions(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	store := NewInMemorySessionStore(WithIdleTTL(time.Minute), WithSessionClock(clock.Now))
	controller := NewController(ControllerOptions{
		Service:  NewService(Options{Sessions: store}),
		Renderer: &captureRenderer{},
	})
	for i := 0; i < 100; i++ {
		err := controller.RenderTemplate(context.Background(), "admin.table.rooms", ViewerContext{}, io.Discard)
		require.NoError(t, err)
		clock.Advance(2 * time.Minute)
	}
	assert.Equal(t, 1, store.Len())

	capped := NewInMemorySessionStore(WithMaxSessions(10))
	controller = NewController(ControllerOptions{
		Service:  NewService(Options{Sessions: capped}),
		Renderer: &captureRenderer{},
	})
	for i := 0; i < 100; i++ {
		require.NoError(t, controller.RenderTemplate(context.Background(), "admin.table.rooms", ViewerContext{}, io.Discard))
	}
	assert.Equal(t, 10, capped.Len())
}

func TestControllerRequiresCollaborators(t *testing.T) {
	controller := NewController(ControllerOptions{})
	assert.Error(t, controller.RenderTemplate(context.Background(), "x", ViewerContext{}, io.Discard))
	_, err := controller.SessionPayload(context.Background(), "x")
	assert.Error(t, err)
}

func TestTemplateDataHighlightsCells(t *testing.T) {
	payload := ViewPayload{
		Columns: []ColumnDefinition{{Key: "room", Label: "Room"}},
		View: ViewResult{
			Records:   []Record{NewRecord("R1", "", Field{Name: "room", Value: "Room 201"})},
			Page:      1,
			PageCount: 3,
			Filter:    FilterState{Status: StatusAll, Query: "201"},
		},
	}
	data := templateData(payload)
	rows := data["rows"].([]templateRow)
	require.Len(t, rows, 1)
	assert.Equal(t, []Segment{{Text: "Room "}, {Matched: true, Text: "201"}}, rows[0].Cells[0].Segments)
	assert.Equal(t, []int{1, 2, 3}, data["pages"])
	assert.Equal(t, false, data["has_prev"])
	assert.Equal(t, true, data["has_next"])
}

func TestEmbeddedTemplateRenders(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)
	controller := NewController(ControllerOptions{Service: NewService(Options{}), Renderer: renderer})
	var buf bytes.Buffer
	require.NoError(t, controller.RenderTemplate(context.Background(), "admin.table.rooms", ViewerContext{}, &buf))
	assert.Contains(t, buf.String(), "Showing 1-5 of 5 items")
}
