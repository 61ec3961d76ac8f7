package dataview

import (
	"context"
	"errors"
	"io"
)

// DefaultTableTemplate is the template rendered for a table page.
const DefaultTableTemplate = "table"

// SessionViewer opens table sessions and projects them. *Service satisfies it.
type SessionViewer interface {
	OpenSession(ctx context.Context, req OpenSessionRequest) (ViewPayload, error)
	View(ctx context.Context, sessionID string) (ViewPayload, error)
}

// ControllerOptions wires the controller collaborators.
type ControllerOptions struct {
	Service  SessionViewer
	Renderer Renderer
	Template string
}

// Controller renders table sessions for HTTP transports.
type Controller struct {
	service  SessionViewer
	renderer Renderer
	template string
}

// NewController wires the service and renderer into a controller.
func NewController(opts ControllerOptions) *Controller {
	tpl := opts.Template
	if tpl == "" {
		tpl = DefaultTableTemplate
	}
	return &Controller{service: opts.Service, renderer: opts.Renderer, template: tpl}
}

// OpenPayload opens a fresh session for the viewer and returns its first page.
func (c *Controller) OpenPayload(ctx context.Context, tableCode string, viewer ViewerContext) (ViewPayload, error) {
	if c.service == nil {
		return ViewPayload{}, errors.New("dataview: controller service is nil")
	}
	return c.service.OpenSession(ctx, OpenSessionRequest{TableCode: tableCode, Viewer: viewer})
}

// SessionPayload returns the current projection of an open session.
func (c *Controller) SessionPayload(ctx context.Context, sessionID string) (ViewPayload, error) {
	if c.service == nil {
		return ViewPayload{}, errors.New("dataview: controller service is nil")
	}
	return c.service.View(ctx, sessionID)
}

// RenderTemplate opens a session for the table and writes the HTML page to out.
func (c *Controller) RenderTemplate(ctx context.Context, tableCode string, viewer ViewerContext, out io.Writer) error {
	if c.renderer == nil {
		return errors.New("dataview: controller renderer is nil")
	}
	payload, err := c.OpenPayload(ctx, tableCode, viewer)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render(c.template, templateData(payload), out)
	return err
}

// RenderSession writes the HTML page for an already open session.
func (c *Controller) RenderSession(ctx context.Context, sessionID string, out io.Writer) error {
	if c.renderer == nil {
		return errors.New("dataview: controller renderer is nil")
	}
	payload, err := c.SessionPayload(ctx, sessionID)
	if err != nil {
		return err
	}
	_, err = c.renderer.Render(c.template, templateData(payload), out)
	return err
}

type templateCell struct {
	Name     string
	Value    string
	Segments []Segment
}

type templateRow struct {
	Key    string
	Status string
	Cells  []templateCell
}

// templateData flattens the payload into rows of cells with highlight
// segments so templates do not need map lookups.
func templateData(payload ViewPayload) map[string]any {
	rows := make([]templateRow, 0, len(payload.View.Records))
	for _, rec := range payload.View.Records {
		row := templateRow{Key: rec.Key, Status: rec.Status}
		highlights := payload.Highlights[rec.Key]
		for i, col := range payload.Columns {
			cell := templateCell{Name: col.Key, Value: rec.Value(col.Key)}
			if i < len(highlights) && highlights[i].Name == col.Key {
				cell.Segments = highlights[i].Segments
			} else if payload.View.Filter.Query != "" {
				cell.Segments = Highlight(cell.Value, payload.View.Filter.Query)
			}
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}
	pages := make([]int, payload.View.PageCount)
	for i := range pages {
		pages[i] = i + 1
	}
	return map[string]any{
		"session_id":     payload.SessionID,
		"table_code":     payload.TableCode,
		"table_name":     payload.TableName,
		"columns":        payload.Columns,
		"status_options": payload.StatusOptions,
		"filter":         payload.View.Filter,
		"rows":           rows,
		"summary":        payload.Summary,
		"page":           payload.View.Page,
		"page_count":     payload.View.PageCount,
		"pages":          pages,
		"has_prev":       payload.View.Page > 1,
		"has_next":       payload.View.Page < payload.View.PageCount,
		"prev_page":      payload.View.Page - 1,
		"next_page":      payload.View.Page + 1,
		"suggestions":    payload.Suggestions,
	}
}
