package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-dataview/components/dataview"
)

// RemoveRowInput identifies the row to delete from a session.
type RemoveRowInput struct {
	SessionID string `json:"session_id"`
	RowKey    string `json:"row_key"`
	ActorID   string `json:"actor_id"`
	UserID    string `json:"user_id"`
	TenantID  string `json:"tenant_id"`
}

type removeService interface {
	RemoveRow(ctx context.Context, sessionID, rowKey string) error
}

// RemoveRowCommand wraps Service.RemoveRow and records telemetry for auditing.
type RemoveRowCommand struct {
	service   removeService
	telemetry Telemetry
}

// NewRemoveRowCommand builds a command instance.
func NewRemoveRowCommand(service removeService, telemetry Telemetry) *RemoveRowCommand {
	return &RemoveRowCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveRowInput] = (*RemoveRowCommand)(nil)

// Execute removes the row. Unknown keys succeed without changes.
func (c *RemoveRowCommand) Execute(ctx context.Context, msg RemoveRowInput) error {
	if c.service == nil {
		return errors.New("remove command requires service")
	}
	if msg.RowKey == "" {
		return errors.New("remove command requires row key")
	}
	ctx = dataview.ContextWithActivity(ctx, dataview.ActivityContext{
		ActorID:  msg.ActorID,
		UserID:   msg.UserID,
		TenantID: msg.TenantID,
	})
	if err := c.service.RemoveRow(ctx, msg.SessionID, msg.RowKey); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dataview.command.remove", map[string]any{
		"session_id": msg.SessionID,
		"row_key":    msg.RowKey,
	})
	return nil
}

// AddRowInput carries the column values of a new row.
type AddRowInput struct {
	SessionID string            `json:"session_id"`
	Values    map[string]string `json:"values"`
	ActorID   string            `json:"actor_id"`
	UserID    string            `json:"user_id"`
	TenantID  string            `json:"tenant_id"`
}

type addService interface {
	AddRow(ctx context.Context, sessionID string, values map[string]string) (dataview.Record, error)
}

// AddRowCommand wraps Service.AddRow.
type AddRowCommand struct {
	service   addService
	telemetry Telemetry
}

// NewAddRowCommand builds a command instance.
func NewAddRowCommand(service addService, telemetry Telemetry) *AddRowCommand {
	return &AddRowCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddRowInput] = (*AddRowCommand)(nil)

// Execute validates and appends the row.
func (c *AddRowCommand) Execute(ctx context.Context, msg AddRowInput) error {
	if c.service == nil {
		return errors.New("add command requires service")
	}
	ctx = dataview.ContextWithActivity(ctx, dataview.ActivityContext{
		ActorID:  msg.ActorID,
		UserID:   msg.UserID,
		TenantID: msg.TenantID,
	})
	rec, err := c.service.AddRow(ctx, msg.SessionID, msg.Values)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dataview.command.add", map[string]any{
		"session_id": msg.SessionID,
		"row_key":    rec.Key,
	})
	return nil
}
