package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-dataview/components/dataview"
)

// ReloadInput re-fetches the rows of a session from its source.
type ReloadInput struct {
	SessionID string                 `json:"session_id"`
	Viewer    dataview.ViewerContext `json:"viewer"`
}

type reloadService interface {
	Reload(ctx context.Context, sessionID string, viewer dataview.ViewerContext) error
}

// ReloadCommand wraps Service.Reload.
type ReloadCommand struct {
	service   reloadService
	telemetry Telemetry
}

// NewReloadCommand creates the command.
func NewReloadCommand(service reloadService, telemetry Telemetry) *ReloadCommand {
	return &ReloadCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ReloadInput] = (*ReloadCommand)(nil)

// Execute reloads the session rows and resets its filter.
func (c *ReloadCommand) Execute(ctx context.Context, msg ReloadInput) error {
	if c.service == nil {
		return errors.New("reload command requires service")
	}
	if err := c.service.Reload(ctx, msg.SessionID, msg.Viewer); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dataview.command.reload", map[string]any{"session_id": msg.SessionID})
	return nil
}

// CloseSessionInput identifies the session to drop.
type CloseSessionInput struct {
	SessionID string `json:"session_id"`
}

type closeService interface {
	CloseSession(ctx context.Context, sessionID string) error
}

// CloseSessionCommand wraps Service.CloseSession.
type CloseSessionCommand struct {
	service   closeService
	telemetry Telemetry
}

// NewCloseSessionCommand creates the command.
func NewCloseSessionCommand(service closeService, telemetry Telemetry) *CloseSessionCommand {
	return &CloseSessionCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CloseSessionInput] = (*CloseSessionCommand)(nil)

// Execute closes the session.
func (c *CloseSessionCommand) Execute(ctx context.Context, msg CloseSessionInput) error {
	if c.service == nil {
		return errors.New("close command requires service")
	}
	if err := c.service.CloseSession(ctx, msg.SessionID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dataview.command.close", map[string]any{"session_id": msg.SessionID})
	return nil
}
