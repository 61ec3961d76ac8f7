package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// SetPageInput moves a session to a page. Out of range pages are clamped.
type SetPageInput struct {
	SessionID string `json:"session_id"`
	Page      int    `json:"page"`
}

type pageService interface {
	SetPage(ctx context.Context, sessionID string, n int) error
}

// SetPageCommand wraps Service.SetPage.
type SetPageCommand struct {
	service   pageService
	telemetry Telemetry
}

// NewSetPageCommand builds the command.
func NewSetPageCommand(service pageService, telemetry Telemetry) *SetPageCommand {
	return &SetPageCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetPageInput] = (*SetPageCommand)(nil)

// Execute changes the page.
func (c *SetPageCommand) Execute(ctx context.Context, msg SetPageInput) error {
	if c.service == nil {
		return errors.New("page command requires service")
	}
	if err := c.service.SetPage(ctx, msg.SessionID, msg.Page); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dataview.command.page", map[string]any{
		"session_id": msg.SessionID,
		"page":       msg.Page,
	})
	return nil
}
