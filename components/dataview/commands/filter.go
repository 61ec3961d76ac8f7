package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// SetStatusFilterInput selects the status shown by a session.
type SetStatusFilterInput struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status"`
}

type statusFilterService interface {
	SetStatusFilter(ctx context.Context, sessionID, value string) error
}

// SetStatusFilterCommand wraps Service.SetStatusFilter.
type SetStatusFilterCommand struct {
	service   statusFilterService
	telemetry Telemetry
}

// NewSetStatusFilterCommand builds the command.
func NewSetStatusFilterCommand(service statusFilterService, telemetry Telemetry) *SetStatusFilterCommand {
	return &SetStatusFilterCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetStatusFilterInput] = (*SetStatusFilterCommand)(nil)

// Execute applies the status filter.
func (c *SetStatusFilterCommand) Execute(ctx context.Context, msg SetStatusFilterInput) error {
	if c.service == nil {
		return errors.New("status filter command requires service")
	}
	if err := c.service.SetStatusFilter(ctx, msg.SessionID, msg.Status); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dataview.command.filter", map[string]any{
		"session_id": msg.SessionID,
		"status":     msg.Status,
	})
	return nil
}

// SetSearchQueryInput replaces the free-text query of a session.
type SetSearchQueryInput struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
}

type searchService interface {
	SetSearchQuery(ctx context.Context, sessionID, query string) error
}

// SetSearchQueryCommand wraps Service.SetSearchQuery.
type SetSearchQueryCommand struct {
	service   searchService
	telemetry Telemetry
}

// NewSetSearchQueryCommand builds the command.
func NewSetSearchQueryCommand(service searchService, telemetry Telemetry) *SetSearchQueryCommand {
	return &SetSearchQueryCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetSearchQueryInput] = (*SetSearchQueryCommand)(nil)

// Execute applies the search query.
func (c *SetSearchQueryCommand) Execute(ctx context.Context, msg SetSearchQueryInput) error {
	if c.service == nil {
		return errors.New("search command requires service")
	}
	if err := c.service.SetSearchQuery(ctx, msg.SessionID, msg.Query); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dataview.command.search", map[string]any{
		"session_id": msg.SessionID,
		"query_len":  len(msg.Query),
	})
	return nil
}
