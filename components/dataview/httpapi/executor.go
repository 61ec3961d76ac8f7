package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-dataview/components/dataview"
	"github.com/goliatone/go-dataview/components/dataview/commands"
	"github.com/goliatone/go-dataview/components/dataview/queries"
)

// Executor is the transport-agnostic API used by router adapters.
type Executor interface {
	Open(ctx context.Context, req dataview.OpenSessionRequest) (dataview.ViewPayload, error)
	Filter(ctx context.Context, input commands.SetStatusFilterInput) error
	Search(ctx context.Context, input commands.SetSearchQueryInput) error
	Page(ctx context.Context, input commands.SetPageInput) error
	Remove(ctx context.Context, input commands.RemoveRowInput) error
	Add(ctx context.Context, input commands.AddRowInput) error
	Reload(ctx context.Context, input commands.ReloadInput) error
	Close(ctx context.Context, input commands.CloseSessionInput) error
	View(ctx context.Context, input queries.ViewInput) (dataview.ViewPayload, error)
}

type sessionOpener interface {
	OpenSession(ctx context.Context, req dataview.OpenSessionRequest) (dataview.ViewPayload, error)
}

// CommandExecutor adapts go-command commanders and queriers to Executor.
type CommandExecutor struct {
	Opener          sessionOpener
	FilterCommander gocommand.Commander[commands.SetStatusFilterInput]
	SearchCommander gocommand.Commander[commands.SetSearchQueryInput]
	PageCommander   gocommand.Commander[commands.SetPageInput]
	RemoveCommander gocommand.Commander[commands.RemoveRowInput]
	AddCommander    gocommand.Commander[commands.AddRowInput]
	ReloadCommander gocommand.Commander[commands.ReloadInput]
	CloseCommander  gocommand.Commander[commands.CloseSessionInput]
	ViewQuerier     gocommand.Querier[queries.ViewInput, dataview.ViewPayload]
}

// NewCommandExecutor wires every command and query against one service.
func NewCommandExecutor(service *dataview.Service, telemetry commands.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		Opener:          service,
		FilterCommander: commands.NewSetStatusFilterCommand(service, telemetry),
		SearchCommander: commands.NewSetSearchQueryCommand(service, telemetry),
		PageCommander:   commands.NewSetPageCommand(service, telemetry),
		RemoveCommander: commands.NewRemoveRowCommand(service, telemetry),
		AddCommander:    commands.NewAddRowCommand(service, telemetry),
		ReloadCommander: commands.NewReloadCommand(service, telemetry),
		CloseCommander:  commands.NewCloseSessionCommand(service, telemetry),
		ViewQuerier:     queries.NewViewQuery(service),
	}
}

var _ Executor = (*CommandExecutor)(nil)

var errMissing = errors.New("httpapi: handler not configured")

func (e *CommandExecutor) Open(ctx context.Context, req dataview.OpenSessionRequest) (dataview.ViewPayload, error) {
	if e.Opener == nil {
		return dataview.ViewPayload{}, errMissing
	}
	return e.Opener.OpenSession(ctx, req)
}

func (e *CommandExecutor) Filter(ctx context.Context, input commands.SetStatusFilterInput) error {
	return execute(ctx, e.FilterCommander, input)
}

func (e *CommandExecutor) Search(ctx context.Context, input commands.SetSearchQueryInput) error {
	return execute(ctx, e.SearchCommander, input)
}

func (e *CommandExecutor) Page(ctx context.Context, input commands.SetPageInput) error {
	return execute(ctx, e.PageCommander, input)
}

func (e *CommandExecutor) Remove(ctx context.Context, input commands.RemoveRowInput) error {
	return execute(ctx, e.RemoveCommander, input)
}

func (e *CommandExecutor) Add(ctx context.Context, input commands.AddRowInput) error {
	return execute(ctx, e.AddCommander, input)
}

func (e *CommandExecutor) Reload(ctx context.Context, input commands.ReloadInput) error {
	return execute(ctx, e.ReloadCommander, input)
}

func (e *CommandExecutor) Close(ctx context.Context, input commands.CloseSessionInput) error {
	return execute(ctx, e.CloseCommander, input)
}

func (e *CommandExecutor) View(ctx context.Context, input queries.ViewInput) (dataview.ViewPayload, error) {
	if e.ViewQuerier == nil {
		return dataview.ViewPayload{}, errMissing
	}
	return e.ViewQuerier.Query(ctx, input)
}

func execute[T any](ctx context.Context, cmd gocommand.Commander[T], msg T) error {
	if cmd == nil {
		return errMissing
	}
	return cmd.Execute(ctx, msg)
}
