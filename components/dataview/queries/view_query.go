package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-dataview/components/dataview"
)

// ViewInput identifies the session to project.
type ViewInput struct {
	SessionID string `json:"session_id"`
}

type viewService interface {
	View(ctx context.Context, sessionID string) (dataview.ViewPayload, error)
}

// ViewQuery executes read-only session projection.
type ViewQuery struct {
	service viewService
}

// NewViewQuery builds the query.
func NewViewQuery(service viewService) *ViewQuery {
	return &ViewQuery{service: service}
}

var _ gocommand.Querier[ViewInput, dataview.ViewPayload] = (*ViewQuery)(nil)

// Query returns the current page, counts and highlights of the session.
func (q *ViewQuery) Query(ctx context.Context, input ViewInput) (dataview.ViewPayload, error) {
	if q.service == nil {
		return dataview.ViewPayload{}, errors.New("view query requires service")
	}
	return q.service.View(ctx, input.SessionID)
}

type tableLister interface {
	Tables() []dataview.TableDefinition
}

// TablesQuery lists the registered tables.
type TablesQuery struct {
	registry tableLister
}

// NewTablesQuery builds the query.
func NewTablesQuery(registry tableLister) *TablesQuery {
	return &TablesQuery{registry: registry}
}

var _ gocommand.Querier[struct{}, []dataview.TableDefinition] = (*TablesQuery)(nil)

// Query returns every table definition sorted by code.
func (q *TablesQuery) Query(context.Context, struct{}) ([]dataview.TableDefinition, error) {
	if q.registry == nil {
		return nil, errors.New("tables query requires registry")
	}
	return q.registry.Tables(), nil
}
