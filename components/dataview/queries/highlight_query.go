package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"

	"github.com/goliatone/go-dataview/components/dataview"
)

// HighlightInput is a piece of display text and the active search query.
type HighlightInput struct {
	Text  string `json:"text"`
	Query string `json:"query"`
}

// HighlightQuery splits text into matched and unmatched segments.
type HighlightQuery struct{}

// NewHighlightQuery builds the query.
func NewHighlightQuery() *HighlightQuery {
	return &HighlightQuery{}
}

var _ gocommand.Querier[HighlightInput, []dataview.Segment] = (*HighlightQuery)(nil)

// Query never fails; empty text yields no segments.
func (q *HighlightQuery) Query(_ context.Context, input HighlightInput) ([]dataview.Segment, error) {
	return dataview.Highlight(input.Text, input.Query), nil
}
