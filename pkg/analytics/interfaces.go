package analytics

import (
	"context"

	"github.com/goliatone/go-dataview/components/charts"
)

// RowQuery selects the rows of one admin table.
type RowQuery struct {
	Table  string `json:"table"`
	UserID string `json:"user_id,omitempty"`
	Locale string `json:"locale,omitempty"`
}

// RowClient fetches admin table rows from a reporting backend.
type RowClient interface {
	FetchRows(ctx context.Context, query RowQuery) ([]map[string]string, error)
}

// SeriesClient fetches chart series from a reporting backend.
type SeriesClient interface {
	FetchSeries(ctx context.Context, code string) ([]charts.Series, error)
}

// Client is a convenience union for backends that serve both.
type Client interface {
	RowClient
	SeriesClient
}
