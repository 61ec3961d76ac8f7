package analytics

import (
	"context"

	"github.com/goliatone/go-dataview/components/charts"
	"github.com/goliatone/go-dataview/components/dataview"
)

// NewRecordSource adapts a row client into a dataview record source.
func NewRecordSource(client RowClient) dataview.RecordSource {
	return &recordSource{client: client}
}

type recordSource struct {
	client RowClient
}

func (s *recordSource) Records(ctx context.Context, query dataview.SourceQuery) ([]map[string]string, error) {
	return s.client.FetchRows(ctx, RowQuery{
		Table:  query.Table.Code,
		UserID: query.Viewer.UserID,
		Locale: query.Viewer.Locale,
	})
}

// NewSeriesRepository adapts a series client for the chart renderer.
func NewSeriesRepository(client SeriesClient) charts.SeriesRepository {
	return charts.SeriesFunc(client.FetchSeries)
}
