package analytics

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-dataview/components/charts"
)

// MockData seeds deterministic responses for tests or local demos.
type MockData struct {
	Rows   map[string][]map[string]string
	Series map[string][]charts.Series
}

// MockClient implements Client using in-memory fixtures.
type MockClient struct {
	data MockData
	mu   sync.RWMutex
}

var _ Client = (*MockClient)(nil)

// NewMockClient builds a mock client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// SetRows replaces the fixture rows of a table.
func (c *MockClient) SetRows(table string, rows []map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data.Rows == nil {
		c.data.Rows = map[string][]map[string]string{}
	}
	c.data.Rows[table] = cloneRows(rows)
}

// FetchRows returns copies of the configured rows. Unknown tables yield none.
func (c *MockClient) FetchRows(_ context.Context, query RowQuery) ([]map[string]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneRows(c.data.Rows[query.Table]), nil
}

// FetchSeries returns copies of the configured series.
func (c *MockClient) FetchSeries(_ context.Context, code string) ([]charts.Series, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	series, ok := c.data.Series[code]
	if !ok {
		return nil, fmt.Errorf("analytics: no series for %s", code)
	}
	out := make([]charts.Series, len(series))
	for i, s := range series {
		out[i] = charts.Series{Name: s.Name, Points: append([]charts.Point(nil), s.Points...)}
	}
	return out, nil
}

func cloneRows(rows []map[string]string) []map[string]string {
	if rows == nil {
		return nil
	}
	out := make([]map[string]string, len(rows))
	for i, row := range rows {
		cp := make(map[string]string, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out[i] = cp
	}
	return out
}
