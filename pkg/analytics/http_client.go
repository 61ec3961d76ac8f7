package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/goliatone/go-dataview/components/charts"
)

// HTTPConfig configures the HTTP analytics client.
type HTTPConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient talks to a remote reporting service via REST endpoints.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for a live reporting API.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("analytics: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  httpClient,
	}, nil
}

// FetchRows implements RowClient by calling the rows endpoint.
func (c *HTTPClient) FetchRows(ctx context.Context, query RowQuery) ([]map[string]string, error) {
	var resp rowsResponse
	if err := c.do(ctx, http.MethodPost, "/tables/query", query, &resp); err != nil {
		return nil, err
	}
	return resp.Rows, nil
}

// FetchSeries implements SeriesClient by calling the chart series endpoint.
func (c *HTTPClient) FetchSeries(ctx context.Context, code string) ([]charts.Series, error) {
	var resp seriesResponse
	if err := c.do(ctx, http.MethodPost, "/charts/query", seriesRequest{Code: code}, &resp); err != nil {
		return nil, err
	}
	return resp.toSeries(), nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, payload any, target any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("analytics: encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("analytics: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("analytics: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("analytics: remote error %d: %s", resp.StatusCode, buf.String())
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("analytics: decode response: %w", err)
	}
	return nil
}

type rowsResponse struct {
	Table string              `json:"table"`
	Rows  []map[string]string `json:"rows"`
}

type seriesRequest struct {
	Code string `json:"code"`
}

type seriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type seriesEntry struct {
	Name   string        `json:"name"`
	Points []seriesPoint `json:"points"`
}

type seriesResponse struct {
	Code   string        `json:"code"`
	Series []seriesEntry `json:"series"`
}

func (r seriesResponse) toSeries() []charts.Series {
	out := make([]charts.Series, len(r.Series))
	for i, entry := range r.Series {
		points := make([]charts.Point, len(entry.Points))
		for j, p := range entry.Points {
			points[j] = charts.Point{Label: p.Label, Value: p.Value}
		}
		out[i] = charts.Series{Name: entry.Name, Points: points}
	}
	return out
}
