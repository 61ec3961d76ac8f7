// Package charts renders the admin panel's summary charts with go-echarts.
// It is independent of the table view and reads its numbers from a
// SeriesRepository.
package charts

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Supported chart types.
const (
	TypeLine     = "line"
	TypeBar      = "bar"
	TypePie      = "pie"
	TypeDoughnut = "doughnut"
)

// Point is one labelled value.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is a legend entry and its points.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// ChartSpec fully describes a chart to render.
type ChartSpec struct {
	Code     string   `json:"code" yaml:"code"`
	Type     string   `json:"type" yaml:"type"`
	Title    string   `json:"title" yaml:"title"`
	Subtitle string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Labels   []string `json:"labels,omitempty" yaml:"labels,omitempty"`
	Series   []Series `json:"series" yaml:"series"`
	Currency string   `json:"currency,omitempty" yaml:"currency,omitempty"`
}

var titleCaser = cases.Title(language.English)

// Normalize lowercases the type and derives a title from the code when missing.
func (s ChartSpec) Normalize() ChartSpec {
	s.Type = strings.ToLower(strings.TrimSpace(s.Type))
	if s.Title == "" && s.Code != "" {
		name := s.Code
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			name = name[idx+1:]
		}
		s.Title = titleCaser.String(strings.ReplaceAll(name, "_", " "))
	}
	if len(s.Labels) == 0 {
		s.Labels = inferLabels(s.Series)
	}
	return s
}

// Validate checks the spec can be rendered.
func (s ChartSpec) Validate() error {
	switch s.Type {
	case TypeLine, TypeBar, TypePie, TypeDoughnut:
	default:
		return fmt.Errorf("charts: unsupported chart type %q", s.Type)
	}
	if len(s.Series) == 0 {
		return fmt.Errorf("charts: chart %s has no series", s.Code)
	}
	return nil
}

func inferLabels(series []Series) []string {
	for _, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		labels := make([]string, len(s.Points))
		for i, p := range s.Points {
			labels[i] = p.Label
			if labels[i] == "" {
				labels[i] = fmt.Sprintf("%d", i+1)
			}
		}
		return labels
	}
	return nil
}

// SeriesRepository supplies the series behind a chart code.
type SeriesRepository interface {
	Series(ctx context.Context, code string) ([]Series, error)
}

// SeriesFunc adapts a function into a SeriesRepository.
type SeriesFunc func(ctx context.Context, code string) ([]Series, error)

// Series implements SeriesRepository.
func (f SeriesFunc) Series(ctx context.Context, code string) ([]Series, error) {
	return f(ctx, code)
}

// Chart codes of the admin overview.
const (
	CodeRevenue      = "admin.chart.revenue"
	CodeBookings     = "admin.chart.bookings_by_room_type"
	CodeRoomStatuses = "admin.chart.room_status"
)

func labelled(labels []string, values []float64) []Point {
	points := make([]Point, len(values))
	for i, v := range values {
		points[i] = Point{Label: labels[i], Value: v}
	}
	return points
}

// DefaultAdminCharts returns the three overview charts of the hotel admin.
func DefaultAdminCharts() []ChartSpec {
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul"}
	roomTypes := []string{"Standard", "Deluxe", "Executive", "Suite"}
	statuses := []string{"Available", "Occupied", "Maintenance", "Reserved"}
	return []ChartSpec{
		{
			Code:     CodeRevenue,
			Type:     TypeLine,
			Title:    "Revenue",
			Labels:   months,
			Currency: "$",
			Series: []Series{{
				Name:   "Revenue",
				Points: labelled(months, []float64{12000, 19000, 15000, 25000, 22000, 30000, 28000}),
			}},
		},
		{
			Code:   CodeBookings,
			Type:   TypeBar,
			Title:  "Bookings by Room Type",
			Labels: roomTypes,
			Series: []Series{{
				Name:   "Bookings",
				Points: labelled(roomTypes, []float64{45, 60, 35, 20}),
			}},
		},
		{
			Code:   CodeRoomStatuses,
			Type:   TypeDoughnut,
			Title:  "Room Status",
			Labels: statuses,
			Series: []Series{{
				Name:   "Rooms",
				Points: labelled(statuses, []float64{32, 10, 3, 5}),
			}},
		},
	}
}

// StaticRepository serves the series of a fixed set of specs.
type StaticRepository struct {
	series map[string][]Series
}

// NewStaticRepository indexes specs by code.
func NewStaticRepository(specs ...ChartSpec) *StaticRepository {
	repo := &StaticRepository{series: make(map[string][]Series, len(specs))}
	for _, spec := range specs {
		repo.series[spec.Code] = spec.Series
	}
	return repo
}

// Series implements SeriesRepository.
func (r *StaticRepository) Series(_ context.Context, code string) ([]Series, error) {
	series, ok := r.series[code]
	if !ok {
		return nil, fmt.Errorf("charts: no series for %s", code)
	}
	return series, nil
}
