package charts

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const defaultChartHeight = "360px"

// Renderer turns chart specs into self-contained go-echarts HTML.
type Renderer struct {
	cache      RenderCache
	theme      string
	assetsHost string
	repo       SeriesRepository
}

// Option customizes renderer behavior.
type Option func(*Renderer)

// WithCache injects a render cache.
func WithCache(cache RenderCache) Option {
	return func(r *Renderer) {
		r.cache = cache
	}
}

// WithTheme sets the chart theme (defaults to Westeros).
func WithTheme(theme string) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithAssetsHost(host string) Option {
	return func(r *Renderer) {
		r.assetsHost = host
	}
}

// WithRepository sets the source used by RenderCode.
func WithRepository(repo SeriesRepository) Option {
	return func(r *Renderer) {
		r.repo = repo
	}
}

// NewRenderer builds a renderer with a five minute cache.
func NewRenderer(options ...Option) *Renderer {
	r := &Renderer{
		cache: NewChartCache(5 * time.Minute),
		theme: types.ThemeWesteros,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// Render returns the chart HTML for spec.
func (r *Renderer) Render(spec ChartSpec) (string, error) {
	spec = spec.Normalize()
	if err := spec.Validate(); err != nil {
		return "", err
	}
	render := func() (string, error) { return r.render(spec) }
	if r.cache == nil {
		return render()
	}
	return r.cache.GetOrRender(spec.Code+":"+specHash(spec), render)
}

// RenderCode loads fresh series for spec.Code from the repository before
// rendering.
func (r *Renderer) RenderCode(ctx context.Context, spec ChartSpec) (string, error) {
	if r.repo == nil {
		return r.Render(spec)
	}
	series, err := r.repo.Series(ctx, spec.Code)
	if err != nil {
		return "", fmt.Errorf("charts: load series %s: %w", spec.Code, err)
	}
	spec.Series = series
	spec.Labels = nil
	return r.Render(spec)
}

func (r *Renderer) render(spec ChartSpec) (string, error) {
	switch spec.Type {
	case TypeBar:
		bar := charts.NewBar()
		bar.SetGlobalOptions(r.globalOptions(spec)...)
		bar.SetXAxis(spec.Labels)
		for _, s := range spec.Series {
			bar.AddSeries(s.Name, toBarData(s.Points))
		}
		return renderChart(bar)
	case TypeLine:
		line := charts.NewLine()
		line.SetGlobalOptions(r.globalOptions(spec)...)
		line.SetXAxis(spec.Labels)
		for _, s := range spec.Series {
			line.AddSeries(s.Name, toLineData(s.Points))
		}
		line.SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
		return renderChart(line)
	case TypePie, TypeDoughnut:
		pie := charts.NewPie()
		pie.SetGlobalOptions(r.globalOptions(spec)...)
		for _, s := range spec.Series {
			pie.AddSeries(s.Name, toPieData(s.Points))
		}
		if spec.Type == TypeDoughnut {
			pie.SetSeriesOptions(charts.WithPieChartOpts(opts.PieChart{Radius: []string{"45%", "70%"}}))
		}
		return renderChart(pie)
	default:
		return "", fmt.Errorf("charts: unsupported chart type %q", spec.Type)
	}
}

func renderChart(renderable interface{ Render(io.Writer) error }) (string, error) {
	var buf bytes.Buffer
	if err := renderable.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) globalOptions(spec ChartSpec) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  r.theme,
		Width:  "100%",
		Height: defaultChartHeight,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = r.assetsHost
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: spec.Title, Subtitle: spec.Subtitle}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func toBarData(points []Point) []opts.BarData {
	data := make([]opts.BarData, len(points))
	for i, point := range points {
		data[i] = opts.BarData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toLineData(points []Point) []opts.LineData {
	data := make([]opts.LineData, len(points))
	for i, point := range points {
		data[i] = opts.LineData{Name: point.Label, Value: point.Value}
	}
	return data
}

func toPieData(points []Point) []opts.PieData {
	data := make([]opts.PieData, len(points))
	for i, point := range points {
		name := point.Label
		if name == "" {
			name = fmt.Sprintf("Slice %d", i+1)
		}
		data[i] = opts.PieData{Name: name, Value: point.Value}
	}
	return data
}
