package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/goliatone/go-dataview/components/dataview"
)

const (
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorLavender lipgloss.Color = "#b4befe"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorRed      lipgloss.Color = "#f38ba8"
	colorBase     lipgloss.Color = "#1e1e2e"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorLavender)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	matchStyle    = lipgloss.NewStyle().Background(colorYellow).Foreground(colorBase)
	selectedStyle = lipgloss.NewStyle().Background(colorSurface1)
	dimStyle      = lipgloss.NewStyle().Foreground(colorOverlay1)
	okStyle       = lipgloss.NewStyle().Foreground(colorGreen)
	errStyle      = lipgloss.NewStyle().Foreground(colorRed)
)

const columnGap = "  "

// renderTable draws the current page with matched search text highlighted.
// selected marks a row index on the page; -1 selects nothing.
func renderTable(payload dataview.ViewPayload, selected int) string {
	cols := payload.Columns
	widths := make([]int, len(cols))
	for i, col := range cols {
		widths[i] = lipgloss.Width(col.Label)
	}
	for _, rec := range payload.View.Records {
		for i, col := range cols {
			if w := lipgloss.Width(rec.Value(col.Key)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = headerStyle.Render(pad(col.Label, widths[i]))
	}
	b.WriteString(strings.Join(header, columnGap))
	b.WriteString("\n")

	if len(payload.View.Records) == 0 {
		b.WriteString(dimStyle.Render("No matching items"))
		b.WriteString("\n")
		return b.String()
	}
	for row, rec := range payload.View.Records {
		segments := segmentsByField(payload.Highlights[rec.Key])
		cells := make([]string, len(cols))
		for i, col := range cols {
			value := rec.Value(col.Key)
			cells[i] = renderCell(value, segments[col.Key]) + strings.Repeat(" ", widths[i]-lipgloss.Width(value))
		}
		line := strings.Join(cells, columnGap)
		if row == selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func renderCell(value string, segments []dataview.Segment) string {
	if len(segments) == 0 {
		return value
	}
	var b strings.Builder
	for _, seg := range segments {
		if seg.Matched {
			b.WriteString(matchStyle.Render(seg.Text))
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

func segmentsByField(fields []dataview.FieldSegments) map[string][]dataview.Segment {
	out := make(map[string][]dataview.Segment, len(fields))
	for _, f := range fields {
		out[f.Name] = f.Segments
	}
	return out
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func renderFooter(payload dataview.ViewPayload) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render(payload.Summary))
	b.WriteString(dimStyle.Render(
		"  ·  Page " + itoa(payload.View.Page) + "/" + itoa(max(payload.View.PageCount, 1)),
	))
	if len(payload.Suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("Did you mean: " + strings.Join(payload.Suggestions, ", ") + "?"))
	}
	return b.String()
}
