package dataview

// Segment is a slice of display text tagged with whether it matched the
// active search query.
type Segment struct {
	Matched bool   `json:"matched"`
	Text    string `json:"text"`
}

// FieldSegments holds the highlight segments for one record field.
type FieldSegments struct {
	Name     string    `json:"name"`
	Segments []Segment `json:"segments"`
}

// Highlight splits text into matched and unmatched segments. Occurrences of
// query are located left to right without overlap, ignoring case. An empty
// query yields the text as a single unmatched segment.
func Highlight(text, query string) []Segment {
	if text == "" {
		return nil
	}
	if query == "" {
		return []Segment{{Text: text}}
	}
	var segments []Segment
	rest := text
	for rest != "" {
		start, end := indexFold(rest, query)
		if start < 0 {
			break
		}
		if start > 0 {
			segments = append(segments, Segment{Text: rest[:start]})
		}
		segments = append(segments, Segment{Matched: true, Text: rest[start:end]})
		rest = rest[end:]
	}
	if rest != "" {
		segments = append(segments, Segment{Text: rest})
	}
	return segments
}

// HighlightRecord applies Highlight to every field of the record.
func HighlightRecord(rec Record, query string) []FieldSegments {
	out := make([]FieldSegments, len(rec.Fields))
	for i, f := range rec.Fields {
		out[i] = FieldSegments{Name: f.Name, Segments: Highlight(f.Value, query)}
	}
	return out
}

// HasMatch reports whether any segment matched.
func HasMatch(segments []Segment) bool {
	for _, s := range segments {
		if s.Matched {
			return true
		}
	}
	return false
}
