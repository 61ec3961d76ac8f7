package dataview

import (
	"unicode"
	"unicode/utf8"
)

// StatusAll disables the status filter.
const StatusAll = "All"

// MatchesStatus reports whether the record status contains filter,
// ignoring case. Partial names match on purpose: "Pend" selects "Pending".
func MatchesStatus(rec Record, filter string) bool {
	if filter == "" || filter == StatusAll {
		return true
	}
	return containsFold(rec.Status, filter)
}

// MatchesSearch reports whether any displayed text of the record contains
// query, ignoring case. The empty query matches every record.
func MatchesSearch(rec Record, query string) bool {
	if query == "" {
		return true
	}
	return containsFold(rec.Text(), query)
}

func containsFold(s, substr string) bool {
	start, _ := indexFold(s, substr)
	return start >= 0
}

// indexFold returns the byte range of the first case-insensitive occurrence
// of substr in s, or -1, -1. Offsets always point into s.
func indexFold(s, substr string) (int, int) {
	if substr == "" {
		return 0, 0
	}
	for i := 0; i < len(s); {
		if end, ok := matchFoldAt(s, i, substr); ok {
			return i, end
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return -1, -1
}

func matchFoldAt(s string, at int, substr string) (int, bool) {
	j := at
	for _, want := range substr {
		if j >= len(s) {
			return 0, false
		}
		got, size := utf8.DecodeRuneInString(s[j:])
		if !equalFoldRune(got, want) {
			return 0, false
		}
		j += size
	}
	return j, true
}

func equalFoldRune(a, b rune) bool {
	if a == b {
		return true
	}
	for f := unicode.SimpleFold(a); f != a; f = unicode.SimpleFold(f) {
		if f == b {
			return true
		}
	}
	return false
}
