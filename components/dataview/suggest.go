package dataview

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

const maxSuggestions = 3

// SuggestStatuses returns the status options closest to filter by edit
// distance, nearest first. Filters that already hit an option return nil.
func SuggestStatuses(filter string, options []string) []string {
	filter = strings.TrimSpace(filter)
	if filter == "" || filter == StatusAll {
		return nil
	}
	needle := strings.ToLower(filter)
	threshold := len(needle) / 2
	if threshold < 2 {
		threshold = 2
	}
	type candidate struct {
		option string
		dist   int
	}
	var found []candidate
	for _, opt := range options {
		if containsFold(opt, filter) {
			return nil
		}
		dist := levenshtein.ComputeDistance(needle, strings.ToLower(opt))
		if dist <= threshold {
			found = append(found, candidate{option: opt, dist: dist})
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].dist < found[j].dist })
	if len(found) > maxSuggestions {
		found = found[:maxSuggestions]
	}
	out := make([]string, len(found))
	for i, c := range found {
		out[i] = c.option
	}
	return out
}
