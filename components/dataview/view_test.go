package dataview

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roomRecords() []Record {
	return []Record{
		NewRecord("R1", "Available", Field{Name: "room", Value: "Room 101"}, Field{Name: "status", Value: "Available"}),
		NewRecord("R2", "Occupied", Field{Name: "room", Value: "Room 201"}, Field{Name: "status", Value: "Occupied"}),
		NewRecord("R3", "Maintenance", Field{Name: "room", Value: "Room 301"}, Field{Name: "status", Value: "Maintenance"}),
	}
}

func keys(records []Record) []string {
	out := make([]string, len(records))
	for i, rec := range records {
		out[i] = rec.Key
	}
	return out
}

func TestViewPartialStatusFilterClampsPage(t *testing.T) {
	view := NewView(2)
	view.Load(roomRecords())
	view.SetPage(2)
	require.Equal(t, 2, view.Page())

	view.SetStatusFilter("main")
	matches := view.ComputeMatches()
	assert.Equal(t, []string{"R3"}, keys(matches))
	assert.Equal(t, 1, view.Page())
	assert.Equal(t, 1, view.SetPage(5))
	assert.Equal(t, []string{"R3"}, keys(view.CurrentPageRecords(matches)))
}

func TestViewRemoveKeepsOrder(t *testing.T) {
	view := NewView(10)
	view.Load(roomRecords())
	assert.True(t, view.Remove("R2"))
	view.SetStatusFilter(StatusAll)
	assert.Equal(t, []string{"R1", "R3"}, keys(view.ComputeMatches()))
}

func TestViewRemoveUnknownKeyIsNoop(t *testing.T) {
	view := NewView(10)
	view.Load(roomRecords())
	assert.False(t, view.Remove("missing"))
	assert.Len(t, view.All(), 3)
}

func TestViewFilterChangesResetPage(t *testing.T) {
	view := NewView(1)
	view.Load(roomRecords())
	require.Equal(t, 3, view.SetPage(3))

	view.SetSearchQuery("room")
	assert.Equal(t, 1, view.Page())

	view.SetPage(2)
	view.SetStatusFilter("All")
	assert.Equal(t, 1, view.Page())
}

func TestViewSearchMatchesAnyField(t *testing.T) {
	view := NewView(10)
	view.Load(roomRecords())
	view.SetSearchQuery("ROOM 2")
	assert.Equal(t, []string{"R2"}, keys(view.ComputeMatches()))

	view.SetSearchQuery("occ")
	assert.Equal(t, []string{"R2"}, keys(view.ComputeMatches()))
}

func TestViewFiltersCombine(t *testing.T) {
	view := NewView(10)
	view.Load(roomRecords())
	view.SetStatusFilter("a")
	view.SetSearchQuery("301")
	assert.Equal(t, []string{"R3"}, keys(view.ComputeMatches()))
	assert.Equal(t, FilterState{Status: "a", Query: "301"}, view.Filter())
}

func TestViewComputeMatchesIsIdempotent(t *testing.T) {
	view := NewView(10)
	view.Load(roomRecords())
	view.SetSearchQuery("room")
	first := view.ComputeMatches()
	second := view.ComputeMatches()
	assert.Equal(t, first, second)
}

func TestViewComputeMatchesSeesMutations(t *testing.T) {
	view := NewView(10)
	view.Load(roomRecords())
	view.SetStatusFilter("Occupied")
	require.Len(t, view.ComputeMatches(), 1)

	view.Remove("R2")
	assert.Empty(t, view.ComputeMatches())
}

func TestViewResultEmpty(t *testing.T) {
	view := NewView(10)
	result := view.Result()
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 1, result.PageCount)
	assert.Equal(t, 0, result.MatchingCount)
	assert.Empty(t, result.Records)
	assert.Equal(t, "Showing 0-0 of 0 items", result.Summary())
}

func TestViewResultReclampsAfterRemoval(t *testing.T) {
	view := NewView(2)
	view.Load(roomRecords())
	require.Equal(t, 2, view.SetPage(2))
	view.Remove("R3")

	result := view.Result()
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, []string{"R1", "R2"}, keys(result.Records))
	assert.Equal(t, "Showing 1-2 of 2 items", result.Summary())
}

func TestViewResultSecondPage(t *testing.T) {
	view := NewView(2)
	view.Load(roomRecords())
	view.SetPage(2)

	result := view.Result()
	assert.Equal(t, 2, result.PageCount)
	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, 3, result.First)
	assert.Equal(t, 3, result.Last)
	assert.Equal(t, []string{"R3"}, keys(result.Records))
}

func TestViewLoadResetsFilter(t *testing.T) {
	view := NewView(10)
	view.Load(roomRecords())
	view.SetSearchQuery("zzz")
	view.Load(roomRecords()[:1])
	assert.Equal(t, DefaultFilter(), view.Filter())
	assert.Len(t, view.ComputeMatches(), 1)
}

func TestViewEmptyStatusFilterMeansAll(t *testing.T) {
	view := NewView(10)
	view.Load(roomRecords())
	view.SetStatusFilter("")
	assert.Equal(t, StatusAll, view.Filter().Status)
	assert.Len(t, view.ComputeMatches(), 3)
}

func generatedRecords(n int) []Record {
	statuses := []string{"Available", "Occupied", "Maintenance", "Reserved", "Pending", ""}
	guests := []string{"Amelia Hart", "Jonas Weber", "Priya Nair", "Diego Santos"}
	out := make([]Record, n)
	for i := range out {
		status := statuses[i%len(statuses)]
		out[i] = NewRecord(fmt.Sprintf("R%03d", i+1), status,
			Field{Name: "room", Value: fmt.Sprintf("Room %d", 100+i*7)},
			Field{Name: "guest", Value: guests[i%len(guests)]},
			Field{Name: "status", Value: status},
		)
	}
	return out
}

var (
	viewRecordSets = map[string][]Record{
		"empty":     nil,
		"rooms":     roomRecords(),
		"generated": generatedRecords(23),
	}
	viewPageSizes = []int{1, 2, 3, 5, 10, 50}
	viewStatuses  = []string{StatusAll, "", "occ", "MAIN", "pend", "zzz"}
	viewQueries   = []string{"", "room", "1", "ROOM 2", "priya", "nothing-here"}
)

func TestViewPagesCoverMatchesExactly(t *testing.T) {
	for name, records := range viewRecordSets {
		for _, size := range viewPageSizes {
			for _, status := range viewStatuses {
				for _, query := range viewQueries {
					view := NewView(size)
					view.Load(records)
					view.SetStatusFilter(status)
					view.SetSearchQuery(query)
					matches := view.ComputeMatches()
					pageCount := view.Result().PageCount

					var paged []Record
					for p := 1; p <= pageCount; p++ {
						require.Equal(t, p, view.SetPage(p))
						paged = append(paged, view.CurrentPageRecords(view.ComputeMatches())...)
					}
					label := fmt.Sprintf("%s size=%d status=%q query=%q", name, size, status, query)
					assert.Equal(t, keys(matches), keys(paged), label)
					assert.GreaterOrEqual(t, pageCount, 1, label)
				}
			}
		}
	}
}

func TestViewFilterSettersAreIdempotent(t *testing.T) {
	for name, records := range viewRecordSets {
		for _, size := range viewPageSizes {
			for _, status := range viewStatuses {
				once := NewView(size)
				once.Load(records)
				once.SetPage(2)
				once.SetStatusFilter(status)

				twice := NewView(size)
				twice.Load(records)
				twice.SetPage(2)
				twice.SetStatusFilter(status)
				twice.SetStatusFilter(status)

				label := fmt.Sprintf("%s size=%d status=%q", name, size, status)
				assert.Equal(t, once.Result(), twice.Result(), label)
			}
			for _, query := range viewQueries {
				once := NewView(size)
				once.Load(records)
				once.SetSearchQuery(query)

				twice := NewView(size)
				twice.Load(records)
				twice.SetSearchQuery(query)
				twice.SetSearchQuery(query)

				label := fmt.Sprintf("%s size=%d query=%q", name, size, query)
				assert.Equal(t, once.Result(), twice.Result(), label)
			}
		}
	}
}

func TestViewSearchNarrowsEmptyQueryMatches(t *testing.T) {
	for name, records := range viewRecordSets {
		for _, status := range viewStatuses {
			view := NewView(DefaultPageSize)
			view.Load(records)
			view.SetStatusFilter(status)
			view.SetSearchQuery("")
			all := keys(view.ComputeMatches())

			for _, query := range viewQueries {
				view.SetSearchQuery(query)
				label := fmt.Sprintf("%s status=%q query=%q", name, status, query)
				assert.Subset(t, all, keys(view.ComputeMatches()), label)
			}
		}
	}
}
