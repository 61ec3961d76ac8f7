package dataview

import "fmt"

// FilterState is the active status filter and free-text query.
type FilterState struct {
	Status string `json:"status"`
	Query  string `json:"query"`
}

// DefaultFilter returns the filter a freshly loaded view starts with.
func DefaultFilter() FilterState {
	return FilterState{Status: StatusAll}
}

// ViewResult is the read-only projection handed to the UI layer.
type ViewResult struct {
	Records       []Record    `json:"records"`
	MatchingCount int         `json:"matching_count"`
	TotalCount    int         `json:"total_count"`
	Page          int         `json:"page"`
	PageSize      int         `json:"page_size"`
	PageCount     int         `json:"page_count"`
	First         int         `json:"first"`
	Last          int         `json:"last"`
	Filter        FilterState `json:"filter"`
}

// Summary renders the table footer text, e.g. "Showing 1-10 of 42 items".
func (r ViewResult) Summary() string {
	return fmt.Sprintf("Showing %d-%d of %d items", r.First, r.Last, r.MatchingCount)
}

// View combines one row store with its filter and page state. Every call
// recomputes the projection from scratch. A View must not be shared between
// sessions and is not safe for concurrent use.
type View struct {
	store  *RowStore
	filter FilterState
	pager  Paginator
}

// NewView builds an empty view with the given page size.
func NewView(pageSize int) *View {
	return &View{
		store:  NewRowStore(),
		filter: DefaultFilter(),
		pager:  NewPaginator(pageSize),
	}
}

// Load replaces every row and resets filter and page state.
func (v *View) Load(records []Record) int {
	n := v.store.Load(records)
	v.filter = DefaultFilter()
	v.pager.Reset()
	return n
}

// Add appends a row without touching filter or page state.
func (v *View) Add(rec Record) (Record, error) {
	return v.store.Add(rec)
}

// Remove deletes a row by key; unknown keys are a no-op.
func (v *View) Remove(key string) bool {
	return v.store.Remove(key)
}

// Get returns the row stored under key.
func (v *View) Get(key string) (Record, bool) {
	return v.store.Get(key)
}

// All returns every stored row in order.
func (v *View) All() []Record {
	return v.store.All()
}

// Filter returns the active filter state.
func (v *View) Filter() FilterState {
	return v.filter
}

// SetFilter replaces the filter state and resets the page.
func (v *View) SetFilter(filter FilterState) {
	if filter.Status == "" {
		filter.Status = StatusAll
	}
	v.filter = filter
	v.pager.Reset()
}

// SetStatusFilter replaces the status filter and resets the page.
func (v *View) SetStatusFilter(value string) {
	v.SetFilter(FilterState{Status: value, Query: v.filter.Query})
}

// SetSearchQuery replaces the search query and resets the page.
func (v *View) SetSearchQuery(value string) {
	v.SetFilter(FilterState{Status: v.filter.Status, Query: value})
}

// SetPage clamps n against the current matching count and returns the page.
func (v *View) SetPage(n int) int {
	return v.pager.SetPage(n, len(v.ComputeMatches()))
}

// Page returns the active page.
func (v *View) Page() int {
	return v.pager.Page()
}

// PageSize returns the configured page size.
func (v *View) PageSize() int {
	return v.pager.Size()
}

// ComputeMatches returns, in store order, every row satisfying both the
// status filter and the search query.
func (v *View) ComputeMatches() []Record {
	rows := v.store.All()
	matches := make([]Record, 0, len(rows))
	for _, rec := range rows {
		if MatchesStatus(rec, v.filter.Status) && MatchesSearch(rec, v.filter.Query) {
			matches = append(matches, rec)
		}
	}
	return matches
}

// CurrentPageRecords slices matches down to the active page.
func (v *View) CurrentPageRecords(matches []Record) []Record {
	return v.pager.Slice(matches)
}

// Result computes the projection for the current state. The page is clamped
// again since rows may have been removed since the last SetPage.
func (v *View) Result() ViewResult {
	matches := v.ComputeMatches()
	page := v.pager.SetPage(v.pager.Page(), len(matches))
	records := v.pager.Slice(matches)
	result := ViewResult{
		Records:       records,
		MatchingCount: len(matches),
		TotalCount:    v.store.Len(),
		Page:          page,
		PageSize:      v.pager.Size(),
		PageCount:     v.pager.PageCount(len(matches)),
		Filter:        v.filter,
	}
	if len(records) > 0 {
		result.First = (page-1)*result.PageSize + 1
		result.Last = result.First + len(records) - 1
	}
	return result
}
