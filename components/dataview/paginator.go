package dataview

// DefaultPageSize is used when a table or session does not configure one.
const DefaultPageSize = 10

// Paginator tracks the active 1-based page over a matching set.
type Paginator struct {
	page int
	size int
}

// NewPaginator builds a paginator positioned on page 1.
func NewPaginator(size int) Paginator {
	if size <= 0 {
		size = DefaultPageSize
	}
	return Paginator{page: 1, size: size}
}

// Page returns the active page.
func (p Paginator) Page() int {
	if p.page < 1 {
		return 1
	}
	return p.page
}

// Size returns the configured page size.
func (p Paginator) Size() int {
	if p.size <= 0 {
		return DefaultPageSize
	}
	return p.size
}

// PageCount is ceil(matching/size), never below 1.
func (p Paginator) PageCount(matching int) int {
	size := p.Size()
	count := (matching + size - 1) / size
	if count < 1 {
		return 1
	}
	return count
}

// SetPage clamps n into [1, PageCount(matching)] and returns the new page.
func (p *Paginator) SetPage(n, matching int) int {
	last := p.PageCount(matching)
	switch {
	case n < 1:
		n = 1
	case n > last:
		n = last
	}
	p.page = n
	return n
}

// Reset moves back to page 1.
func (p *Paginator) Reset() {
	p.page = 1
}

// Slice returns the records of the active page.
func (p Paginator) Slice(matches []Record) []Record {
	size := p.Size()
	offset := (p.Page() - 1) * size
	if offset >= len(matches) {
		return []Record{}
	}
	end := offset + size
	if end > len(matches) {
		end = len(matches)
	}
	out := make([]Record, end-offset)
	copy(out, matches[offset:end])
	return out
}
