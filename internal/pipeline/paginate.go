package pipeline

// DefaultPageSize is used when a view does not configure one.
const DefaultPageSize = 10

// PageState is the navigation state of a paginated list. Methods return new
// states and never fail; out-of-range requests are clamped.
type PageState struct {
	Current int
	Size    int
	Total   int
}

// NewPageState returns the first page for total items.
func NewPageState(size, total int) PageState {
	return PageState{Current: 1, Size: size, Total: total}.normalize()
}

func (p PageState) normalize() PageState {
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Total < 0 {
		p.Total = 0
	}
	p.Current = clamp(p.Current, 1, p.TotalPages())
	return p
}

// TotalPages is ceil(Total/Size), never less than one.
func (p PageState) TotalPages() int {
	size := p.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := (p.Total + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// CanGoNext reports whether a later page exists.
func (p PageState) CanGoNext() bool {
	return p.Current < p.TotalPages()
}

// CanGoPrevious reports whether an earlier page exists.
func (p PageState) CanGoPrevious() bool {
	return p.Current > 1
}

// Next advances one page.
func (p PageState) Next() PageState {
	return p.GoTo(p.Current + 1)
}

// Previous goes back one page.
func (p PageState) Previous() PageState {
	return p.GoTo(p.Current - 1)
}

// GoTo jumps to page n.
func (p PageState) GoTo(n int) PageState {
	p.Current = n
	return p.normalize()
}

// WithTotal recomputes the state for a new item count, keeping the current
// page when it is still valid.
func (p PageState) WithTotal(total int) PageState {
	p.Total = total
	return p.normalize()
}

// Bounds returns the half-open offsets [start, end) of the current page.
func (p PageState) Bounds() (int, int) {
	p = p.normalize()
	start := (p.Current - 1) * p.Size
	end := start + p.Size
	if end > p.Total {
		end = p.Total
	}
	if start > end {
		start = end
	}
	return start, end
}

// Showing returns the 1-based first and last item numbers on the page and
// the total, as in "Mostrando 11 a 20 de 23".
func (p PageState) Showing() (int, int, int) {
	start, end := p.Bounds()
	if end == 0 {
		return 0, 0, p.Total
	}
	return start + 1, end, p.Total
}

// Slice returns the items of the current page.
func Slice[T any](items []T, p PageState) []T {
	p = p.WithTotal(len(items))
	start, end := p.Bounds()
	return items[start:end]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
