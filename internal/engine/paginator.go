package engine

import "github.com/fentz26/taskview/internal/models"

const (
	// DefaultPageSize is the number of tasks shown per page.
	DefaultPageSize = 6
	// DefaultWindow caps the number of page buttons shown at once.
	DefaultWindow = 5
)

// TotalPages returns ceil(n/size), which is 0 for an empty list.
func TotalPages(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Paginator tracks the current page over a list whose length may change
// between calls. The page is always within [1, max(TotalPages, 1)].
type Paginator struct {
	size   int
	window int
	page   int
}

// NewPaginator creates a paginator on page 1. Non-positive arguments fall
// back to DefaultPageSize and DefaultWindow.
func NewPaginator(size, window int) *Paginator {
	if size <= 0 {
		size = DefaultPageSize
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Paginator{size: size, window: window, page: 1}
}

// TotalPages returns the page count for a list of n items.
func (p *Paginator) TotalPages(n int) int { return TotalPages(n, p.size) }

func (p *Paginator) clamp(page, n int) int {
	if total := p.TotalPages(n); page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Current returns the current page clamped against a list of n items.
func (p *Paginator) Current(n int) int { return p.clamp(p.page, n) }

// SetPage moves to page, clamped to the valid range for n items, and returns
// the resulting page.
func (p *Paginator) SetPage(page, n int) int {
	p.page = p.clamp(page, n)
	return p.page
}

// Next moves one page forward; a no-op on the last page.
func (p *Paginator) Next(n int) int { return p.SetPage(p.Current(n)+1, n) }

// Prev moves one page back; a no-op on page 1.
func (p *Paginator) Prev(n int) int { return p.SetPage(p.Current(n)-1, n) }

// Reset returns to page 1.
func (p *Paginator) Reset() { p.page = 1 }

// Bounds returns the half-open index range of the current page over n items.
func (p *Paginator) Bounds(n int) (lo, hi int) {
	if n <= 0 {
		return 0, 0
	}
	page := p.Current(n)
	lo = (page - 1) * p.size
	hi = lo + p.size
	if hi > n {
		hi = n
	}
	return lo, hi
}

// Slice returns the current page of tasks.
func (p *Paginator) Slice(tasks []models.Task) []models.Task {
	lo, hi := p.Bounds(len(tasks))
	return tasks[lo:hi]
}

// Window returns the page numbers to offer as direct jumps: at most the
// configured window, centered on the current page and shifted to stay in
// range.
func (p *Paginator) Window(n int) []int {
	total := p.TotalPages(n)
	if total == 0 {
		return nil
	}

	width := min(p.window, total)
	start := p.Current(n) - width/2
	if start < 1 {
		start = 1
	}
	if start+width-1 > total {
		start = total - width + 1
	}

	pages := make([]int, width)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}
