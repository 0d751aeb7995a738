package views

import "fmt"

// Paginator windows a flat post list into fixed-size pages and tracks
// the selection cursor across them.
type Paginator struct {
	size   int
	offset int
	cursor int
	total  int
}

// NewPaginator creates a paginator showing size rows per page
func NewPaginator(size int) *Paginator {
	if size <= 0 {
		size = 10
	}
	return &Paginator{size: size}
}

// SetTotal sets the number of listed items, clamping the cursor after
// a reload shrinks the list.
func (p *Paginator) SetTotal(total int) {
	p.total = total
	if p.cursor >= total && total > 0 {
		p.cursor = total - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	p.snap()
}

// Cursor returns the selected absolute index
func (p *Paginator) Cursor() int {
	return p.cursor
}

// CursorUp moves the selection up one row
func (p *Paginator) CursorUp() {
	if p.cursor > 0 {
		p.cursor--
		p.snap()
	}
}

// CursorDown moves the selection down one row
func (p *Paginator) CursorDown() {
	if p.cursor < p.total-1 {
		p.cursor++
		p.snap()
	}
}

// NextPage jumps to the first row of the next page
func (p *Paginator) NextPage() {
	if p.offset+p.size < p.total {
		p.offset += p.size
		p.cursor = p.offset
	}
}

// PrevPage jumps to the first row of the previous page
func (p *Paginator) PrevPage() {
	if p.offset > 0 {
		p.offset -= p.size
		if p.offset < 0 {
			p.offset = 0
		}
		p.cursor = p.offset
	}
}

// VisibleRange returns the half-open index range of the current page
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.offset
	end = min(p.offset+p.size, p.total)
	return
}

// TotalPages returns the page count; an empty list still has one page
func (p *Paginator) TotalPages() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.size - 1) / p.size
}

// CurrentPage returns the 1-based page number of the current offset
func (p *Paginator) CurrentPage() int {
	return p.offset/p.size + 1
}

// Legend renders the footer line for multi-page lists, e.g.
// "page 2/3 (34 posts)". Empty for a single page.
func (p *Paginator) Legend(noun string) string {
	if p.TotalPages() <= 1 {
		return ""
	}
	return fmt.Sprintf("page %d/%d (%d %s)", p.CurrentPage(), p.TotalPages(), p.total, noun)
}

// snap moves the page window so the cursor stays visible
func (p *Paginator) snap() {
	if p.cursor < p.offset || p.cursor >= p.offset+p.size {
		p.offset = (p.cursor / p.size) * p.size
	}
}
