// Package pagination computes page windows and navigation descriptors.
// It never builds URIs; the HTTP layer renders Links.
package pagination

// Paging policy shared by every list endpoint.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MinPageSize       = 1
	MaxPageSize       = 20
)

// Link names a page by its logical number and size.
type Link struct {
	PageNumber int
	PageSize   int
}

// Page describes one window over a collection of TotalCount items.
type Page struct {
	CurrentPage int
	PageSize    int
	TotalCount  int
	TotalPages  int
}

// Normalize clamps a requested page number to >= 1 and the size to
// [MinPageSize, MaxPageSize].
func Normalize(pageNumber, pageSize int) (int, int) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < MinPageSize {
		pageSize = MinPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return pageNumber, pageSize
}

// New builds a Page for the requested window over total items.
func New(pageNumber, pageSize, total int) Page {
	pageNumber, pageSize = Normalize(pageNumber, pageSize)
	if total < 0 {
		total = 0
	}
	return Page{
		CurrentPage: pageNumber,
		PageSize:    pageSize,
		TotalCount:  total,
		TotalPages:  (total + pageSize - 1) / pageSize,
	}
}

// Offset returns the index of the first item on this page.
func (p Page) Offset() int {
	return (p.CurrentPage - 1) * p.PageSize
}

// HasPrevious reports whether a page precedes this one.
func (p Page) HasPrevious() bool {
	return p.CurrentPage > 1
}

// HasNext reports whether a page follows this one.
func (p Page) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// PreviousLink returns the previous page, or nil on the first page.
func (p Page) PreviousLink() *Link {
	if !p.HasPrevious() {
		return nil
	}
	return &Link{PageNumber: p.CurrentPage - 1, PageSize: p.PageSize}
}

// NextLink returns the next page, or nil on the last page.
func (p Page) NextLink() *Link {
	if !p.HasNext() {
		return nil
	}
	return &Link{PageNumber: p.CurrentPage + 1, PageSize: p.PageSize}
}

// Window returns the bounds [start, end) of this page within a collection
// of n items, clamped to n.
func (p Page) Window(n int) (int, int) {
	start := p.Offset()
	if start > n {
		start = n
	}
	end := start + p.PageSize
	if end > n {
		end = n
	}
	return start, end
}
