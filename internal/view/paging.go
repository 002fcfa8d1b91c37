package view

// PageSizeOptions is the fixed option set offered by every table.
var PageSizeOptions = []int{5, 10, 20, 50}

// Paging carries the pagination state of one table. The table never
// fetches data; page changes round-trip through the caller's URL.
type Paging struct {
	CurrentPage int
	PageSize    int
	TotalCount  int
	// BaseQuery is prepended to pagination links so page flips preserve
	// sibling parameters (the categories tab, filters).
	BaseQuery string
}

// NewPaging clamps the requested page into [1, max(1, totalPages)] and
// falls back to the default page size for values outside the option set.
func NewPaging(page int, pageSize int, totalCount int) Paging {
	if !validPageSize(pageSize) {
		pageSize = 10
	}

	p := Paging{CurrentPage: page, PageSize: pageSize, TotalCount: totalCount}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if max := p.TotalPages(); max > 0 && p.CurrentPage > max {
		p.CurrentPage = max
	}

	return p
}

// ClampRequest normalizes a requested page and size before any data is
// fetched, so the upstream query matches what the pager will render.
// NewPaging still caps the page once the total count is known.
func ClampRequest(page int, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if !validPageSize(pageSize) {
		pageSize = 10
	}

	return page, pageSize
}

func validPageSize(size int) bool {
	for _, option := range PageSizeOptions {
		if size == option {
			return true
		}
	}

	return false
}

// TotalPages is ceil(totalCount / pageSize).
func (p Paging) TotalPages() int {
	if p.PageSize <= 0 {
		return 0
	}

	return (p.TotalCount + p.PageSize - 1) / p.PageSize
}

func (p Paging) HasPrev() bool {
	return p.CurrentPage > 1
}

func (p Paging) HasNext() bool {
	return p.CurrentPage < p.TotalPages()
}

// From is the ordinal of the first visible row, for the range summary.
func (p Paging) From() int {
	if p.TotalCount == 0 {
		return 0
	}

	from := (p.CurrentPage-1)*p.PageSize + 1
	if from > p.TotalCount {
		return p.TotalCount
	}

	return from
}

// To is the ordinal of the last visible row.
func (p Paging) To() int {
	to := p.CurrentPage * p.PageSize
	if to > p.TotalCount {
		return p.TotalCount
	}

	return to
}

// Options pairs each page size with its selected state for the template.
func (p Paging) Options() []PageSizeOption {
	out := make([]PageSizeOption, 0, len(PageSizeOptions))
	for _, size := range PageSizeOptions {
		out = append(out, PageSizeOption{Size: size, Selected: size == p.PageSize})
	}

	return out
}

type PageSizeOption struct {
	Size     int
	Selected bool
}
