package datagrid

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 10

// DefaultPageSizeOptions are the page sizes offered to the user.
var DefaultPageSizeOptions = []int{10, 20, 30, 40, 50}

// PaginationState is the zero-based page index and the page size.
type PaginationState struct {
	PageIndex int `json:"pageIndex"`
	PageSize  int `json:"pageSize"`
}

// PageCount returns ceil(total/size), never less than 1.
func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Clamp pulls the page index into [0, PageCount-1].
func (p PaginationState) Clamp(total int) PaginationState {
	last := PageCount(total, p.PageSize) - 1
	if p.PageIndex > last {
		p.PageIndex = last
	}
	if p.PageIndex < 0 {
		p.PageIndex = 0
	}
	return p
}

// Bounds returns the half-open slice range of the current page.
func (p PaginationState) Bounds(total int) (start, end int) {
	p = p.Clamp(total)
	if p.PageSize <= 0 {
		return 0, total
	}
	start = p.PageIndex * p.PageSize
	end = min(total, start+p.PageSize)
	if start > end {
		start = end
	}
	return start, end
}

// Paginate returns the records of the current page.
func Paginate(records []Record, p PaginationState) []Record {
	start, end := p.Bounds(len(records))
	return records[start:end]
}

// WithPageSize changes the size and resets to the first page. Non-positive
// sizes are ignored.
func (p PaginationState) WithPageSize(size int) PaginationState {
	if size <= 0 {
		return p
	}
	return PaginationState{PageIndex: 0, PageSize: size}
}

// WithPageIndex moves to index, clamped into range.
func (p PaginationState) WithPageIndex(index, total int) PaginationState {
	p.PageIndex = index
	return p.Clamp(total)
}

func (p PaginationState) First() PaginationState {
	p.PageIndex = 0
	return p
}

func (p PaginationState) Previous(total int) PaginationState {
	return p.WithPageIndex(p.PageIndex-1, total)
}

func (p PaginationState) Next(total int) PaginationState {
	return p.WithPageIndex(p.PageIndex+1, total)
}

func (p PaginationState) Last(total int) PaginationState {
	return p.WithPageIndex(PageCount(total, p.PageSize)-1, total)
}

// Pagination summarises the current page for the renderer.
type Pagination struct {
	PageIndex       int   `json:"pageIndex"`
	PageCount       int   `json:"pageCount"`
	PageSize        int   `json:"pageSize"`
	TotalRows       int   `json:"totalRows"`
	PageSizeOptions []int `json:"pageSizeOptions"`
	CanPrevious     bool  `json:"canPrevious"`
	CanNext         bool  `json:"canNext"`
}
