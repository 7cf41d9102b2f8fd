package permits

// Page sizes the UI offers; anything else is rejected by SetPageSize.
var allowedPageSizes = map[int]bool{10: true, 25: true, 50: true, 100: true}

// DefaultPageSize is used until a caller selects another size.
const DefaultPageSize = 25

// Paginator slices a normalized result set for display. Pages are
// 1-indexed; out-of-range pages come back empty rather than erroring.
type Paginator struct {
	records  []Record
	pageSize int
	page     int
}

func NewPaginator(records []Record) *Paginator {
	return &Paginator{records: records, pageSize: DefaultPageSize, page: 1}
}

// Len returns the total number of records across all pages.
func (p *Paginator) Len() int { return len(p.records) }

// PageSize returns the active page size.
func (p *Paginator) PageSize() int { return p.pageSize }

// SetPageSize switches to one of the supported sizes and resets to the
// first page. Unsupported sizes are ignored so a bad query parameter
// cannot corrupt pagination.
func (p *Paginator) SetPageSize(size int) {
	if allowedPageSizes[size] {
		p.pageSize = size
		p.page = 1
	}
}

// CurrentPage returns the page selected with SetPage, starting at 1.
func (p *Paginator) CurrentPage() int { return p.page }

// SetPage moves to the given page. Values below 1 clamp to 1.
func (p *Paginator) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	p.page = page
}

// Current returns the records of the selected page.
func (p *Paginator) Current() []Record { return p.Page(p.page) }

// TotalPages is ceil(len / pageSize); an empty result set has 0 pages.
func (p *Paginator) TotalPages() int {
	if len(p.records) == 0 {
		return 0
	}
	return (len(p.records) + p.pageSize - 1) / p.pageSize
}

// Page returns the records of the given 1-indexed page, clamped to the
// bounds of the result set.
func (p *Paginator) Page(page int) []Record {
	if page < 1 {
		return nil
	}
	start := (page - 1) * p.pageSize
	if start >= len(p.records) {
		return nil
	}
	end := start + p.pageSize
	if end > len(p.records) {
		end = len(p.records)
	}
	return p.records[start:end]
}
