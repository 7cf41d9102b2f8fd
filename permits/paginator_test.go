package permits

import (
	"fmt"
	"testing"
)

func makeRecords(n int) []Record {
	records := make([]Record, n)
	for i := range records {
		records[i] = Record{PermitNumber: fmt.Sprintf("BP%03d", i+1)}
	}
	return records
}

func TestPaginatorPages(t *testing.T) {
	p := NewPaginator(makeRecords(57))

	if got := p.TotalPages(); got != 3 {
		t.Errorf("TotalPages = %d, expected 3", got)
	}
	if got := len(p.Page(1)); got != 25 {
		t.Errorf("page 1 has %d records, expected 25", got)
	}
	if got := len(p.Page(3)); got != 7 {
		t.Errorf("page 3 has %d records, expected 7", got)
	}
	if got := len(p.Page(4)); got != 0 {
		t.Errorf("page 4 has %d records, expected empty", got)
	}
	if got := len(p.Page(0)); got != 0 {
		t.Errorf("page 0 has %d records, expected empty", got)
	}
	if got := p.Page(3)[0].PermitNumber; got != "BP051" {
		t.Errorf("page 3 starts at %s, expected BP051", got)
	}
}

func TestPaginatorEmpty(t *testing.T) {
	p := NewPaginator(nil)
	if got := p.TotalPages(); got != 0 {
		t.Errorf("TotalPages = %d, expected 0 for empty set", got)
	}
	if got := len(p.Page(1)); got != 0 {
		t.Errorf("page 1 of empty set has %d records", got)
	}
}

func TestPaginatorSetPageSize(t *testing.T) {
	p := NewPaginator(makeRecords(57))
	p.SetPage(3)

	p.SetPageSize(10)
	if p.PageSize() != 10 {
		t.Errorf("PageSize = %d, expected 10", p.PageSize())
	}
	if p.CurrentPage() != 1 {
		t.Errorf("changing page size should reset to page 1, got %d", p.CurrentPage())
	}
	if got := p.TotalPages(); got != 6 {
		t.Errorf("TotalPages = %d, expected 6", got)
	}

	// Unsupported sizes leave the paginator untouched.
	p.SetPage(2)
	p.SetPageSize(33)
	if p.PageSize() != 10 || p.CurrentPage() != 2 {
		t.Errorf("unsupported size changed state: size=%d page=%d", p.PageSize(), p.CurrentPage())
	}
}

func TestPaginatorCurrent(t *testing.T) {
	p := NewPaginator(makeRecords(30))
	p.SetPage(2)
	current := p.Current()
	if len(current) != 5 {
		t.Fatalf("page 2 has %d records, expected 5", len(current))
	}
	if current[0].PermitNumber != "BP026" {
		t.Errorf("page 2 starts at %s, expected BP026", current[0].PermitNumber)
	}
}
