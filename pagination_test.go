package datagrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageCount(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 10, 1},
		{4, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{4, 3, 2},
		{4, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PageCount(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestPaginationClamp(t *testing.T) {
	p := PaginationState{PageIndex: 5, PageSize: 2}
	assert.Equal(t, 1, p.Clamp(4).PageIndex)
	assert.Equal(t, 0, p.Clamp(0).PageIndex)
	assert.Equal(t, 0, PaginationState{PageIndex: -3, PageSize: 2}.Clamp(4).PageIndex)
}

func TestPaginationBounds(t *testing.T) {
	start, end := PaginationState{PageIndex: 1, PageSize: 3}.Bounds(4)
	assert.Equal(t, 3, start)
	assert.Equal(t, 4, end)

	start, end = PaginationState{PageIndex: 0, PageSize: 10}.Bounds(0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestPaginate(t *testing.T) {
	records := paymentRecords()
	page := Paginate(records, PaginationState{PageIndex: 1, PageSize: 3})
	assert.Len(t, page, 1)
	assert.Equal(t, "SENANGPAY1711547417PDrKyccm", page[0]["referenceNumber"])

	assert.Len(t, Paginate(records, PaginationState{PageIndex: 9, PageSize: 3}), 1)
}

func TestPaginationNavigation(t *testing.T) {
	p := PaginationState{PageSize: 2}
	p = p.Next(5)
	p = p.Next(5)
	p = p.Next(5)
	assert.Equal(t, 2, p.PageIndex)

	p = p.Previous(5)
	assert.Equal(t, 1, p.PageIndex)

	assert.Equal(t, 0, p.First().PageIndex)
	assert.Equal(t, 2, p.Last(5).PageIndex)

	p = p.WithPageSize(5)
	assert.Equal(t, PaginationState{PageIndex: 0, PageSize: 5}, p)
	assert.Equal(t, p, p.WithPageSize(-1))
}
