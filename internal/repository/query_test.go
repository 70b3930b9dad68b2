package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListQueryNormalize(t *testing.T) {
	tests := []struct {
		name      string
		in        ListQuery
		wantPage  int
		wantLimit int
	}{
		{"zero values get defaults", ListQuery{}, 1, 10},
		{"negative page clamps to 1", ListQuery{Page: -3, Limit: 5}, 1, 5},
		{"limit above cap clamps to 100", ListQuery{Page: 2, Limit: 5000}, 2, 100},
		{"valid values pass through", ListQuery{Page: 3, Limit: 25}, 3, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestListQueryOffset(t *testing.T) {
	q := ListQuery{Page: 3, Limit: 10}.Normalize()
	assert.Equal(t, 20, q.Offset())

	q = ListQuery{}.Normalize()
	assert.Equal(t, 0, q.Offset())
}

func TestNewPagination(t *testing.T) {
	// 25 rows at limit 10 paginate into 3 pages.
	p := NewPagination(ListQuery{Page: 3, Limit: 10}.Normalize(), 25)
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, int64(25), p.Total)
	assert.Equal(t, 3, p.Pages)

	p = NewPagination(ListQuery{Page: 1, Limit: 10}.Normalize(), 0)
	assert.Equal(t, 0, p.Pages)

	p = NewPagination(ListQuery{Page: 1, Limit: 10}.Normalize(), 10)
	assert.Equal(t, 1, p.Pages)
}
