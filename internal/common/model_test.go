// File: internal/common/model_test.go
package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	testCases := []struct {
		name       string
		totalCount int64
		page       int
		limit      int
		wantPages  int
		wantPage   int
		wantLimit  int
	}{
		{"exact multiple", 20, 1, 10, 2, 1, 10},
		{"partial last page", 25, 3, 10, 3, 3, 10},
		{"single record", 1, 1, 50, 1, 1, 50},
		{"empty result", 0, 1, 50, 0, 1, 50},
		{"zero page clamped", 25, 0, 10, 3, 1, 10},
		{"zero limit falls back to default", 120, 1, 0, 3, 1, DefaultPageLimit},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.totalCount, tc.page, tc.limit)
			assert.Equal(t, tc.totalCount, p.TotalCount)
			assert.Equal(t, tc.wantPages, p.TotalPages)
			assert.Equal(t, tc.wantPage, p.CurrentPage)
			assert.Equal(t, tc.wantLimit, p.Limit)
		})
	}
}

func TestPaginationQuery(t *testing.T) {
	q := PaginationQuery{Page: 3, Limit: 10}
	assert.Equal(t, 20, q.Offset())
	assert.Equal(t, 10, q.PageLimit())

	// Out-of-range values are clamped rather than rejected.
	q = PaginationQuery{Page: 0, Limit: 0}
	assert.Equal(t, 0, q.Offset())
	assert.Equal(t, DefaultPageLimit, q.PageLimit())

	q = PaginationQuery{Page: 1, Limit: MaxPageLimit + 1}
	assert.Equal(t, MaxPageLimit, q.PageLimit())
}
