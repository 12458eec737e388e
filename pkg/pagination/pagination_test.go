package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClampsParams(t *testing.T) {
	params := &PaginationParams{Page: -1, PerPage: 9999}
	params.Validate()
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 100, params.PerPage)
}

func TestSliceAndPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	params := &PaginationParams{Page: 2, PerPage: 3}
	assert.Equal(t, []int{4, 5, 6}, Slice(items, params))

	params = &PaginationParams{Page: 3, PerPage: 3}
	assert.Equal(t, []int{7}, Slice(items, params))

	params = &PaginationParams{Page: 9, PerPage: 3}
	assert.Empty(t, Slice(items, params))

	result := Paginate(items, &PaginationParams{Page: 1, PerPage: 5})
	assert.Len(t, result.Items, 5)
	assert.Equal(t, int64(7), result.Pagination.Total)
	assert.Equal(t, 2, result.Pagination.TotalPages)
}
