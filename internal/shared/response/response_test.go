package response_test

import (
	"math"
	"testing"

	"resto-admin/internal/shared/response"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationMeta(t *testing.T) {
	t.Run("rounds partial pages up", func(t *testing.T) {
		meta := response.NewPaginationMeta(41, 1, 20)
		assert.Equal(t, 3, meta.TotalPages)
	})

	t.Run("empty result has no pages", func(t *testing.T) {
		assert.Equal(t, 0, response.NewPaginationMeta(0, 1, 20).TotalPages)
	})

	t.Run("huge page size does not overflow", func(t *testing.T) {
		var meta response.PaginationMeta
		assert.NotPanics(t, func() {
			meta = response.NewPaginationMeta(5, math.MaxInt64, math.MaxInt)
		})
		assert.Equal(t, 1, meta.TotalPages)
		assert.Equal(t, math.MaxInt64, meta.Page)
	})
}
