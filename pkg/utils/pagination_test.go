package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPageOffset(t *testing.T) {
	t.Run("Zero values normalize to first page", func(t *testing.T) {
		p := Pagination{}
		offset, limit := p.GetPageOffset()

		assert.Equal(t, 0, offset)
		assert.Equal(t, 10, limit)
		assert.Equal(t, 1, p.Page)
	})

	t.Run("Offset follows page", func(t *testing.T) {
		p := Pagination{Page: 3, Limit: 20}
		offset, limit := p.GetPageOffset()

		assert.Equal(t, 40, offset)
		assert.Equal(t, 20, limit)
	})

	t.Run("Limit is capped", func(t *testing.T) {
		p := Pagination{Page: 1, Limit: 500}
		_, limit := p.GetPageOffset()

		assert.Equal(t, 100, limit)
	})

	t.Run("Negative values normalize", func(t *testing.T) {
		p := Pagination{Page: -2, Limit: -5}
		offset, limit := p.GetPageOffset()

		assert.Equal(t, 0, offset)
		assert.Equal(t, 10, limit)
	})
}
