package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		page, size    int
		offset, limit int
	}{
		{page: 1, size: 10, offset: 0, limit: 10},
		{page: 3, size: 5, offset: 10, limit: 5},
		{page: 0, size: 5, offset: 0, limit: 5},
		{page: 2, size: 0, offset: DefaultPageSize, limit: DefaultPageSize},
		{page: 1, size: 1000, offset: 0, limit: DefaultPageSize},
	}
	for _, tt := range tests {
		offset, limit := Calculate(tt.page, tt.size)
		assert.Equal(t, tt.offset, offset)
		assert.Equal(t, tt.limit, limit)
	}
}

func TestPager(t *testing.T) {
	p := NewPager(2, 2, 5)
	assert.Equal(t, 3, p.Pages())
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 1, p.Prev())
	assert.Equal(t, 3, p.Next())

	last := NewPager(3, 2, 5)
	assert.False(t, last.HasNext())

	empty := NewPager(-4, 0, 0)
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 0, empty.Pages())
	assert.False(t, empty.HasPrev())
	assert.False(t, empty.HasNext())
}
