package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 37)
	for i := range items {
		items[i] = i + 1
	}

	tests := []struct {
		offset, limit int
		wantLen       int
		wantStart     int
		wantEnd       int
	}{
		{offset: 10, limit: 10, wantLen: 10, wantStart: 11, wantEnd: 20},
		{offset: 35, limit: 10, wantLen: 2, wantStart: 36, wantEnd: 37},
		{offset: 100, limit: 10, wantLen: 0, wantStart: 101, wantEnd: 100},
		{offset: 0, limit: 10, wantLen: 10, wantStart: 1, wantEnd: 10},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("offset=%d", tt.offset), func(t *testing.T) {
			res := Paginate(items, tt.offset, tt.limit)
			assert.Len(t, res.Results, tt.wantLen)
			assert.Equal(t, 37, res.Total)
			assert.Equal(t, tt.wantStart, res.Start)
			assert.Equal(t, tt.wantEnd, res.End)
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	res := Paginate([]string{}, 0, 25)
	assert.Empty(t, res.Results)
	assert.Equal(t, 0, res.Total)
	assert.Equal(t, 1, res.Start)
	assert.Equal(t, 0, res.End)
}
