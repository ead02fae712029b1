package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetMeta(t *testing.T) {
	params := &Params{Page: 2, Limit: 20, Offset: 20}
	meta := GetMeta(params, 45)

	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, int64(45), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}

func TestGetMeta_ExactPageBoundary(t *testing.T) {
	params := &Params{Page: 2, Limit: 20, Offset: 20}
	meta := GetMeta(params, 40)

	assert.Equal(t, 2, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.True(t, meta.HasPrev)
}

func TestGetMeta_EmptyResult(t *testing.T) {
	params := &Params{Page: 1, Limit: 20}
	meta := GetMeta(params, 0)

	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}
