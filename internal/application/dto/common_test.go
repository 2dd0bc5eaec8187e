package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Blawness/project-tanah-garapan-sub000/internal/application/dto"
)

func TestPageRequest_NormalizeDefaults(t *testing.T) {
	p := dto.PageRequest{}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PageSize)
	assert.Equal(t, 0, p.Offset())
}

func TestPageRequest_NormalizeClamps(t *testing.T) {
	p := dto.PageRequest{Page: -3, PageSize: 1000}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PageSize)

	p = dto.PageRequest{Page: 3, PageSize: 20}
	p.Normalize()
	assert.Equal(t, 40, p.Offset())
}

// 45 records at 20 per page fit in 3 pages.
func TestNewPaginated_TotalPages(t *testing.T) {
	out := dto.NewPaginated([]string{}, 45, 1, 20)
	assert.Equal(t, 45, out.Total)
	assert.Equal(t, 3, out.TotalPages)
	assert.Equal(t, 1, out.CurrentPage)
	assert.Equal(t, 20, out.PageSize)
}

func TestNewPaginated_ExactAndEmpty(t *testing.T) {
	assert.Equal(t, 2, dto.NewPaginated(nil, 40, 1, 20).TotalPages, "exact multiple")
	assert.Equal(t, 0, dto.NewPaginated(nil, 0, 1, 20).TotalPages, "empty set")
	assert.Equal(t, 1, dto.NewPaginated(nil, 1, 1, 20).TotalPages, "single record")
}
