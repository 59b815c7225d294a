package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePageDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/subject/all", nil)
	page := ParsePage(r)

	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 5, page.Limit)
	assert.Equal(t, int64(0), page.Skip())
}

func TestParsePageExplicit(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/subject/all?page=3&limit=10", nil)
	page := ParsePage(r)

	assert.Equal(t, 3, page.Number)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, int64(20), page.Skip())
}

func TestParsePageGarbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/subject/all?page=zero&limit=-4", nil)
	page := ParsePage(r)

	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 5, page.Limit)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(3), TotalPages(12, 5))
	assert.Equal(t, int64(2), TotalPages(10, 5))
	assert.Equal(t, int64(1), TotalPages(1, 5))
	assert.Equal(t, int64(0), TotalPages(0, 5))
	assert.Equal(t, int64(0), TotalPages(10, 0))
}
