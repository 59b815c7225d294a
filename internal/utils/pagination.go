package utils

import (
	"net/http"
	"strconv"
)

const (
	defaultPage  = 1
	defaultLimit = 5
)

// Page holds the parsed pagination query parameters.
type Page struct {
	Number int
	Limit  int
}

// Skip is the zero-based offset of the first record on this page.
func (p Page) Skip() int64 {
	return int64((p.Number - 1) * p.Limit)
}

// ParsePage reads the page and limit query parameters, falling back to
// page 1 and limit 5 on anything missing or unparseable.
func ParsePage(r *http.Request) Page {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}

	return Page{Number: page, Limit: limit}
}

// TotalPages is ceil(total / limit).
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
