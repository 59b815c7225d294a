package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateQuestionWithoutIdentity(t *testing.T) {
	h := &QuestionHandler{}

	r := httptest.NewRequest("POST", "/api/v1/question", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Create(rec, r)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Unauthorized action", decodeError(t, rec))
}

func TestCreateAssignmentWithoutIdentity(t *testing.T) {
	h := &AssignmentHandler{}

	r := httptest.NewRequest("POST", "/api/v1/assignment", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.Create(rec, r)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Unauthorized action", decodeError(t, rec))
}

func TestCreateBatchRejectsBadType(t *testing.T) {
	h := &BatchHandler{}

	r := httptest.NewRequest("POST", "/api/v1/batch", strings.NewReader(`{
		"name":"Physics Morning",
		"in_charge":"64f1c0ffee0000000000aaaa",
		"type":"premium",
		"status":"draft",
		"duration":{"from":"2030-01-01T00:00:00Z","to":"2030-06-01T00:00:00Z"}
	}`))
	rec := httptest.NewRecorder()
	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "oneof")
}
