package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateLectureMissingFields(t *testing.T) {
	h := &LectureHandler{}

	r := httptest.NewRequest("POST", "/api/v1/lecture", strings.NewReader(`{"status":"draft"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "All fields are mandatory", decodeError(t, rec))
}

func TestCreateLectureRejectsPastSlot(t *testing.T) {
	h := &LectureHandler{}

	y := time.Now().AddDate(0, 0, -1)
	from := time.Date(y.Year(), y.Month(), y.Day(), 10, 0, 0, 0, time.UTC)
	payload := fmt.Sprintf(`{
		"status":"draft",
		"subject":"64f1c0ffee0000000000aaaa",
		"batch":"64f1c0ffee0000000000bbbb",
		"teacher":"64f1c0ffee0000000000cccc",
		"duration":{"from":%q,"to":%q}
	}`,
		from.Format(time.RFC3339),
		from.Add(time.Hour).Format(time.RFC3339))

	r := httptest.NewRequest("POST", "/api/v1/lecture", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Lecture cannot be scheduled in the past.", decodeError(t, rec))
}

func TestCreateLectureNonDraftNeedsLink(t *testing.T) {
	h := &LectureHandler{}

	tm := time.Now().AddDate(0, 0, 2)
	from := time.Date(tm.Year(), tm.Month(), tm.Day(), 10, 0, 0, 0, time.UTC)
	payload := fmt.Sprintf(`{
		"status":"pending",
		"subject":"64f1c0ffee0000000000aaaa",
		"batch":"64f1c0ffee0000000000bbbb",
		"teacher":"64f1c0ffee0000000000cccc",
		"duration":{"from":%q,"to":%q}
	}`,
		from.Format(time.RFC3339),
		from.Add(2*time.Hour).Format(time.RFC3339))

	r := httptest.NewRequest("POST", "/api/v1/lecture", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Lecture link is required unless the lecture is a draft", decodeError(t, rec))
}

func TestCreateLectureRejectsBadStatus(t *testing.T) {
	h := &LectureHandler{}

	r := httptest.NewRequest("POST", "/api/v1/lecture", strings.NewReader(`{
		"status":"cancelled",
		"subject":"64f1c0ffee0000000000aaaa",
		"batch":"64f1c0ffee0000000000bbbb",
		"teacher":"64f1c0ffee0000000000cccc",
		"duration":{"from":"2030-01-01T10:00:00Z","to":"2030-01-01T11:00:00Z"}
	}`))
	rec := httptest.NewRecorder()
	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec), "oneof")
}
