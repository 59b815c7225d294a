package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// unreachableAdminHandler targets a mongod that does not exist, so every
// storage call fails fast with a server selection error.
func unreachableAdminHandler(t *testing.T) *AdminHandler {
	t.Helper()

	client, err := mongo.Connect(context.Background(), options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(50*time.Millisecond))
	require.NoError(t, err)
	t.Cleanup(func() { client.Disconnect(context.Background()) })

	return NewAdminHandler(client, "lms_test", nil, t.TempDir(), bcrypt.MinCost)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
		Status  bool   `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Status)
	return body.Message
}

func TestLoginMissingFields(t *testing.T) {
	h := &AdminHandler{}

	for _, payload := range []string{
		`{}`,
		`{"email":"asha@gmail.com"}`,
		`{"password":"Asha1@x"}`,
	} {
		r := httptest.NewRequest("POST", "/api/v1/admin/login", strings.NewReader(payload))
		rec := httptest.NewRecorder()
		h.Login(rec, r)

		assert.Equal(t, http.StatusBadRequest, rec.Code, payload)
		assert.Equal(t, "Email and password are required", decodeError(t, rec))
	}
}

func TestLoginMalformedBody(t *testing.T) {
	h := &AdminHandler{}

	r := httptest.NewRequest("POST", "/api/v1/admin/login", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Login(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request payload", decodeError(t, rec))
}

func TestLoginStorageFailureIsNotUnauthorized(t *testing.T) {
	h := unreachableAdminHandler(t)

	r := httptest.NewRequest("POST", "/api/v1/admin/login",
		strings.NewReader(`{"email":"asha@gmail.com","password":"Asha1@x"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, r)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to login. Please try again later", decodeError(t, rec))
}

func TestUpdateAdminStorageFailureIsNotNotFound(t *testing.T) {
	h := unreachableAdminHandler(t)

	r := httptest.NewRequest("PUT", "/api/v1/admin/64f1c0ffee0000000000aaaa",
		strings.NewReader(`{"first_name":"Asha"}`))
	r = mux.SetURLVars(r, map[string]string{"id": "64f1c0ffee0000000000aaaa"})
	rec := httptest.NewRecorder()
	h.Update(rec, r)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to Update Admin. Please try again later", decodeError(t, rec))
}

func TestGetOneAdminStorageFailureIsNotNotFound(t *testing.T) {
	h := unreachableAdminHandler(t)

	r := httptest.NewRequest("GET", "/api/v1/admin/64f1c0ffee0000000000aaaa", nil)
	r = mux.SetURLVars(r, map[string]string{"id": "64f1c0ffee0000000000aaaa"})
	rec := httptest.NewRecorder()
	h.GetOne(rec, r)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to get Admin. Please try again later", decodeError(t, rec))
}

func TestDummyPasswordHashIsWellFormed(t *testing.T) {
	// The unknown-email path must burn a real bcrypt comparison, which
	// requires the constant to parse as a bcrypt hash.
	err := bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte("anything"))
	assert.ErrorIs(t, err, bcrypt.ErrMismatchedHashAndPassword)

	_, err = bcrypt.Cost(dummyPasswordHash)
	assert.NoError(t, err)
}

func TestCreateAdminRejectsFutureDOB(t *testing.T) {
	h := &AdminHandler{}

	dob := time.Now().AddDate(1, 0, 0).Format("2006-01-02")
	payload := `{
		"first_name":"Asha","last_name":"Nair","email":"asha@gmail.com",
		"password":"Asha1@x","gender":"female","dob":"` + dob + `",
		"phone":"9876543210","status":"active","role":"admin"
	}`
	r := httptest.NewRequest("POST", "/api/v1/admin", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Date of birth cannot be in the future", decodeError(t, rec))
}

func TestUpdateStudentRejectsFutureDOB(t *testing.T) {
	h := &StudentHandler{}

	dob := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	r := httptest.NewRequest("PUT", "/api/v1/student/64f1c0ffee0000000000aaaa",
		strings.NewReader(`{"dob":"`+dob+`"}`))
	r = mux.SetURLVars(r, map[string]string{"id": "64f1c0ffee0000000000aaaa"})
	rec := httptest.NewRecorder()
	h.Update(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Date of birth cannot be in the future", decodeError(t, rec))
}

func TestCreateAdminMissingFields(t *testing.T) {
	h := &AdminHandler{}

	r := httptest.NewRequest("POST", "/api/v1/admin", strings.NewReader(`{"first_name":"Asha"}`))
	rec := httptest.NewRecorder()
	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "All fields are mandatory", decodeError(t, rec))
}

func TestCreateAdminRejectsWeakPassword(t *testing.T) {
	h := &AdminHandler{}

	payload := `{
		"first_name":"Asha","last_name":"Nair","email":"asha@gmail.com",
		"password":"weak","gender":"female","dob":"2000-01-01",
		"phone":"9876543210","status":"active","role":"admin"
	}`
	r := httptest.NewRequest("POST", "/api/v1/admin", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, passwordRuleMessage, decodeError(t, rec))
}

func TestCreateAdminRejectsNonGmail(t *testing.T) {
	h := &AdminHandler{}

	payload := `{
		"first_name":"Asha","last_name":"Nair","email":"asha@outlook.com",
		"password":"Asha1@x","gender":"female","dob":"2000-01-01",
		"phone":"9876543210","status":"active","role":"admin"
	}`
	r := httptest.NewRequest("POST", "/api/v1/admin", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Create(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email format!", decodeError(t, rec))
}
