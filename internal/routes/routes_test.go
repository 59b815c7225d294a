package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abhijith3110/Learning-Management-System/internal/auth"
	"github.com/abhijith3110/Learning-Management-System/internal/config"
)

// testRouter builds the full route table against a client that never dials
// out. None of the requests below reach storage.
func testRouter(t *testing.T) http.Handler {
	t.Helper()

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	require.NoError(t, err)
	t.Cleanup(func() { client.Disconnect(context.Background()) })

	cfg := config.Config{
		DatabaseName: "lms_test",
		UploadDir:    t.TempDir(),
		BcryptCost:   10,
	}
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	return SetupRouter(client, cfg, tokens)
}

func TestHealthRoute(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Server is healthy", rec.Body.String())
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := testRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/v1/admin/all"},
		{"POST", "/api/v1/teacher"},
		{"GET", "/api/v1/student/all"},
		{"PUT", "/api/v1/subject/64f1c0ffee0000000000aaaa"},
		{"DELETE", "/api/v1/batch/64f1c0ffee0000000000aaaa"},
		{"POST", "/api/v1/lecture"},
		{"GET", "/api/v1/question/all"},
		{"DELETE", "/api/v1/assignment/64f1c0ffee0000000000aaaa"},
	}

	for _, tc := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.path)

		var body struct {
			Message string `json:"message"`
			Status  bool   `json:"status"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Authentication token required", body.Message)
		assert.False(t, body.Status)
	}
}

func TestLoginRouteIsOpen(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/v1/admin/login", strings.NewReader(`{}`)))

	// The handler itself rejects the empty payload, so the request made it
	// past the access gate.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Route not found", body.Message)
}
