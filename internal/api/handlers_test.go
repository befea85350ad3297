package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal"
	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal/api"
	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal/service"
	"github.com/FCCBugsy/Exercise-Tracker-FreeCodeCamp/internal/storage"
)

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	store, err := storage.NewFileStorage(
		filepath.Join(dir, "users.json"),
		filepath.Join(dir, "exercises.json"),
		internal.NewNopLogger(),
	)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return api.NewServer(internal.NewNopLogger(), store, store).Router()
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", path, nil)
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func createUser(t *testing.T, r *gin.Engine, username string) string {
	w := postForm(r, "/api/users", url.Values{"username": {username}})
	assert.Equal(t, 200, w.Code)
	body := decode(t, w)
	assert.Equal(t, username, body["username"])
	id, _ := body["_id"].(string)
	assert.NotEmpty(t, id)
	return id
}

func TestCreateUser_ReturnsIDAndIsListed(t *testing.T) {
	r := setupRouter(t)
	id := createUser(t, r, "alice")

	w := get(r, "/api/users")
	assert.Equal(t, 200, w.Code)
	var users []map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	assert.Len(t, users, 1)
	assert.Equal(t, id, users[0]["_id"])
	assert.Equal(t, "alice", users[0]["username"])
}

func TestCreateUser_MissingUsername(t *testing.T) {
	r := setupRouter(t)
	w := postForm(r, "/api/users", url.Values{})
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "Error saving user", w.Body.String())
}

func TestListUsers_EmptyIsPlainText(t *testing.T) {
	r := setupRouter(t)
	w := get(r, "/api/users")
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "No users found", w.Body.String())
}

func TestCreateExercise_UnknownUser(t *testing.T) {
	r := setupRouter(t)
	w := postForm(r, "/api/users/doesnotexist/exercises", url.Values{
		"description": {"run"},
		"duration":    {"30"},
	})
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "Error finding user", w.Body.String())

	// No record may exist after the failed create.
	w = get(r, "/api/exercises")
	assert.Equal(t, "No exercises found", w.Body.String())
}

func TestCreateExercise_DefaultsDateAndCoercesDuration(t *testing.T) {
	r := setupRouter(t)
	id := createUser(t, r, "bob")

	w := postForm(r, "/api/users/"+id+"/exercises", url.Values{
		"description": {"morning run"},
		"duration":    {"30"},
	})
	assert.Equal(t, 200, w.Code)
	body := decode(t, w)
	assert.Equal(t, id, body["_id"])
	assert.Equal(t, "bob", body["username"])
	assert.Equal(t, "morning run", body["description"])
	assert.Equal(t, float64(30), body["duration"])
	assert.Equal(t, time.Now().Format(service.DateLayout), body["date"])
}

func TestCreateExercise_SuppliedDate(t *testing.T) {
	r := setupRouter(t)
	id := createUser(t, r, "carol")

	w := postForm(r, "/api/users/"+id+"/exercises", url.Values{
		"description": {"swim"},
		"duration":    {"45"},
		"date":        {"2023-10-05"},
	})
	body := decode(t, w)
	assert.Equal(t, "Thu Oct 05 2023", body["date"])
}

func TestCreateExercise_InvalidDateDoesNotFail(t *testing.T) {
	r := setupRouter(t)
	id := createUser(t, r, "dave")

	w := postForm(r, "/api/users/"+id+"/exercises", url.Values{
		"description": {"bike"},
		"duration":    {"60"},
		"date":        {"sometime last week"},
	})
	assert.Equal(t, 200, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Invalid Date", body["date"])
}

func TestCreateExercise_NonNumericDurationEchoed(t *testing.T) {
	r := setupRouter(t)
	id := createUser(t, r, "erin")

	w := postForm(r, "/api/users/"+id+"/exercises", url.Values{
		"description": {"yoga"},
		"duration":    {"a while"},
	})
	assert.Equal(t, 200, w.Code)
	body := decode(t, w)
	assert.Equal(t, "a while", body["duration"])
}

func TestCreateExercise_MissingDescription(t *testing.T) {
	r := setupRouter(t)
	id := createUser(t, r, "frank")

	w := postForm(r, "/api/users/"+id+"/exercises", url.Values{
		"duration": {"30"},
	})
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "Error saving exercise", w.Body.String())
}

func addExercises(t *testing.T, r *gin.Engine, id string, n int) {
	for i := 0; i < n; i++ {
		w := postForm(r, "/api/users/"+id+"/exercises", url.Values{
			"description": {"run"},
			"duration":    {"30"},
		})
		assert.Equal(t, 200, w.Code)
	}
}

func TestLogs_LimitAndCount(t *testing.T) {
	r := setupRouter(t)
	id := createUser(t, r, "grace")
	addExercises(t, r, id, 5)

	body := decode(t, get(r, "/api/users/"+id+"/logs?limit=2"))
	assert.Equal(t, float64(2), body["count"])
	assert.Len(t, body["log"], 2)

	// limit=0 and no limit both mean unlimited.
	body = decode(t, get(r, "/api/users/"+id+"/logs?limit=0"))
	assert.Equal(t, float64(5), body["count"])

	body = decode(t, get(r, "/api/users/"+id+"/logs"))
	assert.Equal(t, float64(5), body["count"])
	assert.Len(t, body["log"], 5)
}

func TestLogs_FromToAccepted(t *testing.T) {
	r := setupRouter(t)
	id := createUser(t, r, "heidi")
	addExercises(t, r, id, 3)

	// The bounds are accepted but do not constrain the result.
	body := decode(t, get(r, "/api/users/"+id+"/logs?from=1990-01-01&to=1990-12-31"))
	assert.Equal(t, float64(3), body["count"])
}

func TestLogs_UnknownUser(t *testing.T) {
	r := setupRouter(t)
	body := decode(t, get(r, "/api/users/doesnotexist/logs"))
	assert.Equal(t, "User not found", body["error"])
	_, hasLog := body["log"]
	assert.False(t, hasLog)
}

func TestDeleteAllUsers(t *testing.T) {
	r := setupRouter(t)
	createUser(t, r, "ivan")
	createUser(t, r, "judy")

	w := get(r, "/api/users/delete")
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "All users deleted", w.Body.String())

	w = get(r, "/api/users")
	assert.Equal(t, "No users found", w.Body.String())
}

func TestDeleteAllExercises(t *testing.T) {
	r := setupRouter(t)
	id := createUser(t, r, "mallory")
	addExercises(t, r, id, 2)

	w := get(r, "/api/exercises/delete")
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "All exercises deleted", w.Body.String())

	w = get(r, "/api/exercises")
	assert.Equal(t, "No exercises found", w.Body.String())
}

func TestRoundTrip_CreationMatchesLogEntry(t *testing.T) {
	r := setupRouter(t)
	id := createUser(t, r, "trent")

	created := decode(t, postForm(r, "/api/users/"+id+"/exercises", url.Values{
		"description": {"deadlifts"},
		"duration":    {"40"},
		"date":        {"2024-01-01"},
	}))

	logBody := decode(t, get(r, "/api/users/"+id+"/logs"))
	assert.Equal(t, float64(1), logBody["count"])
	entries := logBody["log"].([]any)
	entry := entries[0].(map[string]any)

	assert.Equal(t, created["date"], entry["date"])
	assert.Equal(t, created["duration"], entry["duration"])
	assert.Equal(t, created["description"], entry["description"])
}
