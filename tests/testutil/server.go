// Package testutil provides an in-memory fake of the assignment
// service for tests. The fake mirrors the real service's contract:
// every mutation responds with the full updated collection.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/dcheng/assignment-tracker/internal/api"
	"github.com/dcheng/assignment-tracker/internal/model"
)

// FakeService is an in-memory assignment service backing an
// httptest.Server. It records the Authorization header of the most
// recent request so tests can assert on token handling.
type FakeService struct {
	mu sync.Mutex

	Assignments []model.Assignment
	Todos       []model.Todo

	// LastAuth is the Authorization header of the last request received.
	LastAuth string

	// FailStatus, when non-zero, makes every subsequent request respond
	// with that status code and an empty body.
	FailStatus int
}

// NewFakeService starts a fake assignment service and returns it
// together with an API client pointed at it. The server shuts down
// when the test completes.
func NewFakeService(t *testing.T) (*FakeService, *api.Client) {
	t.Helper()

	fs := &FakeService{}
	srv := httptest.NewServer(fs)
	t.Cleanup(srv.Close)

	return fs, api.NewClient(srv.URL)
}

// SetFailStatus makes every subsequent request fail with the given
// status. Pass 0 to restore normal behavior.
func (fs *FakeService) SetFailStatus(status int) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.FailStatus = status
}

func (fs *FakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.LastAuth = r.Header.Get("Authorization")

	if fs.FailStatus != 0 {
		w.WriteHeader(fs.FailStatus)
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/assignments":
		writeJSON(w, fs.Assignments)

	case r.Method == http.MethodPost && r.URL.Path == "/add-assignment":
		var draft model.AssignmentDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fs.Assignments = append(fs.Assignments, model.Assignment{
			ID:           uuid.NewString(),
			Name:         draft.Name,
			Description:  draft.Description,
			Estimate:     draft.Estimate,
			AssignedDate: draft.AssignedDate,
			DueDate:      draft.DueDate,
		})
		writeJSON(w, fs.Assignments)

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/update-assignment/"):
		id := strings.TrimPrefix(r.URL.Path, "/update-assignment/")
		var body struct {
			Progress float64 `json:"progress"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for i := range fs.Assignments {
			if fs.Assignments[i].ID == id {
				fs.Assignments[i].Progress = body.Progress
			}
		}
		writeJSON(w, fs.Assignments)

	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/delete-assignment/"):
		id := strings.TrimPrefix(r.URL.Path, "/delete-assignment/")
		kept := fs.Assignments[:0]
		for _, a := range fs.Assignments {
			if a.ID != id {
				kept = append(kept, a)
			}
		}
		fs.Assignments = kept
		writeJSON(w, fs.Assignments)

	case r.Method == http.MethodGet && r.URL.Path == "/todos":
		writeJSON(w, fs.Todos)

	case r.Method == http.MethodPost && r.URL.Path == "/add-todo":
		var body struct {
			Value string `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fs.Todos = append(fs.Todos, model.Todo{ID: uuid.NewString(), Value: body.Value})
		writeJSON(w, fs.Todos)

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/update-todo/"):
		id := strings.TrimPrefix(r.URL.Path, "/update-todo/")
		var body struct {
			Value string `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		for i := range fs.Todos {
			if fs.Todos[i].ID == id {
				fs.Todos[i].Value = body.Value
			}
		}
		writeJSON(w, fs.Todos)

	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/delete-todo/"):
		id := strings.TrimPrefix(r.URL.Path, "/delete-todo/")
		kept := fs.Todos[:0]
		for _, td := range fs.Todos {
			if td.ID != id {
				kept = append(kept, td)
			}
		}
		fs.Todos = kept
		writeJSON(w, fs.Todos)

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(err)
	}
}
