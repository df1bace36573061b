package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/josephgoksu/TaskBoard/models"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var testNow = time.Date(2030, 1, 10, 9, 0, 0, 0, time.UTC)

// fakeBackend is an in-memory TaskBoard REST backend.
type fakeBackend struct {
	mu         sync.Mutex
	tasks      []models.Task
	users      []models.User
	categories []models.Category
	down       bool
	failing    map[string]bool
	nextID     int
	requests   []string
	bodies     []map[string]json.RawMessage
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		tasks: []models.Task{
			{ID: "a1", Title: "Write report", Priority: models.PriorityHigh, User: "u1", Category: "c1",
				DueDate: models.NewTimestamp(testNow.AddDate(0, 0, 2)), CreatedAt: models.NewTimestamp(testNow.AddDate(0, 0, -5))},
			{ID: "a2", Title: "Buy milk", Priority: models.PriorityLow,
				DueDate: models.NewTimestamp(testNow.AddDate(0, 0, 20)), CreatedAt: models.NewTimestamp(testNow.AddDate(0, 0, -4))},
			{ID: "b1", Title: "File taxes", Priority: models.PriorityMedium, Completed: true,
				CompletedAt: models.TimestampPtr(testNow.AddDate(0, 0, -1)), CreatedAt: models.NewTimestamp(testNow.AddDate(0, 0, -3))},
		},
		users:      []models.User{{ID: "u1", Name: "Ada", Email: "ada@example.com", Role: "admin"}},
		categories: []models.Category{{ID: "c1", Name: "Work", Color: "#ff0000"}},
		nextID:     100,
	}
}

func (b *fakeBackend) find(id string) int {
	for i, t := range b.tasks {
		if string(t.ID) == id {
			return i
		}
	}
	return -1
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("GET /tasks", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.tasks)
	})
	mux.HandleFunc("GET /tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		i := b.find(r.PathValue("id"))
		if i < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, b.tasks[i])
	})
	mux.HandleFunc("POST /tasks", func(w http.ResponseWriter, r *http.Request) {
		var task models.Task
		if err := json.Unmarshal(b.bodies[len(b.bodies)-1]["_raw"], &task); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		b.nextID++
		task.ID = models.ID(fmt.Sprint(b.nextID))
		b.tasks = append(b.tasks, task)
		writeJSON(w, http.StatusCreated, task)
	})
	mux.HandleFunc("PUT /tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		i := b.find(r.PathValue("id"))
		if i < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		var patch models.TaskPatch
		if err := json.Unmarshal(b.bodies[len(b.bodies)-1]["_raw"], &patch); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		b.tasks[i] = patch.ApplyTo(b.tasks[i])
		writeJSON(w, http.StatusOK, b.tasks[i])
	})
	mux.HandleFunc("DELETE /tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		i := b.find(r.PathValue("id"))
		if i < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}
		b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
		writeJSON(w, http.StatusOK, map[string]string{})
	})
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.users)
	})
	mux.HandleFunc("GET /categories", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.categories)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		b.requests = append(b.requests, r.Method+" "+r.URL.Path)
		if b.down {
			http.Error(w, "backend unavailable", http.StatusServiceUnavailable)
			return
		}
		if b.failing[r.URL.Path] {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		raw, _ := io.ReadAll(r.Body)
		body := map[string]json.RawMessage{}
		_ = json.Unmarshal(raw, &body)
		body["_raw"] = raw
		b.bodies = append(b.bodies, body)

		mux.ServeHTTP(w, r)
	})
}

func (b *fakeBackend) setDown(down bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.down = down
}

// failPath makes GET/POST/... on path answer 500.
func (b *fakeBackend) failPath(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failing == nil {
		b.failing = map[string]bool{}
	}
	b.failing[path] = true
}

func (b *fakeBackend) addTask(task models.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tasks = append(b.tasks, task)
}

func (b *fakeBackend) requestLog() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *fakeBackend) lastBody() map[string]json.RawMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[len(b.bodies)-1]
}

func (b *fakeBackend) task(id models.ID) (models.Task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.find(string(id)); i >= 0 {
		return b.tasks[i], true
	}
	return models.Task{}, false
}

// setupCLI isolates the CLI from the user's environment and points it at a
// fresh fake backend. The snapshot cache is off unless a test enables it.
func setupCLI(t *testing.T) *fakeBackend {
	t.Helper()

	backend := newFakeBackend()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", home+"/cache")
	t.Chdir(t.TempDir())

	t.Setenv("TASKBOARD_API_BASEURL", srv.URL)
	t.Setenv("TASKBOARD_CACHE_ENABLED", "false")
	t.Setenv("TASKBOARD_TELEMETRY_DISABLED", "true")

	prevFs, prevNow, prevInteractive := appFs, nowFunc, interactive
	appFs = afero.NewMemMapFs()
	nowFunc = func() time.Time { return testNow }
	interactive = func() bool { return false }
	t.Cleanup(func() {
		appFs, nowFunc, interactive = prevFs, prevNow, prevInteractive
	})

	return backend
}

// resetFlags restores every flag to its default so values do not leak
// between Execute calls on the shared command tree.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// runCLI executes the root command with args and returns stdout and stderr.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
