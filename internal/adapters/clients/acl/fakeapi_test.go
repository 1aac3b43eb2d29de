package acl

import (
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	aclproject "github.com/jsamuelsen11/go-business-objects/internal/adapters/clients/acl/project"
	acltodo "github.com/jsamuelsen11/go-business-objects/internal/adapters/clients/acl/todo"
)

const stamp = "2026-03-01T12:00:00Z"

// fakeAPI is an in-memory records API: groups, todos and the failure
// switches the tests flip.
type fakeAPI struct {
	mu     sync.Mutex
	nextID int64
	groups map[int64]aclproject.Group
	todos  map[int64]acltodo.Todo
	calls  []string

	failTodoCreate bool
	failTodoUpdate bool
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()
	f := &fakeAPI{groups: map[int64]aclproject.Group{}, todos: map[int64]acltodo.Todo{}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/groups", f.listGroups)
	mux.HandleFunc("POST /api/v1/groups", f.createGroup)
	mux.HandleFunc("GET /api/v1/groups/{id}", f.getGroup)
	mux.HandleFunc("PUT /api/v1/groups/{id}", f.updateGroup)
	mux.HandleFunc("DELETE /api/v1/groups/{id}", f.deleteGroup)
	mux.HandleFunc("GET /api/v1/groups/{id}/todos", f.groupTodos)
	mux.HandleFunc("GET /api/v1/todos", f.listTodos)
	mux.HandleFunc("POST /api/v1/todos", f.createTodo)
	mux.HandleFunc("GET /api/v1/todos/{id}", f.getTodo)
	mux.HandleFunc("PUT /api/v1/todos/{id}", f.updateTodo)
	mux.HandleFunc("DELETE /api/v1/todos/{id}", f.deleteTodo)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.calls = append(f.calls, r.Method+" "+r.URL.Path)
		f.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)
	return f, ts
}

func (f *fakeAPI) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Contains(f.calls, call)
}

// snapshot returns copies of the stored groups and todos.
func (f *fakeAPI) snapshot() (map[int64]aclproject.Group, map[int64]acltodo.Todo) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maps.Clone(f.groups), maps.Clone(f.todos)
}

func (f *fakeAPI) fail(create, update bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failTodoCreate, f.failTodoUpdate = create, update
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, status int, detail string, errs ...map[string]string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"detail": detail, "errors": errs})
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id
}

func (f *fakeAPI) sortedTodos(match func(acltodo.Todo) bool) []acltodo.Todo {
	out := []acltodo.Todo{}
	for _, t := range f.todos {
		if match(t) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b acltodo.Todo) int { return int(a.ID - b.ID) })
	return out
}

func (f *fakeAPI) listGroups(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []aclproject.Group{}
	for _, g := range f.groups {
		out = append(out, g)
	}
	slices.SortFunc(out, func(a, b aclproject.Group) int { return int(a.ID - b.ID) })
	reply(w, http.StatusOK, aclproject.List{Groups: out, Count: int64(len(out))})
}

func (f *fakeAPI) createGroup(w http.ResponseWriter, r *http.Request) {
	var req aclproject.CreateRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.groups {
		if strings.EqualFold(g.Name, req.Name) {
			writeProblem(w, http.StatusConflict, "group name taken")
			return
		}
	}
	f.nextID++
	g := aclproject.Group{ID: f.nextID, Name: req.Name, Description: req.Description, CreatedAt: stamp, UpdatedAt: stamp}
	f.groups[g.ID] = g
	reply(w, http.StatusCreated, g)
}

func (f *fakeAPI) getGroup(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[pathID(r)]
	if !ok {
		writeProblem(w, http.StatusNotFound, "group not found")
		return
	}
	reply(w, http.StatusOK, g)
}

func (f *fakeAPI) updateGroup(w http.ResponseWriter, r *http.Request) {
	var req aclproject.UpdateRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	f.mu.Lock()
	defer f.mu.Unlock()
	g, ok := f.groups[pathID(r)]
	if !ok {
		writeProblem(w, http.StatusNotFound, "group not found")
		return
	}
	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.Description != nil {
		g.Description = *req.Description
	}
	f.groups[g.ID] = g
	reply(w, http.StatusOK, g)
}

func (f *fakeAPI) deleteGroup(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := pathID(r)
	if _, ok := f.groups[id]; !ok {
		writeProblem(w, http.StatusNotFound, "group not found")
		return
	}
	delete(f.groups, id)
	for tid, t := range f.todos {
		if t.GroupID != nil && *t.GroupID == id {
			t.GroupID = nil
			f.todos[tid] = t
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (f *fakeAPI) groupTodos(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := pathID(r)
	if _, ok := f.groups[id]; !ok {
		writeProblem(w, http.StatusNotFound, "group not found")
		return
	}
	out := f.sortedTodos(func(t acltodo.Todo) bool { return t.GroupID != nil && *t.GroupID == id })
	reply(w, http.StatusOK, acltodo.List{Todos: out, Count: int64(len(out))})
}

func (f *fakeAPI) listTodos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.sortedTodos(func(t acltodo.Todo) bool {
		if s := q.Get("status"); s != "" && t.Status != s {
			return false
		}
		if c := q.Get("category"); c != "" && t.Category != c {
			return false
		}
		if g := q.Get("group_id"); g != "" && (t.GroupID == nil || fmt.Sprint(*t.GroupID) != g) {
			return false
		}
		return true
	})
	reply(w, http.StatusOK, acltodo.List{Todos: out, Count: int64(len(out))})
}

func (f *fakeAPI) createTodo(w http.ResponseWriter, r *http.Request) {
	var req acltodo.CreateRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTodoCreate {
		writeProblem(w, http.StatusUnprocessableEntity, "invalid todo", map[string]string{"location": "body.title", "message": "is rejected"})
		return
	}
	f.nextID++
	t := acltodo.Todo{
		ID: f.nextID, Title: req.Title, Description: req.Description, Status: req.Status,
		Category: req.Category, ProgressPercent: req.ProgressPercent, GroupID: req.GroupID,
		CreatedAt: stamp, UpdatedAt: stamp,
	}
	f.todos[t.ID] = t
	reply(w, http.StatusCreated, t)
}

func (f *fakeAPI) getTodo(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.todos[pathID(r)]
	if !ok {
		writeProblem(w, http.StatusNotFound, "todo not found")
		return
	}
	reply(w, http.StatusOK, t)
}

func (f *fakeAPI) updateTodo(w http.ResponseWriter, r *http.Request) {
	var req acltodo.UpdateRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTodoUpdate {
		writeProblem(w, http.StatusInternalServerError, "storage offline")
		return
	}
	t, ok := f.todos[pathID(r)]
	if !ok {
		writeProblem(w, http.StatusNotFound, "todo not found")
		return
	}
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Category != nil {
		t.Category = *req.Category
	}
	if req.ProgressPercent != nil {
		t.ProgressPercent = *req.ProgressPercent
	}
	f.todos[t.ID] = t
	reply(w, http.StatusOK, t)
}

func (f *fakeAPI) deleteTodo(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := pathID(r)
	if _, ok := f.todos[id]; !ok {
		writeProblem(w, http.StatusNotFound, "todo not found")
		return
	}
	delete(f.todos, id)
	w.WriteHeader(http.StatusNoContent)
}
