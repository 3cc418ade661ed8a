package devserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"trackup/internal/model"
	"trackup/internal/store"

	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, store.Store) {
	t.Helper()
	s := store.NewMemory()
	return New(Options{Store: s}), s
}

func do(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := do(t, srv, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestServer_TeamRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/teams", map[string]string{"name": "Eng"}).Code)
	require.Equal(t, http.StatusConflict, do(t, srv, http.MethodPost, "/api/teams", map[string]string{"name": "Eng"}).Code)
	require.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/api/teams", map[string]string{"name": " "}).Code)
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/teams", map[string]string{"name": "Design Ops"}).Code)

	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/teams/Eng/members", map[string]string{"name": "Bob"}).Code)
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/teams/Eng/members", map[string]string{"name": "Alice"}).Code)
	require.Equal(t, http.StatusNotFound, do(t, srv, http.MethodPost, "/api/teams/Ops/members", map[string]string{"name": "Bob"}).Code)

	rec := do(t, srv, http.MethodGet, "/api/teams", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"Eng":["Bob","Alice"],"Design Ops":[]}`, rec.Body.String())

	var r model.Roster
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	require.Equal(t, "Eng", r[0].Name)

	require.Equal(t, http.StatusOK, do(t, srv, http.MethodDelete, "/api/teams/Eng/members/Bob", nil).Code)
	require.Equal(t, http.StatusNotFound, do(t, srv, http.MethodDelete, "/api/teams/Eng/members/Bob", nil).Code)
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodDelete, "/api/teams/Design%20Ops", nil).Code)
	require.Equal(t, http.StatusNotFound, do(t, srv, http.MethodDelete, "/api/teams/Design%20Ops", nil).Code)

	rec = do(t, srv, http.MethodGet, "/api/teams", nil)
	require.JSONEq(t, `{"Eng":["Alice"]}`, rec.Body.String())
}

func TestServer_EscapedSlashInTeamName(t *testing.T) {
	srv, s := newTestServer(t)
	require.NoError(t, s.CreateTeam(context.Background(), "R&D/Labs"))

	rec := do(t, srv, http.MethodDelete, "/api/teams/R&D%2FLabs", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestServer_TaskAndMemberRoutes(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/api/member/Bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"name":"Bob","completed_tasks":0,"total_tasks":0,"tasks":[]}`, rec.Body.String())

	rec = do(t, srv, http.MethodPost, "/api/tasks", map[string]string{"title": "Write docs", "assignee": "Bob"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "task_1", created.ID)

	do(t, srv, http.MethodPost, "/api/tasks", map[string]string{"title": "Ship", "assignee": "bob", "status": "completed"})
	do(t, srv, http.MethodPost, "/api/tasks", map[string]string{"title": "Other", "assignee": "Carol"})
	require.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/api/tasks", map[string]string{"title": ""}).Code)

	rec = do(t, srv, http.MethodGet, "/api/member/Bob", nil)
	var d model.MemberDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &d))
	require.Equal(t, 1, d.CompletedTasks)
	require.Equal(t, 2, d.TotalTasks)
	require.Len(t, d.Tasks, 2)

	rec = do(t, srv, http.MethodGet, "/api/tasks", nil)
	var all []model.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	require.Len(t, all, 3)

	require.Equal(t, http.StatusOK, do(t, srv, http.MethodDelete, "/api/tasks/task_1", nil).Code)
	require.Equal(t, http.StatusNotFound, do(t, srv, http.MethodDelete, "/api/tasks/task_1", nil).Code)
}

func TestServer_Chat(t *testing.T) {
	srv, s := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/chat", model.ChatRequest{Query: "create team Eng", UserID: "user_1"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"response":"Team 'Eng' created successfully."}`, rec.Body.String())

	r, err := s.Teams(context.Background())
	require.NoError(t, err)
	_, ok := r.Find("Eng")
	require.True(t, ok)

	require.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/chat", "{not json").Code)
	require.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodPost, "/chat", model.ChatRequest{Query: "  "}).Code)
}

func TestServer_CORS(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/teams", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
