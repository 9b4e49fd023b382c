package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dashboard-service/internal/session"
	"dashboard-service/internal/upstream"
)

const testSID = "aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"

func newTestRenderer(t *testing.T, sessions session.Repository) *Renderer {
	t.Helper()
	rn, err := NewRenderer(sessions, zap.NewNop())
	require.NoError(t, err)
	return rn
}

func sessionRequest(method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	return req.WithContext(session.WithID(req.Context(), testSID))
}

func TestTasksPageEmptyListShowsPlaceholder(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer api.Close()

	sessions := session.NewMemoryStore()
	require.NoError(t, sessions.SetToken(context.Background(), testSID, session.UserTokenKey, "tok"))

	h := NewUserHandler(upstream.NewClient(api.URL), sessions, newTestRenderer(t, sessions), zap.NewNop())

	rec := httptest.NewRecorder()
	h.Tasks(rec, sessionRequest(http.MethodGet, "/tasks"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "No tasks found.")
	assert.NotContains(t, body, "Mark complete")
	assert.NotContains(t, body, "pagination", "empty list renders no paging controls")
}

func TestTasksPageRendersRowsAndCompleteForm(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[
			{"_id":"t1","name":"Like our page","description":"daily","link":"https://x.com","date":"2026-08-29","completed":false},
			{"_id":"t2","name":"Share","link":"https://y.com","date":"2026-08-28","completed":true,"completedAt":"2026-08-28"}
		]}`))
	}))
	defer api.Close()

	sessions := session.NewMemoryStore()
	require.NoError(t, sessions.SetToken(context.Background(), testSID, session.UserTokenKey, "tok"))

	h := NewUserHandler(upstream.NewClient(api.URL), sessions, newTestRenderer(t, sessions), zap.NewNop())

	rec := httptest.NewRecorder()
	h.Tasks(rec, sessionRequest(http.MethodGet, "/tasks"))

	body := rec.Body.String()
	assert.Contains(t, body, "Like our page")
	assert.Contains(t, body, "Mark complete")
	assert.Contains(t, body, "Completed (2026-08-28)")
	assert.NotContains(t, body, "No tasks found.")
}

func TestReferralsSideFilter(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{
			"myReferralCode":"REF123",
			"totalSuccessfulReferrals":1,
			"referredUsers":[
				{"name":"Left User","email":"l@example.com","createdAt":"2026-01-01","referredOn":"left"},
				{"name":"Right User","email":"r@example.com","createdAt":"2026-01-02","referredOn":"right"}
			]}}`))
	}))
	defer api.Close()

	sessions := session.NewMemoryStore()
	require.NoError(t, sessions.SetToken(context.Background(), testSID, session.UserTokenKey, "tok"))

	h := NewUserHandler(upstream.NewClient(api.URL), sessions, newTestRenderer(t, sessions), zap.NewNop())

	rec := httptest.NewRecorder()
	h.Referrals(rec, sessionRequest(http.MethodGet, "/referral?side=left"))

	body := rec.Body.String()
	assert.Contains(t, body, "Left User")
	assert.NotContains(t, body, "Right User")
	assert.Contains(t, body, "REF123")
}

func TestCompleteTaskRedirectsBackToTasks(t *testing.T) {
	var calledPath string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calledPath = r.URL.Path
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer api.Close()

	sessions := session.NewMemoryStore()
	require.NoError(t, sessions.SetToken(context.Background(), testSID, session.UserTokenKey, "tok"))

	h := NewUserHandler(upstream.NewClient(api.URL), sessions, newTestRenderer(t, sessions), zap.NewNop())

	req := sessionRequest(http.MethodPost, "/tasks/complete")
	req.PostForm = map[string][]string{"taskId": {"t1"}}
	rec := httptest.NewRecorder()
	h.CompleteTask(rec, req)

	assert.Equal(t, "/api/user/complete-task", calledPath)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/tasks", rec.Header().Get("Location"))
}

func TestImpersonationBannerRendersFromSession(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer api.Close()

	sessions := session.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, sessions.SetToken(ctx, testSID, session.UserTokenKey, "tok"))
	require.NoError(t, sessions.SetImpersonating(ctx, testSID, true))
	require.NoError(t, sessions.SetProfile(ctx, testSID, session.Profile{
		SuperAdminName:  "Root Admin",
		SuperAdminEmail: "root@example.com",
	}))

	h := NewUserHandler(upstream.NewClient(api.URL), sessions, newTestRenderer(t, sessions), zap.NewNop())

	rec := httptest.NewRecorder()
	h.Tasks(rec, sessionRequest(http.MethodGet, "/tasks"))

	body := rec.Body.String()
	assert.Contains(t, body, "Super Admin Mode")
	assert.Contains(t, body, "Root Admin")
	assert.Contains(t, body, "root@example.com")
}
