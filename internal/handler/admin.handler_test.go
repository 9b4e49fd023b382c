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

func newAdminHandler(t *testing.T, api *httptest.Server) *AdminHandler {
	t.Helper()
	sessions := session.NewMemoryStore()
	require.NoError(t, sessions.SetToken(context.Background(), testSID, session.AdminTokenKey, "admin-tok"))
	return NewAdminHandler(upstream.NewClient(api.URL), sessions, newTestRenderer(t, sessions), zap.NewNop())
}

func TestAdminTasksEmptyListHidesPagination(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[],"pagination":{"total":0,"page":1,"limit":10,"totalPages":0}}`))
	}))
	defer api.Close()

	h := newAdminHandler(t, api)
	rec := httptest.NewRecorder()
	h.Tasks(rec, sessionRequest(http.MethodGet, "/admin/manage-task"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "No tasks found.")
	assert.NotContains(t, body, "Page 1 of")
	assert.NotContains(t, body, "Delete selected")
}

func TestAdminTasksSinglePageHidesNav(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"_id":"t1","name":"Task","link":"https://x.com"}],"pagination":{"total":1,"page":1,"limit":10,"totalPages":1}}`))
	}))
	defer api.Close()

	h := newAdminHandler(t, api)
	rec := httptest.NewRecorder()
	h.Tasks(rec, sessionRequest(http.MethodGet, "/admin/manage-task"))

	body := rec.Body.String()
	assert.Contains(t, body, "Delete selected")
	assert.NotContains(t, body, "Page 1 of", "single page needs no nav")
}

func TestBulkCreateWithNoValidTasksIsAnError(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no upstream call expected for an empty batch")
	}))
	defer api.Close()

	h := newAdminHandler(t, api)
	req := sessionRequest(http.MethodPost, "/admin/manage-task/bulk")
	req.PostForm = map[string][]string{"tasks": {"OnlyNameNoComma\n\n"}}

	rec := httptest.NewRecorder()
	h.CreateTasksBulk(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/admin/manage-task?error=")
}

func TestFilterPayments(t *testing.T) {
	payments := []upstream.Payment{
		{ID: "p1", Status: "PAID", User: upstream.PaymentUser{Name: "Asha", Email: "asha@example.com"}, Package: upstream.PaymentPackage{Name: "Gold"}},
		{ID: "p2", Status: "CREATED", User: upstream.PaymentUser{Name: "Ravi", Email: "ravi@example.com"}, Package: upstream.PaymentPackage{Name: "Silver"}},
		{ID: "p3", Status: "FAILED", User: upstream.PaymentUser{Name: "Meena"}, Package: upstream.PaymentPackage{Name: "Gold"}, OrderID: "ord_42"},
	}

	t.Run("status filter", func(t *testing.T) {
		got := filterPayments(payments, "PAID", "")
		require.Len(t, got, 1)
		assert.Equal(t, "p1", got[0].ID)
	})

	t.Run("ALL keeps everything", func(t *testing.T) {
		assert.Len(t, filterPayments(payments, "ALL", ""), 3)
	})

	t.Run("search is case-insensitive across user and package", func(t *testing.T) {
		got := filterPayments(payments, "ALL", "gold")
		require.Len(t, got, 2)
	})

	t.Run("search matches order id", func(t *testing.T) {
		got := filterPayments(payments, "ALL", "ord_42")
		require.Len(t, got, 1)
		assert.Equal(t, "p3", got[0].ID)
	})

	t.Run("status and search combine", func(t *testing.T) {
		assert.Empty(t, filterPayments(payments, "PAID", "ravi"))
	})
}

func TestToTreeViewOrdersLeftBeforeRight(t *testing.T) {
	node := upstream.TreeNode{
		Name:   "Root",
		Status: "active",
		Left:   []upstream.TreeNode{{Name: "L", Status: "active"}},
		Right:  []upstream.TreeNode{{Name: "R", Status: "inactive", ReferredOn: "right"}},
	}

	v := toTreeView(node)

	require.Len(t, v.Children, 2)
	assert.Equal(t, "L", v.Children[0].Name)
	assert.Equal(t, "R", v.Children[1].Name)
	assert.Equal(t, "right", v.Children[1].ReferredOn)
}

func TestAdminTreeWrapsRootsUnderSystemNode(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/admin/users/roots":
			_, _ = w.Write([]byte(`{"success":true,"data":[{"_id":"u1","name":"Asha","status":"active"},{"_id":"u2","name":"Ravi","status":"active"}]}`))
		case "/api/admin/users/tree/u1":
			_, _ = w.Write([]byte(`{"success":true,"data":{"_id":"u1","name":"Asha","status":"active","left":[],"right":[]}}`))
		case "/api/admin/users/tree/u2":
			_, _ = w.Write([]byte(`{"success":true,"data":{"_id":"u2","name":"Ravi","status":"active","left":[{"_id":"u3","name":"Child","status":"active","left":[],"right":[]}],"right":[]}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer api.Close()

	h := newAdminHandler(t, api)
	rec := httptest.NewRecorder()
	h.Tree(rec, sessionRequest(http.MethodGet, "/admin/user-tree"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "System")
	assert.Contains(t, body, "Asha")
	assert.Contains(t, body, "Ravi")
	assert.Contains(t, body, "Child")
}
