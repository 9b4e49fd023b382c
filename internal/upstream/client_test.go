package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessagePrefersUpstreamMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"Task already completed"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.CompleteTask(context.Background(), "tok", "t1")

	require.Error(t, err)
	assert.Equal(t, "Task already completed", ErrorMessage(err, "fallback"))
}

func TestErrorMessageFallsBackWhenBodyHasNoMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`oops`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.CompleteTask(context.Background(), "tok", "t1")

	require.Error(t, err)
	assert.Equal(t, "fallback", ErrorMessage(err, "fallback"))
}

func TestDoJSONSendsRawAuthorizationToken(t *testing.T) {
	var gotAuth, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"success":true,"data":{"pendingTasks":3}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	data, err := c.Dashboard(context.Background(), "tok-abc")

	require.NoError(t, err)
	assert.Equal(t, 3, data.PendingTasks)
	assert.Equal(t, "tok-abc", gotAuth)
	assert.Empty(t, gotContentType, "GET carries no body")
}

func TestAdminTasksDecodesPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`{"success":true,"data":[{"_id":"t1","name":"Task","link":"https://x.com"}],
			"pagination":{"total":25,"page":2,"limit":10,"totalPages":3}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	tasks, pagination, err := c.AdminTasks(context.Background(), "tok", 2, 10)

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.NotNil(t, pagination)
	assert.Equal(t, 3, pagination.TotalPages)
}
