package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCookieAssignsAndReusesID(t *testing.T) {
	var seen []string
	h := EnsureCookie(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, FromContext(r.Context()))
	}))

	// First visit: a fresh ID is minted and set as a cookie.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Len(t, seen, 1)
	_, err := uuid.Parse(seen[0])
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "dashboard_session", cookies[0].Name)
	assert.Equal(t, seen[0], cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)

	// Return visit: the ID from the cookie is reused, no new cookie set.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Len(t, seen, 2)
	assert.Equal(t, seen[0], seen[1])
	assert.Empty(t, rec.Result().Cookies())
}

func TestMemoryStoreTokenLifecycle(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	sid := uuid.NewString()

	tok, err := s.Token(ctx, sid, UserTokenKey)
	require.NoError(t, err)
	assert.Empty(t, tok, "missing key reads as empty, not an error")

	require.NoError(t, s.SetToken(ctx, sid, UserTokenKey, "u-tok"))
	require.NoError(t, s.SetToken(ctx, sid, AdminTokenKey, "a-tok"))

	tok, err = s.Token(ctx, sid, UserTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "u-tok", tok)

	// Deleting one role's token leaves the others alone.
	require.NoError(t, s.DeleteToken(ctx, sid, UserTokenKey))
	tok, _ = s.Token(ctx, sid, UserTokenKey)
	assert.Empty(t, tok)
	tok, _ = s.Token(ctx, sid, AdminTokenKey)
	assert.Equal(t, "a-tok", tok)

	require.NoError(t, s.Clear(ctx, sid))
	tok, _ = s.Token(ctx, sid, AdminTokenKey)
	assert.Empty(t, tok)
}

func TestMemoryStoreImpersonationAndProfile(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	sid := uuid.NewString()

	on, err := s.Impersonating(ctx, sid)
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, s.SetImpersonating(ctx, sid, true))
	on, _ = s.Impersonating(ctx, sid)
	assert.True(t, on)

	require.NoError(t, s.SetProfile(ctx, sid, Profile{
		Name:            "Asha",
		Email:           "asha@example.com",
		SuperAdminName:  "Root",
		SuperAdminEmail: "root@example.com",
	}))
	p, err := s.Profile(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Root", p.SuperAdminName)

	require.NoError(t, s.SetImpersonating(ctx, sid, false))
	on, _ = s.Impersonating(ctx, sid)
	assert.False(t, on)
}

func TestMemoryStoreSessionsAreIsolated(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.SetToken(ctx, "sid-a", UserTokenKey, "tok-a"))

	tok, err := s.Token(ctx, "sid-b", UserTokenKey)
	require.NoError(t, err)
	assert.Empty(t, tok)
}
