package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndumiso/bizstock/pkg/auth"
)

func TestRequireSessionRedirectsWithoutCookie(t *testing.T) {
	called := false
	handler := RequireSession(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.False(t, called)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireSessionRejectsInvalidToken(t *testing.T) {
	called := false
	handler := RequireSession(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-token"})

	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestRequireSessionPutsIdentityInContext(t *testing.T) {
	token, err := auth.GenerateToken(42, "thandi@example.com", "Thandi Traders")
	require.NoError(t, err)

	var gotID uint
	var gotOK bool
	var gotName string
	handler := RequireSession(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = VendorID(r.Context())
		gotName = BusinessName(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})

	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, gotOK)
	assert.Equal(t, uint(42), gotID)
	assert.Equal(t, "Thandi Traders", gotName)
}
