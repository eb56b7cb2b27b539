package imagery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUnsplash(t *testing.T, h http.HandlerFunc) *UnsplashLookup {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	u := NewUnsplashLookup("access-key")
	u.baseURL = srv.URL
	return u
}

func TestUnsplashFindImage(t *testing.T) {
	u := newTestUnsplash(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/photos", r.URL.Path)
		assert.Equal(t, "Client-ID access-key", r.Header.Get("Authorization"))
		q := r.URL.Query()
		assert.Equal(t, "Kyoto", q.Get("query"))
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "1", q.Get("per_page"))
		assert.Equal(t, "landscape", q.Get("orientation"))
		_, _ = w.Write([]byte(`{"total":1,"results":[{"urls":{"regular":"https://img.example/kyoto.jpg","full":"x"}}]}`))
	})

	got, err := u.FindImage(context.Background(), "Kyoto")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/kyoto.jpg", got)
}

func TestUnsplashNoResults(t *testing.T) {
	u := newTestUnsplash(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total":0,"results":[]}`))
	})

	_, err := u.FindImage(context.Background(), "Atlantis")
	assert.True(t, errors.Is(err, ErrNoImage))
}

func TestUnsplashErrorStatus(t *testing.T) {
	u := newTestUnsplash(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":["OAuth error: The access token is invalid"]}`))
	})

	_, err := u.FindImage(context.Background(), "Paris")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "access token is invalid")
}
