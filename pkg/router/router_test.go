package router

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, srv *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := srv.Client().Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestExactRoute(t *testing.T) {
	r := New()
	r.GET("/api/v1/datasets", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("list"))
	})
	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	status, body := get(t, srv, "/api/v1/datasets")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "list", body)
}

func TestWildcardRoute(t *testing.T) {
	r := New()
	r.GET("/api/v1/datasets/*", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("one"))
	})
	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	status, body := get(t, srv, "/api/v1/datasets/abc-123")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "one", body)
}

func TestMoreSpecificWildcardWins(t *testing.T) {
	r := New()
	r.GET("/api/v1/datasets/*", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("dataset"))
	})
	r.GET("/api/v1/datasets/*/records", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("records"))
	})
	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	_, body := get(t, srv, "/api/v1/datasets/abc/records")
	assert.Equal(t, "records", body)

	_, body = get(t, srv, "/api/v1/datasets/abc")
	assert.Equal(t, "dataset", body)
}

func TestNotFound(t *testing.T) {
	r := New()
	r.GET("/api/v1/datasets", func(w http.ResponseWriter, req *http.Request) {})
	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	status, _ := get(t, srv, "/api/v1/nothing")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestMethodNotAllowed(t *testing.T) {
	r := New()
	r.GET("/api/v1/datasets", func(w http.ResponseWriter, req *http.Request) {})
	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Post(srv.URL+"/api/v1/datasets", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestMatchWildcardRoute(t *testing.T) {
	assert.True(t, matchWildcardRoute("/a/b/c", "/a/*/c"))
	assert.True(t, matchWildcardRoute("/a/b/c/d", "/a/*"))
	assert.True(t, matchWildcardRoute("/a", "/a/*"))
	assert.False(t, matchWildcardRoute("/a/b", "/a/*/c"))
	assert.False(t, matchWildcardRoute("/x/b/c", "/a/*/c"))
}

func TestMoreSpecific(t *testing.T) {
	assert.True(t, moreSpecific("/a/*/records", "/a/*"))
	assert.False(t, moreSpecific("/a/*", "/a/*/records"))
	assert.True(t, moreSpecific("/a/b/*", "/a/*/*"))
}
