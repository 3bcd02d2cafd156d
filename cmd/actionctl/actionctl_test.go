package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunValidatePrintsSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "components.yaml")
	require.NoError(t, os.WriteFile(path, []byte("buttons:\n  - name: b\n    action:\n      type: delete\n"), 0o600))

	var out bytes.Buffer
	require.NoError(t, runValidate(&out, path))
	assert.Contains(t, out.String(), "is valid")
	assert.Contains(t, out.String(), "buttons: 1")
	assert.Contains(t, out.String(), "forms: 0")
}

func TestRunValidateRejectsInvalidCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "components.yaml")
	require.NoError(t, os.WriteFile(path, []byte("buttons:\n  - name: b\n    action:\n      type: merge\n"), 0o600))

	err := runValidate(&bytes.Buffer{}, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is invalid")
}

func TestRunDispatchPostsButton(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/actions/close-request", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "sess-1", r.Header.Get("X-Session-ID"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"kind":"reload","reload":[{"recordId":"a01"}]}`))
	}))
	defer server.Close()

	var out bytes.Buffer
	err := runDispatch(context.Background(), &out, dispatchRequest{Server: server.URL + "/", Token: "tok", Session: "sess-1", Button: "close-request"})
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"kind": "reload"`)
}

func TestRunDispatchReportsRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"operation already in flight"}`))
	}))
	defer server.Close()

	err := runDispatch(context.Background(), &bytes.Buffer{}, dispatchRequest{Server: server.URL, Token: "tok", Button: "b"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "409"), err.Error())
}

func TestRunDispatchRequiresServerAndButton(t *testing.T) {
	assert.Error(t, runDispatch(context.Background(), &bytes.Buffer{}, dispatchRequest{Button: "b"}))
	assert.Error(t, runDispatch(context.Background(), &bytes.Buffer{}, dispatchRequest{Server: "http://x", Button: " "}))
}
