package users

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

// writeToken stores a fake token under a temp HOME so authorizedRequest
// picks it up.
func writeToken(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.WriteFile(filepath.Join(home, ".scim_token"), []byte("test-token"), 0600); err != nil {
		t.Fatalf("write token: %v", err)
	}
}

func TestRunList_SendsFilterAndToken(t *testing.T) {
	writeToken(t)

	var gotFilter, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFilter = r.URL.Query().Get("filter")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"schemas":["urn:ietf:params:scim:api:messages:2.0:ListResponse"],"totalResults":0,"Resources":[]}`))
	}))
	defer srv.Close()
	t.Setenv("SCIM_API_URL", srv.URL)

	if err := runList("alice"); err != nil {
		t.Fatalf("runList: %v", err)
	}
	if gotFilter != `userName eq "alice"` {
		t.Errorf("filter: got %q", gotFilter)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("authorization: got %q", gotAuth)
	}
}

func TestRunDelete_NotFound(t *testing.T) {
	writeToken(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()
	t.Setenv("SCIM_API_URL", srv.URL)

	if err := runDelete("42"); err == nil {
		t.Error("expected not-found error")
	}
}
