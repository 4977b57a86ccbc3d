package auth

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
)

func identityServer(t *testing.T, seen *[]string) *httptest.Server {
	t.Helper()
	store := sessions.NewCookieStore([]byte("test-secret"))
	handler := Identity(store)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = append(*seen, UserID(r.Context()))
		w.WriteHeader(http.StatusOK)
	}))
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func TestIdentityAssignsStableUserToken(t *testing.T) {
	var seen []string
	server := identityServer(t, &seen)

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar}
	for i := 0; i < 2; i++ {
		resp, err := client.Get(server.URL)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}

	if len(seen) != 2 {
		t.Fatalf("expected 2 requests, saw %d", len(seen))
	}
	if seen[0] == "" {
		t.Fatal("no user token assigned on first request")
	}
	if seen[0] != seen[1] {
		t.Errorf("user token changed between requests: %q vs %q", seen[0], seen[1])
	}
}

func TestIdentityGivesEachBrowserItsOwnToken(t *testing.T) {
	var seen []string
	server := identityServer(t, &seen)

	for i := 0; i < 2; i++ {
		jar, _ := cookiejar.New(nil)
		client := &http.Client{Jar: jar}
		resp, err := client.Get(server.URL)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}

	if seen[0] == seen[1] {
		t.Errorf("two browsers share the token %q", seen[0])
	}
}

func TestRequireUserRejectsAnonymousContext(t *testing.T) {
	handler := RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/images", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
