package net

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFetch_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); !strings.HasPrefix(got, "mybrowser/") {
			t.Errorf("expected browser user agent, got %q", got)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<p>hello</p>"))
	}))
	defer srv.Close()

	body, ct, err := NewFetcher().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(body) != "<p>hello</p>" {
		t.Errorf("unexpected body %q", body)
	}
	if !strings.HasPrefix(ct, "text/html") {
		t.Errorf("unexpected content type %q", ct)
	}
}

func TestFetch_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, _, err := NewFetcher().Fetch(context.Background(), srv.URL+"/missing"); err == nil {
		t.Fatal("expected an error for HTTP 404")
	}
}

func TestFetch_ErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	_, _, err := NewFetcher().Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected an error for HTTP 410")
	}
	if !strings.Contains(err.Error(), "410") {
		t.Errorf("error must name the response status, got %v", err)
	}
}

func TestFetch_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	if err := os.WriteFile(path, []byte("<h1>local</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := NewFetcher()
	for _, u := range []string{path, "file://" + path} {
		body, _, err := f.Fetch(context.Background(), u)
		if err != nil {
			t.Fatalf("Fetch(%q): %v", u, err)
		}
		if string(body) != "<h1>local</h1>" {
			t.Errorf("Fetch(%q): unexpected body %q", u, body)
		}
	}
}

func TestFetch_UnsupportedScheme(t *testing.T) {
	if _, _, err := NewFetcher().Fetch(context.Background(), "gopher://example.com"); err == nil {
		t.Fatal("expected an error for unsupported scheme")
	}
}

func TestFetch_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	if _, _, err := NewFetcher().Fetch(ctx, srv.URL); err == nil {
		t.Fatal("expected an error for canceled context")
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base, ref, want string
	}{
		{"http://example.com/a/b.html", "c.html", "http://example.com/a/c.html"},
		{"http://example.com/a/b.html", "/root.css", "http://example.com/root.css"},
		{"http://example.com/a/", "../up.html", "http://example.com/up.html"},
		{"http://example.com/a/b.html", "http://other.com/x", "http://other.com/x"},
		{"http://example.com", "#frag", "http://example.com#frag"},
	}
	for _, tt := range tests {
		if got := ResolveURL(tt.base, tt.ref); got != tt.want {
			t.Errorf("ResolveURL(%q, %q) = %q, want %q", tt.base, tt.ref, got, tt.want)
		}
	}
}

func TestResolveURL_AbsoluteRefSkipsBase(t *testing.T) {
	// A base that does not even parse must not break absolute refs.
	got := ResolveURL("http://bad host/", "https://ok.example/x")
	if got != "https://ok.example/x" {
		t.Errorf("absolute ref must pass through untouched, got %q", got)
	}
}

func TestIsNetworkURL(t *testing.T) {
	if !IsNetworkURL("http://x") || !IsNetworkURL("https://x") {
		t.Error("http and https must be network URLs")
	}
	if IsNetworkURL("file:///x") || IsNetworkURL("/local/path") {
		t.Error("files and paths are not network URLs")
	}
}
