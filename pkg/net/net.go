// Package net fetches page resources over HTTP, HTTPS and the local
// filesystem, and resolves relative URLs.
package net

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

const userAgent = "mybrowser/1.0 (compatible; Go)"

// Fetcher retrieves resources. The zero value is not usable; call
// NewFetcher.
type Fetcher struct {
	client *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch retrieves the content at the URL. Supported schemes are http,
// https and file; a bare path is treated as a local file. Returns the
// body, the content type when the server supplied one, and any error.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (body []byte, contentType string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", fmt.Errorf("parsing %s: %w", rawURL, err)
	}

	switch u.Scheme {
	case "http", "https":
		return f.fetchHTTP(ctx, rawURL)
	case "file":
		return fetchFile(u.Path)
	case "":
		return fetchFile(rawURL)
	default:
		return nil, "", fmt.Errorf("unsupported scheme %q in %s", u.Scheme, rawURL)
	}
}

func (f *Fetcher) fetchHTTP(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return nil, "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading body of %s: %w", rawURL, err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// checkStatus rejects any non-2xx response. The client has already
// followed redirects, so whatever status is left is final.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode/100 == 2 {
		return nil
	}
	return fmt.Errorf("server answered %s for %s", resp.Status, resp.Request.URL)
}

func fetchFile(path string) ([]byte, string, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return body, "", nil
}

// ResolveURL resolves a possibly-relative reference against a base URL.
// An absolute ref is returned unchanged; unparsable inputs fall back to
// the ref as-is.
func ResolveURL(base, ref string) string {
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if refURL.IsAbs() {
		return ref
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}

// IsNetworkURL reports whether the string is an HTTP or HTTPS URL.
func IsNetworkURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
