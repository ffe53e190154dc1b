// Package images loads and caches decoded page images.
package images

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"sync"

	// Registered decoders for the formats pages actually use.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// FetchFunc retrieves raw bytes for an absolute URL.
type FetchFunc func(ctx context.Context, url string) ([]byte, error)

// Loader fetches and decodes images once per URL. Failures are cached
// too, so a broken image is not re-fetched on every render pass.
type Loader struct {
	fetch FetchFunc

	mu    sync.Mutex
	cache map[string]image.Image // nil entry: known broken
}

func NewLoader(fetch FetchFunc) *Loader {
	return &Loader{fetch: fetch, cache: make(map[string]image.Image)}
}

// Load fetches and decodes the image at the URL. A nil image with a nil
// error never happens; a broken image reports the original failure on
// every call without refetching.
func (l *Loader) Load(ctx context.Context, url string) (image.Image, error) {
	l.mu.Lock()
	img, seen := l.cache[url]
	l.mu.Unlock()
	if seen {
		if img == nil {
			return nil, fmt.Errorf("image %s previously failed to load", url)
		}
		return img, nil
	}

	img, err := l.loadUncached(ctx, url)
	l.mu.Lock()
	l.cache[url] = img // nil on failure
	l.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (l *Loader) loadUncached(ctx context.Context, url string) (image.Image, error) {
	if l.fetch == nil {
		return nil, fmt.Errorf("no fetcher configured for image %s", url)
	}
	data, err := l.fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetching image %s: %w", url, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image %s: %w", url, err)
	}
	return img, nil
}

// Get returns an already-loaded image, or nil if it was never loaded or
// failed.
func (l *Loader) Get(url string) image.Image {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cache[url]
}

// Size reports the pixel dimensions of an already-loaded image. It is
// shaped for use as a layout image sizer.
func (l *Loader) Size(url string) (w, h int, ok bool) {
	img := l.Get(url)
	if img == nil {
		return 0, 0, false
	}
	b := img.Bounds()
	return b.Dx(), b.Dy(), true
}
