package images

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoad_DecodesAndCaches(t *testing.T) {
	calls := 0
	data := pngBytes(t, 12, 7)
	l := NewLoader(func(ctx context.Context, url string) ([]byte, error) {
		calls++
		return data, nil
	})

	for i := 0; i < 3; i++ {
		img, err := l.Load(context.Background(), "http://x/pic.png")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 7 {
			t.Errorf("unexpected size %v", b)
		}
	}
	if calls != 1 {
		t.Errorf("expected a single fetch, got %d", calls)
	}
}

func TestLoad_FailureCached(t *testing.T) {
	calls := 0
	l := NewLoader(func(ctx context.Context, url string) ([]byte, error) {
		calls++
		return nil, errors.New("boom")
	})

	for i := 0; i < 2; i++ {
		if _, err := l.Load(context.Background(), "http://x/gone.png"); err == nil {
			t.Fatal("expected an error")
		}
	}
	if calls != 1 {
		t.Errorf("broken images must not refetch, got %d calls", calls)
	}
}

func TestLoad_UndecodableBytes(t *testing.T) {
	l := NewLoader(func(ctx context.Context, url string) ([]byte, error) {
		return []byte("this is not an image"), nil
	})

	if _, err := l.Load(context.Background(), "http://x/bad"); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestSize(t *testing.T) {
	l := NewLoader(func(ctx context.Context, url string) ([]byte, error) {
		return pngBytes(t, 30, 20), nil
	})

	if _, _, ok := l.Size("http://x/pic.png"); ok {
		t.Error("size must be unknown before loading")
	}
	if _, err := l.Load(context.Background(), "http://x/pic.png"); err != nil {
		t.Fatal(err)
	}
	w, h, ok := l.Size("http://x/pic.png")
	if !ok || w != 30 || h != 20 {
		t.Errorf("expected 30x20, got (%d, %d, %v)", w, h, ok)
	}
}
