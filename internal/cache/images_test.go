package cache

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func posterPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newServer(t *testing.T, body []byte, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadUsesMemoryThenDisk(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, posterPNG(t, 30, 45), &hits)
	ic, err := NewImageCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	url := srv.URL + "/poster.png"

	img, err := ic.Load(ctx, url)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 45 {
		t.Errorf("Load() bounds = %v, want 30x45", b)
	}
	if ic.Get(url) == nil {
		t.Error("Get() = nil after Load")
	}

	ic.Clear()
	if ic.Get(url) != nil {
		t.Error("Get() != nil after Clear")
	}
	if _, err := ic.Load(ctx, url); err != nil {
		t.Fatalf("Load() from disk error = %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
}

func TestLoadReplacesCorruptDiskEntry(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, posterPNG(t, 8, 12), &hits)
	ic, err := NewImageCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	url := srv.URL + "/poster.png"
	path := ic.diskPath(url)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ic.Load(context.Background(), url); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := hits.Load(); got != 1 {
		t.Errorf("server hits = %d, want 1", got)
	}
}

func TestLoadErrors(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, []byte("garbage"), &hits)
	ic, err := NewImageCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		url  string
	}{
		{"not found", srv.URL + "/missing"},
		{"undecodable", srv.URL + "/garbage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ic.Load(context.Background(), tt.url); err == nil {
				t.Error("Load() succeeded")
			}
			if _, err := os.Stat(ic.diskPath(tt.url)); !os.IsNotExist(err) {
				t.Errorf("disk entry left behind: %v", err)
			}
		})
	}
}

func TestLoadCanceled(t *testing.T) {
	ic, err := NewImageCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ic.Load(ctx, "http://127.0.0.1:1/poster.png"); err == nil {
		t.Error("Load() succeeded with a canceled context")
	}
}

func TestLoadAsyncNotifiesAllWaiters(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, posterPNG(t, 4, 6), &hits)
	ic, err := NewImageCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	url := srv.URL + "/poster.png"

	var wg sync.WaitGroup
	wg.Add(3)
	for i := 0; i < 3; i++ {
		ic.LoadAsync(context.Background(), url, func(img image.Image) {
			if img == nil {
				t.Error("callback got nil image")
			}
			wg.Done()
		})
	}
	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("callbacks not called")
	}
	if got := hits.Load(); got < 1 || got > 3 {
		t.Errorf("server hits = %d", got)
	}
}

func TestPrefetchFillsMemory(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, posterPNG(t, 4, 6), &hits)
	ic, err := NewImageCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	urls := []string{srv.URL + "/a.png", srv.URL + "/b.png"}
	ic.Prefetch(context.Background(), urls)

	deadline := time.Now().Add(5 * time.Second)
	for _, u := range urls {
		for ic.Get(u) == nil {
			if time.Now().After(deadline) {
				t.Fatalf("%s not prefetched", u)
			}
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func TestClearDisk(t *testing.T) {
	var hits atomic.Int32
	srv := newServer(t, posterPNG(t, 4, 6), &hits)
	dir := filepath.Join(t.TempDir(), "posters")
	ic, err := NewImageCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if ic.CacheDir() != dir {
		t.Errorf("CacheDir() = %q, want %q", ic.CacheDir(), dir)
	}
	if _, err := ic.Load(context.Background(), srv.URL+"/a.png"); err != nil {
		t.Fatal(err)
	}
	if err := ic.ClearDisk(); err != nil {
		t.Fatalf("ClearDisk() error = %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("cache dir still present after ClearDisk: %v", err)
	}
}
