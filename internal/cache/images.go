package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "golang.org/x/image/webp"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// ImageCache provides disk + memory caching for decoded poster images.
type ImageCache struct {
	cacheDir string
	client   *http.Client
	memory   sync.Map // url -> image.Image
	loading  sync.Map // url -> *loadEntry (in-flight dedup with waiters)
	sem      chan struct{}
}

// loadEntry tracks in-flight downloads and their waiters.
type loadEntry struct {
	mu        sync.Mutex
	callbacks []func(image.Image)
	done      bool
}

// NewImageCache creates a new image cache with the given disk directory.
func NewImageCache(cacheDir string) (*ImageCache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, err
	}
	return &ImageCache{
		cacheDir: cacheDir,
		client:   httpClient,
		sem:      make(chan struct{}, 6),
	}, nil
}

// Get returns a cached image if available, or nil.
func (ic *ImageCache) Get(url string) image.Image {
	if v, ok := ic.memory.Load(url); ok {
		return v.(image.Image)
	}
	return nil
}

// LoadAsync starts loading an image from URL in the background.
// The callback is called with the image when ready (may be called from a goroutine).
// Failed loads are logged and the callback is not called.
func (ic *ImageCache) LoadAsync(ctx context.Context, url string, callback func(image.Image)) {
	if v, ok := ic.memory.Load(url); ok {
		callback(v.(image.Image))
		return
	}

	entry := &loadEntry{}
	entry.callbacks = append(entry.callbacks, callback)

	if existing, loaded := ic.loading.LoadOrStore(url, entry); loaded {
		existingEntry := existing.(*loadEntry)
		existingEntry.mu.Lock()
		if existingEntry.done {
			// Finished between LoadOrStore and Lock; start over.
			existingEntry.mu.Unlock()
			ic.LoadAsync(ctx, url, callback)
			return
		}
		existingEntry.callbacks = append(existingEntry.callbacks, callback)
		existingEntry.mu.Unlock()
		return
	}

	go func() {
		img, err := ic.Load(ctx, url)
		entry.mu.Lock()
		entry.done = true
		ic.loading.Delete(url)
		cbs := make([]func(image.Image), len(entry.callbacks))
		copy(cbs, entry.callbacks)
		entry.mu.Unlock()

		if err != nil {
			if ctx.Err() == nil {
				log.Printf("Failed to load image %s: %v", url, err)
			}
			return
		}
		for _, cb := range cbs {
			cb(img)
		}
	}()
}

// Load returns the decoded image for url, downloading it on a miss. At most
// six downloads run at a time.
func (ic *ImageCache) Load(ctx context.Context, url string) (image.Image, error) {
	if img := ic.Get(url); img != nil {
		return img, nil
	}

	select {
	case ic.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-ic.sem }()

	img, err := ic.loadImage(ctx, url)
	if err != nil {
		return nil, err
	}
	ic.memory.Store(url, img)
	return img, nil
}

// Prefetch warms the cache for urls in the background, nearest first.
func (ic *ImageCache) Prefetch(ctx context.Context, urls []string) {
	for _, u := range urls {
		if ic.Get(u) != nil {
			continue
		}
		ic.LoadAsync(ctx, u, func(image.Image) {})
	}
}

func (ic *ImageCache) loadImage(ctx context.Context, url string) (image.Image, error) {
	diskPath := ic.diskPath(url)

	if f, err := os.Open(diskPath); err == nil {
		img, _, err := image.Decode(f)
		f.Close()
		if err == nil {
			return img, nil
		}
		// Corrupt cache file, remove and re-download
		os.Remove(diskPath)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := ic.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download failed: %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(diskPath), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(diskPath)
	if err != nil {
		return nil, err
	}

	// Tee to disk while decoding
	tee := io.TeeReader(resp.Body, f)
	img, _, err := image.Decode(tee)
	f.Close()
	if err != nil {
		os.Remove(diskPath)
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}

	return img, nil
}

func (ic *ImageCache) diskPath(url string) string {
	h := sha256.Sum256([]byte(url))
	name := fmt.Sprintf("%x", h[:16])
	return filepath.Join(ic.cacheDir, name[:2], name)
}

// CacheDir returns the disk cache directory path.
func (ic *ImageCache) CacheDir() string {
	return ic.cacheDir
}

// Clear removes all cached images from memory.
func (ic *ImageCache) Clear() {
	ic.memory.Range(func(k, _ any) bool {
		ic.memory.Delete(k)
		return true
	})
}

// ClearDisk removes all cached images from disk.
func (ic *ImageCache) ClearDisk() error {
	return os.RemoveAll(ic.cacheDir)
}
