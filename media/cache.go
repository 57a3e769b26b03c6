package media

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/rs/zerolog"
)

// ErrUnknownKey is returned for a key no catalog image was resolved to.
var ErrUnknownKey = errors.New("media: unknown image key")

// entry is one cached image. done is closed once img or err is set.
type entry struct {
	done chan struct{}
	img  Image
	err  error
}

// ImageCache fetches remote catalog images, downsizes them and keeps the
// result in memory. Only URLs registered through Resolve or Prefetch are
// ever fetched.
type ImageCache struct {
	mu       sync.RWMutex
	sources  map[string]string // key -> source url
	entries  map[string]*entry
	client   *http.Client
	maxWidth int
	log      zerolog.Logger
	prefix   string
}

// CacheOption configures an ImageCache.
type CacheOption func(*ImageCache)

// WithMaxWidth sets the width images are scaled down to.
func WithMaxWidth(w int) CacheOption {
	return func(c *ImageCache) {
		if w > 0 {
			c.maxWidth = w
		}
	}
}

// WithHTTPClient sets the client used to fetch source images.
func WithHTTPClient(hc *http.Client) CacheOption {
	return func(c *ImageCache) { c.client = hc }
}

// WithCacheLogger sets the logger used for background load failures.
func WithCacheLogger(l zerolog.Logger) CacheOption {
	return func(c *ImageCache) { c.log = l }
}

// WithPathPrefix sets the route the cache is mounted under. Default "/media/".
func WithPathPrefix(p string) CacheOption {
	return func(c *ImageCache) { c.prefix = p }
}

// NewImageCache returns an empty cache.
func NewImageCache(opts ...CacheOption) *ImageCache {
	c := &ImageCache{
		sources:  make(map[string]string),
		entries:  make(map[string]*entry),
		client:   http.DefaultClient,
		maxWidth: DefaultMaxWidth,
		log:      zerolog.Nop(),
		prefix:   "/media/",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Key returns the cache key for src.
func Key(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:8])
}

func remote(src string) bool {
	u, err := url.Parse(src)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (c *ImageCache) register(src string) (string, bool) {
	if !remote(src) {
		return "", false
	}
	key := Key(src)
	c.mu.Lock()
	c.sources[key] = src
	c.mu.Unlock()
	return key, true
}

// Resolve registers src and returns the path it is served from. Sources that
// are not absolute http(s) URLs are returned unchanged.
func (c *ImageCache) Resolve(src string) string {
	key, ok := c.register(src)
	if !ok {
		return src
	}
	return c.prefix + key + "/"
}

// Prefetch starts loading src in the background unless it is already cached
// or being loaded.
func (c *ImageCache) Prefetch(src string) {
	key, ok := c.register(src)
	if !ok {
		return
	}
	e, started := c.start(key)
	if !started {
		return
	}
	go func() {
		c.load(context.Background(), key, e)
		if e.err != nil {
			c.log.Warn().Err(e.err).Str("src", src).Msg("image prefetch failed")
		}
	}()
}

// Loaded reports whether src has been fetched successfully.
func (c *ImageCache) Loaded(src string) bool {
	c.mu.RLock()
	e, ok := c.entries[Key(src)]
	c.mu.RUnlock()
	if !ok {
		return false
	}
	select {
	case <-e.done:
		return e.err == nil
	default:
		return false
	}
}

// Get returns the image for key, loading it if no load is in flight.
func (c *ImageCache) Get(ctx context.Context, key string) (Image, error) {
	c.mu.RLock()
	_, known := c.sources[key]
	c.mu.RUnlock()
	if !known {
		return Image{}, ErrUnknownKey
	}

	e, started := c.start(key)
	if started {
		// Other requests may wait on the same entry, so the load outlives
		// this caller's cancellation.
		go c.load(context.WithoutCancel(ctx), key, e)
	}
	select {
	case <-e.done:
		return e.img, e.err
	case <-ctx.Done():
		return Image{}, ctx.Err()
	}
}

// start returns the entry for key, creating it when absent. started reports
// whether the caller owns the load.
func (c *ImageCache) start(key string) (e *entry, started bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e, false
	}
	e = &entry{done: make(chan struct{})}
	c.entries[key] = e
	return e, true
}

// load fills e. A failed entry is dropped so a later request retries.
func (c *ImageCache) load(ctx context.Context, key string, e *entry) {
	c.mu.RLock()
	src := c.sources[key]
	c.mu.RUnlock()

	e.img, e.err = c.fetch(ctx, src)
	if e.err != nil {
		c.mu.Lock()
		if c.entries[key] == e {
			delete(c.entries, key)
		}
		c.mu.Unlock()
	}
	close(e.done)
}

func (c *ImageCache) fetch(ctx context.Context, src string) (Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return Image{}, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Image{}, fmt.Errorf("fetch %s: %w", src, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Image{}, fmt.Errorf("fetch %s: status %d", src, resp.StatusCode)
	}
	return processImage(resp.Body, c.maxWidth)
}
