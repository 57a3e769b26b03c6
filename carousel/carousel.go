// Package carousel is the state machine behind the gallery detail view: a
// circular index over a fixed image sequence, a fullscreen mode with
// keyboard navigation, background scroll locking and neighbour prefetch.
package carousel

import (
	"errors"
	"fmt"
)

// MaxDots is the largest sequence that shows indicator dots.
const MaxDots = 10

// Keys handled while fullscreen.
const (
	KeyLeft   = "ArrowLeft"
	KeyRight  = "ArrowRight"
	KeyEscape = "Escape"
)

// ErrEmpty is returned by New for a sequence without images.
var ErrEmpty = errors.New("carousel: no images")

// Prefetcher loads an image ahead of display.
type Prefetcher interface {
	Prefetch(src string)
}

// PrefetchFunc adapts a function to Prefetcher.
type PrefetchFunc func(src string)

func (f PrefetchFunc) Prefetch(src string) { f(src) }

// Carousel tracks the current image and fullscreen mode. It is not safe for
// concurrent use; each view owns its own.
type Carousel struct {
	images     []string
	index      int
	fullscreen bool
	locked     bool
	loaded     map[int]bool
	prefetcher Prefetcher
	onLock     func(locked bool)
}

// Option configures a Carousel.
type Option func(*Carousel)

// WithIndex restores a position. It is normalized modulo the length.
func WithIndex(i int) Option {
	return func(c *Carousel) { c.index = i }
}

// WithFullscreen restores fullscreen mode.
func WithFullscreen(on bool) Option {
	return func(c *Carousel) { c.fullscreen = on }
}

// WithPrefetcher sets where neighbour images are sent for preloading.
func WithPrefetcher(p Prefetcher) Option {
	return func(c *Carousel) { c.prefetcher = p }
}

// WithLoaded marks indices as already loaded so they are never prefetched.
func WithLoaded(indices ...int) Option {
	return func(c *Carousel) {
		for _, i := range indices {
			c.loaded[i] = true
		}
	}
}

// OnScrollLock registers a hook called whenever the background scroll lock
// changes.
func OnScrollLock(fn func(locked bool)) Option {
	return func(c *Carousel) { c.onLock = fn }
}

// New returns a carousel over images. Index 0 counts as loaded, since it is
// rendered eagerly with the page.
func New(images []string, opts ...Option) (*Carousel, error) {
	if len(images) == 0 {
		return nil, ErrEmpty
	}
	c := &Carousel{
		images: append([]string(nil), images...),
		loaded: map[int]bool{0: true},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.index = c.wrap(c.index)
	if c.fullscreen {
		c.setLock(true)
	}
	c.prefetch()
	return c, nil
}

func (c *Carousel) wrap(i int) int {
	n := len(c.images)
	return ((i % n) + n) % n
}

// Next advances to the following image, wrapping to the first.
func (c *Carousel) Next() { c.move(c.index + 1) }

// Prev goes back to the preceding image, wrapping to the last.
func (c *Carousel) Prev() { c.move(c.index - 1) }

// GoTo jumps to image i.
func (c *Carousel) GoTo(i int) error {
	if i < 0 || i >= len(c.images) {
		return fmt.Errorf("carousel: index %d out of range [0,%d)", i, len(c.images))
	}
	c.move(i)
	return nil
}

func (c *Carousel) move(i int) {
	c.index = c.wrap(i)
	c.prefetch()
}

// prefetch hands the current image and its circular neighbours to the
// prefetcher unless they are already loaded.
func (c *Carousel) prefetch() {
	for _, i := range []int{c.index, c.wrap(c.index - 1), c.wrap(c.index + 1)} {
		if c.loaded[i] {
			continue
		}
		c.loaded[i] = true
		if c.prefetcher != nil {
			c.prefetcher.Prefetch(c.images[i])
		}
	}
}

// EnterFullscreen switches to fullscreen and locks background scrolling.
func (c *Carousel) EnterFullscreen() {
	c.fullscreen = true
	c.setLock(true)
}

// ExitFullscreen leaves fullscreen and unlocks background scrolling.
func (c *Carousel) ExitFullscreen() {
	c.fullscreen = false
	c.setLock(false)
}

// ToggleFullscreen flips fullscreen mode.
func (c *Carousel) ToggleFullscreen() {
	if c.fullscreen {
		c.ExitFullscreen()
		return
	}
	c.EnterFullscreen()
}

// HandleKey applies a keyboard event. Keys are ignored outside fullscreen.
// It reports whether the key was handled.
func (c *Carousel) HandleKey(key string) bool {
	if !c.fullscreen {
		return false
	}
	switch key {
	case KeyLeft:
		c.Prev()
	case KeyRight:
		c.Next()
	case KeyEscape:
		c.ExitFullscreen()
	default:
		return false
	}
	return true
}

// Close releases the scroll lock whatever the current mode.
func (c *Carousel) Close() {
	c.setLock(false)
}

func (c *Carousel) setLock(on bool) {
	c.locked = on
	if c.onLock != nil {
		c.onLock(on)
	}
}

func (c *Carousel) Index() int         { return c.index }
func (c *Carousel) Len() int           { return len(c.images) }
func (c *Carousel) Current() string    { return c.images[c.index] }
func (c *Carousel) Images() []string   { return append([]string(nil), c.images...) }
func (c *Carousel) Fullscreen() bool   { return c.fullscreen }
func (c *Carousel) ScrollLocked() bool { return c.locked }

// Loaded reports whether image i has been loaded or handed to the
// prefetcher.
func (c *Carousel) Loaded(i int) bool { return c.loaded[i] }

// LoadedIndices returns the loaded indices in ascending order.
func (c *Carousel) LoadedIndices() []int {
	var out []int
	for i := range c.images {
		if c.loaded[i] {
			out = append(out, i)
		}
	}
	return out
}

// ShowDots reports whether indicator dots are displayed.
func (c *Carousel) ShowDots() bool {
	return len(c.images) > 1 && len(c.images) <= MaxDots
}

// Counter returns the "3 / 5" position label.
func (c *Carousel) Counter() string {
	return fmt.Sprintf("%d / %d", c.index+1, len(c.images))
}

// PrevIndex and NextIndex return the circular neighbours of the current
// image.
func (c *Carousel) PrevIndex() int { return c.wrap(c.index - 1) }
func (c *Carousel) NextIndex() int { return c.wrap(c.index + 1) }
