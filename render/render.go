// Package render maps a work item's kind to the renderer that draws its
// media. There are two independent registries: one for the cards on the
// work grid and one for the detail page.
package render

import (
	"sort"
	"sync"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/media"
)

// CardRenderer draws the media element of a work card. hovered selects the
// hover presentation; player is the playback resource owned by the card.
type CardRenderer interface {
	RenderMedia(item content.WorkItem, hovered bool, player *media.Player) templ.Component
}

// HoverHandler is implemented by card renderers that need imperative control
// of their player when the pointer enters or leaves the card.
type HoverHandler interface {
	HoverStart(item content.WorkItem, player *media.Player)
	HoverEnd(item content.WorkItem, player *media.Player)
}

// DetailRenderer draws the media element of a detail page.
type DetailRenderer interface {
	RenderMedia(item content.WorkItem) templ.Component
}

// UnsupportedTypeError is returned when no renderer is registered for a
// kind.
type UnsupportedTypeError struct {
	Kind content.Kind
}

func (e *UnsupportedTypeError) Error() string {
	return "Unsupported work item type: " + string(e.Kind)
}

// Registry maps kinds to renderers. It is safe for concurrent use.
type Registry[R any] struct {
	mu        sync.RWMutex
	renderers map[content.Kind]R
}

// NewRegistry returns an empty registry.
func NewRegistry[R any]() *Registry[R] {
	return &Registry[R]{renderers: make(map[content.Kind]R)}
}

// Lookup returns the renderer registered for kind. Matching is exact.
func (r *Registry[R]) Lookup(kind content.Kind) (R, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rd, ok := r.renderers[kind]
	if !ok {
		var zero R
		return zero, &UnsupportedTypeError{Kind: kind}
	}
	return rd, nil
}

// Register adds or replaces the renderer for kind.
func (r *Registry[R]) Register(kind content.Kind, rd R) {
	r.mu.Lock()
	r.renderers[kind] = rd
	r.mu.Unlock()
}

// Kinds returns the registered kinds, sorted.
func (r *Registry[R]) Kinds() []content.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]content.Kind, 0, len(r.renderers))
	for k := range r.renderers {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Process-wide registries, populated with the built-in renderers.
var (
	Cards   = newCards()
	Details = newDetails()
)

func newCards() *Registry[CardRenderer] {
	r := NewRegistry[CardRenderer]()
	for _, k := range content.BuiltinKinds() {
		r.Register(k, builtinCard(k))
	}
	return r
}

func newDetails() *Registry[DetailRenderer] {
	r := NewRegistry[DetailRenderer]()
	for _, k := range content.BuiltinKinds() {
		r.Register(k, builtinDetail(k))
	}
	return r
}

func builtinCard(k content.Kind) CardRenderer {
	switch k {
	case content.KindImage:
		return &ImageCard{Class: mediaCover, Zoom: "scale-110"}
	case content.KindVideo:
		return &VideoCard{Class: mediaCover}
	case content.KindGallery:
		return &GalleryCard{ImageCard{Class: mediaCover, Zoom: "scale-110"}}
	}
	panic("render: no built-in card renderer for kind " + string(k))
}

func builtinDetail(k content.Kind) DetailRenderer {
	switch k {
	case content.KindImage:
		return &ImageDetail{Class: detailCover}
	case content.KindVideo:
		return &VideoDetail{Class: detailCover}
	case content.KindGallery:
		return &GalleryDetail{Class: detailCover}
	}
	panic("render: no built-in detail renderer for kind " + string(k))
}
