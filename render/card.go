package render

import (
	"context"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/media"
)

// Viewport describes the client a page is rendered for.
type Viewport struct {
	// Touch is set for small or touch-first clients that have no hover.
	Touch bool
}

var mobileMarkers = []string{"mobi", "android", "iphone", "ipad", "ipod"}

// DetectViewport derives the viewport from client hints, falling back to
// the user agent.
func DetectViewport(r *http.Request) Viewport {
	switch r.Header.Get("Sec-CH-UA-Mobile") {
	case "?1":
		return Viewport{Touch: true}
	case "?0":
		return Viewport{}
	}
	ua := strings.ToLower(r.UserAgent())
	for _, m := range mobileMarkers {
		if strings.Contains(ua, m) {
			return Viewport{Touch: true}
		}
	}
	return Viewport{}
}

// Images resolves catalog image URLs to the paths they are served from and
// preloads them on request. *media.ImageCache implements it.
type Images interface {
	Resolve(src string) string
	Prefetch(src string)
}

type directImages struct{}

func (directImages) Resolve(src string) string { return src }
func (directImages) Prefetch(string)           {}

type imagesKey struct{}

// WithImages returns a context carrying imgs for components rendered with
// it.
func WithImages(ctx context.Context, imgs Images) context.Context {
	return context.WithValue(ctx, imagesKey{}, imgs)
}

// ImagesFrom returns the Images carried by ctx. Without one, URLs are used
// as they are and nothing is preloaded.
func ImagesFrom(ctx context.Context) Images {
	if imgs, ok := ctx.Value(imagesKey{}).(Images); ok && imgs != nil {
		return imgs
	}
	return directImages{}
}

type cardData struct {
	Item       content.WorkItem
	Link       string
	Media      template.HTML
	Pinned     bool
	HoverStart string
	HoverEnd   string
}

// WorkCard builds the grid card for item. On touch viewports the card's
// player starts at mount and the overlay is always shown; elsewhere the
// renderer's hover commands are attached for the client to replay.
func WorkCard(item content.WorkItem, vp Viewport) (templ.Component, error) {
	r, err := Cards.Lookup(item.Type)
	if err != nil {
		return nil, err
	}
	player := media.NewPlayer()
	if vp.Touch {
		player.Do(media.Restart...)
	}
	d := cardData{Item: item, Link: item.Link(), Pinned: vp.Touch}
	if h, ok := r.(HoverHandler); ok && !vp.Touch {
		probe := media.NewPlayer()
		h.HoverStart(item, probe)
		d.HoverStart = media.Encode(probe.Take())
		h.HoverEnd(item, probe)
		d.HoverEnd = media.Encode(probe.Take())
	}
	mediaCmp := r.RenderMedia(item, false, player)
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		html, err := templ.ToGoHTML(ctx, mediaCmp)
		if err != nil {
			return err
		}
		d.Media = html
		return tmpl.ExecuteTemplate(w, "card", d)
	}), nil
}

// DetailMedia returns the detail presentation of item's media.
func DetailMedia(item content.WorkItem) (templ.Component, error) {
	r, err := Details.Lookup(item.Type)
	if err != nil {
		return nil, err
	}
	return r.RenderMedia(item), nil
}
