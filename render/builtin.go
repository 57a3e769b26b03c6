package render

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/folio/carousel"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/media"
)

const (
	mediaCover  = "absolute inset-0 w-full h-full object-cover"
	detailCover = "w-full h-full object-cover"
)

// still returns the image that stands for m in a static presentation.
func still(m content.Media) string {
	switch m := m.(type) {
	case content.Image:
		return m.URL
	case content.Video:
		return m.Poster
	case content.Gallery:
		if len(m.Images) > 0 {
			return m.Images[0]
		}
	}
	return ""
}

type imageData struct {
	Src     string
	Alt     string
	Class   string
	Zoom    string
	Hovered bool
}

// ImageCard draws a static image that zooms while hovered. The zoom is a
// CSS transition, so it needs no hover handler.
type ImageCard struct {
	Class string
	Zoom  string
}

func (r *ImageCard) RenderMedia(item content.WorkItem, hovered bool, _ *media.Player) templ.Component {
	m, err := item.Media()
	if err != nil {
		return errorComponent(err)
	}
	return r.render(still(m), item.Title, hovered)
}

func (r *ImageCard) render(src, alt string, hovered bool) templ.Component {
	if src == "" {
		return component("media-empty", nil)
	}
	return component("card-image", imageData{Src: src, Alt: alt, Class: r.Class, Zoom: r.Zoom, Hovered: hovered})
}

// GalleryCard shows the first image of the gallery with the image zoom.
type GalleryCard struct {
	ImageCard
}

type videoData struct {
	Src      string
	Poster   string
	Class    string
	Autoplay bool
	Commands string
}

// VideoCard draws a muted looping video that restarts from the beginning
// while hovered.
type VideoCard struct {
	Class string
}

func (r *VideoCard) RenderMedia(item content.WorkItem, _ bool, player *media.Player) templ.Component {
	m, err := item.Media()
	if err != nil {
		return errorComponent(err)
	}
	v, ok := m.(content.Video)
	if !ok {
		return errorComponent(fmt.Errorf("render: video card given %s item %q", item.Type, item.ID))
	}
	d := videoData{Src: v.URL, Poster: v.Poster, Class: r.Class}
	if player != nil {
		d.Autoplay = player.State().Playing
		d.Commands = media.Encode(player.Take())
	}
	return component("card-video", d)
}

// HoverStart rewinds and starts playback.
func (r *VideoCard) HoverStart(_ content.WorkItem, player *media.Player) {
	player.Do(media.Restart...)
}

// HoverEnd pauses and rewinds.
func (r *VideoCard) HoverEnd(_ content.WorkItem, player *media.Player) {
	player.Do(media.Rewind...)
}

// ImageDetail draws the full image.
type ImageDetail struct {
	Class string
}

func (r *ImageDetail) RenderMedia(item content.WorkItem) templ.Component {
	m, err := item.Media()
	if err != nil {
		return errorComponent(err)
	}
	src := still(m)
	if src == "" {
		return component("media-empty", nil)
	}
	return component("detail-image", imageData{Src: src, Alt: item.Title, Class: r.Class})
}

// VideoDetail draws a video with native controls and the poster, if any.
type VideoDetail struct {
	Class string
}

func (r *VideoDetail) RenderMedia(item content.WorkItem) templ.Component {
	m, err := item.Media()
	if err != nil {
		return errorComponent(err)
	}
	v, ok := m.(content.Video)
	if !ok {
		return errorComponent(fmt.Errorf("render: video detail given %s item %q", item.Type, item.ID))
	}
	return component("detail-video", videoData{Src: v.URL, Poster: v.Poster, Class: r.Class})
}

// GalleryDetail draws the carousel, starting at the first image.
type GalleryDetail struct {
	Class string
}

func (r *GalleryDetail) RenderMedia(item content.WorkItem) templ.Component {
	m, err := item.Media()
	if err != nil {
		return errorComponent(err)
	}
	g, ok := m.(content.Gallery)
	if !ok || len(g.Images) == 0 {
		return component("media-empty", nil)
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		c, err := carousel.New(g.Images, carousel.WithPrefetcher(ImagesFrom(ctx)))
		if err != nil {
			return err
		}
		return CarouselView(item, c).Render(ctx, w)
	})
}

// errorComponent fails at render time with err.
func errorComponent(err error) templ.Component {
	return templ.ComponentFunc(func(context.Context, io.Writer) error { return err })
}
