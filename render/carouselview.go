package render

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/folio/carousel"
	"github.com/eringen/folio/content"
)

// Carousel operations accepted by the gallery fragment route.
const (
	OpNext   = "next"
	OpPrev   = "prev"
	OpGoTo   = "goto"
	OpToggle = "toggle"
	OpEnter  = "enter"
	OpExit   = "exit"
	OpClose  = "close"
)

type dot struct {
	Index  int
	Label  string
	Active bool
	URL    string
}

type carouselData struct {
	ID         string
	Title      string
	Src        string
	Alt        string
	Counter    string
	Multiple   bool
	Dots       []dot
	Fullscreen bool
	Locked     bool
	PrevURL    string
	NextURL    string
	ToggleURL  string
	ExitURL    string
	KeyURL     string
	Preload    []string
}

// GalleryPath returns the fragment route of item's carousel.
func GalleryPath(item content.WorkItem) string {
	return item.Link() + "gallery/"
}

func carouselURL(base string, index int, fullscreen bool, op string, extra ...string) string {
	v := url.Values{}
	v.Set("i", strconv.Itoa(index))
	if fullscreen {
		v.Set("fs", "1")
	}
	if op != "" {
		v.Set("op", op)
	}
	for i := 0; i+1 < len(extra); i += 2 {
		v.Set(extra[i], extra[i+1])
	}
	return base + "?" + v.Encode()
}

// CarouselView renders c for item. Image sources are resolved through the
// Images carried by the render context, and the neighbours already handed
// to the prefetcher are emitted as preload hints.
func CarouselView(item content.WorkItem, c *carousel.Carousel) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		imgs := ImagesFrom(ctx)
		base := GalleryPath(item)
		i, fs := c.Index(), c.Fullscreen()
		d := carouselData{
			ID:         "carousel-" + item.Slug(),
			Title:      item.Title,
			Src:        imgs.Resolve(c.Current()),
			Alt:        item.Title + " - Image " + strconv.Itoa(i+1),
			Counter:    c.Counter(),
			Multiple:   c.Len() > 1,
			Fullscreen: fs,
			Locked:     c.ScrollLocked(),
			PrevURL:    carouselURL(base, i, fs, OpPrev),
			NextURL:    carouselURL(base, i, fs, OpNext),
			ToggleURL:  carouselURL(base, i, fs, OpToggle),
			ExitURL:    carouselURL(base, i, fs, OpExit),
			KeyURL:     carouselURL(base, i, fs, ""),
		}
		if c.ShowDots() {
			for n := 0; n < c.Len(); n++ {
				d.Dots = append(d.Dots, dot{
					Index:  n,
					Label:  "Go to image " + strconv.Itoa(n+1),
					Active: n == i,
					URL:    carouselURL(base, i, fs, OpGoTo, "to", strconv.Itoa(n)),
				})
			}
		}
		images := c.Images()
		for _, n := range []int{c.PrevIndex(), c.NextIndex()} {
			if n != i && c.Loaded(n) {
				d.Preload = append(d.Preload, imgs.Resolve(images[n]))
			}
		}
		if len(d.Preload) == 2 && d.Preload[0] == d.Preload[1] {
			d.Preload = d.Preload[:1]
		}
		return tmpl.ExecuteTemplate(w, "carousel", d)
	})
}

// ApplyOp applies a carousel operation or key from the fragment route. It
// reports whether the input was understood.
func ApplyOp(c *carousel.Carousel, op, key string, to int) (bool, error) {
	if key != "" {
		return c.HandleKey(key), nil
	}
	switch op {
	case "":
	case OpNext:
		c.Next()
	case OpPrev:
		c.Prev()
	case OpGoTo:
		if err := c.GoTo(to); err != nil {
			return false, err
		}
	case OpToggle:
		c.ToggleFullscreen()
	case OpEnter:
		c.EnterFullscreen()
	case OpExit:
		c.ExitFullscreen()
	case OpClose:
		c.Close()
	default:
		return false, nil
	}
	return true, nil
}
