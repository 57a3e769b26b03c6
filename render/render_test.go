package render

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/carousel"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/media"
	"github.com/eringen/folio/source"
)

func renderString(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(ctx, &buf))
	return buf.String()
}

func sample(t *testing.T, kind content.Kind) content.WorkItem {
	t.Helper()
	for _, it := range source.SampleWorkItems() {
		if it.Type == kind {
			return it
		}
	}
	t.Fatalf("no sample item of kind %s", kind)
	return content.WorkItem{}
}

func TestRegistriesReturnStableDistinctRenderers(t *testing.T) {
	seen := map[CardRenderer]content.Kind{}
	for _, k := range content.BuiltinKinds() {
		a, err := Cards.Lookup(k)
		require.NoError(t, err)
		b, err := Cards.Lookup(k)
		require.NoError(t, err)
		assert.Same(t, a, b, "card renderer for %s", k)
		if other, dup := seen[a]; dup {
			t.Errorf("kinds %s and %s share a card renderer", k, other)
		}
		seen[a] = k

		d1, err := Details.Lookup(k)
		require.NoError(t, err)
		d2, err := Details.Lookup(k)
		require.NoError(t, err)
		assert.Same(t, d1, d2, "detail renderer for %s", k)
	}
	assert.Equal(t, []content.Kind{content.KindGallery, content.KindImage, content.KindVideo}, Cards.Kinds())
}

func TestLookupUnknownKind(t *testing.T) {
	_, err := Cards.Lookup("unknown-type")
	var ute *UnsupportedTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, content.Kind("unknown-type"), ute.Kind)
	assert.Equal(t, "Unsupported work item type: unknown-type", err.Error())

	_, err = Details.Lookup("unknown-type")
	assert.ErrorAs(t, err, &ute)

	_, err = Cards.Lookup("Image")
	assert.ErrorAs(t, err, &ute, "lookup is exact")
}

type audioCard struct{ label string }

func (a *audioCard) RenderMedia(item content.WorkItem, _ bool, _ *media.Player) templ.Component {
	return templ.Raw("<audio>" + a.label + "</audio>")
}

func TestRegisterReplacesAndExtends(t *testing.T) {
	reg := NewRegistry[CardRenderer]()
	first := &audioCard{label: "one"}
	reg.Register("audio", first)
	got, err := reg.Lookup("audio")
	require.NoError(t, err)
	assert.Same(t, first, got)

	second := &audioCard{label: "two"}
	reg.Register("audio", second)
	got, err = reg.Lookup("audio")
	require.NoError(t, err)
	assert.Same(t, second, got)
}

func TestImageCardHover(t *testing.T) {
	item := sample(t, content.KindImage)
	r, err := Cards.Lookup(content.KindImage)
	require.NoError(t, err)
	_, isHover := r.(HoverHandler)
	assert.False(t, isHover)

	idle := renderString(t, context.Background(), r.RenderMedia(item, false, nil))
	assert.Contains(t, idle, "scale-100")
	assert.Contains(t, idle, `alt="Brand Identity System"`)

	hovered := renderString(t, context.Background(), r.RenderMedia(item, true, nil))
	assert.Contains(t, hovered, "scale-110")
	assert.NotContains(t, hovered, "scale-100")
}

func TestGalleryCardShowsFirstImage(t *testing.T) {
	item := sample(t, content.KindGallery)
	r, err := Cards.Lookup(content.KindGallery)
	require.NoError(t, err)
	out := renderString(t, context.Background(), r.RenderMedia(item, false, nil))
	first := strings.ReplaceAll(item.GalleryImages[0], "&", "&amp;")
	assert.Contains(t, out, first)
	assert.Equal(t, 1, strings.Count(out, "<img"))
}

func TestVideoCardHoverCommands(t *testing.T) {
	item := sample(t, content.KindVideo)
	r, err := Cards.Lookup(content.KindVideo)
	require.NoError(t, err)
	h, ok := r.(HoverHandler)
	require.True(t, ok)

	p := media.NewPlayer()
	h.HoverStart(item, p)
	assert.Equal(t, media.State{Playing: true}, p.State())
	assert.Equal(t, "seek:0 play", media.Encode(p.Take()))

	p.Advance(2 * time.Second)
	h.HoverEnd(item, p)
	assert.Equal(t, media.State{}, p.State())
	assert.Equal(t, "pause seek:0", media.Encode(p.Take()))
}

func TestVideoCardMarkup(t *testing.T) {
	item := sample(t, content.KindVideo)
	r, _ := Cards.Lookup(content.KindVideo)

	out := renderString(t, context.Background(), r.RenderMedia(item, false, media.NewPlayer()))
	for _, attr := range []string{"loop", "muted", "playsinline", `preload="metadata"`} {
		assert.Contains(t, out, attr)
	}
	assert.NotContains(t, out, "autoplay")

	p := media.NewPlayer()
	p.Do(media.Restart...)
	out = renderString(t, context.Background(), r.RenderMedia(item, false, p))
	assert.Contains(t, out, "autoplay")
	assert.Contains(t, out, `data-commands="seek:0 play"`)
}

func TestWorkCardViewport(t *testing.T) {
	video := sample(t, content.KindVideo)

	desk, err := WorkCard(video, Viewport{})
	require.NoError(t, err)
	out := renderString(t, context.Background(), desk)
	assert.Contains(t, out, `href="/work/e-commerce-platform/"`)
	assert.Contains(t, out, `data-hover-start="seek:0 play"`)
	assert.Contains(t, out, `data-hover-end="pause seek:0"`)
	assert.Contains(t, out, "group-hover:opacity-100")
	assert.NotContains(t, out, "autoplay")

	touch, err := WorkCard(video, Viewport{Touch: true})
	require.NoError(t, err)
	out = renderString(t, context.Background(), touch)
	assert.Contains(t, out, "autoplay")
	assert.NotContains(t, out, "data-hover-start")
	assert.NotContains(t, out, "group-hover:opacity-100")

	img, err := WorkCard(sample(t, content.KindImage), Viewport{})
	require.NoError(t, err)
	assert.NotContains(t, renderString(t, context.Background(), img), "data-hover-start")
}

func TestWorkCardUnsupported(t *testing.T) {
	_, err := WorkCard(content.WorkItem{ID: "x", Title: "X", Type: "unknown-type"}, Viewport{})
	var ute *UnsupportedTypeError
	assert.ErrorAs(t, err, &ute)

	_, err = DetailMedia(content.WorkItem{ID: "x", Title: "X", Type: "unknown-type"})
	assert.ErrorAs(t, err, &ute)
}

func TestDetailMedia(t *testing.T) {
	img, err := DetailMedia(sample(t, content.KindImage))
	require.NoError(t, err)
	assert.Contains(t, renderString(t, context.Background(), img), "<img")

	vid, err := DetailMedia(sample(t, content.KindVideo))
	require.NoError(t, err)
	out := renderString(t, context.Background(), vid)
	assert.Contains(t, out, "controls")
	assert.Contains(t, out, `controlsList="nodownload"`)
	assert.Contains(t, out, "poster=")

	noPoster := sample(t, content.KindVideo)
	noPoster.ImageURL = ""
	vid, err = DetailMedia(noPoster)
	require.NoError(t, err)
	assert.NotContains(t, renderString(t, context.Background(), vid), "poster=")
}

type fakeImages struct{ prefetched []string }

func (f *fakeImages) Resolve(src string) string { return "/media/" + media.Key(src) + "/" }
func (f *fakeImages) Prefetch(src string)       { f.prefetched = append(f.prefetched, src) }

func TestGalleryDetailUsesImages(t *testing.T) {
	item := sample(t, content.KindGallery)
	imgs := &fakeImages{}
	ctx := WithImages(context.Background(), imgs)

	cmp, err := DetailMedia(item)
	require.NoError(t, err)
	out := renderString(t, ctx, cmp)

	assert.Contains(t, out, "data-carousel")
	assert.Contains(t, out, `src="/media/`+media.Key(item.GalleryImages[0])+`/"`)
	assert.Contains(t, out, "1 / 5")
	assert.Equal(t, []string{item.GalleryImages[4], item.GalleryImages[1]}, imgs.prefetched)
	assert.Equal(t, 5, strings.Count(out, "Go to image"))
}

func TestCarouselView(t *testing.T) {
	item := sample(t, content.KindGallery)
	c, err := carousel.New(item.GalleryImages, carousel.WithIndex(2), carousel.WithFullscreen(true))
	require.NoError(t, err)
	out := renderString(t, context.Background(), CarouselView(item, c))

	assert.Contains(t, out, `data-scroll-lock="true"`)
	assert.Contains(t, out, `data-fullscreen="true"`)
	assert.Contains(t, out, "3 / 5")
	assert.Contains(t, out, `role="dialog"`)
	assert.Contains(t, out, "/work/mobile-application/gallery/?fs=1&amp;i=2&amp;op=next")
	assert.Contains(t, out, "Close fullscreen")

	c.Close()
	c.ExitFullscreen()
	out = renderString(t, context.Background(), CarouselView(item, c))
	assert.Contains(t, out, `data-scroll-lock="false"`)
	assert.NotContains(t, out, `role="dialog"`)
}

func TestApplyOp(t *testing.T) {
	c, err := carousel.New([]string{"a", "b", "c"})
	require.NoError(t, err)

	ok, err := ApplyOp(c, OpPrev, "", 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, c.Index())

	ok, _ = ApplyOp(c, "", carousel.KeyRight, 0)
	assert.False(t, ok, "keys are ignored outside fullscreen")

	ApplyOp(c, OpEnter, "", 0)
	ok, _ = ApplyOp(c, "", carousel.KeyRight, 0)
	assert.True(t, ok)
	assert.Equal(t, 0, c.Index())

	ApplyOp(c, "", carousel.KeyEscape, 0)
	assert.False(t, c.ScrollLocked())

	_, err = ApplyOp(c, OpGoTo, "", 7)
	assert.Error(t, err)

	ok, err = ApplyOp(c, "spin", "", 0)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestDetectViewport(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		touch   bool
	}{
		{"desktop", map[string]string{"User-Agent": "Mozilla/5.0 (X11; Linux x86_64)"}, false},
		{"iphone", map[string]string{"User-Agent": "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148"}, true},
		{"client hint mobile", map[string]string{"Sec-CH-UA-Mobile": "?1"}, true},
		{"client hint wins", map[string]string{"Sec-CH-UA-Mobile": "?0", "User-Agent": "Android Mobile"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.touch, DetectViewport(req).Touch)
		})
	}
}

func TestRenderFailsForMismatchedPayload(t *testing.T) {
	r, _ := Cards.Lookup(content.KindVideo)
	item := sample(t, content.KindImage)
	err := r.RenderMedia(item, false, nil).Render(context.Background(), &bytes.Buffer{})
	assert.Error(t, err)

	custom := content.WorkItem{ID: "a", Title: "A", Type: "audio"}
	err = (&ImageDetail{}).RenderMedia(custom).Render(context.Background(), &bytes.Buffer{})
	assert.True(t, errors.Is(err, content.ErrNoMedia))
}
