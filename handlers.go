package folio

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/carousel"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/loader"
	"github.com/eringen/folio/media"
	"github.com/eringen/folio/render"
	"github.com/eringen/folio/views"
)

func isHX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// abandoned is returned by fragment handlers whose fetch never settled,
// which only happens when the client went away.
func (a *App) abandoned(c echo.Context) error {
	a.Logger.Debug().Str("uri", c.Request().RequestURI).Msg("client left before the fetch settled")
	return nil
}

func (a *App) handleHome(c echo.Context) error {
	return Render(c, a.Views.Home(a.Config.View()))
}

func (a *App) handleWorkSection(c echo.Context) error {
	ctx := c.Request().Context()
	ctrl := loader.WorkItems(ctx, a.Sources.Work)
	defer ctrl.Close()

	st := ctrl.Wait(ctx)
	switch st.Status {
	case loader.Ready:
		vp := render.DetectViewport(c.Request())
		cards := make([]templ.Component, 0, len(st.Data))
		for _, item := range st.Data {
			card, err := render.WorkCard(item, vp)
			if err != nil {
				return err
			}
			cards = append(cards, card)
		}
		c.Response().Header().Add(echo.HeaderVary, "Sec-CH-UA-Mobile, User-Agent")
		return Render(c, a.Views.WorkSection(cards))
	case loader.Failed:
		return Render(c, a.Views.SectionError(views.SectionWork, st.Err))
	}
	return a.abandoned(c)
}

func (a *App) handleAboutSection(c echo.Context) error {
	ctx := c.Request().Context()
	ctrl := loader.About(ctx, a.Sources.About)
	defer ctrl.Close()

	st := ctrl.Wait(ctx)
	switch st.Status {
	case loader.Ready:
		return Render(c, a.Views.AboutSection(st.Data))
	case loader.Failed:
		return Render(c, a.Views.SectionError(views.SectionAbout, st.Err))
	}
	return a.abandoned(c)
}

func (a *App) handleContactSection(c echo.Context) error {
	ctx := c.Request().Context()
	ctrl := loader.Contact(ctx, a.Sources.Contact)
	defer ctrl.Close()

	st := ctrl.Wait(ctx)
	switch st.Status {
	case loader.Ready:
		return Render(c, a.Views.ContactSection(st.Data))
	case loader.Failed:
		return Render(c, a.Views.SectionError(views.SectionContact, st.Err))
	}
	return a.abandoned(c)
}

// handleWork serves the detail shell, or with partial=detail the detail
// fragment the shell loads.
func (a *App) handleWork(c echo.Context) error {
	slug := c.Param("slug")
	c.Response().Header().Add(echo.HeaderVary, "HX-Request")
	if !isHX(c) || c.QueryParam("partial") != "detail" {
		return Render(c, a.Views.WorkPage(a.Config.View(), slug, content.WorkItem{}))
	}

	ctx := c.Request().Context()
	ctrl := loader.WorkItems(ctx, a.Sources.Work)
	defer ctrl.Close()

	st := ctrl.Wait(ctx)
	switch st.Status {
	case loader.Ready:
		item, ok := content.FindBySlug(st.Data, slug)
		if !ok {
			return Render(c, a.Views.ProjectNotFound())
		}
		m, err := render.DetailMedia(item)
		if err != nil {
			return err
		}
		return Render(c, a.Views.Detail(item, m))
	case loader.Failed:
		return Render(c, a.Views.DetailError(st.Err))
	}
	return a.abandoned(c)
}

// handleGallery re-renders a gallery carousel after applying the operation
// in the query. The carousel's position and fullscreen flag travel in the
// query too, so each request rebuilds it from scratch.
func (a *App) handleGallery(c echo.Context) error {
	ctx := c.Request().Context()
	st := loader.Run(ctx, a.Sources.Work.FetchAll, loader.WithFallback(loader.WorkItemsMessage))
	switch st.Status {
	case loader.Failed:
		return Render(c, a.Views.DetailError(st.Err))
	case loader.Loading:
		return a.abandoned(c)
	}

	item, ok := content.FindBySlug(st.Data, c.Param("slug"))
	if !ok {
		return echo.ErrNotFound
	}
	m, err := item.Media()
	if err != nil {
		return echo.ErrNotFound
	}
	g, ok := m.(content.Gallery)
	if !ok {
		return echo.ErrNotFound
	}

	index, _ := strconv.Atoi(c.QueryParam("i"))
	var loaded []int
	for n, src := range g.Images {
		if a.Images.Loaded(src) {
			loaded = append(loaded, n)
		}
	}
	car, err := carousel.New(g.Images,
		carousel.WithIndex(index),
		carousel.WithFullscreen(c.QueryParam("fs") == "1"),
		carousel.WithLoaded(loaded...),
		carousel.WithPrefetcher(a.Images),
	)
	if err != nil {
		return echo.ErrNotFound
	}

	op := c.QueryParam("op")
	var to int
	if op == render.OpGoTo {
		n, err := strconv.Atoi(c.QueryParam("to"))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid carousel target "+strconv.Quote(c.QueryParam("to")))
		}
		to = n
	}
	applied, err := render.ApplyOp(car, op, c.QueryParam("key"), to)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if !applied && op != "" {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown carousel operation "+strconv.Quote(op))
	}
	return Render(c, render.CarouselView(item, car))
}

// handleMedia serves a resized gallery image by cache key.
func (a *App) handleMedia(c echo.Context) error {
	img, err := a.Images.Get(c.Request().Context(), c.Param("key"))
	if errors.Is(err, media.ErrUnknownKey) {
		return echo.ErrNotFound
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, "image unavailable").SetInternal(err)
	}
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.Blob(http.StatusOK, img.ContentType(), img.Data)
}

// catalog fetches the work items for the sitemap and feed.
func (a *App) catalog(c echo.Context) ([]content.WorkItem, error) {
	st := loader.Run(c.Request().Context(), a.Sources.Work.FetchAll, loader.WithFallback(loader.WorkItemsMessage))
	if st.Status != loader.Ready {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, st.Err)
	}
	return st.Data, nil
}

func (a *App) handleSitemap(c echo.Context) error {
	items, err := a.catalog(c)
	if err != nil {
		return err
	}
	return a.renderSitemap(c, items)
}

func (a *App) handleFeed(c echo.Context) error {
	items, err := a.catalog(c)
	if err != nil {
		return err
	}
	return a.renderRSS(c, items)
}

func (a *App) handleRobots(c echo.Context) error {
	path := filepath.Join(a.staticDir, "robots.txt")
	if _, err := os.Stat(path); err == nil {
		return c.File(path)
	}
	return c.String(http.StatusOK, "User-agent: *\nAllow: /\n\nSitemap: "+strings.TrimRight(a.Config.URL, "/")+"/sitemap.xml\n")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config.View()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		var unsupported *render.UnsupportedTypeError
		evt := a.Logger.Error().Err(err).
			Str("uri", c.Request().RequestURI).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID))
		if errors.As(err, &unsupported) {
			evt = evt.Str("kind", string(unsupported.Kind))
		}
		evt.Msg("server error")
		_ = RenderStatus(c, code, a.Views.ServerError(a.Config.View()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
