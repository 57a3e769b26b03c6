// Package folio is a portfolio site built with Go, Echo, and templ. It
// renders a catalog of image, video and gallery work items plus a biography
// and contact block, reading everything through injected repository ports.
//
// Pages render immediately with every section in its loading state; htmx
// then fetches each section fragment, which the server renders once the
// data source has settled.
package folio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/media"
	"github.com/eringen/folio/source"
	"github.com/eringen/folio/views"
)

// ViewFuncs holds the templates the handlers render. DefaultViews returns
// the built-in set; replace individual fields to customize a page.
type ViewFuncs struct {
	Home            func(cfg views.SiteConfig) templ.Component
	WorkPage        func(cfg views.SiteConfig, slug string, item content.WorkItem) templ.Component
	WorkSection     func(cards []templ.Component) templ.Component
	AboutSection    func(a content.About) templ.Component
	ContactSection  func(c content.Contact) templ.Component
	SectionError    func(id, message string) templ.Component
	Detail          func(item content.WorkItem, media templ.Component) templ.Component
	ProjectNotFound func() templ.Component
	DetailError     func(message string) templ.Component
	NotFound        func(cfg views.SiteConfig) templ.Component
	ServerError     func(cfg views.SiteConfig) templ.Component
}

// DefaultViews returns the templates of the views package.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:            views.Home,
		WorkPage:        views.WorkPage,
		WorkSection:     views.WorkSection,
		AboutSection:    views.AboutSection,
		ContactSection:  views.ContactSection,
		SectionError:    views.SectionError,
		Detail:          views.Detail,
		ProjectNotFound: views.ProjectNotFound,
		DetailError:     views.DetailError,
		NotFound:        views.NotFound,
		ServerError:     views.ServerError,
	}
}

// App is the central folio application. It wires together the sources,
// the image cache, handlers, middleware, and templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Sources source.Set
	Images  *media.ImageCache
	Views   ViewFuncs
	Logger  zerolog.Logger

	limiter      *RateLimiter
	customRoutes []func(*App)
	staticDir    string
	setupOnce    sync.Once
}

// New creates a folio App reading its content from sources.
func New(cfg SiteConfig, sources source.Set, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Sources:   sources,
		Views:     DefaultViews(),
		Logger:    zerolog.Nop(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	if a.Images == nil {
		a.Images = media.NewImageCache(
			media.WithMaxWidth(a.Config.MediaMaxWidth),
			media.WithCacheLogger(a.Logger),
		)
	}
	a.limiter = NewRateLimiter(a.Config.RateLimit, time.Minute)
	return a
}

func (a *App) validate() error {
	if a.Sources.Work == nil {
		return errors.New("folio: a work item source is required")
	}
	if a.Sources.About == nil {
		return errors.New("folio: an about source is required")
	}
	if a.Sources.Contact == nil {
		return errors.New("folio: a contact source is required")
	}
	return nil
}

// Handler sets up middleware and routes on first use and returns the
// application as an http.Handler.
func (a *App) Handler() (http.Handler, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}
	a.setupOnce.Do(func() {
		a.setupMiddleware()
		a.setupRoutes()
		for _, fn := range a.customRoutes {
			fn(a)
		}
	})
	return a.Echo, nil
}

// Start serves the site on Config.Addr until ctx is cancelled, then shuts
// the server down gracefully.
func (a *App) Start(ctx context.Context) error {
	if _, err := a.Handler(); err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() {
		a.Logger.Info().Str("addr", a.Config.Addr).Msg("listening")
		errc <- a.Echo.Start(a.Config.Addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("folio: serve: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("folio: shutdown: %w", err)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Serve the embedded client script ahead of the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/folio.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	// User's static assets
	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	// Pages
	e.GET("/", a.handleHome)
	e.GET("/work/:slug/", a.handleWork)

	// Fragments
	limit := a.limiter.Middleware()
	sections := e.Group("/sections", limit)
	sections.GET("/"+views.SectionWork+"/", a.handleWorkSection)
	sections.GET("/"+views.SectionAbout+"/", a.handleAboutSection)
	sections.GET("/"+views.SectionContact+"/", a.handleContactSection)
	e.GET("/work/:slug/gallery/", a.handleGallery, limit)
	e.GET("/media/:key/", a.handleMedia, limit)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	return nil
}
