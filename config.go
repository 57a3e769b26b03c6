package folio

import (
	"github.com/rs/zerolog"

	"github.com/eringen/folio/media"
	"github.com/eringen/folio/views"
)

// SocialLink is one footer link.
type SocialLink = views.SocialLink

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string // Site name (default "Portfolio")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for the feed and meta tags
	Author      string // Author name for JSON-LD
	Headline    string // Hero title (defaults to Name)
	Tagline     string // Hero subtitle
	Social      []SocialLink

	Addr          string // Listen address (default ":3000")
	RateLimit     int    // Fragment requests per IP per minute (default 120)
	MediaMaxWidth int    // Width gallery images are scaled down to (default 1600)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.RateLimit == 0 {
		c.RateLimit = 120
	}
	if c.MediaMaxWidth == 0 {
		c.MediaMaxWidth = media.DefaultMaxWidth
	}
}

// View returns the settings templates read.
func (c SiteConfig) View() views.SiteConfig {
	return views.SiteConfig{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
		Author:      c.Author,
		Headline:    c.Headline,
		Tagline:     c.Tagline,
		Social:      c.Social,
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithLogger sets the logger used for requests and server errors.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithImageCache replaces the gallery image cache.
func WithImageCache(c *media.ImageCache) Option {
	return func(a *App) {
		a.Images = c
	}
}

// WithViews replaces the default templates.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}
