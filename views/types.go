package views

// SiteConfig holds the site-wide settings templates read. Every handler
// passes it through so nothing is hardcoded.
type SiteConfig struct {
	Name        string // site.name     (default "Portfolio")
	URL         string // site.url      (default "http://localhost:3000")
	Description string // site.description
	Author      string // site.author
	Headline    string // site.headline, the hero title
	Tagline     string // site.tagline, the hero subtitle
	Social      []SocialLink
}

// SocialLink is one footer link.
type SocialLink struct {
	Name string `mapstructure:"name" yaml:"name"`
	URL  string `mapstructure:"url" yaml:"url"`
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string // og:image
}
