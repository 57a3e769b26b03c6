package views

import (
	"encoding/json"
	"html/template"
	"net/url"
	"path"
	"strings"

	"github.com/eringen/folio/content"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

func jsonLD(data map[string]any) template.JS {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return template.JS(b)
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) template.JS {
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      buildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	return jsonLD(data)
}

// CreativeWorkJsonLD produces a Schema.org CreativeWork JSON-LD block for a
// work item.
func CreativeWorkJsonLD(cfg SiteConfig, item content.WorkItem) template.JS {
	data := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "CreativeWork",
		"name":        item.Title,
		"description": item.Description,
		"url":         buildURL(cfg.URL, "work", item.Slug()),
	}
	if item.Year != "" {
		data["dateCreated"] = item.Year
	}
	if item.Category != "" {
		data["genre"] = item.Category
	}
	if thumb := item.Thumbnail(); thumb != "" {
		data["image"] = thumb
	}
	if cfg.Author != "" {
		data["creator"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	if len(item.Tags) > 0 {
		data["keywords"] = strings.Join(item.Tags, ", ")
	}
	return jsonLD(data)
}

// HomeMeta returns the metadata of the landing page.
func HomeMeta(cfg SiteConfig) PageMeta {
	return PageMeta{
		Title:       cfg.Name,
		Description: cfg.Description,
		URL:         buildURL(cfg.URL),
		OGType:      "website",
	}
}

// WorkMeta returns the metadata of a work item's detail page. item may be
// the zero value while the catalog is still loading.
func WorkMeta(cfg SiteConfig, slug string, item content.WorkItem) PageMeta {
	m := PageMeta{
		Title:       cfg.Name,
		Description: cfg.Description,
		URL:         buildURL(cfg.URL, "work", slug),
		OGType:      "article",
	}
	if item.Title != "" {
		m.Title = item.Title + " | " + cfg.Name
		m.Description = item.Description
		m.Image = item.Thumbnail()
	}
	return m
}
