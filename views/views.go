// Package views holds the default page templates: the layout, the hero,
// the work, about and contact sections in each of their load states, the
// detail page and the error pages. Templates are html/template files
// exposed as templ components.
package views

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/prose"
)

// Section ids, shared by the loading shells and the fragment routes.
const (
	SectionWork    = "work"
	SectionAbout   = "about"
	SectionContact = "contact"
)

// Loading messages.
const (
	LoadingWork    = "Loading projects..."
	LoadingAbout   = "Loading story..."
	LoadingContact = "Loading contact info..."
	LoadingProject = "Loading project..."
)

//go:embed templates/*.html
var templateFS embed.FS

var tmpl = template.Must(template.New("views").Funcs(template.FuncMap{
	"prose": proseHTML,
	"year":  func() int { return time.Now().Year() },
}).ParseFS(templateFS, "templates/*.html"))

// proseHTML renders s as paragraphs. prose escapes its input.
func proseHTML(s string) template.HTML {
	var buf bytes.Buffer
	prose.Render(&buf, s)
	return template.HTML(buf.String())
}

func execute(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return tmpl.ExecuteTemplate(w, name, data)
	})
}

func toHTML(ctx context.Context, cs ...templ.Component) ([]template.HTML, error) {
	out := make([]template.HTML, len(cs))
	for i, c := range cs {
		h, err := templ.ToGoHTML(ctx, c)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}

type pageData struct {
	Site   SiteConfig
	Meta   PageMeta
	JSONLD template.JS
	Body   template.HTML
}

// Page wraps body in the site layout.
func Page(cfg SiteConfig, meta PageMeta, ld template.JS, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		parts, err := toHTML(ctx, body)
		if err != nil {
			return err
		}
		return tmpl.ExecuteTemplate(w, "layout", pageData{Site: cfg, Meta: meta, JSONLD: ld, Body: parts[0]})
	})
}

type loadingData struct {
	ID      string
	Src     string
	Message string
}

type homeData struct {
	Site     SiteConfig
	Sections []loadingData
}

// Home renders the landing page: the hero followed by every section in its
// loading state. Each section fetches its own fragment once the page loads.
func Home(cfg SiteConfig) templ.Component {
	body := execute("home", homeData{
		Site: cfg,
		Sections: []loadingData{
			{ID: SectionWork, Src: SectionPath(SectionWork), Message: LoadingWork},
			{ID: SectionAbout, Src: SectionPath(SectionAbout), Message: LoadingAbout},
			{ID: SectionContact, Src: SectionPath(SectionContact), Message: LoadingContact},
		},
	})
	return Page(cfg, HomeMeta(cfg), WebsiteJsonLD(cfg), body)
}

// SectionPath returns the fragment route of a section.
func SectionPath(id string) string {
	return "/sections/" + id + "/"
}

// SectionLoading renders a section in its loading state.
func SectionLoading(id, message string) templ.Component {
	return execute("section-loading", loadingData{ID: id, Src: SectionPath(id), Message: message})
}

// WorkSection renders the grid of work cards.
func WorkSection(cards []templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		parts, err := toHTML(ctx, cards...)
		if err != nil {
			return err
		}
		return tmpl.ExecuteTemplate(w, "section-work", parts)
	})
}

// AboutSection renders the biography.
func AboutSection(a content.About) templ.Component {
	return execute("section-about", a)
}

// ContactSection renders the contact block.
func ContactSection(c content.Contact) templ.Component {
	return execute("section-contact", c)
}

type errorData struct {
	ID      string
	Message string
}

// SectionError renders a section whose fetch failed.
func SectionError(id, message string) templ.Component {
	return execute("section-error", errorData{ID: id, Message: message})
}

// WorkPage renders the detail page shell for slug, loading the detail
// fragment once the page loads.
func WorkPage(cfg SiteConfig, slug string, item content.WorkItem) templ.Component {
	body := execute("detail-loading", loadingData{
		ID:      "detail",
		Src:     "/work/" + slug + "/?partial=detail",
		Message: LoadingProject,
	})
	ld := WebsiteJsonLD(cfg)
	if item.Title != "" {
		ld = CreativeWorkJsonLD(cfg, item)
	}
	return Page(cfg, WorkMeta(cfg, slug, item), ld, body)
}

type detailData struct {
	Item  content.WorkItem
	Media template.HTML
}

// Detail renders a work item with its type-specific media.
func Detail(item content.WorkItem, media templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		parts, err := toHTML(ctx, media)
		if err != nil {
			return err
		}
		return tmpl.ExecuteTemplate(w, "detail", detailData{Item: item, Media: parts[0]})
	})
}

// ProjectNotFound renders the detail fragment for a slug no item derives.
func ProjectNotFound() templ.Component {
	return execute("project-not-found", nil)
}

// DetailError renders the detail fragment when the catalog failed to load.
func DetailError(message string) templ.Component {
	return execute("detail-error", message)
}

// NotFound renders the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return Page(cfg, PageMeta{Title: "Not found | " + cfg.Name, URL: buildURL(cfg.URL), OGType: "website"}, WebsiteJsonLD(cfg), execute("not-found", nil))
}

// ServerError renders the 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	return Page(cfg, PageMeta{Title: "Error | " + cfg.Name, URL: buildURL(cfg.URL), OGType: "website"}, WebsiteJsonLD(cfg), execute("server-error", nil))
}
