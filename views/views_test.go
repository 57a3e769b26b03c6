package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func assertContains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

var site = SiteConfig{Name: "Sara Ramon", URL: "https://example.com", Headline: "Design State Of Mind", Author: "Sara Ramon"}

func TestHomeStartsLoading(t *testing.T) {
	got := renderString(t, Home(site))
	assertContains(t, got,
		"<!DOCTYPE html>",
		"Design State Of Mind",
		`hx-get="/sections/work/"`,
		`hx-get="/sections/about/"`,
		`hx-get="/sections/contact/"`,
		LoadingWork,
		`"@type":"WebSite"`,
		`src="/public/folio.js"`,
	)
}

func TestSectionError(t *testing.T) {
	got := renderString(t, SectionError(SectionWork, "blob store returned 500"))
	assertContains(t, got, `id="work"`, "Error: blob store returned 500")
}

func TestWorkSection(t *testing.T) {
	empty := renderString(t, WorkSection(nil))
	assertContains(t, empty, "No projects yet.")

	got := renderString(t, WorkSection([]templ.Component{templ.Raw("<a data-card>one</a>"), templ.Raw("<a data-card>two</a>")}))
	if n := strings.Count(got, "data-card"); n != 2 {
		t.Errorf("got %d cards, want 2", n)
	}
}

func TestAboutSectionKeepsLineBreaks(t *testing.T) {
	got := renderString(t, AboutSection(content.About{
		Name:     "Sara",
		Role:     "Designer",
		Bio:      "First line\nsecond line\n\nNew <paragraph>",
		Email:    "sara@example.com",
		Location: "Lisbon",
		Skills:   []string{"Branding", "Film"},
	}))
	assertContains(t, got,
		"<p>First line<br/>second line</p>",
		"<p>New &lt;paragraph&gt;</p>",
		`href="mailto:sara@example.com"`,
		"Branding",
		"Lisbon",
	)
}

func TestContactSection(t *testing.T) {
	got := renderString(t, ContactSection(content.Contact{Email: "hi@example.com"}))
	assertContains(t, got, `id="contact"`, "Get in Touch", "hi@example.com")
	if strings.Contains(got, "Location") {
		t.Error("empty location should not render")
	}
}

func TestDetailStates(t *testing.T) {
	item := content.WorkItem{ID: "4", Title: "Mobile Application", Category: "App", Year: "2024", Type: content.KindGallery, Tags: []string{"UX"}}

	shell := renderString(t, WorkPage(site, item.Slug(), content.WorkItem{}))
	assertContains(t, shell, `hx-get="/work/mobile-application/?partial=detail"`, LoadingProject)

	detail := renderString(t, Detail(item, templ.Raw("<div data-carousel></div>")))
	assertContains(t, detail, "Mobile Application", "App", "2024", "data-carousel", "Back to Work")

	missing := renderString(t, ProjectNotFound())
	assertContains(t, missing, "Project not found", "Back to Work")

	failed := renderString(t, DetailError("Failed to fetch work items"))
	assertContains(t, failed, "Error: Failed to fetch work items")
}

func TestCreativeWorkJsonLD(t *testing.T) {
	item := content.WorkItem{Title: "Editorial Design", Year: "2023", ImageURL: "https://img.example/a.jpg", Type: content.KindImage, Tags: []string{"Print", "Type"}}
	got := string(CreativeWorkJsonLD(site, item))
	assertContains(t, got,
		`"@type":"CreativeWork"`,
		`"url":"https://example.com/work/editorial-design/"`,
		`"keywords":"Print, Type"`,
		`"creator":{"@type":"Person","name":"Sara Ramon"}`,
	)
}

func TestErrorPages(t *testing.T) {
	assertContains(t, renderString(t, NotFound(site)), "404", "Not found | Sara Ramon")
	assertContains(t, renderString(t, ServerError(site)), "500")
}
