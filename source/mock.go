package source

import (
	"context"
	"time"

	"github.com/eringen/folio/content"
)

// Default artificial latencies of the mock sources.
const (
	DefaultWorkDelay    = 800 * time.Millisecond
	DefaultProfileDelay = 600 * time.Millisecond
)

// Mock serves an in-memory catalog after an artificial delay. It stands in
// for a remote content store during development and in tests.
type Mock struct {
	Items        []content.WorkItem
	About        content.About
	Contact      content.Contact
	WorkDelay    time.Duration
	ProfileDelay time.Duration
	// Err, when set, is returned by every fetch after the delay.
	Err error
}

// NewMock returns a Mock with the sample catalog and default delays.
func NewMock() *Mock {
	return &Mock{
		Items:        SampleWorkItems(),
		About:        SampleAbout(),
		Contact:      SampleContact(),
		WorkDelay:    DefaultWorkDelay,
		ProfileDelay: DefaultProfileDelay,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ListWorkItems returns a copy of the mock catalog.
func (m *Mock) ListWorkItems(ctx context.Context) ([]content.WorkItem, error) {
	if err := sleep(ctx, m.WorkDelay); err != nil {
		return nil, content.NewSourceError(opFetchWork, "mock", err)
	}
	if m.Err != nil {
		return nil, content.NewSourceError(opFetchWork, "mock", m.Err)
	}
	return checkWorkItems("mock", cloneItems(m.Items))
}

// GetAbout returns the mock biography.
func (m *Mock) GetAbout(ctx context.Context) (content.About, error) {
	if err := sleep(ctx, m.ProfileDelay); err != nil {
		return content.About{}, content.NewSourceError(opFetchAbout, "mock", err)
	}
	if m.Err != nil {
		return content.About{}, content.NewSourceError(opFetchAbout, "mock", m.Err)
	}
	a := m.About
	a.Skills = append([]string(nil), a.Skills...)
	return checkAbout("mock", a)
}

// GetContact returns the mock contact block.
func (m *Mock) GetContact(ctx context.Context) (content.Contact, error) {
	if err := sleep(ctx, m.ProfileDelay); err != nil {
		return content.Contact{}, content.NewSourceError(opFetchContact, "mock", err)
	}
	if m.Err != nil {
		return content.Contact{}, content.NewSourceError(opFetchContact, "mock", m.Err)
	}
	return checkContact("mock", m.Contact)
}

// Set exposes the mock through all three ports.
func (m *Mock) Set() Set {
	return Set{
		Work:    WorkItemFunc(m.ListWorkItems),
		About:   AboutFunc(m.GetAbout),
		Contact: ContactFunc(m.GetContact),
	}
}

// SampleWorkItems returns the demo catalog.
func SampleWorkItems() []content.WorkItem {
	return []content.WorkItem{
		{
			ID:          "1",
			Title:       "Brand Identity System",
			Category:    "Branding",
			Description: "A comprehensive brand identity system for a leading technology startup, including logo design, color palette, typography, and brand guidelines.",
			Year:        "2024",
			Type:        content.KindImage,
			ImageURL:    "https://images.unsplash.com/photo-1558655146-d09347e92766?w=1200&h=800&fit=crop",
			Tags:        []string{"Brand Design", "Identity", "Visual System"},
		},
		{
			ID:          "2",
			Title:       "E-Commerce Platform",
			Category:    "Short Film",
			Description: "A short loop produced for the launch campaign of a modern e-commerce platform, cut for social and in-store screens.",
			Year:        "2024",
			Type:        content.KindVideo,
			VideoURL:    "https://storage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4",
			ImageURL:    "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=1200&h=800&fit=crop",
			Tags:        []string{"Motion", "Editing", "Campaign"},
		},
		{
			ID:          "3",
			Title:       "Editorial Design",
			Category:    "Print",
			Description: "A premium editorial design project featuring minimalist layouts, sophisticated typography, and thoughtful content hierarchy.",
			Year:        "2023",
			Type:        content.KindImage,
			ImageURL:    "https://images.unsplash.com/photo-1499951360447-b19be8fe80f5?w=1200&h=800&fit=crop",
			Tags:        []string{"Editorial", "Typography", "Layout"},
		},
		{
			ID:          "4",
			Title:       "Mobile Application",
			Category:    "Digital Product",
			Description: "Native mobile application design focusing on intuitive interactions, smooth animations, and delightful micro-interactions.",
			Year:        "2023",
			Type:        content.KindGallery,
			GalleryImages: []string{
				"https://images.unsplash.com/photo-1512941937669-90a1b58e7e9c?w=1200&h=800&fit=crop",
				"https://images.unsplash.com/photo-1551650975-87deedd944c3?w=1200&h=800&fit=crop",
				"https://images.unsplash.com/photo-1526498460520-4c246339dccb?w=1200&h=800&fit=crop",
				"https://images.unsplash.com/photo-1555774698-0b77e0d5fac6?w=1200&h=800&fit=crop",
				"https://images.unsplash.com/photo-1522199755839-a2bacb67c546?w=1200&h=800&fit=crop",
			},
			Tags: []string{"Mobile Design", "UX", "Prototyping"},
		},
	}
}

// SampleAbout returns the demo biography.
func SampleAbout() content.About {
	return content.About{
		ID:       "1",
		Name:     "About Sara",
		Role:     "Design student at BAU, College of Arts & Design Barcelona",
		Bio:      "Born in Barcelona, Sara is a multidisciplinary designer, with a passion for crafting engaging visual experiences.\nSpecializing in photography, short film design, and brand identity, with a strong focus on storytelling and visual coherence.\n\nOpen to new projects and eager to explore professional opportunities in design and media.",
		Email:    "hello@example.com",
		Location: "Barcelona, Spain",
		Skills:   []string{"Photography", "Art Direction", "Motion Design", "Brand Identity", "UI/UX Design"},
	}
}

// SampleContact returns the demo contact block.
func SampleContact() content.Contact {
	return content.Contact{Email: "hello@example.com", Location: "Barcelona, Spain"}
}

// SampleCatalog returns the demo catalog as a single document.
func SampleCatalog() content.Catalog {
	about, contact := SampleAbout(), SampleContact()
	return content.Catalog{Works: SampleWorkItems(), About: &about, Contact: &contact}
}
