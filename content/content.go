// Package content holds the portfolio entities, their validation rules and the
// slug used to address a work item.
package content

// Kind tags the media payload a WorkItem carries.
type Kind string

const (
	KindImage   Kind = "image"
	KindVideo   Kind = "video"
	KindGallery Kind = "gallery"
)

// WorkItem is a single portfolio piece. Exactly one payload is populated,
// selected by Type: ImageURL for images, VideoURL (plus an optional ImageURL
// poster) for videos and GalleryImages for galleries.
type WorkItem struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	Category      string   `json:"category" yaml:"category"`
	Description   string   `json:"description" yaml:"description"`
	Year          string   `json:"year" yaml:"year"`
	Type          Kind     `json:"type" yaml:"type"`
	Tags          []string `json:"tags" yaml:"tags"`
	ImageURL      string   `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	VideoURL      string   `json:"videoUrl,omitempty" yaml:"videoUrl,omitempty"`
	GalleryImages []string `json:"galleryImages,omitempty" yaml:"galleryImages,omitempty"`
}

// Slug returns the address of the item's detail page.
func (w WorkItem) Slug() string {
	return Slug(w.Title)
}

// Link returns the site-relative path of the item's detail page.
func (w WorkItem) Link() string {
	return "/work/" + w.Slug() + "/"
}

// Thumbnail returns the image shown for the item in listings, if any.
func (w WorkItem) Thumbnail() string {
	if w.Type == KindGallery && len(w.GalleryImages) > 0 {
		return w.GalleryImages[0]
	}
	return w.ImageURL
}

// About is the biography block.
type About struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Role     string   `json:"role" yaml:"role"`
	Bio      string   `json:"bio" yaml:"bio"`
	Email    string   `json:"email" yaml:"email"`
	Location string   `json:"location" yaml:"location"`
	Skills   []string `json:"skills" yaml:"skills"`
}

// Contact is the contact block.
type Contact struct {
	Email    string `json:"email" yaml:"email"`
	Location string `json:"location" yaml:"location"`
}

// Catalog is the document format shared by file-backed sources and the
// import command.
type Catalog struct {
	Works   []WorkItem `json:"works" yaml:"works"`
	About   *About     `json:"about,omitempty" yaml:"about,omitempty"`
	Contact *Contact   `json:"contact,omitempty" yaml:"contact,omitempty"`
}

// FindBySlug returns the item whose title derives slug.
func FindBySlug(items []WorkItem, slug string) (WorkItem, bool) {
	for _, it := range items {
		if it.Slug() == slug {
			return it, true
		}
	}
	return WorkItem{}, false
}
