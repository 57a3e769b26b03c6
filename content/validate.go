package content

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// PayloadCheck validates the type-conditional fields of an item. It returns
// the offending field name and a reason, or "" when the payload is valid.
type PayloadCheck func(WorkItem) (field, reason string)

var kinds = struct {
	sync.RWMutex
	checks map[Kind]PayloadCheck
}{checks: map[Kind]PayloadCheck{
	KindImage:   checkImage,
	KindVideo:   checkVideo,
	KindGallery: checkGallery,
}}

// RegisterKind adds a kind to the set accepted by validation. New kinds also
// need a card and a detail renderer registered with the render package;
// without them lookups fail with an UnsupportedTypeError. Registering a
// built-in kind replaces its check.
func RegisterKind(k Kind, check PayloadCheck) {
	kinds.Lock()
	kinds.checks[k] = check
	kinds.Unlock()
}

// UnregisterKind removes a kind added with RegisterKind. Built-in kinds
// cannot be removed.
func UnregisterKind(k Kind) {
	for _, b := range BuiltinKinds() {
		if b == k {
			return
		}
	}
	kinds.Lock()
	delete(kinds.checks, k)
	kinds.Unlock()
}

// Kinds returns every kind accepted by validation, sorted.
func Kinds() []Kind {
	kinds.RLock()
	defer kinds.RUnlock()
	out := make([]Kind, 0, len(kinds.checks))
	for k := range kinds.checks {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BuiltinKinds returns the kinds with a built-in Media payload.
func BuiltinKinds() []Kind {
	return []Kind{KindImage, KindVideo, KindGallery}
}

func checkImage(w WorkItem) (string, string) {
	if strings.TrimSpace(w.ImageURL) == "" {
		return "imageUrl", "is required for image items"
	}
	return "", ""
}

func checkVideo(w WorkItem) (string, string) {
	if strings.TrimSpace(w.VideoURL) == "" {
		return "videoUrl", "is required for video items"
	}
	return "", ""
}

func checkGallery(w WorkItem) (string, string) {
	if len(w.GalleryImages) == 0 {
		return "galleryImages", "must contain at least one image"
	}
	for i, img := range w.GalleryImages {
		if strings.TrimSpace(img) == "" {
			return "galleryImages", fmt.Sprintf("has an empty entry at %d", i)
		}
	}
	return "", ""
}

// Validate checks a single item: the base fields and the payload required by
// its type. index is reported in the returned error.
func Validate(w WorkItem, index int) error {
	invalid := func(field, reason string) error {
		return &ValidationError{Index: index, ID: w.ID, Field: field, Reason: reason}
	}
	if strings.TrimSpace(w.ID) == "" {
		return invalid("id", "is required")
	}
	if strings.TrimSpace(w.Title) == "" {
		return invalid("title", "is required")
	}
	if w.Type == "" {
		return invalid("type", "is required")
	}
	for _, f := range []struct{ name, val string }{
		{"category", w.Category},
		{"description", w.Description},
		{"year", w.Year},
	} {
		if strings.TrimSpace(f.val) == "" {
			return invalid(f.name, "is required")
		}
	}
	if w.Tags == nil {
		return invalid("tags", "is required")
	}
	kinds.RLock()
	check, ok := kinds.checks[w.Type]
	kinds.RUnlock()
	if !ok {
		return invalid("type", fmt.Sprintf("%q is not a known kind", w.Type))
	}
	for i, tag := range w.Tags {
		if strings.TrimSpace(tag) == "" {
			return invalid("tags", fmt.Sprintf("has an empty entry at %d", i))
		}
	}
	if field, reason := check(w); field != "" {
		return invalid(field, reason)
	}
	return nil
}

// ValidateWorkItems validates every item and the catalog-wide identity rules:
// ids and slugs must be unique. The first violation is returned.
func ValidateWorkItems(items []WorkItem) error {
	ids := make(map[string]int, len(items))
	slugs := make(map[string]int, len(items))
	for i, it := range items {
		if err := Validate(it, i); err != nil {
			return err
		}
		if prev, dup := ids[it.ID]; dup {
			return &ValidationError{Index: i, ID: it.ID, Field: "id", Reason: fmt.Sprintf("duplicates item at index %d", prev)}
		}
		ids[it.ID] = i
		slug := it.Slug()
		if prev, dup := slugs[slug]; dup {
			return &ValidationError{Index: i, ID: it.ID, Field: "title", Reason: fmt.Sprintf("slug %q duplicates item at index %d", slug, prev)}
		}
		slugs[slug] = i
	}
	return nil
}

// ValidateAbout checks the biography block.
func ValidateAbout(a About) error {
	if strings.TrimSpace(a.Name) == "" {
		return &ValidationError{Index: -1, Field: "about.name", Reason: "is required"}
	}
	if strings.TrimSpace(a.Bio) == "" {
		return &ValidationError{Index: -1, Field: "about.bio", Reason: "is required"}
	}
	return nil
}

// ValidateContact checks the contact block.
func ValidateContact(c Contact) error {
	if strings.TrimSpace(c.Email) == "" && strings.TrimSpace(c.Location) == "" {
		return &ValidationError{Index: -1, Field: "contact", Reason: "needs an email or a location"}
	}
	return nil
}

// ValidateCatalog validates every present section of a catalog document.
func ValidateCatalog(c Catalog) error {
	if err := ValidateWorkItems(c.Works); err != nil {
		return err
	}
	if c.About != nil {
		if err := ValidateAbout(*c.About); err != nil {
			return err
		}
	}
	if c.Contact != nil {
		if err := ValidateContact(*c.Contact); err != nil {
			return err
		}
	}
	return nil
}
