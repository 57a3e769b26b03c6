// Package source defines the repository ports the site reads its content
// through, plus the adapters that satisfy them.
//
// Every adapter validates what it returns: a fetch either yields a
// well-formed result or fails with a *content.SourceError. Adapters hold no
// per-call state and never cache, so a single instance may serve any number
// of concurrent fetches.
package source

import (
	"context"

	"github.com/eringen/folio/content"
)

// WorkItemSource fetches the full work catalog.
type WorkItemSource interface {
	FetchAll(ctx context.Context) ([]content.WorkItem, error)
}

// AboutSource fetches the biography block.
type AboutSource interface {
	FetchOne(ctx context.Context) (content.About, error)
}

// ContactSource fetches the contact block.
type ContactSource interface {
	FetchOne(ctx context.Context) (content.Contact, error)
}

// WorkItemFunc adapts a function to WorkItemSource.
type WorkItemFunc func(ctx context.Context) ([]content.WorkItem, error)

func (f WorkItemFunc) FetchAll(ctx context.Context) ([]content.WorkItem, error) { return f(ctx) }

// AboutFunc adapts a function to AboutSource.
type AboutFunc func(ctx context.Context) (content.About, error)

func (f AboutFunc) FetchOne(ctx context.Context) (content.About, error) { return f(ctx) }

// ContactFunc adapts a function to ContactSource.
type ContactFunc func(ctx context.Context) (content.Contact, error)

func (f ContactFunc) FetchOne(ctx context.Context) (content.Contact, error) { return f(ctx) }

// Set bundles one source per port.
type Set struct {
	Work    WorkItemSource
	About   AboutSource
	Contact ContactSource
}

const (
	opFetchWork    = "fetch work items"
	opFetchAbout   = "fetch about content"
	opFetchContact = "fetch contact details"
)

// checkWorkItems validates a fetched catalog and wraps any failure for op.
func checkWorkItems(name string, items []content.WorkItem) ([]content.WorkItem, error) {
	if err := content.ValidateWorkItems(items); err != nil {
		return nil, content.NewSourceError(opFetchWork, name, err)
	}
	if items == nil {
		items = []content.WorkItem{}
	}
	return items, nil
}

func checkAbout(name string, a content.About) (content.About, error) {
	if err := content.ValidateAbout(a); err != nil {
		return content.About{}, content.NewSourceError(opFetchAbout, name, err)
	}
	return a, nil
}

func checkContact(name string, c content.Contact) (content.Contact, error) {
	if err := content.ValidateContact(c); err != nil {
		return content.Contact{}, content.NewSourceError(opFetchContact, name, err)
	}
	return c, nil
}

// cloneItems deep-copies items so callers never share slices with a source.
func cloneItems(items []content.WorkItem) []content.WorkItem {
	out := make([]content.WorkItem, len(items))
	for i, it := range items {
		if it.Tags != nil {
			it.Tags = append([]string{}, it.Tags...)
		}
		it.GalleryImages = append([]string(nil), it.GalleryImages...)
		out[i] = it
	}
	return out
}
