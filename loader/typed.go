package loader

import (
	"context"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/source"
)

// Fallback messages for failures that carry no message of their own.
const (
	WorkItemsMessage = "Failed to fetch work items"
	AboutMessage     = "Failed to fetch about content"
	ContactMessage   = "Failed to fetch contact details"
)

// WorkItems starts fetching the catalog from src, bound to scope.
func WorkItems(scope context.Context, src source.WorkItemSource) *Controller[[]content.WorkItem] {
	c := New[[]content.WorkItem](WithFallback(WorkItemsMessage))
	c.Start(scope, src.FetchAll)
	return c
}

// About starts fetching the biography from src, bound to scope.
func About(scope context.Context, src source.AboutSource) *Controller[content.About] {
	c := New[content.About](WithFallback(AboutMessage))
	c.Start(scope, src.FetchOne)
	return c
}

// Contact starts fetching the contact block from src, bound to scope.
func Contact(scope context.Context, src source.ContactSource) *Controller[content.Contact] {
	c := New[content.Contact](WithFallback(ContactMessage))
	c.Start(scope, src.FetchOne)
	return c
}

// Run starts fetch and blocks until it settles or ctx is done. The
// controller is closed before Run returns, so a fetch still running when ctx
// ends never publishes.
func Run[T any](ctx context.Context, fetch Fetch[T], opts ...Option) State[T] {
	c := New[T](opts...)
	c.Start(ctx, fetch)
	defer c.Close()
	return c.Wait(ctx)
}
