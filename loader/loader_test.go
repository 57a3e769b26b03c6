package loader

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/source"
)

// recorder collects every status a controller publishes.
type recorder[T any] struct {
	mu     sync.Mutex
	states []State[T]
}

func (r *recorder[T]) observe(s State[T]) {
	r.mu.Lock()
	r.states = append(r.states, s)
	r.mu.Unlock()
}

func (r *recorder[T]) statuses() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Status, len(r.states))
	for i, s := range r.states {
		out[i] = s.Status
	}
	return out
}

func (r *recorder[T]) last() State[T] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[len(r.states)-1]
}

func waitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestControllerResolves(t *testing.T) {
	c := New[int]()
	rec := &recorder[int]{}
	c.Subscribe(rec.observe)

	c.Start(context.Background(), func(context.Context) (int, error) { return 42, nil })
	st := c.Wait(waitCtx(t))

	require.Equal(t, Ready, st.Status)
	assert.Equal(t, 42, st.Data)
	assert.Empty(t, st.Err)
	assert.Equal(t, []Status{Loading, Ready}, rec.statuses())
}

func TestControllerRejects(t *testing.T) {
	c := New[int]()
	rec := &recorder[int]{}
	c.Subscribe(rec.observe)

	srcErr := content.NewSourceError("fetch work items", "test", errors.New("connection refused"))
	c.Start(context.Background(), func(context.Context) (int, error) { return 0, srcErr })
	st := c.Wait(waitCtx(t))

	require.Equal(t, Failed, st.Status)
	assert.Equal(t, srcErr.Error(), st.Err)
	assert.Zero(t, st.Data)
	assert.Equal(t, []Status{Loading, Failed}, rec.statuses())
}

func TestControllerPanicBecomesFailure(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"error value", errors.New("boom"), "boom"},
		{"non-error value", "boom", WorkItemsMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New[int](WithFallback(WorkItemsMessage))
			c.Start(context.Background(), func(context.Context) (int, error) { panic(tt.value) })
			st := c.Wait(waitCtx(t))
			require.Equal(t, Failed, st.Status)
			assert.Equal(t, tt.want, st.Err)
		})
	}
}

func TestControllerEmptyMessageUsesFallback(t *testing.T) {
	c := New[int]()
	c.Start(context.Background(), func(context.Context) (int, error) { return 0, errors.New("") })
	st := c.Wait(waitCtx(t))
	require.Equal(t, Failed, st.Status)
	assert.Equal(t, DefaultMessage, st.Err)
}

func TestControllerCloseBeforeSettle(t *testing.T) {
	c := New[int]()
	rec := &recorder[int]{}
	c.Subscribe(rec.observe)

	release := make(chan struct{})
	finished := make(chan struct{})
	c.Start(context.Background(), func(context.Context) (int, error) {
		defer close(finished)
		<-release
		// Ignores cancellation on purpose: the controller must still drop it.
		return 7, nil
	})

	c.Close()
	close(release)
	<-finished
	// Give the run goroutine a chance to reach the commit check.
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, []Status{Loading}, rec.statuses())
	assert.Equal(t, Loading, c.State().Status)
}

func TestControllerScopeCancelled(t *testing.T) {
	c := New[int]()
	rec := &recorder[int]{}
	c.Subscribe(rec.observe)

	scope, cancel := context.WithCancel(context.Background())
	c.Start(scope, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	cancel()
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, []Status{Loading}, rec.statuses())
}

func TestControllerRestartDiscardsSuperseded(t *testing.T) {
	c := New[string]()
	rec := &recorder[string]{}
	c.Subscribe(rec.observe)

	slow := make(chan struct{})
	c.Start(context.Background(), func(ctx context.Context) (string, error) {
		<-slow
		return "old", nil
	})
	c.Start(context.Background(), func(context.Context) (string, error) { return "new", nil })
	st := c.Wait(waitCtx(t))
	close(slow)
	time.Sleep(20 * time.Millisecond)

	require.Equal(t, Ready, st.Status)
	assert.Equal(t, "new", c.State().Data)
	assert.Equal(t, []Status{Loading, Ready}, rec.statuses())
}

func TestControllerRestartAfterSettle(t *testing.T) {
	c := New[string]()
	rec := &recorder[string]{}
	c.Subscribe(rec.observe)

	c.Start(context.Background(), func(context.Context) (string, error) { return "", errors.New("first source down") })
	c.Wait(waitCtx(t))
	c.Start(context.Background(), func(context.Context) (string, error) { return "second", nil })
	st := c.Wait(waitCtx(t))

	require.Equal(t, Ready, st.Status)
	assert.Equal(t, "second", st.Data)
	assert.Equal(t, []Status{Loading, Failed, Loading, Ready}, rec.statuses())
}

func TestControllerCloseReleasesWait(t *testing.T) {
	c := New[int]()
	c.Start(context.Background(), func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	go func() {
		time.Sleep(10 * time.Millisecond)
		c.Close()
	}()
	st := c.Wait(waitCtx(t))
	assert.Equal(t, Loading, st.Status)

	// Start after Close is a no-op.
	c.Start(context.Background(), func(context.Context) (int, error) { return 1, nil })
	assert.Equal(t, Loading, c.State().Status)
}

func TestControllerUnsubscribe(t *testing.T) {
	c := New[int]()
	rec := &recorder[int]{}
	unsubscribe := c.Subscribe(rec.observe)
	unsubscribe()

	c.Start(context.Background(), func(context.Context) (int, error) { return 1, nil })
	c.Wait(waitCtx(t))

	assert.Equal(t, []Status{Loading}, rec.statuses())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "Status(9)", Status(9).String())
}

func TestTypedConstructors(t *testing.T) {
	m := source.NewMock()
	m.WorkDelay, m.ProfileDelay = 0, 0
	set := m.Set()
	ctx := waitCtx(t)

	works := WorkItems(ctx, set.Work)
	defer works.Close()
	ws := works.Wait(ctx)
	require.Equal(t, Ready, ws.Status)
	assert.Len(t, ws.Data, 4)

	about := About(ctx, set.About)
	defer about.Close()
	as := about.Wait(ctx)
	require.Equal(t, Ready, as.Status)
	assert.NotEmpty(t, as.Data.Name)

	contact := Contact(ctx, set.Contact)
	defer contact.Close()
	cs := contact.Wait(ctx)
	require.Equal(t, Ready, cs.Status)
	assert.NotEmpty(t, cs.Data.Email)
}

func TestTypedConstructorFailure(t *testing.T) {
	m := source.NewMock()
	m.WorkDelay, m.ProfileDelay = 0, 0
	m.Err = errors.New("network unreachable")
	ctx := waitCtx(t)

	c := WorkItems(ctx, m.Set().Work)
	defer c.Close()
	st := c.Wait(ctx)
	require.Equal(t, Failed, st.Status)
	assert.Contains(t, st.Err, "network unreachable")
}

func TestRun(t *testing.T) {
	st := Run(waitCtx(t), func(context.Context) (int, error) { return 3, nil })
	require.Equal(t, Ready, st.Status)
	assert.Equal(t, 3, st.Data)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	st = Run(ctx, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	assert.Equal(t, Loading, st.Status)
}
