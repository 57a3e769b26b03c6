package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var five = []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"}

type recorder struct{ srcs []string }

func (r *recorder) Prefetch(src string) { r.srcs = append(r.srcs, src) }

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestWrapAround(t *testing.T) {
	c, err := New(five)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Index())

	c.Prev()
	assert.Equal(t, 4, c.Index())
	c.Next()
	assert.Equal(t, 0, c.Index())

	require.NoError(t, c.GoTo(4))
	c.Next()
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, "a.jpg", c.Current())
}

func TestGoToOutOfRange(t *testing.T) {
	c, err := New(five)
	require.NoError(t, err)
	assert.Error(t, c.GoTo(5))
	assert.Error(t, c.GoTo(-1))
	assert.Equal(t, 0, c.Index())
}

func TestWithIndexNormalizes(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0}, {3, 3}, {5, 0}, {7, 2}, {-1, 4}, {-6, 4},
	}
	for _, tt := range tests {
		c, err := New(five, WithIndex(tt.in))
		require.NoError(t, err)
		assert.Equal(t, tt.want, c.Index(), "index %d", tt.in)
	}
}

func TestKeysOnlyInFullscreen(t *testing.T) {
	c, err := New(five)
	require.NoError(t, err)

	assert.False(t, c.HandleKey(KeyRight))
	assert.Equal(t, 0, c.Index())

	c.EnterFullscreen()
	assert.True(t, c.HandleKey(KeyRight))
	assert.Equal(t, 1, c.Index())
	assert.True(t, c.HandleKey(KeyLeft))
	assert.True(t, c.HandleKey(KeyLeft))
	assert.Equal(t, 4, c.Index())
	assert.False(t, c.HandleKey("Enter"))

	assert.True(t, c.HandleKey(KeyEscape))
	assert.False(t, c.Fullscreen())
	assert.False(t, c.ScrollLocked())
}

func TestScrollLock(t *testing.T) {
	var events []bool
	c, err := New(five, OnScrollLock(func(on bool) { events = append(events, on) }))
	require.NoError(t, err)
	assert.False(t, c.ScrollLocked())

	c.ToggleFullscreen()
	assert.True(t, c.Fullscreen())
	assert.True(t, c.ScrollLocked())

	c.ToggleFullscreen()
	assert.False(t, c.ScrollLocked())

	c.EnterFullscreen()
	c.Close()
	assert.False(t, c.ScrollLocked())

	assert.Equal(t, []bool{true, false, true, false}, events)
}

func TestRestoredFullscreenLocks(t *testing.T) {
	c, err := New(five, WithFullscreen(true))
	require.NoError(t, err)
	assert.True(t, c.ScrollLocked())
}

func TestPrefetchNeighbours(t *testing.T) {
	rec := &recorder{}
	c, err := New(five, WithPrefetcher(rec))
	require.NoError(t, err)
	// Index 0 is loaded; its neighbours 4 and 1 are fetched.
	assert.Equal(t, []string{"e.jpg", "b.jpg"}, rec.srcs)

	c.Next()
	assert.Equal(t, []string{"e.jpg", "b.jpg", "c.jpg"}, rec.srcs)

	c.Prev()
	c.Prev()
	assert.Equal(t, []string{"e.jpg", "b.jpg", "c.jpg", "d.jpg"}, rec.srcs)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, c.LoadedIndices())

	c.Next()
	assert.Len(t, rec.srcs, 4)
}

func TestPrefetchSkipsLoaded(t *testing.T) {
	rec := &recorder{}
	_, err := New(five, WithIndex(2), WithLoaded(1, 2, 3), WithPrefetcher(rec))
	require.NoError(t, err)
	assert.Empty(t, rec.srcs)
}

func TestPrefetchFunc(t *testing.T) {
	var got []string
	c, err := New([]string{"x", "y"}, WithPrefetcher(PrefetchFunc(func(src string) { got = append(got, src) })))
	require.NoError(t, err)
	c.Next()
	assert.Equal(t, []string{"y"}, got)
	assert.True(t, c.Loaded(1))
}

func TestDisplay(t *testing.T) {
	one, _ := New([]string{"a"})
	assert.False(t, one.ShowDots())
	assert.Equal(t, "1 / 1", one.Counter())

	c, _ := New(five, WithIndex(2))
	assert.True(t, c.ShowDots())
	assert.Equal(t, "3 / 5", c.Counter())
	assert.Equal(t, 1, c.PrevIndex())
	assert.Equal(t, 3, c.NextIndex())

	many := make([]string, MaxDots+1)
	for i := range many {
		many[i] = "img"
	}
	big, _ := New(many)
	assert.False(t, big.ShowDots())

	ten, _ := New(many[:MaxDots])
	assert.True(t, ten.ShowDots())
}
