package gallery

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreIgnoresStaleSeed(t *testing.T) {
	t.Parallel()

	store := NewStore(0, 0)
	snapshot := Modal{IsOpen: true, Rev: 3}

	m, changed := store.Update("visitor", snapshot, func(m *Modal) bool { return m.HandleKey(KeyClose, 4) })
	require.True(t, changed)
	require.False(t, m.IsOpen)
	require.Equal(t, uint64(4), m.Rev)

	// a second request still carrying the open snapshot must not reopen the modal
	m, changed = store.Update("visitor", snapshot, func(m *Modal) bool { return m.HandleKey(KeyNext, 4) })
	require.False(t, changed)
	require.False(t, m.IsOpen)
	require.Equal(t, uint64(4), m.Rev)
	require.False(t, store.Load("visitor", snapshot).IsOpen)
}

func TestStoreSeedsUnknownSessions(t *testing.T) {
	t.Parallel()

	store := NewStore(2, 0)
	seed := Modal{IsOpen: true, Selected: 2, Rev: 9}
	require.Equal(t, seed, store.Load("fresh", seed))

	m, changed := store.Update("fresh", seed, func(*Modal) bool { return false })
	require.False(t, changed)
	require.Equal(t, seed, m)
	require.Equal(t, 1, store.Len())

	// without a session id nothing is remembered
	m, changed = store.Update("", seed, func(m *Modal) bool { return m.Next(4) })
	require.True(t, changed)
	require.Equal(t, 3, m.Selected)
	require.Equal(t, 1, store.Len())
}

func TestStoreSerialisesUpdates(t *testing.T) {
	t.Parallel()

	list := makeList(5)
	store := NewStore(0, 0)
	var open Modal
	open.Open()

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Update("visitor", open, func(m *Modal) bool { return m.Next(len(list)) })
		}()
	}
	wg.Wait()

	m := store.Load("visitor", Modal{})
	require.Equal(t, uint64(40), m.Rev)
	require.Equal(t, 40%len(list), m.Selected)
}

func TestStoreReturnsCopies(t *testing.T) {
	t.Parallel()

	list := makeList(3)
	store := NewStore(0, 0)
	var open Modal
	open.Open()

	m, _ := store.Update("visitor", open, func(m *Modal) bool { return m.ReportThumbFailure(list[1].Src, list) })
	require.Len(t, m.Failed, 1)
	m.Failed[0] = "/media/img/other.jpg"

	require.True(t, store.Load("visitor", Modal{}).HasFailed(list[1].Src))
}
