package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/JeffMenca/pitstop-manager/internal/event"
	"github.com/JeffMenca/pitstop-manager/internal/model"
)

func drainEvents(ch <-chan event.Event) []event.Event {
	var out []event.Event
	for {
		select {
		case e := <-ch:
			out = append(out, e)
		default:
			return out
		}
	}
}

func TestStore(t *testing.T) {
	t.Parallel()

	t.Run("empty store reports anonymous", func(t *testing.T) {
		store := NewStore(NewMemoryStorage(), event.NewBus())

		_, ok := store.Token()
		require.False(t, ok)
		require.Equal(t, model.StageAnonymous, store.Stage())
	})

	t.Run("empty token is a no-op", func(t *testing.T) {
		store := NewStore(NewMemoryStorage(), event.NewBus())
		store.SetToken("t1")
		store.SetToken("")

		tok, ok := store.Token()
		require.True(t, ok)
		require.Equal(t, "t1", tok)
	})

	t.Run("set stage notifies once", func(t *testing.T) {
		bus := event.NewBus()
		store := NewStore(NewMemoryStorage(), bus)
		events, unsubscribe := bus.Subscribe()
		defer unsubscribe()

		store.SetStage(model.StagePendingMFA)

		got := drainEvents(events)
		require.Len(t, got, 1)
		require.Equal(t, event.TypeStageChanged, got[0].Type)
		require.Equal(t, string(model.StagePendingMFA), got[0].Stage)
	})

	t.Run("transition writes token and stage under one event", func(t *testing.T) {
		bus := event.NewBus()
		store := NewStore(NewMemoryStorage(), bus)
		events, unsubscribe := bus.Subscribe()
		defer unsubscribe()

		store.Transition(model.StageFull, "issued-token")

		tok, ok := store.Token()
		require.True(t, ok)
		require.Equal(t, "issued-token", tok)
		require.Equal(t, model.StageFull, store.Stage())
		require.Len(t, drainEvents(events), 1)
	})

	t.Run("transition without token keeps the previous one", func(t *testing.T) {
		store := NewStore(NewMemoryStorage(), event.NewBus())
		store.SetToken("provisional")
		store.Transition(model.StageFull, "")

		tok, ok := store.Token()
		require.True(t, ok)
		require.Equal(t, "provisional", tok)
	})

	t.Run("clear auth drops everything and notifies", func(t *testing.T) {
		bus := event.NewBus()
		store := NewStore(NewMemoryStorage(), bus)
		store.Transition(model.StageFull, "t1")

		events, unsubscribe := bus.Subscribe()
		defer unsubscribe()

		store.ClearAuth()

		_, ok := store.Token()
		require.False(t, ok)
		require.Equal(t, model.StageAnonymous, store.Stage())

		got := drainEvents(events)
		require.Len(t, got, 1)
		require.Equal(t, event.TypeSessionCleared, got[0].Type)
	})

	t.Run("unknown stored stage degrades to anonymous", func(t *testing.T) {
		storage := NewMemoryStorage()
		storage.Set("pitstop_auth_stage", "banana")

		store := NewStore(storage, event.NewBus())
		require.Equal(t, model.StageAnonymous, store.Stage())
	})
}

func TestFileStorage(t *testing.T) {
	t.Parallel()

	t.Run("persists across handles", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")

		first, err := NewFileStorage(path)
		require.NoError(t, err)
		first.Set("k", "v")

		second, err := NewFileStorage(path)
		require.NoError(t, err)

		v, ok := second.Get("k")
		require.True(t, ok)
		require.Equal(t, "v", v)
	})

	t.Run("close removes the backing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "session.json")

		storage, err := NewFileStorage(path)
		require.NoError(t, err)
		storage.Set("k", "v")
		require.NoError(t, storage.Close())

		reopened, err := NewFileStorage(path)
		require.NoError(t, err)
		_, ok := reopened.Get("k")
		require.False(t, ok)
	})
}

func TestChangeListener(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")

	// Two handles on the same file stand in for two tabs of the same origin.
	tabA, err := NewFileStorage(path)
	require.NoError(t, err)
	tabB, err := NewFileStorage(path)
	require.NoError(t, err)

	busB := event.NewBus()
	events, unsubscribe := busB.Subscribe()
	defer unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go NewChangeListener(tabB, busB, 10*time.Millisecond).Run(ctx)

	// Give the listener a moment to take its baseline before tab A writes.
	time.Sleep(50 * time.Millisecond)
	storeA := NewStore(tabA, event.NewBus())
	storeA.Transition(model.StageFull, "shared-token")

	select {
	case e := <-events:
		require.Equal(t, event.TypeStorageChanged, e.Type)
		require.Equal(t, string(model.StageFull), e.Stage)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a storage change event from the sibling tab")
	}

	storeB := NewStore(tabB, busB)
	tok, ok := storeB.Token()
	require.True(t, ok)
	require.Equal(t, "shared-token", tok)
	require.Equal(t, model.StageFull, storeB.Stage())
}
