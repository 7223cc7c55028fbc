package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JeffMenca/pitstop-manager/internal/event"
)

// ChangeListener is the cross-tab half of the session change notifier: it
// watches the shared storage substrate for writes made by sibling processes
// and republishes them on the local bus, so subscribers never need to care
// which side of the process boundary a change came from.
type ChangeListener struct {
	storage  Storage
	bus      event.Bus
	interval time.Duration

	lastToken string
	lastStage string
}

func NewChangeListener(storage Storage, bus event.Bus, interval time.Duration) *ChangeListener {
	if interval <= 0 {
		interval = time.Second
	}
	return &ChangeListener{storage: storage, bus: bus, interval: interval}
}

// Run polls until ctx is canceled. Local writes also show up here; that is
// harmless because observers re-derive state on every event, but publishing
// only on actual value changes keeps the bus quiet.
func (l *ChangeListener) Run(ctx context.Context) {
	l.lastToken, _ = l.storage.Get(tokenKey)
	l.lastStage, _ = l.storage.Get(stageKey)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.check()
		}
	}
}

func (l *ChangeListener) check() {
	token, _ := l.storage.Get(tokenKey)
	stage, _ := l.storage.Get(stageKey)

	if token == l.lastToken && stage == l.lastStage {
		return
	}

	l.lastToken = token
	l.lastStage = stage
	l.bus.Publish(event.Event{
		ID:        uuid.NewString(),
		Type:      event.TypeStorageChanged,
		Stage:     stage,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	})
}
