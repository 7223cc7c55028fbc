package observer

import (
	"context"
	"time"

	"github.com/JeffMenca/pitstop-manager/internal/event"
	"github.com/JeffMenca/pitstop-manager/internal/model"
	"github.com/JeffMenca/pitstop-manager/internal/session"
	"github.com/JeffMenca/pitstop-manager/internal/token"
)

const defaultPollInterval = 30 * time.Second

// Observer exposes the derived session snapshot and keeps watchers current.
// The snapshot is recomputed on demand, on every bus event, and on a slow
// poll that exists only to catch passive token expiry, the one change no
// event announces.
type Observer struct {
	store    *session.Store
	bus      event.Bus
	interval time.Duration
}

func New(store *session.Store, bus event.Bus, interval time.Duration) *Observer {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Observer{store: store, bus: bus, interval: interval}
}

// Snapshot derives the current session view. It is nil unless the stage is
// fully_authenticated and the stored token decodes without being expired;
// "never logged in" and "expired" deliberately look the same to consumers.
func (o *Observer) Snapshot() *model.SessionSnapshot {
	if o.store.Stage() != model.StageFull {
		return nil
	}

	raw, ok := o.store.Token()
	if !ok {
		return nil
	}

	result := token.Decode(raw)
	if result.Status != token.StatusValid {
		return nil
	}

	return &model.SessionSnapshot{
		UserID:    result.Claims.UserID,
		Username:  result.Claims.Username,
		RoleName:  result.Claims.RoleName,
		ExpiresAt: result.Claims.ExpiresAt,
	}
}

// Status classifies the session for diagnostics, distinguishing the cases
// Snapshot collapses to nil.
func (o *Observer) Status() token.Status {
	raw, ok := o.store.Token()
	if !ok {
		return token.StatusNoToken
	}
	return token.Decode(raw).Status
}

// Watch emits the snapshot immediately, then again on every session change
// and on each poll tick. The channel closes when ctx is canceled; the poller
// and bus subscription are torn down with it, so watchers never leak timers
// across session lifetimes.
func (o *Observer) Watch(ctx context.Context) <-chan *model.SessionSnapshot {
	out := make(chan *model.SessionSnapshot, 1)
	events, unsubscribe := o.bus.Subscribe()

	go func() {
		defer close(out)
		defer unsubscribe()

		ticker := time.NewTicker(o.interval)
		defer ticker.Stop()

		emit := func() {
			select {
			case out <- o.Snapshot():
			case <-ctx.Done():
			}
		}

		emit()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				emit()
			case <-ticker.C:
				emit()
			}
		}
	}()

	return out
}
