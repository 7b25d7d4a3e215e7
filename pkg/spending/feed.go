package spending

import (
	"context"

	"github.com/69GliTcH/SimpliFin/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// Snapshot is one delivery of the live record feed: either the complete
// current record list or a terminal error. On error the Records slice is
// empty; subscribers should treat it as the new state, not keep stale data.
type Snapshot struct {
	Records []Record
	Err     error
}

// SnapshotFeed pushes full record snapshots to subscribers whenever a user's
// records change. Delivery is last-write-wins: a slow consumer only ever sees
// the most recent snapshot, intermediate ones are displaced.
type SnapshotFeed struct {
	repo Repository
	bus  *event_bus.EventBus
}

func NewSnapshotFeed(repo Repository, bus *event_bus.EventBus) *SnapshotFeed {
	return &SnapshotFeed{repo: repo, bus: bus}
}

// Subscribe starts a snapshot stream for the given user. The current snapshot
// is delivered immediately, then a fresh one after every record mutation. The
// returned function stops the stream; the stream also stops when ctx is done.
func (f *SnapshotFeed) Subscribe(ctx context.Context, userId int) (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	push := func(snapshot Snapshot) {
		for {
			select {
			case ch <- snapshot:
				return
			default:
			}
			// displace the undelivered snapshot, then retry
			select {
			case <-ch:
			default:
			}
		}
	}

	push(f.load(ctx, userId))

	unsubscribeChanged := event_bus.SubscribeTyped[event_bus.SpendingChanged](f.bus, event_bus.SpendingChangedEvent,
		func(e event_bus.EventT[event_bus.SpendingChanged]) error {
			if e.Data.UserId != userId {
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			push(f.load(ctx, userId))
			return nil
		})

	// When the user is deleted the stream is no longer authorized; deliver a
	// terminal permission-denied snapshot so consumers clear their state.
	unsubscribeDeleted := event_bus.SubscribeTyped[event_bus.UserDeleted](f.bus, event_bus.UserDeletedEvent,
		func(e event_bus.EventT[event_bus.UserDeleted]) error {
			if e.Data.UserId != userId || ctx.Err() != nil {
				return nil
			}
			push(Snapshot{Records: []Record{}, Err: ErrPermissionDenied})
			return nil
		})

	// A mutation committed while the first load ran published its event
	// before the subscriptions above existed. Load once more now that they
	// do; if nothing changed the duplicate just displaces an equal snapshot.
	push(f.load(ctx, userId))

	return ch, func() {
		unsubscribeChanged()
		unsubscribeDeleted()
	}
}

func (f *SnapshotFeed) load(ctx context.Context, userId int) Snapshot {
	records, err := f.repo.ListByUser(ctx, userId)
	if err != nil {
		log.Errorf("snapshot load failed for user %d: %v", userId, err)
		return Snapshot{Records: []Record{}, Err: err}
	}
	return Snapshot{Records: records}
}
