package spending

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/69GliTcH/SimpliFin/internal/event_bus"
	"github.com/69GliTcH/SimpliFin/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveSnapshot(t *testing.T, snapshots <-chan Snapshot) Snapshot {
	t.Helper()
	select {
	case snapshot := <-snapshots:
		return snapshot
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return Snapshot{}
	}
}

func TestSnapshotFeed(t *testing.T) {
	t.Run("delivers the current snapshot on subscribe", func(t *testing.T) {
		repo := NewStubRepository()
		bus := event_bus.NewEventBus()
		service := NewService(repo, bus, &utils.MockClock{})
		_, err := service.CreateRecord(userContext(1), Record{Name: "Coffee", Amount: 4.5})
		require.NoError(t, err)

		feed := NewSnapshotFeed(repo, bus)
		snapshots, unsubscribe := feed.Subscribe(context.Background(), 1)
		defer unsubscribe()

		snapshot := receiveSnapshot(t, snapshots)
		require.NoError(t, snapshot.Err)
		require.Len(t, snapshot.Records, 1)
		assert.Equal(t, "Coffee", snapshot.Records[0].Name)
	})

	t.Run("delivers a fresh snapshot after each mutation", func(t *testing.T) {
		repo := NewStubRepository()
		bus := event_bus.NewEventBus()
		service := NewService(repo, bus, &utils.MockClock{})

		feed := NewSnapshotFeed(repo, bus)
		snapshots, unsubscribe := feed.Subscribe(context.Background(), 1)
		defer unsubscribe()

		initial := receiveSnapshot(t, snapshots)
		assert.Empty(t, initial.Records)

		created, err := service.CreateRecord(userContext(1), Record{Name: "Coffee", Amount: 4.5})
		require.NoError(t, err)
		afterCreate := receiveSnapshot(t, snapshots)
		require.Len(t, afterCreate.Records, 1)

		require.NoError(t, service.DeleteRecord(userContext(1), created.ID))
		afterDelete := receiveSnapshot(t, snapshots)
		assert.Empty(t, afterDelete.Records)
	})

	t.Run("slow consumers only see the latest snapshot", func(t *testing.T) {
		repo := NewStubRepository()
		bus := event_bus.NewEventBus()
		service := NewService(repo, bus, &utils.MockClock{})

		feed := NewSnapshotFeed(repo, bus)
		snapshots, unsubscribe := feed.Subscribe(context.Background(), 1)
		defer unsubscribe()

		// nobody reads while three mutations happen
		for _, name := range []string{"One", "Two", "Three"} {
			_, err := service.CreateRecord(userContext(1), Record{Name: name, Amount: 1})
			require.NoError(t, err)
		}

		latest := receiveSnapshot(t, snapshots)
		require.NoError(t, latest.Err)
		assert.Len(t, latest.Records, 3, "intermediate snapshots should have been displaced")

		select {
		case extra := <-snapshots:
			t.Fatalf("unexpected extra snapshot: %+v", extra)
		default:
		}
	})

	t.Run("delivers a mutation committed during the initial load", func(t *testing.T) {
		repo := NewStubRepository()
		bus := event_bus.NewEventBus()
		service := NewService(repo, bus, &utils.MockClock{})

		// The first load reads an empty list; the record lands, and its
		// change event fires, before that load's result is pushed.
		racing := &racingRepository{Repository: repo, afterFirstList: func() {
			_, err := service.CreateRecord(userContext(1), Record{Name: "Coffee", Amount: 4.5})
			require.NoError(t, err)
		}}

		feed := NewSnapshotFeed(racing, bus)
		snapshots, unsubscribe := feed.Subscribe(context.Background(), 1)
		defer unsubscribe()

		snapshot := receiveSnapshot(t, snapshots)
		require.NoError(t, snapshot.Err)
		require.Len(t, snapshot.Records, 1, "the record created during the initial load must reach the stream")
		assert.Equal(t, "Coffee", snapshot.Records[0].Name)
	})

	t.Run("ignores other users' mutations", func(t *testing.T) {
		repo := NewStubRepository()
		bus := event_bus.NewEventBus()
		service := NewService(repo, bus, &utils.MockClock{})

		feed := NewSnapshotFeed(repo, bus)
		snapshots, unsubscribe := feed.Subscribe(context.Background(), 1)
		defer unsubscribe()

		receiveSnapshot(t, snapshots)

		_, err := service.CreateRecord(userContext(2), Record{Name: "Coffee", Amount: 4.5})
		require.NoError(t, err)

		select {
		case snapshot := <-snapshots:
			t.Fatalf("unexpected snapshot for another user's change: %+v", snapshot)
		default:
		}
	})

	t.Run("delivers an empty error snapshot when loading fails", func(t *testing.T) {
		repo := NewStubRepository()
		repo.Error = errors.New("store unavailable")
		bus := event_bus.NewEventBus()

		feed := NewSnapshotFeed(repo, bus)
		snapshots, unsubscribe := feed.Subscribe(context.Background(), 1)
		defer unsubscribe()

		snapshot := receiveSnapshot(t, snapshots)
		assert.Error(t, snapshot.Err)
		assert.Empty(t, snapshot.Records)
	})

	t.Run("user deletion delivers a terminal permission-denied snapshot", func(t *testing.T) {
		repo := NewStubRepository()
		bus := event_bus.NewEventBus()

		feed := NewSnapshotFeed(repo, bus)
		snapshots, unsubscribe := feed.Subscribe(context.Background(), 1)
		defer unsubscribe()

		receiveSnapshot(t, snapshots)

		event := event_bus.NewEvent(context.Background(), event_bus.UserDeletedEvent,
			event_bus.UserDeleted{UserId: 1, Uid: "uid-1"})
		require.NoError(t, bus.Publish(event))

		snapshot := receiveSnapshot(t, snapshots)
		assert.ErrorIs(t, snapshot.Err, ErrPermissionDenied)
		assert.Empty(t, snapshot.Records)
	})

	t.Run("stops pushing after context cancellation", func(t *testing.T) {
		repo := NewStubRepository()
		bus := event_bus.NewEventBus()
		service := NewService(repo, bus, &utils.MockClock{})

		ctx, cancel := context.WithCancel(context.Background())
		feed := NewSnapshotFeed(repo, bus)
		snapshots, unsubscribe := feed.Subscribe(ctx, 1)
		defer unsubscribe()

		receiveSnapshot(t, snapshots)
		cancel()

		_, err := service.CreateRecord(userContext(1), Record{Name: "Coffee", Amount: 4.5})
		require.NoError(t, err)

		select {
		case snapshot := <-snapshots:
			t.Fatalf("unexpected snapshot after cancellation: %+v", snapshot)
		default:
		}
	})
}

// racingRepository runs afterFirstList once the first ListByUser call has
// already read its result, so the mutation lands after the read but before
// the caller sees it.
type racingRepository struct {
	Repository
	once           sync.Once
	afterFirstList func()
}

func (r *racingRepository) ListByUser(ctx context.Context, userId int) ([]Record, error) {
	records, err := r.Repository.ListByUser(ctx, userId)
	r.once.Do(r.afterFirstList)
	return records, err
}
