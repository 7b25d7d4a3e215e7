package spending

import (
	"context"
	"testing"
	"time"

	"github.com/69GliTcH/SimpliFin/internal/event_bus"
	"github.com/69GliTcH/SimpliFin/internal/utils"
	"github.com/69GliTcH/SimpliFin/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userContext(userId int) context.Context {
	return user.WithUser(context.Background(), user.User{Id: userId})
}

func TestCreateRecord(t *testing.T) {
	repo := NewStubRepository()
	bus := event_bus.NewEventBus()
	clock := &utils.MockClock{FixedNow: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)}
	service := NewService(repo, bus, clock)

	t.Run("creates a valid record", func(t *testing.T) {
		repo.Reset()
		created, err := service.CreateRecord(userContext(1), Record{
			Name:      "Coffee",
			Amount:    4.5,
			Category:  "Food",
			CreatedAt: time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, "Coffee", created.Name)

		records, err := repo.ListByUser(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("defaults missing timestamp to now", func(t *testing.T) {
		repo.Reset()
		created, err := service.CreateRecord(userContext(1), Record{Name: "Rent", Amount: 1200})
		require.NoError(t, err)
		assert.Equal(t, clock.Now(), created.CreatedAt)
	})

	t.Run("defaults empty category to Other", func(t *testing.T) {
		repo.Reset()
		created, err := service.CreateRecord(userContext(1), Record{Name: "Misc", Amount: 10})
		require.NoError(t, err)
		assert.Equal(t, CategoryOther, created.DisplayCategory())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		repo.Reset()
		_, err := service.CreateRecord(userContext(1), Record{Name: "   ", Amount: 10})
		assert.ErrorIs(t, err, ErrRecordInvalid)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		repo.Reset()
		_, err := service.CreateRecord(userContext(1), Record{Name: "Refund", Amount: -5})
		assert.ErrorIs(t, err, ErrRecordInvalid)
		_, err = service.CreateRecord(userContext(1), Record{Name: "Free", Amount: 0})
		assert.ErrorIs(t, err, ErrRecordInvalid)
	})

	t.Run("requires a user in context", func(t *testing.T) {
		repo.Reset()
		_, err := service.CreateRecord(context.Background(), Record{Name: "Coffee", Amount: 4.5})
		assert.ErrorIs(t, err, user.ErrNoUser)
	})

	t.Run("publishes a change event", func(t *testing.T) {
		repo.Reset()
		var notified []int
		unsubscribe := event_bus.SubscribeTyped[event_bus.SpendingChanged](bus, event_bus.SpendingChangedEvent,
			func(e event_bus.EventT[event_bus.SpendingChanged]) error {
				notified = append(notified, e.Data.UserId)
				return nil
			})
		defer unsubscribe()

		_, err := service.CreateRecord(userContext(7), Record{Name: "Coffee", Amount: 4.5})
		require.NoError(t, err)
		assert.Equal(t, []int{7}, notified)
	})
}

func TestDeleteRecord(t *testing.T) {
	repo := NewStubRepository()
	bus := event_bus.NewEventBus()
	service := NewService(repo, bus, &utils.MockClock{})

	t.Run("deletes an existing record", func(t *testing.T) {
		repo.Reset()
		created, err := service.CreateRecord(userContext(1), Record{Name: "Coffee", Amount: 4.5})
		require.NoError(t, err)

		err = service.DeleteRecord(userContext(1), created.ID)
		require.NoError(t, err)

		records, err := repo.ListByUser(context.Background(), 1)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("returns not found for unknown id", func(t *testing.T) {
		repo.Reset()
		err := service.DeleteRecord(userContext(1), "missing")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("cannot delete another user's record", func(t *testing.T) {
		repo.Reset()
		created, err := service.CreateRecord(userContext(1), Record{Name: "Coffee", Amount: 4.5})
		require.NoError(t, err)

		err = service.DeleteRecord(userContext(2), created.ID)
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestListRecords(t *testing.T) {
	repo := NewStubRepository()
	service := NewService(repo, event_bus.NewEventBus(), &utils.MockClock{})

	_, err := service.CreateRecord(userContext(1), Record{Name: "Coffee", Amount: 4.5})
	require.NoError(t, err)
	_, err = service.CreateRecord(userContext(2), Record{Name: "Rent", Amount: 1200})
	require.NoError(t, err)

	records, err := service.ListRecords(userContext(1))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Coffee", records[0].Name)
}
