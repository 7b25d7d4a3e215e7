package view

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/69GliTcH/SimpliFin/internal/utils"
	"github.com/69GliTcH/SimpliFin/pkg/spending"
	"github.com/69GliTcH/SimpliFin/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecordSource struct {
	records []spending.Record
	err     error
}

func (s *stubRecordSource) ListRecords(context.Context) ([]spending.Record, error) {
	return s.records, s.err
}

func settingsContext(settings user.Settings) context.Context {
	return user.WithUser(context.Background(), user.User{Id: 1, Settings: settings})
}

func TestTablePage(t *testing.T) {
	source := &stubRecordSource{records: []spending.Record{
		record("Old", "Food", 1, day(2024, 1, 1)),
		record("New", "Travel", 2, day(2024, 1, 10)),
		record("Mid", "Food", 3, day(2024, 1, 5)),
	}}
	service := NewViewService(source, &utils.MockClock{})

	t.Run("sorts, filters, then paginates", func(t *testing.T) {
		page, err := service.TablePage(context.Background(), FilterSpec{Category: "Food"}, 1, 10)
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.Equal(t, "Mid", page.Items[0].Name)
		assert.Equal(t, "Old", page.Items[1].Name)
		assert.Equal(t, 2, page.TotalCount)
	})

	t.Run("propagates source errors", func(t *testing.T) {
		failing := NewViewService(&stubRecordSource{err: errors.New("down")}, &utils.MockClock{})
		_, err := failing.TablePage(context.Background(), FilterSpec{}, 1, 10)
		assert.Error(t, err)
	})
}

func TestServiceSummaryUsesUserSettings(t *testing.T) {
	// 01:00 UTC on Mar 15 is already Mar 15 morning in Kolkata
	clock := &utils.MockClock{FixedNow: time.Date(2024, 3, 15, 1, 0, 0, 0, time.UTC)}
	source := &stubRecordSource{records: []spending.Record{
		record("LateNight", "Food", 10, time.Date(2024, 3, 14, 20, 0, 0, 0, time.UTC)),
	}}
	service := NewViewService(source, clock)

	t.Run("day boundary follows the user timezone", func(t *testing.T) {
		ctx := settingsContext(user.Settings{Timezone: "Asia/Kolkata"})
		summary, err := service.Summary(ctx, FilterSpec{})
		require.NoError(t, err)
		// 20:00 UTC on Mar 14 is 01:30 on Mar 15 in Kolkata
		assert.Equal(t, 1, summary.Today.Count)

		utcSummary, err := service.Summary(context.Background(), FilterSpec{})
		require.NoError(t, err)
		assert.Equal(t, 0, utcSummary.Today.Count)
	})

	t.Run("unknown timezone falls back to UTC", func(t *testing.T) {
		ctx := settingsContext(user.Settings{Timezone: "Nowhere/Unknown"})
		summary, err := service.Summary(ctx, FilterSpec{})
		require.NoError(t, err)
		assert.Equal(t, 0, summary.Today.Count)
	})
}
