package view

import (
	"context"
	"time"

	"github.com/69GliTcH/SimpliFin/internal/utils"
	"github.com/69GliTcH/SimpliFin/pkg/spending"
	"github.com/69GliTcH/SimpliFin/pkg/user"
	log "github.com/sirupsen/logrus"
)

// RecordSource is the record access the view layer needs. Satisfied by
// spending.Service.
type RecordSource interface {
	ListRecords(ctx context.Context) ([]spending.Record, error)
}

type Service interface {
	TablePage(ctx context.Context, spec FilterSpec, page, pageSize int) (Page, error)
	Distribution(ctx context.Context, spec FilterSpec) ([]Slice, error)
	Timeline(ctx context.Context, spec FilterSpec) ([]Point, error)
	Summary(ctx context.Context, spec FilterSpec) (Summary, error)
	// FilteredRecords returns the records matching the spec sorted newest
	// first, for export rendering.
	FilteredRecords(ctx context.Context, spec FilterSpec) ([]spending.Record, error)
}

type ViewServiceImpl struct {
	records RecordSource
	clock   utils.Clock
}

func NewViewService(records RecordSource, clock utils.Clock) *ViewServiceImpl {
	return &ViewServiceImpl{records: records, clock: clock}
}

func (v *ViewServiceImpl) TablePage(ctx context.Context, spec FilterSpec, page, pageSize int) (Page, error) {
	records, err := v.records.ListRecords(ctx)
	if err != nil {
		return Page{}, err
	}
	filtered := Filter(SortNewestFirst(records), spec)
	return Paginate(filtered, page, pageSize), nil
}

func (v *ViewServiceImpl) Distribution(ctx context.Context, spec FilterSpec) ([]Slice, error) {
	records, err := v.records.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	return Distribution(Filter(records, spec)), nil
}

func (v *ViewServiceImpl) Timeline(ctx context.Context, spec FilterSpec) ([]Point, error) {
	records, err := v.records.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	return Timeline(Filter(records, spec), v.userLocation(ctx)), nil
}

func (v *ViewServiceImpl) Summary(ctx context.Context, spec FilterSpec) (Summary, error) {
	records, err := v.records.ListRecords(ctx)
	if err != nil {
		return Summary{}, err
	}

	weekStartDay := time.Sunday
	if currentUser, err := user.CurrentUser(ctx); err == nil {
		weekStartDay = currentUser.Settings.WeekFirstDay
	}

	now := v.clock.Now().In(v.userLocation(ctx))
	return Summarize(records, Filter(records, spec), now, weekStartDay), nil
}

func (v *ViewServiceImpl) FilteredRecords(ctx context.Context, spec FilterSpec) ([]spending.Record, error) {
	records, err := v.records.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(SortNewestFirst(records), spec), nil
}

// userLocation resolves the current user's timezone, falling back to UTC.
func (v *ViewServiceImpl) userLocation(ctx context.Context) *time.Location {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil || currentUser.Settings.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(currentUser.Settings.Timezone)
	if err != nil {
		log.Debugf("unknown timezone %q for user %d, falling back to UTC",
			currentUser.Settings.Timezone, currentUser.Id)
		return time.UTC
	}
	return loc
}
