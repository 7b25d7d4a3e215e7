package spending

import (
	"context"
	"fmt"
	"strings"

	"github.com/69GliTcH/SimpliFin/internal/event_bus"
	"github.com/69GliTcH/SimpliFin/internal/utils"
	"github.com/69GliTcH/SimpliFin/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	CreateRecord(ctx context.Context, record Record) (Record, error)
	DeleteRecord(ctx context.Context, recordId string) error
	ListRecords(ctx context.Context) ([]Record, error)
}

type ServiceImpl struct {
	repo  Repository
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewService(repo Repository, bus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus, clock: clock}
}

// CreateRecord validates and stores a new record for the current user. A
// missing timestamp defaults to the current time; a malformed one is kept as
// the invalid sentinel so the entry still shows up in unfiltered views.
func (s *ServiceImpl) CreateRecord(ctx context.Context, record Record) (Record, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Record{}, fmt.Errorf("failed to create spending record: %w", err)
	}

	record.Name = strings.TrimSpace(record.Name)
	if record.Name == "" {
		return Record{}, fmt.Errorf("%w: name is required", ErrRecordInvalid)
	}
	if record.Amount <= 0 {
		return Record{}, fmt.Errorf("%w: amount must be positive", ErrRecordInvalid)
	}
	if record.Category == "" {
		record.Category = string(CategoryOther)
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = s.clock.Now()
	}

	created, err := s.repo.Create(ctx, userId, record)
	if err != nil {
		return Record{}, err
	}
	log.Debugf("created spending record %s for user %d", created.ID, userId)

	s.publishChanged(ctx, userId)
	return created, nil
}

func (s *ServiceImpl) DeleteRecord(ctx context.Context, recordId string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete spending record: %w", err)
	}

	if err := s.repo.Delete(ctx, userId, recordId); err != nil {
		return err
	}
	log.Debugf("deleted spending record %s for user %d", recordId, userId)

	s.publishChanged(ctx, userId)
	return nil
}

func (s *ServiceImpl) ListRecords(ctx context.Context) ([]Record, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list spending records: %w", err)
	}
	return s.repo.ListByUser(ctx, userId)
}

// publishChanged notifies snapshot subscribers after a successful mutation.
// Handler failures are logged but never fail the mutation itself.
func (s *ServiceImpl) publishChanged(ctx context.Context, userId int) {
	event := event_bus.NewEvent(ctx, event_bus.SpendingChangedEvent, event_bus.SpendingChanged{UserId: userId})
	if err := s.bus.Publish(event); err != nil {
		log.Errorf("failed to publish spending change for user %d: %v", userId, err)
	}
}
