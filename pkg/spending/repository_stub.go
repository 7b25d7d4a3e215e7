package spending

import (
	"context"
	"strconv"
)

// StubRepository is an in-memory Repository implementation for tests.
type StubRepository struct {
	records map[int][]Record
	nextId  int
	// Error, when set, is returned by every call. Used to exercise failure
	// paths including permission-denied snapshot delivery.
	Error error
}

func NewStubRepository() *StubRepository {
	return &StubRepository{records: map[int][]Record{}, nextId: 1}
}

func (s *StubRepository) Create(_ context.Context, userId int, record Record) (Record, error) {
	if s.Error != nil {
		return Record{}, s.Error
	}
	if record.ID == "" {
		record.ID = "stub-" + strconv.Itoa(s.nextId)
		s.nextId++
	}
	s.records[userId] = append(s.records[userId], record)
	return record, nil
}

func (s *StubRepository) Delete(_ context.Context, userId int, recordId string) error {
	if s.Error != nil {
		return s.Error
	}
	records := s.records[userId]
	for i, record := range records {
		if record.ID == recordId {
			s.records[userId] = append(records[:i], records[i+1:]...)
			return nil
		}
	}
	return ErrRecordNotFound
}

func (s *StubRepository) ListByUser(_ context.Context, userId int) ([]Record, error) {
	if s.Error != nil {
		return nil, s.Error
	}
	records := make([]Record, len(s.records[userId]))
	copy(records, s.records[userId])
	return records, nil
}

func (s *StubRepository) Reset() {
	s.records = map[int][]Record{}
	s.nextId = 1
	s.Error = nil
}
