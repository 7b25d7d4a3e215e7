package spending

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, userId int, record Record) (Record, error)
	Delete(ctx context.Context, userId int, recordId string) error
	ListByUser(ctx context.Context, userId int) ([]Record, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

// Create stores a new record and assigns its identifier. A zero CreatedAt is
// stored as NULL so the record keeps its invalid-timestamp semantics across
// reads.
func (r *RepositoryImpl) Create(ctx context.Context, userId int, record Record) (Record, error) {
	record.ID = uuid.NewString()

	var createdAt sql.NullTime
	if record.HasValidTimestamp() {
		createdAt = sql.NullTime{Time: record.CreatedAt, Valid: true}
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO spendings (id, user_id, name, amount, category, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		record.ID, userId, record.Name, record.Amount, record.Category, createdAt,
	)
	if err != nil {
		return Record{}, fmt.Errorf("failed to create spending record: %w", err)
	}
	return record, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId int, recordId string) error {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM spendings WHERE id = $1 AND user_id = $2",
		recordId, userId,
	)
	if err != nil {
		return fmt.Errorf("failed to delete spending record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// ListByUser returns all records of the user ordered newest first. Records
// without a timestamp sort last, in insertion order.
func (r *RepositoryImpl) ListByUser(ctx context.Context, userId int) ([]Record, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, amount, category, created_at
		 FROM spendings
		 WHERE user_id = $1
		 ORDER BY created_at DESC NULLS LAST, id`,
		userId,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list spending records: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		var record Record
		var createdAt sql.NullTime
		if err := rows.Scan(&record.ID, &record.Name, &record.Amount, &record.Category, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan spending record: %w", err)
		}
		if createdAt.Valid {
			record.CreatedAt = createdAt.Time
		} else {
			record.CreatedAt = time.Time{}
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read spending records: %w", err)
	}
	return records, nil
}
