package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/staffhub/rostering-backend-go/internal/domain/availability"
	"github.com/staffhub/rostering-backend-go/internal/pkg/database"
)

type overrideRepositoryImpl struct {
	db *database.DB
}

func NewOverrideRepository(db *database.DB) availability.OverrideRepository {
	return &overrideRepositoryImpl{db: db}
}

const overrideColumns = `id, worker_id, start_date, end_date, kind, replacement,
	reason, priority, status, created_by, created_at`

func scanOverride(row pgx.Row) (availability.Override, error) {
	var o availability.Override
	var replacement []byte
	err := row.Scan(
		&o.ID, &o.WorkerID, &o.StartDate, &o.EndDate, &o.Kind, &replacement,
		&o.Reason, &o.Priority, &o.Status, &o.CreatedBy, &o.CreatedAt,
	)
	if err != nil {
		return availability.Override{}, err
	}
	if err := json.Unmarshal(replacement, &o.Replacement); err != nil {
		return availability.Override{}, fmt.Errorf("failed to decode replacement entry: %w", err)
	}
	return o, nil
}

func (r *overrideRepositoryImpl) Create(ctx context.Context, o availability.Override) (availability.Override, error) {
	q := GetQuerier(ctx, r.db)

	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	replacement, err := json.Marshal(o.Replacement)
	if err != nil {
		return availability.Override{}, fmt.Errorf("failed to encode replacement entry: %w", err)
	}

	query := `
		INSERT INTO availability_overrides (
			id, worker_id, start_date, end_date, kind, replacement,
			reason, priority, status, created_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING ` + overrideColumns

	created, err := scanOverride(q.QueryRow(ctx, query,
		o.ID, o.WorkerID, o.StartDate, o.EndDate, o.Kind, replacement,
		o.Reason, o.Priority, o.Status, o.CreatedBy,
	))
	if err != nil {
		return availability.Override{}, fmt.Errorf("failed to create override: %w", err)
	}
	return created, nil
}

func (r *overrideRepositoryImpl) GetByID(ctx context.Context, id string) (availability.Override, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overrideColumns + ` FROM availability_overrides WHERE id = $1`

	o, err := scanOverride(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return availability.Override{}, availability.ErrOverrideNotFound
		}
		return availability.Override{}, fmt.Errorf("failed to get override: %w", err)
	}
	return o, nil
}

func (r *overrideRepositoryImpl) ListByWorkerID(ctx context.Context, workerID string) ([]availability.Override, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + overrideColumns + ` FROM availability_overrides WHERE worker_id = $1 ORDER BY created_at, id`

	rows, err := q.Query(ctx, query, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}
	defer rows.Close()

	var result []availability.Override
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan override: %w", err)
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (r *overrideRepositoryImpl) Expire(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE availability_overrides SET status = 'expired' WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to expire override: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return availability.ErrOverrideNotFound
	}
	return nil
}
