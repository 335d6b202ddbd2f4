package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/staffhub/rostering-backend-go/internal/domain/worker"
	"github.com/staffhub/rostering-backend-go/internal/pkg/database"
)

type workerRepositoryImpl struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepositoryImpl{db: db}
}

const workerColumns = `id, full_name, email, role, department, location,
	skills, preferred_locations, preferred_shift_types,
	hourly_rate, status, created_at, updated_at`

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var w worker.Worker
	err := row.Scan(
		&w.ID, &w.FullName, &w.Email, &w.Role, &w.Department, &w.Location,
		&w.Skills, &w.PreferredLocations, &w.PreferredShiftTypes,
		&w.HourlyRate, &w.Status, &w.CreatedAt, &w.UpdatedAt,
	)
	return w, err
}

func (r *workerRepositoryImpl) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO workers (
			id, full_name, email, role, department, location,
			skills, preferred_locations, preferred_shift_types,
			hourly_rate, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING ` + workerColumns

	if w.ID == "" {
		w.ID = uuid.NewString()
	}

	created, err := scanWorker(q.QueryRow(ctx, query,
		w.ID, w.FullName, w.Email, w.Role, w.Department, w.Location,
		w.Skills, w.PreferredLocations, w.PreferredShiftTypes,
		w.HourlyRate, w.Status,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return worker.Worker{}, worker.ErrEmailExists
		}
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}
	return created, nil
}

func (r *workerRepositoryImpl) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workerColumns + ` FROM workers WHERE id = $1`

	w, err := scanWorker(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker: %w", err)
	}
	return w, nil
}

// GetByIDs preserves the order of ids in its result, skipping unknown ids.
func (r *workerRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]worker.Worker, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workerColumns + ` FROM workers WHERE id = ANY($1)`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get workers: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]worker.Worker, len(ids))
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		byID[w.ID] = w
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]worker.Worker, 0, len(ids))
	for _, id := range ids {
		if w, ok := byID[id]; ok {
			result = append(result, w)
		}
	}
	return result, nil
}

func (r *workerRepositoryImpl) ListActive(ctx context.Context) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + workerColumns + ` FROM workers WHERE status = 'active' ORDER BY created_at, id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var result []worker.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}

func (r *workerRepositoryImpl) Update(ctx context.Context, req worker.UpdateWorkerRequest) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers SET
			full_name = COALESCE($2, full_name),
			department = COALESCE($3, department),
			location = COALESCE($4, location),
			skills = COALESCE($5, skills),
			preferred_locations = COALESCE($6, preferred_locations),
			preferred_shift_types = COALESCE($7, preferred_shift_types),
			hourly_rate = COALESCE($8::numeric, hourly_rate),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + workerColumns

	w, err := scanWorker(q.QueryRow(ctx, query,
		req.ID, req.FullName, req.Department, req.Location,
		req.Skills, req.PreferredLocations, req.PreferredShiftTypes,
		req.HourlyRate,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to update worker: %w", err)
	}
	return w, nil
}

func (r *workerRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE workers SET status = 'inactive', updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}
	return nil
}
