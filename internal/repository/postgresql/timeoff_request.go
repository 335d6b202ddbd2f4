package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/staffhub/rostering-backend-go/internal/domain/timeoff"
	"github.com/staffhub/rostering-backend-go/internal/pkg/database"
)

type timeOffRepositoryImpl struct {
	db *database.DB
}

func NewTimeOffRepository(db *database.DB) timeoff.RequestRepository {
	return &timeOffRepositoryImpl{db: db}
}

const timeOffColumns = `id, worker_id, start_date, end_date, type, reason,
	partial_day, partial_start_time, partial_end_time,
	business_days, hours, priority, conflicts,
	status, approved_by, approved_at, approval_notes, rejection_reason,
	cancelled_by, cancelled_at, submitted_at, created_at, updated_at`

func scanTimeOff(row pgx.Row) (timeoff.Request, error) {
	var req timeoff.Request
	var conflicts []byte
	err := row.Scan(
		&req.ID, &req.WorkerID, &req.StartDate, &req.EndDate, &req.Type, &req.Reason,
		&req.PartialDay, &req.PartialStartTime, &req.PartialEndTime,
		&req.BusinessDays, &req.Hours, &req.Priority, &conflicts,
		&req.Status, &req.ApprovedBy, &req.ApprovedAt, &req.ApprovalNotes, &req.RejectionReason,
		&req.CancelledBy, &req.CancelledAt, &req.SubmittedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return timeoff.Request{}, err
	}
	if len(conflicts) > 0 {
		if err := json.Unmarshal(conflicts, &req.Conflicts); err != nil {
			return timeoff.Request{}, fmt.Errorf("failed to decode conflicts: %w", err)
		}
	}
	return req, nil
}

func (r *timeOffRepositoryImpl) Create(ctx context.Context, req timeoff.Request) (timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	conflicts, err := json.Marshal(req.Conflicts)
	if err != nil {
		return timeoff.Request{}, fmt.Errorf("failed to encode conflicts: %w", err)
	}

	query := `
		INSERT INTO time_off_requests (
			id, worker_id, start_date, end_date, type, reason,
			partial_day, partial_start_time, partial_end_time,
			business_days, hours, priority, conflicts, status,
			submitted_at, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW(), NOW())
		RETURNING ` + timeOffColumns

	created, err := scanTimeOff(q.QueryRow(ctx, query,
		req.ID, req.WorkerID, req.StartDate, req.EndDate, req.Type, req.Reason,
		req.PartialDay, req.PartialStartTime, req.PartialEndTime,
		req.BusinessDays, req.Hours, req.Priority, conflicts, req.Status,
	))
	if err != nil {
		return timeoff.Request{}, fmt.Errorf("failed to create time-off request: %w", err)
	}
	return created, nil
}

func (r *timeOffRepositoryImpl) GetByID(ctx context.Context, id string) (timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeOffColumns + ` FROM time_off_requests WHERE id = $1`

	req, err := scanTimeOff(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timeoff.Request{}, timeoff.ErrRequestNotFound
		}
		return timeoff.Request{}, fmt.Errorf("failed to get time-off request: %w", err)
	}
	return req, nil
}

func (r *timeOffRepositoryImpl) ListByWorkerID(ctx context.Context, workerID string) ([]timeoff.Request, error) {
	query := `SELECT ` + timeOffColumns + ` FROM time_off_requests WHERE worker_id = $1 ORDER BY created_at, id`
	return r.list(ctx, query, workerID)
}

func (r *timeOffRepositoryImpl) ListApprovedInRange(ctx context.Context, workerID string, start, end time.Time) ([]timeoff.Request, error) {
	query := `
		SELECT ` + timeOffColumns + `
		FROM time_off_requests
		WHERE worker_id = $1 AND status = 'approved'
		  AND start_date <= $3 AND end_date >= $2
		ORDER BY created_at, id`
	return r.list(ctx, query, workerID, start, end)
}

func (r *timeOffRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list time-off requests: %w", err)
	}
	defer rows.Close()

	var result []timeoff.Request
	for rows.Next() {
		req, err := scanTimeOff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time-off request: %w", err)
		}
		result = append(result, req)
	}
	return result, rows.Err()
}

// UpdateStatus transitions only when the stored status still equals
// from, so two racing transitions get one success and one
// ErrAlreadyProcessed.
func (r *timeOffRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to timeoff.Status, update timeoff.StatusUpdate) (timeoff.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE time_off_requests SET
			status = $3,
			approved_by = COALESCE($4, approved_by),
			approved_at = COALESCE($5, approved_at),
			approval_notes = COALESCE($6, approval_notes),
			rejection_reason = COALESCE($7, rejection_reason),
			cancelled_by = COALESCE($8, cancelled_by),
			cancelled_at = COALESCE($9, cancelled_at),
			updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING ` + timeOffColumns

	req, err := scanTimeOff(q.QueryRow(ctx, query,
		id, from, to,
		update.ApprovedBy, update.ApprovedAt, update.ApprovalNotes,
		update.RejectionReason, update.CancelledBy, update.CancelledAt,
	))
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return timeoff.Request{}, fmt.Errorf("failed to update time-off status: %w", err)
	}

	// Either the request is unknown or someone else already moved it.
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM time_off_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
		return timeoff.Request{}, fmt.Errorf("failed to check time-off request: %w", err)
	}
	if !exists {
		return timeoff.Request{}, timeoff.ErrRequestNotFound
	}
	return timeoff.Request{}, timeoff.ErrAlreadyProcessed
}
