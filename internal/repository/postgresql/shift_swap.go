package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/staffhub/rostering-backend-go/internal/domain/roster"
	"github.com/staffhub/rostering-backend-go/internal/pkg/database"
)

type swapRequestRepositoryImpl struct {
	db *database.DB
}

func NewSwapRequestRepository(db *database.DB) roster.SwapRequestRepository {
	return &swapRequestRepositoryImpl{db: db}
}

const swapColumns = `id, roster_id, requester_id, requester_shift_id,
	counterpart_id, counterpart_shift_id, reason, status,
	expires_at, decided_by, decided_at, created_at`

func scanSwap(row pgx.Row) (roster.SwapRequest, error) {
	var s roster.SwapRequest
	err := row.Scan(
		&s.ID, &s.RosterID, &s.RequesterID, &s.RequesterShiftID,
		&s.CounterpartID, &s.CounterpartShiftID, &s.Reason, &s.Status,
		&s.ExpiresAt, &s.DecidedBy, &s.DecidedAt, &s.CreatedAt,
	)
	return s, err
}

func (r *swapRequestRepositoryImpl) Create(ctx context.Context, s roster.SwapRequest) (roster.SwapRequest, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	query := `
		INSERT INTO shift_swap_requests (
			id, roster_id, requester_id, requester_shift_id,
			counterpart_id, counterpart_shift_id, reason, status,
			expires_at, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING ` + swapColumns

	created, err := scanSwap(q.QueryRow(ctx, query,
		s.ID, s.RosterID, s.RequesterID, s.RequesterShiftID,
		s.CounterpartID, s.CounterpartShiftID, s.Reason, s.Status,
		s.ExpiresAt,
	))
	if err != nil {
		return roster.SwapRequest{}, fmt.Errorf("failed to create swap request: %w", err)
	}
	return created, nil
}

func (r *swapRequestRepositoryImpl) GetByID(ctx context.Context, id string) (roster.SwapRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + swapColumns + ` FROM shift_swap_requests WHERE id = $1`

	s, err := scanSwap(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roster.SwapRequest{}, roster.ErrSwapNotFound
		}
		return roster.SwapRequest{}, fmt.Errorf("failed to get swap request: %w", err)
	}
	return s, nil
}

func (r *swapRequestRepositoryImpl) ListByRosterID(ctx context.Context, rosterID string) ([]roster.SwapRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + swapColumns + ` FROM shift_swap_requests WHERE roster_id = $1 ORDER BY created_at, id`

	rows, err := q.Query(ctx, query, rosterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list swap requests: %w", err)
	}
	defer rows.Close()

	var result []roster.SwapRequest
	for rows.Next() {
		s, err := scanSwap(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan swap request: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// UpdateStatus transitions only when the stored status still equals from.
func (r *swapRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to roster.SwapStatus, decidedBy *string) (roster.SwapRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_swap_requests SET
			status = $3,
			decided_by = COALESCE($4, decided_by),
			decided_at = CASE WHEN $4::text IS NULL THEN decided_at ELSE NOW() END
		WHERE id = $1 AND status = $2
		RETURNING ` + swapColumns

	s, err := scanSwap(q.QueryRow(ctx, query, id, from, to, decidedBy))
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return roster.SwapRequest{}, fmt.Errorf("failed to update swap status: %w", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM shift_swap_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
		return roster.SwapRequest{}, fmt.Errorf("failed to check swap request: %w", err)
	}
	if !exists {
		return roster.SwapRequest{}, roster.ErrSwapNotFound
	}
	return roster.SwapRequest{}, roster.ErrSwapProcessed
}
