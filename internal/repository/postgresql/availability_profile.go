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

type profileRepositoryImpl struct {
	db *database.DB
}

func NewProfileRepository(db *database.DB) availability.ProfileRepository {
	return &profileRepositoryImpl{db: db}
}

const profileColumns = `id, worker_id, effective_date, weekly,
	max_hours_per_day, max_hours_per_week, min_rest_hours, max_consecutive_days,
	preferred_shift_types, willing_weekends, willing_holidays, willing_nights, willing_travel,
	constraints, notify_by_email, notify_by_sms, status, created_at, updated_at`

func scanProfile(row pgx.Row) (availability.Profile, error) {
	var p availability.Profile
	var weekly, constraints []byte
	err := row.Scan(
		&p.ID, &p.WorkerID, &p.EffectiveDate, &weekly,
		&p.MaxHoursPerDay, &p.MaxHoursPerWeek, &p.MinRestHours, &p.MaxConsecutiveDays,
		&p.PreferredShiftTypes, &p.WillingWeekends, &p.WillingHolidays, &p.WillingNights, &p.WillingTravel,
		&constraints, &p.NotifyByEmail, &p.NotifyBySMS, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return availability.Profile{}, err
	}
	if err := json.Unmarshal(weekly, &p.Weekly); err != nil {
		return availability.Profile{}, fmt.Errorf("failed to decode weekly table: %w", err)
	}
	if err := json.Unmarshal(constraints, &p.Constraints); err != nil {
		return availability.Profile{}, fmt.Errorf("failed to decode constraints: %w", err)
	}
	return p, nil
}

// Create supersedes any currently active profile for the worker and
// inserts the new one in a single transaction.
func (r *profileRepositoryImpl) Create(ctx context.Context, p availability.Profile) (availability.Profile, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	weekly, err := json.Marshal(p.Weekly)
	if err != nil {
		return availability.Profile{}, fmt.Errorf("failed to encode weekly table: %w", err)
	}
	constraints, err := json.Marshal(p.Constraints)
	if err != nil {
		return availability.Profile{}, fmt.Errorf("failed to encode constraints: %w", err)
	}

	var created availability.Profile
	err = WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if _, err := q.Exec(ctx, `
			UPDATE availability_profiles
			SET status = 'superseded', updated_at = NOW()
			WHERE worker_id = $1 AND status = 'active'
		`, p.WorkerID); err != nil {
			return fmt.Errorf("failed to supersede previous profile: %w", err)
		}

		query := `
			INSERT INTO availability_profiles (
				id, worker_id, effective_date, weekly,
				max_hours_per_day, max_hours_per_week, min_rest_hours, max_consecutive_days,
				preferred_shift_types, willing_weekends, willing_holidays, willing_nights, willing_travel,
				constraints, notify_by_email, notify_by_sms, status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, 'active', NOW(), NOW())
			RETURNING ` + profileColumns

		row := q.QueryRow(ctx, query,
			p.ID, p.WorkerID, p.EffectiveDate, weekly,
			p.MaxHoursPerDay, p.MaxHoursPerWeek, p.MinRestHours, p.MaxConsecutiveDays,
			p.PreferredShiftTypes, p.WillingWeekends, p.WillingHolidays, p.WillingNights, p.WillingTravel,
			constraints, p.NotifyByEmail, p.NotifyBySMS,
		)
		created, err = scanProfile(row)
		if err != nil {
			return fmt.Errorf("failed to create profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return availability.Profile{}, err
	}
	return created, nil
}

func (r *profileRepositoryImpl) GetByID(ctx context.Context, id string) (availability.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM availability_profiles WHERE id = $1`

	p, err := scanProfile(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return availability.Profile{}, availability.ErrProfileNotFound
		}
		return availability.Profile{}, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

func (r *profileRepositoryImpl) GetActiveByWorkerID(ctx context.Context, workerID string) (availability.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + profileColumns + ` FROM availability_profiles WHERE worker_id = $1 AND status = 'active'`

	p, err := scanProfile(q.QueryRow(ctx, query, workerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return availability.Profile{}, availability.ErrProfileNotFound
		}
		return availability.Profile{}, fmt.Errorf("failed to get active profile: %w", err)
	}
	return p, nil
}

func (r *profileRepositoryImpl) ListByWorkerID(ctx context.Context, workerID string) ([]availability.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM availability_profiles WHERE worker_id = $1 ORDER BY created_at, id`
	return r.list(ctx, query, workerID)
}

func (r *profileRepositoryImpl) ListActive(ctx context.Context) ([]availability.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM availability_profiles WHERE status = 'active' ORDER BY created_at, id`
	return r.list(ctx, query)
}

func (r *profileRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]availability.Profile, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var result []availability.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}
