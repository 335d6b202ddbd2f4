package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/staffhub/rostering-backend-go/internal/domain/roster"
	"github.com/staffhub/rostering-backend-go/internal/pkg/database"
)

type rosterRepositoryImpl struct {
	db *database.DB
}

func NewRosterRepository(db *database.DB) roster.RosterRepository {
	return &rosterRepositoryImpl{db: db}
}

const rosterColumns = `id, name, department, location, start_date, end_date,
	status, shifts, assignments, total_hours, total_cost, version, created_at, updated_at`

func scanRoster(row pgx.Row) (roster.Roster, error) {
	var r roster.Roster
	var shifts, assignments []byte
	err := row.Scan(
		&r.ID, &r.Name, &r.Department, &r.Location, &r.StartDate, &r.EndDate,
		&r.Status, &shifts, &assignments, &r.TotalHours, &r.TotalCost, &r.Version,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return roster.Roster{}, err
	}
	if len(shifts) > 0 {
		if err := json.Unmarshal(shifts, &r.Shifts); err != nil {
			return roster.Roster{}, fmt.Errorf("failed to decode shifts: %w", err)
		}
	}
	r.Assignments = make(map[string][]string)
	if len(assignments) > 0 {
		if err := json.Unmarshal(assignments, &r.Assignments); err != nil {
			return roster.Roster{}, fmt.Errorf("failed to decode assignments: %w", err)
		}
	}
	return r, nil
}

func encodeRoster(r roster.Roster) (shifts, assignments []byte, err error) {
	shifts, err = json.Marshal(r.Shifts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode shifts: %w", err)
	}
	assignments, err = json.Marshal(r.Assignments)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode assignments: %w", err)
	}
	return shifts, assignments, nil
}

func (r *rosterRepositoryImpl) Create(ctx context.Context, ros roster.Roster) (roster.Roster, error) {
	q := GetQuerier(ctx, r.db)

	if ros.ID == "" {
		ros.ID = uuid.NewString()
	}
	shifts, assignments, err := encodeRoster(ros)
	if err != nil {
		return roster.Roster{}, err
	}

	query := `
		INSERT INTO rosters (
			id, name, department, location, start_date, end_date,
			status, shifts, assignments, total_hours, total_cost, version,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1, NOW(), NOW())
		RETURNING ` + rosterColumns

	created, err := scanRoster(q.QueryRow(ctx, query,
		ros.ID, ros.Name, ros.Department, ros.Location, ros.StartDate, ros.EndDate,
		ros.Status, shifts, assignments, ros.TotalHours, ros.TotalCost,
	))
	if err != nil {
		return roster.Roster{}, fmt.Errorf("failed to create roster: %w", err)
	}
	return created, nil
}

func (r *rosterRepositoryImpl) GetByID(ctx context.Context, id string) (roster.Roster, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + rosterColumns + ` FROM rosters WHERE id = $1`

	ros, err := scanRoster(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roster.Roster{}, roster.ErrRosterNotFound
		}
		return roster.Roster{}, fmt.Errorf("failed to get roster: %w", err)
	}
	return ros, nil
}

func (r *rosterRepositoryImpl) List(ctx context.Context) ([]roster.Roster, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + rosterColumns + ` FROM rosters ORDER BY created_at, id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rosters: %w", err)
	}
	defer rows.Close()

	var result []roster.Roster
	for rows.Next() {
		ros, err := scanRoster(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster: %w", err)
		}
		result = append(result, ros)
	}
	return result, rows.Err()
}

// Update replaces the stored roster wholesale and bumps its version.
func (r *rosterRepositoryImpl) Update(ctx context.Context, ros roster.Roster) (roster.Roster, error) {
	q := GetQuerier(ctx, r.db)

	shifts, assignments, err := encodeRoster(ros)
	if err != nil {
		return roster.Roster{}, err
	}

	query := `
		UPDATE rosters SET
			name = $2, department = $3, location = $4,
			start_date = $5, end_date = $6, status = $7,
			shifts = $8, assignments = $9,
			total_hours = $10, total_cost = $11,
			version = version + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + rosterColumns

	updated, err := scanRoster(q.QueryRow(ctx, query,
		ros.ID, ros.Name, ros.Department, ros.Location,
		ros.StartDate, ros.EndDate, ros.Status,
		shifts, assignments, ros.TotalHours, ros.TotalCost,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roster.Roster{}, roster.ErrRosterNotFound
		}
		return roster.Roster{}, fmt.Errorf("failed to update roster: %w", err)
	}
	return updated, nil
}

func (r *rosterRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM rosters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete roster: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return roster.ErrRosterNotFound
	}
	return nil
}
