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

type shiftTemplateRepositoryImpl struct {
	db *database.DB
}

func NewShiftTemplateRepository(db *database.DB) roster.ShiftTemplateRepository {
	return &shiftTemplateRepositoryImpl{db: db}
}

const templateColumns = `id, name, start_time, end_time, break_minutes,
	min_staff, max_staff, required_skills, department, location,
	pay_rate, shift_type, recurrence, active, created_at, updated_at`

func scanTemplate(row pgx.Row) (roster.ShiftTemplate, error) {
	var t roster.ShiftTemplate
	err := row.Scan(
		&t.ID, &t.Name, &t.StartTime, &t.EndTime, &t.BreakMinutes,
		&t.MinStaff, &t.MaxStaff, &t.RequiredSkills, &t.Department, &t.Location,
		&t.PayRate, &t.ShiftType, &t.Recurrence, &t.Active, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *shiftTemplateRepositoryImpl) Create(ctx context.Context, t roster.ShiftTemplate) (roster.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	if t.ID == "" {
		t.ID = uuid.NewString()
	}

	query := `
		INSERT INTO shift_templates (
			id, name, start_time, end_time, break_minutes,
			min_staff, max_staff, required_skills, department, location,
			pay_rate, shift_type, recurrence, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW())
		RETURNING ` + templateColumns

	created, err := scanTemplate(q.QueryRow(ctx, query,
		t.ID, t.Name, t.StartTime, t.EndTime, t.BreakMinutes,
		t.MinStaff, t.MaxStaff, t.RequiredSkills, t.Department, t.Location,
		t.PayRate, t.ShiftType, t.Recurrence, t.Active,
	))
	if err != nil {
		return roster.ShiftTemplate{}, fmt.Errorf("failed to create shift template: %w", err)
	}
	return created, nil
}

func (r *shiftTemplateRepositoryImpl) GetByID(ctx context.Context, id string) (roster.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + templateColumns + ` FROM shift_templates WHERE id = $1`

	t, err := scanTemplate(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roster.ShiftTemplate{}, roster.ErrTemplateNotFound
		}
		return roster.ShiftTemplate{}, fmt.Errorf("failed to get shift template: %w", err)
	}
	return t, nil
}

// GetByIDs preserves the order of ids in its result, skipping unknown ids.
func (r *shiftTemplateRepositoryImpl) GetByIDs(ctx context.Context, ids []string) ([]roster.ShiftTemplate, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + templateColumns + ` FROM shift_templates WHERE id = ANY($1)`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get shift templates: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]roster.ShiftTemplate, len(ids))
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift template: %w", err)
		}
		byID[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]roster.ShiftTemplate, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			result = append(result, t)
		}
	}
	return result, nil
}

func (r *shiftTemplateRepositoryImpl) ListActive(ctx context.Context) ([]roster.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + templateColumns + ` FROM shift_templates WHERE active ORDER BY created_at, id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list shift templates: %w", err)
	}
	defer rows.Close()

	var result []roster.ShiftTemplate
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift template: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}

func (r *shiftTemplateRepositoryImpl) Update(ctx context.Context, t roster.ShiftTemplate) (roster.ShiftTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_templates SET
			name = $2, start_time = $3, end_time = $4, break_minutes = $5,
			min_staff = $6, max_staff = $7, required_skills = $8,
			department = $9, location = $10, pay_rate = $11,
			shift_type = $12, recurrence = $13, active = $14,
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + templateColumns

	updated, err := scanTemplate(q.QueryRow(ctx, query,
		t.ID, t.Name, t.StartTime, t.EndTime, t.BreakMinutes,
		t.MinStaff, t.MaxStaff, t.RequiredSkills,
		t.Department, t.Location, t.PayRate,
		t.ShiftType, t.Recurrence, t.Active,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return roster.ShiftTemplate{}, roster.ErrTemplateNotFound
		}
		return roster.ShiftTemplate{}, fmt.Errorf("failed to update shift template: %w", err)
	}
	return updated, nil
}

func (r *shiftTemplateRepositoryImpl) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE shift_templates SET active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate shift template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return roster.ErrTemplateNotFound
	}
	return nil
}
