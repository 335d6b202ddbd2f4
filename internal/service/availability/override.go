package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/staffhub/rostering-backend-go/internal/domain/availability"
	"github.com/staffhub/rostering-backend-go/internal/pkg/clock"
	"github.com/staffhub/rostering-backend-go/internal/pkg/validator"
)

// OverrideService manages manager-authored availability overrides.
// Validation is intentionally light: a range and a creator are all
// that's required.
type OverrideService struct {
	availability.OverrideRepository
	clock clock.Clock
}

func NewOverrideService(overrideRepo availability.OverrideRepository, clk clock.Clock) *OverrideService {
	return &OverrideService{
		OverrideRepository: overrideRepo,
		clock:              clk,
	}
}

func (s *OverrideService) CreateOverride(ctx context.Context, req availability.CreateOverrideRequest) (availability.Override, error) {
	var errs validator.ValidationErrors

	start, ok := validator.IsValidDate(req.StartDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
	}
	end, ok := validator.IsValidDate(req.EndDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
	}
	if len(errs) == 0 && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}
	if validator.IsEmpty(req.CreatedBy) {
		errs = append(errs, validator.ValidationError{Field: "created_by", Message: "creator identity is required"})
	}
	if len(errs) > 0 {
		return availability.Override{}, errs
	}

	override := availability.Override{
		WorkerID:  req.WorkerID,
		StartDate: dateOnly(start),
		EndDate:   dateOnly(end),
		Kind:      availability.OverrideKind(req.Kind),
		Replacement: availability.WeekdayEntry{
			Available:    req.Replacement.Available,
			StartTime:    req.Replacement.StartTime,
			EndTime:      req.Replacement.EndTime,
			BreakMinutes: req.Replacement.BreakMinutes,
		},
		Reason:    req.Reason,
		Priority:  req.Priority,
		Status:    availability.OverrideStatusActive,
		CreatedBy: req.CreatedBy,
	}

	created, err := s.OverrideRepository.Create(ctx, override)
	if err != nil {
		return availability.Override{}, fmt.Errorf("failed to create override: %w", err)
	}
	return created, nil
}

// ListOverrides returns live overrides for a worker, optionally
// narrowed to those covering date. Expiry is judged from the range
// against the clock, never from the stored status alone.
func (s *OverrideService) ListOverrides(ctx context.Context, workerID string, date *time.Time) ([]availability.Override, error) {
	overrides, err := s.OverrideRepository.ListByWorkerID(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list overrides: %w", err)
	}

	today := dateOnly(s.clock.Now())
	result := make([]availability.Override, 0, len(overrides))
	for _, o := range overrides {
		if o.Status != availability.OverrideStatusActive {
			continue
		}
		if o.EndDate.Before(today) {
			continue
		}
		if date != nil && !o.Covers(dateOnly(*date)) {
			continue
		}
		result = append(result, o)
	}
	return result, nil
}

func (s *OverrideService) ExpireOverride(ctx context.Context, id string) error {
	return s.OverrideRepository.Expire(ctx, id)
}
