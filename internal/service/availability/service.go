package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/staffhub/rostering-backend-go/internal/domain/availability"
	"github.com/staffhub/rostering-backend-go/internal/domain/worker"
	"github.com/staffhub/rostering-backend-go/internal/pkg/clock"
	"github.com/staffhub/rostering-backend-go/internal/pkg/validator"
)

type ProfileService struct {
	availability.ProfileRepository
	worker.WorkerRepository
	resolver availability.Resolver
	clock    clock.Clock
}

func NewProfileService(profileRepo availability.ProfileRepository, workerRepo worker.WorkerRepository, resolver availability.Resolver, clk clock.Clock) *ProfileService {
	return &ProfileService{
		ProfileRepository: profileRepo,
		WorkerRepository:  workerRepo,
		resolver:          resolver,
		clock:             clk,
	}
}

// dateOnly normalizes a timestamp to midnight UTC so calendar dates
// compare with Equal/Before/After regardless of source precision.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *ProfileService) CreateOrUpdateProfile(ctx context.Context, req availability.CreateProfileRequest) (availability.Profile, error) {
	if _, err := s.WorkerRepository.GetByID(ctx, req.WorkerID); err != nil {
		return availability.Profile{}, fmt.Errorf("failed to get worker by ID: %w", err)
	}

	var errs validator.ValidationErrors

	effectiveDate, ok := validator.IsValidDate(req.EffectiveDate)
	if !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be YYYY-MM-DD"})
	}

	var weekly availability.WeeklyTable
	for i, entry := range req.Weekly {
		field := fmt.Sprintf("weekly[%d]", i)
		if entry.Available {
			if !validator.IsValidTimeOfDay(entry.StartTime) || !validator.IsValidTimeOfDay(entry.EndTime) {
				errs = append(errs, validator.ValidationError{Field: field, Message: "start_time and end_time must be HH:MM"})
			} else if !validator.TimeOfDayBefore(entry.StartTime, entry.EndTime) {
				errs = append(errs, validator.ValidationError{Field: field, Message: "start_time must be before end_time"})
			}
		}
		weekly[i] = availability.WeekdayEntry{
			Available:    entry.Available,
			StartTime:    entry.StartTime,
			EndTime:      entry.EndTime,
			BreakMinutes: entry.BreakMinutes,
		}
	}

	if req.MaxHoursPerDay <= 0 || req.MaxHoursPerDay > 24 {
		errs = append(errs, validator.ValidationError{Field: "max_hours_per_day", Message: "must be in (0, 24]"})
	}
	if req.MaxHoursPerWeek <= 0 || req.MaxHoursPerWeek > 168 {
		errs = append(errs, validator.ValidationError{Field: "max_hours_per_week", Message: "must be in (0, 168]"})
	}
	if req.MinRestHours < 0 {
		errs = append(errs, validator.ValidationError{Field: "min_rest_hours", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return availability.Profile{}, errs
	}

	profile := availability.Profile{
		WorkerID:            req.WorkerID,
		EffectiveDate:       dateOnly(effectiveDate),
		Weekly:              weekly,
		MaxHoursPerDay:      req.MaxHoursPerDay,
		MaxHoursPerWeek:     req.MaxHoursPerWeek,
		MinRestHours:        req.MinRestHours,
		MaxConsecutiveDays:  req.MaxConsecutiveDays,
		PreferredShiftTypes: req.PreferredShiftTypes,
		WillingWeekends:     req.WillingWeekends,
		WillingHolidays:     req.WillingHolidays,
		WillingNights:       req.WillingNights,
		WillingTravel:       req.WillingTravel,
		Constraints: availability.Constraints{
			SchoolSchedule:      req.Constraints.SchoolSchedule,
			ChildcareSchedule:   req.Constraints.ChildcareSchedule,
			SecondJobSchedule:   req.Constraints.SecondJobSchedule,
			MedicalAppointments: req.Constraints.MedicalAppointments,
		},
		NotifyByEmail: req.NotifyByEmail,
		NotifyBySMS:   req.NotifyBySMS,
	}

	created, err := s.ProfileRepository.Create(ctx, profile)
	if err != nil {
		return availability.Profile{}, fmt.Errorf("failed to create availability profile: %w", err)
	}

	return created, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, workerID string) (availability.Profile, error) {
	return s.ProfileRepository.GetActiveByWorkerID(ctx, workerID)
}

func (s *ProfileService) GetProfileHistory(ctx context.Context, workerID string) ([]availability.Profile, error) {
	return s.ProfileRepository.ListByWorkerID(ctx, workerID)
}

func (s *ProfileService) GetComputedAvailability(ctx context.Context, workerID string, date *time.Time) (availability.ProfileWithAvailability, error) {
	profile, err := s.ProfileRepository.GetActiveByWorkerID(ctx, workerID)
	if err != nil {
		return availability.ProfileWithAvailability{}, err
	}

	result := availability.ProfileWithAvailability{Profile: profile}
	if date != nil {
		resolved, err := s.resolver.ComputeAvailability(ctx, workerID, *date)
		if err != nil {
			return availability.ProfileWithAvailability{}, fmt.Errorf("failed to compute availability: %w", err)
		}
		result.Resolved = &resolved
	}

	return result, nil
}

// BulkGetAvailability resolves every worker in the request across the
// date range and reports per-worker availability rates.
func (s *ProfileService) BulkGetAvailability(ctx context.Context, req availability.BulkAvailabilityRequest) (availability.BulkAvailabilityResult, error) {
	start, ok := validator.IsValidDate(req.StartDate)
	if !ok {
		return availability.BulkAvailabilityResult{}, validator.ValidationErrors{{Field: "start_date", Message: "must be YYYY-MM-DD"}}
	}
	end, ok := validator.IsValidDate(req.EndDate)
	if !ok {
		return availability.BulkAvailabilityResult{}, validator.ValidationErrors{{Field: "end_date", Message: "must be YYYY-MM-DD"}}
	}
	if end.Before(start) {
		return availability.BulkAvailabilityResult{}, validator.ValidationErrors{{Field: "end_date", Message: "must not be before start_date"}}
	}

	start = dateOnly(start)
	end = dateOnly(end)

	result := availability.BulkAvailabilityResult{
		Workers:   make([]availability.WorkerAvailability, 0, len(req.WorkerIDs)),
		Summaries: make([]availability.WorkerSummary, 0, len(req.WorkerIDs)),
	}

	for _, workerID := range req.WorkerIDs {
		wa := availability.WorkerAvailability{WorkerID: workerID}
		daysAvailable := 0
		totalDays := 0

		for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
			computed, err := s.resolver.ComputeAvailability(ctx, workerID, date)
			if err != nil {
				return availability.BulkAvailabilityResult{}, fmt.Errorf("failed to compute availability for worker %s: %w", workerID, err)
			}
			wa.Days = append(wa.Days, computed)
			totalDays++
			if computed.Available {
				daysAvailable++
			}
		}

		rate := 0.0
		if totalDays > 0 {
			rate = float64(daysAvailable) / float64(totalDays)
		}

		result.Workers = append(result.Workers, wa)
		result.Summaries = append(result.Summaries, availability.WorkerSummary{
			WorkerID:         workerID,
			DaysAvailable:    daysAvailable,
			TotalDays:        totalDays,
			AvailabilityRate: rate,
		})
	}

	return result, nil
}
