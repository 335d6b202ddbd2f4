package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffhub/rostering-backend-go/internal/domain/availability"
	"github.com/staffhub/rostering-backend-go/internal/domain/roster"
	"github.com/staffhub/rostering-backend-go/internal/domain/worker"
	"github.com/staffhub/rostering-backend-go/internal/pkg/clock"
	"github.com/staffhub/rostering-backend-go/internal/pkg/validator"
	"github.com/staffhub/rostering-backend-go/internal/service/matching"
)

// Generation fallbacks when the request leaves constraints unset.
const (
	defaultMaxHoursPerWeek = 40.0
	defaultMinRestHours    = 8.0
)

type TemplateService struct {
	roster.ShiftTemplateRepository
}

func NewTemplateService(templateRepo roster.ShiftTemplateRepository) *TemplateService {
	return &TemplateService{ShiftTemplateRepository: templateRepo}
}

func (s *TemplateService) CreateTemplate(ctx context.Context, req roster.CreateTemplateRequest) (roster.ShiftTemplate, error) {
	var errs validator.ValidationErrors

	if !validator.IsValidTimeOfDay(req.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be HH:MM"})
	}
	if !validator.IsValidTimeOfDay(req.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be HH:MM"})
	}
	if len(errs) == 0 && !validator.TimeOfDayBefore(req.StartTime, req.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be after start_time"})
	}
	if req.MinStaff <= 0 {
		errs = append(errs, validator.ValidationError{Field: "min_staff", Message: "must be positive"})
	}
	if req.MaxStaff < req.MinStaff {
		errs = append(errs, validator.ValidationError{Field: "max_staff", Message: "must be at least min_staff"})
	}
	if !validator.IsInSlice(req.Recurrence, roster.RecurrenceValues) {
		errs = append(errs, validator.ValidationError{Field: "recurrence", Message: "must be one of daily, weekly, weekdays, weekends"})
	}

	payRate := decimal.Zero
	if !validator.IsEmpty(req.PayRate) {
		parsed, err := decimal.NewFromString(req.PayRate)
		if err != nil {
			errs = append(errs, validator.ValidationError{Field: "pay_rate", Message: "must be a decimal amount"})
		} else {
			payRate = parsed
		}
	}

	if len(errs) > 0 {
		return roster.ShiftTemplate{}, errs
	}

	template := roster.ShiftTemplate{
		Name:           req.Name,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		BreakMinutes:   req.BreakMinutes,
		MinStaff:       req.MinStaff,
		MaxStaff:       req.MaxStaff,
		RequiredSkills: req.RequiredSkills,
		Department:     req.Department,
		Location:       req.Location,
		PayRate:        payRate,
		ShiftType:      req.ShiftType,
		Recurrence:     roster.Recurrence(req.Recurrence),
		Active:         true,
	}

	created, err := s.ShiftTemplateRepository.Create(ctx, template)
	if err != nil {
		return roster.ShiftTemplate{}, fmt.Errorf("failed to create shift template: %w", err)
	}
	return created, nil
}

func (s *TemplateService) GetTemplate(ctx context.Context, id string) (roster.ShiftTemplate, error) {
	return s.ShiftTemplateRepository.GetByID(ctx, id)
}

func (s *TemplateService) ListTemplates(ctx context.Context) ([]roster.ShiftTemplate, error) {
	return s.ShiftTemplateRepository.ListActive(ctx)
}

func (s *TemplateService) DeactivateTemplate(ctx context.Context, id string) error {
	return s.ShiftTemplateRepository.Deactivate(ctx, id)
}

// Service builds rosters: expanding templates into dated shifts,
// auto-assigning staff through the matching engine, and walking the
// draft to published lifecycle.
type Service struct {
	roster.RosterRepository
	roster.ShiftTemplateRepository
	workerRepo  worker.WorkerRepository
	profileRepo availability.ProfileRepository
	engine      *matching.Engine
	locks       *Locks
	clock       clock.Clock
}

func NewService(
	rosterRepo roster.RosterRepository,
	templateRepo roster.ShiftTemplateRepository,
	workerRepo worker.WorkerRepository,
	profileRepo availability.ProfileRepository,
	engine *matching.Engine,
	locks *Locks,
	clk clock.Clock,
) *Service {
	return &Service{
		RosterRepository:        rosterRepo,
		ShiftTemplateRepository: templateRepo,
		workerRepo:              workerRepo,
		profileRepo:             profileRepo,
		engine:                  engine,
		locks:                   locks,
		clock:                   clk,
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Service) CreateRoster(ctx context.Context, req roster.CreateRosterRequest) (roster.Roster, error) {
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
	if len(errs) > 0 {
		return roster.Roster{}, errs
	}

	r := roster.Roster{
		Name:        req.Name,
		Department:  req.Department,
		Location:    req.Location,
		StartDate:   dateOnly(start),
		EndDate:     dateOnly(end),
		Status:      roster.RosterStatusDraft,
		Assignments: make(map[string][]string),
		TotalCost:   decimal.Zero,
	}

	created, err := s.RosterRepository.Create(ctx, r)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("failed to create roster: %w", err)
	}
	return created, nil
}

func (s *Service) GetRoster(ctx context.Context, id string) (roster.Roster, error) {
	return s.RosterRepository.GetByID(ctx, id)
}

func (s *Service) ListRosters(ctx context.Context) ([]roster.Roster, error) {
	return s.RosterRepository.List(ctx)
}

// GenerateShifts expands active templates across the date range. Shift
// ids derive from the template id and date, so regenerating the same
// range yields the same ids and assignment maps stay stable.
func (s *Service) GenerateShifts(_ context.Context, templates []roster.ShiftTemplate, start, end time.Time) []roster.Shift {
	start = dateOnly(start)
	end = dateOnly(end)

	var shifts []roster.Shift
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		for _, t := range templates {
			if !t.Active || !t.Recurrence.Matches(date) {
				continue
			}
			shifts = append(shifts, roster.Shift{
				ID:             shiftID(t.ID, date),
				TemplateID:     t.ID,
				Date:           date,
				StartTime:      t.StartTime,
				EndTime:        t.EndTime,
				BreakMinutes:   t.BreakMinutes,
				MinStaff:       t.MinStaff,
				MaxStaff:       t.MaxStaff,
				RequiredSkills: t.RequiredSkills,
				Location:       t.Location,
				ShiftType:      t.ShiftType,
				PayRate:        t.PayRate,
				Status:         roster.ShiftStatusUnassigned,
			})
		}
	}
	return shifts
}

func shiftID(templateID string, date time.Time) string {
	return templateID + ":" + date.Format("2006-01-02")
}

// AutoGenerate expands the chosen templates over the roster period and
// assigns staff shift by shift, best match first. Only one generation
// run per roster executes at a time.
func (s *Service) AutoGenerate(ctx context.Context, req roster.AutoGenerateRequest) (roster.Roster, roster.GenerationStats, error) {
	lock := s.locks.forRoster(req.RosterID)
	lock.Lock()
	defer lock.Unlock()

	r, err := s.RosterRepository.GetByID(ctx, req.RosterID)
	if err != nil {
		return roster.Roster{}, roster.GenerationStats{}, err
	}

	templates, err := s.ShiftTemplateRepository.GetByIDs(ctx, req.TemplateIDs)
	if err != nil {
		return roster.Roster{}, roster.GenerationStats{}, fmt.Errorf("failed to load shift templates: %w", err)
	}

	pool, err := s.workerRepo.GetByIDs(ctx, req.StaffPool)
	if err != nil {
		return roster.Roster{}, roster.GenerationStats{}, fmt.Errorf("failed to load staff pool: %w", err)
	}

	maxWeekly := req.Constraints.MaxHoursPerWeek
	if maxWeekly <= 0 {
		maxWeekly = defaultMaxHoursPerWeek
	}
	minRest := req.Constraints.MinRestHours
	if minRest <= 0 {
		minRest = defaultMinRestHours
	}

	shifts := s.GenerateShifts(ctx, templates, r.StartDate, r.EndDate)
	assignments := make(map[string][]string, len(shifts))
	workloads := make(map[string]*workload, len(pool))
	for _, w := range pool {
		workloads[w.ID] = &workload{}
	}

	stats := roster.GenerationStats{TotalShifts: len(shifts), EstimatedCost: decimal.Zero}
	totalCost := decimal.Zero

	rules := matching.Rules{
		PreferredLocationWeight: req.Rules.PreferredLocationWeight,
		SkillWeight:             req.Rules.SkillWeight,
		ShiftTypeWeight:         req.Rules.ShiftTypeWeight,
	}

	for i := range shifts {
		shift := &shifts[i]
		requirements := matching.ShiftRequirements{
			Date:           shift.Date,
			StartTime:      shift.StartTime,
			EndTime:        shift.EndTime,
			RequiredSkills: shift.RequiredSkills,
			Location:       shift.Location,
			ShiftType:      shift.ShiftType,
			MinimumStaff:   shift.MinStaff,
		}

		eligible, err := s.engine.FindEligibleStaff(ctx, requirements, pool)
		if err != nil {
			return roster.Roster{}, roster.GenerationStats{}, err
		}
		eligible = filterByWorkload(eligible, workloads, *shift, maxWeekly, minRest)

		selected := s.engine.SelectOptimalStaff(requirements, eligible, rules)
		workerIDs := make([]string, 0, len(selected))
		for _, c := range selected {
			workerIDs = append(workerIDs, c.Worker.ID)
			workloads[c.Worker.ID].record(*shift)
		}

		shift.AssignedWorkerIDs = workerIDs
		if len(workerIDs) >= shift.MinStaff {
			shift.Status = roster.ShiftStatusAssigned
			stats.AssignedShifts++
		} else {
			shift.Status = roster.ShiftStatusUnderstaffed
			stats.UnderstaffedShifts++
		}
		assignments[shift.ID] = workerIDs

		// Every generated shift counts toward scheduled hours for
		// capacity planning, staffed or not. Cost scales with the
		// assigned head count.
		stats.TotalHours += shift.DurationHours()
		workerHours := shift.DurationHours() * float64(len(workerIDs))
		totalCost = totalCost.Add(shift.PayRate.Mul(decimal.NewFromFloat(workerHours)))
	}

	stats.EstimatedCost = totalCost

	r.Shifts = shifts
	r.Assignments = assignments
	r.TotalHours = stats.TotalHours
	r.TotalCost = totalCost
	r.Status = roster.RosterStatusGenerated
	for i := range shifts {
		r.Shifts[i].RosterID = r.ID
	}

	updated, err := s.RosterRepository.Update(ctx, r)
	if err != nil {
		return roster.Roster{}, roster.GenerationStats{}, fmt.Errorf("failed to store generated roster: %w", err)
	}
	return updated, stats, nil
}

func (s *Service) ApproveRoster(ctx context.Context, id string) (roster.Roster, error) {
	return s.transition(ctx, id, roster.RosterStatusGenerated, roster.RosterStatusApproved)
}

func (s *Service) PublishRoster(ctx context.Context, id string) (roster.Roster, error) {
	return s.transition(ctx, id, roster.RosterStatusApproved, roster.RosterStatusPublished)
}

func (s *Service) transition(ctx context.Context, id string, from, to roster.RosterStatus) (roster.Roster, error) {
	lock := s.locks.forRoster(id)
	lock.Lock()
	defer lock.Unlock()

	r, err := s.RosterRepository.GetByID(ctx, id)
	if err != nil {
		return roster.Roster{}, err
	}
	if r.Status != from {
		return roster.Roster{}, roster.ErrInvalidTransition
	}
	r.Status = to

	updated, err := s.RosterRepository.Update(ctx, r)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("failed to update roster status: %w", err)
	}
	return updated, nil
}

// workload tracks what a worker has been handed during one generation
// run, for the weekly-hours and rest-gap constraints.
type workload struct {
	shifts []roster.Shift
}

func (w *workload) record(s roster.Shift) {
	w.shifts = append(w.shifts, s)
}

func (w *workload) weeklyHours(weekStart time.Time) float64 {
	weekEnd := weekStart.AddDate(0, 0, 7)
	var hours float64
	for _, s := range w.shifts {
		if !s.Date.Before(weekStart) && s.Date.Before(weekEnd) {
			hours += s.DurationHours()
		}
	}
	return hours
}

// startOfWeek returns the Monday of date's week.
func startOfWeek(date time.Time) time.Time {
	offset := (int(date.Weekday()) + 6) % 7
	return date.AddDate(0, 0, -offset)
}

func filterByWorkload(eligible []worker.Worker, workloads map[string]*workload, shift roster.Shift, maxWeekly, minRest float64) []worker.Worker {
	var kept []worker.Worker
	for _, w := range eligible {
		load, ok := workloads[w.ID]
		if !ok {
			continue
		}
		if load.weeklyHours(startOfWeek(shift.Date))+shift.DurationHours() > maxWeekly {
			continue
		}
		if !hasEnoughRest(load.shifts, shift, minRest) {
			continue
		}
		kept = append(kept, w)
	}
	return kept
}

// hasEnoughRest checks the gap between candidate and every shift the
// worker already holds, in both directions.
func hasEnoughRest(existing []roster.Shift, candidate roster.Shift, minRest float64) bool {
	cStart, cEnd, ok := absoluteWindow(candidate)
	if !ok {
		return true
	}
	for _, s := range existing {
		eStart, eEnd, ok := absoluteWindow(s)
		if !ok {
			continue
		}
		if cStart.Before(eEnd) && eStart.Before(cEnd) {
			return false
		}
		var gap time.Duration
		if !cStart.Before(eEnd) {
			gap = cStart.Sub(eEnd)
		} else {
			gap = eStart.Sub(cEnd)
		}
		if gap.Hours() < minRest {
			return false
		}
	}
	return true
}

func absoluteWindow(s roster.Shift) (time.Time, time.Time, bool) {
	startMin, ok := validator.ParseTimeOfDay(s.StartTime)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	endMin, ok := validator.ParseTimeOfDay(s.EndTime)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return s.Date.Add(time.Duration(startMin) * time.Minute),
		s.Date.Add(time.Duration(endMin) * time.Minute), true
}
