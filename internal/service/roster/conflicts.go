package roster

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/staffhub/rostering-backend-go/internal/domain/roster"
	"github.com/staffhub/rostering-backend-go/internal/domain/worker"
	"github.com/staffhub/rostering-backend-go/internal/pkg/validator"
)

// maxShiftHours is the longest single shift allowed before a finding
// is raised, measured wall-clock without deducting breaks.
const maxShiftHours = 12.0

// DetectConflicts scans a roster's assignments for double bookings,
// rest and overtime violations, skill mismatches, and over-length
// shifts. The scan is read-only and never mutates the roster.
func (s *Service) DetectConflicts(ctx context.Context, rosterID string) (roster.ConflictReport, error) {
	r, err := s.RosterRepository.GetByID(ctx, rosterID)
	if err != nil {
		return roster.ConflictReport{}, err
	}

	perWorker := make(map[string][]roster.Shift)
	for _, shift := range r.Shifts {
		for _, workerID := range shift.AssignedWorkerIDs {
			perWorker[workerID] = append(perWorker[workerID], shift)
		}
	}

	workerIDs := make([]string, 0, len(perWorker))
	for id := range perWorker {
		workerIDs = append(workerIDs, id)
	}
	sort.Strings(workerIDs)

	workers, err := s.workerRepo.GetByIDs(ctx, workerIDs)
	if err != nil {
		return roster.ConflictReport{}, fmt.Errorf("failed to load assigned workers: %w", err)
	}
	workersByID := make(map[string]worker.Worker, len(workers))
	for _, w := range workers {
		workersByID[w.ID] = w
	}

	var conflicts []roster.Conflict
	for _, workerID := range workerIDs {
		shifts := perWorker[workerID]
		sortShiftsChronologically(shifts)

		maxWeekly, minRest := s.workerLimits(ctx, workerID)

		conflicts = append(conflicts, doubleBookings(workerID, shifts)...)
		conflicts = append(conflicts, restViolations(workerID, shifts, minRest)...)
		conflicts = append(conflicts, overtimeFindings(workerID, shifts, maxWeekly)...)
		if w, ok := workersByID[workerID]; ok {
			conflicts = append(conflicts, skillMismatches(w, shifts)...)
		}
	}
	conflicts = append(conflicts, overLengthShifts(r.Shifts)...)

	return buildReport(rosterID, conflicts), nil
}

// workerLimits reads the rest and weekly-hour limits from the worker's
// active availability profile, falling back to the defaults when no
// profile exists.
func (s *Service) workerLimits(ctx context.Context, workerID string) (maxWeekly, minRest float64) {
	maxWeekly = defaultMaxHoursPerWeek
	minRest = defaultMinRestHours

	profile, err := s.profileRepo.GetActiveByWorkerID(ctx, workerID)
	if err != nil {
		// No profile (or a lookup failure) leaves the defaults in place.
		return maxWeekly, minRest
	}
	if profile.MaxHoursPerWeek > 0 {
		maxWeekly = profile.MaxHoursPerWeek
	}
	if profile.MinRestHours > 0 {
		minRest = profile.MinRestHours
	}
	return maxWeekly, minRest
}

func sortShiftsChronologically(shifts []roster.Shift) {
	sort.Slice(shifts, func(i, j int) bool {
		if !shifts[i].Date.Equal(shifts[j].Date) {
			return shifts[i].Date.Before(shifts[j].Date)
		}
		if shifts[i].StartTime != shifts[j].StartTime {
			return shifts[i].StartTime < shifts[j].StartTime
		}
		return shifts[i].ID < shifts[j].ID
	})
}

// doubleBookings reports one finding per overlapping same-day pair.
func doubleBookings(workerID string, shifts []roster.Shift) []roster.Conflict {
	var found []roster.Conflict
	for i := 0; i < len(shifts); i++ {
		for j := i + 1; j < len(shifts); j++ {
			a, b := shifts[i], shifts[j]
			if !a.Date.Equal(b.Date) {
				continue
			}
			if !validator.WindowsOverlap(a.StartTime, a.EndTime, b.StartTime, b.EndTime) {
				continue
			}
			found = append(found, roster.Conflict{
				Category: roster.ConflictDoubleBooking,
				Severity: roster.SeverityCritical,
				WorkerID: workerID,
				ShiftIDs: []string{a.ID, b.ID},
				Date:     a.Date,
				Detail:   fmt.Sprintf("shifts %s-%s and %s-%s overlap", a.StartTime, a.EndTime, b.StartTime, b.EndTime),
			})
		}
	}
	return found
}

// restViolations flags consecutive shifts separated by less rest than
// the worker's minimum. Overlapping pairs are the double-booking
// check's job and are skipped here.
func restViolations(workerID string, shifts []roster.Shift, minRest float64) []roster.Conflict {
	var found []roster.Conflict
	for i := 0; i+1 < len(shifts); i++ {
		_, prevEnd, ok := absoluteWindow(shifts[i])
		if !ok {
			continue
		}
		nextStart, _, ok := absoluteWindow(shifts[i+1])
		if !ok {
			continue
		}
		if nextStart.Before(prevEnd) {
			continue
		}
		gap := nextStart.Sub(prevEnd).Hours()
		if gap >= minRest {
			continue
		}
		found = append(found, roster.Conflict{
			Category: roster.ConflictInsufficientRest,
			Severity: roster.SeverityWarning,
			WorkerID: workerID,
			ShiftIDs: []string{shifts[i].ID, shifts[i+1].ID},
			Date:     shifts[i+1].Date,
			Detail:   fmt.Sprintf("only %.1f hours rest, minimum is %.1f", gap, minRest),
		})
	}
	return found
}

// overtimeFindings sums paid hours per Monday-anchored week and flags
// each week that exceeds the worker's cap. One finding per week.
func overtimeFindings(workerID string, shifts []roster.Shift, maxWeekly float64) []roster.Conflict {
	type week struct {
		hours    float64
		shiftIDs []string
	}
	weeks := make(map[time.Time]*week)
	for _, s := range shifts {
		start := startOfWeek(s.Date)
		w, ok := weeks[start]
		if !ok {
			w = &week{}
			weeks[start] = w
		}
		w.hours += s.DurationHours()
		w.shiftIDs = append(w.shiftIDs, s.ID)
	}

	starts := make([]time.Time, 0, len(weeks))
	for start := range weeks {
		starts = append(starts, start)
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i].Before(starts[j]) })

	var found []roster.Conflict
	for _, start := range starts {
		w := weeks[start]
		if w.hours <= maxWeekly {
			continue
		}
		found = append(found, roster.Conflict{
			Category: roster.ConflictOvertime,
			Severity: roster.SeverityWarning,
			WorkerID: workerID,
			ShiftIDs: w.shiftIDs,
			Date:     start,
			Detail:   fmt.Sprintf("%.1f hours scheduled in week of %s, cap is %.1f", w.hours, start.Format("2006-01-02"), maxWeekly),
		})
	}
	return found
}

func skillMismatches(w worker.Worker, shifts []roster.Shift) []roster.Conflict {
	var found []roster.Conflict
	for _, s := range shifts {
		var missing []string
		for _, skill := range s.RequiredSkills {
			if !validator.IsInSlice(skill, w.Skills) {
				missing = append(missing, skill)
			}
		}
		if len(missing) == 0 {
			continue
		}
		found = append(found, roster.Conflict{
			Category: roster.ConflictSkillMismatch,
			Severity: roster.SeverityCritical,
			WorkerID: w.ID,
			ShiftIDs: []string{s.ID},
			Date:     s.Date,
			Detail:   fmt.Sprintf("missing required skills: %v", missing),
		})
	}
	return found
}

// overLengthShifts flags shifts whose wall-clock window exceeds the
// single-shift maximum, regardless of who is assigned.
func overLengthShifts(shifts []roster.Shift) []roster.Conflict {
	var found []roster.Conflict
	for _, s := range shifts {
		startMin, okA := validator.ParseTimeOfDay(s.StartTime)
		endMin, okB := validator.ParseTimeOfDay(s.EndTime)
		if !okA || !okB {
			continue
		}
		length := float64(endMin-startMin) / 60
		if length <= maxShiftHours {
			continue
		}
		found = append(found, roster.Conflict{
			Category: roster.ConflictLaborLaw,
			Severity: roster.SeverityCritical,
			ShiftIDs: []string{s.ID},
			Date:     s.Date,
			Detail:   fmt.Sprintf("shift runs %.1f hours, maximum is %.1f", length, maxShiftHours),
		})
	}
	return found
}

func buildReport(rosterID string, conflicts []roster.Conflict) roster.ConflictReport {
	report := roster.ConflictReport{
		RosterID:   rosterID,
		ByCategory: make(map[roster.ConflictCategory][]roster.Conflict),
		Counts:     make(map[roster.ConflictCategory]int),
		BySeverity: make(map[roster.Severity]int),
	}
	for _, c := range conflicts {
		report.ByCategory[c.Category] = append(report.ByCategory[c.Category], c)
		report.Counts[c.Category]++
		report.BySeverity[c.Severity]++
		report.Total++
	}
	return report
}
