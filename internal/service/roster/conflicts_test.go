package roster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/rostering-backend-go/internal/domain/roster"
)

func testShift(id string, date time.Time, start, end string, skills, workerIDs []string) roster.Shift {
	return roster.Shift{
		ID:                id,
		Date:              date,
		StartTime:         start,
		EndTime:           end,
		MinStaff:          1,
		MaxStaff:          2,
		RequiredSkills:    skills,
		AssignedWorkerIDs: workerIDs,
		Status:            roster.ShiftStatusAssigned,
	}
}

func (e *rosterEnv) storeRoster(t *testing.T, shifts []roster.Shift) roster.Roster {
	t.Helper()

	assignments := make(map[string][]string, len(shifts))
	for _, s := range shifts {
		assignments[s.ID] = s.AssignedWorkerIDs
	}
	r, err := e.rosterRepo.Create(context.Background(), roster.Roster{
		Name:        "scan target",
		Department:  "cafe",
		Location:    "downtown",
		StartDate:   time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		Status:      roster.RosterStatusGenerated,
		Shifts:      shifts,
		Assignments: assignments,
	})
	require.NoError(t, err)
	return r
}

func TestDetectDoubleBooking(t *testing.T) {
	env := newRosterEnv(t)
	ada := env.addWorker(t, "ada", []string{"barista"})

	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	r := env.storeRoster(t, []roster.Shift{
		testShift("s1", day, "09:00", "13:00", nil, []string{ada.ID}),
		testShift("s2", day, "12:00", "16:00", nil, []string{ada.ID}),
	})

	report, err := env.service.DetectConflicts(context.Background(), r.ID)
	require.NoError(t, err)

	assert.Equal(t, r.ID, report.RosterID)
	assert.Equal(t, 1, report.Total)
	require.Len(t, report.ByCategory[roster.ConflictDoubleBooking], 1)

	c := report.ByCategory[roster.ConflictDoubleBooking][0]
	assert.Equal(t, roster.SeverityCritical, c.Severity)
	assert.Equal(t, ada.ID, c.WorkerID)
	assert.Equal(t, []string{"s1", "s2"}, c.ShiftIDs)
	assert.Equal(t, 1, report.BySeverity[roster.SeverityCritical])
}

func TestBackToBackShiftsDoNotDoubleBook(t *testing.T) {
	env := newRosterEnv(t)
	ada := env.addWorker(t, "ada", []string{"barista"})

	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	r := env.storeRoster(t, []roster.Shift{
		testShift("s1", day, "09:00", "13:00", nil, []string{ada.ID}),
		testShift("s2", day, "13:00", "17:00", nil, []string{ada.ID}),
	})

	report, err := env.service.DetectConflicts(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Empty(t, report.ByCategory[roster.ConflictDoubleBooking])
	// The zero-hour turnaround is still a rest finding.
	assert.Len(t, report.ByCategory[roster.ConflictInsufficientRest], 1)
}

func TestDetectInsufficientRest(t *testing.T) {
	env := newRosterEnv(t)
	// No availability profile, so the 8 hour default applies.
	ada := env.addWorkerWithoutProfile(t, "ada", []string{"barista"})

	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	r := env.storeRoster(t, []roster.Shift{
		testShift("s1", monday, "13:00", "21:00", nil, []string{ada.ID}),
		testShift("s2", tuesday, "03:00", "07:00", nil, []string{ada.ID}),
	})

	report, err := env.service.DetectConflicts(context.Background(), r.ID)
	require.NoError(t, err)

	require.Len(t, report.ByCategory[roster.ConflictInsufficientRest], 1)
	c := report.ByCategory[roster.ConflictInsufficientRest][0]
	assert.Equal(t, roster.SeverityWarning, c.Severity)
	assert.Equal(t, []string{"s1", "s2"}, c.ShiftIDs)
	assert.Contains(t, c.Detail, "6.0 hours rest")
}

func TestDetectWeeklyOvertime(t *testing.T) {
	env := newRosterEnv(t)
	// Profile carries a 40 hour weekly cap and a 10 hour rest minimum.
	ada := env.addWorker(t, "ada", []string{"barista"})

	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	var shifts []roster.Shift
	for i := 0; i < 6; i++ {
		shifts = append(shifts, testShift(
			"s"+string(rune('1'+i)), monday.AddDate(0, 0, i), "09:00", "17:00", nil, []string{ada.ID}))
	}
	r := env.storeRoster(t, shifts)

	report, err := env.service.DetectConflicts(context.Background(), r.ID)
	require.NoError(t, err)

	require.Len(t, report.ByCategory[roster.ConflictOvertime], 1)
	c := report.ByCategory[roster.ConflictOvertime][0]
	assert.Equal(t, roster.SeverityWarning, c.Severity)
	assert.Equal(t, ada.ID, c.WorkerID)
	assert.Len(t, c.ShiftIDs, 6)
	assert.True(t, c.Date.Equal(monday))
	assert.Contains(t, c.Detail, "48.0 hours")
}

func TestDetectSkillMismatch(t *testing.T) {
	env := newRosterEnv(t)
	ada := env.addWorker(t, "ada", []string{"cash"})

	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	r := env.storeRoster(t, []roster.Shift{
		testShift("s1", day, "09:00", "17:00", []string{"barista"}, []string{ada.ID}),
	})

	report, err := env.service.DetectConflicts(context.Background(), r.ID)
	require.NoError(t, err)

	require.Len(t, report.ByCategory[roster.ConflictSkillMismatch], 1)
	c := report.ByCategory[roster.ConflictSkillMismatch][0]
	assert.Equal(t, roster.SeverityCritical, c.Severity)
	assert.Contains(t, c.Detail, "barista")
}

func TestDetectOverLengthShift(t *testing.T) {
	env := newRosterEnv(t)

	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	// 13 wall-clock hours, flagged even with nobody assigned.
	r := env.storeRoster(t, []roster.Shift{
		testShift("s1", day, "08:00", "21:00", nil, nil),
	})

	report, err := env.service.DetectConflicts(context.Background(), r.ID)
	require.NoError(t, err)

	require.Len(t, report.ByCategory[roster.ConflictLaborLaw], 1)
	c := report.ByCategory[roster.ConflictLaborLaw][0]
	assert.Equal(t, roster.SeverityCritical, c.Severity)
	assert.Empty(t, c.WorkerID)
	assert.Equal(t, []string{"s1"}, c.ShiftIDs)
}

func TestConflictReportCounts(t *testing.T) {
	env := newRosterEnv(t)
	ada := env.addWorker(t, "ada", []string{"barista"})

	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	r := env.storeRoster(t, []roster.Shift{
		testShift("s1", day, "09:00", "13:00", nil, []string{ada.ID}),
		testShift("s2", day, "12:00", "16:00", nil, []string{ada.ID}),
		testShift("s3", day.AddDate(0, 0, 1), "08:00", "21:00", nil, nil),
	})

	report, err := env.service.DetectConflicts(context.Background(), r.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Counts[roster.ConflictDoubleBooking])
	assert.Equal(t, 1, report.Counts[roster.ConflictLaborLaw])
	assert.Equal(t, 2, report.BySeverity[roster.SeverityCritical])
}

func TestCleanRosterHasNoConflicts(t *testing.T) {
	env := newRosterEnv(t)
	ada := env.addWorker(t, "ada", []string{"barista"})

	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	r := env.storeRoster(t, []roster.Shift{
		testShift("s1", monday, "09:00", "17:00", []string{"barista"}, []string{ada.ID}),
		testShift("s2", monday.AddDate(0, 0, 1), "09:00", "17:00", []string{"barista"}, []string{ada.ID}),
	})

	report, err := env.service.DetectConflicts(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Zero(t, report.Total)
}
