package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/rostering-backend-go/internal/domain/availability"
	"github.com/staffhub/rostering-backend-go/internal/domain/timeoff"
	"github.com/staffhub/rostering-backend-go/internal/domain/worker"
	"github.com/staffhub/rostering-backend-go/internal/pkg/clock"
	"github.com/staffhub/rostering-backend-go/internal/pkg/validator"
	"github.com/staffhub/rostering-backend-go/internal/repository/memory"
)

type testEnv struct {
	clock        *clock.Fixed
	workerRepo   worker.WorkerRepository
	profileRepo  availability.ProfileRepository
	overrideRepo availability.OverrideRepository
	timeOffRepo  timeoff.RequestRepository

	profiles  *ProfileService
	overrides *OverrideService
	resolver  *Resolver
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	clk := clock.NewFixed(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	workerRepo := memory.NewWorkerRepository(clk)
	profileRepo := memory.NewProfileRepository(clk)
	overrideRepo := memory.NewOverrideRepository(clk)
	timeOffRepo := memory.NewTimeOffRepository(clk)

	resolver := NewResolver(profileRepo, overrideRepo, timeOffRepo, clk)

	return &testEnv{
		clock:        clk,
		workerRepo:   workerRepo,
		profileRepo:  profileRepo,
		overrideRepo: overrideRepo,
		timeOffRepo:  timeOffRepo,
		profiles:     NewProfileService(profileRepo, workerRepo, resolver, clk),
		overrides:    NewOverrideService(overrideRepo, clk),
		resolver:     resolver,
	}
}

func (e *testEnv) createWorker(t *testing.T) worker.Worker {
	t.Helper()
	w, err := e.workerRepo.Create(context.Background(), worker.Worker{
		FullName: "Dana Reyes",
		Email:    "dana@example.com",
		Role:     worker.RoleStaff,
		Status:   worker.StatusActive,
	})
	require.NoError(t, err)
	return w
}

// weekdaysNineToFive marks Monday through Friday available 09:00-17:00.
func weekdaysNineToFive() [7]availability.WeekdayEntryRequest {
	var weekly [7]availability.WeekdayEntryRequest
	for d := time.Monday; d <= time.Friday; d++ {
		weekly[d] = availability.WeekdayEntryRequest{
			Available: true,
			StartTime: "09:00",
			EndTime:   "17:00",
		}
	}
	return weekly
}

func (e *testEnv) createProfile(t *testing.T, workerID string) availability.Profile {
	t.Helper()
	p, err := e.profiles.CreateOrUpdateProfile(context.Background(), availability.CreateProfileRequest{
		WorkerID:        workerID,
		EffectiveDate:   "2025-03-01",
		Weekly:          weekdaysNineToFive(),
		MaxHoursPerDay:  8,
		MaxHoursPerWeek: 40,
		MinRestHours:    10,
	})
	require.NoError(t, err)
	return p
}

func TestCreateProfileValidation(t *testing.T) {
	env := newTestEnv(t)
	w := env.createWorker(t)

	weekly := weekdaysNineToFive()
	weekly[time.Monday].StartTime = "18:00"
	weekly[time.Monday].EndTime = "09:00"

	_, err := env.profiles.CreateOrUpdateProfile(context.Background(), availability.CreateProfileRequest{
		WorkerID:        w.ID,
		EffectiveDate:   "not-a-date",
		Weekly:          weekly,
		MaxHoursPerDay:  30,
		MaxHoursPerWeek: 40,
	})
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	details := errs.ToMap()
	assert.Contains(t, details, "effective_date")
	assert.Contains(t, details, "weekly[1]")
	assert.Contains(t, details, "max_hours_per_day")
}

func TestCreateProfileSupersedesPrevious(t *testing.T) {
	env := newTestEnv(t)
	w := env.createWorker(t)

	first := env.createProfile(t, w.ID)
	env.clock.Advance(time.Hour)
	second := env.createProfile(t, w.ID)

	active, err := env.profileRepo.GetActiveByWorkerID(context.Background(), w.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	history, err := env.profiles.GetProfileHistory(context.Background(), w.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, first.ID, history[0].ID)
	assert.Equal(t, availability.ProfileStatusSuperseded, history[0].Status)
	assert.Equal(t, availability.ProfileStatusActive, history[1].Status)
}

func TestResolveWeeklyProfile(t *testing.T) {
	env := newTestEnv(t)
	w := env.createWorker(t)
	env.createProfile(t, w.ID)

	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	computed, err := env.resolver.ComputeAvailability(context.Background(), w.ID, monday)
	require.NoError(t, err)
	assert.True(t, computed.Available)
	assert.Equal(t, availability.ReasonWeeklyProfile, computed.Reason)
	require.NotNil(t, computed.Window)
	assert.Equal(t, "09:00", computed.Window.StartTime)
	assert.Equal(t, "17:00", computed.Window.EndTime)

	sunday := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	computed, err = env.resolver.ComputeAvailability(context.Background(), w.ID, sunday)
	require.NoError(t, err)
	assert.False(t, computed.Available)
	assert.Nil(t, computed.Window)
}

func TestResolveNoProfile(t *testing.T) {
	env := newTestEnv(t)
	w := env.createWorker(t)

	computed, err := env.resolver.ComputeAvailability(context.Background(), w.ID, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, computed.Available)
	assert.Equal(t, availability.ReasonNoProfile, computed.Reason)
}

func TestResolveApprovedTimeOffWins(t *testing.T) {
	env := newTestEnv(t)
	w := env.createWorker(t)
	env.createProfile(t, w.ID)

	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	// An override saying "available" loses to approved time off.
	_, err := env.overrides.CreateOverride(context.Background(), availability.CreateOverrideRequest{
		WorkerID:  w.ID,
		StartDate: "2025-03-03",
		EndDate:   "2025-03-03",
		Kind:      string(availability.OverrideTemporarilyAvailable),
		Replacement: availability.WeekdayEntryRequest{
			Available: true,
			StartTime: "08:00",
			EndTime:   "12:00",
		},
		CreatedBy: "manager-1",
	})
	require.NoError(t, err)

	created, err := env.timeOffRepo.Create(context.Background(), timeoff.Request{
		WorkerID:  w.ID,
		StartDate: monday,
		EndDate:   monday,
		Type:      timeoff.TypeVacation,
		Status:    timeoff.StatusPending,
	})
	require.NoError(t, err)
	_, err = env.timeOffRepo.UpdateStatus(context.Background(), created.ID, timeoff.StatusPending, timeoff.StatusApproved, timeoff.StatusUpdate{})
	require.NoError(t, err)

	computed, err := env.resolver.ComputeAvailability(context.Background(), w.ID, monday)
	require.NoError(t, err)
	assert.False(t, computed.Available)
	assert.Equal(t, availability.ReasonTimeOff, computed.Reason)
}

func TestResolveLatestOverrideWins(t *testing.T) {
	env := newTestEnv(t)
	w := env.createWorker(t)
	env.createProfile(t, w.ID)

	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	_, err := env.overrides.CreateOverride(context.Background(), availability.CreateOverrideRequest{
		WorkerID:  w.ID,
		StartDate: "2025-03-03",
		EndDate:   "2025-03-05",
		Kind:      string(availability.OverrideTemporarilyUnavailable),
		CreatedBy: "manager-1",
	})
	require.NoError(t, err)

	env.clock.Advance(time.Minute)

	_, err = env.overrides.CreateOverride(context.Background(), availability.CreateOverrideRequest{
		WorkerID:  w.ID,
		StartDate: "2025-03-03",
		EndDate:   "2025-03-05",
		Kind:      string(availability.OverrideScheduleChange),
		Replacement: availability.WeekdayEntryRequest{
			Available: true,
			StartTime: "13:00",
			EndTime:   "21:00",
		},
		CreatedBy: "manager-2",
	})
	require.NoError(t, err)

	computed, err := env.resolver.ComputeAvailability(context.Background(), w.ID, monday)
	require.NoError(t, err)
	assert.True(t, computed.Available)
	assert.Equal(t, availability.ReasonOverride, computed.Reason)
	require.NotNil(t, computed.Window)
	assert.Equal(t, "13:00", computed.Window.StartTime)
	assert.Equal(t, "21:00", computed.Window.EndTime)
}

func TestResolveOverrideLazyExpiry(t *testing.T) {
	env := newTestEnv(t)
	w := env.createWorker(t)
	env.createProfile(t, w.ID)

	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	_, err := env.overrides.CreateOverride(context.Background(), availability.CreateOverrideRequest{
		WorkerID:  w.ID,
		StartDate: "2025-03-03",
		EndDate:   "2025-03-03",
		Kind:      string(availability.OverrideTemporarilyUnavailable),
		CreatedBy: "manager-1",
	})
	require.NoError(t, err)

	computed, err := env.resolver.ComputeAvailability(context.Background(), w.ID, monday)
	require.NoError(t, err)
	assert.False(t, computed.Available)
	assert.Equal(t, availability.ReasonOverride, computed.Reason)

	// Once the range has passed, the stored row no longer applies even
	// though nothing updated its status.
	env.clock.Advance(7 * 24 * time.Hour)

	computed, err = env.resolver.ComputeAvailability(context.Background(), w.ID, monday)
	require.NoError(t, err)
	assert.Equal(t, availability.ReasonWeeklyProfile, computed.Reason)
	assert.True(t, computed.Available)

	live, err := env.overrides.ListOverrides(context.Background(), w.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, live)
}

func TestBulkAvailabilityRates(t *testing.T) {
	env := newTestEnv(t)
	w := env.createWorker(t)
	env.createProfile(t, w.ID)

	noProfile, err := env.workerRepo.Create(context.Background(), worker.Worker{
		FullName: "Sam Okafor",
		Email:    "sam@example.com",
		Role:     worker.RoleStaff,
		Status:   worker.StatusActive,
	})
	require.NoError(t, err)

	// 2025-03-03 is a Monday; the full week has five weekdays.
	result, err := env.profiles.BulkGetAvailability(context.Background(), availability.BulkAvailabilityRequest{
		WorkerIDs: []string{w.ID, noProfile.ID},
		StartDate: "2025-03-03",
		EndDate:   "2025-03-09",
	})
	require.NoError(t, err)
	require.Len(t, result.Summaries, 2)

	assert.Equal(t, 5, result.Summaries[0].DaysAvailable)
	assert.Equal(t, 7, result.Summaries[0].TotalDays)
	assert.InDelta(t, 5.0/7.0, result.Summaries[0].AvailabilityRate, 1e-9)

	assert.Equal(t, 0, result.Summaries[1].DaysAvailable)
	assert.InDelta(t, 0, result.Summaries[1].AvailabilityRate, 1e-9)

	require.Len(t, result.Workers, 2)
	require.Len(t, result.Workers[0].Days, 7)
	assert.Equal(t, availability.ReasonNoProfile, result.Workers[1].Days[0].Reason)
}
