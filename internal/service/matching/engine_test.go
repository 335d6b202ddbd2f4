package matching

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/rostering-backend-go/internal/domain/availability"
	"github.com/staffhub/rostering-backend-go/internal/domain/worker"
	"github.com/staffhub/rostering-backend-go/internal/pkg/clock"
	"github.com/staffhub/rostering-backend-go/internal/repository/memory"
	availabilityService "github.com/staffhub/rostering-backend-go/internal/service/availability"
)

type engineEnv struct {
	clock       *clock.Fixed
	workerRepo  worker.WorkerRepository
	profileRepo availability.ProfileRepository
	profiles    *availabilityService.ProfileService
	engine      *Engine
}

func newEngineEnv(t *testing.T) *engineEnv {
	t.Helper()

	clk := clock.NewFixed(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	workerRepo := memory.NewWorkerRepository(clk)
	profileRepo := memory.NewProfileRepository(clk)
	overrideRepo := memory.NewOverrideRepository(clk)
	timeOffRepo := memory.NewTimeOffRepository(clk)

	resolver := availabilityService.NewResolver(profileRepo, overrideRepo, timeOffRepo, clk)

	return &engineEnv{
		clock:       clk,
		workerRepo:  workerRepo,
		profileRepo: profileRepo,
		profiles:    availabilityService.NewProfileService(profileRepo, workerRepo, resolver, clk),
		engine:      NewEngine(resolver, profileRepo, workerRepo),
	}
}

// addWorker creates a worker together with a weekday 09:00-17:00
// availability profile unless withProfile is false.
func (e *engineEnv) addWorker(t *testing.T, name string, skills []string, withProfile bool) worker.Worker {
	t.Helper()

	w, err := e.workerRepo.Create(context.Background(), worker.Worker{
		FullName:            name,
		Email:               fmt.Sprintf("%s@example.com", name),
		Role:                worker.RoleStaff,
		Skills:              skills,
		PreferredLocations:  []string{"downtown"},
		PreferredShiftTypes: []string{"morning"},
		Status:              worker.StatusActive,
	})
	require.NoError(t, err)

	if withProfile {
		var weekly [7]availability.WeekdayEntryRequest
		for d := time.Monday; d <= time.Friday; d++ {
			weekly[d] = availability.WeekdayEntryRequest{Available: true, StartTime: "09:00", EndTime: "17:00"}
		}
		_, err = e.profiles.CreateOrUpdateProfile(context.Background(), availability.CreateProfileRequest{
			WorkerID:        w.ID,
			EffectiveDate:   "2025-03-01",
			Weekly:          weekly,
			MaxHoursPerDay:  8,
			MaxHoursPerWeek: 40,
			MinRestHours:    10,
		})
		require.NoError(t, err)
	}
	return w
}

var monday = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func TestFindEligibleStaffFilters(t *testing.T) {
	env := newEngineEnv(t)

	qualified := env.addWorker(t, "ada", []string{"barista", "cash"}, true)
	noProfile := env.addWorker(t, "ben", []string{"barista"}, false)
	missingSkill := env.addWorker(t, "cleo", []string{"cash"}, true)

	eligible, err := env.engine.FindEligibleStaff(context.Background(), ShiftRequirements{
		Date:           monday,
		RequiredSkills: []string{"barista"},
	}, []worker.Worker{qualified, noProfile, missingSkill})
	require.NoError(t, err)

	require.Len(t, eligible, 1)
	assert.Equal(t, qualified.ID, eligible[0].ID)
}

func TestScoreWeights(t *testing.T) {
	env := newEngineEnv(t)

	// Both skills held, preferred location and shift type matched.
	full := env.addWorker(t, "ada", []string{"barista", "cash"}, true)
	// Same skills but the shift runs at a location ada prefers and ben
	// does not.
	elsewhere := env.addWorker(t, "ben", []string{"barista", "cash"}, true)
	elsewhere.PreferredLocations = []string{"uptown"}
	elsewhere.PreferredShiftTypes = nil

	req := ShiftRequirements{
		Date:           monday,
		RequiredSkills: []string{"barista", "cash"},
		Location:       "downtown",
		ShiftType:      "morning",
	}

	ranked := env.engine.SelectOptimalStaff(req, []worker.Worker{elsewhere, full}, Rules{})
	require.Len(t, ranked, 2)

	// 100 + 2*3 skills + 5 shift type = 111 for the full match.
	assert.Equal(t, full.ID, ranked[0].Worker.ID)
	assert.Equal(t, 111, ranked[0].Score)
	// 100 - 10 location + 2*3 skills = 96 without the preferences.
	assert.Equal(t, elsewhere.ID, ranked[1].Worker.ID)
	assert.Equal(t, 96, ranked[1].Score)
}

func TestCustomRulesOverrideWeights(t *testing.T) {
	env := newEngineEnv(t)
	w := env.addWorker(t, "ada", []string{"barista"}, true)

	req := ShiftRequirements{Date: monday, RequiredSkills: []string{"barista"}}
	ranked := env.engine.SelectOptimalStaff(req, []worker.Worker{w}, Rules{SkillWeight: 20})
	require.Len(t, ranked, 1)
	assert.Equal(t, 120, ranked[0].Score)
}

func TestTiedScoresKeepPoolOrder(t *testing.T) {
	env := newEngineEnv(t)

	first := env.addWorker(t, "ada", []string{"barista"}, true)
	second := env.addWorker(t, "ben", []string{"barista"}, true)

	req := ShiftRequirements{Date: monday, RequiredSkills: []string{"barista"}}
	ranked := env.engine.SelectOptimalStaff(req, []worker.Worker{second, first}, Rules{})
	require.Len(t, ranked, 2)
	assert.Equal(t, ranked[0].Score, ranked[1].Score)
	assert.Equal(t, second.ID, ranked[0].Worker.ID)
	assert.Equal(t, first.ID, ranked[1].Worker.ID)
}

func TestSelectOptimalStaffLimit(t *testing.T) {
	env := newEngineEnv(t)

	best := env.addWorker(t, "ada", []string{"barista"}, true)
	other := env.addWorker(t, "ben", []string{"barista"}, true)
	other.PreferredShiftTypes = nil

	req := ShiftRequirements{
		Date:           monday,
		RequiredSkills: []string{"barista"},
		ShiftType:      "morning",
		MinimumStaff:   1,
	}
	ranked := env.engine.SelectOptimalStaff(req, []worker.Worker{other, best}, Rules{})
	require.Len(t, ranked, 1)
	assert.Equal(t, best.ID, ranked[0].Worker.ID)
}

func TestFindAvailableStaff(t *testing.T) {
	env := newEngineEnv(t)

	kept := env.addWorker(t, "ada", []string{"barista"}, true)
	excluded := env.addWorker(t, "ben", []string{"barista"}, true)
	env.addWorker(t, "cleo", []string{"cash"}, true)

	result, err := env.engine.FindAvailableStaff(context.Background(), ShiftRequirements{
		Date:           monday,
		RequiredSkills: []string{"barista"},
		Location:       "downtown",
		ShiftType:      "morning",
		MinimumStaff:   3,
		ExcludeIDs:     []string{excluded.ID},
	})
	require.NoError(t, err)

	require.Len(t, result.Candidates, 1)
	assert.Equal(t, kept.ID, result.Candidates[0].Worker.ID)
	assert.False(t, result.MinimumMet)
	require.Len(t, result.Recommendations, 2)
	assert.Equal(t, "insufficient staff: 1 available of 3 required", result.Recommendations[0])
	assert.Equal(t, "1 excellent matches", result.Recommendations[1])
}

func TestFindAvailableStaffMinimumMet(t *testing.T) {
	env := newEngineEnv(t)

	env.addWorker(t, "ada", []string{"barista"}, true)
	env.addWorker(t, "ben", []string{"barista"}, true)

	result, err := env.engine.FindAvailableStaff(context.Background(), ShiftRequirements{
		Date:           monday,
		RequiredSkills: []string{"barista"},
		MinimumStaff:   2,
	})
	require.NoError(t, err)

	assert.True(t, result.MinimumMet)
	require.Len(t, result.Candidates, 2)
}
