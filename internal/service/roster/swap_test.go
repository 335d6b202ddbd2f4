package roster

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/rostering-backend-go/internal/domain/roster"
	"github.com/staffhub/rostering-backend-go/internal/domain/worker"
	"github.com/staffhub/rostering-backend-go/internal/pkg/validator"
)

// setupSwapRoster stores a roster where ada holds the Monday shift and
// ben holds the Tuesday shift.
func setupSwapRoster(t *testing.T, env *rosterEnv, skills []string) (roster.Roster, worker.Worker, worker.Worker) {
	t.Helper()

	ada := env.addWorker(t, "ada", []string{"barista", "latte"})
	ben := env.addWorker(t, "ben", []string{"barista", "latte"})

	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	r := env.storeRoster(t, []roster.Shift{
		testShift("s1", monday, "09:00", "17:00", skills, []string{ada.ID}),
		testShift("s2", monday.AddDate(0, 0, 1), "09:00", "17:00", skills, []string{ben.ID}),
	})
	return r, ada, ben
}

func submitSwap(t *testing.T, env *rosterEnv, r roster.Roster, ada, ben worker.Worker) roster.SwapRequest {
	t.Helper()

	swap, err := env.swaps.SubmitSwap(context.Background(), roster.CreateSwapRequest{
		RosterID:           r.ID,
		RequesterID:        ada.ID,
		RequesterShiftID:   "s1",
		CounterpartID:      ben.ID,
		CounterpartShiftID: "s2",
		Reason:             "appointment",
	})
	require.NoError(t, err)
	return swap
}

func TestSubmitSwap(t *testing.T) {
	env := newRosterEnv(t)
	r, ada, ben := setupSwapRoster(t, env, nil)

	swap := submitSwap(t, env, r, ada, ben)
	assert.Equal(t, roster.SwapStatusPending, swap.Status)
	assert.True(t, swap.ExpiresAt.Equal(env.clock.Now().AddDate(0, 0, 7)))

	listed, err := env.swaps.ListSwaps(context.Background(), r.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, swap.ID, listed[0].ID)
}

func TestSubmitSwapValidation(t *testing.T) {
	env := newRosterEnv(t)
	r, ada, ben := setupSwapRoster(t, env, nil)

	_, err := env.swaps.SubmitSwap(context.Background(), roster.CreateSwapRequest{
		RosterID:           r.ID,
		RequesterID:        ada.ID,
		RequesterShiftID:   "s1",
		CounterpartID:      ben.ID,
		CounterpartShiftID: "s1",
	})
	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "counterpart_shift_id")

	// ada does not hold s2.
	_, err = env.swaps.SubmitSwap(context.Background(), roster.CreateSwapRequest{
		RosterID:           r.ID,
		RequesterID:        ada.ID,
		RequesterShiftID:   "s2",
		CounterpartID:      ben.ID,
		CounterpartShiftID: "s1",
	})
	assert.ErrorIs(t, err, roster.ErrSwapShiftMismatch)

	_, err = env.swaps.SubmitSwap(context.Background(), roster.CreateSwapRequest{
		RosterID:           r.ID,
		RequesterID:        ada.ID,
		RequesterShiftID:   "missing",
		CounterpartID:      ben.ID,
		CounterpartShiftID: "s2",
	})
	assert.ErrorIs(t, err, roster.ErrShiftNotFound)

	_, err = env.swaps.SubmitSwap(context.Background(), roster.CreateSwapRequest{
		RosterID:           "missing",
		RequesterID:        ada.ID,
		RequesterShiftID:   "s1",
		CounterpartID:      ben.ID,
		CounterpartShiftID: "s2",
	})
	assert.ErrorIs(t, err, roster.ErrRosterNotFound)
}

func TestApproveSwapExchangesAssignments(t *testing.T) {
	env := newRosterEnv(t)
	r, ada, ben := setupSwapRoster(t, env, []string{"barista"})
	swap := submitSwap(t, env, r, ada, ben)

	approved, err := env.swaps.ApproveSwap(context.Background(), swap.ID, "manager-1")
	require.NoError(t, err)

	assert.Equal(t, roster.SwapStatusApproved, approved.Status)
	require.NotNil(t, approved.DecidedBy)
	assert.Equal(t, "manager-1", *approved.DecidedBy)
	assert.NotNil(t, approved.DecidedAt)

	stored, err := env.rosterRepo.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{ben.ID}, stored.Shifts[0].AssignedWorkerIDs)
	assert.Equal(t, []string{ada.ID}, stored.Shifts[1].AssignedWorkerIDs)
	assert.Equal(t, []string{ben.ID}, stored.Assignments["s1"])
	assert.Equal(t, []string{ada.ID}, stored.Assignments["s2"])
}

func TestApproveSwapRejectsMissingSkills(t *testing.T) {
	env := newRosterEnv(t)
	r, ada, ben := setupSwapRoster(t, env, nil)
	swap := submitSwap(t, env, r, ada, ben)

	// s2 now demands a skill ada lost after submission.
	stored, err := env.rosterRepo.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	stored.Shifts[1].RequiredSkills = []string{"forklift"}
	_, err = env.rosterRepo.Update(context.Background(), stored)
	require.NoError(t, err)

	_, err = env.swaps.ApproveSwap(context.Background(), swap.ID, "manager-1")
	assert.ErrorIs(t, err, roster.ErrSwapIneligible)

	current, err := env.swaps.SwapRequestRepository.GetByID(context.Background(), swap.ID)
	require.NoError(t, err)
	assert.Equal(t, roster.SwapStatusPending, current.Status)
}

func TestApproveSwapChecksAvailability(t *testing.T) {
	env := newRosterEnv(t)

	ada := env.addWorker(t, "ada", []string{"barista"})
	ben := env.addWorker(t, "ben", []string{"barista"})

	// ben's shift falls on a Saturday, outside ada's weekday profile.
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	r := env.storeRoster(t, []roster.Shift{
		testShift("s1", monday, "09:00", "17:00", nil, []string{ada.ID}),
		testShift("s2", saturday, "09:00", "17:00", nil, []string{ben.ID}),
	})
	swap := submitSwap(t, env, r, ada, ben)

	_, err := env.swaps.ApproveSwap(context.Background(), swap.ID, "manager-1")
	assert.ErrorIs(t, err, roster.ErrSwapIneligible)
}

func TestApproveSwapAfterReassignment(t *testing.T) {
	env := newRosterEnv(t)
	r, ada, ben := setupSwapRoster(t, env, nil)
	swap := submitSwap(t, env, r, ada, ben)

	// The roster was regenerated and ada no longer holds s1.
	stored, err := env.rosterRepo.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	stored.Shifts[0].AssignedWorkerIDs = []string{ben.ID}
	_, err = env.rosterRepo.Update(context.Background(), stored)
	require.NoError(t, err)

	_, err = env.swaps.ApproveSwap(context.Background(), swap.ID, "manager-1")
	assert.ErrorIs(t, err, roster.ErrSwapShiftMismatch)
}

func TestApproveSwapExpiresLazily(t *testing.T) {
	env := newRosterEnv(t)
	r, ada, ben := setupSwapRoster(t, env, nil)
	swap := submitSwap(t, env, r, ada, ben)

	env.clock.Advance(8 * 24 * time.Hour)

	_, err := env.swaps.ApproveSwap(context.Background(), swap.ID, "manager-1")
	assert.ErrorIs(t, err, roster.ErrSwapExpired)

	current, err := env.swaps.SwapRequestRepository.GetByID(context.Background(), swap.ID)
	require.NoError(t, err)
	assert.Equal(t, roster.SwapStatusExpired, current.Status)

	// Assignments are untouched.
	stored, err := env.rosterRepo.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{ada.ID}, stored.Shifts[0].AssignedWorkerIDs)
}

func TestRejectSwap(t *testing.T) {
	env := newRosterEnv(t)
	r, ada, ben := setupSwapRoster(t, env, nil)
	swap := submitSwap(t, env, r, ada, ben)

	rejected, err := env.swaps.RejectSwap(context.Background(), swap.ID, "manager-1")
	require.NoError(t, err)
	assert.Equal(t, roster.SwapStatusRejected, rejected.Status)

	_, err = env.swaps.ApproveSwap(context.Background(), swap.ID, "manager-1")
	assert.ErrorIs(t, err, roster.ErrSwapProcessed)
}
