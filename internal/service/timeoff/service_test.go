package timeoff

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffhub/rostering-backend-go/internal/domain/timeoff"
	"github.com/staffhub/rostering-backend-go/internal/domain/worker"
	"github.com/staffhub/rostering-backend-go/internal/pkg/clock"
	"github.com/staffhub/rostering-backend-go/internal/repository/memory"
)

func newTestService(t *testing.T) (*RequestService, *clock.Fixed, worker.Worker) {
	t.Helper()

	clk := clock.NewFixed(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	workerRepo := memory.NewWorkerRepository(clk)
	requestRepo := memory.NewTimeOffRepository(clk)

	w, err := workerRepo.Create(context.Background(), worker.Worker{
		FullName: "Dana Reyes",
		Email:    "dana@example.com",
		Role:     worker.RoleStaff,
		Status:   worker.StatusActive,
	})
	require.NoError(t, err)

	return NewRequestService(requestRepo, workerRepo, clk), clk, w
}

func TestSubmitComputesBusinessDaysAndHours(t *testing.T) {
	svc, _, w := newTestService(t)

	// 2025-03-03 (Monday) through 2025-03-09 (Sunday): five weekdays.
	created, err := svc.Submit(context.Background(), timeoff.SubmitRequest{
		WorkerID:  w.ID,
		StartDate: "2025-03-03",
		EndDate:   "2025-03-09",
		Type:      string(timeoff.TypeVacation),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, created.BusinessDays)
	assert.InDelta(t, 40.0, created.Hours, 1e-9)
	assert.Equal(t, timeoff.StatusPending, created.Status)
	assert.Equal(t, timeoff.PriorityHigh, created.Priority) // under a week of lead time
}

func TestSubmitPartialDayHours(t *testing.T) {
	svc, _, w := newTestService(t)

	start := "13:00"
	end := "17:30"
	created, err := svc.Submit(context.Background(), timeoff.SubmitRequest{
		WorkerID:         w.ID,
		StartDate:        "2025-04-01",
		EndDate:          "2025-04-01",
		Type:             string(timeoff.TypePersonal),
		PartialDay:       true,
		PartialStartTime: &start,
		PartialEndTime:   &end,
	})
	require.NoError(t, err)
	assert.InDelta(t, 4.5, created.Hours, 1e-9)
}

func TestAutoApproveShortSickLeave(t *testing.T) {
	svc, _, w := newTestService(t)

	created, err := svc.Submit(context.Background(), timeoff.SubmitRequest{
		WorkerID:  w.ID,
		StartDate: "2025-03-02",
		EndDate:   "2025-03-04", // three calendar days
		Type:      string(timeoff.TypeSick),
	})
	require.NoError(t, err)

	assert.Equal(t, timeoff.StatusApproved, created.Status)
	require.NotNil(t, created.ApprovedBy)
	assert.Equal(t, timeoff.SystemAutoApprover, *created.ApprovedBy)
}

func TestNoAutoApproveLongSickLeave(t *testing.T) {
	svc, _, w := newTestService(t)

	created, err := svc.Submit(context.Background(), timeoff.SubmitRequest{
		WorkerID:  w.ID,
		StartDate: "2025-03-02",
		EndDate:   "2025-03-05", // four calendar days
		Type:      string(timeoff.TypeSick),
	})
	require.NoError(t, err)
	assert.Equal(t, timeoff.StatusPending, created.Status)
}

func TestAutoApproveSingleDayWithLongLead(t *testing.T) {
	svc, _, w := newTestService(t)

	created, err := svc.Submit(context.Background(), timeoff.SubmitRequest{
		WorkerID:  w.ID,
		StartDate: "2025-03-20", // 19 days out
		EndDate:   "2025-03-20",
		Type:      string(timeoff.TypeVacation),
	})
	require.NoError(t, err)
	assert.Equal(t, timeoff.StatusApproved, created.Status)

	// Two days with the same lead time stays pending.
	pending, err := svc.Submit(context.Background(), timeoff.SubmitRequest{
		WorkerID:  w.ID,
		StartDate: "2025-03-25",
		EndDate:   "2025-03-26",
		Type:      string(timeoff.TypeVacation),
	})
	require.NoError(t, err)
	assert.Equal(t, timeoff.StatusPending, pending.Status)
}

func TestSubmitRecordsAdvisoryConflicts(t *testing.T) {
	svc, _, w := newTestService(t)

	first, err := svc.Submit(context.Background(), timeoff.SubmitRequest{
		WorkerID:  w.ID,
		StartDate: "2025-03-10",
		EndDate:   "2025-03-12",
		Type:      string(timeoff.TypeVacation),
	})
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), timeoff.ApproveRequest{RequestID: first.ID, ApproverID: "manager-1"})
	require.NoError(t, err)

	second, err := svc.Submit(context.Background(), timeoff.SubmitRequest{
		WorkerID:  w.ID,
		StartDate: "2025-03-12",
		EndDate:   "2025-03-14",
		Type:      string(timeoff.TypePersonal),
	})
	require.NoError(t, err)

	require.Len(t, second.Conflicts, 1)
	assert.Equal(t, first.ID, second.Conflicts[0].RequestID)
	assert.Equal(t, timeoff.StatusPending, second.Status) // conflicts never block
}

func TestRejectRequiresReason(t *testing.T) {
	svc, _, w := newTestService(t)

	created, err := svc.Submit(context.Background(), timeoff.SubmitRequest{
		WorkerID:  w.ID,
		StartDate: "2025-03-10",
		EndDate:   "2025-03-12",
		Type:      string(timeoff.TypeVacation),
	})
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), timeoff.RejectRequest{RequestID: created.ID, ApproverID: "manager-1", Reason: "  "})
	assert.ErrorIs(t, err, timeoff.ErrReasonRequired)

	rejected, err := svc.Reject(context.Background(), timeoff.RejectRequest{RequestID: created.ID, ApproverID: "manager-1", Reason: "coverage gap"})
	require.NoError(t, err)
	assert.Equal(t, timeoff.StatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "coverage gap", *rejected.RejectionReason)
}

func TestApproveRejectedRequestFails(t *testing.T) {
	svc, _, w := newTestService(t)

	created, err := svc.Submit(context.Background(), timeoff.SubmitRequest{
		WorkerID:  w.ID,
		StartDate: "2025-03-10",
		EndDate:   "2025-03-12",
		Type:      string(timeoff.TypeVacation),
	})
	require.NoError(t, err)

	_, err = svc.Reject(context.Background(), timeoff.RejectRequest{RequestID: created.ID, ApproverID: "manager-1", Reason: "coverage gap"})
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), timeoff.ApproveRequest{RequestID: created.ID, ApproverID: "manager-2"})
	assert.ErrorIs(t, err, timeoff.ErrAlreadyProcessed)
}

func TestConcurrentApproveSucceedsExactlyOnce(t *testing.T) {
	svc, _, w := newTestService(t)

	created, err := svc.Submit(context.Background(), timeoff.SubmitRequest{
		WorkerID:  w.ID,
		StartDate: "2025-03-10",
		EndDate:   "2025-03-12",
		Type:      string(timeoff.TypeVacation),
	})
	require.NoError(t, err)

	const attempts = 8
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, results[n] = svc.Approve(context.Background(), timeoff.ApproveRequest{RequestID: created.ID, ApproverID: "manager-1"})
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, timeoff.ErrAlreadyProcessed)
		}
	}
	assert.Equal(t, 1, successes)
}

func TestCancelApprovedBeforeStart(t *testing.T) {
	svc, clk, w := newTestService(t)

	created, err := svc.Submit(context.Background(), timeoff.SubmitRequest{
		WorkerID:  w.ID,
		StartDate: "2025-03-10",
		EndDate:   "2025-03-12",
		Type:      string(timeoff.TypeVacation),
	})
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), timeoff.ApproveRequest{RequestID: created.ID, ApproverID: "manager-1"})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), timeoff.CancelRequest{RequestID: created.ID, CancelledBy: w.ID})
	require.NoError(t, err)
	assert.Equal(t, timeoff.StatusCancelled, cancelled.Status)

	// A second approved request cannot be cancelled once it has started.
	second, err := svc.Submit(context.Background(), timeoff.SubmitRequest{
		WorkerID:  w.ID,
		StartDate: "2025-03-10",
		EndDate:   "2025-03-12",
		Type:      string(timeoff.TypeVacation),
	})
	require.NoError(t, err)
	_, err = svc.Approve(context.Background(), timeoff.ApproveRequest{RequestID: second.ID, ApproverID: "manager-1"})
	require.NoError(t, err)

	clk.Advance(10 * 24 * time.Hour)
	_, err = svc.Cancel(context.Background(), timeoff.CancelRequest{RequestID: second.ID, CancelledBy: w.ID})
	assert.ErrorIs(t, err, timeoff.ErrAlreadyStarted)
}
