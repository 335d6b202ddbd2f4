package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/staffhub/rostering-backend-go/internal/domain/timeoff"
	"github.com/staffhub/rostering-backend-go/internal/pkg/clock"
)

type timeOffRepository struct {
	mu       sync.Mutex
	requests map[string]timeoff.Request
	clock    clock.Clock
}

func NewTimeOffRepository(clk clock.Clock) timeoff.RequestRepository {
	return &timeOffRepository{
		requests: make(map[string]timeoff.Request),
		clock:    clk,
	}
}

func copyTimeOff(r timeoff.Request) timeoff.Request {
	c := r
	c.Conflicts = append([]timeoff.Conflict(nil), r.Conflicts...)
	return c
}

func (r *timeOffRepository) Create(ctx context.Context, req timeoff.Request) (timeoff.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	now := r.clock.Now()
	req.SubmittedAt = now
	req.CreatedAt = now
	req.UpdatedAt = now

	r.requests[req.ID] = copyTimeOff(req)
	return copyTimeOff(req), nil
}

func (r *timeOffRepository) GetByID(ctx context.Context, id string) (timeoff.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return timeoff.Request{}, timeoff.ErrRequestNotFound
	}
	return copyTimeOff(req), nil
}

func (r *timeOffRepository) ListByWorkerID(ctx context.Context, workerID string) ([]timeoff.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []timeoff.Request
	for _, req := range r.requests {
		if req.WorkerID == workerID {
			result = append(result, copyTimeOff(req))
		}
	}
	sortByCreatedAt(result, func(req timeoff.Request) sortKey { return sortKey{req.CreatedAt, req.ID} })
	return result, nil
}

func (r *timeOffRepository) ListApprovedInRange(ctx context.Context, workerID string, start, end time.Time) ([]timeoff.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []timeoff.Request
	for _, req := range r.requests {
		if req.WorkerID == workerID && req.Status == timeoff.StatusApproved && req.Overlaps(start, end) {
			result = append(result, copyTimeOff(req))
		}
	}
	sortByCreatedAt(result, func(req timeoff.Request) sortKey { return sortKey{req.CreatedAt, req.ID} })
	return result, nil
}

// UpdateStatus performs the transition only when the stored status
// still equals from. Two racing transitions therefore get exactly one
// success and one ErrAlreadyProcessed.
func (r *timeOffRepository) UpdateStatus(ctx context.Context, id string, from, to timeoff.Status, update timeoff.StatusUpdate) (timeoff.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return timeoff.Request{}, timeoff.ErrRequestNotFound
	}
	if req.Status != from {
		return timeoff.Request{}, timeoff.ErrAlreadyProcessed
	}

	req.Status = to
	if update.ApprovedBy != nil {
		req.ApprovedBy = update.ApprovedBy
	}
	if update.ApprovedAt != nil {
		req.ApprovedAt = update.ApprovedAt
	}
	if update.ApprovalNotes != nil {
		req.ApprovalNotes = update.ApprovalNotes
	}
	if update.RejectionReason != nil {
		req.RejectionReason = update.RejectionReason
	}
	if update.CancelledBy != nil {
		req.CancelledBy = update.CancelledBy
	}
	if update.CancelledAt != nil {
		req.CancelledAt = update.CancelledAt
	}
	req.UpdatedAt = r.clock.Now()

	r.requests[id] = copyTimeOff(req)
	return copyTimeOff(req), nil
}
