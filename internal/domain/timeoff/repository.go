package timeoff

import (
	"context"
	"time"
)

// StatusUpdate carries the fields written alongside a status transition.
type StatusUpdate struct {
	ApprovedBy      *string
	ApprovedAt      *time.Time
	ApprovalNotes   *string
	RejectionReason *string
	CancelledBy     *string
	CancelledAt     *time.Time
}

// RequestRepository - interface for time-off requests.
// UpdateStatus is a compare-and-swap: it must fail with
// ErrAlreadyProcessed unless the stored status equals from, so that two
// concurrent transitions on one request yield exactly one success.
type RequestRepository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	ListByWorkerID(ctx context.Context, workerID string) ([]Request, error)
	ListApprovedInRange(ctx context.Context, workerID string, start, end time.Time) ([]Request, error)
	UpdateStatus(ctx context.Context, id string, from, to Status, update StatusUpdate) (Request, error)
}
