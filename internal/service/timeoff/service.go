package timeoff

import (
	"context"
	"fmt"
	"time"

	"github.com/staffhub/rostering-backend-go/internal/domain/timeoff"
	"github.com/staffhub/rostering-backend-go/internal/domain/worker"
	"github.com/staffhub/rostering-backend-go/internal/pkg/clock"
	"github.com/staffhub/rostering-backend-go/internal/pkg/validator"
)

// Auto-approval thresholds.
const (
	autoApproveSickMaxDays  = 3
	autoApproveLeadMinDays  = 14
	autoApproveShortMaxDays = 1
)

const fullDayHours = 8.0

type RequestService struct {
	timeoff.RequestRepository
	worker.WorkerRepository
	clock clock.Clock
}

func NewRequestService(requestRepo timeoff.RequestRepository, workerRepo worker.WorkerRepository, clk clock.Clock) *RequestService {
	return &RequestService{
		RequestRepository: requestRepo,
		WorkerRepository:  workerRepo,
		clock:             clk,
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Submit records a time-off request, attaches advisory overlap
// conflicts, and applies the deterministic auto-approval rules.
func (s *RequestService) Submit(ctx context.Context, req timeoff.SubmitRequest) (timeoff.Request, error) {
	if _, err := s.WorkerRepository.GetByID(ctx, req.WorkerID); err != nil {
		return timeoff.Request{}, fmt.Errorf("failed to get worker by ID: %w", err)
	}

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
	if req.PartialDay {
		if req.PartialStartTime == nil || req.PartialEndTime == nil ||
			!validator.IsValidTimeOfDay(*req.PartialStartTime) || !validator.IsValidTimeOfDay(*req.PartialEndTime) {
			errs = append(errs, validator.ValidationError{Field: "partial_day", Message: "partial-day requests need HH:MM start and end times"})
		} else if !validator.TimeOfDayBefore(*req.PartialStartTime, *req.PartialEndTime) {
			errs = append(errs, validator.ValidationError{Field: "partial_end_time", Message: "must be after partial_start_time"})
		}
	}
	if len(errs) > 0 {
		return timeoff.Request{}, errs
	}

	start = dateOnly(start)
	end = dateOnly(end)

	businessDays := countBusinessDays(start, end)
	hours := fullDayHours * float64(businessDays)
	if req.PartialDay {
		startMin, _ := validator.ParseTimeOfDay(*req.PartialStartTime)
		endMin, _ := validator.ParseTimeOfDay(*req.PartialEndTime)
		hours = float64(endMin-startMin) / 60
	}

	now := s.clock.Now()
	absenceType := timeoff.Type(req.Type)

	// Overlaps with already-approved requests are advisory only.
	overlapping, err := s.RequestRepository.ListApprovedInRange(ctx, req.WorkerID, start, end)
	if err != nil {
		return timeoff.Request{}, fmt.Errorf("failed to check overlapping time off: %w", err)
	}
	conflicts := make([]timeoff.Conflict, 0, len(overlapping))
	for _, other := range overlapping {
		conflicts = append(conflicts, timeoff.Conflict{
			RequestID: other.ID,
			Type:      other.Type,
			StartDate: other.StartDate,
			EndDate:   other.EndDate,
		})
	}

	request := timeoff.Request{
		WorkerID:         req.WorkerID,
		StartDate:        start,
		EndDate:          end,
		Type:             absenceType,
		Reason:           req.Reason,
		PartialDay:       req.PartialDay,
		PartialStartTime: req.PartialStartTime,
		PartialEndTime:   req.PartialEndTime,
		BusinessDays:     businessDays,
		Hours:            hours,
		Priority:         derivePriority(absenceType, start, now),
		Conflicts:        conflicts,
		Status:           timeoff.StatusPending,
	}

	created, err := s.RequestRepository.Create(ctx, request)
	if err != nil {
		return timeoff.Request{}, fmt.Errorf("failed to create time-off request: %w", err)
	}

	if qualifiesForAutoApproval(created, now) {
		approver := timeoff.SystemAutoApprover
		approvedAt := now
		approved, err := s.RequestRepository.UpdateStatus(ctx, created.ID, timeoff.StatusPending, timeoff.StatusApproved, timeoff.StatusUpdate{
			ApprovedBy: &approver,
			ApprovedAt: &approvedAt,
		})
		if err != nil {
			return timeoff.Request{}, fmt.Errorf("failed to auto-approve time-off request: %w", err)
		}
		return approved, nil
	}

	return created, nil
}

func (s *RequestService) Approve(ctx context.Context, req timeoff.ApproveRequest) (timeoff.Request, error) {
	approvedAt := s.clock.Now()
	approved, err := s.RequestRepository.UpdateStatus(ctx, req.RequestID, timeoff.StatusPending, timeoff.StatusApproved, timeoff.StatusUpdate{
		ApprovedBy:    &req.ApproverID,
		ApprovedAt:    &approvedAt,
		ApprovalNotes: req.Notes,
	})
	if err != nil {
		return timeoff.Request{}, err
	}
	return approved, nil
}

func (s *RequestService) Reject(ctx context.Context, req timeoff.RejectRequest) (timeoff.Request, error) {
	if validator.IsEmpty(req.Reason) {
		return timeoff.Request{}, timeoff.ErrReasonRequired
	}

	approvedAt := s.clock.Now()
	rejected, err := s.RequestRepository.UpdateStatus(ctx, req.RequestID, timeoff.StatusPending, timeoff.StatusRejected, timeoff.StatusUpdate{
		ApprovedBy:      &req.ApproverID,
		ApprovedAt:      &approvedAt,
		RejectionReason: &req.Reason,
	})
	if err != nil {
		return timeoff.Request{}, err
	}
	return rejected, nil
}

// Cancel withdraws a pending request, or an approved one that has not
// started yet. Owner-versus-manager authority is the transport layer's
// concern; the service only enforces the state machine.
func (s *RequestService) Cancel(ctx context.Context, req timeoff.CancelRequest) (timeoff.Request, error) {
	request, err := s.RequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return timeoff.Request{}, err
	}

	switch request.Status {
	case timeoff.StatusPending:
	case timeoff.StatusApproved:
		if !dateOnly(s.clock.Now()).Before(request.StartDate) {
			return timeoff.Request{}, timeoff.ErrAlreadyStarted
		}
	default:
		return timeoff.Request{}, timeoff.ErrAlreadyProcessed
	}

	cancelledAt := s.clock.Now()
	cancelled, err := s.RequestRepository.UpdateStatus(ctx, req.RequestID, request.Status, timeoff.StatusCancelled, timeoff.StatusUpdate{
		CancelledBy: &req.CancelledBy,
		CancelledAt: &cancelledAt,
	})
	if err != nil {
		return timeoff.Request{}, err
	}
	return cancelled, nil
}

func (s *RequestService) GetRequest(ctx context.Context, id string) (timeoff.Request, error) {
	return s.RequestRepository.GetByID(ctx, id)
}

func (s *RequestService) ListWorkerRequests(ctx context.Context, workerID string) ([]timeoff.Request, error) {
	return s.RequestRepository.ListByWorkerID(ctx, workerID)
}

func countBusinessDays(start, end time.Time) int {
	days := 0
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		if date.Weekday() != time.Saturday && date.Weekday() != time.Sunday {
			days++
		}
	}
	return days
}

func calendarDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func leadDays(start, now time.Time) int {
	return int(start.Sub(dateOnly(now)).Hours() / 24)
}

func derivePriority(t timeoff.Type, start, now time.Time) timeoff.Priority {
	priority := timeoff.PriorityNormal
	switch t {
	case timeoff.TypeSick, timeoff.TypeBereavement, timeoff.TypeJuryDuty:
		priority = timeoff.PriorityHigh
	}
	if leadDays(start, now) < 7 {
		if priority == timeoff.PriorityHigh {
			return timeoff.PriorityUrgent
		}
		return timeoff.PriorityHigh
	}
	return priority
}

// qualifiesForAutoApproval applies the deterministic approval rules:
// short sick leave, or a one-day request submitted well in advance.
func qualifiesForAutoApproval(r timeoff.Request, now time.Time) bool {
	duration := calendarDays(r.StartDate, r.EndDate)
	if r.Type == timeoff.TypeSick && duration <= autoApproveSickMaxDays {
		return true
	}
	if leadDays(r.StartDate, now) > autoApproveLeadMinDays && duration <= autoApproveShortMaxDays {
		return true
	}
	return false
}
