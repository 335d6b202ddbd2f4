package roster

import (
	"context"
	"fmt"

	"github.com/staffhub/rostering-backend-go/internal/domain/availability"
	"github.com/staffhub/rostering-backend-go/internal/domain/roster"
	"github.com/staffhub/rostering-backend-go/internal/domain/worker"
	"github.com/staffhub/rostering-backend-go/internal/pkg/clock"
	"github.com/staffhub/rostering-backend-go/internal/pkg/validator"
)

// SwapService manages pairwise shift exchanges. Approval re-verifies
// assignments and eligibility at decision time, not submission time,
// because the roster may have been regenerated in between.
type SwapService struct {
	roster.SwapRequestRepository
	rosterRepo roster.RosterRepository
	workerRepo worker.WorkerRepository
	resolver   availability.Resolver
	locks      *Locks
	clock      clock.Clock
}

func NewSwapService(
	swapRepo roster.SwapRequestRepository,
	rosterRepo roster.RosterRepository,
	workerRepo worker.WorkerRepository,
	resolver availability.Resolver,
	locks *Locks,
	clk clock.Clock,
) *SwapService {
	return &SwapService{
		SwapRequestRepository: swapRepo,
		rosterRepo:            rosterRepo,
		workerRepo:            workerRepo,
		resolver:              resolver,
		locks:                 locks,
		clock:                 clk,
	}
}

func (s *SwapService) SubmitSwap(ctx context.Context, req roster.CreateSwapRequest) (roster.SwapRequest, error) {
	r, err := s.rosterRepo.GetByID(ctx, req.RosterID)
	if err != nil {
		return roster.SwapRequest{}, err
	}

	if req.RequesterShiftID == req.CounterpartShiftID {
		return roster.SwapRequest{}, validator.ValidationErrors{
			{Field: "counterpart_shift_id", Message: "must differ from requester_shift_id"},
		}
	}
	if err := verifyAssignment(r, req.RequesterShiftID, req.RequesterID); err != nil {
		return roster.SwapRequest{}, err
	}
	if err := verifyAssignment(r, req.CounterpartShiftID, req.CounterpartID); err != nil {
		return roster.SwapRequest{}, err
	}

	swap := roster.SwapRequest{
		RosterID:           req.RosterID,
		RequesterID:        req.RequesterID,
		RequesterShiftID:   req.RequesterShiftID,
		CounterpartID:      req.CounterpartID,
		CounterpartShiftID: req.CounterpartShiftID,
		Reason:             req.Reason,
		Status:             roster.SwapStatusPending,
		ExpiresAt:          s.clock.Now().AddDate(0, 0, roster.SwapExpiryDays),
	}

	created, err := s.SwapRequestRepository.Create(ctx, swap)
	if err != nil {
		return roster.SwapRequest{}, fmt.Errorf("failed to create swap request: %w", err)
	}
	return created, nil
}

// ApproveSwap executes the exchange. Expired proposals are lazily
// marked as such on first touch.
func (s *SwapService) ApproveSwap(ctx context.Context, id, decidedBy string) (roster.SwapRequest, error) {
	swap, err := s.SwapRequestRepository.GetByID(ctx, id)
	if err != nil {
		return roster.SwapRequest{}, err
	}
	if swap.Status != roster.SwapStatusPending {
		return roster.SwapRequest{}, roster.ErrSwapProcessed
	}
	if s.clock.Now().After(swap.ExpiresAt) {
		if _, err := s.SwapRequestRepository.UpdateStatus(ctx, id, roster.SwapStatusPending, roster.SwapStatusExpired, nil); err != nil {
			return roster.SwapRequest{}, err
		}
		return roster.SwapRequest{}, roster.ErrSwapExpired
	}

	lock := s.locks.forRoster(swap.RosterID)
	lock.Lock()
	defer lock.Unlock()

	r, err := s.rosterRepo.GetByID(ctx, swap.RosterID)
	if err != nil {
		return roster.SwapRequest{}, err
	}

	requesterShift, ok := findShift(r, swap.RequesterShiftID)
	if !ok {
		return roster.SwapRequest{}, roster.ErrShiftNotFound
	}
	counterpartShift, ok := findShift(r, swap.CounterpartShiftID)
	if !ok {
		return roster.SwapRequest{}, roster.ErrShiftNotFound
	}
	if !validator.IsInSlice(swap.RequesterID, requesterShift.AssignedWorkerIDs) ||
		!validator.IsInSlice(swap.CounterpartID, counterpartShift.AssignedWorkerIDs) {
		return roster.SwapRequest{}, roster.ErrSwapShiftMismatch
	}

	// Each worker must be able to take the other's shift.
	if err := s.verifyEligibility(ctx, swap.RequesterID, *counterpartShift); err != nil {
		return roster.SwapRequest{}, err
	}
	if err := s.verifyEligibility(ctx, swap.CounterpartID, *requesterShift); err != nil {
		return roster.SwapRequest{}, err
	}

	replaceWorker(requesterShift, swap.RequesterID, swap.CounterpartID)
	replaceWorker(counterpartShift, swap.CounterpartID, swap.RequesterID)
	r.Assignments[requesterShift.ID] = requesterShift.AssignedWorkerIDs
	r.Assignments[counterpartShift.ID] = counterpartShift.AssignedWorkerIDs

	if _, err := s.rosterRepo.Update(ctx, r); err != nil {
		return roster.SwapRequest{}, fmt.Errorf("failed to store swapped assignments: %w", err)
	}

	approved, err := s.SwapRequestRepository.UpdateStatus(ctx, id, roster.SwapStatusPending, roster.SwapStatusApproved, &decidedBy)
	if err != nil {
		return roster.SwapRequest{}, err
	}
	return approved, nil
}

func (s *SwapService) RejectSwap(ctx context.Context, id, decidedBy string) (roster.SwapRequest, error) {
	rejected, err := s.SwapRequestRepository.UpdateStatus(ctx, id, roster.SwapStatusPending, roster.SwapStatusRejected, &decidedBy)
	if err != nil {
		return roster.SwapRequest{}, err
	}
	return rejected, nil
}

func (s *SwapService) ListSwaps(ctx context.Context, rosterID string) ([]roster.SwapRequest, error) {
	return s.SwapRequestRepository.ListByRosterID(ctx, rosterID)
}

func (s *SwapService) verifyEligibility(ctx context.Context, workerID string, shift roster.Shift) error {
	w, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		return err
	}
	if !w.HasSkills(shift.RequiredSkills) {
		return roster.ErrSwapIneligible
	}
	computed, err := s.resolver.ComputeAvailability(ctx, workerID, shift.Date)
	if err != nil {
		return fmt.Errorf("failed to compute availability for worker %s: %w", workerID, err)
	}
	if !computed.Available {
		return roster.ErrSwapIneligible
	}
	return nil
}

func verifyAssignment(r roster.Roster, shiftID, workerID string) error {
	shift, ok := findShift(r, shiftID)
	if !ok {
		return roster.ErrShiftNotFound
	}
	if !validator.IsInSlice(workerID, shift.AssignedWorkerIDs) {
		return roster.ErrSwapShiftMismatch
	}
	return nil
}

// replaceWorker swaps one assigned worker id for another in place,
// leaving the rest of the assignment order untouched.
func replaceWorker(s *roster.Shift, from, to string) {
	for i, id := range s.AssignedWorkerIDs {
		if id == from {
			s.AssignedWorkerIDs[i] = to
			return
		}
	}
}

func findShift(r roster.Roster, id string) (*roster.Shift, bool) {
	for i := range r.Shifts {
		if r.Shifts[i].ID == id {
			return &r.Shifts[i], true
		}
	}
	return nil, false
}
