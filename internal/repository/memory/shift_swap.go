package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/staffhub/rostering-backend-go/internal/domain/roster"
	"github.com/staffhub/rostering-backend-go/internal/pkg/clock"
)

type swapRepository struct {
	mu    sync.Mutex
	swaps map[string]roster.SwapRequest
	clock clock.Clock
}

func NewSwapRepository(clk clock.Clock) roster.SwapRequestRepository {
	return &swapRepository{
		swaps: make(map[string]roster.SwapRequest),
		clock: clk,
	}
}

func (r *swapRepository) Create(ctx context.Context, s roster.SwapRequest) (roster.SwapRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedAt = r.clock.Now()
	if s.Status == "" {
		s.Status = roster.SwapStatusPending
	}

	r.swaps[s.ID] = s
	return s, nil
}

func (r *swapRepository) GetByID(ctx context.Context, id string) (roster.SwapRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.swaps[id]
	if !ok {
		return roster.SwapRequest{}, roster.ErrSwapNotFound
	}
	return s, nil
}

func (r *swapRepository) ListByRosterID(ctx context.Context, rosterID string) ([]roster.SwapRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []roster.SwapRequest
	for _, s := range r.swaps {
		if s.RosterID == rosterID {
			result = append(result, s)
		}
	}
	sortByCreatedAt(result, func(s roster.SwapRequest) sortKey { return sortKey{s.CreatedAt, s.ID} })
	return result, nil
}

// UpdateStatus is a compare-and-swap on the swap's status.
func (r *swapRepository) UpdateStatus(ctx context.Context, id string, from, to roster.SwapStatus, decidedBy *string) (roster.SwapRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.swaps[id]
	if !ok {
		return roster.SwapRequest{}, roster.ErrSwapNotFound
	}
	if s.Status != from {
		return roster.SwapRequest{}, roster.ErrSwapProcessed
	}

	s.Status = to
	if decidedBy != nil {
		s.DecidedBy = decidedBy
		now := r.clock.Now()
		s.DecidedAt = &now
	}

	r.swaps[id] = s
	return s, nil
}
