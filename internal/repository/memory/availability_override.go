package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/staffhub/rostering-backend-go/internal/domain/availability"
	"github.com/staffhub/rostering-backend-go/internal/pkg/clock"
)

type overrideRepository struct {
	mu        sync.RWMutex
	overrides map[string]availability.Override
	clock     clock.Clock
}

func NewOverrideRepository(clk clock.Clock) availability.OverrideRepository {
	return &overrideRepository{
		overrides: make(map[string]availability.Override),
		clock:     clk,
	}
}

func (r *overrideRepository) Create(ctx context.Context, o availability.Override) (availability.Override, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = availability.OverrideStatusActive
	}
	o.CreatedAt = r.clock.Now()

	r.overrides[o.ID] = o
	return o, nil
}

func (r *overrideRepository) GetByID(ctx context.Context, id string) (availability.Override, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.overrides[id]
	if !ok {
		return availability.Override{}, availability.ErrOverrideNotFound
	}
	return o, nil
}

func (r *overrideRepository) ListByWorkerID(ctx context.Context, workerID string) ([]availability.Override, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []availability.Override
	for _, o := range r.overrides {
		if o.WorkerID == workerID {
			result = append(result, o)
		}
	}
	sortByCreatedAt(result, func(o availability.Override) sortKey { return sortKey{o.CreatedAt, o.ID} })
	return result, nil
}

func (r *overrideRepository) Expire(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.overrides[id]
	if !ok {
		return availability.ErrOverrideNotFound
	}
	o.Status = availability.OverrideStatusExpired
	r.overrides[id] = o
	return nil
}
