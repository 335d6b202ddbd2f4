package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/staffhub/rostering-backend-go/internal/domain/availability"
	"github.com/staffhub/rostering-backend-go/internal/pkg/clock"
)

type profileRepository struct {
	mu       sync.RWMutex
	profiles map[string]availability.Profile
	clock    clock.Clock
}

func NewProfileRepository(clk clock.Clock) availability.ProfileRepository {
	return &profileRepository{
		profiles: make(map[string]availability.Profile),
		clock:    clk,
	}
}

func copyProfile(p availability.Profile) availability.Profile {
	c := p
	c.PreferredShiftTypes = append([]string(nil), p.PreferredShiftTypes...)
	return c
}

// Create supersedes any active profile for the same worker inside one
// critical section, so the transition is atomic to readers.
func (r *profileRepository) Create(ctx context.Context, p availability.Profile) (availability.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	for id, existing := range r.profiles {
		if existing.WorkerID == p.WorkerID && existing.Status == availability.ProfileStatusActive {
			existing.Status = availability.ProfileStatusSuperseded
			existing.UpdatedAt = now
			r.profiles[id] = existing
		}
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Status = availability.ProfileStatusActive
	p.CreatedAt = now
	p.UpdatedAt = now

	r.profiles[p.ID] = copyProfile(p)
	return copyProfile(p), nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (availability.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[id]
	if !ok {
		return availability.Profile{}, availability.ErrProfileNotFound
	}
	return copyProfile(p), nil
}

func (r *profileRepository) GetActiveByWorkerID(ctx context.Context, workerID string) (availability.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.profiles {
		if p.WorkerID == workerID && p.Status == availability.ProfileStatusActive {
			return copyProfile(p), nil
		}
	}
	return availability.Profile{}, availability.ErrProfileNotFound
}

func (r *profileRepository) ListByWorkerID(ctx context.Context, workerID string) ([]availability.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []availability.Profile
	for _, p := range r.profiles {
		if p.WorkerID == workerID {
			result = append(result, copyProfile(p))
		}
	}
	sortByCreatedAt(result, func(p availability.Profile) sortKey { return sortKey{p.CreatedAt, p.ID} })
	return result, nil
}

func (r *profileRepository) ListActive(ctx context.Context) ([]availability.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []availability.Profile
	for _, p := range r.profiles {
		if p.Status == availability.ProfileStatusActive {
			result = append(result, copyProfile(p))
		}
	}
	sortByCreatedAt(result, func(p availability.Profile) sortKey { return sortKey{p.CreatedAt, p.ID} })
	return result, nil
}
