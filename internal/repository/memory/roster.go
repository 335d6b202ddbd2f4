package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/staffhub/rostering-backend-go/internal/domain/roster"
	"github.com/staffhub/rostering-backend-go/internal/pkg/clock"
)

type rosterRepository struct {
	mu      sync.RWMutex
	rosters map[string]roster.Roster
	clock   clock.Clock
}

func NewRosterRepository(clk clock.Clock) roster.RosterRepository {
	return &rosterRepository{
		rosters: make(map[string]roster.Roster),
		clock:   clk,
	}
}

func copyShift(s roster.Shift) roster.Shift {
	c := s
	c.RequiredSkills = append([]string(nil), s.RequiredSkills...)
	c.AssignedWorkerIDs = append([]string(nil), s.AssignedWorkerIDs...)
	return c
}

func copyRoster(r roster.Roster) roster.Roster {
	c := r
	c.Shifts = make([]roster.Shift, len(r.Shifts))
	for i, s := range r.Shifts {
		c.Shifts[i] = copyShift(s)
	}
	c.Assignments = make(map[string][]string, len(r.Assignments))
	for shiftID, workerIDs := range r.Assignments {
		c.Assignments[shiftID] = append([]string(nil), workerIDs...)
	}
	return c
}

func (r *rosterRepository) Create(ctx context.Context, ro roster.Roster) (roster.Roster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ro.ID == "" {
		ro.ID = uuid.NewString()
	}
	now := r.clock.Now()
	ro.CreatedAt = now
	ro.UpdatedAt = now
	ro.Version = 1
	if ro.Status == "" {
		ro.Status = roster.RosterStatusDraft
	}
	if ro.Assignments == nil {
		ro.Assignments = make(map[string][]string)
	}

	r.rosters[ro.ID] = copyRoster(ro)
	return copyRoster(ro), nil
}

func (r *rosterRepository) GetByID(ctx context.Context, id string) (roster.Roster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ro, ok := r.rosters[id]
	if !ok {
		return roster.Roster{}, roster.ErrRosterNotFound
	}
	return copyRoster(ro), nil
}

func (r *rosterRepository) List(ctx context.Context) ([]roster.Roster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []roster.Roster
	for _, ro := range r.rosters {
		result = append(result, copyRoster(ro))
	}
	sortByCreatedAt(result, func(ro roster.Roster) sortKey { return sortKey{ro.CreatedAt, ro.ID} })
	return result, nil
}

// Update replaces the stored roster wholesale and bumps the version.
func (r *rosterRepository) Update(ctx context.Context, ro roster.Roster) (roster.Roster, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.rosters[ro.ID]
	if !ok {
		return roster.Roster{}, roster.ErrRosterNotFound
	}
	ro.CreatedAt = existing.CreatedAt
	ro.Version = existing.Version + 1
	ro.UpdatedAt = r.clock.Now()
	if ro.Assignments == nil {
		ro.Assignments = make(map[string][]string)
	}

	r.rosters[ro.ID] = copyRoster(ro)
	return copyRoster(ro), nil
}

func (r *rosterRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rosters[id]; !ok {
		return roster.ErrRosterNotFound
	}
	delete(r.rosters, id)
	return nil
}
