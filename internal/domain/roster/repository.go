package roster

import "context"

// ShiftTemplateRepository - interface for shift templates
type ShiftTemplateRepository interface {
	Create(ctx context.Context, t ShiftTemplate) (ShiftTemplate, error)
	GetByID(ctx context.Context, id string) (ShiftTemplate, error)
	GetByIDs(ctx context.Context, ids []string) ([]ShiftTemplate, error)
	ListActive(ctx context.Context) ([]ShiftTemplate, error)
	Update(ctx context.Context, t ShiftTemplate) (ShiftTemplate, error)
	Deactivate(ctx context.Context, id string) error
}

// RosterRepository - interface for rosters.
// Update replaces the stored roster wholesale (shift list and
// assignment map included) and bumps its version.
type RosterRepository interface {
	Create(ctx context.Context, r Roster) (Roster, error)
	GetByID(ctx context.Context, id string) (Roster, error)
	List(ctx context.Context) ([]Roster, error)
	Update(ctx context.Context, r Roster) (Roster, error)
	Delete(ctx context.Context, id string) error
}

// SwapRequestRepository - interface for shift swap proposals.
// UpdateStatus is a compare-and-swap like the time-off repository's.
type SwapRequestRepository interface {
	Create(ctx context.Context, s SwapRequest) (SwapRequest, error)
	GetByID(ctx context.Context, id string) (SwapRequest, error)
	ListByRosterID(ctx context.Context, rosterID string) ([]SwapRequest, error)
	UpdateStatus(ctx context.Context, id string, from, to SwapStatus, decidedBy *string) (SwapRequest, error)
}
