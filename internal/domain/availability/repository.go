package availability

import "context"

// ProfileRepository - interface for availability profiles.
// Create must atomically supersede any previously active profile for
// the same worker: no interleaving of the two writes may be observable.
type ProfileRepository interface {
	Create(ctx context.Context, p Profile) (Profile, error)
	GetByID(ctx context.Context, id string) (Profile, error)
	GetActiveByWorkerID(ctx context.Context, workerID string) (Profile, error)
	ListByWorkerID(ctx context.Context, workerID string) ([]Profile, error)
	ListActive(ctx context.Context) ([]Profile, error)
}

// OverrideRepository - interface for availability overrides.
// Range/date filtering stays in the service layer so expiry is judged
// against a single injected clock.
type OverrideRepository interface {
	Create(ctx context.Context, o Override) (Override, error)
	GetByID(ctx context.Context, id string) (Override, error)
	ListByWorkerID(ctx context.Context, workerID string) ([]Override, error)
	Expire(ctx context.Context, id string) error
}
