package availability

import (
	"context"
	"time"
)

type ProfileService interface {
	CreateOrUpdateProfile(ctx context.Context, req CreateProfileRequest) (Profile, error)
	GetProfile(ctx context.Context, workerID string) (Profile, error)
	GetProfileHistory(ctx context.Context, workerID string) ([]Profile, error)
	GetComputedAvailability(ctx context.Context, workerID string, date *time.Time) (ProfileWithAvailability, error)
	BulkGetAvailability(ctx context.Context, req BulkAvailabilityRequest) (BulkAvailabilityResult, error)
}

type OverrideService interface {
	CreateOverride(ctx context.Context, req CreateOverrideRequest) (Override, error)
	ListOverrides(ctx context.Context, workerID string, date *time.Time) ([]Override, error)
	ExpireOverride(ctx context.Context, id string) error
}

// Resolver computes effective availability for one worker on one date
// by combining the active profile, approved time off, and overrides.
type Resolver interface {
	ComputeAvailability(ctx context.Context, workerID string, date time.Time) (Computed, error)
}
