package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/staffhub/rostering-backend-go/internal/domain/availability"
	"github.com/staffhub/rostering-backend-go/internal/domain/timeoff"
	"github.com/staffhub/rostering-backend-go/internal/pkg/clock"
)

// Resolver computes effective availability for a worker on a date.
// Precedence: approved time off always wins, then the most recently
// created live override, then the weekly table of the active profile.
type Resolver struct {
	availability.ProfileRepository
	availability.OverrideRepository
	timeoff.RequestRepository
	clock clock.Clock
}

func NewResolver(profileRepo availability.ProfileRepository, overrideRepo availability.OverrideRepository, timeOffRepo timeoff.RequestRepository, clk clock.Clock) *Resolver {
	return &Resolver{
		ProfileRepository:  profileRepo,
		OverrideRepository: overrideRepo,
		RequestRepository:  timeOffRepo,
		clock:              clk,
	}
}

func (r *Resolver) ComputeAvailability(ctx context.Context, workerID string, date time.Time) (availability.Computed, error) {
	date = dateOnly(date)
	computed := availability.Computed{WorkerID: workerID, Date: date}

	// Approved time off short-circuits everything else.
	approved, err := r.RequestRepository.ListApprovedInRange(ctx, workerID, date, date)
	if err != nil {
		return availability.Computed{}, fmt.Errorf("failed to list approved time off: %w", err)
	}
	if len(approved) > 0 {
		computed.Available = false
		computed.Reason = availability.ReasonTimeOff
		return computed, nil
	}

	if override, ok, err := r.liveOverrideFor(ctx, workerID, date); err != nil {
		return availability.Computed{}, err
	} else if ok {
		computed.Reason = availability.ReasonOverride
		if override.Kind == availability.OverrideTemporarilyUnavailable {
			computed.Available = false
			return computed, nil
		}
		// The replacement entry substitutes the weekly row in full.
		computed.Available = override.Replacement.Available
		if computed.Available {
			computed.Window = &availability.TimeWindow{
				StartTime: override.Replacement.StartTime,
				EndTime:   override.Replacement.EndTime,
			}
		}
		return computed, nil
	}

	profile, err := r.ProfileRepository.GetActiveByWorkerID(ctx, workerID)
	if err != nil {
		if errors.Is(err, availability.ErrProfileNotFound) {
			computed.Available = false
			computed.Reason = availability.ReasonNoProfile
			return computed, nil
		}
		return availability.Computed{}, fmt.Errorf("failed to get active profile: %w", err)
	}

	entry := profile.Weekly.Entry(date)
	computed.Reason = availability.ReasonWeeklyProfile
	computed.Available = entry.Available
	if entry.Available {
		computed.Window = &availability.TimeWindow{StartTime: entry.StartTime, EndTime: entry.EndTime}
	}
	return computed, nil
}

// liveOverrideFor returns the winning override covering date, if any.
// An override is live when its stored status is active and its range
// has not passed relative to the clock; among live candidates the most
// recently created wins, with the larger id breaking exact ties.
func (r *Resolver) liveOverrideFor(ctx context.Context, workerID string, date time.Time) (availability.Override, bool, error) {
	overrides, err := r.OverrideRepository.ListByWorkerID(ctx, workerID)
	if err != nil {
		return availability.Override{}, false, fmt.Errorf("failed to list overrides: %w", err)
	}

	today := dateOnly(r.clock.Now())

	var winner availability.Override
	found := false
	for _, o := range overrides {
		if o.Status != availability.OverrideStatusActive {
			continue
		}
		if o.EndDate.Before(today) {
			// Range has passed; lazily expired regardless of stored status.
			continue
		}
		if !o.Covers(date) {
			continue
		}
		if !found || o.CreatedAt.After(winner.CreatedAt) ||
			(o.CreatedAt.Equal(winner.CreatedAt) && o.ID > winner.ID) {
			winner = o
			found = true
		}
	}
	return winner, found, nil
}
