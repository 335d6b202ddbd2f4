package matching

import (
	"context"
	"fmt"
	"sort"

	"github.com/staffhub/rostering-backend-go/internal/domain/availability"
	"github.com/staffhub/rostering-backend-go/internal/domain/worker"
	"github.com/staffhub/rostering-backend-go/internal/pkg/validator"
)

// Engine ranks and selects eligible workers for shift requirements.
// All ordering is deterministic: scores sort descending and ties keep
// candidate-pool order, so repeated runs over the same inputs always
// pick the same staff.
type Engine struct {
	resolver   availability.Resolver
	profiles   availability.ProfileRepository
	workerRepo worker.WorkerRepository
}

func NewEngine(resolver availability.Resolver, profileRepo availability.ProfileRepository, workerRepo worker.WorkerRepository) *Engine {
	return &Engine{
		resolver:   resolver,
		profiles:   profileRepo,
		workerRepo: workerRepo,
	}
}

// FindEligibleStaff filters the pool down to workers who are available
// on the shift's date and hold every required skill.
func (e *Engine) FindEligibleStaff(ctx context.Context, req ShiftRequirements, pool []worker.Worker) ([]worker.Worker, error) {
	var eligible []worker.Worker
	for _, w := range pool {
		computed, err := e.resolver.ComputeAvailability(ctx, w.ID, req.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to compute availability for worker %s: %w", w.ID, err)
		}
		if !computed.Available {
			continue
		}
		if !w.HasSkills(req.RequiredSkills) {
			continue
		}
		eligible = append(eligible, w)
	}
	return eligible, nil
}

// SelectOptimalStaff scores the eligible workers and returns the top
// MinimumStaff of them (or all, when fewer are eligible).
func (e *Engine) SelectOptimalStaff(req ShiftRequirements, eligible []worker.Worker, rules Rules) []Candidate {
	ranked := e.rank(req, eligible, rules)
	limit := req.MinimumStaff
	if limit <= 0 || limit > len(ranked) {
		limit = len(ranked)
	}
	return ranked[:limit]
}

// FindAvailableStaff runs the eligibility and scoring pass over the
// whole active-profile population, honoring the exclusion list, and
// reports whether the requested minimum can be met.
func (e *Engine) FindAvailableStaff(ctx context.Context, req ShiftRequirements) (SearchResult, error) {
	profiles, err := e.profiles.ListActive(ctx)
	if err != nil {
		return SearchResult{}, fmt.Errorf("failed to list active profiles: %w", err)
	}

	workerIDs := make([]string, 0, len(profiles))
	for _, p := range profiles {
		if validator.IsInSlice(p.WorkerID, req.ExcludeIDs) {
			continue
		}
		workerIDs = append(workerIDs, p.WorkerID)
	}

	pool, err := e.workerRepo.GetByIDs(ctx, workerIDs)
	if err != nil {
		return SearchResult{}, fmt.Errorf("failed to load candidate pool: %w", err)
	}

	eligible, err := e.FindEligibleStaff(ctx, req, pool)
	if err != nil {
		return SearchResult{}, err
	}

	ranked := e.rank(req, eligible, Rules{})

	result := SearchResult{
		Candidates: ranked,
		MinimumMet: len(ranked) >= req.MinimumStaff,
	}
	result.Recommendations = recommendations(ranked, req.MinimumStaff)
	return result, nil
}

func (e *Engine) rank(req ShiftRequirements, eligible []worker.Worker, rules Rules) []Candidate {
	rules = rules.withDefaults()

	candidates := make([]Candidate, 0, len(eligible))
	for _, w := range eligible {
		candidates = append(candidates, Candidate{Worker: w, Score: score(req, w, rules)})
	}

	// Stable sort keeps pool order on ties, which makes selection
	// reproducible for identical inputs.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

func score(req ShiftRequirements, w worker.Worker, rules Rules) int {
	s := baseScore
	if req.Location != "" && !validator.IsInSlice(req.Location, w.PreferredLocations) {
		s -= rules.PreferredLocationWeight
	}
	for _, skill := range req.RequiredSkills {
		if validator.IsInSlice(skill, w.Skills) {
			s += rules.SkillWeight
		}
	}
	if req.ShiftType != "" && validator.IsInSlice(req.ShiftType, w.PreferredShiftTypes) {
		s += rules.ShiftTypeWeight
	}
	return s
}

func recommendations(ranked []Candidate, minimumStaff int) []string {
	var recs []string
	if len(ranked) < minimumStaff {
		recs = append(recs, fmt.Sprintf("insufficient staff: %d available of %d required", len(ranked), minimumStaff))
	}
	excellent := 0
	for _, c := range ranked {
		if c.Score > excellentScoreThreshold {
			excellent++
		}
	}
	if excellent > 0 {
		recs = append(recs, fmt.Sprintf("%d excellent matches", excellent))
	}
	return recs
}
