package matching

import (
	"time"

	"github.com/staffhub/rostering-backend-go/internal/domain/worker"
)

// ShiftRequirements describes one staffing need to match against.
type ShiftRequirements struct {
	Date           time.Time
	StartTime      string
	EndTime        string
	RequiredSkills []string
	Location       string
	ShiftType      string
	MinimumStaff   int
	ExcludeIDs     []string
}

// Rules carries the additive score weights. Zero values fall back to
// the documented defaults.
type Rules struct {
	PreferredLocationWeight int // deduction when location not preferred, default 10
	SkillWeight             int // per required skill held, default 3
	ShiftTypeWeight         int // when the shift type is preferred, default 5
}

const (
	baseScore                      = 100
	defaultPreferredLocationWeight = 10
	defaultSkillWeight             = 3
	defaultShiftTypeWeight         = 5
	excellentScoreThreshold        = 90
)

func (r Rules) withDefaults() Rules {
	if r.PreferredLocationWeight == 0 {
		r.PreferredLocationWeight = defaultPreferredLocationWeight
	}
	if r.SkillWeight == 0 {
		r.SkillWeight = defaultSkillWeight
	}
	if r.ShiftTypeWeight == 0 {
		r.ShiftTypeWeight = defaultShiftTypeWeight
	}
	return r
}

// Candidate is one ranked match.
type Candidate struct {
	Worker worker.Worker `json:"worker"`
	Score  int           `json:"score"`
}

// SearchResult is the outcome of an ad-hoc staff search.
type SearchResult struct {
	Candidates      []Candidate `json:"candidates"`
	MinimumMet      bool        `json:"minimum_met"`
	Recommendations []string    `json:"recommendations"`
}
