package roster

import "time"

type ConflictCategory string

const (
	ConflictDoubleBooking    ConflictCategory = "double_booking"
	ConflictInsufficientRest ConflictCategory = "insufficient_rest"
	ConflictSkillMismatch    ConflictCategory = "skill_mismatch"
	ConflictOvertime         ConflictCategory = "overtime"
	ConflictLaborLaw         ConflictCategory = "labor_law"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
)

// Conflict is one structured finding from a roster scan.
type Conflict struct {
	Category ConflictCategory `json:"category"`
	Severity Severity         `json:"severity"`
	WorkerID string           `json:"worker_id"`
	ShiftIDs []string         `json:"shift_ids"`
	Date     time.Time        `json:"date"`
	Detail   string           `json:"detail"`
}

// ConflictReport groups scan findings by category with summary counts.
type ConflictReport struct {
	RosterID   string                          `json:"roster_id"`
	ByCategory map[ConflictCategory][]Conflict `json:"by_category"`
	Counts     map[ConflictCategory]int        `json:"counts"`
	BySeverity map[Severity]int                `json:"by_severity"`
	Total      int                             `json:"total"`
}
