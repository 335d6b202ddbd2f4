package roster

import (
	"time"

	"github.com/shopspring/decimal"
)

type Recurrence string

const (
	RecurrenceDaily    Recurrence = "daily"
	RecurrenceWeekly   Recurrence = "weekly" // one instance per week, on Mondays
	RecurrenceWeekdays Recurrence = "weekdays"
	RecurrenceWeekends Recurrence = "weekends"
)

var RecurrenceValues = []string{
	string(RecurrenceDaily),
	string(RecurrenceWeekly),
	string(RecurrenceWeekdays),
	string(RecurrenceWeekends),
}

// Matches reports whether the recurrence emits a shift on date.
func (r Recurrence) Matches(date time.Time) bool {
	switch r {
	case RecurrenceDaily:
		return true
	case RecurrenceWeekly:
		return date.Weekday() == time.Monday
	case RecurrenceWeekdays:
		return date.Weekday() != time.Saturday && date.Weekday() != time.Sunday
	case RecurrenceWeekends:
		return date.Weekday() == time.Saturday || date.Weekday() == time.Sunday
	}
	return false
}

// ShiftTemplate is a reusable shift blueprint.
type ShiftTemplate struct {
	ID             string
	Name           string
	StartTime      string // "HH:MM"
	EndTime        string
	BreakMinutes   int
	MinStaff       int
	MaxStaff       int
	RequiredSkills []string
	Department     string
	Location       string
	PayRate        decimal.Decimal
	ShiftType      string // e.g. morning, evening, night
	Recurrence     Recurrence
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DurationHours is the paid window length, break deducted.
func (t ShiftTemplate) DurationHours() float64 {
	return windowHours(t.StartTime, t.EndTime, t.BreakMinutes)
}

type ShiftStatus string

const (
	ShiftStatusUnassigned   ShiftStatus = "unassigned"
	ShiftStatusAssigned     ShiftStatus = "assigned"
	ShiftStatusUnderstaffed ShiftStatus = "understaffed"
)

// Shift is a concrete dated instance expanded from a template.
// Shifts belong to exactly one roster and do not outlive it.
type Shift struct {
	ID                string
	RosterID          string
	TemplateID        string
	Date              time.Time
	StartTime         string
	EndTime           string
	BreakMinutes      int
	MinStaff          int
	MaxStaff          int
	RequiredSkills    []string
	Location          string
	ShiftType         string
	PayRate           decimal.Decimal
	AssignedWorkerIDs []string
	Status            ShiftStatus
}

// DurationHours is the paid window length, break deducted.
func (s Shift) DurationHours() float64 {
	return windowHours(s.StartTime, s.EndTime, s.BreakMinutes)
}

func windowHours(start, end string, breakMinutes int) float64 {
	st, err := time.Parse("15:04", start)
	if err != nil {
		return 0
	}
	et, err := time.Parse("15:04", end)
	if err != nil {
		return 0
	}
	h := et.Sub(st).Hours() - float64(breakMinutes)/60
	if h < 0 {
		return 0
	}
	return h
}

type RosterStatus string

const (
	RosterStatusDraft     RosterStatus = "draft"
	RosterStatusGenerated RosterStatus = "generated"
	RosterStatusApproved  RosterStatus = "approved"
	RosterStatusPublished RosterStatus = "published"
)

// Roster is a named collection of dated shifts for a department and
// location over a period, with its assignment map.
type Roster struct {
	ID         string
	Name       string
	Department string
	Location   string
	StartDate  time.Time
	EndDate    time.Time

	Status      RosterStatus
	Shifts      []Shift
	Assignments map[string][]string // shift id -> assigned worker ids

	TotalHours float64
	TotalCost  decimal.Decimal
	Version    int

	CreatedAt time.Time
	UpdatedAt time.Time
}

type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "pending"
	SwapStatusApproved SwapStatus = "approved"
	SwapStatusRejected SwapStatus = "rejected"
	SwapStatusExpired  SwapStatus = "expired"
)

// SwapExpiryDays is the default lifetime of a pending swap proposal.
const SwapExpiryDays = 7

// SwapRequest proposes a pairwise shift exchange between two workers.
type SwapRequest struct {
	ID                 string
	RosterID           string
	RequesterID        string
	RequesterShiftID   string
	CounterpartID      string
	CounterpartShiftID string
	Reason             string
	Status             SwapStatus
	ExpiresAt          time.Time
	DecidedBy          *string
	DecidedAt          *time.Time
	CreatedAt          time.Time
}
