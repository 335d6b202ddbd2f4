package availability

import "time"

// WeekdayEntry is one row of a worker's recurring weekly table.
type WeekdayEntry struct {
	Available    bool
	StartTime    string // "HH:MM", 24-hour
	EndTime      string
	BreakMinutes int
}

// WeeklyTable holds one entry per weekday, indexed by time.Weekday (0 = Sunday).
type WeeklyTable [7]WeekdayEntry

// Entry returns the table row for the weekday of date.
func (t WeeklyTable) Entry(date time.Time) WeekdayEntry {
	return t[int(date.Weekday())]
}

type ProfileStatus string

const (
	ProfileStatusActive     ProfileStatus = "active"
	ProfileStatusSuperseded ProfileStatus = "superseded"
)

// Constraints carries free-form scheduling constraints declared by the worker.
type Constraints struct {
	SchoolSchedule      *string
	ChildcareSchedule   *string
	SecondJobSchedule   *string
	MedicalAppointments *string
}

// Profile is a worker's recurring weekly availability declaration.
// One profile per worker is active at a time; superseded versions are
// kept for audit.
type Profile struct {
	ID            string
	WorkerID      string
	EffectiveDate time.Time
	Weekly        WeeklyTable

	MaxHoursPerDay     float64
	MaxHoursPerWeek    float64
	MinRestHours       float64
	MaxConsecutiveDays int

	PreferredShiftTypes []string
	WillingWeekends     bool
	WillingHolidays     bool
	WillingNights       bool
	WillingTravel       bool

	Constraints Constraints

	NotifyByEmail bool
	NotifyBySMS   bool

	Status    ProfileStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

type OverrideKind string

const (
	OverrideTemporarilyUnavailable OverrideKind = "temporarily_unavailable"
	OverrideTemporarilyAvailable   OverrideKind = "temporarily_available"
	OverrideScheduleChange         OverrideKind = "schedule_change"
)

var OverrideKindValues = []string{
	string(OverrideTemporarilyUnavailable),
	string(OverrideTemporarilyAvailable),
	string(OverrideScheduleChange),
}

type OverrideStatus string

const (
	OverrideStatusActive  OverrideStatus = "active"
	OverrideStatusExpired OverrideStatus = "expired"
)

// Override temporarily replaces the weekly table for a date range.
// Expiry is judged from the date range at read time; the stored status
// only records an explicit administrative expiry.
type Override struct {
	ID          string
	WorkerID    string
	StartDate   time.Time
	EndDate     time.Time
	Kind        OverrideKind
	Replacement WeekdayEntry
	Reason      string
	Priority    int
	Status      OverrideStatus
	CreatedBy   string
	CreatedAt   time.Time
}

// Covers reports whether date falls inside the override's range, inclusive.
func (o Override) Covers(date time.Time) bool {
	return !date.Before(o.StartDate) && !date.After(o.EndDate)
}

type Reason string

const (
	ReasonWeeklyProfile Reason = "weekly_profile"
	ReasonTimeOff       Reason = "time_off"
	ReasonOverride      Reason = "override"
	ReasonNoProfile     Reason = "no_profile"
)

type TimeWindow struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Computed is the resolved availability answer for one worker on one date.
type Computed struct {
	WorkerID  string      `json:"worker_id"`
	Date      time.Time   `json:"date"`
	Available bool        `json:"available"`
	Window    *TimeWindow `json:"window,omitempty"`
	Reason    Reason      `json:"reason"`
}

// WorkerSummary is the per-worker availability rate over a bulk query range.
type WorkerSummary struct {
	WorkerID         string  `json:"worker_id"`
	DaysAvailable    int     `json:"days_available"`
	TotalDays        int     `json:"total_days"`
	AvailabilityRate float64 `json:"availability_rate"`
}
