package timeoff

import "time"

type Type string

const (
	TypeVacation    Type = "vacation"
	TypeSick        Type = "sick"
	TypePersonal    Type = "personal"
	TypeBereavement Type = "bereavement"
	TypeJuryDuty    Type = "jury_duty"
	TypeOther       Type = "other"
)

var TypeValues = []string{
	string(TypeVacation),
	string(TypeSick),
	string(TypePersonal),
	string(TypeBereavement),
	string(TypeJuryDuty),
	string(TypeOther),
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// SystemAutoApprover is recorded as the approver identity when a
// request satisfies the deterministic auto-approval rules.
const SystemAutoApprover = "system_auto_approval"

// Conflict records an overlap with another approved request for the
// same worker. Advisory only; it never blocks submission.
type Conflict struct {
	RequestID string    `json:"request_id"`
	Type      Type      `json:"type"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Request is one requested absence interval.
type Request struct {
	ID       string
	WorkerID string

	StartDate time.Time
	EndDate   time.Time
	Type      Type
	Reason    string

	PartialDay       bool
	PartialStartTime *string // "HH:MM", set only for partial-day requests
	PartialEndTime   *string

	BusinessDays int
	Hours        float64
	Priority     Priority
	Conflicts    []Conflict

	Status          Status
	ApprovedBy      *string
	ApprovedAt      *time.Time
	ApprovalNotes   *string
	RejectionReason *string
	CancelledBy     *string
	CancelledAt     *time.Time

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Covers reports whether date falls inside the request interval, inclusive.
func (r Request) Covers(date time.Time) bool {
	return !date.Before(r.StartDate) && !date.After(r.EndDate)
}

// Overlaps reports interval overlap with [start, end] using the
// inclusive startA <= endB && startB <= endA rule.
func (r Request) Overlaps(start, end time.Time) bool {
	return !r.StartDate.After(end) && !start.After(r.EndDate)
}
