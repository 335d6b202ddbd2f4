package roster

import "github.com/shopspring/decimal"

type CreateTemplateRequest struct {
	Name           string   `json:"name" validate:"required"`
	StartTime      string   `json:"start_time" validate:"required,len=5"`
	EndTime        string   `json:"end_time" validate:"required,len=5"`
	BreakMinutes   int      `json:"break_minutes" validate:"gte=0"`
	MinStaff       int      `json:"min_staff" validate:"required,gt=0"`
	MaxStaff       int      `json:"max_staff" validate:"required,gtefield=MinStaff"`
	RequiredSkills []string `json:"required_skills"`
	Department     string   `json:"department"`
	Location       string   `json:"location"`
	PayRate        string   `json:"pay_rate" validate:"omitempty,numeric"`
	ShiftType      string   `json:"shift_type"`
	Recurrence     string   `json:"recurrence" validate:"required,oneof=daily weekly weekdays weekends"`
}

type CreateRosterRequest struct {
	Name       string `json:"name" validate:"required"`
	Department string `json:"department" validate:"required"`
	Location   string `json:"location" validate:"required"`
	StartDate  string `json:"start_date" validate:"required"`
	EndDate    string `json:"end_date" validate:"required"`
}

// OptimizationRules tunes candidate selection during auto-generation.
type OptimizationRules struct {
	PreferredLocationWeight int `json:"preferred_location_weight"` // default 10
	SkillWeight             int `json:"skill_weight"`              // default 3
	ShiftTypeWeight         int `json:"shift_type_weight"`         // default 5
}

// GenerationConstraints bounds what auto-generation may assign.
type GenerationConstraints struct {
	MaxHoursPerWeek float64 `json:"max_hours_per_week"`
	MinRestHours    float64 `json:"min_rest_hours"`
}

type AutoGenerateRequest struct {
	RosterID    string                `json:"-"`
	TemplateIDs []string              `json:"template_ids" validate:"required,min=1"`
	StaffPool   []string              `json:"staff_pool_ids" validate:"required,min=1"`
	Rules       OptimizationRules     `json:"rules"`
	Constraints GenerationConstraints `json:"constraints"`
}

// GenerationStats summarizes one auto-generation run. Understaffed
// shifts still contribute scheduled hours for capacity planning.
type GenerationStats struct {
	TotalShifts        int             `json:"total_shifts"`
	AssignedShifts     int             `json:"assigned_shifts"`
	UnderstaffedShifts int             `json:"understaffed_shifts"`
	TotalHours         float64         `json:"total_hours"`
	EstimatedCost      decimal.Decimal `json:"estimated_cost"`
}

type CreateSwapRequest struct {
	RosterID           string `json:"roster_id" validate:"required"`
	RequesterID        string `json:"requester_id" validate:"required"`
	RequesterShiftID   string `json:"requester_shift_id" validate:"required"`
	CounterpartID      string `json:"counterpart_id" validate:"required"`
	CounterpartShiftID string `json:"counterpart_shift_id" validate:"required"`
	Reason             string `json:"reason"`
}
