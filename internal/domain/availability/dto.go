package availability

type WeekdayEntryRequest struct {
	Available    bool   `json:"available"`
	StartTime    string `json:"start_time" validate:"omitempty,len=5"`
	EndTime      string `json:"end_time" validate:"omitempty,len=5"`
	BreakMinutes int    `json:"break_minutes" validate:"gte=0"`
}

type ConstraintsRequest struct {
	SchoolSchedule      *string `json:"school_schedule"`
	ChildcareSchedule   *string `json:"childcare_schedule"`
	SecondJobSchedule   *string `json:"second_job_schedule"`
	MedicalAppointments *string `json:"medical_appointments"`
}

type CreateProfileRequest struct {
	WorkerID      string                 `json:"worker_id" validate:"required"`
	EffectiveDate string                 `json:"effective_date" validate:"required"`
	Weekly        [7]WeekdayEntryRequest `json:"weekly" validate:"required"`

	MaxHoursPerDay     float64 `json:"max_hours_per_day" validate:"gt=0,lte=24"`
	MaxHoursPerWeek    float64 `json:"max_hours_per_week" validate:"gt=0,lte=168"`
	MinRestHours       float64 `json:"min_rest_hours" validate:"gte=0"`
	MaxConsecutiveDays int     `json:"max_consecutive_days" validate:"gte=0,lte=7"`

	PreferredShiftTypes []string `json:"preferred_shift_types"`
	WillingWeekends     bool     `json:"willing_weekends"`
	WillingHolidays     bool     `json:"willing_holidays"`
	WillingNights       bool     `json:"willing_nights"`
	WillingTravel       bool     `json:"willing_travel"`

	Constraints ConstraintsRequest `json:"constraints"`

	NotifyByEmail bool `json:"notify_by_email"`
	NotifyBySMS   bool `json:"notify_by_sms"`
}

type CreateOverrideRequest struct {
	WorkerID    string              `json:"worker_id" validate:"required"`
	StartDate   string              `json:"start_date" validate:"required"`
	EndDate     string              `json:"end_date" validate:"required"`
	Kind        string              `json:"kind" validate:"required,oneof=temporarily_unavailable temporarily_available schedule_change"`
	Replacement WeekdayEntryRequest `json:"replacement"`
	Reason      string              `json:"reason"`
	Priority    int                 `json:"priority"`
	CreatedBy   string              `json:"created_by" validate:"required"`
}

type BulkAvailabilityRequest struct {
	WorkerIDs []string `json:"worker_ids" validate:"required,min=1"`
	StartDate string   `json:"start_date" validate:"required"`
	EndDate   string   `json:"end_date" validate:"required"`
}

// WorkerAvailability is one worker's resolved day-by-day availability,
// in ascending date order.
type WorkerAvailability struct {
	WorkerID string     `json:"worker_id"`
	Days     []Computed `json:"days"`
}

type BulkAvailabilityResult struct {
	Workers   []WorkerAvailability `json:"workers"`
	Summaries []WorkerSummary      `json:"summaries"`
}

// ProfileWithAvailability pairs the active profile with the resolved
// availability for a requested date (nil when no date was given).
type ProfileWithAvailability struct {
	Profile  Profile   `json:"profile"`
	Resolved *Computed `json:"resolved,omitempty"`
}
