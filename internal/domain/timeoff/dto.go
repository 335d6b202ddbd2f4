package timeoff

type SubmitRequest struct {
	WorkerID  string `json:"worker_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=vacation sick personal bereavement jury_duty other"`
	Reason    string `json:"reason"`

	PartialDay       bool    `json:"partial_day"`
	PartialStartTime *string `json:"partial_start_time" validate:"required_if=PartialDay true,omitempty,len=5"`
	PartialEndTime   *string `json:"partial_end_time" validate:"required_if=PartialDay true,omitempty,len=5"`
}

type ApproveRequest struct {
	RequestID  string  `json:"-"`
	ApproverID string  `json:"approver_id" validate:"required"`
	Notes      *string `json:"notes"`
}

type RejectRequest struct {
	RequestID  string `json:"-"`
	ApproverID string `json:"approver_id" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
}

type CancelRequest struct {
	RequestID   string `json:"-"`
	CancelledBy string `json:"cancelled_by" validate:"required"`
}
