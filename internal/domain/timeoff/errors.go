package timeoff

import "errors"

var (
	ErrRequestNotFound  = errors.New("time-off request not found")
	ErrAlreadyProcessed = errors.New("time-off request already processed")
	ErrReasonRequired   = errors.New("rejection reason is required")
	ErrAlreadyStarted   = errors.New("time-off request has already started")
)
