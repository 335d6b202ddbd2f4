package roster

import "errors"

var (
	ErrTemplateNotFound = errors.New("shift template not found")
	ErrRosterNotFound   = errors.New("roster not found")
	ErrShiftNotFound    = errors.New("shift not found")
	ErrSwapNotFound     = errors.New("shift swap request not found")

	ErrInvalidTransition = errors.New("invalid roster status transition")
	ErrSwapProcessed     = errors.New("shift swap request already processed")
	ErrSwapExpired       = errors.New("shift swap request has expired")
	ErrSwapShiftMismatch = errors.New("swap shifts no longer carry the proposing workers")
	ErrSwapIneligible    = errors.New("worker is not eligible for the exchanged shift")
)
