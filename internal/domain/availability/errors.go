package availability

import "errors"

var (
	ErrProfileNotFound  = errors.New("availability profile not found")
	ErrOverrideNotFound = errors.New("availability override not found")
)
