package response

import (
	"errors"
	"net/http"

	"github.com/staffhub/rostering-backend-go/internal/domain/availability"
	"github.com/staffhub/rostering-backend-go/internal/domain/roster"
	"github.com/staffhub/rostering-backend-go/internal/domain/timeoff"
	"github.com/staffhub/rostering-backend-go/internal/domain/worker"
	"github.com/staffhub/rostering-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrEmailExists):
		Conflict(w, "Email already registered")

	// Availability domain errors
	case errors.Is(err, availability.ErrProfileNotFound):
		NotFound(w, "Availability profile not found")
	case errors.Is(err, availability.ErrOverrideNotFound):
		NotFound(w, "Availability override not found")

	// Time-off domain errors
	case errors.Is(err, timeoff.ErrRequestNotFound):
		NotFound(w, "Time-off request not found")
	case errors.Is(err, timeoff.ErrAlreadyProcessed):
		Conflict(w, "Time-off request already processed")
	case errors.Is(err, timeoff.ErrAlreadyStarted):
		Conflict(w, "Time-off request has already started")
	case errors.Is(err, timeoff.ErrReasonRequired):
		BadRequest(w, "Rejection reason is required", nil)

	// Roster domain errors
	case errors.Is(err, roster.ErrTemplateNotFound):
		NotFound(w, "Shift template not found")
	case errors.Is(err, roster.ErrRosterNotFound):
		NotFound(w, "Roster not found")
	case errors.Is(err, roster.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, roster.ErrSwapNotFound):
		NotFound(w, "Shift swap request not found")
	case errors.Is(err, roster.ErrInvalidTransition):
		Conflict(w, "Invalid roster status transition")
	case errors.Is(err, roster.ErrSwapProcessed):
		Conflict(w, "Shift swap request already processed")
	case errors.Is(err, roster.ErrSwapExpired):
		Gone(w, "Shift swap request has expired")
	case errors.Is(err, roster.ErrSwapShiftMismatch):
		Conflict(w, "Swap shifts no longer carry the proposing workers")
	case errors.Is(err, roster.ErrSwapIneligible):
		Conflict(w, "Worker is not eligible for the exchanged shift")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
