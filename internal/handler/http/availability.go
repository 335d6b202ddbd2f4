package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/staffhub/rostering-backend-go/internal/domain/availability"
	"github.com/staffhub/rostering-backend-go/internal/handler/http/response"
	"github.com/staffhub/rostering-backend-go/internal/pkg/validator"
)

type AvailabilityHandler interface {
	CreateProfile(w http.ResponseWriter, r *http.Request)
	GetProfile(w http.ResponseWriter, r *http.Request)
	GetProfileHistory(w http.ResponseWriter, r *http.Request)
	BulkAvailability(w http.ResponseWriter, r *http.Request)

	CreateOverride(w http.ResponseWriter, r *http.Request)
	ListOverrides(w http.ResponseWriter, r *http.Request)
	ExpireOverride(w http.ResponseWriter, r *http.Request)
}

type AvailabilityHandlerImpl struct {
	profileService  availability.ProfileService
	overrideService availability.OverrideService
}

func NewAvailabilityHandler(profileService availability.ProfileService, overrideService availability.OverrideService) AvailabilityHandler {
	return &AvailabilityHandlerImpl{
		profileService:  profileService,
		overrideService: overrideService,
	}
}

// dateQueryParam parses an optional ?date=YYYY-MM-DD query parameter.
func dateQueryParam(r *http.Request) (*time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return nil, nil
	}
	date, ok := validator.IsValidDate(raw)
	if !ok {
		return nil, validator.ValidationErrors{{Field: "date", Message: "must be YYYY-MM-DD"}}
	}
	return &date, nil
}

func (h *AvailabilityHandlerImpl) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req availability.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateProfile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.WorkerID = chi.URLParam(r, "workerID")
	if err := validateStruct(req); err != nil {
		response.HandleError(w, err)
		return
	}

	profile, err := h.profileService.CreateOrUpdateProfile(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Availability profile saved", profile)
}

func (h *AvailabilityHandlerImpl) GetProfile(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")
	date, err := dateQueryParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.profileService.GetComputedAvailability(r.Context(), workerID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *AvailabilityHandlerImpl) GetProfileHistory(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")

	history, err := h.profileService.GetProfileHistory(r.Context(), workerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, history)
}

func (h *AvailabilityHandlerImpl) BulkAvailability(w http.ResponseWriter, r *http.Request) {
	var req availability.BulkAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BulkAvailability decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := validateStruct(req); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.profileService.BulkGetAvailability(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *AvailabilityHandlerImpl) CreateOverride(w http.ResponseWriter, r *http.Request) {
	var req availability.CreateOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateOverride decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.WorkerID = chi.URLParam(r, "workerID")
	if err := validateStruct(req); err != nil {
		response.HandleError(w, err)
		return
	}

	override, err := h.overrideService.CreateOverride(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Availability override created", override)
}

func (h *AvailabilityHandlerImpl) ListOverrides(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")
	date, err := dateQueryParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	overrides, err := h.overrideService.ListOverrides(r.Context(), workerID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, overrides)
}

func (h *AvailabilityHandlerImpl) ExpireOverride(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "overrideID")
	if id == "" {
		response.BadRequest(w, "Override ID is required", nil)
		return
	}

	if err := h.overrideService.ExpireOverride(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Availability override expired", nil)
}
