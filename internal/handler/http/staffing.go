package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/staffhub/rostering-backend-go/internal/handler/http/response"
	"github.com/staffhub/rostering-backend-go/internal/pkg/validator"
	"github.com/staffhub/rostering-backend-go/internal/service/matching"
)

type StaffingHandler interface {
	Search(w http.ResponseWriter, r *http.Request)
}

type StaffingHandlerImpl struct {
	engine *matching.Engine
}

func NewStaffingHandler(engine *matching.Engine) StaffingHandler {
	return &StaffingHandlerImpl{engine: engine}
}

type searchStaffRequest struct {
	Date           string   `json:"date" validate:"required"`
	StartTime      string   `json:"start_time" validate:"required,len=5"`
	EndTime        string   `json:"end_time" validate:"required,len=5"`
	RequiredSkills []string `json:"required_skills"`
	Location       string   `json:"location"`
	ShiftType      string   `json:"shift_type"`
	MinimumStaff   int      `json:"minimum_staff" validate:"required,gt=0"`
	ExcludeIDs     []string `json:"exclude_ids"`
}

// Search finds and ranks workers able to cover an ad-hoc staffing need.
func (h *StaffingHandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	var req searchStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SearchStaff decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := validateStruct(req); err != nil {
		response.HandleError(w, err)
		return
	}

	date, ok := validator.IsValidDate(req.Date)
	if !ok {
		response.HandleError(w, validator.ValidationErrors{{Field: "date", Message: "must be YYYY-MM-DD"}})
		return
	}

	result, err := h.engine.FindAvailableStaff(r.Context(), matching.ShiftRequirements{
		Date:           date,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		RequiredSkills: req.RequiredSkills,
		Location:       req.Location,
		ShiftType:      req.ShiftType,
		MinimumStaff:   req.MinimumStaff,
		ExcludeIDs:     req.ExcludeIDs,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
