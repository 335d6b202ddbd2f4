package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/staffhub/rostering-backend-go/internal/domain/roster"
	"github.com/staffhub/rostering-backend-go/internal/handler/http/response"
)

type RosterHandler interface {
	CreateTemplate(w http.ResponseWriter, r *http.Request)
	GetTemplate(w http.ResponseWriter, r *http.Request)
	ListTemplates(w http.ResponseWriter, r *http.Request)
	DeactivateTemplate(w http.ResponseWriter, r *http.Request)

	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Generate(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Publish(w http.ResponseWriter, r *http.Request)
	Conflicts(w http.ResponseWriter, r *http.Request)

	SubmitSwap(w http.ResponseWriter, r *http.Request)
	ApproveSwap(w http.ResponseWriter, r *http.Request)
	RejectSwap(w http.ResponseWriter, r *http.Request)
	ListSwaps(w http.ResponseWriter, r *http.Request)
}

type RosterHandlerImpl struct {
	templateService roster.TemplateService
	rosterService   roster.RosterService
	swapService     roster.SwapService
}

func NewRosterHandler(templateService roster.TemplateService, rosterService roster.RosterService, swapService roster.SwapService) RosterHandler {
	return &RosterHandlerImpl{
		templateService: templateService,
		rosterService:   rosterService,
		swapService:     swapService,
	}
}

func (h *RosterHandlerImpl) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req roster.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateTemplate decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := validateStruct(req); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.templateService.CreateTemplate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Shift template created", created)
}

func (h *RosterHandlerImpl) GetTemplate(w http.ResponseWriter, r *http.Request) {
	template, err := h.templateService.GetTemplate(r.Context(), chi.URLParam(r, "templateID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, template)
}

func (h *RosterHandlerImpl) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templateService.ListTemplates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, templates)
}

func (h *RosterHandlerImpl) DeactivateTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.templateService.DeactivateTemplate(r.Context(), chi.URLParam(r, "templateID")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift template deactivated", nil)
}

func (h *RosterHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req roster.CreateRosterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRoster decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := validateStruct(req); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.rosterService.CreateRoster(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Roster created", created)
}

func (h *RosterHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.rosterService.GetRoster(r.Context(), chi.URLParam(r, "rosterID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *RosterHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	rosters, err := h.rosterService.ListRosters(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, rosters)
}

func (h *RosterHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req roster.AutoGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("GenerateRoster decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RosterID = chi.URLParam(r, "rosterID")
	if err := validateStruct(req); err != nil {
		response.HandleError(w, err)
		return
	}

	generated, stats, err := h.rosterService.AutoGenerate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Roster generated", map[string]interface{}{
		"roster": generated,
		"stats":  stats,
	})
}

func (h *RosterHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	approved, err := h.rosterService.ApproveRoster(r.Context(), chi.URLParam(r, "rosterID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Roster approved", approved)
}

func (h *RosterHandlerImpl) Publish(w http.ResponseWriter, r *http.Request) {
	published, err := h.rosterService.PublishRoster(r.Context(), chi.URLParam(r, "rosterID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Roster published", published)
}

func (h *RosterHandlerImpl) Conflicts(w http.ResponseWriter, r *http.Request) {
	report, err := h.rosterService.DetectConflicts(r.Context(), chi.URLParam(r, "rosterID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, report)
}

func (h *RosterHandlerImpl) SubmitSwap(w http.ResponseWriter, r *http.Request) {
	var req roster.CreateSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitSwap decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RosterID = chi.URLParam(r, "rosterID")
	if err := validateStruct(req); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.swapService.SubmitSwap(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Shift swap requested", created)
}

type decideSwapRequest struct {
	DecidedBy string `json:"decided_by" validate:"required"`
}

func (h *RosterHandlerImpl) ApproveSwap(w http.ResponseWriter, r *http.Request) {
	var req decideSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApproveSwap decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := validateStruct(req); err != nil {
		response.HandleError(w, err)
		return
	}

	approved, err := h.swapService.ApproveSwap(r.Context(), chi.URLParam(r, "swapID"), req.DecidedBy)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift swap approved", approved)
}

func (h *RosterHandlerImpl) RejectSwap(w http.ResponseWriter, r *http.Request) {
	var req decideSwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectSwap decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := validateStruct(req); err != nil {
		response.HandleError(w, err)
		return
	}

	rejected, err := h.swapService.RejectSwap(r.Context(), chi.URLParam(r, "swapID"), req.DecidedBy)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Shift swap rejected", rejected)
}

func (h *RosterHandlerImpl) ListSwaps(w http.ResponseWriter, r *http.Request) {
	swaps, err := h.swapService.ListSwaps(r.Context(), chi.URLParam(r, "rosterID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, swaps)
}
