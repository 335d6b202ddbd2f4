package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/staffhub/rostering-backend-go/internal/domain/timeoff"
	"github.com/staffhub/rostering-backend-go/internal/handler/http/response"
)

type TimeOffHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListForWorker(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type TimeOffHandlerImpl struct {
	requestService timeoff.RequestService
}

func NewTimeOffHandler(requestService timeoff.RequestService) TimeOffHandler {
	return &TimeOffHandlerImpl{requestService: requestService}
}

func (h *TimeOffHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req timeoff.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitTimeOff decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := validateStruct(req); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.requestService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Time-off request submitted", created)
}

func (h *TimeOffHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "requestID")
	if id == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	request, err := h.requestService.GetRequest(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, request)
}

func (h *TimeOffHandlerImpl) ListForWorker(w http.ResponseWriter, r *http.Request) {
	workerID := chi.URLParam(r, "workerID")

	requests, err := h.requestService.ListWorkerRequests(r.Context(), workerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, requests)
}

func (h *TimeOffHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var req timeoff.ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ApproveTimeOff decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "requestID")
	if err := validateStruct(req); err != nil {
		response.HandleError(w, err)
		return
	}

	approved, err := h.requestService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Time-off request approved", approved)
}

func (h *TimeOffHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	var req timeoff.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectTimeOff decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "requestID")
	if err := validateStruct(req); err != nil {
		response.HandleError(w, err)
		return
	}

	rejected, err := h.requestService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Time-off request rejected", rejected)
}

func (h *TimeOffHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	var req timeoff.CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CancelTimeOff decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.RequestID = chi.URLParam(r, "requestID")
	if err := validateStruct(req); err != nil {
		response.HandleError(w, err)
		return
	}

	cancelled, err := h.requestService.Cancel(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Time-off request cancelled", cancelled)
}
