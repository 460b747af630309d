package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cbti-tools/sleep-diary/internal/api/validation"
	"github.com/cbti-tools/sleep-diary/internal/domain"
	"github.com/cbti-tools/sleep-diary/internal/service"
	"github.com/cbti-tools/sleep-diary/pkg/problem"
	"github.com/go-chi/chi/v5"
)

type PlanHandler struct {
	service service.PlanService
}

func NewPlanHandler(service service.PlanService) *PlanHandler {
	return &PlanHandler{service: service}
}

// Proposal handles GET /v1/plan/proposal
// @Summary Propose a window adjustment
// @Description Apply the CBT-i threshold rules to the rolling SE average and the currently active window. The proposal is not applied; POST /plan/apply commits it.
// @Tags plan
// @Produce json
// @Success 200 {object} domain.ProposalResponse
// @Failure 500 {object} problem.Problem "Server error"
// @Router /plan/proposal [get]
func (h *PlanHandler) Proposal(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Proposal(r.Context())
	if err != nil {
		problem.InternalError("Failed to compute proposal").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// Apply handles POST /v1/plan/apply
// @Summary Append a window prescription
// @Description Append a new effective-dated window record through the ledger's validation gate. Works for both rule-triggered proposals and manual prescriptions.
// @Tags plan
// @Accept json
// @Produce json
// @Param request body domain.ApplyWindowRequest true "Window record"
// @Success 201 {object} domain.WindowRecordResponse
// @Failure 400 {object} problem.Problem "Invalid JSON body"
// @Failure 422 {object} problem.Problem "Effective date not after latest, or window invalid"
// @Failure 500 {object} problem.Problem "Persistence failed (in-memory state retained)"
// @Router /plan/apply [post]
func (h *PlanHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req domain.ApplyWindowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	record, err := h.service.Apply(r.Context(), &req)
	if err != nil {
		writePlanError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
}

// History handles GET /v1/plan/history
// @Summary Window prescription history
// @Description Full effective-dated ledger, earliest first.
// @Tags plan
// @Produce json
// @Success 200 {object} domain.WindowHistoryResponse
// @Router /plan/history [get]
func (h *PlanHandler) History(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.service.History(r.Context()))
}

// Edit handles PUT /v1/plan/history/{date}
// @Summary Edit a history record
// @Description Replace the window prescribed at an existing effective date. Re-dating a record is a remove plus append, not an edit.
// @Tags plan
// @Accept json
// @Produce json
// @Param date path string true "Effective date" format(date) example(2024-01-10)
// @Param request body domain.EditWindowRequest true "New window values"
// @Success 200 {object} domain.WindowRecordResponse
// @Failure 400 {object} problem.Problem "Invalid date or JSON body"
// @Failure 422 {object} problem.Problem "No record at date, or window invalid"
// @Failure 500 {object} problem.Problem "Persistence failed (in-memory state retained)"
// @Router /plan/history/{date} [put]
func (h *PlanHandler) Edit(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if !domain.ValidDate(date) {
		problem.BadRequest("Invalid date format, expected YYYY-MM-DD").Write(w)
		return
	}

	var req domain.EditWindowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	record, err := h.service.Edit(r.Context(), date, &req)
	if err != nil {
		writePlanError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(record)
}

// Remove handles DELETE /v1/plan/history/{date}
// @Summary Remove a history record
// @Description Remove the record at an effective date. The initial plan record can never be removed.
// @Tags plan
// @Param date path string true "Effective date" format(date) example(2024-01-10)
// @Success 204 "Record removed"
// @Failure 400 {object} problem.Problem "Invalid date"
// @Failure 422 {object} problem.Problem "No record at date, or record is the initial plan"
// @Failure 500 {object} problem.Problem "Persistence failed (in-memory state retained)"
// @Router /plan/history/{date} [delete]
func (h *PlanHandler) Remove(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if !domain.ValidDate(date) {
		problem.BadRequest("Invalid date format, expected YYYY-MM-DD").Write(w)
		return
	}

	if err := h.service.Remove(r.Context(), date); err != nil {
		writePlanError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Active handles GET /v1/plan/active
// @Summary Active window on a date
// @Description Resolve the window active on a date: the record with the greatest effective_from at or before it. Dates before the earliest record fall back to the initial plan with a gap warning.
// @Tags plan
// @Produce json
// @Param date query string true "Date to resolve" format(date) example(2024-01-20)
// @Success 200 {object} domain.ActiveWindowResponse
// @Failure 400 {object} problem.Problem "Invalid date"
// @Router /plan/active [get]
func (h *PlanHandler) Active(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if !domain.ValidDate(date) {
		problem.BadRequest("Query parameter 'date' must be an ISO calendar date").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.service.ActiveOn(r.Context(), date))
}

func writePlanError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		problem.ValidationError(err.Error(), nil).Write(w)
	default:
		problem.InternalError(err.Error()).Write(w)
	}
}
