package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cbti-tools/sleep-diary/internal/api/validation"
	"github.com/cbti-tools/sleep-diary/internal/domain"
	"github.com/cbti-tools/sleep-diary/internal/service"
	"github.com/cbti-tools/sleep-diary/pkg/problem"
	"github.com/go-chi/chi/v5"
)

type DiaryHandler struct {
	service service.DiaryService
}

func NewDiaryHandler(service service.DiaryService) *DiaryHandler {
	return &DiaryHandler{service: service}
}

// Create handles POST /v1/diary
// @Summary Log a night
// @Description Record one night's sleep diary entry. At most one entry exists per log date; timestamps may be partial but must respect the bedtime..rise ordering on the 18:00-anchored sleep-day axis.
// @Tags diary
// @Accept json
// @Produce json
// @Param request body domain.UpsertDiaryEntryRequest true "Diary entry"
// @Success 201 {object} domain.DiaryEntryResponse "Entry created"
// @Failure 400 {object} problem.Problem "Invalid JSON body"
// @Failure 409 {object} problem.Problem "Entry already exists for date"
// @Failure 422 {object} problem.Problem "Ordering or interval violation"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /diary [post]
func (h *DiaryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.UpsertDiaryEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	entry, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeDiaryError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// Replace handles PUT /v1/diary/{date}
// @Summary Edit a night
// @Description Replace the diary entry for a date wholesale. Derived metrics are recomputed from the new values.
// @Tags diary
// @Accept json
// @Produce json
// @Param date path string true "Log date" format(date) example(2024-01-15)
// @Param request body domain.UpsertDiaryEntryRequest true "Replacement entry"
// @Success 200 {object} domain.DiaryEntryResponse "Entry replaced"
// @Failure 400 {object} problem.Problem "Invalid JSON body"
// @Failure 404 {object} problem.Problem "No entry for date"
// @Failure 422 {object} problem.Problem "Ordering or interval violation"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /diary/{date} [put]
func (h *DiaryHandler) Replace(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if !domain.ValidDate(date) {
		problem.BadRequest("Invalid date format, expected YYYY-MM-DD").Write(w)
		return
	}

	var req domain.UpsertDiaryEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		problem.ValidationError("Request body contains invalid fields", fieldErrors).Write(w)
		return
	}

	entry, err := h.service.Replace(r.Context(), date, &req)
	if err != nil {
		writeDiaryError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

// GetByDate handles GET /v1/diary/{date}
// @Summary Get a night
// @Description Fetch one diary entry with derived metrics. Incomplete nights are returned with raw fields only.
// @Tags diary
// @Produce json
// @Param date path string true "Log date" format(date) example(2024-01-15)
// @Success 200 {object} domain.DiaryEntryResponse
// @Failure 400 {object} problem.Problem "Invalid date"
// @Failure 404 {object} problem.Problem "No entry for date"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /diary/{date} [get]
func (h *DiaryHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if !domain.ValidDate(date) {
		problem.BadRequest("Invalid date format, expected YYYY-MM-DD").Write(w)
		return
	}

	resp, err := h.service.GetByDate(r.Context(), date)
	if err != nil {
		writeDiaryError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// List handles GET /v1/diary
// @Summary List diary entries
// @Description Fetch paginated diary history, newest first, with derived metrics per night.
// @Tags diary
// @Produce json
// @Param from query string false "Start of date range (inclusive)" format(date) example(2024-01-01)
// @Param to query string false "End of date range (inclusive)" format(date) example(2024-01-31)
// @Param limit query integer false "Results per page (1-100)" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from previous response's next_cursor"
// @Success 200 {object} domain.DiaryListResponse
// @Failure 400 {object} problem.Problem "Invalid query parameters"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /diary [get]
func (h *DiaryHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, fieldErrors := parseDiaryFilter(r)
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	resp, err := h.service.List(r.Context(), filter)
	if err != nil {
		problem.InternalError("Failed to list diary entries").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func parseDiaryFilter(r *http.Request) (domain.DiaryFilter, []problem.FieldError) {
	var filter domain.DiaryFilter
	var fieldErrors []problem.FieldError

	if from := r.URL.Query().Get("from"); from != "" {
		if !domain.ValidDate(from) {
			fieldErrors = append(fieldErrors, problem.FieldError{Field: "from", Message: "must be an ISO calendar date"})
		} else {
			filter.From = from
		}
	}

	if to := r.URL.Query().Get("to"); to != "" {
		if !domain.ValidDate(to) {
			fieldErrors = append(fieldErrors, problem.FieldError{Field: "to", Message: "must be an ISO calendar date"})
		} else {
			filter.To = to
		}
	}

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			fieldErrors = append(fieldErrors, problem.FieldError{Field: "limit", Message: "must be a positive integer"})
		} else {
			filter.Limit = limit
		}
	}

	filter.Cursor = r.URL.Query().Get("cursor")

	return filter, fieldErrors
}

func writeDiaryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateDate):
		problem.Conflict("A diary entry already exists for this date").Write(w)
	case errors.Is(err, domain.ErrNotFound):
		problem.NotFound("No diary entry for this date").Write(w)
	case errors.Is(err, domain.ErrValidation):
		problem.ValidationError(err.Error(), nil).Write(w)
	default:
		problem.InternalError("Failed to process diary entry").Write(w)
	}
}
