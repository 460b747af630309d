package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/cbti-tools/sleep-diary/internal/domain"
	"github.com/cbti-tools/sleep-diary/internal/service"
	"github.com/cbti-tools/sleep-diary/pkg/problem"
)

type MetricsHandler struct {
	service     service.MetricsService
	defaultDays int
	today       func() string
}

// NewMetricsHandler wires the metrics service. defaultDays is the
// configured window length used when the query omits one (zero falls
// through to the service default); today is injectable for tests, pass
// nil for wall clock.
func NewMetricsHandler(service service.MetricsService, defaultDays int, today func() string) *MetricsHandler {
	if today == nil {
		today = func() string { return time.Now().Format(domain.DateLayout) }
	}
	return &MetricsHandler{service: service, defaultDays: defaultDays, today: today}
}

// Nights handles GET /v1/metrics/nights
// @Summary Per-night metrics
// @Description Derived TIB, WASO, TST and SE for each night in a date range, chronological order. Incomplete nights are included and flagged.
// @Tags metrics
// @Produce json
// @Param from query string true "Start of range (inclusive)" format(date) example(2024-01-01)
// @Param to query string true "End of range (inclusive)" format(date) example(2024-01-31)
// @Success 200 {array} domain.NightMetrics
// @Failure 422 {object} problem.Problem "Invalid range"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /metrics/nights [get]
func (h *MetricsHandler) Nights(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	var fieldErrors []problem.FieldError
	if !domain.ValidDate(from) {
		fieldErrors = append(fieldErrors, problem.FieldError{Field: "from", Message: "must be an ISO calendar date"})
	}
	if !domain.ValidDate(to) {
		fieldErrors = append(fieldErrors, problem.FieldError{Field: "to", Message: "must be an ISO calendar date"})
	}
	if fieldErrors == nil && to < from {
		fieldErrors = append(fieldErrors, problem.FieldError{Field: "to", Message: "must not precede from"})
	}
	if fieldErrors != nil {
		problem.ValidationError("Invalid query parameters", fieldErrors).Write(w)
		return
	}

	nights, err := h.service.Nights(r.Context(), from, to)
	if err != nil {
		problem.InternalError("Failed to compute night metrics").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(nights)
}

// Rolling handles GET /v1/metrics/rolling
// @Summary Rolling SE average
// @Description Trailing-window sleep efficiency average ending today, complete nights only. Zero complete nights yields the insufficient-data flag, never a numeric average.
// @Tags metrics
// @Produce json
// @Param days query integer false "Window length in days" default(7) minimum(1)
// @Success 200 {object} domain.RollingReport
// @Failure 422 {object} problem.Problem "Invalid window length"
// @Failure 500 {object} problem.Problem "Server error"
// @Router /metrics/rolling [get]
func (h *MetricsHandler) Rolling(w http.ResponseWriter, r *http.Request) {
	days := h.defaultDays
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 {
			problem.ValidationError("Invalid query parameters",
				[]problem.FieldError{{Field: "days", Message: "must be a positive integer"}}).Write(w)
			return
		}
		days = parsed
	}

	report, err := h.service.Rolling(r.Context(), h.today(), days)
	if err != nil {
		problem.InternalError("Failed to compute rolling metrics").Write(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}
