/*
handlers.go - HTTP API handlers for the shift-scheduling engine

PURPOSE:
  Exposes the scheduling engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to the engine.

ENDPOINTS:
  Schedules:
    POST   /api/schedules                  Create a schedule record
    POST   /api/schedules/batch            Batch create under one lock
    GET    /api/schedules                  List with filters
    GET    /api/schedules/statistics       Shift statistics
    PATCH  /api/schedules/{id}/status      Update status
    DELETE /api/schedules/{id}             Soft delete

  Employees:
    GET    /api/employees/{id}/monthly-summary  Monthly work hours

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Record or employee not found
  - 409: Overlapping shift exists (response carries the windows)
  - 503: Lock acquisition timed out (safe to retry, nothing written)
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/warp/shift-engine/schedule"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine *schedule.Service
	Log    *zap.Logger
}

// NewHandler creates a new handler around the scheduling engine.
func NewHandler(engine *schedule.Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Engine: engine, Log: log}
}

// =============================================================================
// SCHEDULE HANDLERS
// =============================================================================

// CreateSchedule creates a single schedule record.
func (h *Handler) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	var req CreateScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	domain, err := req.toDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid schedule_date format (use YYYY-MM-DD)", err)
		return
	}

	rec, err := h.Engine.Create(r.Context(), domain)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toScheduleDTO(*rec))
}

// BatchCreateSchedules creates several records under one lock acquisition.
func (h *Handler) BatchCreateSchedules(w http.ResponseWriter, r *http.Request) {
	var req BatchCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "Batch must contain at least one item", nil)
		return
	}

	domain := make([]schedule.CreateRequest, len(req.Items))
	parseErrs := make([]error, len(req.Items))
	for i, item := range req.Items {
		d, err := item.toDomain()
		if err != nil {
			// Keep the item in the batch as a guaranteed per-item failure so
			// indices in the result line up with the request; the parse error
			// itself is reported as the item's error below.
			parseErrs[i] = err
			d = schedule.CreateRequest{
				EmployeeID: schedule.EmployeeID(item.EmployeeID),
				Start:      item.StartTime,
				End:        item.EndTime,
			}
		}
		domain[i] = d
	}

	result, err := h.Engine.CreateBatch(r.Context(), domain, req.Actor)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	dto := BatchResultDTO{
		Items:     make([]BatchItemDTO, len(result.Items)),
		Succeeded: result.Succeeded,
		Failed:    result.Failed,
	}
	for i, item := range result.Items {
		out := BatchItemDTO{Index: item.Index}
		if item.Record != nil {
			sched := toScheduleDTO(*item.Record)
			out.Schedule = &sched
		}
		switch {
		case parseErrs[i] != nil:
			out.Error = parseErrs[i].Error()
		case item.Err != nil:
			out.Error = item.Err.Error()
		}
		dto.Items[i] = out
	}
	writeJSON(w, http.StatusOK, dto)
}

// ListSchedules lists records with optional filters.
// Query params: employee_id, location, shift_type, from, to,
// include_deleted, order (date|submission).
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	var filter schedule.RecordFilter

	if v := r.URL.Query().Get("employee_id"); v != "" {
		id := schedule.EmployeeID(v)
		filter.EmployeeID = &id
	}
	if v := r.URL.Query().Get("location"); v != "" {
		filter.Location = &v
	}
	if v := r.URL.Query().Get("shift_type"); v != "" {
		st := schedule.ShiftType(v)
		filter.Shift = &st
	}
	if v := r.URL.Query().Get("from"); v != "" {
		d, err := schedule.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid from date (use YYYY-MM-DD)", err)
			return
		}
		filter.From = &d
	}
	if v := r.URL.Query().Get("to"); v != "" {
		d, err := schedule.ParseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid to date (use YYYY-MM-DD)", err)
			return
		}
		filter.To = &d
	}
	filter.IncludeDeleted = r.URL.Query().Get("include_deleted") == "true"

	order := schedule.OrderByDate
	if r.URL.Query().Get("order") == "submission" {
		order = schedule.OrderBySubmission
	}

	recs, err := h.Engine.List(r.Context(), filter, order)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleDTOs(recs))
}

// UpdateScheduleStatus changes a record's status.
func (h *Handler) UpdateScheduleStatus(w http.ResponseWriter, r *http.Request) {
	id := schedule.ScheduleID(chi.URLParam(r, "id"))

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rec, err := h.Engine.UpdateStatus(r.Context(), id, schedule.Status(req.Status), req.Actor)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleDTO(*rec))
}

// DeleteSchedule soft-deletes a record. Rows are never physically removed.
func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id := schedule.ScheduleID(chi.URLParam(r, "id"))
	actor := r.URL.Query().Get("actor")

	rec, err := h.Engine.UpdateStatus(r.Context(), id, schedule.StatusDeleted, actor)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScheduleDTO(*rec))
}

// =============================================================================
// AGGREGATION HANDLERS
// =============================================================================

// GetMonthlySummary returns the monthly work-hours aggregate for an employee.
// Query params: year, month (both required).
func (h *Handler) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	employeeID := schedule.EmployeeID(chi.URLParam(r, "id"))

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or missing year", err)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Invalid or missing month (1-12)", err)
		return
	}

	summary, err := h.Engine.MonthlySummary(r.Context(), employeeID, year, time.Month(month))
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	total, _ := summary.TotalHours.Float64()
	holiday, _ := summary.HolidayHours.Float64()
	regular, _ := summary.RegularHours.Float64()
	writeJSON(w, http.StatusOK, MonthlySummaryDTO{
		EmployeeID:   string(summary.EmployeeID),
		Year:         summary.Year,
		Month:        int(summary.Month),
		TotalHours:   total,
		HolidayHours: holiday,
		RegularHours: regular,
		ShiftCount:   summary.ShiftCount,
	})
}

// GetStatistics returns shift statistics over a date range.
// Query params: from, to (required), location (optional).
func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	from, err := schedule.ParseDate(r.URL.Query().Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or missing from date", err)
		return
	}
	to, err := schedule.ParseDate(r.URL.Query().Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid or missing to date", err)
		return
	}
	location := r.URL.Query().Get("location")

	stats, err := h.Engine.ShiftStatistics(r.Context(), from, to, location)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	byShift := make(map[string]int, len(stats.ByShift))
	for k, v := range stats.ByShift {
		byShift[string(k)] = v
	}
	total, _ := stats.TotalHours.Float64()
	avg, _ := stats.AverageHours.Float64()
	writeJSON(w, http.StatusOK, StatisticsDTO{
		From:         stats.From.String(),
		To:           stats.To.String(),
		Location:     stats.Location,
		Total:        stats.Total,
		ByShift:      byShift,
		ByPosition:   stats.ByPosition,
		TotalHours:   total,
		AverageHours: avg,
	})
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

// writeEngineError maps engine errors onto HTTP statuses.
func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	var conflictErr *schedule.ConflictError
	switch {
	case errors.As(err, &conflictErr):
		writeJSON(w, http.StatusConflict, ErrorResponse{
			Error:     conflictErr.Error(),
			Code:      "conflict",
			Conflicts: toConflictDTOs(conflictErr.Windows),
		})
	case errors.Is(err, schedule.ErrLockTimeout):
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Error: "could not serialize write, retry later",
			Code:  "lock_timeout",
		})
	case schedule.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: err.Error(),
			Code:  "not_found",
		})
	case schedule.IsClientError(err):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "validation",
		})
	default:
		h.Log.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
