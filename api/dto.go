/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Shape validation lives in the schedule package, not in DTOs. DTOs are
  pure data carriers; handlers only translate formats.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/warp/shift-engine/schedule"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ScheduleDTO represents a schedule record in API responses.
type ScheduleDTO struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name"`
	StoreLocation string  `json:"store_location,omitempty"`
	Position      string  `json:"position,omitempty"`
	ScheduleDate  string  `json:"schedule_date"`
	ShiftType     string  `json:"shift_type,omitempty"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	WorkHours     float64 `json:"work_hours"`
	IsHoliday     bool    `json:"is_holiday"`
	Status        string  `json:"status"`
	CreatedBy     string  `json:"created_by,omitempty"`
	CreatedAt     string  `json:"created_at,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

// CreateScheduleRequest is the request to create one schedule record.
type CreateScheduleRequest struct {
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name,omitempty"`
	StoreLocation string `json:"store_location,omitempty"`
	Position      string `json:"position,omitempty"`
	ScheduleDate  string `json:"schedule_date"`
	ShiftType     string `json:"shift_type,omitempty"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	IsHoliday     bool   `json:"is_holiday,omitempty"`
	Notes         string `json:"notes,omitempty"`
	CreatedBy     string `json:"created_by,omitempty"`
}

// BatchCreateRequest is the request to create several records under one
// lock acquisition.
type BatchCreateRequest struct {
	Actor string                  `json:"actor,omitempty"`
	Items []CreateScheduleRequest `json:"items"`
}

// BatchItemDTO is the outcome of one batch item.
type BatchItemDTO struct {
	Index    int          `json:"index"`
	Schedule *ScheduleDTO `json:"schedule,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// BatchResultDTO is the per-item outcome list plus aggregate counts.
type BatchResultDTO struct {
	Items     []BatchItemDTO `json:"items"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
}

// UpdateStatusRequest changes a record's status (the soft-delete path).
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Actor  string `json:"actor,omitempty"`
}

// ConflictDTO describes one conflicting window in a 409 response.
type ConflictDTO struct {
	ScheduleID string `json:"schedule_id"`
	Date       string `json:"date"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// MonthlySummaryDTO is the monthly work-hours aggregate.
type MonthlySummaryDTO struct {
	EmployeeID   string  `json:"employee_id"`
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	TotalHours   float64 `json:"total_hours"`
	HolidayHours float64 `json:"holiday_hours"`
	RegularHours float64 `json:"regular_hours"`
	ShiftCount   int     `json:"shift_count"`
}

// StatisticsDTO is the shift-statistics aggregate.
type StatisticsDTO struct {
	From         string         `json:"from"`
	To           string         `json:"to"`
	Location     string         `json:"location,omitempty"`
	Total        int            `json:"total"`
	ByShift      map[string]int `json:"by_shift_type"`
	ByPosition   map[string]int `json:"by_position"`
	TotalHours   float64        `json:"total_hours"`
	AverageHours float64        `json:"average_hours"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error     string        `json:"error"`
	Code      string        `json:"code,omitempty"`
	Conflicts []ConflictDTO `json:"conflicts,omitempty"`
	Details   any           `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toScheduleDTO(rec schedule.ScheduleRecord) ScheduleDTO {
	hours, _ := rec.WorkHours.Float64()
	dto := ScheduleDTO{
		ID:            string(rec.ID),
		EmployeeID:    string(rec.EmployeeID),
		EmployeeName:  rec.EmployeeName,
		StoreLocation: rec.StoreLocation,
		Position:      rec.Position,
		ScheduleDate:  rec.Date.String(),
		ShiftType:     string(rec.Shift),
		StartTime:     rec.Start.String(),
		EndTime:       rec.End.String(),
		WorkHours:     hours,
		IsHoliday:     rec.IsHoliday,
		Status:        string(rec.Status),
		CreatedBy:     rec.CreatedBy,
		Notes:         rec.Notes,
	}
	if !rec.CreatedAt.IsZero() {
		dto.CreatedAt = rec.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

func toScheduleDTOs(recs []schedule.ScheduleRecord) []ScheduleDTO {
	dtos := make([]ScheduleDTO, len(recs))
	for i, rec := range recs {
		dtos[i] = toScheduleDTO(rec)
	}
	return dtos
}

func toConflictDTOs(windows []schedule.ConflictWindow) []ConflictDTO {
	dtos := make([]ConflictDTO, len(windows))
	for i, w := range windows {
		dtos[i] = ConflictDTO{
			ScheduleID: string(w.ScheduleID),
			Date:       w.Date.String(),
			StartTime:  w.Start.String(),
			EndTime:    w.End.String(),
		}
	}
	return dtos
}

func (r CreateScheduleRequest) toDomain() (schedule.CreateRequest, error) {
	date, err := schedule.ParseDate(r.ScheduleDate)
	if err != nil {
		return schedule.CreateRequest{}, err
	}
	return schedule.CreateRequest{
		EmployeeID:    schedule.EmployeeID(r.EmployeeID),
		EmployeeName:  r.EmployeeName,
		StoreLocation: r.StoreLocation,
		Position:      r.Position,
		Date:          date,
		Shift:         schedule.ShiftType(r.ShiftType),
		Start:         r.StartTime,
		End:           r.EndTime,
		IsHoliday:     r.IsHoliday,
		Notes:         r.Notes,
		CreatedBy:     r.CreatedBy,
	}, nil
}
