/*
query.go - Lock-free read side: listing and aggregation

PURPOSE:
  Read-only queries scan a snapshot of the store taken at call time and
  never acquire the write lock, trading strict consistency for
  availability. A write committed a moment earlier may or may not be
  visible depending on snapshot timing; callers tolerate eventual
  consistency.

QUERIES:
  List:            Filtered listing with caller-chosen ordering.
  MonthlySummary:  Work hours over a derived month window, split into
                   holiday and regular hours.
  ShiftStatistics: Counts grouped by shift type and position over a date
                   range, plus total and average work hours.

RESILIENCE:
  Aggregation sums the WorkHours computed at creation. Stores degrade a
  corrupt stored value to zero with a logged warning rather than failing
  the scan, so one bad row cannot abort a summary.
*/
package schedule

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// ListOrder selects listing order.
type ListOrder int

const (
	// OrderByDate sorts by schedule date ascending (listings).
	OrderByDate ListOrder = iota
	// OrderBySubmission sorts by creation time descending (activity views).
	OrderBySubmission
)

// List returns records matching the filter in the requested order.
func (s *Service) List(ctx context.Context, filter RecordFilter, order ListOrder) ([]ScheduleRecord, error) {
	recs, err := s.Store.ScanAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}

	switch order {
	case OrderBySubmission:
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].CreatedAt.After(recs[j].CreatedAt)
		})
	default:
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].Date.Before(recs[j].Date)
		})
	}
	return recs, nil
}

// =============================================================================
// MONTHLY WORK-HOURS SUMMARY
// =============================================================================

// MonthlySummary is the work-hours aggregate for one employee and month.
// All sums are rounded to 2 decimals.
type MonthlySummary struct {
	EmployeeID   EmployeeID
	Year         int
	Month        time.Month
	TotalHours   decimal.Decimal
	HolidayHours decimal.Decimal
	RegularHours decimal.Decimal
	ShiftCount   int
}

// MonthlySummary sums WorkHours over all Active records for an employee
// within the derived month window, accumulating holiday and non-holiday
// hours separately.
func (s *Service) MonthlySummary(ctx context.Context, employeeID EmployeeID, year int, month time.Month) (*MonthlySummary, error) {
	from, to := MonthWindow(year, month)
	recs, err := s.Store.LoadByEmployeeRange(ctx, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load month records: %w", err)
	}

	summary := &MonthlySummary{
		EmployeeID:   employeeID,
		Year:         year,
		Month:        month,
		TotalHours:   decimal.Zero,
		HolidayHours: decimal.Zero,
		RegularHours: decimal.Zero,
	}
	for _, rec := range recs {
		if !rec.Active() {
			continue
		}
		summary.ShiftCount++
		summary.TotalHours = summary.TotalHours.Add(rec.WorkHours)
		if rec.IsHoliday {
			summary.HolidayHours = summary.HolidayHours.Add(rec.WorkHours)
		} else {
			summary.RegularHours = summary.RegularHours.Add(rec.WorkHours)
		}
	}
	summary.TotalHours = summary.TotalHours.Round(2)
	summary.HolidayHours = summary.HolidayHours.Round(2)
	summary.RegularHours = summary.RegularHours.Round(2)
	return summary, nil
}

// =============================================================================
// SHIFT STATISTICS
// =============================================================================

// ShiftStatistics aggregates Active records over a date range and optional
// location filter.
type ShiftStatistics struct {
	From         Date
	To           Date
	Location     string
	Total        int
	ByShift      map[ShiftType]int
	ByPosition   map[string]int
	TotalHours   decimal.Decimal
	AverageHours decimal.Decimal
}

// ShiftStatistics produces counts grouped by shift type and by position,
// plus total and average work hours. The average is zero when the filtered
// set is empty. Pass location == "" to aggregate across locations.
func (s *Service) ShiftStatistics(ctx context.Context, from, to Date, location string) (*ShiftStatistics, error) {
	filter := RecordFilter{From: &from, To: &to}
	if location != "" {
		filter.Location = &location
	}
	recs, err := s.Store.ScanAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}

	stats := &ShiftStatistics{
		From:         from,
		To:           to,
		Location:     location,
		ByShift:      make(map[ShiftType]int),
		ByPosition:   make(map[string]int),
		TotalHours:   decimal.Zero,
		AverageHours: decimal.Zero,
	}
	for _, rec := range recs {
		stats.Total++
		stats.ByShift[rec.Shift]++
		stats.ByPosition[rec.Position]++
		stats.TotalHours = stats.TotalHours.Add(rec.WorkHours)
	}
	stats.TotalHours = stats.TotalHours.Round(2)
	if stats.Total > 0 {
		stats.AverageHours = stats.TotalHours.Div(decimal.NewFromInt(int64(stats.Total))).Round(2)
	}
	return stats, nil
}
