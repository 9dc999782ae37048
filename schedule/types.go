/*
Package schedule provides the shift-scheduling engine.

PURPOSE:
  This package contains the core types and algorithms for managing shift
  assignments: interval conflict detection (including overnight shifts),
  work-hour arithmetic, the record lifecycle, aggregation queries, and the
  write-serialization protocol around the record store.

KEY CONCEPTS IN THIS FILE (types.go):
  - ScheduleRecord: One shift assignment (append + status-flag only)
  - TimeOfDay: A clock time with no date component
  - Date: A calendar date compared as an opaque value
  - ShiftType/Status: Enumerated tags for records

DESIGN PRINCIPLES:
  1. Append-only: Records are never physically removed; Deleted is a
     soft-delete marker and the terminal state.
  2. Precision: Uses decimal.Decimal for work hours to avoid
     floating-point errors when aggregating.
  3. Snapshot denormalization: EmployeeName is captured at creation time
     and intentionally never refreshed.

SEE ALSO:
  - interval.go: Interval normalization and work-hour math
  - conflict.go: Overlap detection against a record snapshot
  - service.go: Write operations under the advisory lock
*/
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ScheduleID string
type EmployeeID string

// =============================================================================
// ENUMERATED TAGS
// =============================================================================

// ShiftType is a descriptive tag for the rough shape of a shift.
// It plays no role in conflict detection.
type ShiftType string

const (
	ShiftMorning ShiftType = "morning"
	ShiftMid     ShiftType = "mid"
	ShiftEvening ShiftType = "evening"
	ShiftFullDay ShiftType = "full_day"
)

// KnownShiftTypes lists the accepted shift tags.
var KnownShiftTypes = []ShiftType{ShiftMorning, ShiftMid, ShiftEvening, ShiftFullDay}

func (s ShiftType) Valid() bool {
	for _, known := range KnownShiftTypes {
		if s == known {
			return true
		}
	}
	return false
}

// Status is the lifecycle state of a record.
// The only transition is Active -> Deleted; Deleted is terminal.
type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

func (s Status) Valid() bool { return s == StatusActive || s == StatusDeleted }

// =============================================================================
// TIME OF DAY - Clock time without a date component
// =============================================================================

// TimeOfDay is a wall-clock time in 24-hour form. The zero value is midnight.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (24-hour). Returns ErrInvalidTime on
// malformed input.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("%q: %w", s, ErrInvalidTime)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return TimeOfDay{}, fmt.Errorf("%q: %w", s, ErrInvalidTime)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("%q: %w", s, ErrInvalidTime)
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// MinuteOfDay returns minutes since midnight.
func (t TimeOfDay) MinuteOfDay() int { return t.Hour*60 + t.Minute }

func (t TimeOfDay) String() string { return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute) }

// =============================================================================
// DATE - Calendar date compared as an opaque value (no time zone logic)
// =============================================================================

type Date struct {
	Time time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// Comparison
func (d Date) Before(other Date) bool { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool  { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool  { return d.normalize().After(other.normalize()) }
func (d Date) BeforeOrEqual(other Date) bool { return d.Before(other) || d.Equal(other) }
func (d Date) AfterOrEqual(other Date) bool  { return d.After(other) || d.Equal(other) }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// Arithmetic and properties
func (d Date) AddDays(n int) Date      { return Date{Time: d.Time.AddDate(0, 0, n)} }
func (d Date) Year() int               { return d.Time.Year() }
func (d Date) Month() time.Month       { return d.Time.Month() }
func (d Date) Day() int                { return d.Time.Day() }
func (d Date) IsZero() bool            { return d.Time.IsZero() }
func (d Date) Weekday() time.Weekday   { return d.normalize().Weekday() }

func (d Date) String() string { return d.normalize().Format("2006-01-02") }

// MonthWindow returns the first and last day of a month, the derived
// window used by monthly aggregation.
func MonthWindow(year int, month time.Month) (from, to Date) {
	from = NewDate(year, month, 1)
	last := time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	to = Date{Time: last}
	return from, to
}

// =============================================================================
// SCHEDULE RECORD - One shift assignment
// =============================================================================

// ScheduleRecord is one shift assignment. Records are created once and
// afterwards only the Status field is ever mutated; WorkHours is computed
// at creation and never recomputed.
type ScheduleRecord struct {
	ID         ScheduleID
	EmployeeID EmployeeID

	// EmployeeName is denormalized at creation time and not kept in sync
	// with later identity changes.
	EmployeeName string

	StoreLocation string
	Position      string

	Date  Date
	Shift ShiftType
	Start TimeOfDay
	End   TimeOfDay

	// WorkHours is the normalized interval length in hours, rounded to
	// 2 decimal places. Always > 0.
	WorkHours decimal.Decimal

	IsHoliday bool
	Status    Status

	// Audit metadata
	CreatedBy string
	CreatedAt time.Time
	Notes     string
}

// Active reports whether the record participates in conflict checks and
// aggregation.
func (r ScheduleRecord) Active() bool { return r.Status == StatusActive }
