/*
interval.go - Normalized interval math and the work-hours calculator

PURPOSE:
  Shifts are [start, end) windows of wall-clock time. A shift whose raw end
  is not after its raw start wraps past midnight (an overnight shift) and is
  normalized by pushing the end 24 hours forward. All overlap checks and
  work-hour arithmetic operate on normalized intervals.

EQUALITY EDGE CASE:
  start == end is treated as a deliberate full 24-hour shift, not a
  zero-length one. This follows from applying the "end <= start => +24h"
  rule uniformly.

ROUNDING:
  Work hours are rounded half-up to 2 decimal places using decimal
  arithmetic, so 09:00-17:30 is exactly 8.5 and 22:00-06:00 is exactly 8.
*/
package schedule

import "github.com/shopspring/decimal"

var minutesPerHour = decimal.NewFromInt(60)

// =============================================================================
// INTERVAL - Normalized [start, end) window in minutes from midnight
// =============================================================================

// Interval is a normalized shift window. End is always strictly greater
// than Start; overnight shifts extend past 1440.
type Interval struct {
	Start int
	End   int
}

// NewInterval normalizes a raw start/end pair. If the raw end is not after
// the raw start, the shift wraps past midnight and 24 hours are added.
func NewInterval(start, end TimeOfDay) Interval {
	s := start.MinuteOfDay()
	e := end.MinuteOfDay()
	if e <= s {
		e += 24 * 60
	}
	return Interval{Start: s, End: e}
}

// Overlaps reports whether two normalized intervals share any wall-clock
// time. An overnight interval extends past 1440, so each interval is also
// compared against the other shifted one day forward: 22:00-06:00 occupies
// the same early-morning minutes as 05:00-09:00 even though their
// normalized ranges don't intersect directly. Strict inequality
// throughout: intervals that merely touch at an endpoint do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.overlapsLinear(other) ||
		iv.nextDay().overlapsLinear(other) ||
		other.nextDay().overlapsLinear(iv)
}

func (iv Interval) overlapsLinear(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

func (iv Interval) nextDay() Interval {
	return Interval{Start: iv.Start + 24*60, End: iv.End + 24*60}
}

// Minutes returns the interval length in minutes.
func (iv Interval) Minutes() int { return iv.End - iv.Start }

// Hours returns the interval length in hours, rounded to 2 decimals.
func (iv Interval) Hours() decimal.Decimal {
	return decimal.NewFromInt(int64(iv.Minutes())).Div(minutesPerHour).Round(2)
}

// =============================================================================
// WORK-HOURS CALCULATOR
// =============================================================================

// WorkHours returns the normalized duration between start and end in hours,
// rounded to 2 decimal places. The result is always > 0: equal start and
// end times yield a full 24-hour shift.
func WorkHours(start, end TimeOfDay) decimal.Decimal {
	return NewInterval(start, end).Hours()
}

// WorkHoursFromStrings parses raw "HH:MM" inputs and computes the duration.
// On unparseable input it returns zero hours and a CalculationError; the
// caller logs the error instead of propagating it, so a single bad record
// cannot abort read-side aggregation.
func WorkHoursFromStrings(start, end string) (decimal.Decimal, error) {
	s, err := ParseTimeOfDay(start)
	if err != nil {
		return decimal.Zero, &CalculationError{Input: start, Err: err}
	}
	e, err := ParseTimeOfDay(end)
	if err != nil {
		return decimal.Zero, &CalculationError{Input: end, Err: err}
	}
	return WorkHours(s, e), nil
}
