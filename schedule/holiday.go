/*
holiday.go - Holiday calendar collaborator

PURPOSE:
  Records carry an IsHoliday flag that monthly aggregation splits on.
  Callers may set the flag explicitly; when they don't, the engine consults
  an optional HolidayCalendar at creation time. The flag is independent of
  conflict logic.
*/
package schedule

// HolidayCalendar answers whether a date is a company holiday.
type HolidayCalendar interface {
	IsHoliday(date Date) bool
}

// NoHolidays is the default calendar: nothing is a holiday.
type NoHolidays struct{}

func (NoHolidays) IsHoliday(Date) bool { return false }

// FixedHolidays is a set of explicit holiday dates.
type FixedHolidays map[string]struct{}

func NewFixedHolidays(dates ...Date) FixedHolidays {
	set := make(FixedHolidays, len(dates))
	for _, d := range dates {
		set[d.String()] = struct{}{}
	}
	return set
}

func (f FixedHolidays) Add(d Date) { f[d.String()] = struct{}{} }

func (f FixedHolidays) IsHoliday(d Date) bool {
	_, ok := f[d.String()]
	return ok
}
