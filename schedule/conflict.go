/*
conflict.go - Overlap detection against a record snapshot

PURPOSE:
  Given a candidate shift and the current snapshot of records for the same
  employee and date, report every Active record whose normalized interval
  overlaps the candidate's.

INVARIANT:
  For a fixed (EmployeeID, Date), no two Active records may have
  overlapping normalized [start, end) intervals. Shifts that merely touch
  at an endpoint (one ends at 18:00, the next starts at 18:00) do not
  conflict.

GUARANTEES:
  FindConflicts is a pure function of its inputs: no side effects, O(n) in
  the snapshot size. The store keeps snapshots small by indexing records on
  (EmployeeID, Date), so n is the employee's shifts for one day, not the
  whole table.
*/
package schedule

// ConflictWindow describes one existing record that overlaps a candidate
// shift, with enough detail for the caller to report and resolve it.
type ConflictWindow struct {
	ScheduleID ScheduleID
	Date       Date
	Start      TimeOfDay
	End        TimeOfDay
}

// FindConflicts returns every Active record in the snapshot that belongs to
// the same employee and date as the candidate and overlaps its normalized
// interval. Deleted records and other employees' records are ignored.
func FindConflicts(employeeID EmployeeID, date Date, start, end TimeOfDay, snapshot []ScheduleRecord) []ConflictWindow {
	candidate := NewInterval(start, end)

	var windows []ConflictWindow
	for _, rec := range snapshot {
		if !rec.Active() || rec.EmployeeID != employeeID || !rec.Date.Equal(date) {
			continue
		}
		if candidate.Overlaps(NewInterval(rec.Start, rec.End)) {
			windows = append(windows, ConflictWindow{
				ScheduleID: rec.ID,
				Date:       rec.Date,
				Start:      rec.Start,
				End:        rec.End,
			})
		}
	}
	return windows
}
