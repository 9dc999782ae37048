package schedule_test

import (
	"testing"
	"time"

	"github.com/warp/shift-engine/schedule"
)

func snapshotRecord(t *testing.T, id string, date schedule.Date, start, end string, status schedule.Status) schedule.ScheduleRecord {
	t.Helper()
	s := mustTime(t, start)
	e := mustTime(t, end)
	return schedule.ScheduleRecord{
		ID:         schedule.ScheduleID(id),
		EmployeeID: "emp-1",
		Date:       date,
		Start:      s,
		End:        e,
		WorkHours:  schedule.WorkHours(s, e),
		Status:     status,
	}
}

func TestFindConflicts_OvernightTail(t *testing.T) {
	// GIVEN: an Active overnight shift 22:00-06:00
	// WHEN: checking a 05:00-09:00 candidate for the same employee and date
	// THEN: the overnight record is reported as a conflict window

	date := schedule.NewDate(2025, time.March, 10)
	snapshot := []schedule.ScheduleRecord{
		snapshotRecord(t, "s1", date, "22:00", "06:00", schedule.StatusActive),
	}

	windows := schedule.FindConflicts("emp-1", date, mustTime(t, "05:00"), mustTime(t, "09:00"), snapshot)
	if len(windows) != 1 {
		t.Fatalf("FindConflicts() returned %d windows, want 1", len(windows))
	}
	if windows[0].ScheduleID != "s1" {
		t.Errorf("conflicting record = %s, want s1", windows[0].ScheduleID)
	}

	// Back to back with the overnight tail: clear.
	windows = schedule.FindConflicts("emp-1", date, mustTime(t, "06:00"), mustTime(t, "10:00"), snapshot)
	if len(windows) != 0 {
		t.Fatalf("FindConflicts() returned %d windows, want 0", len(windows))
	}
}

func TestFindConflicts_OvernightCandidate(t *testing.T) {
	// The mirrored case: the candidate is the overnight shift and the
	// morning shift already exists.

	date := schedule.NewDate(2025, time.March, 10)
	snapshot := []schedule.ScheduleRecord{
		snapshotRecord(t, "s1", date, "05:00", "09:00", schedule.StatusActive),
	}

	windows := schedule.FindConflicts("emp-1", date, mustTime(t, "22:00"), mustTime(t, "06:00"), snapshot)
	if len(windows) != 1 {
		t.Fatalf("FindConflicts() returned %d windows, want 1", len(windows))
	}
}

func TestFindConflicts_IgnoresDeletedAndOtherKeys(t *testing.T) {
	date := schedule.NewDate(2025, time.March, 10)
	deleted := snapshotRecord(t, "s1", date, "09:00", "17:00", schedule.StatusDeleted)
	otherDay := snapshotRecord(t, "s2", date.AddDays(1), "09:00", "17:00", schedule.StatusActive)
	otherEmp := snapshotRecord(t, "s3", date, "09:00", "17:00", schedule.StatusActive)
	otherEmp.EmployeeID = "emp-2"

	snapshot := []schedule.ScheduleRecord{deleted, otherDay, otherEmp}
	windows := schedule.FindConflicts("emp-1", date, mustTime(t, "09:00"), mustTime(t, "17:00"), snapshot)
	if len(windows) != 0 {
		t.Fatalf("FindConflicts() returned %d windows, want 0", len(windows))
	}
}
