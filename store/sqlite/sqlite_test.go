package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/warp/shift-engine/schedule"
	"github.com/warp/shift-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, err := sqlite.New(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func testRecord(id, employee string, date schedule.Date) schedule.ScheduleRecord {
	start := schedule.TimeOfDay{Hour: 9}
	end := schedule.TimeOfDay{Hour: 17, Minute: 30}
	return schedule.ScheduleRecord{
		ID:            schedule.ScheduleID(id),
		EmployeeID:    schedule.EmployeeID(employee),
		EmployeeName:  "Mina Park",
		StoreLocation: "downtown",
		Position:      "barista",
		Date:          date,
		Shift:         schedule.ShiftMorning,
		Start:         start,
		End:           end,
		WorkHours:     schedule.WorkHours(start, end),
		IsHoliday:     false,
		Status:        schedule.StatusActive,
		CreatedBy:     "manager-1",
		CreatedAt:     time.Date(2025, time.March, 1, 8, 30, 0, 0, time.UTC),
		Notes:         "opening shift",
	}
}

func TestSQLite_AppendAndGet_RoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	date := schedule.NewDate(2025, time.March, 10)

	want := testRecord("s1", "emp-1", date)
	require.NoError(t, st.Append(ctx, want))

	got, err := st.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.EmployeeID, got.EmployeeID)
	assert.Equal(t, want.EmployeeName, got.EmployeeName)
	assert.Equal(t, "2025-03-10", got.Date.String())
	assert.Equal(t, "09:00", got.Start.String())
	assert.Equal(t, "17:30", got.End.String())
	assert.True(t, got.WorkHours.Equal(decimal.RequireFromString("8.5")))
	assert.Equal(t, schedule.StatusActive, got.Status)
	assert.True(t, got.CreatedAt.Equal(want.CreatedAt))
	assert.Equal(t, "opening shift", got.Notes)
}

func TestSQLite_Get_Absent(t *testing.T) {
	st := newTestStore(t)

	got, err := st.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_UpdateStatus(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	date := schedule.NewDate(2025, time.March, 10)

	require.NoError(t, st.Append(ctx, testRecord("s1", "emp-1", date)))
	require.NoError(t, st.UpdateStatus(ctx, "s1", schedule.StatusDeleted))

	got, err := st.Get(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, schedule.StatusDeleted, got.Status)

	// The row is flagged, not removed.
	all, err := st.ScanAll(ctx, schedule.RecordFilter{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	err = st.UpdateStatus(ctx, "missing", schedule.StatusDeleted)
	require.ErrorIs(t, err, schedule.ErrNotFound)
}

func TestSQLite_ScanAll_Filters(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	a := testRecord("s1", "emp-1", schedule.NewDate(2025, time.March, 10))
	b := testRecord("s2", "emp-2", schedule.NewDate(2025, time.March, 12))
	b.StoreLocation = "harbor"
	b.Shift = schedule.ShiftEvening
	c := testRecord("s3", "emp-1", schedule.NewDate(2025, time.April, 2))
	c.Status = schedule.StatusDeleted
	for _, rec := range []schedule.ScheduleRecord{a, b, c} {
		require.NoError(t, st.Append(ctx, rec))
	}

	// Default: deleted hidden.
	recs, err := st.ScanAll(ctx, schedule.RecordFilter{})
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	emp := schedule.EmployeeID("emp-1")
	recs, err = st.ScanAll(ctx, schedule.RecordFilter{EmployeeID: &emp, IncludeDeleted: true})
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	loc := "harbor"
	recs, err = st.ScanAll(ctx, schedule.RecordFilter{Location: &loc})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, schedule.ScheduleID("s2"), recs[0].ID)

	from := schedule.NewDate(2025, time.March, 11)
	to := schedule.NewDate(2025, time.March, 31)
	recs, err = st.ScanAll(ctx, schedule.RecordFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, schedule.ScheduleID("s2"), recs[0].ID)
}

func TestSQLite_LoadByEmployeeDate(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	date := schedule.NewDate(2025, time.March, 10)

	first := testRecord("s1", "emp-1", date)
	second := testRecord("s2", "emp-1", date)
	second.Start = schedule.TimeOfDay{Hour: 18}
	second.End = schedule.TimeOfDay{Hour: 22}
	second.Status = schedule.StatusDeleted
	other := testRecord("s3", "emp-1", date.AddDays(1))
	for _, rec := range []schedule.ScheduleRecord{first, second, other} {
		require.NoError(t, st.Append(ctx, rec))
	}

	// Any-status snapshot for the conflict check: both same-day rows.
	recs, err := st.LoadByEmployeeDate(ctx, "emp-1", date)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestSQLite_LoadByEmployeeRange(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	dates := map[string]schedule.Date{
		"s1": schedule.NewDate(2025, time.February, 28),
		"s2": schedule.NewDate(2025, time.March, 1),
		"s3": schedule.NewDate(2025, time.March, 31),
		"s4": schedule.NewDate(2025, time.April, 1),
	}
	for id, d := range dates {
		require.NoError(t, st.Append(ctx, testRecord(id, "emp-1", d)))
	}

	from, to := schedule.MonthWindow(2025, time.March)
	recs, err := st.LoadByEmployeeRange(ctx, "emp-1", from, to)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	for _, rec := range recs {
		assert.Equal(t, time.March, rec.Date.Month())
	}
}

func TestSQLite_CorruptWorkHours_DegradeToZero(t *testing.T) {
	// A row whose stored work_hours no longer parses must come back with
	// zero hours and not abort the scan.

	st := newTestStore(t)
	ctx := context.Background()
	date := schedule.NewDate(2025, time.March, 10)

	require.NoError(t, st.Append(ctx, testRecord("s1", "emp-1", date)))
	require.NoError(t, st.Corrupt(ctx, "s1", "work_hours", "not-a-number"))
	require.NoError(t, st.Append(ctx, testRecord("s2", "emp-1", date.AddDays(1))))

	recs, err := st.ScanAll(ctx, schedule.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, recs, 2, "corrupt row must still be returned")
	for _, rec := range recs {
		if rec.ID == "s1" {
			assert.True(t, rec.WorkHours.IsZero())
		}
	}
}

func TestSQLite_CorruptDate_RowDropped(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	date := schedule.NewDate(2025, time.March, 10)

	require.NoError(t, st.Append(ctx, testRecord("s1", "emp-1", date)))
	require.NoError(t, st.Corrupt(ctx, "s1", "schedule_date", "garbage"))
	require.NoError(t, st.Append(ctx, testRecord("s2", "emp-1", date.AddDays(1))))

	recs, err := st.ScanAll(ctx, schedule.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, recs, 1, "row with unreadable date is dropped")
	assert.Equal(t, schedule.ScheduleID("s2"), recs[0].ID)
}
