/*
Package sqlite provides a SQLite-backed implementation of the record store.

PURPOSE:
  Implements schedule.Store using SQLite. In production the same patterns
  apply to PostgreSQL - only minor SQL dialect differences.

APPEND + STATUS-FLAG ENFORCEMENT:
  - INSERT is the only way a row enters the table
  - The single UPDATE statement touches the status column and nothing else
  - No DELETE statements exist; historical rows remain scannable

INDEXES:
  - idx_schedules_employee_date: conflict-check hot path (employee, date)
  - idx_schedules_date:          range scans for statistics
  - idx_schedules_status:        active-only listings

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so snapshot reads don't
  block behind the serialized writer.

DEGRADED READS:
  A row whose stored work_hours or time cells fail to parse is returned
  with zero values and a logged warning instead of failing the whole scan,
  so one bad row cannot abort an aggregation query.

USAGE:
  store, err := sqlite.New("./data/shifts.db", logger)
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - schedule/store.go: Interface definition
  - schedule/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/shift-engine/schedule"
)

// Store implements schedule.Store using SQLite.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db, log: log}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Schedule records (append-oriented; rows are status-flagged, never deleted)
	CREATE TABLE IF NOT EXISTS schedule_records (
		id             TEXT PRIMARY KEY,
		employee_id    TEXT NOT NULL,
		employee_name  TEXT NOT NULL,
		store_location TEXT NOT NULL DEFAULT '',
		position       TEXT NOT NULL DEFAULT '',
		schedule_date  TEXT NOT NULL,
		shift_type     TEXT NOT NULL DEFAULT '',
		start_time     TEXT NOT NULL,
		end_time       TEXT NOT NULL,
		work_hours     TEXT NOT NULL,
		is_holiday     INTEGER NOT NULL DEFAULT 0,
		status         TEXT NOT NULL,
		created_by     TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL,
		notes          TEXT NOT NULL DEFAULT ''
	);

	-- Conflict-check hot path
	CREATE INDEX IF NOT EXISTS idx_schedules_employee_date
		ON schedule_records(employee_id, schedule_date);

	-- Statistics range scans
	CREATE INDEX IF NOT EXISTS idx_schedules_date
		ON schedule_records(schedule_date);

	CREATE INDEX IF NOT EXISTS idx_schedules_status
		ON schedule_records(status);
	`
	_, err := s.db.Exec(schema)
	return err
}

const recordColumns = `id, employee_id, employee_name, store_location, position,
	schedule_date, shift_type, start_time, end_time, work_hours, is_holiday,
	status, created_by, created_at, notes`

// Append persists a new record. This is the only INSERT path.
func (s *Store) Append(ctx context.Context, rec schedule.ScheduleRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO schedule_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(rec.ID),
		string(rec.EmployeeID),
		rec.EmployeeName,
		rec.StoreLocation,
		rec.Position,
		rec.Date.String(),
		string(rec.Shift),
		rec.Start.String(),
		rec.End.String(),
		rec.WorkHours.String(),
		boolToInt(rec.IsHoliday),
		string(rec.Status),
		rec.CreatedBy,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
		rec.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// Get returns the record with the given id, or (nil, nil) if absent.
func (s *Store) Get(ctx context.Context, id schedule.ScheduleID) (*schedule.ScheduleRecord, error) {
	recs, err := s.queryRecords(ctx, `
		SELECT `+recordColumns+` FROM schedule_records WHERE id = ?`, string(id))
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// ScanAll returns the snapshot narrowed by the filter. Conditions are
// pushed into SQL; schedule.RecordFilter.Matches has the final word so
// filtering semantics match the memory store exactly.
func (s *Store) ScanAll(ctx context.Context, filter schedule.RecordFilter) ([]schedule.ScheduleRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM schedule_records WHERE 1=1`
	var args []any
	if filter.EmployeeID != nil {
		query += ` AND employee_id = ?`
		args = append(args, string(*filter.EmployeeID))
	}
	if filter.Location != nil {
		query += ` AND store_location = ?`
		args = append(args, *filter.Location)
	}
	if filter.Shift != nil {
		query += ` AND shift_type = ?`
		args = append(args, string(*filter.Shift))
	}
	if filter.From != nil {
		query += ` AND schedule_date >= ?`
		args = append(args, filter.From.String())
	}
	if filter.To != nil {
		query += ` AND schedule_date <= ?`
		args = append(args, filter.To.String())
	}
	if !filter.IncludeDeleted {
		query += ` AND status = ?`
		args = append(args, string(schedule.StatusActive))
	}

	recs, err := s.queryRecords(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	result := make([]schedule.ScheduleRecord, 0, len(recs))
	for _, rec := range recs {
		if filter.Matches(rec) {
			result = append(result, rec)
		}
	}
	return result, nil
}

// UpdateStatus mutates the status column and nothing else.
func (s *Store) UpdateStatus(ctx context.Context, id schedule.ScheduleID, status schedule.Status) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE schedule_records SET status = ? WHERE id = ?`,
		string(status), string(id))
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", id, schedule.ErrNotFound)
	}
	return nil
}

// LoadByEmployeeDate serves the conflict-check hot path from
// idx_schedules_employee_date.
func (s *Store) LoadByEmployeeDate(ctx context.Context, employeeID schedule.EmployeeID, date schedule.Date) ([]schedule.ScheduleRecord, error) {
	return s.queryRecords(ctx, `
		SELECT `+recordColumns+` FROM schedule_records
		WHERE employee_id = ? AND schedule_date = ?`,
		string(employeeID), date.String())
}

// LoadByEmployeeRange backs the aggregation queries.
func (s *Store) LoadByEmployeeRange(ctx context.Context, employeeID schedule.EmployeeID, from, to schedule.Date) ([]schedule.ScheduleRecord, error) {
	return s.queryRecords(ctx, `
		SELECT `+recordColumns+` FROM schedule_records
		WHERE employee_id = ? AND schedule_date >= ? AND schedule_date <= ?`,
		string(employeeID), from.String(), to.String())
}

// =============================================================================
// ROW SCANNING
// =============================================================================

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]schedule.ScheduleRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []schedule.ScheduleRecord
	for rows.Next() {
		rec, err := s.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			recs = append(recs, *rec)
		}
	}
	return recs, rows.Err()
}

// scanRecord converts one row. Corrupt derived cells degrade to zero
// values with a warning; a row with an unreadable date is dropped because
// nothing downstream can place it.
func (s *Store) scanRecord(rows *sql.Rows) (*schedule.ScheduleRecord, error) {
	var (
		id, employeeID, employeeName, location, position string
		dateStr, shiftType, startStr, endStr, hoursStr   string
		isHoliday                                        int
		status, createdBy, createdAtStr, notes           string
	)
	if err := rows.Scan(&id, &employeeID, &employeeName, &location, &position,
		&dateStr, &shiftType, &startStr, &endStr, &hoursStr, &isHoliday,
		&status, &createdBy, &createdAtStr, &notes); err != nil {
		return nil, err
	}

	date, err := schedule.ParseDate(dateStr)
	if err != nil {
		s.log.Warn("dropping record with unreadable date",
			zap.String("schedule_id", id), zap.String("schedule_date", dateStr))
		return nil, nil
	}

	start, err := schedule.ParseTimeOfDay(startStr)
	if err != nil {
		s.log.Warn("record has unreadable start time",
			zap.String("schedule_id", id), zap.String("start_time", startStr))
	}
	end, err := schedule.ParseTimeOfDay(endStr)
	if err != nil {
		s.log.Warn("record has unreadable end time",
			zap.String("schedule_id", id), zap.String("end_time", endStr))
	}

	hours, err := decimal.NewFromString(hoursStr)
	if err != nil {
		s.log.Warn("record has unreadable work hours, degrading to zero",
			zap.String("schedule_id", id), zap.String("work_hours", hoursStr))
		hours = decimal.Zero
	}

	createdAt, err := time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		createdAt = time.Time{}
	}

	return &schedule.ScheduleRecord{
		ID:            schedule.ScheduleID(id),
		EmployeeID:    schedule.EmployeeID(employeeID),
		EmployeeName:  employeeName,
		StoreLocation: location,
		Position:      position,
		Date:          date,
		Shift:         schedule.ShiftType(shiftType),
		Start:         start,
		End:           end,
		WorkHours:     hours,
		IsHoliday:     isHoliday != 0,
		Status:        schedule.Status(status),
		CreatedBy:     createdBy,
		CreatedAt:     createdAt,
		Notes:         notes,
	}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
