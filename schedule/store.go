/*
store.go - Persistence interface for schedule records

PURPOSE:
  Defines the interface between the engine and the record store.
  The store is append-oriented: rows are never physically deleted, only
  status-flagged. Different implementations can use SQLite or in-memory
  storage.

APPEND + STATUS-FLAG CONTRACT:
  - Append():       The only way a record enters the store.
  - UpdateStatus(): The only mutation; touches the status column and
                    nothing else.
  - No physical delete exists. All historical rows remain scannable.

INDEXED READS:
  The original system scanned the entire table for every conflict check.
  Implementations here maintain an index keyed by (EmployeeID, Date) for
  conflict checks and serve aggregation from an (EmployeeID, date-range)
  query, while preserving the append-only durability model.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go:   Durable SQLite store
  - schedule/store/memory.go: In-memory store for testing/dev

SEE ALSO:
  - service.go: Writes under the advisory lock
  - query.go:   Lock-free snapshot reads
*/
package schedule

import "context"

// RecordFilter narrows a ScanAll. Nil pointer fields are ignored.
// Deleted records are excluded unless IncludeDeleted is set.
type RecordFilter struct {
	EmployeeID     *EmployeeID
	Location       *string
	Shift          *ShiftType
	From           *Date
	To             *Date
	IncludeDeleted bool
}

// Matches reports whether a record passes the filter. Shared by store
// implementations so filtering semantics cannot drift between them.
func (f RecordFilter) Matches(rec ScheduleRecord) bool {
	if !f.IncludeDeleted && !rec.Active() {
		return false
	}
	if f.EmployeeID != nil && rec.EmployeeID != *f.EmployeeID {
		return false
	}
	if f.Location != nil && rec.StoreLocation != *f.Location {
		return false
	}
	if f.Shift != nil && rec.Shift != *f.Shift {
		return false
	}
	if f.From != nil && rec.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && rec.Date.After(*f.To) {
		return false
	}
	return true
}

// Store handles persistence of schedule records.
// IMPORTANT: Append is the only way in, UpdateStatus the only mutation.
// No physical delete exists.
type Store interface {
	// Append persists a new record.
	Append(ctx context.Context, rec ScheduleRecord) error

	// Get returns the record with the given id, or (nil, nil) if absent.
	Get(ctx context.Context, id ScheduleID) (*ScheduleRecord, error)

	// ScanAll returns the current snapshot, narrowed by the filter.
	// Order is unspecified; callers sort.
	ScanAll(ctx context.Context, filter RecordFilter) ([]ScheduleRecord, error)

	// UpdateStatus mutates the status field of an existing record.
	// Returns ErrNotFound if no record has the given id.
	UpdateStatus(ctx context.Context, id ScheduleID, status Status) error

	// LoadByEmployeeDate returns all records (any status) for one employee
	// on one date. This is the conflict-check hot path and is index-backed.
	LoadByEmployeeDate(ctx context.Context, employeeID EmployeeID, date Date) ([]ScheduleRecord, error)

	// LoadByEmployeeRange returns all records (any status) for one employee
	// with Date in [from, to]. Backs the aggregation queries.
	LoadByEmployeeRange(ctx context.Context, employeeID EmployeeID, from, to Date) ([]ScheduleRecord, error)
}
