/*
service.go - Schedule mutation service (create / batch-create / status update)

PURPOSE:
  Owns the write-serialization protocol around the record store. Every
  logical write acquires the advisory lock exactly once, re-reads the
  current snapshot under the lock, runs conflict detection, and mutates the
  store only when the check passes.

WRITE FLOW (create):
  validate shape -> acquire lock (bounded) -> snapshot -> conflict check
  -> resolve display name -> compute work hours -> assign id -> append
  -> release lock -> best-effort notify

BATCH SEMANTICS:
  A batch acquires ONE lock for the whole run and processes items
  sequentially against the held lock; per-item processing never reattempts
  acquisition, so the non-reentrant lock cannot deadlock. The batch is not
  a transaction: each item succeeds or fails independently and earlier
  successes are never rolled back.

STATUS STATE MACHINE:
  Active --UpdateStatus(Deleted)--> Deleted. Deleted is terminal.
  Re-deleting an already-Deleted record is a no-op success.

SEE ALSO:
  - lock.go:     Timeout-bounded Locker
  - conflict.go: FindConflicts
  - query.go:    Lock-free read side
*/
package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Default lock bounds. A batch holds the lock for its whole run, so it
// gets a longer bound than a single create.
const (
	DefaultLockWait      = 30 * time.Second
	DefaultBatchLockWait = 60 * time.Second
)

// =============================================================================
// SERVICE - Write operations under the advisory lock
// =============================================================================

// Service is the scheduling engine's mutation and query surface.
// Construct with NewService; exported fields may be overridden before use
// (tests typically swap Lock, Now, or Notifier).
type Service struct {
	Store     Store
	Lock      Locker
	Directory Directory
	Notifier  Notifier
	Holidays  HolidayCalendar
	Log       *zap.Logger

	LockWait      time.Duration
	BatchLockWait time.Duration

	// Now is the clock used for audit timestamps.
	Now func() time.Time
}

// NewService wires a Service with default lock bounds, a log-backed
// notifier, and an empty holiday calendar.
func NewService(store Store, lock Locker, dir Directory, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		Store:         store,
		Lock:          lock,
		Directory:     dir,
		Notifier:      NewLogNotifier(log),
		Holidays:      NoHolidays{},
		Log:           log,
		LockWait:      DefaultLockWait,
		BatchLockWait: DefaultBatchLockWait,
		Now:           time.Now,
	}
}

// =============================================================================
// CREATE REQUEST
// =============================================================================

// CreateRequest is one shift assignment to be written. Start and End are
// raw "HH:MM" strings; they are parsed during shape validation, before any
// lock is attempted.
type CreateRequest struct {
	EmployeeID EmployeeID

	// EmployeeName is a fallback display name used only when the directory
	// has no entry for the employee.
	EmployeeName string

	StoreLocation string
	Position      string
	Date          Date
	Shift         ShiftType
	Start         string
	End           string
	IsHoliday     bool
	Notes         string
	CreatedBy     string
}

// validate checks request shape and parses the time window.
func (req CreateRequest) validate() (start, end TimeOfDay, err error) {
	if req.EmployeeID == "" {
		return start, end, &ValidationError{Field: "employee_id", Reason: "must not be empty"}
	}
	if req.Date.IsZero() {
		return start, end, &ValidationError{Field: "schedule_date", Reason: "must be set"}
	}
	if req.Shift != "" && !req.Shift.Valid() {
		return start, end, &ValidationError{Field: "shift_type", Reason: fmt.Sprintf("unknown shift type %q", req.Shift)}
	}
	if start, err = ParseTimeOfDay(req.Start); err != nil {
		return start, end, &ValidationError{Field: "start_time", Reason: err.Error()}
	}
	if end, err = ParseTimeOfDay(req.End); err != nil {
		return start, end, &ValidationError{Field: "end_time", Reason: err.Error()}
	}
	return start, end, nil
}

// =============================================================================
// CREATE - Single record
// =============================================================================

// Create validates the request, serializes against other writers, and
// appends a new Active record. Returns ConflictError when an overlapping
// Active shift exists and ErrLockTimeout when the lock bound elapses; in
// both cases nothing was written.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*ScheduleRecord, error) {
	start, end, err := req.validate()
	if err != nil {
		return nil, err
	}

	release, err := s.Lock.Acquire(ctx, s.LockWait)
	if err != nil {
		return nil, err
	}
	rec, err := s.createLocked(ctx, req, start, end)
	release()
	if err != nil {
		return nil, err
	}

	s.notify(ctx, *rec, EventCreated)
	return rec, nil
}

// createLocked runs the read-check-write sequence. The caller must hold
// the lock; this is what lets batch processing reuse a single acquisition.
func (s *Service) createLocked(ctx context.Context, req CreateRequest, start, end TimeOfDay) (*ScheduleRecord, error) {
	snapshot, err := s.Store.LoadByEmployeeDate(ctx, req.EmployeeID, req.Date)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	if windows := FindConflicts(req.EmployeeID, req.Date, start, end, snapshot); len(windows) > 0 {
		return nil, &ConflictError{EmployeeID: req.EmployeeID, Date: req.Date, Windows: windows}
	}

	name, err := s.Directory.ResolveName(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) && req.EmployeeName != "" {
			name = req.EmployeeName
		} else {
			return nil, fmt.Errorf("resolve employee name: %w", err)
		}
	}

	isHoliday := req.IsHoliday
	if !isHoliday && s.Holidays != nil {
		isHoliday = s.Holidays.IsHoliday(req.Date)
	}

	rec := ScheduleRecord{
		ID:            ScheduleID(uuid.NewString()),
		EmployeeID:    req.EmployeeID,
		EmployeeName:  name,
		StoreLocation: req.StoreLocation,
		Position:      req.Position,
		Date:          req.Date,
		Shift:         req.Shift,
		Start:         start,
		End:           end,
		WorkHours:     WorkHours(start, end),
		IsHoliday:     isHoliday,
		Status:        StatusActive,
		CreatedBy:     req.CreatedBy,
		CreatedAt:     s.Now(),
		Notes:         req.Notes,
	}

	if err := s.Store.Append(ctx, rec); err != nil {
		return nil, fmt.Errorf("append record: %w", err)
	}
	return &rec, nil
}

// =============================================================================
// CREATE BATCH - Sequential items under one lock acquisition
// =============================================================================

// BatchItemResult is the outcome of one batch item.
type BatchItemResult struct {
	Index  int
	Record *ScheduleRecord
	Err    error
}

// BatchResult is the per-item outcome list plus aggregate counts.
type BatchResult struct {
	Items     []BatchItemResult
	Succeeded int
	Failed    int
}

// CreateBatch writes a list of requests under a single lock acquisition.
// Items are processed sequentially; each succeeds or fails on its own and
// earlier successes are never rolled back. The actor is recorded as
// CreatedBy on items that don't name their own.
//
// The whole batch fails with ErrLockTimeout only when the lock itself
// cannot be acquired; in that case nothing was written.
func (s *Service) CreateBatch(ctx context.Context, reqs []CreateRequest, actor string) (*BatchResult, error) {
	// Shape-validate everything before acquiring the lock; invalid items
	// fail without shortening the lock window for the valid ones.
	type batchItem struct {
		req        CreateRequest
		start, end TimeOfDay
		err        error
	}
	items := make([]batchItem, len(reqs))
	for i, req := range reqs {
		if req.CreatedBy == "" {
			req.CreatedBy = actor
		}
		start, end, err := req.validate()
		items[i] = batchItem{req: req, start: start, end: end, err: err}
	}

	release, err := s.Lock.Acquire(ctx, s.BatchLockWait)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Items: make([]BatchItemResult, len(items))}
	var created []ScheduleRecord
	for i, item := range items {
		var rec *ScheduleRecord
		itemErr := item.err
		if itemErr == nil {
			rec, itemErr = s.createLocked(ctx, item.req, item.start, item.end)
		}
		if itemErr != nil {
			result.Failed++
		} else {
			result.Succeeded++
			created = append(created, *rec)
		}
		result.Items[i] = BatchItemResult{Index: i, Record: rec, Err: itemErr}
	}
	release()

	for _, rec := range created {
		s.notify(ctx, rec, EventCreated)
	}
	return result, nil
}

// =============================================================================
// UPDATE STATUS - The only mutation path (soft delete)
// =============================================================================

// UpdateStatus mutates the status field of an existing record under the
// lock. This is the only supported delete path: Deleted is a soft-delete
// marker and terminal, so a Deleted record cannot be reactivated. Setting
// the status a record already has is a no-op success.
func (s *Service) UpdateStatus(ctx context.Context, id ScheduleID, status Status, actor string) (*ScheduleRecord, error) {
	if !status.Valid() {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}

	release, err := s.Lock.Acquire(ctx, s.LockWait)
	if err != nil {
		return nil, err
	}
	rec, changed, err := s.updateStatusLocked(ctx, id, status)
	release()
	if err != nil {
		return nil, err
	}

	if changed {
		s.Log.Info("schedule status updated",
			zap.String("schedule_id", string(id)),
			zap.String("status", string(status)),
			zap.String("actor", actor),
		)
		s.notify(ctx, *rec, EventStatusChanged)
	}
	return rec, nil
}

func (s *Service) updateStatusLocked(ctx context.Context, id ScheduleID, status Status) (*ScheduleRecord, bool, error) {
	rec, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("load record: %w", err)
	}
	if rec == nil {
		return nil, false, fmt.Errorf("%s: %w", id, ErrNotFound)
	}

	if rec.Status == status {
		return rec, false, nil
	}
	if rec.Status == StatusDeleted {
		return nil, false, &ValidationError{Field: "status", Reason: "deleted records cannot be reactivated"}
	}

	if err := s.Store.UpdateStatus(ctx, id, status); err != nil {
		return nil, false, fmt.Errorf("update status: %w", err)
	}
	rec.Status = status
	return rec, true, nil
}

// =============================================================================
// NOTIFICATION - Best-effort, after the lock is released
// =============================================================================

func (s *Service) notify(ctx context.Context, rec ScheduleRecord, kind EventKind) {
	if s.Notifier == nil {
		return
	}
	ev := Event{
		Kind:         kind,
		ScheduleID:   rec.ID,
		EmployeeID:   rec.EmployeeID,
		EmployeeName: rec.EmployeeName,
		Date:         rec.Date,
		Summary:      Summarize(rec, kind),
		At:           s.Now(),
	}
	if err := s.Notifier.Send(ctx, ev); err != nil {
		s.Log.Warn("notification delivery failed",
			zap.String("kind", string(kind)),
			zap.String("schedule_id", string(rec.ID)),
			zap.Error(err),
		)
	}
}
