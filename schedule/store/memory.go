// Package store provides Store implementations.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/warp/shift-engine/schedule"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory keeps records in insertion order plus two indexes: one keyed by
// (employee, date) for the conflict-check hot path and one keyed by
// (employee, month) for aggregation windows. Records are never removed
// from either index; a soft delete only flips the status field.
type Memory struct {
	mu      sync.RWMutex
	records []schedule.ScheduleRecord
	byID    map[schedule.ScheduleID]int
	byDay   map[dayKey][]int
	byMonth map[monthKey][]int
}

type dayKey struct {
	EmployeeID schedule.EmployeeID
	Date       string
}

type monthKey struct {
	EmployeeID schedule.EmployeeID
	Month      string // "2006-01"
}

func NewMemory() *Memory {
	return &Memory{
		byID:    make(map[schedule.ScheduleID]int),
		byDay:   make(map[dayKey][]int),
		byMonth: make(map[monthKey][]int),
	}
}

// Append adds a record and updates both indexes.
func (m *Memory) Append(_ context.Context, rec schedule.ScheduleRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[rec.ID]; exists {
		return fmt.Errorf("record %s already exists", rec.ID)
	}

	idx := len(m.records)
	m.records = append(m.records, rec)
	m.byID[rec.ID] = idx

	dk := dayKey{EmployeeID: rec.EmployeeID, Date: rec.Date.String()}
	m.byDay[dk] = append(m.byDay[dk], idx)

	mk := monthKey{EmployeeID: rec.EmployeeID, Month: monthOf(rec.Date)}
	m.byMonth[mk] = append(m.byMonth[mk], idx)

	return nil
}

func (m *Memory) Get(_ context.Context, id schedule.ScheduleID) (*schedule.ScheduleRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	rec := m.records[idx]
	return &rec, nil
}

func (m *Memory) ScanAll(_ context.Context, filter schedule.RecordFilter) ([]schedule.ScheduleRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []schedule.ScheduleRecord
	for _, rec := range m.records {
		if filter.Matches(rec) {
			result = append(result, rec)
		}
	}
	return result, nil
}

// UpdateStatus flips the status field in place. The record stays in both
// indexes so historical rows remain scannable.
func (m *Memory) UpdateStatus(_ context.Context, id schedule.ScheduleID, status schedule.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, schedule.ErrNotFound)
	}
	m.records[idx].Status = status
	return nil
}

func (m *Memory) LoadByEmployeeDate(_ context.Context, employeeID schedule.EmployeeID, date schedule.Date) ([]schedule.ScheduleRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dk := dayKey{EmployeeID: employeeID, Date: date.String()}
	idxs := m.byDay[dk]
	result := make([]schedule.ScheduleRecord, 0, len(idxs))
	for _, idx := range idxs {
		result = append(result, m.records[idx])
	}
	return result, nil
}

func (m *Memory) LoadByEmployeeRange(_ context.Context, employeeID schedule.EmployeeID, from, to schedule.Date) ([]schedule.ScheduleRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []schedule.ScheduleRecord
	// Walk month buckets covering [from, to] instead of the whole table.
	for _, cursor := range monthCursors(from, to) {
		mk := monthKey{EmployeeID: employeeID, Month: cursor}
		for _, idx := range m.byMonth[mk] {
			rec := m.records[idx]
			if rec.Date.AfterOrEqual(from) && rec.Date.BeforeOrEqual(to) {
				result = append(result, rec)
			}
		}
	}
	return result, nil
}

func monthOf(d schedule.Date) string {
	return fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))
}

// monthCursors lists the "YYYY-MM" keys covering [from, to].
func monthCursors(from, to schedule.Date) []string {
	var keys []string
	year, month := from.Year(), from.Month()
	for {
		cursor := schedule.NewDate(year, month, 1)
		if cursor.After(to) {
			break
		}
		keys = append(keys, monthOf(cursor))
		month++
		if month > 12 {
			month = 1
			year++
		}
	}
	return keys
}
