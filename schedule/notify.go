/*
notify.go - Best-effort notification collaborator

PURPOSE:
  After a successful write the engine emits a human-readable event summary.
  Delivery is fire-and-forget: failures are logged and swallowed, never
  propagated to the operation's result, and the lock is already released
  before any notification is attempted.
*/
package schedule

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// EventKind tags what happened to a record.
type EventKind string

const (
	EventCreated       EventKind = "schedule_created"
	EventStatusChanged EventKind = "schedule_status_changed"
)

// Event is a human-readable summary of a committed mutation.
type Event struct {
	Kind         EventKind
	ScheduleID   ScheduleID
	EmployeeID   EmployeeID
	EmployeeName string
	Date         Date
	Summary      string
	At           time.Time
}

// Notifier delivers event summaries. Implementations must treat delivery
// as best-effort; the engine logs and discards any returned error.
type Notifier interface {
	Send(ctx context.Context, ev Event) error
}

// Summarize builds the default one-line summary for an event.
func Summarize(rec ScheduleRecord, kind EventKind) string {
	switch kind {
	case EventCreated:
		return fmt.Sprintf("%s scheduled %s %s-%s at %s",
			rec.EmployeeName, rec.Date, rec.Start, rec.End, rec.StoreLocation)
	case EventStatusChanged:
		return fmt.Sprintf("%s shift on %s marked %s",
			rec.EmployeeName, rec.Date, rec.Status)
	default:
		return string(kind)
	}
}

// =============================================================================
// LOG NOTIFIER - Default sink writing summaries to the structured log
// =============================================================================

type LogNotifier struct {
	Log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{Log: log}
}

func (n *LogNotifier) Send(_ context.Context, ev Event) error {
	n.Log.Info("schedule event",
		zap.String("kind", string(ev.Kind)),
		zap.String("schedule_id", string(ev.ScheduleID)),
		zap.String("employee_id", string(ev.EmployeeID)),
		zap.String("date", ev.Date.String()),
		zap.String("summary", ev.Summary),
	)
	return nil
}
