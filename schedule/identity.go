/*
identity.go - Employee identity lookup collaborator

PURPOSE:
  Resolves an employee reference to a display name so records can be
  denormalized at write time. The snapshot is intentional: the stored name
  is never refreshed when the identity later changes, which avoids a join
  on every read.
*/
package schedule

import (
	"context"
	"fmt"
)

// Directory resolves employee references to display names.
type Directory interface {
	// ResolveName returns the display name for an employee, or an error
	// wrapping ErrEmployeeNotFound if the directory has no entry.
	ResolveName(ctx context.Context, id EmployeeID) (string, error)
}

// StaticDirectory is a fixed in-memory directory, useful for tests and
// deployments where the roster is loaded at startup.
type StaticDirectory map[EmployeeID]string

func (d StaticDirectory) ResolveName(_ context.Context, id EmployeeID) (string, error) {
	name, ok := d[id]
	if !ok {
		return "", fmt.Errorf("%s: %w", id, ErrEmployeeNotFound)
	}
	return name, nil
}
