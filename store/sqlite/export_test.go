package sqlite

import "context"

// Corrupt overwrites one column of a stored row with arbitrary text so
// tests can exercise degraded reads.
func (s *Store) Corrupt(ctx context.Context, id, column, value string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE schedule_records SET `+column+` = ? WHERE id = ?`, value, id)
	return err
}
