package sqlite

import "time"

// SetNow replaces the clock used to stamp new snapshots.
func (s *SnapshotService) SetNow(now func() time.Time) {
	s.now = now
}
