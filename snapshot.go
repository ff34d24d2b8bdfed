package docindex

import (
	"context"
	"time"
)

// Snapshot is a persisted copy of a built index and its resolution report.
type Snapshot struct {
	ID          string    `json:"id"`
	Fingerprint string    `json:"fingerprint"`
	Documents   int       `json:"documents"`
	Entities    int       `json:"entities"`
	Resolved    int       `json:"resolved"`
	Dangling    int       `json:"dangling"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SnapshotService represents a service for persisting index snapshots.
type SnapshotService interface {
	// SaveSnapshot stores the index entities and the report's dangling
	// references as a new snapshot.
	SaveSnapshot(ctx context.Context, idx *Index, report *Report) (*Snapshot, error)

	// FindSnapshotByID retrieves a snapshot by ID.
	// Returns ENOTFOUND if snapshot does not exist.
	FindSnapshotByID(ctx context.Context, id string) (*Snapshot, error)

	// FindSnapshots retrieves snapshots matching the filter, newest first.
	FindSnapshots(ctx context.Context, filter SnapshotFilter) ([]*Snapshot, error)

	// FindSnapshotEntities retrieves the entities of a snapshot in
	// insertion order.
	// Returns ENOTFOUND if snapshot does not exist.
	FindSnapshotEntities(ctx context.Context, id string) ([]*Entity, error)

	// FindSnapshotDangling retrieves the dangling references of a snapshot
	// in report order.
	// Returns ENOTFOUND if snapshot does not exist.
	FindSnapshotDangling(ctx context.Context, id string) ([]DanglingReference, error)

	// DeleteSnapshot permanently removes a snapshot and its contents.
	// Returns ENOTFOUND if snapshot does not exist.
	DeleteSnapshot(ctx context.Context, id string) error
}

// SnapshotFilter represents a filter for FindSnapshots.
type SnapshotFilter struct {
	ID          *string `json:"id"`
	Fingerprint *string `json:"fingerprint"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
