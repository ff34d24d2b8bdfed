package mock

import (
	"context"

	"github.com/fwojciec/docindex"
)

var _ docindex.SnapshotService = (*SnapshotService)(nil)

// SnapshotService is a mock implementation of docindex.SnapshotService.
type SnapshotService struct {
	SaveSnapshotFn         func(ctx context.Context, idx *docindex.Index, report *docindex.Report) (*docindex.Snapshot, error)
	FindSnapshotByIDFn     func(ctx context.Context, id string) (*docindex.Snapshot, error)
	FindSnapshotsFn        func(ctx context.Context, filter docindex.SnapshotFilter) ([]*docindex.Snapshot, error)
	FindSnapshotEntitiesFn func(ctx context.Context, id string) ([]*docindex.Entity, error)
	FindSnapshotDanglingFn func(ctx context.Context, id string) ([]docindex.DanglingReference, error)
	DeleteSnapshotFn       func(ctx context.Context, id string) error
}

func (s *SnapshotService) SaveSnapshot(ctx context.Context, idx *docindex.Index, report *docindex.Report) (*docindex.Snapshot, error) {
	return s.SaveSnapshotFn(ctx, idx, report)
}

func (s *SnapshotService) FindSnapshotByID(ctx context.Context, id string) (*docindex.Snapshot, error) {
	return s.FindSnapshotByIDFn(ctx, id)
}

func (s *SnapshotService) FindSnapshots(ctx context.Context, filter docindex.SnapshotFilter) ([]*docindex.Snapshot, error) {
	return s.FindSnapshotsFn(ctx, filter)
}

func (s *SnapshotService) FindSnapshotEntities(ctx context.Context, id string) ([]*docindex.Entity, error) {
	return s.FindSnapshotEntitiesFn(ctx, id)
}

func (s *SnapshotService) FindSnapshotDangling(ctx context.Context, id string) ([]docindex.DanglingReference, error) {
	return s.FindSnapshotDanglingFn(ctx, id)
}

func (s *SnapshotService) DeleteSnapshot(ctx context.Context, id string) error {
	return s.DeleteSnapshotFn(ctx, id)
}
