package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

// Ensure LoggingSnapshotService implements docindex.SnapshotService.
var _ docindex.SnapshotService = (*LoggingSnapshotService)(nil)

// LoggingSnapshotService wraps a SnapshotService with logging. Writes are
// logged at info level and reads at debug level.
type LoggingSnapshotService struct {
	next   docindex.SnapshotService
	logger *slog.Logger
}

// NewLoggingSnapshotService creates a new LoggingSnapshotService.
func NewLoggingSnapshotService(next docindex.SnapshotService, logger *slog.Logger) *LoggingSnapshotService {
	return &LoggingSnapshotService{next: next, logger: logger}
}

func (s *LoggingSnapshotService) SaveSnapshot(ctx context.Context, idx *docindex.Index, report *docindex.Report) (snap *docindex.Snapshot, err error) {
	defer func(begin time.Time) {
		var id, fingerprint string
		if snap != nil {
			id, fingerprint = snap.ID, snap.Fingerprint
		}
		s.logger.Info("save snapshot",
			"id", id,
			"fingerprint", fingerprint,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveSnapshot(ctx, idx, report)
}

func (s *LoggingSnapshotService) FindSnapshotByID(ctx context.Context, id string) (snap *docindex.Snapshot, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find snapshot",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSnapshotByID(ctx, id)
}

func (s *LoggingSnapshotService) FindSnapshots(ctx context.Context, filter docindex.SnapshotFilter) (snaps []*docindex.Snapshot, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find snapshots",
			"count", len(snaps),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSnapshots(ctx, filter)
}

func (s *LoggingSnapshotService) FindSnapshotEntities(ctx context.Context, id string) (entities []*docindex.Entity, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find snapshot entities",
			"id", id,
			"count", len(entities),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSnapshotEntities(ctx, id)
}

func (s *LoggingSnapshotService) FindSnapshotDangling(ctx context.Context, id string) (refs []docindex.DanglingReference, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find snapshot dangling",
			"id", id,
			"count", len(refs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindSnapshotDangling(ctx, id)
}

func (s *LoggingSnapshotService) DeleteSnapshot(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete snapshot",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteSnapshot(ctx, id)
}
