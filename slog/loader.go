// Package slog provides logging decorators for docindex services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docindex"
)

// Ensure LoggingCorpusLoader implements docindex.CorpusLoader.
var _ docindex.CorpusLoader = (*LoggingCorpusLoader)(nil)

// LoggingCorpusLoader wraps a CorpusLoader and logs every load along with
// a warning per document that failed to load.
type LoggingCorpusLoader struct {
	next   docindex.CorpusLoader
	logger *slog.Logger
}

// NewLoggingCorpusLoader creates a new LoggingCorpusLoader.
func NewLoggingCorpusLoader(next docindex.CorpusLoader, logger *slog.Logger) *LoggingCorpusLoader {
	return &LoggingCorpusLoader{next: next, logger: logger}
}

// LoadCorpus delegates to the wrapped loader and logs the outcome.
func (l *LoggingCorpusLoader) LoadCorpus(ctx context.Context) (result *docindex.LoadResult, err error) {
	defer func(begin time.Time) {
		var documents, failures int
		if result != nil {
			documents, failures = len(result.Documents), len(result.Failures)
			for _, f := range result.Failures {
				l.logger.Warn("document skipped",
					"source", f.Source,
					"code", docindex.ErrorCode(f.Err),
					"err", docindex.ErrorMessage(f.Err),
				)
			}
		}
		l.logger.Info("load corpus",
			"documents", documents,
			"failures", failures,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.LoadCorpus(ctx)
}
