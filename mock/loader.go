package mock

import (
	"context"

	"github.com/fwojciec/docindex"
)

var _ docindex.CorpusLoader = (*CorpusLoader)(nil)

// CorpusLoader is a mock implementation of docindex.CorpusLoader.
type CorpusLoader struct {
	LoadCorpusFn func(ctx context.Context) (*docindex.LoadResult, error)
}

func (l *CorpusLoader) LoadCorpus(ctx context.Context) (*docindex.LoadResult, error) {
	return l.LoadCorpusFn(ctx)
}
