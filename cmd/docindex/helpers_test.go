package main_test

import (
	"bytes"
	"context"
	"maps"
	"slices"
	"testing"

	"github.com/fwojciec/docindex"
	main "github.com/fwojciec/docindex/cmd/docindex"
	"github.com/fwojciec/docindex/goldmark"
	"github.com/fwojciec/docindex/mock"
	"github.com/stretchr/testify/require"
)

const guideMarkdown = `# macOS Guide

## Frameworks

SwiftUI and AppKit build on Foundation.

| App Type | Recommended Frameworks |
|---|---|
| Game | Metal, SpriteKit |
| Productivity | SwiftUI |

See [Appendix I](appendix.md#appendix-i).
`

const appendixMarkdown = `# Appendix

## Appendix A

Metal details.
`

// testCorpus returns a loader serving the given markdown sources in slug
// order.
func testCorpus(t *testing.T, sources map[string]string) *mock.CorpusLoader {
	t.Helper()
	parser := goldmark.NewParser()

	var docs []*docindex.Document
	for _, slug := range slices.Sorted(maps.Keys(sources)) {
		doc, err := parser.ParseDocument(slug, []byte(sources[slug]))
		require.NoError(t, err)
		docs = append(docs, doc)
	}
	return &mock.CorpusLoader{
		LoadCorpusFn: func(context.Context) (*docindex.LoadResult, error) {
			return &docindex.LoadResult{Documents: docs}, nil
		},
	}
}

// testDeps wires command dependencies over the guide and appendix corpus.
func testDeps(t *testing.T, loader docindex.CorpusLoader) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	m, err := main.DefaultConfig().Matcher()
	require.NoError(t, err)

	if loader == nil {
		loader = testCorpus(t, map[string]string{"guide": guideMarkdown, "appendix": appendixMarkdown})
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:     context.Background(),
		Stdout:  stdout,
		Stderr:  stderr,
		Loader:  loader,
		Builder: &docindex.Builder{Matcher: m, Concurrency: 2},
	}, stdout, stderr
}
