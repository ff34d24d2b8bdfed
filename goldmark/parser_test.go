package goldmark_test

import (
	"testing"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/goldmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionIDs(doc *docindex.Document) []string {
	var ids []string
	for s := range doc.Sections() {
		ids = append(ids, s.ID())
	}
	return ids
}

func blocksOf(t *testing.T, doc *docindex.Document, id string) []docindex.Block {
	t.Helper()
	s, ok := doc.Section(id)
	require.True(t, ok, "section %q not found", id)
	var blocks []docindex.Block
	for b := range s.Blocks() {
		blocks = append(blocks, b)
	}
	return blocks
}

func TestParser_ParseDocument(t *testing.T) {
	t.Parallel()

	t.Run("uses first H1 as title and numbers the outline", func(t *testing.T) {
		t.Parallel()

		src := `# macOS Architecture

## Process Model
### Mach Tasks
### BSD Processes
## Frameworks
#### Deep heading
`
		doc, err := goldmark.NewParser().ParseDocument("architecture", []byte(src))
		require.NoError(t, err)

		assert.Equal(t, "macOS Architecture", doc.Title())
		assert.Equal(t, []string{"1", "1.1", "1.2", "2", "2.1"}, sectionIDs(doc))

		s, _ := doc.Section("1.2")
		assert.Equal(t, "BSD Processes", s.Heading())
		assert.Equal(t, "1", s.ParentID())
		assert.Equal(t, "bsd-processes", s.Anchor())
	})

	t.Run("uses explicit outline numbers from headings", func(t *testing.T) {
		t.Parallel()

		src := `# Guide

## 4 Security
### 4.2 Sandboxing
`
		doc, err := goldmark.NewParser().ParseDocument("guide", []byte(src))
		require.NoError(t, err)

		assert.Equal(t, []string{"4", "4.2"}, sectionIDs(doc))
		parent, ok := doc.Parent("4.2")
		require.True(t, ok)
		assert.Equal(t, "4", parent.ID())
	})

	t.Run("numbers unnumbered headings around explicit numbers", func(t *testing.T) {
		t.Parallel()

		src := `# Guide

## Introduction

Why this guide exists.

## 1 Overview
### Background
### 1.2 Goals
### Scope
## Details
`
		doc, err := goldmark.NewParser().ParseDocument("guide", []byte(src))
		require.NoError(t, err)

		assert.Equal(t, []string{"2", "1", "1.1", "1.2", "1.3", "3"}, sectionIDs(doc))

		s, _ := doc.Section("2")
		assert.Equal(t, "Introduction", s.Heading())
		s, _ = doc.Section("1.3")
		assert.Equal(t, "Scope", s.Heading())
		assert.Equal(t, "1", s.ParentID())
	})

	t.Run("falls back to slug when there is no title", func(t *testing.T) {
		t.Parallel()

		doc, err := goldmark.NewParser().ParseDocument("notes", []byte("## First\n\nText."))
		require.NoError(t, err)

		assert.Equal(t, "notes", doc.Title())
		assert.Equal(t, []string{"1"}, sectionIDs(doc))
	})

	t.Run("keeps content before the first section as preamble", func(t *testing.T) {
		t.Parallel()

		src := "# Guide\n\nIntroductory text about AppKit.\n\n## Details\n\nMore.\n"
		doc, err := goldmark.NewParser().ParseDocument("guide", []byte(src))
		require.NoError(t, err)

		assert.Equal(t, []string{goldmark.PreambleID, "1"}, sectionIDs(doc))
		blocks := blocksOf(t, doc, goldmark.PreambleID)
		require.Len(t, blocks, 1)
		assert.Equal(t, docindex.Prose("Introductory text about AppKit."), blocks[0])
	})

	t.Run("extracts prose, code and tables", func(t *testing.T) {
		t.Parallel()

		src := "# Guide\n\n## Graphics\n\n" +
			"Metal is the *low-level* `GPU` API\nfor macOS.\n\n" +
			"```swift\nimport Metal\nlet device = MTLCreateSystemDefaultDevice()\n```\n\n" +
			"| App Type | Recommended Frameworks |\n|---|---|\n| Game | Metal, SpriteKit |\n| Utility | **AppKit** |\n"
		doc, err := goldmark.NewParser().ParseDocument("guide", []byte(src))
		require.NoError(t, err)

		blocks := blocksOf(t, doc, "1")
		require.Len(t, blocks, 3)

		assert.Equal(t, docindex.BlockProse, blocks[0].Kind)
		assert.Equal(t, "Metal is the low-level GPU API for macOS.", blocks[0].Text)

		assert.Equal(t, docindex.BlockCode, blocks[1].Kind)
		assert.Equal(t, "swift", blocks[1].Language)
		assert.Equal(t, "import Metal\nlet device = MTLCreateSystemDefaultDevice()", blocks[1].Body)

		assert.Equal(t, docindex.BlockTable, blocks[2].Kind)
		assert.Equal(t, []string{"App Type", "Recommended Frameworks"}, blocks[2].Headers)
		assert.Equal(t, [][]string{{"Game", "Metal, SpriteKit"}, {"Utility", "AppKit"}}, blocks[2].Rows)
	})

	t.Run("turns list items into prose", func(t *testing.T) {
		t.Parallel()

		src := "## Layers\n\n- Cocoa\n- Media\n  - Core Animation\n"
		doc, err := goldmark.NewParser().ParseDocument("layers", []byte(src))
		require.NoError(t, err)

		var texts []string
		for _, b := range blocksOf(t, doc, "1") {
			texts = append(texts, b.Text)
		}
		assert.Equal(t, []string{"Cocoa", "Media", "Core Animation"}, texts)
	})

	t.Run("extracts relative links as references", func(t *testing.T) {
		t.Parallel()

		src := "## Security\n\nSee [Appendix I](appendix.md#appendix-i), [above](#processes) " +
			"and [Apple](https://developer.apple.com).\n"
		doc, err := goldmark.NewParser().ParseDocument("guides/security", []byte(src))
		require.NoError(t, err)

		blocks := blocksOf(t, doc, "1")
		require.Len(t, blocks, 3)
		assert.Equal(t, "See Appendix I, above and Apple.", blocks[0].Text)

		assert.Equal(t, docindex.BlockReference, blocks[1].Kind)
		assert.Equal(t, docindex.Ref{Document: "guides/appendix", Section: "appendix-i"}, blocks[1].Target)
		assert.Equal(t, "Appendix I", blocks[1].Text)

		assert.Equal(t, docindex.Ref{Document: "guides/security", Section: "processes"}, blocks[2].Target)
	})

	t.Run("extracts links in table cells as references", func(t *testing.T) {
		t.Parallel()

		src := "## Kernel\n\n| Topic | See |\n|---|---|\n| Mach | [Appendix](other.md#appendix-i) |\n"
		doc, err := goldmark.NewParser().ParseDocument("guide", []byte(src))
		require.NoError(t, err)

		blocks := blocksOf(t, doc, "1")
		require.Len(t, blocks, 2)
		assert.Equal(t, docindex.BlockTable, blocks[0].Kind)
		assert.Equal(t, [][]string{{"Mach", "Appendix"}}, blocks[0].Rows)

		assert.Equal(t, docindex.BlockReference, blocks[1].Kind)
		assert.Equal(t, docindex.Ref{Document: "other", Section: "appendix-i"}, blocks[1].Target)
		assert.Equal(t, "Appendix", blocks[1].Text)
	})

	t.Run("ignores links to files that are not guides", func(t *testing.T) {
		t.Parallel()

		src := "## Samples\n\nSee the [sample](samples/main.swift) and ![diagram](img/layers.png).\n"
		doc, err := goldmark.NewParser().ParseDocument("guide", []byte(src))
		require.NoError(t, err)

		blocks := blocksOf(t, doc, "1")
		require.Len(t, blocks, 1)
		assert.Equal(t, docindex.BlockProse, blocks[0].Kind)
	})

	t.Run("returns EDUPLICATE for repeated explicit numbers", func(t *testing.T) {
		t.Parallel()

		src := "## 1 Intro\n\n## 1 Again\n"
		_, err := goldmark.NewParser().ParseDocument("guide", []byte(src))

		require.Error(t, err)
		assert.Equal(t, docindex.EDUPLICATE, docindex.ErrorCode(err))
	})

	t.Run("returns EMALFORMED for empty slug", func(t *testing.T) {
		t.Parallel()

		_, err := goldmark.NewParser().ParseDocument("", []byte("# Title"))

		assert.Equal(t, docindex.EMALFORMED, docindex.ErrorCode(err))
	})
}

func TestParseReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		slug string
		dest string
		want docindex.Ref
		ok   bool
	}{
		{"fragment only", "guide", "#mach-tasks", docindex.Ref{Document: "guide", Section: "mach-tasks"}, true},
		{"sibling document", "guides/a", "b.md", docindex.Ref{Document: "guides/b"}, true},
		{"parent directory", "guides/a", "../appendix.md#i", docindex.Ref{Document: "appendix", Section: "i"}, true},
		{"absolute path", "guides/a", "/reference/index.html", docindex.Ref{Document: "reference/index"}, true},
		{"query string dropped", "a", "b.md?plain=1#x", docindex.Ref{Document: "b", Section: "x"}, true},
		{"upper case extension", "a", "B.HTML", docindex.Ref{Document: "B"}, true},
		{"extensionless path", "guides/a", "appendix#ii", docindex.Ref{Document: "guides/appendix", Section: "ii"}, true},
		{"code sample", "a", "samples/main.swift", docindex.Ref{}, false},
		{"image", "a", "../img/layers.png#top", docindex.Ref{}, false},
		{"external URL", "a", "https://example.com/b.md", docindex.Ref{}, false},
		{"mail link", "a", "mailto:docs@example.com", docindex.Ref{}, false},
		{"empty", "a", "  ", docindex.Ref{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := goldmark.ParseReference(tt.slug, tt.dest)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
