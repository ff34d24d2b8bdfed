package docindex_test

import (
	"testing"

	"github.com/fwojciec/docindex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustVocabulary(t *testing.T, terms ...docindex.Term) *docindex.Vocabulary {
	t.Helper()
	v, err := docindex.NewVocabulary(terms)
	require.NoError(t, err)
	return v
}

func mentionNames(ext docindex.Extraction) []string {
	var names []string
	for _, m := range ext.Mentions {
		names = append(names, m.Name)
	}
	return names
}

func TestVocabulary_Match(t *testing.T) {
	t.Parallel()

	t.Run("reports mentions in order of first occurrence", func(t *testing.T) {
		t.Parallel()

		v := mustVocabulary(t,
			docindex.Term{Name: "Metal", Category: docindex.CategoryFramework},
			docindex.Term{Name: "SwiftUI", Category: docindex.CategoryFramework},
		)

		ext := v.Match(docindex.Prose("SwiftUI views can host Metal layers; Metal is fast."))

		assert.Equal(t, []string{"SwiftUI", "Metal"}, mentionNames(ext))
	})

	t.Run("matches case-insensitively across whitespace", func(t *testing.T) {
		t.Parallel()

		v := mustVocabulary(t, docindex.Term{Name: "Core Animation", Category: docindex.CategoryFramework})

		ext := v.Match(docindex.Prose("Layers are managed by core\n  animation."))

		require.Len(t, ext.Mentions, 1)
		assert.Equal(t, "Core Animation", ext.Mentions[0].Name)
		assert.Equal(t, docindex.CategoryFramework, ext.Mentions[0].Category)
	})

	t.Run("requires word boundaries", func(t *testing.T) {
		t.Parallel()

		v := mustVocabulary(t, docindex.Term{Name: "Metal", Category: docindex.CategoryFramework})

		ext := v.Match(docindex.Prose("MetalKit and heavy-metals are not the framework."))

		assert.Empty(t, ext.Mentions)
	})

	t.Run("reports aliases under the canonical name", func(t *testing.T) {
		t.Parallel()

		v := mustVocabulary(t, docindex.Term{
			Name:     "Grand Central Dispatch",
			Category: docindex.CategoryFramework,
			Aliases:  []string{"GCD", "libdispatch"},
		})

		ext := v.Match(docindex.Prose("Queue work with GCD."))

		assert.Equal(t, []string{"Grand Central Dispatch"}, mentionNames(ext))
	})

	t.Run("scans table headers and cells", func(t *testing.T) {
		t.Parallel()

		v := mustVocabulary(t,
			docindex.Term{Name: "Game", Category: docindex.CategoryAppType},
			docindex.Term{Name: "Metal", Category: docindex.CategoryFramework},
		)

		ext := v.Match(docindex.Table([]string{"App Type", "Framework"}, [][]string{{"Game", "Metal"}}))

		assert.Equal(t, []string{"Game", "Metal"}, mentionNames(ext))
	})

	t.Run("ignores code unless enabled", func(t *testing.T) {
		t.Parallel()

		v := mustVocabulary(t, docindex.Term{Name: "SwiftUI", Category: docindex.CategoryFramework})
		block := docindex.Code("swift", "import SwiftUI")

		assert.Empty(t, v.Match(block).Mentions)

		v.IncludeCode = true
		assert.Equal(t, []string{"SwiftUI"}, mentionNames(v.Match(block)))
	})

	t.Run("ignores reference blocks", func(t *testing.T) {
		t.Parallel()

		v := mustVocabulary(t, docindex.Term{Name: "Metal", Category: docindex.CategoryFramework})
		block := docindex.Reference("graphics", "3")
		block.Text = "Metal"

		assert.Empty(t, v.Match(block).Mentions)
	})
}

func TestNewVocabulary(t *testing.T) {
	t.Parallel()

	t.Run("returns EINVALID for unknown category", func(t *testing.T) {
		t.Parallel()

		_, err := docindex.NewVocabulary([]docindex.Term{{Name: "Metal", Category: "gpu"}})

		require.Error(t, err)
		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(err))
	})

	t.Run("returns EINVALID for blank name", func(t *testing.T) {
		t.Parallel()

		_, err := docindex.NewVocabulary([]docindex.Term{{Name: "  ", Category: docindex.CategoryLayer}})

		require.Error(t, err)
		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(err))
	})

	t.Run("quotes regexp metacharacters", func(t *testing.T) {
		t.Parallel()

		v := mustVocabulary(t, docindex.Term{Name: "C++", Category: docindex.CategoryFramework})

		assert.Equal(t, []string{"C++"}, mentionNames(v.Match(docindex.Prose("Drivers use C++ here."))))
		assert.Empty(t, v.Match(docindex.Prose("Drivers use C here.")).Mentions)
	})
}

func TestTableRule_Match(t *testing.T) {
	t.Parallel()

	rule := docindex.TableRule{
		Subject:         "Recommended Frameworks",
		SubjectCategory: docindex.CategoryFramework,
		Object:          "App Type",
		ObjectCategory:  docindex.CategoryAppType,
		Relation:        docindex.RelationRecommendedFor,
	}

	t.Run("asserts one relation per subject and object pair", func(t *testing.T) {
		t.Parallel()

		block := docindex.Table(
			[]string{"App Type", "**Recommended Frameworks**"},
			[][]string{
				{"Game", "Metal, SpriteKit"},
				{"Document app", "AppKit"},
			},
		)

		ext := rule.Match(block)

		require.Len(t, ext.Assertions, 3)
		assert.Equal(t, docindex.Assertion{
			Subject:  docindex.Mention{Name: "Metal", Category: docindex.CategoryFramework},
			Relation: docindex.RelationRecommendedFor,
			Object:   docindex.Mention{Name: "Game", Category: docindex.CategoryAppType},
		}, ext.Assertions[0])
		assert.Equal(t, "SpriteKit", ext.Assertions[1].Subject.Name)
		assert.Equal(t, "AppKit", ext.Assertions[2].Subject.Name)
		assert.Equal(t, "Document app", ext.Assertions[2].Object.Name)
	})

	t.Run("skips tables without both columns", func(t *testing.T) {
		t.Parallel()

		block := docindex.Table([]string{"App Type", "Notes"}, [][]string{{"Game", "fast"}})

		assert.Empty(t, rule.Match(block).Assertions)
	})

	t.Run("skips empty and placeholder cells and short rows", func(t *testing.T) {
		t.Parallel()

		block := docindex.Table(
			[]string{"App Type", "Recommended Frameworks"},
			[][]string{{"Game", "-"}, {"Utility"}, {"", "AppKit"}},
		)

		assert.Empty(t, rule.Match(block).Assertions)
	})

	t.Run("ignores non-table blocks", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, rule.Match(docindex.Prose("App Type: Game")).Assertions)
	})
}

func TestTableRule_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires columns", func(t *testing.T) {
		t.Parallel()

		rule := &docindex.TableRule{Relation: docindex.RelationLayerAbove}

		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(rule.Validate()))
	})

	t.Run("requires known categories", func(t *testing.T) {
		t.Parallel()

		rule := &docindex.TableRule{Subject: "Layer", Object: "Above", Relation: docindex.RelationLayerAbove}

		assert.Equal(t, docindex.EINVALID, docindex.ErrorCode(rule.Validate()))
	})

	t.Run("accepts complete rule", func(t *testing.T) {
		t.Parallel()

		rule := &docindex.TableRule{
			Subject:         "Layer",
			SubjectCategory: docindex.CategoryLayer,
			Object:          "Sits Above",
			ObjectCategory:  docindex.CategoryLayer,
			Relation:        docindex.RelationLayerAbove,
		}

		assert.NoError(t, rule.Validate())
	})
}

func TestMatchers_Match(t *testing.T) {
	t.Parallel()

	first := docindex.MatcherFunc(func(docindex.Block) docindex.Extraction {
		return docindex.Extraction{Mentions: []docindex.Mention{{Name: "AppKit", Category: docindex.CategoryFramework}}}
	})
	second := docindex.MatcherFunc(func(docindex.Block) docindex.Extraction {
		return docindex.Extraction{Mentions: []docindex.Mention{{Name: "Cocoa", Category: docindex.CategoryLayer}}}
	})

	ext := docindex.Matchers{first, second}.Match(docindex.Prose(""))

	assert.Equal(t, []string{"AppKit", "Cocoa"}, mentionNames(ext))
}
