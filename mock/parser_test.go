package mock_test

import (
	"testing"

	"github.com/fwojciec/docindex"
	"github.com/fwojciec/docindex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentParser_ParseDocument(t *testing.T) {
	t.Parallel()

	t.Run("delegates to ParseDocumentFn", func(t *testing.T) {
		t.Parallel()

		var gotSlug string
		var gotSrc []byte
		p := &mock.DocumentParser{
			ParseDocumentFn: func(slug string, src []byte) (*docindex.Document, error) {
				gotSlug, gotSrc = slug, src
				return docindex.NewDocument(slug, "Guide", nil)
			},
		}

		doc, err := p.ParseDocument("guide", []byte("# Guide"))

		require.NoError(t, err)
		assert.Equal(t, "guide", doc.Slug())
		assert.Equal(t, "guide", gotSlug)
		assert.Equal(t, []byte("# Guide"), gotSrc)
	})

	t.Run("returns error from ParseDocumentFn", func(t *testing.T) {
		t.Parallel()

		p := &mock.DocumentParser{
			ParseDocumentFn: func(string, []byte) (*docindex.Document, error) {
				return nil, docindex.Errorf(docindex.EMALFORMED, "bad outline")
			},
		}

		_, err := p.ParseDocument("guide", nil)

		assert.Equal(t, docindex.EMALFORMED, docindex.ErrorCode(err))
	})
}
