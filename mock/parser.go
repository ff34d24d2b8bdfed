package mock

import "github.com/fwojciec/docindex"

var _ docindex.DocumentParser = (*DocumentParser)(nil)

// DocumentParser is a mock implementation of docindex.DocumentParser.
type DocumentParser struct {
	ParseDocumentFn func(slug string, src []byte) (*docindex.Document, error)
}

func (p *DocumentParser) ParseDocument(slug string, src []byte) (*docindex.Document, error) {
	return p.ParseDocumentFn(slug, src)
}
