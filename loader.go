package docindex

import "context"

// DocumentParser turns the raw bytes of one file into a Document.
// Returns EMALFORMED or EDUPLICATE when the structure is invalid.
type DocumentParser interface {
	ParseDocument(slug string, src []byte) (*Document, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}

// LoadFailure records a source that could not be loaded. Failures cover
// one document each; the rest of the corpus still loads.
type LoadFailure struct {
	Source string `json:"source"`
	Err    error  `json:"-"`
}

// Error implements the error interface.
func (f LoadFailure) Error() string {
	return f.Source + ": " + ErrorMessage(f.Err)
}

// Unwrap returns the underlying error.
func (f LoadFailure) Unwrap() error { return f.Err }

// LoadResult is a possibly partial corpus.
type LoadResult struct {
	Documents []*Document
	Failures  []LoadFailure
}

// CorpusLoader loads an ordered corpus from some external source.
// Per-document failures are reported in LoadResult.Failures; the returned
// error is reserved for failures that prevent loading anything at all.
type CorpusLoader interface {
	LoadCorpus(ctx context.Context) (*LoadResult, error)
}
