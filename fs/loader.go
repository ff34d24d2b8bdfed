// Package fs loads a corpus of guides from a directory tree.
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/docindex"
)

// Ensure Loader implements docindex.CorpusLoader at compile time.
var _ docindex.CorpusLoader = (*Loader)(nil)

// Loader reads every matching file under Dir and parses it with the parser
// registered for its extension. Files are visited in lexical path order,
// which fixes the corpus order.
//
// A document's slug is its slash-separated path relative to Dir without
// the extension, so "guides/security.md" becomes "guides/security".
type Loader struct {
	Dir string

	// Include and Exclude are doublestar patterns matched against the
	// relative path. An empty Include accepts every file with a parser.
	Include []string
	Exclude []string

	// Parsers maps a lower case extension such as ".md" to its parser.
	Parsers map[string]docindex.DocumentParser

	fsys iofs.FS
}

// NewLoader creates a Loader reading from dir.
func NewLoader(dir string, parsers map[string]docindex.DocumentParser) *Loader {
	return &Loader{Dir: dir, Parsers: parsers}
}

// LoadCorpus walks the directory and parses each matching file. A file that
// cannot be read or parsed, or whose slug repeats an earlier file's, is
// recorded as a failure and skipped.
func (l *Loader) LoadCorpus(ctx context.Context) (*docindex.LoadResult, error) {
	for _, p := range slices.Concat(l.Include, l.Exclude) {
		if !doublestar.ValidatePattern(p) {
			return nil, docindex.Errorf(docindex.EINVALID, "invalid path pattern %q", p)
		}
	}

	fsys := l.fsys
	if fsys == nil {
		info, err := os.Stat(l.Dir)
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, docindex.Errorf(docindex.ENOTFOUND, "corpus directory %q not found", l.Dir)
		} else if err != nil {
			return nil, err
		} else if !info.IsDir() {
			return nil, docindex.Errorf(docindex.EINVALID, "corpus path %q is not a directory", l.Dir)
		}
		fsys = os.DirFS(l.Dir)
	}

	result := &docindex.LoadResult{}
	seen := make(map[string]string)

	err := iofs.WalkDir(fsys, ".", func(name string, d iofs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if name == "." {
				return err
			}
			result.Failures = append(result.Failures, docindex.LoadFailure{Source: name, Err: err})
			if d != nil && d.IsDir() {
				return iofs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(name))
		parser, ok := l.Parsers[ext]
		if !ok || !l.match(name) {
			return nil
		}

		slug := strings.TrimSuffix(name, path.Ext(name))
		if prev, ok := seen[slug]; ok {
			result.Failures = append(result.Failures, docindex.LoadFailure{
				Source: name,
				Err:    docindex.Errorf(docindex.EDUPLICATE, "slug %q already loaded from %s", slug, prev),
			})
			return nil
		}

		src, err := iofs.ReadFile(fsys, name)
		if err != nil {
			result.Failures = append(result.Failures, docindex.LoadFailure{Source: name, Err: err})
			return nil
		}
		doc, err := parser.ParseDocument(slug, src)
		if err != nil {
			result.Failures = append(result.Failures, docindex.LoadFailure{Source: name, Err: err})
			return nil
		}

		seen[slug] = name
		result.Documents = append(result.Documents, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (l *Loader) match(name string) bool {
	for _, p := range l.Exclude {
		if ok, _ := doublestar.Match(p, name); ok {
			return false
		}
	}
	if len(l.Include) == 0 {
		return true
	}
	for _, p := range l.Include {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
