package docindex

import (
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

// ReferenceSite is a Reference block found while building the index.
type ReferenceSite struct {
	Source Location `json:"source"`
	Block  int      `json:"block"` // position within the source section
	Text   string   `json:"text,omitempty"`
	Target Ref      `json:"target"`
}

// Index is the derived, read-only view of a corpus. It is safe for
// concurrent use by any number of readers; rebuilding produces a new Index.
type Index struct {
	entitySet

	documents []*Document
	bySlug    map[string]*Document
	refs      []ReferenceSite
}

// Builder builds an Index from a corpus.
type Builder struct {
	// Matcher recognizes entities in blocks. A nil Matcher extracts no
	// entities; reference sites are still collected.
	Matcher Matcher

	// Concurrency is the number of documents scanned in parallel.
	// Values below 2 scan sequentially.
	Concurrency int
}

// Build builds an index sequentially with the given matcher.
func Build(corpus []*Document, m Matcher) (*Index, error) {
	b := &Builder{Matcher: m}
	return b.Build(corpus)
}

// Build scans every block of every section and returns a new Index.
// Documents are scanned independently and the partial results are merged in
// corpus order, so the result does not depend on Concurrency.
//
// Returns EINVALID for a nil document and EDUPLICATE when two documents
// share a slug. The corpus is never modified.
func (b *Builder) Build(corpus []*Document) (*Index, error) {
	idx := &Index{
		entitySet: newEntitySet(),
		documents: slices.Clone(corpus),
		bySlug:    make(map[string]*Document, len(corpus)),
	}
	for i, doc := range corpus {
		if doc == nil {
			return nil, Errorf(EINVALID, "corpus document %d is nil", i)
		}
		if _, ok := idx.bySlug[doc.Slug()]; ok {
			return nil, Errorf(EDUPLICATE, "document slug %q appears more than once in corpus", doc.Slug())
		}
		idx.bySlug[doc.Slug()] = doc
	}

	matcher := b.Matcher
	if matcher == nil {
		matcher = Matchers{}
	}

	partials := make([]*partialIndex, len(corpus))
	if b.Concurrency < 2 {
		for i, doc := range corpus {
			partials[i] = scanDocument(doc, matcher)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(b.Concurrency)
		for i, doc := range corpus {
			g.Go(func() error {
				partials[i] = scanDocument(doc, matcher)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	for _, p := range partials {
		idx.merge(&p.entitySet)
		idx.refs = append(idx.refs, p.refs...)
	}
	idx.canonicalizeTargets()

	return idx, nil
}

// partialIndex holds what one document contributes to the index.
type partialIndex struct {
	entitySet
	refs []ReferenceSite
}

func scanDocument(doc *Document, m Matcher) *partialIndex {
	p := &partialIndex{entitySet: newEntitySet()}
	for s := range doc.Sections() {
		loc := Location{Document: doc.Slug(), Section: s.ID()}
		i := 0
		for b := range s.Blocks() {
			if b.Kind == BlockReference {
				p.refs = append(p.refs, ReferenceSite{Source: loc, Block: i, Text: b.Text, Target: b.Target})
			}
			ext := m.Match(b)
			for _, mention := range ext.Mentions {
				p.mention(mention, loc)
			}
			for _, a := range ext.Assertions {
				subject := p.mention(a.Subject, loc)
				object := p.mention(a.Object, loc)
				if subject != nil && object != nil {
					subject.addRelation(Relation{Type: a.Relation, Target: object.Name})
				}
			}
			i++
		}
	}
	return p
}

// entitySet is an insertion-ordered set of entities keyed by normalized name.
type entitySet struct {
	byKey map[string]*Entity
	order []string
}

func newEntitySet() entitySet {
	return entitySet{byKey: make(map[string]*Entity)}
}

// get returns the entity for name, creating it when absent. Returns nil
// for a blank name.
func (s *entitySet) get(name string) *Entity {
	key := NormalizeName(name)
	if key == "" {
		return nil
	}
	if e, ok := s.byKey[key]; ok {
		return e
	}
	e := &Entity{Name: collapseSpace(name)}
	s.byKey[key] = e
	s.order = append(s.order, key)
	return e
}

func (s *entitySet) mention(m Mention, loc Location) *Entity {
	e := s.get(m.Name)
	if e == nil {
		return nil
	}
	e.addCategory(m.Category)
	e.addLocation(loc)
	return e
}

// merge folds other into s, preserving other's insertion order.
func (s *entitySet) merge(other *entitySet) {
	for _, key := range other.order {
		src := other.byKey[key]
		dst := s.get(src.Name)
		for _, c := range src.Categories {
			dst.addCategory(c)
		}
		for _, loc := range src.Locations {
			dst.addLocation(loc)
		}
		for _, r := range src.Relations {
			dst.addRelation(r)
		}
	}
}

// canonicalizeTargets rewrites relation targets to the display name of the
// entity they resolve to.
func (s *entitySet) canonicalizeTargets() {
	for _, key := range s.order {
		e := s.byKey[key]
		for i, r := range e.Relations {
			if target, ok := s.byKey[NormalizeName(r.Target)]; ok {
				e.Relations[i].Target = target.Name
			}
		}
	}
}

func (e *Entity) addCategory(c Category) {
	if c != "" && !slices.Contains(e.Categories, c) {
		e.Categories = append(e.Categories, c)
	}
}

func (e *Entity) addLocation(loc Location) {
	if !slices.Contains(e.Locations, loc) {
		e.Locations = append(e.Locations, loc)
	}
}

func (e *Entity) addRelation(r Relation) {
	key := NormalizeName(r.Target)
	for _, existing := range e.Relations {
		if existing.Type == r.Type && NormalizeName(existing.Target) == key {
			return
		}
	}
	e.Relations = append(e.Relations, r)
}

// Fingerprint returns a stable hash of the index contents: entities,
// categories, locations and relationships in insertion order, plus
// reference sites. Rebuilding an unchanged corpus yields the same value.
func (idx *Index) Fingerprint() string {
	h := xxhash.New()
	for _, key := range idx.order {
		e := idx.byKey[key]
		fmt.Fprintf(h, "e\x00%s\x00%s\n", key, e.Name)
		for _, c := range e.Categories {
			fmt.Fprintf(h, "c\x00%s\n", c)
		}
		for _, loc := range e.Locations {
			fmt.Fprintf(h, "l\x00%s\x00%s\n", loc.Document, loc.Section)
		}
		for _, r := range e.Relations {
			fmt.Fprintf(h, "r\x00%s\x00%s\n", r.Type, r.Target)
		}
	}
	for _, ref := range idx.refs {
		fmt.Fprintf(h, "x\x00%s\x00%s\x00%d\x00%s\x00%s\n",
			ref.Source.Document, ref.Source.Section, ref.Block, ref.Target.Document, ref.Target.Section)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
