package docindex

import (
	"iter"
	"slices"
)

// BlockKind identifies the variant held by a Block.
type BlockKind int

// Block variants.
const (
	BlockProse BlockKind = iota
	BlockCode
	BlockTable
	BlockReference
)

// String returns the lower case name of the block kind.
func (k BlockKind) String() string {
	switch k {
	case BlockProse:
		return "prose"
	case BlockCode:
		return "code"
	case BlockTable:
		return "table"
	case BlockReference:
		return "reference"
	default:
		return "unknown"
	}
}

// Ref points at a document, or at a section within a document when
// Section is set.
type Ref struct {
	Document string `json:"document"`
	Section  string `json:"section,omitempty"`
}

// String renders the reference as "slug" or "slug#section".
func (r Ref) String() string {
	if r.Section == "" {
		return r.Document
	}
	return r.Document + "#" + r.Section
}

// Block is a tagged unit of section content. Only the fields belonging to
// Kind are meaningful.
type Block struct {
	Kind BlockKind `json:"kind"`

	// Prose text, or the link text of a reference.
	Text string `json:"text,omitempty"`

	// Code example.
	Language string `json:"language,omitempty"`
	Body     string `json:"body,omitempty"`

	// Table.
	Headers []string   `json:"headers,omitempty"`
	Rows    [][]string `json:"rows,omitempty"`

	// Reference target.
	Target Ref `json:"target,omitzero"`
}

// Prose returns a prose block.
func Prose(text string) Block {
	return Block{Kind: BlockProse, Text: text}
}

// Code returns a code example block tagged with a language.
func Code(language, body string) Block {
	return Block{Kind: BlockCode, Language: language, Body: body}
}

// Table returns a table block.
func Table(headers []string, rows [][]string) Block {
	return Block{Kind: BlockTable, Headers: headers, Rows: rows}
}

// Reference returns a cross-reference block. An empty section targets the
// document as a whole.
func Reference(document, section string) Block {
	return Block{Kind: BlockReference, Target: Ref{Document: document, Section: section}}
}

// clone returns a block whose slices are not shared with b.
func (b Block) clone() Block {
	b.Headers = slices.Clone(b.Headers)
	if b.Rows != nil {
		rows := make([][]string, len(b.Rows))
		for i, row := range b.Rows {
			rows[i] = slices.Clone(row)
		}
		b.Rows = rows
	}
	return b
}

// SectionInput is the raw structural description of a section handed to
// NewDocument by a loader.
type SectionInput struct {
	ID      string
	Heading string
	Anchor  string // optional URL fragment alias, see Document.Lookup
	Parent  string // empty for a top-level section
	Blocks  []Block
}

// Section is a node of a document's section tree. Parent and child links
// are arena indices into the owning document.
type Section struct {
	id       string
	heading  string
	anchor   string
	parentID string
	parent   int
	children []int
	blocks   []Block
}

// ID returns the section identifier, unique within its document.
func (s *Section) ID() string { return s.id }

// Heading returns the section heading text.
func (s *Section) Heading() string { return s.heading }

// Anchor returns the section's URL fragment alias, if any.
func (s *Section) Anchor() string { return s.anchor }

// ParentID returns the parent section id, or "" for a top-level section.
func (s *Section) ParentID() string { return s.parentID }

// Len returns the number of blocks in the section.
func (s *Section) Len() int { return len(s.blocks) }

// Blocks returns the section's blocks in order. The sequence may be
// iterated any number of times.
func (s *Section) Blocks() iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for _, b := range s.blocks {
			if !yield(b) {
				return
			}
		}
	}
}

// Document is an immutable guide made of a tree of sections.
type Document struct {
	slug     string
	title    string
	sections []Section
	byID     map[string]int
	byAnchor map[string]int
	order    []int // depth-first
}

// NewDocument validates the section structure and builds a document.
//
// Returns EMALFORMED when the slug or a section id is empty, a section
// names a parent that does not exist, or parent links form a cycle.
// Returns EDUPLICATE when two sections share an id.
func NewDocument(slug, title string, inputs []SectionInput) (*Document, error) {
	if slug == "" {
		return nil, Errorf(EMALFORMED, "document slug required")
	}

	doc := &Document{
		slug:     slug,
		title:    title,
		sections: make([]Section, len(inputs)),
		byID:     make(map[string]int, len(inputs)),
		byAnchor: make(map[string]int),
	}

	for i, in := range inputs {
		if in.ID == "" {
			return nil, Errorf(EMALFORMED, "section %d in document %q has no id", i, slug)
		}
		if _, ok := doc.byID[in.ID]; ok {
			return nil, Errorf(EDUPLICATE, "section id %q appears more than once in document %q", in.ID, slug)
		}
		doc.byID[in.ID] = i
		if _, ok := doc.byAnchor[in.Anchor]; in.Anchor != "" && !ok {
			doc.byAnchor[in.Anchor] = i
		}

		blocks := make([]Block, len(in.Blocks))
		for j, b := range in.Blocks {
			blocks[j] = b.clone()
		}
		doc.sections[i] = Section{
			id:       in.ID,
			heading:  in.Heading,
			anchor:   in.Anchor,
			parentID: in.Parent,
			parent:   -1,
			blocks:   blocks,
		}
	}

	var roots []int
	for i := range doc.sections {
		s := &doc.sections[i]
		if s.parentID == "" {
			roots = append(roots, i)
			continue
		}
		p, ok := doc.byID[s.parentID]
		if !ok {
			return nil, Errorf(EMALFORMED, "section %q in document %q references unknown parent %q", s.id, slug, s.parentID)
		}
		s.parent = p
		doc.sections[p].children = append(doc.sections[p].children, i)
	}

	// Sections on a parent cycle are unreachable from the roots.
	visited := make([]bool, len(doc.sections))
	doc.order = make([]int, 0, len(doc.sections))
	var visit func(i int)
	visit = func(i int) {
		visited[i] = true
		doc.order = append(doc.order, i)
		for _, c := range doc.sections[i].children {
			visit(c)
		}
	}
	for _, r := range roots {
		visit(r)
	}
	if len(doc.order) != len(doc.sections) {
		for i, ok := range visited {
			if !ok {
				return nil, Errorf(EMALFORMED, "section %q in document %q is part of a parent cycle", doc.sections[i].id, slug)
			}
		}
	}

	return doc, nil
}

// Slug returns the stable document identifier.
func (d *Document) Slug() string { return d.slug }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Len returns the number of sections in the document.
func (d *Document) Len() int { return len(d.sections) }

// Section returns the section with the given id.
func (d *Document) Section(id string) (*Section, bool) {
	i, ok := d.byID[id]
	if !ok {
		return nil, false
	}
	return &d.sections[i], true
}

// Lookup returns the section whose id is target or, failing that, the first
// section whose anchor is target.
func (d *Document) Lookup(target string) (*Section, bool) {
	if s, ok := d.Section(target); ok {
		return s, true
	}
	i, ok := d.byAnchor[target]
	if !ok {
		return nil, false
	}
	return &d.sections[i], true
}

// Parent returns the parent of the section with the given id.
func (d *Document) Parent(id string) (*Section, bool) {
	i, ok := d.byID[id]
	if !ok || d.sections[i].parent < 0 {
		return nil, false
	}
	return &d.sections[d.sections[i].parent], true
}

// Children returns the direct children of the section with the given id in
// declaration order.
func (d *Document) Children(id string) []*Section {
	i, ok := d.byID[id]
	if !ok {
		return nil
	}
	children := make([]*Section, 0, len(d.sections[i].children))
	for _, c := range d.sections[i].children {
		children = append(children, &d.sections[c])
	}
	return children
}

// Sections enumerates sections depth-first: top-level sections in
// declaration order, each followed by its subtree.
func (d *Document) Sections() iter.Seq[*Section] {
	return func(yield func(*Section) bool) {
		for _, i := range d.order {
			if !yield(&d.sections[i]) {
				return
			}
		}
	}
}
