// Package goldmark parses markdown guides into docindex documents.
package goldmark

import (
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/fwojciec/docindex"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Ensure Parser implements docindex.DocumentParser at compile time.
var _ docindex.DocumentParser = (*Parser)(nil)

// PreambleID is the section id given to content that precedes the first
// heading below the title.
const PreambleID = "0"

// Parser converts markdown into a Document.
//
// The first level-one heading, when it comes before any other heading,
// is the document title. Every other heading opens a section. A heading
// that starts with an outline number ("4.2 Mach Tasks") uses that number
// as its id; other headings are numbered by position in the outline,
// skipping numbers that a heading claims explicitly.
// Paragraphs and list items become prose, fenced and indented code become
// code examples, GFM tables become tables, and relative links become
// cross-references.
type Parser struct {
	md goldmark.Markdown
}

// NewParser creates a new Parser with GitHub Flavored Markdown enabled.
func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

var numberedHeadingRe = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.?\s+\S`)

// outlineEntry tracks an open heading while numbering the outline.
type outlineEntry struct {
	level    int
	index    int // into sections
	children int
}

// ParseDocument parses src into a document with the given slug.
func (p *Parser) ParseDocument(slug string, src []byte) (*docindex.Document, error) {
	if slug == "" {
		return nil, docindex.Errorf(docindex.EMALFORMED, "document slug required")
	}

	root := p.md.Parser().Parse(text.NewReader(src))
	claimed := explicitNumbers(root, src)

	var (
		title    string
		sections []docindex.SectionInput
		preamble []docindex.Block
		stack    []outlineEntry
		top      int
		anchors  docindex.Anchors
	)

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			blocks := collectBlocks(n, src, slug)
			if len(sections) == 0 {
				preamble = append(preamble, blocks...)
			} else {
				last := &sections[len(sections)-1]
				last.Blocks = append(last.Blocks, blocks...)
			}
			continue
		}

		heading := inlineText(h, src)
		if h.Level == 1 && title == "" && len(sections) == 0 {
			title = heading
			anchors.Next(heading)
			continue
		}

		for len(stack) > 0 && stack[len(stack)-1].level >= h.Level {
			stack = stack[:len(stack)-1]
		}

		var parent string
		if len(stack) > 0 {
			parent = sections[stack[len(stack)-1].index].ID
		}
		id, ok := explicitNumber(heading)
		for !ok {
			if len(stack) == 0 {
				top++
				id = strconv.Itoa(top)
			} else {
				open := &stack[len(stack)-1]
				open.children++
				id = parent + "." + strconv.Itoa(open.children)
			}
			ok = !claimed[id]
		}

		sections = append(sections, docindex.SectionInput{
			ID:      id,
			Heading: heading,
			Anchor:  anchors.Next(heading),
			Parent:  parent,
		})
		stack = append(stack, outlineEntry{level: h.Level, index: len(sections) - 1})
	}

	if title == "" {
		title = slug
	}
	if len(preamble) > 0 {
		sections = append([]docindex.SectionInput{{
			ID:      PreambleID,
			Heading: title,
			Blocks:  preamble,
		}}, sections...)
	}

	return docindex.NewDocument(slug, title, sections)
}

// explicitNumber returns the outline number a heading starts with.
func explicitNumber(heading string) (string, bool) {
	m := numberedHeadingRe.FindStringSubmatch(heading)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// explicitNumbers returns the outline numbers claimed by section headings.
// A leading level-one heading is the title and claims nothing.
func explicitNumbers(root ast.Node, src []byte) map[string]bool {
	claimed := make(map[string]bool)
	first := true
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		if first && h.Level == 1 {
			first = false
			continue
		}
		first = false
		if id, ok := explicitNumber(inlineText(h, src)); ok {
			claimed[id] = true
		}
	}
	return claimed
}

// collectBlocks converts a block-level node into docindex blocks.
func collectBlocks(n ast.Node, src []byte, slug string) []docindex.Block {
	switch n := n.(type) {
	case *ast.FencedCodeBlock:
		return []docindex.Block{docindex.Code(string(n.Language(src)), linesText(n, src))}
	case *ast.CodeBlock:
		return []docindex.Block{docindex.Code("", linesText(n, src))}
	case *east.Table:
		return append([]docindex.Block{tableBlock(n, src)}, referenceBlocks(n, src, slug)...)
	case *ast.Paragraph, *ast.TextBlock:
		var blocks []docindex.Block
		if prose := strings.TrimSpace(inlineText(n, src)); prose != "" {
			blocks = append(blocks, docindex.Prose(prose))
		}
		return append(blocks, referenceBlocks(n, src, slug)...)
	case *ast.HTMLBlock, *ast.ThematicBreak:
		return nil
	}

	var blocks []docindex.Block
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		blocks = append(blocks, collectBlocks(c, src, slug)...)
	}
	return blocks
}

func linesText(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func tableBlock(t *east.Table, src []byte) docindex.Block {
	var headers []string
	var rows [][]string
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		var cells []string
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, strings.TrimSpace(inlineText(c, src)))
		}
		if _, ok := r.(*east.TableHeader); ok {
			headers = cells
		} else {
			rows = append(rows, cells)
		}
	}
	return docindex.Table(headers, rows)
}

// referenceBlocks returns a reference block for every relative link in n.
func referenceBlocks(n ast.Node, src []byte, slug string) []docindex.Block {
	var blocks []docindex.Block
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := node.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		if target, ok := ParseReference(slug, string(link.Destination)); ok {
			b := docindex.Reference(target.Document, target.Section)
			b.Text = strings.TrimSpace(inlineText(link, src))
			blocks = append(blocks, b)
		}
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

// documentExts are the link target extensions that name a guide.
var documentExts = []string{".md", ".markdown", ".html", ".htm"}

// ParseReference interprets a link destination found in the document slug.
// Fragment-only links target the same document; relative paths are resolved
// against the directory of slug with markdown and HTML extensions removed.
// External links and links to other files, such as code samples or images,
// are not references. Extensionless paths are taken to name a slug.
func ParseReference(slug, dest string) (docindex.Ref, bool) {
	dest = strings.TrimSpace(dest)
	if dest == "" || strings.Contains(dest, "://") || strings.HasPrefix(dest, "mailto:") {
		return docindex.Ref{}, false
	}

	target, fragment, _ := strings.Cut(dest, "#")
	if i := strings.IndexByte(target, '?'); i >= 0 {
		target = target[:i]
	}

	doc := slug
	if target != "" {
		ext := path.Ext(target)
		if ext != "" && !slices.Contains(documentExts, strings.ToLower(ext)) {
			return docindex.Ref{}, false
		}
		target = strings.TrimSuffix(target, ext)
		if strings.HasPrefix(target, "/") {
			doc = strings.TrimPrefix(path.Clean(target), "/")
		} else {
			doc = path.Join(path.Dir(slug), target)
		}
	}
	return docindex.Ref{Document: doc, Section: fragment}, true
}

// inlineText concatenates the text of n's inline descendants.
func inlineText(n ast.Node, src []byte) string {
	var sb strings.Builder
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch c := c.(type) {
			case *ast.Text:
				sb.Write(c.Segment.Value(src))
				if c.SoftLineBreak() || c.HardLineBreak() {
					sb.WriteByte(' ')
				}
			case *ast.String:
				sb.Write(c.Value)
			case *ast.AutoLink:
				sb.Write(c.Label(src))
			case *ast.RawHTML:
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(sb.String())
}
