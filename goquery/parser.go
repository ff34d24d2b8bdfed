// Package goquery reads HTML guide pages into docindex documents.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docindex"
)

// Ensure Parser implements docindex.DocumentParser at compile time.
var _ docindex.DocumentParser = (*Parser)(nil)

// contentSelectors are tried in order; the first match holds the guide text.
var contentSelectors = []string{"main", "article", "[role=main]", "body"}

// chromeSelectors are removed from the content before conversion.
const chromeSelectors = "script, style, noscript, nav, header, footer, aside"

// Parser extracts the main content of an HTML page, converts it to markdown
// and hands the result to a markdown DocumentParser.
type Parser struct {
	Converter docindex.Converter
	Markdown  docindex.DocumentParser
}

// NewParser creates a new Parser.
func NewParser(conv docindex.Converter, md docindex.DocumentParser) *Parser {
	return &Parser{Converter: conv, Markdown: md}
}

// ParseDocument parses an HTML page. The page <title> becomes the document
// title unless the content carries its own level-one heading.
func (p *Parser) ParseDocument(slug string, src []byte) (*docindex.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(src))
	if err != nil {
		return nil, docindex.Errorf(docindex.EMALFORMED, "failed to parse HTML: %v", err)
	}

	title := strings.TrimSpace(doc.Find("head title").First().Text())

	content := selectContent(doc)
	content.Find(chromeSelectors).Remove()

	html, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, docindex.Errorf(docindex.EMALFORMED, "failed to render HTML content: %v", err)
	}

	var md string
	if strings.TrimSpace(content.Text()) != "" {
		md, err = p.Converter.Convert(html)
		if err != nil {
			return nil, err
		}
	}

	if title != "" && content.Find("h1").Length() == 0 {
		md = "# " + title + "\n\n" + md
	}

	return p.Markdown.ParseDocument(slug, []byte(md))
}

func selectContent(doc *goquery.Document) *goquery.Selection {
	for _, sel := range contentSelectors {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			return s
		}
	}
	return doc.Selection
}
