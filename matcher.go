package docindex

import (
	"regexp"
	"sort"
	"strings"
)

// Mention is an entity name recognized in a block.
type Mention struct {
	Name     string
	Category Category
}

// Assertion states that Subject relates to Object.
type Assertion struct {
	Subject  Mention
	Relation RelationType
	Object   Mention
}

// Extraction is everything a matcher recognized in one block.
type Extraction struct {
	Mentions   []Mention
	Assertions []Assertion
}

// Matcher recognizes entities and relationships in block content. The index
// builder treats matchers as opaque, so new categories or extraction rules
// are added by supplying another Matcher.
type Matcher interface {
	Match(b Block) Extraction
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc func(b Block) Extraction

// Match calls f(b).
func (f MatcherFunc) Match(b Block) Extraction { return f(b) }

// Matchers runs each matcher in order and concatenates the results.
type Matchers []Matcher

// Match implements Matcher.
func (ms Matchers) Match(b Block) Extraction {
	var out Extraction
	for _, m := range ms {
		ext := m.Match(b)
		out.Mentions = append(out.Mentions, ext.Mentions...)
		out.Assertions = append(out.Assertions, ext.Assertions...)
	}
	return out
}

// Term is a vocabulary entry. Aliases are reported under Name.
type Term struct {
	Name     string   `koanf:"name"`
	Category Category `koanf:"category"`
	Aliases  []string `koanf:"aliases"`
}

// Vocabulary recognizes a fixed list of terms in prose, table cells and,
// optionally, code bodies. Matching is case-insensitive, tolerant of
// whitespace differences and anchored on word boundaries.
type Vocabulary struct {
	// IncludeCode also scans code example bodies.
	IncludeCode bool

	terms []compiledTerm
}

type compiledTerm struct {
	mention Mention
	re      *regexp.Regexp
}

// NewVocabulary compiles terms into a Vocabulary.
// Returns EINVALID for an empty name or an unrecognized category.
func NewVocabulary(terms []Term) (*Vocabulary, error) {
	v := &Vocabulary{terms: make([]compiledTerm, 0, len(terms))}
	for _, t := range terms {
		if strings.TrimSpace(t.Name) == "" {
			return nil, Errorf(EINVALID, "vocabulary term name required")
		}
		if !t.Category.Valid() {
			return nil, Errorf(EINVALID, "vocabulary term %q has unknown category %q", t.Name, t.Category)
		}
		alts := make([]string, 0, 1+len(t.Aliases))
		for _, name := range append([]string{t.Name}, t.Aliases...) {
			if words := strings.Fields(name); len(words) > 0 {
				for i, w := range words {
					words[i] = regexp.QuoteMeta(w)
				}
				alts = append(alts, strings.Join(words, `\s+`))
			}
		}
		re, err := regexp.Compile(`(?i)(?:^|[^\p{L}\p{N}_])(` + strings.Join(alts, "|") + `)(?:[^\p{L}\p{N}_]|$)`)
		if err != nil {
			return nil, Errorf(EINVALID, "vocabulary term %q: %v", t.Name, err)
		}
		v.terms = append(v.terms, compiledTerm{
			mention: Mention{Name: collapseSpace(t.Name), Category: t.Category},
			re:      re,
		})
	}
	return v, nil
}

// Len returns the number of terms.
func (v *Vocabulary) Len() int { return len(v.terms) }

// Match implements Matcher. Each term is reported at most once per block,
// ordered by where it first occurs.
func (v *Vocabulary) Match(b Block) Extraction {
	var texts []string
	switch b.Kind {
	case BlockProse:
		texts = []string{b.Text}
	case BlockTable:
		texts = append(texts, b.Headers...)
		for _, row := range b.Rows {
			texts = append(texts, row...)
		}
	case BlockCode:
		if v.IncludeCode {
			texts = []string{b.Body}
		}
	}
	if len(texts) == 0 {
		return Extraction{}
	}

	type hit struct {
		text, pos int
		mention   Mention
	}
	var hits []hit
	for _, t := range v.terms {
		for i, text := range texts {
			if loc := t.re.FindStringSubmatchIndex(text); loc != nil {
				hits = append(hits, hit{text: i, pos: loc[2], mention: t.mention})
				break
			}
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].text != hits[j].text {
			return hits[i].text < hits[j].text
		}
		return hits[i].pos < hits[j].pos
	})

	ext := Extraction{Mentions: make([]Mention, len(hits))}
	for i, h := range hits {
		ext.Mentions[i] = h.mention
	}
	return ext
}

// TableRule turns table rows into relationship assertions. A table matches
// when its headers contain both the subject and the object column; each row
// then asserts subject --Relation--> object. Cells listing several names
// separated by commas or semicolons yield one assertion per pair.
type TableRule struct {
	Subject         string       `koanf:"subject"`
	SubjectCategory Category     `koanf:"subject_category"`
	Object          string       `koanf:"object"`
	ObjectCategory  Category     `koanf:"object_category"`
	Relation        RelationType `koanf:"relation"`
}

// Validate returns an error if the rule is incomplete.
func (r *TableRule) Validate() error {
	if r.Subject == "" || r.Object == "" {
		return Errorf(EINVALID, "table rule subject and object columns required")
	}
	if r.Relation == "" {
		return Errorf(EINVALID, "table rule relation required")
	}
	if !r.SubjectCategory.Valid() || !r.ObjectCategory.Valid() {
		return Errorf(EINVALID, "table rule %q has unknown category", r.Relation)
	}
	return nil
}

// Match implements Matcher.
func (r TableRule) Match(b Block) Extraction {
	if b.Kind != BlockTable {
		return Extraction{}
	}
	si, oi := -1, -1
	for i, h := range b.Headers {
		switch NormalizeName(cellText(h)) {
		case NormalizeName(r.Subject):
			si = i
		case NormalizeName(r.Object):
			oi = i
		}
	}
	if si < 0 || oi < 0 {
		return Extraction{}
	}

	var ext Extraction
	for _, row := range b.Rows {
		if si >= len(row) || oi >= len(row) {
			continue
		}
		for _, subject := range splitCell(row[si]) {
			for _, object := range splitCell(row[oi]) {
				ext.Assertions = append(ext.Assertions, Assertion{
					Subject:  Mention{Name: subject, Category: r.SubjectCategory},
					Relation: r.Relation,
					Object:   Mention{Name: object, Category: r.ObjectCategory},
				})
			}
		}
	}
	return ext
}

// splitCell splits a table cell listing several names.
func splitCell(cell string) []string {
	var names []string
	for _, part := range strings.FieldsFunc(cell, func(r rune) bool { return r == ',' || r == ';' }) {
		name := collapseSpace(cellText(part))
		if name == "" || name == "-" || name == "—" {
			continue
		}
		names = append(names, name)
	}
	return names
}

// cellText strips inline emphasis and code markers.
func cellText(s string) string {
	return strings.Trim(strings.TrimSpace(s), "*_`")
}
