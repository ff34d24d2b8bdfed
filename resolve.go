package docindex

import "fmt"

// DanglingReference is a reference whose target could not be located. It
// is a diagnostic value, not an error.
type DanglingReference struct {
	Source Location `json:"source"`
	Block  int      `json:"block"`
	Text   string   `json:"text,omitempty"`
	Target Ref      `json:"target"`
}

// String renders the reference as a human-readable warning.
func (d DanglingReference) String() string {
	if d.Text != "" {
		return fmt.Sprintf("%s (block %d): %q points at missing %s", d.Source, d.Block, d.Text, d.Target)
	}
	return fmt.Sprintf("%s (block %d): reference points at missing %s", d.Source, d.Block, d.Target)
}

// Report is the outcome of resolving every reference in an index.
type Report struct {
	Resolved int                 `json:"resolved"`
	Dangling []DanglingReference `json:"dangling"`
}

// Total returns the number of references examined.
func (r *Report) Total() int {
	return r.Resolved + len(r.Dangling)
}

// Resolve locates the target of every reference site. A reference without
// a section targets the document itself; otherwise the section is matched
// by id, then by anchor. Dangling references are reported
// in document order, then section order, then block order.
func Resolve(idx *Index) *Report {
	report := &Report{}
	for _, ref := range idx.refs {
		if idx.resolves(ref.Target) {
			report.Resolved++
			continue
		}
		report.Dangling = append(report.Dangling, DanglingReference{
			Source: ref.Source,
			Block:  ref.Block,
			Text:   ref.Text,
			Target: ref.Target,
		})
	}
	return report
}

func (idx *Index) resolves(target Ref) bool {
	doc, ok := idx.bySlug[target.Document]
	if !ok {
		return false
	}
	if target.Section == "" {
		return true
	}
	_, ok = doc.Lookup(target.Section)
	return ok
}
