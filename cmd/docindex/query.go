package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/docindex"
)

// Run executes the entity command.
func (c *EntityCmd) Run(deps *Dependencies) error {
	idx, err := loadIndex(deps)
	if err != nil {
		return err
	}

	e, ok := idx.LookupEntity(c.Name)
	if !ok {
		err := docindex.Errorf(docindex.ENOTFOUND, "entity %q not found", c.Name)
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s [%s]\n", e.Name, formatCategories(e.Categories))
	fmt.Fprintln(deps.Stdout, "Mentioned in:")
	for _, loc := range e.Locations {
		fmt.Fprintf(deps.Stdout, "  %s\n", formatLocation(idx, loc))
	}
	if len(e.Relations) > 0 {
		fmt.Fprintln(deps.Stdout, "Relations:")
		for _, r := range e.Relations {
			fmt.Fprintf(deps.Stdout, "  %s %s\n", r.Type, r.Target)
		}
	}
	return nil
}

// Run executes the mentions command.
func (c *MentionsCmd) Run(deps *Dependencies) error {
	idx, err := loadIndex(deps)
	if err != nil {
		return err
	}

	locs := idx.SectionsMentioning(c.Name)
	if len(locs) == 0 {
		fmt.Fprintf(deps.Stdout, "No sections mention %q.\n", c.Name)
		return nil
	}
	for _, loc := range locs {
		fmt.Fprintln(deps.Stdout, formatLocation(idx, loc))
	}
	return nil
}

// Run executes the relations command.
func (c *RelationsCmd) Run(deps *Dependencies) error {
	idx, err := loadIndex(deps)
	if err != nil {
		return err
	}

	rel := docindex.RelationType(c.Relation)
	var targets []string
	if c.Reverse {
		targets, err = idx.RelatedTo(c.Name, rel)
	} else {
		targets, err = idx.RelationshipsOf(c.Name, rel)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	if len(targets) == 0 {
		fmt.Fprintf(deps.Stdout, "No %s relations for %q.\n", rel, c.Name)
		return nil
	}
	for _, t := range targets {
		fmt.Fprintln(deps.Stdout, t)
	}
	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	idx, err := loadIndex(deps)
	if err != nil {
		return err
	}

	slug, section, _ := strings.Cut(c.Location, "#")
	doc, ok := idx.Document(slug)
	if !ok {
		err := docindex.Errorf(docindex.ENOTFOUND, "document %q not found", slug)
		fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
		return err
	}

	if section != "" {
		s, ok := doc.Lookup(section)
		if !ok {
			err := docindex.Errorf(docindex.ENOTFOUND, "section %q not found in %q", section, slug)
			fmt.Fprintf(deps.Stderr, "error: %s\n", docindex.ErrorMessage(err))
			return err
		}
		fmt.Fprintln(deps.Stdout, docindex.FormatSection(slug, s))
		return nil
	}

	fmt.Fprintf(deps.Stdout, "# %s\n", doc.Title())
	for s := range doc.Sections() {
		fmt.Fprintf(deps.Stdout, "\n%s\n", docindex.FormatSection(slug, s))
	}
	return nil
}

// formatLocation renders a location with its section heading when known.
func formatLocation(idx *docindex.Index, loc docindex.Location) string {
	if s, ok := idx.Section(loc); ok && s.Heading() != "" {
		return loc.String() + "  " + s.Heading()
	}
	return loc.String()
}

func formatCategories(cs []docindex.Category) string {
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
