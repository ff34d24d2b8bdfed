package docindex

import "strings"

// FormatSection renders a section for display. The header names the
// location and heading; blocks follow in order separated by blank lines.
// Code is fenced with its language, tables use pipe syntax and references
// show their target.
func FormatSection(slug string, s *Section) string {
	header := "## Section: " + Location{Document: slug, Section: s.ID()}.String()
	if s.Heading() != "" {
		header += " " + s.Heading()
	}

	parts := []string{header}
	for b := range s.Blocks() {
		parts = append(parts, formatBlock(b))
	}
	return strings.Join(parts, "\n\n")
}

func formatBlock(b Block) string {
	switch b.Kind {
	case BlockCode:
		return "```" + b.Language + "\n" + b.Body + "\n```"
	case BlockTable:
		var sb strings.Builder
		sb.WriteString("| " + strings.Join(b.Headers, " | ") + " |\n|")
		for range b.Headers {
			sb.WriteString("---|")
		}
		for _, row := range b.Rows {
			sb.WriteString("\n| " + strings.Join(row, " | ") + " |")
		}
		return sb.String()
	case BlockReference:
		if b.Text != "" {
			return "-> " + b.Target.String() + " (" + b.Text + ")"
		}
		return "-> " + b.Target.String()
	default:
		return b.Text
	}
}
