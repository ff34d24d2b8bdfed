package docindex

import (
	"strconv"
	"strings"
	"unicode"
)

// Anchors generates URL-safe heading anchors for one document, adding
// numeric suffixes to repeated headings.
type Anchors struct {
	counts map[string]int
}

// Next returns the anchor for the next heading with the given text.
func (a *Anchors) Next(heading string) string {
	if a.counts == nil {
		a.counts = make(map[string]int)
	}
	base := GenerateAnchor(heading)
	if base == "" {
		return ""
	}
	count, exists := a.counts[base]
	a.counts[base] = count + 1
	if !exists {
		return base
	}
	return base + "-" + strconv.Itoa(count)
}

// GenerateAnchor creates a URL-safe anchor from a heading.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func GenerateAnchor(heading string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(heading) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}
