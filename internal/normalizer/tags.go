package normalizer

import (
	"regexp"
	"strings"
)

var (
	urlRe   = regexp.MustCompile(`(?i)https?://[^\s<>"')\]]+`)
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
)

// Stage 12: wrap detected URLs and email addresses in bracketed markers so
// downstream consumers can identify them without re-parsing.
func tagURLsAndEmails(text string) string {
	text = tagMatches(text, urlRe, "[URL: ")
	text = tagMatches(text, emailRe, "[EMAIL: ")
	return text
}

// tagMatches wraps each match in prefix..."]", skipping matches that are
// already tagged so repeated normalization does not nest markers.
func tagMatches(text string, re *regexp.Regexp, prefix string) string {
	matches := re.FindAllStringIndex(text, -1)
	if matches == nil {
		return text
	}
	var b strings.Builder
	b.Grow(len(text) + len(matches)*len(prefix))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		b.WriteString(text[last:start])
		if alreadyTagged(text, start) {
			b.WriteString(text[start:end])
		} else {
			b.WriteString(prefix)
			b.WriteString(text[start:end])
			b.WriteByte(']')
		}
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

func alreadyTagged(text string, start int) bool {
	head := text[:start]
	return strings.HasSuffix(head, "[URL: ") || strings.HasSuffix(head, "[EMAIL: ")
}
