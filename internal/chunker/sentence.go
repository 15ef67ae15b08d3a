package chunker

import (
	"strings"
	"unicode"
)

// SplitSentences splits normalized text on '.', '!' or '?' followed by
// whitespace or end of text. It is intentionally naive: no abbreviation
// or locale awareness. Abbreviations like "Dr. Smith" therefore split.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	runes := []rune(text)

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for i, r := range runes {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
				flush()
			}
		}
	}
	flush()
	return sentences
}
