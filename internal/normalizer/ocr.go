package normalizer

import (
	"regexp"
	"strings"
)

var (
	// A run of 4+ single letters each separated by one space is a token
	// broken apart by per-glyph extraction ("m a c h i n e").
	spacedWordRe = regexp.MustCompile(`\b([a-zA-Z] ){3,}[a-zA-Z]\b`)

	// A word split across a line break with a trailing hyphen
	// ("ma-\nchine").
	hyphenWrapRe = regexp.MustCompile(`(\w)-\s*\n\s*(\w)`)
)

// Stage 7: repair OCR and PDF extraction artifacts: spaced-out words and
// hyphenated line-wrap breaks.
func repairOCRArtifacts(text string) string {
	text = spacedWordRe.ReplaceAllStringFunc(text, func(m string) string {
		return strings.ReplaceAll(m, " ", "")
	})
	text = hyphenWrapRe.ReplaceAllString(text, "$1$2")
	return text
}

var (
	spaceBeforeHyphenRe = regexp.MustCompile(`(\w)\s+-(\w)`)
	spaceAfterHyphenRe  = regexp.MustCompile(`(\w)-\s+(\w)`)
)

// Stage 9: remove whitespace directly adjacent to a hyphen between two
// alphanumeric characters ("step -by-step" -> "step-by-step").
func repairSpacedHyphens(text string) string {
	text = spaceBeforeHyphenRe.ReplaceAllString(text, "$1-$2")
	text = spaceAfterHyphenRe.ReplaceAllString(text, "$1-$2")
	return text
}
