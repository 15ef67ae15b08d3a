// Package normalizer repairs and normalizes raw extracted document text
// before chunking. The pipeline is a fixed, ordered list of pure
// string -> string stages; every stage is total over arbitrary Unicode
// input and never fails. Unexpected characters pass through unchanged.
package normalizer

import (
	"regexp"
	"strings"
	"unicode"
)

// Normalizer runs the full repair pipeline. The zero value is not usable;
// construct with New. A nil dictionary disables the broken-word repair
// stage without affecting the rest of the pipeline.
type Normalizer struct {
	dict   *Dictionary
	stages []func(string) string
}

// New builds a Normalizer with the fixed stage order. Order matters: later
// stages assume the invariants established by earlier ones (e.g. the OCR
// stages rely on whitespace runs already being collapsed).
func New(dict *Dictionary) *Normalizer {
	n := &Normalizer{dict: dict}
	n.stages = []func(string) string{
		fixEncodingArtifacts,
		removeControlChars,
		normalizeUnicode,
		foldTypography,
		normalizeWhitespace,
		reducePunctuation,
		repairOCRArtifacts,
		n.repairBrokenWords,
		repairSpacedHyphens,
		removeHeaderFooterNoise,
		cleanLaTeX,
		tagURLsAndEmails,
		// LaTeX command removal and noise-line dropping can leave doubled
		// spaces or newline runs behind; re-running the whitespace and
		// punctuation stages restores their invariants and makes
		// Normalize idempotent.
		normalizeWhitespace,
		reducePunctuation,
	}
	return n
}

// Normalize applies the full pipeline. It is a total function: it never
// returns an error and unrecoverable bytes are dropped, not surfaced.
func (n *Normalizer) Normalize(text string) string {
	for _, stage := range n.stages {
		text = stage(text)
	}
	return text
}

// Known mojibake sequences from double-encoded UTF-8. The targets are the
// intended characters; the typography stage folds them to ASCII afterwards.
// The right-double-quote sequence ends in U+009D, a control character, so
// everything here is spelled with escapes.
var encodingFixes = []struct{ old, new string }{
	{"â€™", "'"},            // mojibake of U+2019
	{"â€˜", "'"},            // mojibake of U+2018
	{"â€œ", "\""},           // mojibake of U+201C
	{"â€", "\""},           // mojibake of U+201D
	{"â€“", "–"},       // mojibake of en dash
	{"â€”", "—"},       // mojibake of em dash
	{"â€¦", "…"},       // mojibake of ellipsis
	{"Ã©", "é"},             // mojibake of é
	{"Ã¨", "è"},             // mojibake of è
	{"Ã ", "à"},             // mojibake of à
	{"Ã§", "ç"},             // mojibake of ç
	{"Ã±", "ñ"},             // mojibake of ñ
	{"Ã¶", "ö"},             // mojibake of ö
	{"Ã¼", "ü"},             // mojibake of ü
	{"\uFEFF", ""},                         // byte-order mark
	{"\x00", ""},                           // NUL bytes
}

var encodingReplacer = buildReplacer(encodingFixes)

func buildReplacer(pairs []struct{ old, new string }) *strings.Replacer {
	args := make([]string, 0, len(pairs)*2)
	for _, p := range pairs {
		args = append(args, p.old, p.new)
	}
	return strings.NewReplacer(args...)
}

// Stage 1: literal substitution of known mojibake byte sequences and
// removal of BOMs and NUL bytes.
func fixEncodingArtifacts(text string) string {
	return encodingReplacer.Replace(text)
}

// Stage 2: strip all Unicode control-category characters except newline
// and tab.
func removeControlChars(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.Is(unicode.Cc, r) {
			return -1
		}
		return r
	}, text)
}

var (
	spaceRunRe   = regexp.MustCompile(`[^\S\n]+`)
	newlineRunRe = regexp.MustCompile(`\n{3,}`)
)

// Stage 5: collapse runs of non-newline whitespace to a single space,
// cap consecutive newlines at two, and trim the whole text.
func normalizeWhitespace(text string) string {
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = newlineRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

var (
	punctRunRe = regexp.MustCompile(`([!?.]){2,}`)
	sepRunRe   = regexp.MustCompile(`[-=_]{3,}`)
)

// Stage 6: collapse repeated sentence punctuation and long separator runs.
func reducePunctuation(text string) string {
	text = punctRunRe.ReplaceAllString(text, "$1")
	text = sepRunRe.ReplaceAllString(text, "---")
	return text
}

var noiseLineRes = []*regexp.Regexp{
	regexp.MustCompile(`^[-\s]*\d{1,4}[-\s]*$`),         // "42", "- 12 -"
	regexp.MustCompile(`^[Pp]age\s+\d+(\s+of\s+\d+)?$`), // "Page 5 of 100"
	regexp.MustCompile(`^\d+\s*\|?\s*$`),                // "5 |"
}

// Stage 10: drop lines that look like page-number headers or footers.
func removeHeaderFooterNoise(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		noise := false
		for _, re := range noiseLineRes {
			if re.MatchString(stripped) {
				noise = true
				break
			}
		}
		if !noise {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
