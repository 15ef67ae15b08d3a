package normalizer

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Stage 3: Unicode NFKC normalization. Folds ligatures (ﬁ -> fi),
// superscripts, fullwidth forms and symbol compatibility characters to
// their plain equivalents.
func normalizeUnicode(text string) string {
	return norm.NFKC.String(text)
}

// Smart and curly quotes fold to straight ASCII quotes.
var quoteFixes = []struct{ old, new string }{
	{"‘", "'"},  // left single
	{"’", "'"},  // right single
	{"‚", "'"},  // single low-9
	{"‛", "'"},  // single high-reversed-9
	{"“", "\""}, // left double
	{"”", "\""}, // right double
	{"„", "\""}, // double low-9
	{"‟", "\""}, // double high-reversed-9
	{"‹", "'"},  // single left angle
	{"›", "'"},  // single right angle
	{"«", "\""}, // left guillemet
	{"»", "\""}, // right guillemet
}

// Dash variants fold to a plain hyphen. Em dashes and horizontal bars get a
// space-padded hyphen so adjacent words stay separated.
var dashFixes = []struct{ old, new string }{
	{"‒", "-"},   // figure dash
	{"–", "-"},   // en dash
	{"—", " - "}, // em dash
	{"―", " - "}, // horizontal bar
	{"−", "-"},   // minus sign
	{"﹘", "-"},   // small em dash
	{"﹣", "-"},   // small hyphen-minus
	{"－", "-"},   // fullwidth hyphen-minus
}

// Bullet glyphs fold to a dash.
var bulletFixes = []struct{ old, new string }{
	{"•", "-"}, // bullet
	{"‣", "-"}, // triangular bullet
	{"◦", "-"}, // white bullet
	{"⁃", "-"}, // hyphen bullet
	{"▪", "-"}, // black small square
	{"●", "-"}, // black circle
	{"○", "-"}, // white circle
	{"■", "-"}, // black square
	{"□", "-"}, // white square
	{"▶", "-"}, // black right triangle
	{"▸", "-"}, // small black right triangle
	{"➢", "-"}, // arrowhead
}

// Remaining typographic symbols: ellipsis, non-breaking space, and the
// zero-width family.
var miscFixes = []struct{ old, new string }{
	{"…", "..."}, // ellipsis
	{" ", " "},   // non-breaking space
	{"​", ""},    // zero-width space
	{"‌", ""},    // zero-width non-joiner
	{"‍", ""},    // zero-width joiner
	{"\uFEFF", ""}, // zero-width no-break space
}

var typographyReplacer = func() *strings.Replacer {
	var pairs []struct{ old, new string }
	pairs = append(pairs, quoteFixes...)
	pairs = append(pairs, dashFixes...)
	pairs = append(pairs, bulletFixes...)
	pairs = append(pairs, miscFixes...)
	return buildReplacer(pairs)
}()

// Stage 4: fold typographic glyphs to a fixed ASCII-compatible set.
func foldTypography(text string) string {
	return typographyReplacer.Replace(text)
}
