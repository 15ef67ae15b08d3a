package normalizer

import (
	"regexp"
	"strings"
	"unicode"
)

// Common LaTeX command tokens and their readable replacements. Order
// matters for commands that share a prefix: \infty and \int must be tried
// before \in.
var latexSymbols = []struct{ old, new string }{
	{`\alpha`, "alpha"},
	{`\beta`, "beta"},
	{`\gamma`, "gamma"},
	{`\delta`, "delta"},
	{`\epsilon`, "epsilon"},
	{`\theta`, "theta"},
	{`\lambda`, "lambda"},
	{`\mu`, "mu"},
	{`\sigma`, "sigma"},
	{`\pi`, "pi"},
	{`\omega`, "omega"},
	{`\infty`, "infinity"},
	{`\partial`, "partial"},
	{`\nabla`, "nabla"},
	{`\sum`, "sum"},
	{`\prod`, "product"},
	{`\int`, "integral"},
	{`\sqrt`, "sqrt"},
	{`\approx`, "approximately"},
	{`\neq`, "!="},
	{`\leq`, "<="},
	{`\geq`, ">="},
	{`\rightarrow`, "->"},
	{`\leftarrow`, "<-"},
	{`\Rightarrow`, "=>"},
	{`\in`, "in"},
	{`\notin`, "not in"},
	{`\subset`, "subset of"},
	{`\times`, "x"},
	{`\cdot`, "*"},
	{`\ldots`, "..."},
	{`\dots`, "..."},
}

var latexReplacer = buildReplacer(latexSymbols)

var (
	fracRe    = regexp.MustCompile(`\\frac\{([^}]*)\}\{([^}]*)\}`)
	wrapCmdRe = regexp.MustCompile(`\\(?:textbf|textit|text|emph|mathrm|mathbf)\{([^}]*)\}`)
	supRe     = regexp.MustCompile(`\^\{([^}]*)\}`)
	subRe     = regexp.MustCompile(`_\{([^}]*)\}`)
	cmdRe     = regexp.MustCompile(`\\[a-zA-Z]+\s*`)
)

// Stage 11: convert common LaTeX notation to readable plaintext.
func cleanLaTeX(text string) string {
	text = latexReplacer.Replace(text)
	text = fracRe.ReplaceAllString(text, "($1/$2)")
	text = wrapCmdRe.ReplaceAllString(text, "$1")
	text = supRe.ReplaceAllString(text, "^$1")
	text = subRe.ReplaceAllString(text, "_$1")
	text = stripInlineMath(text)
	text = cmdRe.ReplaceAllString(text, " ")
	text = removeStrayBraces(text)
	return text
}

// stripInlineMath drops single-$ inline math delimiters while leaving
// $$ display-math delimiters alone.
func stripInlineMath(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	i := 0
	for i < len(text) {
		c := text[i]
		if c != '$' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 < len(text) && text[i+1] == '$' {
			b.WriteString("$$")
			i += 2
			continue
		}
		j := strings.IndexByte(text[i+1:], '$')
		if j < 0 {
			b.WriteByte(c)
			i++
			continue
		}
		end := i + 1 + j
		// The closing delimiter must also be a single $.
		if end+1 < len(text) && text[end+1] == '$' {
			b.WriteByte(c)
			i++
			continue
		}
		inner := text[i+1 : end]
		if strings.TrimSpace(inner) == "" {
			b.WriteByte(c)
			i++
			continue
		}
		b.WriteString(inner)
		i = end + 1
	}
	return b.String()
}

// removeStrayBraces drops braces left over from LaTeX markup: a brace is
// removed only when neither neighbor is a word character, so sub/superscript
// braces handled earlier and braces inside words survive.
func removeStrayBraces(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))
	for i, r := range runes {
		if r == '{' || r == '}' {
			prevWord := i > 0 && isWordRune(runes[i-1])
			nextWord := i+1 < len(runes) && isWordRune(runes[i+1])
			if !prevWord && !nextWord {
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
