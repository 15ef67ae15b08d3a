package normalizer

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Dictionary is a static set of known-valid lowercase words used by the
// broken-word repair stage. It is built once at process start and is
// immutable afterwards, so it can be shared freely across concurrent
// normalization calls.
type Dictionary struct {
	words map[string]struct{}
}

// LoadDictionary reads a word list (one word per line, e.g.
// /usr/share/dict/words) into a Dictionary. Tokens shorter than two
// letters are ignored; lookups are case-insensitive.
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()

	words := make(map[string]struct{}, 1<<17)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		w := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if len(w) < 2 {
			continue
		}
		words[w] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word list: %w", err)
	}
	return &Dictionary{words: words}, nil
}

// NewDictionary builds a Dictionary from an explicit word list. Used by
// tests and by callers that carry their own vocabulary.
func NewDictionary(words []string) *Dictionary {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &Dictionary{words: set}
}

// Contains reports whether token is a known word (case-insensitive).
func (d *Dictionary) Contains(token string) bool {
	_, ok := d.words[strings.ToLower(token)]
	return ok
}

// Len returns the number of known words.
func (d *Dictionary) Len() int { return len(d.words) }

// Two adjacent alphabetic fragments of 2+ letters separated by one space.
var fragmentPairRe = regexp.MustCompile(`\b([A-Za-z]{2,}) ([A-Za-z]{2,})\b`)

// Maximum merge passes; merging can expose further mergeable fragments.
const maxRepairPasses = 3

// Stage 8: dictionary-assisted broken-word repair. PDF extractors sometimes
// insert a space mid-word due to glyph positioning ("Struct ures"). Merge
// two adjacent fragments when neither is a known word on its own but the
// concatenation is. Without a dictionary this stage is a no-op.
func (n *Normalizer) repairBrokenWords(text string) string {
	if n.dict == nil || n.dict.Len() == 0 {
		return text
	}
	for pass := 0; pass < maxRepairPasses; pass++ {
		repaired := fragmentPairRe.ReplaceAllStringFunc(text, func(m string) string {
			space := strings.IndexByte(m, ' ')
			left, right := m[:space], m[space+1:]
			if n.dict.Contains(left) || n.dict.Contains(right) {
				return m
			}
			if n.dict.Contains(left + right) {
				return left + right
			}
			return m
		})
		if repaired == text {
			break
		}
		text = repaired
	}
	return text
}
