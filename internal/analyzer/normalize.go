package analyzer

import (
	"strings"
	"unicode"

	"github.com/starfeel/star/internal/lexicon"
	"github.com/starfeel/star/internal/model"
)

// normalize folds the input the same way lexicon keywords were folded and
// collapses whitespace: runs of blanks become one space, blank lines vanish.
func normalize(s string) string {
	s = lexicon.Fold(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// span is a token located in the normalized text. start is -1 when the
// token surface could not be found in order.
type span struct {
	tok        model.Token
	start, end int
}

func (s span) aligned() bool { return s.start >= 0 }

// alignTokens locates each token surface by searching forward from the end
// of the previous aligned token.
func alignTokens(runes []rune, tokens []model.Token) []span {
	if len(tokens) == 0 {
		return nil
	}
	spans := make([]span, len(tokens))
	cursor := 0
	for i, tok := range tokens {
		spans[i] = span{tok: tok, start: -1, end: -1}
		surface := []rune(tok.Surface)
		if at := indexRunes(runes, surface, cursor); at >= 0 {
			spans[i].start = at
			spans[i].end = at + len(surface)
			cursor = spans[i].end
		}
	}
	return spans
}

// spanAt returns the aligned token covering rune offset pos.
func spanAt(spans []span, pos int) (span, bool) {
	for _, s := range spans {
		if s.aligned() && s.start <= pos && pos < s.end {
			return s, true
		}
	}
	return span{}, false
}

func indexRunes(hay, needle []rune, from int) int {
	if len(needle) == 0 {
		return -1
	}
	for i := from; i+len(needle) <= len(hay); i++ {
		if hasPrefixAt(hay, i, needle) {
			return i
		}
	}
	return -1
}

func hasPrefixAt(hay []rune, at int, needle []rune) bool {
	if at < 0 || at+len(needle) > len(hay) {
		return false
	}
	for j, r := range needle {
		if hay[at+j] != r {
			return false
		}
	}
	return true
}

func hasSuffixRunes(hay, needle []rune) bool {
	return hasPrefixAt(hay, len(hay)-len(needle), needle)
}

func isClauseBreak(r rune) bool {
	switch r {
	case '、', '。', '!', '?', ',', '.', '\n':
		return true
	}
	return false
}

func isSentenceBreak(r rune) bool {
	switch r {
	case '。', '!', '?', '\n':
		return true
	}
	return false
}

// isNominal reports whether r can end a noun in text without tokens.
func isNominal(r rune) bool {
	return unicode.Is(unicode.Han, r) || unicode.Is(unicode.Katakana, r) || r == 'ー'
}

// clauseIDs labels every rune with the index of its clause; break runes get -1.
func clauseIDs(runes []rune) []int {
	ids := make([]int, len(runes))
	clause := 0
	for i, r := range runes {
		if isClauseBreak(r) {
			ids[i] = -1
			clause++
			continue
		}
		ids[i] = clause
	}
	return ids
}

// occurrence is a non-overlapping hit of a word in the text.
type occurrence struct {
	word       string
	start, end int
	value      float64
}

// findIntensity scans for intensity words, longest first at each position.
func findIntensity(runes []rune, words []lexicon.Intensity) []occurrence {
	var out []occurrence
	for i := 0; i < len(runes); {
		matched := false
		for _, w := range words {
			wr := []rune(w.Word)
			if hasPrefixAt(runes, i, wr) {
				out = append(out, occurrence{word: w.Word, start: i, end: i + len(wr), value: w.Multiplier})
				i += len(wr)
				matched = true
				break
			}
		}
		if !matched {
			i++
		}
	}
	return out
}

// mask reports for each rune whether an occurrence covers it.
func mask(n int, occs []occurrence) []bool {
	m := make([]bool, n)
	for _, o := range occs {
		for i := o.start; i < o.end && i < n; i++ {
			m[i] = true
		}
	}
	return m
}
