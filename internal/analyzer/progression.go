package analyzer

import (
	"strings"

	"github.com/starfeel/star/internal/model"
)

// connectives start a new clause when tracking how emotion shifts.
var connectives = []string{"けれど", "しかし", "そして", "そこで", "でも", "また"}

type clause struct {
	start, end int
}

// splitClauses cuts the text at punctuation and connectives. Connectives are
// dropped from the clause text.
func splitClauses(runes []rune) []clause {
	var out []clause
	start := 0
	for i := 0; i < len(runes); {
		r := runes[i]
		if r == '、' || r == '。' || r == '!' || r == '?' || r == '\n' {
			out = append(out, clause{start, i})
			i++
			start = i
			continue
		}
		if n := markerAt(runes, i, connectives); n > 0 {
			out = append(out, clause{start, i})
			i += n
			start = i
			continue
		}
		i++
	}
	return append(out, clause{start, len(runes)})
}

// progression reports the dominant category of every clause with at least
// one keyword hit. Clauses shorter than two characters are skipped.
func progression(runes []rune, keywords [len(model.Categories)][]model.Match) []model.ClauseEmotion {
	var out []model.ClauseEmotion
	for pos, cl := range splitClauses(runes) {
		text := strings.TrimSpace(string(runes[cl.start:cl.end]))
		if len([]rune(text)) < 2 {
			continue
		}
		var hits [len(model.Categories)]int
		for i, matches := range keywords {
			for _, m := range matches {
				if m.Offset >= cl.start && m.Offset+m.Length <= cl.end {
					hits[i]++
				}
			}
		}
		best := 0
		for i := 1; i < len(hits); i++ {
			if hits[i] > hits[best] {
				best = i
			}
		}
		if hits[best] == 0 {
			continue
		}
		out = append(out, model.ClauseEmotion{
			Position: pos,
			Text:     text,
			Dominant: model.Categories[best],
			Hits:     hits[best],
		})
	}
	return out
}
