package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/starfeel/star/internal/lexicon"
	"github.com/starfeel/star/internal/model"
)

// categoryScore is the working state of one category during a call.
type categoryScore struct {
	raw        float64
	matches    []model.Match
	steps      []string
	multiplier float64
}

// candidate is a keyword occurrence before modifiers are applied.
type candidate struct {
	entry      lexicon.Entry
	start, end int
	source     string
}

func (c candidate) length() int { return c.end - c.start }

// scorer holds the per-call view of the text shared by every category.
type scorer struct {
	lex       *lexicon.Lexicon
	runes     []rune
	spans     []span
	clauses   []int
	intensity []occurrence

	// kept and sentences are filled by score.
	kept      []candidate
	sentences [len(model.Categories)]model.SentenceType
}

func (s *scorer) score() [len(model.Categories)]categoryScore {
	s.kept = s.candidates()

	// A category's own keywords do not take part in deciding the sentence
	// type it is weighted by, so one more occurrence cannot flip it.
	markers := s.lex.SentenceMarkers()
	for _, cat := range model.Categories {
		s.sentences[cat.Index()] = classifySentence(s.runes, s.spans, markers, s.intensity, s.covered(cat))
	}

	var out [len(model.Categories)]categoryScore
	for _, c := range s.kept {
		i := c.entry.Category.Index()
		m, step := s.apply(c)
		out[i].matches = append(out[i].matches, m)
		out[i].steps = append(out[i].steps, step)
	}

	weights := s.lex.ContextWeights()
	for i := range out {
		cs := &out[i]
		cs.multiplier = 1
		distinct := make(map[string]bool)
		for _, m := range cs.matches {
			cs.raw += m.Contribution
			distinct[m.Keyword] = true
		}
		if len(distinct) >= 2 {
			cs.multiplier = weights.MultipleKeywordBonus
			cs.raw *= cs.multiplier
			cs.steps = append(cs.steps, fmt.Sprintf("%d distinct keywords ×%.2f", len(distinct), cs.multiplier))
		}
	}
	return out
}

// candidates collects every keyword occurrence of every category, adds
// base-form hits for conjugated tokens, and drops hits nested in a longer
// hit. The result is ordered by position.
func (s *scorer) candidates() []candidate {
	var all []candidate
	for _, cat := range model.Categories {
		for _, e := range s.lex.Entries(cat) {
			kw := []rune(e.Keyword)
			for at := indexRunes(s.runes, kw, 0); at >= 0; at = indexRunes(s.runes, kw, at+len(kw)) {
				all = append(all, candidate{entry: e, start: at, end: at + len(kw), source: model.SourceText})
			}
		}
	}

	for _, sp := range s.spans {
		if !sp.aligned() || sp.tok.BaseForm == "" || sp.tok.BaseForm == sp.tok.Surface {
			continue
		}
		e, ok := s.lex.Lookup(lexicon.Fold(sp.tok.BaseForm))
		if !ok || overlapsAny(all, sp.start, sp.end) {
			continue
		}
		all = append(all, candidate{entry: e, start: sp.start, end: sp.end, source: model.SourceBaseForm})
	}

	kept := all[:0:0]
	for _, c := range all {
		if !nested(c, all) {
			kept = append(kept, c)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].start != kept[j].start {
			return kept[i].start < kept[j].start
		}
		return kept[i].length() > kept[j].length()
	})
	return kept
}

// covered marks the runes under the kept candidates of cat.
func (s *scorer) covered(cat model.Category) []bool {
	hidden := make([]bool, len(s.runes))
	for _, c := range s.kept {
		if c.entry.Category != cat {
			continue
		}
		for i := c.start; i < c.end; i++ {
			hidden[i] = true
		}
	}
	return hidden
}

func overlapsAny(all []candidate, start, end int) bool {
	for _, c := range all {
		if c.start < end && start < c.end {
			return true
		}
	}
	return false
}

// nested reports whether c lies inside a strictly longer candidate.
func nested(c candidate, all []candidate) bool {
	for _, o := range all {
		if o.length() > c.length() && o.start <= c.start && c.end <= o.end {
			return true
		}
	}
	return false
}

// apply computes the contribution of one candidate and the trace line
// describing it.
func (s *scorer) apply(c candidate) (model.Match, string) {
	weights := s.lex.ContextWeights()
	m := model.Match{
		Keyword:        c.entry.Keyword,
		Group:          c.entry.Group,
		Offset:         c.start,
		Length:         c.length(),
		Source:         c.source,
		BaseWeight:     c.entry.Weight,
		POSWeight:      1,
		Intensity:      1,
		SentenceFactor: 1,
	}
	var step strings.Builder
	fmt.Fprintf(&step, "%s@%d base %.2f", m.Keyword, m.Offset, m.BaseWeight)

	if sp, ok := spanAt(s.spans, c.start); ok {
		m.POS = sp.tok.POS
		if c.entry.POS == "" || c.entry.POS == m.POS {
			if w, ok := s.lex.POSWeight(m.POS); ok {
				m.POSWeight = w
			}
		}
		fmt.Fprintf(&step, " ×pos(%s) %.2f", m.POS, m.POSWeight)
	}
	contribution := m.BaseWeight * m.POSWeight

	if occ, ok := s.nearestIntensity(c); ok {
		m.IntensityWord = occ.word
		m.Intensity = occ.value
		contribution *= m.Intensity
		fmt.Fprintf(&step, " ×intensity(%s) %.2f", occ.word, occ.value)
	}

	if marker, ok := s.negation(c); ok {
		m.NegationMarker = marker
		m.Negated = true
		contribution *= weights.NegationPenalty
		fmt.Fprintf(&step, " ×negation(%s) %.2f", marker, weights.NegationPenalty)
	}

	if s.emphasized(c) {
		m.Emphasized = true
		contribution *= weights.EmphasisBonus
		fmt.Fprintf(&step, " ×emphasis %.2f", weights.EmphasisBonus)
	}

	if sentence := s.sentences[c.entry.Category.Index()]; sentence != model.SentenceUnknown {
		if c.entry.Category.ExpectedSentenceType() == sentence {
			m.SentenceFactor = weights.SentenceTypeMatchBonus
		} else {
			m.SentenceFactor = weights.SentenceTypeMismatchPenalty
		}
		contribution *= m.SentenceFactor
		fmt.Fprintf(&step, " ×sentence(%s) %.2f", sentence, m.SentenceFactor)
	}

	m.Contribution = contribution
	fmt.Fprintf(&step, " = %.3f", contribution)
	return m, step.String()
}

// nearestIntensity finds the closest intensity word before the match in the
// same clause, or failing that the closest one after it in the same clause.
func (s *scorer) nearestIntensity(c candidate) (occurrence, bool) {
	clause := s.clauses[c.start]
	var (
		before, after occurrence
		hasBefore     bool
		hasAfter      bool
	)
	for _, occ := range s.intensity {
		if s.clauses[occ.start] != clause || s.clauses[occ.end-1] != clause {
			continue
		}
		switch {
		case occ.end <= c.start:
			if !hasBefore || occ.end > before.end {
				before, hasBefore = occ, true
			}
		case occ.start >= c.end:
			if !hasAfter || occ.start < after.start {
				after, hasAfter = occ, true
			}
		}
	}
	if hasBefore {
		return before, true
	}
	return after, hasAfter
}

// negation looks for a marker beginning at one of the negation_window
// positions right after the match, without crossing a clause break. Markers
// inside another keyword do not count.
func (s *scorer) negation(c candidate) (string, bool) {
	window := s.lex.NegationWindow()
	for at := c.end; at < c.end+window && at < len(s.runes); at++ {
		if isClauseBreak(s.runes[at]) {
			return "", false
		}
		for _, marker := range s.lex.NegationMarkers() {
			mr := []rune(marker)
			if hasPrefixAt(s.runes, at, mr) && !overlapsAny(s.kept, at, at+len(mr)) {
				return marker, true
			}
		}
	}
	return "", false
}

// emphasized reports whether the clause holding the match is closed by an
// exclamation mark.
func (s *scorer) emphasized(c candidate) bool {
	for at := c.end; at < len(s.runes); at++ {
		if isClauseBreak(s.runes[at]) {
			return s.runes[at] == '!'
		}
	}
	return false
}
