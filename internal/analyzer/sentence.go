package analyzer

import (
	"github.com/starfeel/star/internal/lexicon"
	"github.com/starfeel/star/internal/model"
)

type marker int

const (
	noMarker marker = iota
	subjectMarker
	objectMarker
)

// decide applies the most recent marker to a predicate. An object marker
// means SOV, a subject marker SV; without one the scan goes on.
func decide(pending marker) (model.SentenceType, bool) {
	switch pending {
	case objectMarker:
		return model.SentenceSOV, true
	case subjectMarker:
		return model.SentenceSV, true
	}
	return "", false
}

// classifySentence scans left to right for subject and object markers and
// decides at the first predicate that follows one. Intensity words such as
// 本当に are masked so their trailing particle is not read as a marker.
//
// Positions set in hidden are read as if their text were absent: the runes
// are cut out and tokens touching them are skipped. A nil hidden classifies
// the whole text.
func classifySentence(runes []rune, spans []span, m lexicon.SentenceMarkers, intensity []occurrence, hidden []bool) model.SentenceType {
	masked := mask(len(runes), intensity)
	for _, s := range spans {
		if s.aligned() {
			return classifyTokens(visibleSpans(spans, hidden), m, masked)
		}
	}
	runes, masked = visibleRunes(runes, masked, hidden)
	return classifyRunes(runes, m, masked)
}

func visibleSpans(spans []span, hidden []bool) []span {
	if hidden == nil {
		return spans
	}
	out := make([]span, 0, len(spans))
	for _, s := range spans {
		if s.aligned() && anySet(hidden[s.start:s.end]) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func visibleRunes(runes []rune, masked, hidden []bool) ([]rune, []bool) {
	if hidden == nil {
		return runes, masked
	}
	vr := make([]rune, 0, len(runes))
	vm := make([]bool, 0, len(masked))
	for i, r := range runes {
		if hidden[i] {
			continue
		}
		vr = append(vr, r)
		vm = append(vm, masked[i])
	}
	return vr, vm
}

func anySet(bits []bool) bool {
	for _, b := range bits {
		if b {
			return true
		}
	}
	return false
}

func classifyTokens(spans []span, m lexicon.SentenceMarkers, masked []bool) model.SentenceType {
	pending := noMarker
	prevPOS := ""
	for _, s := range spans {
		if !s.aligned() || masked[s.start] {
			continue
		}
		surface := s.tok.Surface
		switch {
		case s.tok.POS == "助詞" && contains(m.Subject, surface):
			pending = subjectMarker
		case s.tok.POS == "助詞" && contains(m.Object, surface):
			pending = objectMarker
		case surface == "、" || surface == ",":
			if prevPOS == "名詞" {
				pending = subjectMarker
			}
		case isPredicateToken(s.tok):
			if st, ok := decide(pending); ok {
				return st
			}
		case s.end-s.start == 1 && isSentenceBreak([]rune(surface)[0]):
			pending = noMarker
		}
		prevPOS = s.tok.POS
	}
	return model.SentenceUnknown
}

func isPredicateToken(tok model.Token) bool {
	switch tok.POS {
	case "動詞", "形容詞":
		return true
	case "助動詞":
		base := tok.BaseForm
		if base == "" {
			base = tok.Surface
		}
		return base == "だ" || base == "です"
	}
	return false
}

func classifyRunes(runes []rune, m lexicon.SentenceMarkers, masked []bool) model.SentenceType {
	pending := noMarker
	segStart := 0
	for i := 0; i <= len(runes); i++ {
		if i == len(runes) || isClauseBreak(runes[i]) {
			if isPredicateSegment(runes[segStart:i], masked[segStart:i], m) {
				if st, ok := decide(pending); ok {
					return st
				}
			}
			if i == len(runes) {
				break
			}
			r := runes[i]
			if (r == '、' || r == ',') && i > 0 && !masked[i-1] && isNominal(runes[i-1]) {
				pending = subjectMarker
			}
			if isSentenceBreak(r) {
				pending = noMarker
			}
			segStart = i + 1
			continue
		}

		// Particles only count right after a noun-like character.
		if masked[i] || i == 0 || !isNominal(runes[i-1]) {
			continue
		}
		if n := markerAt(runes, i, m.Subject); n > 0 {
			pending = subjectMarker
			i += n - 1
		} else if n := markerAt(runes, i, m.Object); n > 0 {
			pending = objectMarker
			i += n - 1
		}
	}
	return model.SentenceUnknown
}

// isPredicateSegment reports whether a clause ends like a predicate once
// sentence-final particles are stripped.
func isPredicateSegment(seg []rune, masked []bool, m lexicon.SentenceMarkers) bool {
	end := len(seg)
	for stripped := true; stripped; {
		stripped = false
		for _, p := range m.FinalParticles {
			pr := []rune(p)
			if end > len(pr) && hasSuffixRunes(seg[:end], pr) {
				end -= len(pr)
				stripped = true
			}
		}
	}
	if end == 0 || masked[end-1] {
		return false
	}
	for _, suffix := range m.PredicateSuffixes {
		if hasSuffixRunes(seg[:end], []rune(suffix)) {
			return true
		}
	}
	return false
}

func markerAt(runes []rune, i int, markers []string) int {
	for _, w := range markers {
		wr := []rune(w)
		if hasPrefixAt(runes, i, wr) {
			return len(wr)
		}
	}
	return 0
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
