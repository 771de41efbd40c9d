package analyzer

import (
	"slices"
	"strings"

	"github.com/starfeel/star/internal/lexicon"
	"github.com/starfeel/star/internal/model"
)

// assessQuality grades a result by text length, match count and the
// confidence scores, and suggests what would improve it.
func assessQuality(length, matches int, scores [len(model.Categories)]float64, q lexicon.Quality) model.Quality {
	out := model.Quality{TextCategory: model.TextNormal, Reliability: model.ReliabilityMedium}
	suggest := func(approach string) {
		out.Suggestions = append(out.Suggestions, q.Suggestions[approach])
		out.Alternatives = append(out.Alternatives, approach)
	}

	switch {
	case length < q.ShortBelow:
		out.TextCategory = model.TextShort
		if matches == 0 {
			out.Reliability = model.ReliabilityLow
		}
		suggest(model.ApproachInteractive)
	case length > q.LongAbove:
		out.TextCategory = model.TextLong
		strong := 0
		for _, s := range scores {
			if s > q.MixedCut {
				strong++
			}
		}
		if strong > q.MixedCount {
			suggest(model.ApproachSegment)
		}
	}

	if matches == 0 {
		suggest(model.ApproachGuided)
	}
	if slices.Max(scores[:]) < q.VeryLowBelow {
		out.Reliability = model.ReliabilityVeryLow
		suggest(model.ApproachManual)
	}
	return out
}

// detectPatterns names the emotion patterns present in the normalized text,
// in document order.
func detectPatterns(normalized string, feel float64, patterns []lexicon.EmotionPattern) []string {
	var out []string
	for _, p := range patterns {
		hit := p.OnFeel && feel > 0
		for _, w := range p.Words {
			if hit {
				break
			}
			hit = strings.Contains(normalized, w)
		}
		if hit {
			out = append(out, p.Name)
		}
	}
	return out
}
