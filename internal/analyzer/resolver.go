package analyzer

import (
	"sort"

	"github.com/starfeel/star/internal/lexicon"
	"github.com/starfeel/star/internal/model"
)

// resolution is the decision drawn from the four raw scores.
type resolution struct {
	scores    [len(model.Categories)]float64
	primary   model.Category
	tier      model.Tier
	ambiguous bool
	mixed     []model.MixedEmotion
}

// resolve maps each raw score to raw/(raw+scale), which is 0 for 0, below 1
// for any input and keeps the order of raw scores. Exact ties go to the
// earlier category in model.Categories.
func resolve(raw [len(model.Categories)]float64, lex *lexicon.Lexicon) resolution {
	var r resolution
	scale := lex.ScoreScale()
	for i, v := range raw {
		if v > 0 {
			r.scores[i] = v / (v + scale)
		}
	}

	best, second := 0, -1
	for i := 1; i < len(r.scores); i++ {
		if r.scores[i] > r.scores[best] {
			best = i
		}
	}
	for i := range r.scores {
		if i != best && (second < 0 || r.scores[i] > r.scores[second]) {
			second = i
		}
	}
	r.primary = model.Categories[best]
	top := r.scores[best]

	r.ambiguous = top == 0 || top-r.scores[second] < lex.AmbiguityThreshold()

	th := lex.Thresholds()
	switch {
	case top > 0 && top >= th.High:
		r.tier = model.TierHigh
	case top > 0 && top >= th.Medium:
		r.tier = model.TierMedium
	default:
		r.tier = model.TierLow
	}

	r.mixed = mixedEmotions(r.scores, th.Low)
	return r
}

// mixedEmotions ranks the categories whose confidence reaches cut. It
// returns nil unless at least two qualify.
func mixedEmotions(scores [len(model.Categories)]float64, cut float64) []model.MixedEmotion {
	var out []model.MixedEmotion
	for i, s := range scores {
		if s > 0 && s >= cut {
			out = append(out, model.MixedEmotion{Category: model.Categories[i], Score: s})
		}
	}
	if len(out) < 2 {
		return nil
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	for i := range out {
		out[i].Rank = i + 1
		out[i].Ratio = out[i].Score / out[0].Score
	}
	return out
}
