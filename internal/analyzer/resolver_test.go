package analyzer

import (
	"testing"

	"github.com/starfeel/star/internal/lexicon"
	"github.com/starfeel/star/internal/model"
)

func TestResolve(t *testing.T) {
	lex, err := lexicon.Default()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name      string
		raw       [len(model.Categories)]float64
		primary   model.Category
		tier      model.Tier
		ambiguous bool
	}{
		{"all zero", [4]float64{}, model.Sense, model.TierLow, true},
		{"exact tie", [4]float64{0, 3, 3, 0}, model.Think, model.TierMedium, true},
		{"clear act", [4]float64{0, 0, 6, 0}, model.Act, model.TierHigh, false},
		{"close call", [4]float64{2, 0, 0, 2.1}, model.Relate, model.TierMedium, true},
		{"weak", [4]float64{0.2, 0, 0, 0}, model.Sense, model.TierLow, true},
	}
	for _, tt := range tests {
		r := resolve(tt.raw, lex)
		if r.primary != tt.primary || r.tier != tt.tier || r.ambiguous != tt.ambiguous {
			t.Errorf("%s: resolve() = %s/%s/%v, want %s/%s/%v", tt.name,
				r.primary, r.tier, r.ambiguous, tt.primary, tt.tier, tt.ambiguous)
		}
		for i, s := range r.scores {
			if s < 0 || s >= 1 {
				t.Errorf("%s: score[%d] = %v out of [0,1)", tt.name, i, s)
			}
		}
	}
}

func TestResolvePreservesOrder(t *testing.T) {
	lex, err := lexicon.Default()
	if err != nil {
		t.Fatal(err)
	}
	r := resolve([4]float64{1, 2, 3, 4}, lex)
	for i := 1; i < len(r.scores); i++ {
		if r.scores[i] <= r.scores[i-1] {
			t.Errorf("scores %v not increasing", r.scores)
		}
	}
	if len(r.mixed) != 4 || r.mixed[0].Category != model.Relate || r.mixed[3].Rank != 4 {
		t.Errorf("mixed = %+v", r.mixed)
	}
}
