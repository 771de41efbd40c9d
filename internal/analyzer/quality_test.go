package analyzer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starfeel/star/internal/model"
)

func TestAssessQuality(t *testing.T) {
	q := mustDefault(t).Quality()
	advice := func(approaches ...string) ([]string, []string) {
		var s []string
		for _, a := range approaches {
			s = append(s, q.Suggestions[a])
		}
		return s, approaches
	}
	tests := []struct {
		name       string
		length     int
		matches    int
		scores     [len(model.Categories)]float64
		category   string
		reliable   string
		approaches []string
	}{
		{"short with keywords", 10, 2, [4]float64{0.7, 0, 0, 0}, model.TextShort, model.ReliabilityMedium,
			[]string{model.ApproachInteractive}},
		{"short without keywords", 5, 0, [4]float64{}, model.TextShort, model.ReliabilityVeryLow,
			[]string{model.ApproachInteractive, model.ApproachGuided, model.ApproachManual}},
		{"normal", 50, 3, [4]float64{0.6, 0.3, 0, 0}, model.TextNormal, model.ReliabilityMedium, nil},
		{"normal but weak", 50, 1, [4]float64{0.05, 0, 0, 0}, model.TextNormal, model.ReliabilityVeryLow,
			[]string{model.ApproachManual}},
		{"long and mixed", 250, 6, [4]float64{0.6, 0.5, 0.4, 0.1}, model.TextLong, model.ReliabilityMedium,
			[]string{model.ApproachSegment}},
		{"long and focused", 250, 6, [4]float64{0.6, 0.5, 0.1, 0}, model.TextLong, model.ReliabilityMedium, nil},
		{"boundaries are normal", 15, 1, [4]float64{0.5, 0, 0, 0}, model.TextNormal, model.ReliabilityMedium, nil},
		{"two hundred is normal", 200, 1, [4]float64{0.5, 0, 0, 0}, model.TextNormal, model.ReliabilityMedium, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := model.Quality{TextCategory: tt.category, Reliability: tt.reliable}
			if len(tt.approaches) > 0 {
				want.Suggestions, want.Alternatives = advice(tt.approaches...)
			}
			got := assessQuality(tt.length, tt.matches, tt.scores, q)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("assessQuality() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDetectPatterns(t *testing.T) {
	a := newAnalyzer(t, nil)
	tests := []struct {
		text string
		want []string
	}{
		{"ありがとう、とても感謝している！", []string{"感嘆表現", "強調表現", "感謝表現", "FEEL要素あり"}},
		{"できた", []string{"達成表現"}},
		{"感動した", []string{"FEEL要素あり"}},
		{"xyz", nil},
	}
	for _, tt := range tests {
		res, err := a.Analyze(tt.text)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(tt.want, res.Patterns); diff != "" {
			t.Errorf("Analyze(%q).Patterns (-want +got):\n%s", tt.text, diff)
		}
	}
}

func TestResultQuality(t *testing.T) {
	a := newAnalyzer(t, nil)

	res, err := a.Analyze("xyz123")
	if err != nil {
		t.Fatal(err)
	}
	if res.Quality.TextCategory != model.TextShort || res.Quality.Reliability != model.ReliabilityVeryLow {
		t.Errorf("Quality = %+v, want short and very_low", res.Quality)
	}
	want := []string{model.ApproachInteractive, model.ApproachGuided, model.ApproachManual}
	if diff := cmp.Diff(want, res.Quality.Alternatives); diff != "" {
		t.Errorf("Alternatives (-want +got):\n%s", diff)
	}

	res, err = a.Analyze("美味しい料理を作れて嬉しいし、友達にも喜んでもらえて感謝している")
	if err != nil {
		t.Fatal(err)
	}
	if res.Quality.TextCategory != model.TextNormal || res.Quality.Reliability != model.ReliabilityMedium {
		t.Errorf("Quality = %+v, want normal and medium", res.Quality)
	}
	if len(res.Quality.Suggestions) != 0 {
		t.Errorf("Suggestions = %q, want none", res.Quality.Suggestions)
	}
}
