package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/starfeel/star/internal/model"
)

const barWidth = 20

var interpretations = map[model.Category]string{
	model.Sense:  "Moved through the senses: beauty, taste, scent or comfort carry the text.",
	model.Think:  "Moved by insight: a discovery or new understanding is the source.",
	model.Act:    "Moved by doing: effort, achievement or growth produced the emotion.",
	model.Relate: "Moved by people: affection, gratitude or connection is at the core.",
}

var tierNotes = map[model.Tier]string{
	model.TierHigh:   "High confidence.",
	model.TierMedium: "Medium confidence.",
	model.TierLow:    "Low confidence; more emotional expressions would sharpen the result.",
}

// bar draws a score in [0,1] as a fixed-width bar.
func bar(score float64) string {
	filled := int(score * barWidth)
	filled = max(0, min(filled, barWidth))
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// WriteText renders a human-readable report with a bar per category.
func WriteText(w io.Writer, r model.Result) error {
	var b strings.Builder
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Text:          %s\n", r.Text)
	fmt.Fprintf(&b, "Primary:       %s\n", r.Primary)
	fmt.Fprintf(&b, "Confidence:    %s", r.Tier)
	if r.Ambiguous {
		fmt.Fprint(&b, " (ambiguous)")
	}
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Sentence type: %s\n", r.SentenceType)
	fmt.Fprintf(&b, "Mode:          %s\n", r.Mode)

	fmt.Fprintln(&b, "\nScores:")
	for _, c := range model.Categories {
		fmt.Fprintf(&b, "  %-6s %4.2f %s  raw %.3f\n", c, r.Scores.Get(c), bar(r.Scores.Get(c)), r.RawScores.Get(c))
	}

	fmt.Fprintln(&b, "\nKeywords:")
	found := false
	for _, c := range model.Categories {
		if kws := r.KeywordList(c); len(kws) > 0 {
			fmt.Fprintf(&b, "  %-6s %s\n", c, strings.Join(kws, ", "))
			found = true
		}
	}
	if !found {
		fmt.Fprintln(&b, "  none")
	}

	fmt.Fprintf(&b, "\nFEEL:          %.2f\n", r.Feel)
	if r.Trace != nil && len(r.Trace.FeelIndicators) > 0 {
		fmt.Fprintf(&b, "FEEL signals:  %s\n", strings.Join(r.Trace.FeelIndicators, ", "))
	}
	if len(r.Patterns) > 0 {
		fmt.Fprintf(&b, "Patterns:      %s\n", strings.Join(r.Patterns, ", "))
	}

	if q := r.Quality; q.Reliability != "" {
		fmt.Fprintf(&b, "\nQuality:       %s text, %s reliability\n", q.TextCategory, q.Reliability)
		for i, s := range q.Suggestions {
			if i < len(q.Alternatives) {
				fmt.Fprintf(&b, "  - %s [%s]\n", s, q.Alternatives[i])
			} else {
				fmt.Fprintf(&b, "  - %s\n", s)
			}
		}
	}

	if len(r.MixedEmotions) > 0 {
		fmt.Fprintln(&b, "\nMixed emotions:")
		for _, m := range r.MixedEmotions {
			fmt.Fprintf(&b, "  %d. %-6s %4.2f (x%.2f)\n", m.Rank, m.Category, m.Score, m.Ratio)
		}
	}
	if len(r.Progression) > 0 {
		fmt.Fprintln(&b, "\nProgression:")
		for _, p := range r.Progression {
			fmt.Fprintf(&b, "  [%d] %-6s %s\n", p.Position, p.Dominant, p.Text)
		}
	}
	if r.StructurePattern != "" {
		fmt.Fprintf(&b, "\nPattern:\n  %s\n", r.StructurePattern)
	}

	if note, ok := interpretations[r.Primary]; ok && !(r.Ambiguous && r.Tier == model.TierLow) {
		fmt.Fprintf(&b, "\nInterpretation:\n  %s %s\n", note, tierNotes[r.Tier])
	}

	if r.Trace != nil {
		fmt.Fprintf(&b, "\nTrace:\n  normalized: %s\n", r.Trace.NormalizedText)
		if len(r.Trace.Tokens) > 0 {
			parts := make([]string, len(r.Trace.Tokens))
			for i, t := range r.Trace.Tokens {
				parts[i] = t.Surface + "/" + t.POS
			}
			fmt.Fprintf(&b, "  tokens: %s\n", strings.Join(parts, " "))
		}
		types := make([]string, len(model.Categories))
		for i, c := range model.Categories {
			types[i] = fmt.Sprintf("%s=%s", c, r.Trace.SentenceTypes.Get(c))
		}
		fmt.Fprintf(&b, "  sentence types: %s\n", strings.Join(types, " "))
		for _, c := range model.Categories {
			for _, step := range r.Trace.Steps.Get(c) {
				fmt.Fprintf(&b, "  %-6s %s\n", c, step)
			}
		}
	}
	fmt.Fprintln(&b, rule)

	_, err := io.WriteString(w, b.String())
	return err
}
