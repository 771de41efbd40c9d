package analyzer

import (
	"math"
	"strings"

	"github.com/starfeel/star/internal/lexicon"
)

// quantifyFeel measures emotional intensity from exclamation runs and FEEL
// expressions. Each run counts up to MaxRun marks; the total saturates at
// the ceiling.
func quantifyFeel(runes []rune, text string, f lexicon.Feel) (float64, []string) {
	var (
		total      float64
		indicators []string
	)
	for i := 0; i < len(runes); {
		if runes[i] != '!' {
			i++
			continue
		}
		j := i
		for j < len(runes) && runes[j] == '!' {
			j++
		}
		run := j - i
		total += f.ExclamationIncrement * float64(min(run, f.MaxRun))
		indicators = append(indicators, string(runes[i:j]))
		i = j
	}

	for _, expr := range f.Expressions {
		if n := strings.Count(text, expr); n > 0 {
			total += f.ExpressionIncrement * float64(n)
			indicators = append(indicators, expr)
		}
	}
	return math.Min(total, f.Ceiling), indicators
}
