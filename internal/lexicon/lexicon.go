// Package lexicon loads the STAR+FEEL analysis document: the four category
// keyword tables plus the modifier tables and thresholds the scorer reads.
// A Lexicon is validated once and never changes afterwards, so one value can
// be shared by any number of concurrent analyses.
package lexicon

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/starfeel/star/internal/model"
)

//go:embed default.yaml
var defaultDocument []byte

// DefaultSource names the embedded document in errors and summaries.
const DefaultSource = "embedded:default.yaml"

// DefaultDocument returns a copy of the embedded analysis document.
func DefaultDocument() []byte {
	return bytes.Clone(defaultDocument)
}

// Entry is one keyword of a category.
type Entry struct {
	Category model.Category
	Keyword  string
	Group    string
	Weight   float64
	// POS is the part-of-speech a token must carry for the POS weight to
	// apply. Empty means any tag.
	POS string
}

// Thresholds are the confidence tier boundaries.
type Thresholds struct {
	High   float64
	Medium float64
	Low    float64
}

// ContextWeights are the multipliers applied by the scorer.
type ContextWeights struct {
	SentenceTypeMatchBonus      float64
	SentenceTypeMismatchPenalty float64
	NegationPenalty             float64
	EmphasisBonus               float64
	MultipleKeywordBonus        float64
}

// SentenceMarkers drive sentence-type detection.
type SentenceMarkers struct {
	Subject           []string
	Object            []string
	PredicateSuffixes []string
	FinalParticles    []string
}

// Feel configures the FEEL intensity quantifier.
type Feel struct {
	ExclamationIncrement float64
	MaxRun               int
	ExpressionIncrement  float64
	Ceiling              float64
	Expressions          []string
}

// EmotionPattern labels a text that holds any of Words, or whose FEEL is
// above zero when OnFeel is set.
type EmotionPattern struct {
	Name   string
	Words  []string
	OnFeel bool
}

// Quality configures the reliability assessment attached to each result.
type Quality struct {
	// Texts shorter than ShortBelow or longer than LongAbove runes are
	// classed short or long.
	ShortBelow int
	LongAbove  int

	// A long text with more than MixedCount categories above MixedCut
	// confidence probably mixes several experiences.
	MixedCut   float64
	MixedCount int

	// Below this top confidence the result is very unreliable.
	VeryLowBelow float64

	// Suggestions maps each model.Approaches code to its advice.
	Suggestions map[string]string
}

// Intensity is an intensifier word and the multiplier it applies.
type Intensity struct {
	Word       string
	Multiplier float64
}

// Lexicon is a validated, immutable analysis document. Slices returned by its
// accessors are shared and must not be modified.
type Lexicon struct {
	source          string
	entries         [len(model.Categories)][]Entry
	byKeyword       map[string]Entry
	thresholds      Thresholds
	ambiguity       float64
	scoreScale      float64
	maxInputRunes   int
	weights         ContextWeights
	negationWindow  int
	negationMarkers []string
	intensity       []Intensity
	posWeights      map[string]float64
	markers         SentenceMarkers
	feel            Feel
	patterns        map[model.Category]string
	emotionPatterns []EmotionPattern
	quality         Quality
}

// Fold normalizes text the way keywords are stored: NFKC, which folds
// full-width ASCII and punctuation and half-width katakana.
func Fold(s string) string {
	return norm.NFKC.String(s)
}

// Default parses the embedded analysis document.
func Default() (*Lexicon, error) {
	return Parse(defaultDocument, DefaultSource)
}

// Load reads the analysis document at path. An empty path selects the
// embedded default.
func Load(path string) (*Lexicon, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Source: path, Problems: []string{fmt.Sprintf("read: %v", err)}}
	}
	return Parse(data, path)
}

// Parse decodes and validates an analysis document. Unknown keys, missing
// required keys and out-of-range values all fail with a *ConfigError.
func Parse(data []byte, source string) (*Lexicon, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ConfigError{Source: source, Problems: []string{"document is empty"}}
		}
		return nil, &ConfigError{Source: source, Problems: []string{fmt.Sprintf("decode: %v", err)}}
	}
	return build(&doc, source)
}

func build(doc *document, source string) (*Lexicon, error) {
	var probs problems
	l := &Lexicon{
		source:    source,
		byKeyword: make(map[string]Entry),
		patterns:  make(map[model.Category]string),
	}

	if t := doc.Thresholds; t == nil {
		probs.addf("thresholds is required")
	} else {
		l.thresholds.High = requireRange(&probs, "thresholds.high", t.High, 0, 1)
		l.thresholds.Medium = requireRange(&probs, "thresholds.medium", t.Medium, 0, 1)
		l.thresholds.Low = requireRange(&probs, "thresholds.low", t.Low, 0, 1)
		if t.High != nil && t.Medium != nil && t.Low != nil &&
			!(l.thresholds.Low <= l.thresholds.Medium && l.thresholds.Medium <= l.thresholds.High) {
			probs.addf("thresholds must satisfy low <= medium <= high")
		}
	}
	l.ambiguity = requireRange(&probs, "ambiguity_threshold", doc.AmbiguityThreshold, 0, 1)
	l.scoreScale = requireRange(&probs, "score_scale", doc.ScoreScale, math.SmallestNonzeroFloat64, math.MaxFloat64)
	if doc.MaxInputRunes < 0 {
		probs.addf("max_input_runes must not be negative")
	}
	l.maxInputRunes = doc.MaxInputRunes

	if w := doc.ContextWeights; w == nil {
		probs.addf("context_weights is required")
	} else {
		l.weights = ContextWeights{
			SentenceTypeMatchBonus:      requireRange(&probs, "context_weights.sentence_type_match_bonus", w.SentenceTypeMatchBonus, 1, math.MaxFloat64),
			SentenceTypeMismatchPenalty: requireRange(&probs, "context_weights.sentence_type_mismatch_penalty", w.SentenceTypeMismatchPenalty, math.SmallestNonzeroFloat64, 1),
			NegationPenalty:             requireRange(&probs, "context_weights.negation_penalty", w.NegationPenalty, 0, math.Nextafter(1, 0)),
			EmphasisBonus:               requireRange(&probs, "context_weights.emphasis_bonus", w.EmphasisBonus, 1, math.MaxFloat64),
			MultipleKeywordBonus:        requireRange(&probs, "context_weights.multiple_keyword_bonus", w.MultipleKeywordBonus, 1, math.MaxFloat64),
		}
	}

	if doc.NegationWindow == nil {
		probs.addf("negation_window is required")
	} else if *doc.NegationWindow < 0 {
		probs.addf("negation_window must not be negative")
	} else {
		l.negationWindow = *doc.NegationWindow
	}
	l.negationMarkers = requireWords(&probs, "negation_markers", doc.NegationMarkers)
	sortLongestFirst(l.negationMarkers)

	if len(doc.IntensityWords) == 0 {
		probs.addf("intensity_words is required")
	}
	for word, mult := range doc.IntensityWords {
		w := Fold(strings.TrimSpace(word))
		if w == "" {
			probs.addf("intensity_words has an empty word")
			continue
		}
		if !(mult > 0) {
			probs.addf("intensity_words[%s] must be positive, got %v", word, mult)
			continue
		}
		l.intensity = append(l.intensity, Intensity{Word: w, Multiplier: mult})
	}
	sort.Slice(l.intensity, func(i, j int) bool {
		return longerFirst(l.intensity[i].Word, l.intensity[j].Word)
	})

	if len(doc.POSWeights) == 0 {
		probs.addf("pos_weights is required")
	}
	l.posWeights = make(map[string]float64, len(doc.POSWeights))
	for tag, weight := range doc.POSWeights {
		if !(weight > 0) {
			probs.addf("pos_weights[%s] must be positive, got %v", tag, weight)
			continue
		}
		l.posWeights[strings.TrimSpace(tag)] = weight
	}

	if m := doc.SentenceMarkers; m == nil {
		probs.addf("sentence_markers is required")
	} else {
		l.markers = SentenceMarkers{
			Subject:           requireWords(&probs, "sentence_markers.subject", m.Subject),
			Object:            requireWords(&probs, "sentence_markers.object", m.Object),
			PredicateSuffixes: requireWords(&probs, "sentence_markers.predicate_suffixes", m.PredicateSuffixes),
			FinalParticles:    foldWords(m.FinalParticles),
		}
	}

	if f := doc.Feel; f == nil {
		probs.addf("feel is required")
	} else {
		l.feel = Feel{
			ExclamationIncrement: requireRange(&probs, "feel.exclamation_increment", f.ExclamationIncrement, 0, math.MaxFloat64),
			ExpressionIncrement:  requireRange(&probs, "feel.expression_increment", f.ExpressionIncrement, 0, math.MaxFloat64),
			Ceiling:              requireRange(&probs, "feel.ceiling", f.Ceiling, math.SmallestNonzeroFloat64, math.MaxFloat64),
			Expressions:          foldWords(f.Expressions),
		}
		switch {
		case f.MaxRun == nil:
			probs.addf("feel.max_run is required")
		case *f.MaxRun < 1:
			probs.addf("feel.max_run must be at least 1")
		default:
			l.feel.MaxRun = *f.MaxRun
		}
	}

	for name, pattern := range doc.StructurePatterns {
		c, err := model.ParseCategory(name)
		if err != nil {
			probs.addf("structure_patterns: %v", err)
			continue
		}
		l.patterns[c] = pattern
	}

	for i, p := range doc.EmotionPatterns {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			probs.addf("emotion_patterns[%d].name is required", i)
			continue
		}
		words := foldWords(p.Words)
		if len(words) == 0 && !p.Feel {
			probs.addf("emotion_patterns[%d] (%s) needs words or feel", i, name)
			continue
		}
		l.emotionPatterns = append(l.emotionPatterns, EmotionPattern{Name: name, Words: words, OnFeel: p.Feel})
	}

	l.buildQuality(&probs, doc.Quality)
	l.buildEntries(&probs, doc.Lexicon)

	if err := probs.err(source); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Lexicon) buildEntries(probs *problems, tables map[string][]groupDoc) {
	if len(tables) == 0 {
		probs.addf("lexicon is required")
		return
	}
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c, err := model.ParseCategory(name)
		if err != nil {
			probs.addf("lexicon: %v", err)
			continue
		}
		for gi, g := range tables[name] {
			label := fmt.Sprintf("lexicon.%s[%d]", c, gi)
			if strings.TrimSpace(g.Group) == "" {
				probs.addf("%s.group is required", label)
			}
			weight := requireRange(probs, label+".weight", g.Weight, math.SmallestNonzeroFloat64, math.MaxFloat64)
			if len(g.Keywords) == 0 {
				probs.addf("%s.keywords is empty", label)
			}
			for _, kw := range g.Keywords {
				k := Fold(strings.TrimSpace(kw))
				if k == "" {
					probs.addf("%s has an empty keyword", label)
					continue
				}
				if prev, dup := l.byKeyword[k]; dup {
					if prev.Category == c {
						probs.addf("keyword %q appears twice in %s", k, c)
					} else {
						probs.addf("keyword %q belongs to both %s and %s", k, prev.Category, c)
					}
					continue
				}
				e := Entry{Category: c, Keyword: k, Group: g.Group, Weight: weight, POS: strings.TrimSpace(g.POS)}
				l.byKeyword[k] = e
				l.entries[c.Index()] = append(l.entries[c.Index()], e)
			}
		}
	}

	for i, c := range model.Categories {
		if len(l.entries[i]) == 0 {
			probs.addf("lexicon.%s has no keywords", c)
			continue
		}
		entries := l.entries[i]
		sort.Slice(entries, func(a, b int) bool {
			return longerFirst(entries[a].Keyword, entries[b].Keyword)
		})
	}
}

func (l *Lexicon) buildQuality(probs *problems, q *qualityDoc) {
	if q == nil {
		probs.addf("quality is required")
		return
	}
	requireInt := func(name string, v *int) int {
		switch {
		case v == nil:
			probs.addf("%s is required", name)
		case *v < 0:
			probs.addf("%s must not be negative", name)
		default:
			return *v
		}
		return 0
	}
	l.quality = Quality{
		ShortBelow:   requireInt("quality.short_below", q.ShortBelow),
		LongAbove:    requireInt("quality.long_above", q.LongAbove),
		MixedCut:     requireRange(probs, "quality.mixed_cut", q.MixedCut, 0, 1),
		MixedCount:   requireInt("quality.mixed_count", q.MixedCount),
		VeryLowBelow: requireRange(probs, "quality.very_low_below", q.VeryLowBelow, 0, 1),
		Suggestions:  make(map[string]string, len(model.Approaches)),
	}
	if q.ShortBelow != nil && q.LongAbove != nil && *q.LongAbove < *q.ShortBelow {
		probs.addf("quality.long_above must not be below quality.short_below")
	}
	for code, text := range q.Suggestions {
		if !slices.Contains(model.Approaches, code) {
			probs.addf("quality.suggestions: unknown approach %q", code)
			continue
		}
		l.quality.Suggestions[code] = strings.TrimSpace(text)
	}
	for _, code := range model.Approaches {
		if l.quality.Suggestions[code] == "" {
			probs.addf("quality.suggestions.%s is required", code)
		}
	}
}

func requireRange(probs *problems, name string, v *float64, min, max float64) float64 {
	if v == nil {
		probs.addf("%s is required", name)
		return 0
	}
	if math.IsNaN(*v) || *v < min || *v > max {
		probs.addf("%s out of range: %v", name, *v)
		return 0
	}
	return *v
}

func requireWords(probs *problems, name string, words []string) []string {
	if len(words) == 0 {
		probs.addf("%s is required", name)
		return nil
	}
	out := foldWords(words)
	if len(out) != len(words) {
		probs.addf("%s contains an empty entry", name)
	}
	return out
}

func foldWords(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if f := Fold(strings.TrimSpace(w)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// longerFirst orders by rune count descending, then lexically, so scans that
// stop at the first hit prefer the most specific word.
func longerFirst(a, b string) bool {
	la, lb := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	if la != lb {
		return la > lb
	}
	return a < b
}

func sortLongestFirst(words []string) {
	sort.Slice(words, func(i, j int) bool { return longerFirst(words[i], words[j]) })
}

// Source names where the document was loaded from.
func (l *Lexicon) Source() string { return l.source }

// Entries returns the keywords of c, longest first.
func (l *Lexicon) Entries(c model.Category) []Entry {
	i := c.Index()
	if i < 0 {
		return nil
	}
	return l.entries[i]
}

// Lookup finds the entry for an already folded keyword.
func (l *Lexicon) Lookup(keyword string) (Entry, bool) {
	e, ok := l.byKeyword[keyword]
	return e, ok
}

func (l *Lexicon) Thresholds() Thresholds { return l.thresholds }
func (l *Lexicon) AmbiguityThreshold() float64 { return l.ambiguity }
func (l *Lexicon) ScoreScale() float64 { return l.scoreScale }
func (l *Lexicon) MaxInputRunes() int { return l.maxInputRunes }
func (l *Lexicon) ContextWeights() ContextWeights { return l.weights }
func (l *Lexicon) NegationWindow() int { return l.negationWindow }
func (l *Lexicon) NegationMarkers() []string { return l.negationMarkers }
func (l *Lexicon) IntensityWords() []Intensity { return l.intensity }
func (l *Lexicon) SentenceMarkers() SentenceMarkers { return l.markers }
func (l *Lexicon) Feel() Feel { return l.feel }
func (l *Lexicon) EmotionPatterns() []EmotionPattern { return l.emotionPatterns }
func (l *Lexicon) Quality() Quality { return l.quality }

// POSWeight returns the weight configured for a part-of-speech tag.
func (l *Lexicon) POSWeight(tag string) (float64, bool) {
	w, ok := l.posWeights[tag]
	return w, ok
}

// StructurePattern returns the template sentence for c, if configured.
func (l *Lexicon) StructurePattern(c model.Category) string {
	return l.patterns[c]
}

// GroupCount is the number of keywords in one group of a category.
type GroupCount struct {
	Category model.Category `json:"category" yaml:"category"`
	Group    string         `json:"group" yaml:"group"`
	Keywords int            `json:"keywords" yaml:"keywords"`
}

// Summary counts keywords per category and group, in category order.
func (l *Lexicon) Summary() []GroupCount {
	var out []GroupCount
	for i, c := range model.Categories {
		counts := make(map[string]int)
		var groups []string
		for _, e := range l.entries[i] {
			if counts[e.Group] == 0 {
				groups = append(groups, e.Group)
			}
			counts[e.Group]++
		}
		sort.Strings(groups)
		for _, g := range groups {
			out = append(out, GroupCount{Category: c, Group: g, Keywords: counts[g]})
		}
	}
	return out
}
