package model

// ByCategory holds one value per category under stable field names, so a
// result serializes to the same keys in every export format.
type ByCategory[T any] struct {
	Sense  T `json:"sense" yaml:"sense"`
	Think  T `json:"think" yaml:"think"`
	Act    T `json:"act" yaml:"act"`
	Relate T `json:"relate" yaml:"relate"`
}

// NewByCategory builds a ByCategory from values given in Categories order.
func NewByCategory[T any](values [len(Categories)]T) ByCategory[T] {
	return ByCategory[T]{
		Sense:  values[0],
		Think:  values[1],
		Act:    values[2],
		Relate: values[3],
	}
}

// Get returns the value stored for c. Unknown categories yield the zero value.
func (b ByCategory[T]) Get(c Category) T {
	switch c {
	case Sense:
		return b.Sense
	case Think:
		return b.Think
	case Act:
		return b.Act
	case Relate:
		return b.Relate
	}
	var zero T
	return zero
}

// Array returns the values in Categories order.
func (b ByCategory[T]) Array() [len(Categories)]T {
	return [len(Categories)]T{b.Sense, b.Think, b.Act, b.Relate}
}

// Match is a single keyword hit together with every modifier applied to it.
type Match struct {
	Keyword string `json:"keyword" yaml:"keyword"`
	Group   string `json:"group" yaml:"group"`
	// Offset and Length are counted in runes of the normalized text.
	Offset int    `json:"offset" yaml:"offset"`
	Length int    `json:"length" yaml:"length"`
	Source string `json:"source" yaml:"source"`
	POS    string `json:"pos,omitempty" yaml:"pos,omitempty"`

	BaseWeight     float64 `json:"base_weight" yaml:"base_weight"`
	POSWeight      float64 `json:"pos_weight" yaml:"pos_weight"`
	IntensityWord  string  `json:"intensity_word,omitempty" yaml:"intensity_word,omitempty"`
	Intensity      float64 `json:"intensity" yaml:"intensity"`
	NegationMarker string  `json:"negation_marker,omitempty" yaml:"negation_marker,omitempty"`
	Negated        bool    `json:"negated" yaml:"negated"`
	Emphasized     bool    `json:"emphasized" yaml:"emphasized"`
	SentenceFactor float64 `json:"sentence_factor" yaml:"sentence_factor"`
	Contribution   float64 `json:"contribution" yaml:"contribution"`
}

// Match sources.
const (
	SourceText     = "text"
	SourceBaseForm = "base_form"
)

// ClauseEmotion is the dominant category of one clause of the input.
type ClauseEmotion struct {
	Position int      `json:"position" yaml:"position"`
	Text     string   `json:"text" yaml:"text"`
	Dominant Category `json:"dominant" yaml:"dominant"`
	Hits     int      `json:"hits" yaml:"hits"`
}

// MixedEmotion is one of several categories that reached significance.
type MixedEmotion struct {
	Category Category `json:"category" yaml:"category"`
	Score    float64  `json:"score" yaml:"score"`
	Rank     int      `json:"rank" yaml:"rank"`
	Ratio    float64  `json:"ratio" yaml:"ratio"`
}

// Text length classes of a Quality.
const (
	TextShort  = "short"
	TextNormal = "normal"
	TextLong   = "long"
)

// Reliability levels of a Quality.
const (
	ReliabilityVeryLow = "very_low"
	ReliabilityLow     = "low"
	ReliabilityMedium  = "medium"
)

// Approaches a Quality can suggest for getting a better result.
const (
	ApproachInteractive = "interactive_enhancement"
	ApproachSegment     = "segment_analysis"
	ApproachGuided      = "guided_input"
	ApproachManual      = "manual_categorization"
)

// Approaches lists every approach code.
var Approaches = []string{ApproachInteractive, ApproachSegment, ApproachGuided, ApproachManual}

// Quality is a rough judgement of how far a result can be trusted.
// Suggestions[i] explains Alternatives[i].
type Quality struct {
	TextCategory string   `json:"text_category" yaml:"text_category"`
	Reliability  string   `json:"reliability" yaml:"reliability"`
	Suggestions  []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
	Alternatives []string `json:"alternative_approaches,omitempty" yaml:"alternative_approaches,omitempty"`
}

// Trace carries the intermediate state of an analysis for debugging.
type Trace struct {
	NormalizedText string               `json:"normalized_text" yaml:"normalized_text"`
	Tokens         []Token              `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	FeelIndicators []string             `json:"feel_indicators,omitempty" yaml:"feel_indicators,omitempty"`
	Steps          ByCategory[[]string] `json:"steps" yaml:"steps"`
	Multipliers    ByCategory[float64]  `json:"multipliers" yaml:"multipliers"`

	// SentenceTypes is the sentence type each category was weighted by,
	// read with that category's own keywords left out.
	SentenceTypes ByCategory[SentenceType] `json:"sentence_types" yaml:"sentence_types"`
}

// Result is the outcome of analyzing one text. The engine never modifies a
// Result after returning it.
type Result struct {
	Text             string              `json:"text" yaml:"text"`
	Primary          Category            `json:"primary" yaml:"primary"`
	Scores           ByCategory[float64] `json:"scores" yaml:"scores"`
	RawScores        ByCategory[float64] `json:"raw_scores" yaml:"raw_scores"`
	Tier             Tier                `json:"tier" yaml:"tier"`
	Feel             float64             `json:"feel" yaml:"feel"`
	SentenceType     SentenceType        `json:"sentence_type" yaml:"sentence_type"`
	Ambiguous        bool                `json:"ambiguous" yaml:"ambiguous"`
	Keywords         ByCategory[[]Match] `json:"keywords" yaml:"keywords"`
	Mode             Mode                `json:"mode" yaml:"mode"`
	StructurePattern string              `json:"structure_pattern,omitempty" yaml:"structure_pattern,omitempty"`
	Progression      []ClauseEmotion     `json:"progression,omitempty" yaml:"progression,omitempty"`
	MixedEmotions    []MixedEmotion      `json:"mixed_emotions,omitempty" yaml:"mixed_emotions,omitempty"`
	Patterns         []string            `json:"patterns,omitempty" yaml:"patterns,omitempty"`
	Quality          Quality             `json:"quality" yaml:"quality"`
	Trace            *Trace              `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// KeywordList returns the distinct matched keywords of c in match order.
func (r Result) KeywordList(c Category) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range r.Keywords.Get(c) {
		if seen[m.Keyword] {
			continue
		}
		seen[m.Keyword] = true
		out = append(out, m.Keyword)
	}
	return out
}
